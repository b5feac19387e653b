package routes

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"sabimarket_backend/internals/configs"
	"sabimarket_backend/internals/constants"
)

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":   uuid.New().String(),
		"role":      role,
		"user_name": "routing-" + role,
		"exp":       time.Now().Add(time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// Walks the mounted route tree per role. An empty body reads as 400 from the
// handler, which proves the request cleared both the group and route gates.
func TestRouteRoleGates(t *testing.T) {
	configs.JWTSecret = "routing-test-secret"
	app := fiber.New()
	SetupRoutes(app, nil)

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"manual entry chairman", "POST", "/api/a/levy-payments", constants.RoleChairman, fiber.StatusBadRequest},
		{"manual entry admin", "POST", "/api/a/levy-payments", constants.RoleAdmin, fiber.StatusBadRequest},
		{"manual entry assist officer", "POST", "/api/a/levy-payments", constants.RoleAssistOfficer, fiber.StatusBadRequest},
		{"manual entry goodboy rejected", "POST", "/api/a/levy-payments", constants.RoleGoodBoy, fiber.StatusForbidden},
		{"manual entry caretaker rejected", "POST", "/api/a/levy-payments", constants.RoleCaretaker, fiber.StatusForbidden},
		{"manual entry trader rejected", "POST", "/api/a/levy-payments", constants.RoleTrader, fiber.StatusForbidden},

		{"setup config assist officer rejected", "POST", "/api/a/levy-setups", constants.RoleAssistOfficer, fiber.StatusForbidden},
		{"setup config chairman", "POST", "/api/a/levy-setups", constants.RoleChairman, fiber.StatusBadRequest},
		{"market create assist officer rejected", "POST", "/api/a/markets", constants.RoleAssistOfficer, fiber.StatusForbidden},

		{"field collect goodboy", "POST", "/api/g/levies/collect", constants.RoleGoodBoy, fiber.StatusBadRequest},
		{"field collect assist officer", "POST", "/api/g/levies/collect", constants.RoleAssistOfficer, fiber.StatusBadRequest},
		{"field collect chairman rejected", "POST", "/api/g/levies/collect", constants.RoleChairman, fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, tt.role))
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("%s %s: %v", tt.method, tt.path, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("%s %s as %s: status = %d, want %d", tt.method, tt.path, tt.role, resp.StatusCode, tt.want)
			}
		})
	}
}

func TestRouteGatesRejectMissingToken(t *testing.T) {
	configs.JWTSecret = "routing-test-secret"
	app := fiber.New()
	SetupRoutes(app, nil)

	for _, path := range []string{"/api/a/levy-payments", "/api/g/levies/collect"} {
		req := httptest.NewRequest("POST", path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("POST %s without token: status = %d, want %d", path, resp.StatusCode, fiber.StatusUnauthorized)
		}
	}
}
