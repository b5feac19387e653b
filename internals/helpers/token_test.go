package helper

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

func testCtx(t *testing.T) (*fiber.App, *fiber.Ctx) {
	t.Helper()
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	t.Cleanup(func() { app.ReleaseCtx(c) })
	return app, c
}

func TestGetUserIDFromToken(t *testing.T) {
	_, c := testCtx(t)

	if _, err := GetUserIDFromToken(c); err == nil {
		t.Error("missing user id should be unauthorized")
	}

	c.Locals(LocUserID, "not-a-uuid")
	if _, err := GetUserIDFromToken(c); err == nil {
		t.Error("malformed user id should be unauthorized")
	}

	want := uuid.New()
	c.Locals(LocUserID, want.String())
	got, err := GetUserIDFromToken(c)
	if err != nil {
		t.Fatalf("GetUserIDFromToken: %v", err)
	}
	if got != want {
		t.Errorf("id = %s, want %s", got, want)
	}
}

func TestRequireRoles(t *testing.T) {
	_, c := testCtx(t)

	// No role claim at all.
	if err := RequireRoles(c, []string{"chairman"}, ""); err == nil {
		t.Error("missing role should fail")
	}

	c.Locals(LocUserRole, "goodboy")

	if err := RequireRoles(c, []string{"goodboy", "caretaker"}, ""); err != nil {
		t.Errorf("allowed role rejected: %v", err)
	}

	err := RequireRoles(c, []string{"chairman", "admin"}, "Only a chairman may do this.")
	if err == nil {
		t.Fatal("disallowed role accepted")
	}
	fe, ok := err.(*fiber.Error)
	if !ok || fe.Code != fiber.StatusForbidden {
		t.Errorf("err = %v, want 403 fiber error", err)
	}
	if fe.Message != "Only a chairman may do this." {
		t.Errorf("message = %q", fe.Message)
	}
}
