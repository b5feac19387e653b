package controller

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	auditService "sabimarket_backend/internals/features/audit/service"
	"sabimarket_backend/internals/configs"
	"sabimarket_backend/internals/features/users/dto"
	userModel "sabimarket_backend/internals/features/users/model"
	"sabimarket_backend/internals/features/users/repository"
	helper "sabimarket_backend/internals/helpers"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func signAccessToken(user *userModel.UserModel, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(accessTokenTTL)
	claims := jwt.MapClaims{
		"user_id":   user.UserID.String(),
		"role":      user.UserRole,
		"user_name": user.UserName,
		"exp":       expiresAt.Unix(),
		"iat":       now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	return token, expiresAt, err
}

// signRefreshToken carries only the user id. Role and name are re-read from
// the database on refresh so role changes take effect within one access TTL.
func signRefreshToken(user *userModel.UserModel, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"typ":     "refresh",
		"exp":     now.Add(refreshTokenTTL).Unix(),
		"iat":     now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTRefreshSecret))
}

// parseRefreshToken rejects access tokens via the typ claim even when both
// secrets are configured to the same value.
func parseRefreshToken(raw string) (uuid.UUID, error) {
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return uuid.Nil, err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, fmt.Errorf("not a refresh token")
	}
	id, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing user id claim")
	}
	return uuid.Parse(id)
}

type AuthController struct {
	DB       *gorm.DB
	Repo     *repository.UserRepository
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:       db,
		Repo:     repository.NewUserRepository(db),
		Validate: validator.New(),
	}
}

// POST /api/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := h.Repo.FindByIdentifier(req.Identifier)
	if err != nil {
		return err
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	now := time.Now()
	token, expiresAt, err := signAccessToken(user, now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign token")
	}
	refresh, err := signRefreshToken(user, now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign token")
	}

	auditService.Record(h.DB, &user.UserID, user.UserRole, "auth.login", map[string]interface{}{
		"user_name": user.UserName,
	})
	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken:  token,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         dto.FromUserModel(*user),
	})
}

// POST /api/refresh
// Exchanges a valid refresh token for a fresh token pair.
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	userID, err := parseRefreshToken(req.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token")
	}
	user, err := h.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
	}

	now := time.Now()
	token, expiresAt, err := signAccessToken(user, now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign token")
	}
	refresh, err := signRefreshToken(user, now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign token")
	}
	return helper.JsonOK(c, "Token refreshed", dto.LoginResponse{
		AccessToken:  token,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         dto.FromUserModel(*user),
	})
}

// GET /api/a/users/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := h.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromUserModel(*user))
}

// POST /api/a/users
// Admin provisioning of staff accounts (chairmen, collectors).
func (h *AuthController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := &userModel.UserModel{
		UserName:     req.UserName,
		UserEmail:    req.UserEmail,
		UserPhone:    req.UserPhone,
		UserPassword: string(hashed),
		UserRole:     req.UserRole,
		UserIsActive: true,
	}
	if err := h.Repo.Create(user); err != nil {
		return err
	}

	auditService.RecordFromCtx(c, h.DB, "user.create", map[string]interface{}{
		"user_id":   user.UserID,
		"user_name": user.UserName,
		"user_role": user.UserRole,
	})
	return helper.JsonCreated(c, "User created", dto.FromUserModel(*user))
}
