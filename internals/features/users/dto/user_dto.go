package dto

import (
	"time"

	"github.com/google/uuid"

	m "sabimarket_backend/internals/features/users/model"
)

/* =============== REQUESTS =============== */

type LoginRequest struct {
	// Identifier is a user_name or email.
	Identifier string `json:"identifier" validate:"required,min=3,max=120"`
	Password   string `json:"password" validate:"required,min=6,max=100"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	UserName  string  `json:"user_name" validate:"required,min=3,max=50"`
	UserEmail *string `json:"user_email" validate:"omitempty,email,max=120"`
	UserPhone *string `json:"user_phone" validate:"omitempty,max=20"`
	Password  string  `json:"password" validate:"required,min=6,max=100"`
	UserRole  string  `json:"user_role" validate:"required,oneof=admin chairman caretaker goodboy assist_officer trader"`
}

/* =============== RESPONSES =============== */

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     *string   `json:"user_email,omitempty"`
	UserPhone     *string   `json:"user_phone,omitempty"`
	UserRole      string    `json:"user_role"`
	UserIsActive  bool      `json:"user_is_active"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
}

func FromUserModel(x m.UserModel) UserResponse {
	return UserResponse{
		UserID:        x.UserID,
		UserName:      x.UserName,
		UserEmail:     x.UserEmail,
		UserPhone:     x.UserPhone,
		UserRole:      x.UserRole,
		UserIsActive:  x.UserIsActive,
		UserCreatedAt: x.UserCreatedAt,
	}
}
