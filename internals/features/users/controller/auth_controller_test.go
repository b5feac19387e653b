package controller

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"sabimarket_backend/internals/configs"
	userModel "sabimarket_backend/internals/features/users/model"
)

func testUser() *userModel.UserModel {
	return &userModel.UserModel{
		UserID:   uuid.New(),
		UserName: "chairman_bello",
		UserRole: "chairman",
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	configs.JWTSecret = "access-secret"
	configs.JWTRefreshSecret = "refresh-secret"

	user := testUser()
	refresh, err := signRefreshToken(user, time.Now())
	if err != nil {
		t.Fatalf("signRefreshToken: %v", err)
	}
	got, err := parseRefreshToken(refresh)
	if err != nil {
		t.Fatalf("parseRefreshToken: %v", err)
	}
	if got != user.UserID {
		t.Errorf("user id = %s, want %s", got, user.UserID)
	}
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	// With both secrets equal the typ claim is the only thing keeping an
	// access token out of the refresh endpoint.
	configs.JWTSecret = "shared-secret"
	configs.JWTRefreshSecret = "shared-secret"

	access, _, err := signAccessToken(testUser(), time.Now())
	if err != nil {
		t.Fatalf("signAccessToken: %v", err)
	}
	if _, err := parseRefreshToken(access); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestParseRefreshTokenRejectsExpired(t *testing.T) {
	configs.JWTRefreshSecret = "refresh-secret"

	issued := time.Now().Add(-refreshTokenTTL - time.Hour)
	refresh, err := signRefreshToken(testUser(), issued)
	if err != nil {
		t.Fatalf("signRefreshToken: %v", err)
	}
	if _, err := parseRefreshToken(refresh); err == nil {
		t.Fatal("expired refresh token accepted")
	}
}

func TestParseRefreshTokenRejectsWrongSecret(t *testing.T) {
	configs.JWTRefreshSecret = "secret-a"
	refresh, err := signRefreshToken(testUser(), time.Now())
	if err != nil {
		t.Fatalf("signRefreshToken: %v", err)
	}

	configs.JWTRefreshSecret = "secret-b"
	if _, err := parseRefreshToken(refresh); err == nil {
		t.Fatal("refresh token verified under the wrong secret")
	}
}
