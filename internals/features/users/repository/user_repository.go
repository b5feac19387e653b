package repository

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	m "sabimarket_backend/internals/features/users/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// FindByIdentifier matches on user_name or email.
func (r *UserRepository) FindByIdentifier(identifier string) (*m.UserModel, error) {
	var row m.UserModel
	err := r.DB.
		Where("user_name = ? OR user_email = ?", identifier, identifier).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

func (r *UserRepository) GetByID(id uuid.UUID) (*m.UserModel, error) {
	var row m.UserModel
	if err := r.DB.Where("user_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

func (r *UserRepository) Create(u *m.UserModel) error {
	if err := r.DB.Create(u).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "User name or email already taken")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}
	return nil
}
