package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`

	UserName  string  `gorm:"column:user_name;type:varchar(50);not null;uniqueIndex" json:"user_name"`
	UserEmail *string `gorm:"column:user_email;type:varchar(120);uniqueIndex" json:"user_email,omitempty"`
	UserPhone *string `gorm:"column:user_phone;type:varchar(20)" json:"user_phone,omitempty"`

	// bcrypt hash, never serialized.
	UserPassword string `gorm:"column:user_password;type:varchar(250);not null" json:"-"`

	UserRole string `gorm:"column:user_role;type:varchar(30);not null;default:'goodboy';index" json:"user_role"`

	UserIsActive bool `gorm:"column:user_is_active;type:boolean;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;type:timestamptz;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;type:timestamptz;not null;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
