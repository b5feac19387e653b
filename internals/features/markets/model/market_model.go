package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarketModel struct {
	MarketID uuid.UUID `gorm:"column:market_id;type:uuid;default:gen_random_uuid();primaryKey" json:"market_id"`

	MarketChairmanID *uuid.UUID `gorm:"column:market_chairman_id;type:uuid;index" json:"market_chairman_id,omitempty"`

	MarketName     string  `gorm:"column:market_name;type:varchar(120);not null" json:"market_name"`
	MarketLocation *string `gorm:"column:market_location;type:text" json:"market_location,omitempty"`

	MarketIsActive bool `gorm:"column:market_is_active;type:boolean;not null;default:true;index" json:"market_is_active"`

	MarketCreatedAt time.Time      `gorm:"column:market_created_at;type:timestamptz;not null;autoCreateTime" json:"market_created_at"`
	MarketUpdatedAt time.Time      `gorm:"column:market_updated_at;type:timestamptz;not null;autoUpdateTime" json:"market_updated_at"`
	MarketDeletedAt gorm.DeletedAt `gorm:"column:market_deleted_at;index" json:"market_deleted_at,omitempty"`
}

func (MarketModel) TableName() string { return "markets" }
