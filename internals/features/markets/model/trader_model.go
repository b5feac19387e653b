package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	setupModel "sabimarket_backend/internals/features/levies/setups/model"
)

type TraderModel struct {
	TraderID uuid.UUID `gorm:"column:trader_id;type:uuid;default:gen_random_uuid();primaryKey" json:"trader_id"`

	TraderMarketID uuid.UUID  `gorm:"column:trader_market_id;type:uuid;not null;index" json:"trader_market_id"`
	TraderUserID   *uuid.UUID `gorm:"column:trader_user_id;type:uuid;index" json:"trader_user_id,omitempty"`

	TraderFullName string  `gorm:"column:trader_full_name;type:varchar(120);not null" json:"trader_full_name"`
	TraderPhone    *string `gorm:"column:trader_phone;type:varchar(20)" json:"trader_phone,omitempty"`

	// Determines the applicable rate card row together with the market.
	TraderOccupancyType setupModel.OccupancyType    `gorm:"column:trader_occupancy_type;type:occupancy_type;not null" json:"trader_occupancy_type"`
	TraderFrequency     setupModel.PaymentFrequency `gorm:"column:trader_frequency;type:payment_frequency;not null;default:'daily'" json:"trader_frequency"`

	TraderIsBlocked bool `gorm:"column:trader_is_blocked;type:boolean;not null;default:false;index" json:"trader_is_blocked"`

	TraderCreatedAt time.Time      `gorm:"column:trader_created_at;type:timestamptz;not null;autoCreateTime" json:"trader_created_at"`
	TraderUpdatedAt time.Time      `gorm:"column:trader_updated_at;type:timestamptz;not null;autoUpdateTime" json:"trader_updated_at"`
	TraderDeletedAt gorm.DeletedAt `gorm:"column:trader_deleted_at;index" json:"trader_deleted_at,omitempty"`

	Market *MarketModel `gorm:"foreignKey:TraderMarketID;references:MarketID" json:"-"`
}

func (TraderModel) TableName() string { return "traders" }
