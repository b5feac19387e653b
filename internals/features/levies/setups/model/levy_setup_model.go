package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LevySetupModel is one rate-card row: the configured levy for a
// (market, occupancy type, frequency) tuple. Amount changes are versioned:
// the old row is deactivated and a fresh active row inserted, so payments
// recorded against an old rate keep their reference.
type LevySetupModel struct {
	LevySetupID uuid.UUID `gorm:"column:levy_setup_id;type:uuid;default:gen_random_uuid();primaryKey" json:"levy_setup_id"`

	LevySetupChairmanID *uuid.UUID `gorm:"column:levy_setup_chairman_id;type:uuid;index" json:"levy_setup_chairman_id,omitempty"`
	LevySetupMarketID   uuid.UUID  `gorm:"column:levy_setup_market_id;type:uuid;not null;index:idx_levy_setups_tuple,priority:1" json:"levy_setup_market_id"`

	LevySetupOccupancyType OccupancyType    `gorm:"column:levy_setup_occupancy_type;type:occupancy_type;not null;index:idx_levy_setups_tuple,priority:2" json:"levy_setup_occupancy_type"`
	LevySetupFrequency     PaymentFrequency `gorm:"column:levy_setup_frequency;type:payment_frequency;not null;index:idx_levy_setups_tuple,priority:3" json:"levy_setup_frequency"`

	// Amounts are integer kobo to avoid float decimals.
	LevySetupAmountKobo int64 `gorm:"column:levy_setup_amount_kobo;type:bigint;not null;check:levy_setup_amount_kobo > 0" json:"levy_setup_amount_kobo"`

	// At most one active row per tuple, guarded by a pre-insert re-check.
	// Concurrent configures can still race a duplicate in; readers resolve
	// duplicate actives by created_at, newest wins.
	LevySetupIsActive bool `gorm:"column:levy_setup_is_active;type:boolean;not null;default:true;index" json:"levy_setup_is_active"`

	LevySetupCreatedAt time.Time      `gorm:"column:levy_setup_created_at;type:timestamptz;not null;autoCreateTime" json:"levy_setup_created_at"`
	LevySetupUpdatedAt time.Time      `gorm:"column:levy_setup_updated_at;type:timestamptz;not null;autoUpdateTime" json:"levy_setup_updated_at"`
	LevySetupDeletedAt gorm.DeletedAt `gorm:"column:levy_setup_deleted_at;index" json:"levy_setup_deleted_at,omitempty"`
}

func (LevySetupModel) TableName() string { return "levy_setups" }
