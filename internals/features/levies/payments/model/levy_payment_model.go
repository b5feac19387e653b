package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	setupModel "sabimarket_backend/internals/features/levies/setups/model"
)

// LevyPaymentModel is one collection event. Rows are append-mostly: after
// creation only the status may change (gateway settlement or admin correction).
// Configuration lives in levy_setups; this table holds payments only.
type LevyPaymentModel struct {
	LevyPaymentID uuid.UUID `gorm:"column:levy_payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"levy_payment_id"`

	// FK → levy_setups. Nullable: legacy manual entries predate the rate card.
	LevyPaymentSetupID *uuid.UUID `gorm:"column:levy_payment_setup_id;type:uuid;index" json:"levy_payment_setup_id,omitempty"`

	LevyPaymentChairmanID *uuid.UUID `gorm:"column:levy_payment_chairman_id;type:uuid;index" json:"levy_payment_chairman_id,omitempty"`
	LevyPaymentMarketID   uuid.UUID  `gorm:"column:levy_payment_market_id;type:uuid;not null;index" json:"levy_payment_market_id"`
	LevyPaymentTraderID   uuid.UUID  `gorm:"column:levy_payment_trader_id;type:uuid;not null;index" json:"levy_payment_trader_id"`
	LevyPaymentGoodBoyID  *uuid.UUID `gorm:"column:levy_payment_goodboy_id;type:uuid;index" json:"levy_payment_goodboy_id,omitempty"`

	LevyPaymentAmountKobo int64 `gorm:"column:levy_payment_amount_kobo;type:bigint;not null;check:levy_payment_amount_kobo > 0" json:"levy_payment_amount_kobo"`

	LevyPaymentOccupancyType setupModel.OccupancyType    `gorm:"column:levy_payment_occupancy_type;type:occupancy_type;not null" json:"levy_payment_occupancy_type"`
	LevyPaymentPeriod        setupModel.PaymentFrequency `gorm:"column:levy_payment_period;type:payment_frequency;not null;index" json:"levy_payment_period"`

	LevyPaymentMethod PaymentMethod `gorm:"column:levy_payment_method;type:levy_payment_method;not null;default:'cash'" json:"levy_payment_method"`
	LevyPaymentStatus PaymentStatus `gorm:"column:levy_payment_status;type:levy_payment_status;not null;default:'completed';index" json:"levy_payment_status"`

	LevyPaymentTransactionRef *string `gorm:"column:levy_payment_transaction_ref;type:varchar(80);index" json:"levy_payment_transaction_ref,omitempty"`

	// Client-generated per scan session; unique when present so rapid duplicate
	// submissions collapse onto one row.
	LevyPaymentIdempotencyKey *string `gorm:"column:levy_payment_idempotency_key;type:varchar(80);uniqueIndex:uniq_levy_payment_idem" json:"levy_payment_idempotency_key,omitempty"`

	LevyPaymentHasIncentive   bool  `gorm:"column:levy_payment_has_incentive;type:boolean;not null;default:false" json:"levy_payment_has_incentive"`
	LevyPaymentIncentiveKobo  int64 `gorm:"column:levy_payment_incentive_kobo;type:bigint;not null;default:0" json:"levy_payment_incentive_kobo"`

	LevyPaymentPaymentDate    *time.Time `gorm:"column:levy_payment_payment_date;type:date" json:"levy_payment_payment_date,omitempty"`
	LevyPaymentDueDate        *time.Time `gorm:"column:levy_payment_due_date;type:date" json:"levy_payment_due_date,omitempty"`
	LevyPaymentCollectionDate time.Time  `gorm:"column:levy_payment_collection_date;type:timestamptz;not null;index" json:"levy_payment_collection_date"`

	// Scanned QR payload as received, kept for field dispute resolution.
	LevyPaymentQRPayload *string           `gorm:"column:levy_payment_qr_payload;type:text" json:"levy_payment_qr_payload,omitempty"`
	LevyPaymentMeta      datatypes.JSONMap `gorm:"column:levy_payment_meta;type:jsonb" json:"levy_payment_meta,omitempty"`

	LevyPaymentCreatedAt time.Time      `gorm:"column:levy_payment_created_at;type:timestamptz;not null;autoCreateTime" json:"levy_payment_created_at"`
	LevyPaymentUpdatedAt time.Time      `gorm:"column:levy_payment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"levy_payment_updated_at"`
	LevyPaymentDeletedAt gorm.DeletedAt `gorm:"column:levy_payment_deleted_at;index" json:"levy_payment_deleted_at,omitempty"`
}

func (LevyPaymentModel) TableName() string { return "levy_payments" }

/* ===================== Helpers ===================== */

func (p *LevyPaymentModel) IsCompleted() bool {
	return p.LevyPaymentStatus == PaymentStatusCompleted
}

func (p *LevyPaymentModel) IsOpen() bool {
	return p.LevyPaymentStatus == PaymentStatusPending
}

func (p *LevyPaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.LevyPaymentCollectionDate.IsZero() {
		p.LevyPaymentCollectionDate = time.Now().UTC()
	}
	return nil
}
