package dto

import (
	"time"

	"github.com/google/uuid"

	m "sabimarket_backend/internals/features/levies/payments/model"
	setupModel "sabimarket_backend/internals/features/levies/setups/model"
)

/* =============== REQUESTS =============== */

// CollectLevyPaymentRequest is the field collection submission. Either a scanned
// qr_payload or a pre-verified trader_id must be supplied.
type CollectLevyPaymentRequest struct {
	QRPayload *string    `json:"qr_payload" validate:"omitempty,min=16"`
	TraderID  *uuid.UUID `json:"trader_id" validate:"omitempty"`

	// Absent amount means "charge the configured rate".
	AmountKobo *int64 `json:"amount_kobo" validate:"omitempty,gt=0"`

	Method         m.PaymentMethod `json:"method" validate:"required,oneof=cash transfer pos gateway"`
	TransactionRef *string         `json:"transaction_ref" validate:"omitempty,max=80"`

	// Client-generated per scan session (see also X-Idempotency-Key header).
	IdempotencyKey *string `json:"idempotency_key" validate:"omitempty,min=8,max=80"`
}

// ValidateQRCodeRequest carries a raw scan payload.
type ValidateQRCodeRequest struct {
	QRPayload string `json:"qr_payload" validate:"required,min=16"`
}

// ListLevyPaymentQuery drives the paged ledger listing.
type ListLevyPaymentQuery struct {
	Period   *setupModel.PaymentFrequency `query:"period" validate:"omitempty,oneof=daily weekly biweekly monthly quarterly half_yearly yearly"`
	Q        *string                      `query:"q" validate:"omitempty,max=120"`
	MarketID *uuid.UUID                   `query:"market_id" validate:"omitempty"`
	TraderID *uuid.UUID                   `query:"trader_id" validate:"omitempty"`
}

// DateRangeQuery is inclusive on both ends.
type DateRangeQuery struct {
	From time.Time `query:"from" validate:"required"`
	To   time.Time `query:"to" validate:"required"`
}

/* =============== RESPONSES =============== */

type LevyPaymentResponse struct {
	LevyPaymentID uuid.UUID `json:"levy_payment_id"`

	LevyPaymentSetupID    *uuid.UUID `json:"levy_payment_setup_id,omitempty"`
	LevyPaymentChairmanID *uuid.UUID `json:"levy_payment_chairman_id,omitempty"`
	LevyPaymentMarketID   uuid.UUID  `json:"levy_payment_market_id"`
	LevyPaymentTraderID   uuid.UUID  `json:"levy_payment_trader_id"`
	LevyPaymentGoodBoyID  *uuid.UUID `json:"levy_payment_goodboy_id,omitempty"`

	LevyPaymentAmountKobo int64 `json:"levy_payment_amount_kobo"`

	LevyPaymentOccupancyType setupModel.OccupancyType    `json:"levy_payment_occupancy_type"`
	LevyPaymentPeriod        setupModel.PaymentFrequency `json:"levy_payment_period"`

	LevyPaymentMethod m.PaymentMethod `json:"levy_payment_method"`
	LevyPaymentStatus m.PaymentStatus `json:"levy_payment_status"`

	LevyPaymentTransactionRef *string `json:"levy_payment_transaction_ref,omitempty"`

	LevyPaymentHasIncentive  bool  `json:"levy_payment_has_incentive"`
	LevyPaymentIncentiveKobo int64 `json:"levy_payment_incentive_kobo"`

	LevyPaymentPaymentDate    *time.Time `json:"levy_payment_payment_date,omitempty"`
	LevyPaymentDueDate        *time.Time `json:"levy_payment_due_date,omitempty"`
	LevyPaymentCollectionDate time.Time  `json:"levy_payment_collection_date"`

	// Legacy shared-table API shape. Payment rows are never setup records.
	IsSetupRecord bool `json:"is_setup_record"`

	LevyPaymentCreatedAt time.Time `json:"levy_payment_created_at"`
}

type LevyPaymentListResponse struct {
	Items []LevyPaymentResponse `json:"items"`
	Total int64                 `json:"total"`
}

// QRVerificationResponse is the terminal response of a scan.
type QRVerificationResponse struct {
	TraderID        uuid.UUID                   `json:"trader_id"`
	TraderFullName  string                      `json:"trader_full_name"`
	MarketID        uuid.UUID                   `json:"market_id"`
	OccupancyType   setupModel.OccupancyType    `json:"occupancy_type"`
	Frequency       setupModel.PaymentFrequency `json:"frequency"`
	AmountDueKobo   int64                       `json:"amount_due_kobo"`
	IsCompliant     bool                        `json:"is_compliant"`
	LastPaymentDate *time.Time                  `json:"last_payment_date,omitempty"`
}

/* =============== MAPPERS =============== */

func FromModel(x m.LevyPaymentModel) LevyPaymentResponse {
	return LevyPaymentResponse{
		LevyPaymentID:             x.LevyPaymentID,
		LevyPaymentSetupID:        x.LevyPaymentSetupID,
		LevyPaymentChairmanID:     x.LevyPaymentChairmanID,
		LevyPaymentMarketID:       x.LevyPaymentMarketID,
		LevyPaymentTraderID:       x.LevyPaymentTraderID,
		LevyPaymentGoodBoyID:      x.LevyPaymentGoodBoyID,
		LevyPaymentAmountKobo:     x.LevyPaymentAmountKobo,
		LevyPaymentOccupancyType:  x.LevyPaymentOccupancyType,
		LevyPaymentPeriod:         x.LevyPaymentPeriod,
		LevyPaymentMethod:         x.LevyPaymentMethod,
		LevyPaymentStatus:         x.LevyPaymentStatus,
		LevyPaymentTransactionRef: x.LevyPaymentTransactionRef,
		LevyPaymentHasIncentive:   x.LevyPaymentHasIncentive,
		LevyPaymentIncentiveKobo:  x.LevyPaymentIncentiveKobo,
		LevyPaymentPaymentDate:    x.LevyPaymentPaymentDate,
		LevyPaymentDueDate:        x.LevyPaymentDueDate,
		LevyPaymentCollectionDate: x.LevyPaymentCollectionDate,
		IsSetupRecord:             false,
		LevyPaymentCreatedAt:      x.LevyPaymentCreatedAt,
	}
}

func FromModels(list []m.LevyPaymentModel, total int64) LevyPaymentListResponse {
	out := make([]LevyPaymentResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return LevyPaymentListResponse{Items: out, Total: total}
}
