package dto

import (
	"time"

	"github.com/google/uuid"

	m "sabimarket_backend/internals/features/levies/setups/model"
)

/* =============== REQUESTS =============== */

// Create
type ConfigureLevySetupRequest struct {
	LevySetupMarketID      uuid.UUID          `json:"levy_setup_market_id" validate:"required"`
	LevySetupOccupancyType m.OccupancyType    `json:"levy_setup_occupancy_type" validate:"required,oneof=open_space kiosk shop warehouse"`
	LevySetupFrequency     m.PaymentFrequency `json:"levy_setup_frequency" validate:"required,oneof=daily weekly biweekly monthly quarterly half_yearly yearly"`
	LevySetupAmountKobo    int64              `json:"levy_setup_amount_kobo" validate:"required,gt=0"`
}

func (r ConfigureLevySetupRequest) ToModel(chairmanID uuid.UUID) *m.LevySetupModel {
	return &m.LevySetupModel{
		LevySetupChairmanID:    &chairmanID,
		LevySetupMarketID:      r.LevySetupMarketID,
		LevySetupOccupancyType: r.LevySetupOccupancyType,
		LevySetupFrequency:     r.LevySetupFrequency,
		LevySetupAmountKobo:    r.LevySetupAmountKobo,
		LevySetupIsActive:      true,
	}
}

// Update (partial)
type UpdateLevySetupRequest struct {
	LevySetupAmountKobo *int64              `json:"levy_setup_amount_kobo" validate:"omitempty,gt=0"`
	LevySetupFrequency  *m.PaymentFrequency `json:"levy_setup_frequency" validate:"omitempty,oneof=daily weekly biweekly monthly quarterly half_yearly yearly"`
}

// RequiresNewVersion reports whether the patch changes the rate itself.
// Rate changes never mutate the existing row: the old row is deactivated and a
// new active row inserted, so historical payments keep their original rate.
func (r UpdateLevySetupRequest) RequiresNewVersion(cur *m.LevySetupModel) bool {
	if r.LevySetupAmountKobo != nil && *r.LevySetupAmountKobo != cur.LevySetupAmountKobo {
		return true
	}
	if r.LevySetupFrequency != nil && *r.LevySetupFrequency != cur.LevySetupFrequency {
		return true
	}
	return false
}

// NextVersion builds the replacement row from the current one plus the patch.
func (r UpdateLevySetupRequest) NextVersion(cur *m.LevySetupModel) *m.LevySetupModel {
	next := &m.LevySetupModel{
		LevySetupChairmanID:    cur.LevySetupChairmanID,
		LevySetupMarketID:      cur.LevySetupMarketID,
		LevySetupOccupancyType: cur.LevySetupOccupancyType,
		LevySetupFrequency:     cur.LevySetupFrequency,
		LevySetupAmountKobo:    cur.LevySetupAmountKobo,
		LevySetupIsActive:      true,
	}
	if r.LevySetupAmountKobo != nil {
		next.LevySetupAmountKobo = *r.LevySetupAmountKobo
	}
	if r.LevySetupFrequency != nil {
		next.LevySetupFrequency = *r.LevySetupFrequency
	}
	return next
}

// List / Query params
type ListLevySetupQuery struct {
	MarketID      *uuid.UUID          `query:"market_id" validate:"omitempty"`
	OccupancyType *m.OccupancyType    `query:"occupancy_type" validate:"omitempty,oneof=open_space kiosk shop warehouse"`
	Frequency     *m.PaymentFrequency `query:"frequency" validate:"omitempty,oneof=daily weekly biweekly monthly quarterly half_yearly yearly"`
	ActiveOnly    bool                `query:"active_only"`
	Limit         int                 `query:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset        int                 `query:"offset" validate:"omitempty,gte=0"`
}

/* =============== RESPONSES =============== */

type LevySetupResponse struct {
	LevySetupID uuid.UUID `json:"levy_setup_id"`

	LevySetupChairmanID *uuid.UUID `json:"levy_setup_chairman_id,omitempty"`
	LevySetupMarketID   uuid.UUID  `json:"levy_setup_market_id"`

	LevySetupOccupancyType m.OccupancyType    `json:"levy_setup_occupancy_type"`
	LevySetupFrequency     m.PaymentFrequency `json:"levy_setup_frequency"`
	LevySetupAmountKobo    int64              `json:"levy_setup_amount_kobo"`
	LevySetupIsActive      bool               `json:"levy_setup_is_active"`

	// Legacy shared-table API shape: configuration rows used to live in the
	// payment table behind this flag. Always true here.
	IsSetupRecord bool `json:"is_setup_record"`

	LevySetupCreatedAt time.Time `json:"levy_setup_created_at"`
	LevySetupUpdatedAt time.Time `json:"levy_setup_updated_at"`
}

type LevySetupListResponse struct {
	Items []LevySetupResponse `json:"items"`
	Total int64               `json:"total"`
}

/* =============== MAPPERS =============== */

func FromModel(x m.LevySetupModel) LevySetupResponse {
	return LevySetupResponse{
		LevySetupID:            x.LevySetupID,
		LevySetupChairmanID:    x.LevySetupChairmanID,
		LevySetupMarketID:      x.LevySetupMarketID,
		LevySetupOccupancyType: x.LevySetupOccupancyType,
		LevySetupFrequency:     x.LevySetupFrequency,
		LevySetupAmountKobo:    x.LevySetupAmountKobo,
		LevySetupIsActive:      x.LevySetupIsActive,
		IsSetupRecord:          true,
		LevySetupCreatedAt:     x.LevySetupCreatedAt,
		LevySetupUpdatedAt:     x.LevySetupUpdatedAt,
	}
}

func FromModels(list []m.LevySetupModel, total int64) LevySetupListResponse {
	out := make([]LevySetupResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return LevySetupListResponse{Items: out, Total: total}
}
