package dto

import (
	"time"

	"github.com/google/uuid"
)

// RevenueRangeQuery bounds a revenue aggregate. Both ends inclusive.
type RevenueRangeQuery struct {
	MarketID *uuid.UUID `query:"market_id" validate:"omitempty"`
	From     time.Time  `query:"from" validate:"required"`
	To       time.Time  `query:"to" validate:"required"`
}

type TotalRevenueResponse struct {
	MarketID  *uuid.UUID `json:"market_id,omitempty"`
	TotalKobo int64      `json:"total_kobo"`
}

type TotalLeviesResponse struct {
	MarketID  *uuid.UUID `json:"market_id,omitempty"`
	From      time.Time  `json:"from"`
	To        time.Time  `json:"to"`
	TotalKobo int64      `json:"total_kobo"`
}

type ComplianceRateResponse struct {
	MarketID       uuid.UUID `json:"market_id"`
	ComplianceRate float64   `json:"compliance_rate"`
	ComputedAt     time.Time `json:"computed_at"`
}
