package dto

import (
	"time"

	"github.com/google/uuid"

	m "sabimarket_backend/internals/features/markets/model"
)

/* =============== REQUESTS =============== */

type CreateMarketRequest struct {
	MarketName     string  `json:"market_name" validate:"required,min=3,max=120"`
	MarketLocation *string `json:"market_location" validate:"omitempty,max=300"`
}

type UpdateMarketRequest struct {
	MarketName     *string `json:"market_name" validate:"omitempty,min=3,max=120"`
	MarketLocation *string `json:"market_location" validate:"omitempty,max=300"`
	MarketIsActive *bool   `json:"market_is_active"`
}

/* =============== RESPONSES =============== */

type MarketResponse struct {
	MarketID         uuid.UUID  `json:"market_id"`
	MarketChairmanID *uuid.UUID `json:"market_chairman_id,omitempty"`
	MarketName       string     `json:"market_name"`
	MarketLocation   *string    `json:"market_location,omitempty"`
	MarketIsActive   bool       `json:"market_is_active"`
	MarketCreatedAt  time.Time  `json:"market_created_at"`
}

func FromMarketModel(x m.MarketModel) MarketResponse {
	return MarketResponse{
		MarketID:         x.MarketID,
		MarketChairmanID: x.MarketChairmanID,
		MarketName:       x.MarketName,
		MarketLocation:   x.MarketLocation,
		MarketIsActive:   x.MarketIsActive,
		MarketCreatedAt:  x.MarketCreatedAt,
	}
}

func FromMarketModels(list []m.MarketModel) []MarketResponse {
	out := make([]MarketResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromMarketModel(it))
	}
	return out
}
