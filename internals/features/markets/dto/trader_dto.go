package dto

import (
	"time"

	"github.com/google/uuid"

	setupModel "sabimarket_backend/internals/features/levies/setups/model"
	m "sabimarket_backend/internals/features/markets/model"
)

/* =============== REQUESTS =============== */

type RegisterTraderRequest struct {
	TraderMarketID uuid.UUID `json:"trader_market_id" validate:"required"`
	TraderFullName string    `json:"trader_full_name" validate:"required,min=3,max=120"`
	TraderPhone    *string   `json:"trader_phone" validate:"omitempty,max=20"`

	TraderOccupancyType setupModel.OccupancyType    `json:"trader_occupancy_type" validate:"required,oneof=open_space kiosk shop warehouse"`
	TraderFrequency     setupModel.PaymentFrequency `json:"trader_frequency" validate:"required,oneof=daily weekly biweekly monthly quarterly half_yearly yearly"`
}

type UpdateTraderRequest struct {
	TraderFullName *string `json:"trader_full_name" validate:"omitempty,min=3,max=120"`
	TraderPhone    *string `json:"trader_phone" validate:"omitempty,max=20"`

	TraderOccupancyType *setupModel.OccupancyType    `json:"trader_occupancy_type" validate:"omitempty,oneof=open_space kiosk shop warehouse"`
	TraderFrequency     *setupModel.PaymentFrequency `json:"trader_frequency" validate:"omitempty,oneof=daily weekly biweekly monthly quarterly half_yearly yearly"`
}

/* =============== RESPONSES =============== */

type TraderResponse struct {
	TraderID       uuid.UUID `json:"trader_id"`
	TraderMarketID uuid.UUID `json:"trader_market_id"`
	TraderFullName string    `json:"trader_full_name"`
	TraderPhone    *string   `json:"trader_phone,omitempty"`

	TraderOccupancyType setupModel.OccupancyType    `json:"trader_occupancy_type"`
	TraderFrequency     setupModel.PaymentFrequency `json:"trader_frequency"`

	TraderIsBlocked bool      `json:"trader_is_blocked"`
	TraderCreatedAt time.Time `json:"trader_created_at"`
}

func FromTraderModel(x m.TraderModel) TraderResponse {
	return TraderResponse{
		TraderID:            x.TraderID,
		TraderMarketID:      x.TraderMarketID,
		TraderFullName:      x.TraderFullName,
		TraderPhone:         x.TraderPhone,
		TraderOccupancyType: x.TraderOccupancyType,
		TraderFrequency:     x.TraderFrequency,
		TraderIsBlocked:     x.TraderIsBlocked,
		TraderCreatedAt:     x.TraderCreatedAt,
	}
}

func FromTraderModels(list []m.TraderModel) []TraderResponse {
	out := make([]TraderResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromTraderModel(it))
	}
	return out
}
