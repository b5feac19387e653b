package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sabimarket_backend/internals/features/levies/reports/dto"
	"sabimarket_backend/internals/features/levies/reports/service"
	helper "sabimarket_backend/internals/helpers"
)

// ReportController exposes the chairman dashboard aggregates. All reads,
// no writes: repeating a call never changes any stored value.
type ReportController struct {
	Aggregator *service.AggregatorService
	Validate   *validator.Validate
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{
		Aggregator: service.NewAggregatorService(db),
		Validate:   validator.New(),
	}
}

// GET /api/a/reports/revenue/total?market_id=
func (h *ReportController) GetTotalRevenue(c *fiber.Ctx) error {
	marketID, err := optionalUUIDQuery(c, "market_id")
	if err != nil {
		return err
	}
	total, err := h.Aggregator.TotalRevenue(marketID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.TotalRevenueResponse{MarketID: marketID, TotalKobo: total})
}

// GET /api/a/reports/levies/total?from=&to=&market_id=
func (h *ReportController) GetTotalLevies(c *fiber.Ctx) error {
	var q dto.RevenueRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := h.Validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if q.To.Before(q.From) {
		return fiber.NewError(fiber.StatusBadRequest, "to must not precede from")
	}

	total, err := h.Aggregator.TotalLevies(q.MarketID, q.From, q.To)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.TotalLeviesResponse{
		MarketID:  q.MarketID,
		From:      q.From,
		To:        q.To,
		TotalKobo: total,
	})
}

// GET /api/a/reports/compliance/:market_id
func (h *ReportController) GetMarketComplianceRate(c *fiber.Ctx) error {
	marketID, err := uuid.Parse(c.Params("market_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid market id")
	}
	rate, err := h.Aggregator.MarketComplianceRate(marketID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.ComplianceRateResponse{
		MarketID:       marketID,
		ComplianceRate: rate,
		ComputedAt:     time.Now().UTC(),
	})
}

// GET /api/a/reports/revenue/dashboard?market_id=
func (h *ReportController) GetRevenueDashboard(c *fiber.Ctx) error {
	marketID, err := optionalUUIDQuery(c, "market_id")
	if err != nil {
		return err
	}
	dash, err := h.Aggregator.RevenueDashboard(marketID, time.Now().UTC())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dash)
}

func optionalUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return &id, nil
}
