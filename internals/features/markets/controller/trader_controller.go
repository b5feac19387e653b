package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "sabimarket_backend/internals/features/audit/service"
	"sabimarket_backend/internals/features/markets/dto"
	m "sabimarket_backend/internals/features/markets/model"
	"sabimarket_backend/internals/features/markets/repository"
	helper "sabimarket_backend/internals/helpers"
)

type TraderController struct {
	DB        *gorm.DB
	Repo      *repository.MarketAdminRepository
	Directory *repository.DirectoryRepository
	Validate  *validator.Validate
}

func NewTraderController(db *gorm.DB) *TraderController {
	return &TraderController{
		DB:        db,
		Repo:      repository.NewMarketAdminRepository(db),
		Directory: repository.NewDirectoryRepository(db),
		Validate:  validator.New(),
	}
}

// POST /api/a/traders
func (h *TraderController) Register(c *fiber.Ctx) error {
	var req dto.RegisterTraderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// The market must exist and accept registrations.
	market, err := h.Directory.GetMarket(req.TraderMarketID)
	if err != nil {
		return err
	}
	if !market.MarketIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Market is inactive")
	}

	trader := &m.TraderModel{
		TraderMarketID:      req.TraderMarketID,
		TraderFullName:      req.TraderFullName,
		TraderPhone:         req.TraderPhone,
		TraderOccupancyType: req.TraderOccupancyType,
		TraderFrequency:     req.TraderFrequency,
	}
	if err := h.Repo.CreateTrader(trader); err != nil {
		return err
	}

	auditService.RecordFromCtx(c, h.DB, "trader.register", map[string]interface{}{
		"trader_id": trader.TraderID,
		"market_id": trader.TraderMarketID,
	})
	return helper.JsonCreated(c, "Trader registered", dto.FromTraderModel(*trader))
}

// GET /api/a/traders/market/:market_id
func (h *TraderController) ListByMarket(c *fiber.Ctx) error {
	marketID, err := uuid.Parse(c.Params("market_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid market id")
	}
	list, err := h.Directory.ListTradersByMarket(marketID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromTraderModels(list))
}

// GET /api/a/traders/:id
func (h *TraderController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid trader id")
	}
	row, err := h.Directory.GetTrader(id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromTraderModel(*row))
}

// PATCH /api/a/traders/:id
func (h *TraderController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid trader id")
	}

	var req dto.UpdateTraderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	patch := map[string]interface{}{}
	if req.TraderFullName != nil {
		patch["trader_full_name"] = *req.TraderFullName
	}
	if req.TraderPhone != nil {
		patch["trader_phone"] = *req.TraderPhone
	}
	if req.TraderOccupancyType != nil {
		patch["trader_occupancy_type"] = *req.TraderOccupancyType
	}
	if req.TraderFrequency != nil {
		patch["trader_frequency"] = *req.TraderFrequency
	}
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	row, err := h.Repo.UpdateTrader(id, patch)
	if err != nil {
		return err
	}

	auditService.RecordFromCtx(c, h.DB, "trader.update", map[string]interface{}{
		"trader_id": id,
		"patch":     patch,
	})
	return helper.JsonUpdated(c, "Trader updated", dto.FromTraderModel(*row))
}

// POST /api/a/traders/:id/block
func (h *TraderController) Block(c *fiber.Ctx) error {
	return h.setBlocked(c, true, "trader.block", "Trader blocked")
}

// POST /api/a/traders/:id/unblock
func (h *TraderController) Unblock(c *fiber.Ctx) error {
	return h.setBlocked(c, false, "trader.unblock", "Trader unblocked")
}

func (h *TraderController) setBlocked(c *fiber.Ctx, blocked bool, activity, message string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid trader id")
	}
	row, err := h.Repo.SetTraderBlocked(id, blocked)
	if err != nil {
		return err
	}
	auditService.RecordFromCtx(c, h.DB, activity, map[string]interface{}{
		"trader_id": id,
	})
	return helper.JsonUpdated(c, message, dto.FromTraderModel(*row))
}
