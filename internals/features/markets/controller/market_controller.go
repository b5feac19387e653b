package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sabimarket_backend/internals/constants"
	auditService "sabimarket_backend/internals/features/audit/service"
	"sabimarket_backend/internals/features/markets/dto"
	m "sabimarket_backend/internals/features/markets/model"
	"sabimarket_backend/internals/features/markets/repository"
	helper "sabimarket_backend/internals/helpers"
)

type MarketController struct {
	DB       *gorm.DB
	Repo     *repository.MarketAdminRepository
	Validate *validator.Validate
}

func NewMarketController(db *gorm.DB) *MarketController {
	return &MarketController{
		DB:       db,
		Repo:     repository.NewMarketAdminRepository(db),
		Validate: validator.New(),
	}
}

// POST /api/a/markets
// The creating chairman owns the market.
func (h *MarketController) Create(c *fiber.Ctx) error {
	chairmanID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateMarketRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mk := marketFromCreate(req, chairmanID)
	if err := h.Repo.CreateMarket(mk); err != nil {
		return err
	}

	auditService.RecordFromCtx(c, h.DB, "market.create", map[string]interface{}{
		"market_id":   mk.MarketID,
		"market_name": mk.MarketName,
	})
	return helper.JsonCreated(c, "Market created", dto.FromMarketModel(*mk))
}

// GET /api/a/markets
// Chairmen see their own markets, admins see everything.
func (h *MarketController) List(c *fiber.Ctx) error {
	chairmanID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	scope := &chairmanID
	if role, _ := helper.GetUserRoleFromToken(c); role == constants.RoleAdmin {
		scope = nil
	}

	paging := helper.ResolvePaging(c, 20, 100)
	list, total, err := h.Repo.ListMarkets(scope, paging)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "OK", dto.FromMarketModels(list),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/a/markets/:id
func (h *MarketController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid market id")
	}
	dir := repository.NewDirectoryRepository(h.DB)
	row, err := dir.GetMarket(id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromMarketModel(*row))
}

// PATCH /api/a/markets/:id
func (h *MarketController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid market id")
	}

	var req dto.UpdateMarketRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	patch := map[string]interface{}{}
	if req.MarketName != nil {
		patch["market_name"] = *req.MarketName
	}
	if req.MarketLocation != nil {
		patch["market_location"] = *req.MarketLocation
	}
	if req.MarketIsActive != nil {
		patch["market_is_active"] = *req.MarketIsActive
	}
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	row, err := h.Repo.UpdateMarket(id, patch)
	if err != nil {
		return err
	}

	auditService.RecordFromCtx(c, h.DB, "market.update", map[string]interface{}{
		"market_id": id,
		"patch":     patch,
	})
	return helper.JsonUpdated(c, "Market updated", dto.FromMarketModel(*row))
}

func marketFromCreate(req dto.CreateMarketRequest, chairmanID uuid.UUID) *m.MarketModel {
	return &m.MarketModel{
		MarketChairmanID: &chairmanID,
		MarketName:       req.MarketName,
		MarketLocation:   req.MarketLocation,
		MarketIsActive:   true,
	}
}
