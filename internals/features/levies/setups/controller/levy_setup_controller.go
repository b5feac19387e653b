package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sabimarket_backend/internals/constants"
	auditService "sabimarket_backend/internals/features/audit/service"
	"sabimarket_backend/internals/features/levies/setups/dto"
	marketModel "sabimarket_backend/internals/features/markets/model"
	"sabimarket_backend/internals/features/levies/setups/repository"
	helper "sabimarket_backend/internals/helpers"
)

type LevySetupController struct {
	DB       *gorm.DB
	Repo     *repository.LevySetupRepository
	Validate *validator.Validate
}

func NewLevySetupController(db *gorm.DB) *LevySetupController {
	return &LevySetupController{
		DB:       db,
		Repo:     repository.NewLevySetupRepository(db),
		Validate: validator.New(),
	}
}

/* ======================= CREATE ======================= */
// POST /api/a/levy-setups
func (h *LevySetupController) Configure(c *fiber.Ctx) error {
	chairmanID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ConfigureLevySetupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// Market must exist and be active before it gets a rate card entry.
	var market marketModel.MarketModel
	if err := h.DB.Where("market_id = ?", req.LevySetupMarketID).First(&market).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown market")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !market.MarketIsActive {
		return fiber.NewError(fiber.StatusBadRequest, "Market is inactive")
	}

	m := req.ToModel(chairmanID)
	if err := h.Repo.Configure(m); err != nil {
		return err
	}

	auditService.RecordFromCtx(c, h.DB, "levy_setup.configure", map[string]interface{}{
		"levy_setup_id": m.LevySetupID,
		"market_id":     m.LevySetupMarketID,
		"occupancy":     m.LevySetupOccupancyType,
		"frequency":     m.LevySetupFrequency,
		"amount_kobo":   m.LevySetupAmountKobo,
	})

	return helper.JsonCreated(c, "Levy setup configured", dto.FromModel(*m))
}

/* ======================== GET BY ID ======================== */
// GET /api/a/levy-setups/:id
func (h *LevySetupController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid setup id")
	}
	row, err := h.Repo.GetByID(id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromModel(*row))
}

/* ======================== LIST ======================== */
// GET /api/a/levy-setups?market_id=&occupancy_type=&frequency=&active_only=&limit=&offset=
func (h *LevySetupController) List(c *fiber.Ctx) error {
	chairmanID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var q dto.ListLevySetupQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := h.Validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// Admins see every chairman's setups.
	scope := &chairmanID
	if role, _ := helper.GetUserRoleFromToken(c); role == constants.RoleAdmin {
		scope = nil
	}

	list, total, err := h.Repo.List(scope, q)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromModels(list, total))
}

// GET /api/a/levy-setups/active?market_id=&occupancy_type=&frequency=
func (h *LevySetupController) GetActive(c *fiber.Ctx) error {
	var q dto.ListLevySetupQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if q.MarketID == nil || q.OccupancyType == nil {
		return fiber.NewError(fiber.StatusBadRequest, "market_id and occupancy_type are required")
	}

	if q.Frequency != nil {
		row, err := h.Repo.GetActiveByTuple(*q.MarketID, *q.OccupancyType, *q.Frequency)
		if err != nil {
			return err
		}
		return helper.JsonOK(c, "OK", dto.FromModel(*row))
	}

	row, err := h.Repo.GetActiveByMarketAndOccupancy(*q.MarketID, *q.OccupancyType)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromModel(*row))
}

/* ======================== UPDATE ======================== */
// PATCH /api/a/levy-setups/:id
func (h *LevySetupController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid setup id")
	}

	var req dto.UpdateLevySetupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	cur, err := h.Repo.GetByID(id)
	if err != nil {
		return err
	}
	next, err := h.Repo.ApplyUpdate(cur, req)
	if err != nil {
		return err
	}

	auditService.RecordFromCtx(c, h.DB, "levy_setup.update", map[string]interface{}{
		"levy_setup_id": id,
		"replaced_by":   next.LevySetupID,
	})

	return helper.JsonUpdated(c, "Levy setup updated", dto.FromModel(*next))
}

// POST /api/a/levy-setups/:id/deactivate
// Used when a setup can no longer be hard-deleted because payments reference it.
func (h *LevySetupController) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid setup id")
	}
	if err := h.Repo.Deactivate(id); err != nil {
		return err
	}

	auditService.RecordFromCtx(c, h.DB, "levy_setup.deactivate", map[string]interface{}{
		"levy_setup_id": id,
	})

	return helper.JsonUpdated(c, "Levy setup deactivated", fiber.Map{"levy_setup_id": id})
}

/* ======================== DELETE ======================== */
// DELETE /api/a/levy-setups/:id
func (h *LevySetupController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid setup id")
	}
	if err := h.Repo.Delete(id); err != nil {
		return err
	}

	auditService.RecordFromCtx(c, h.DB, "levy_setup.delete", map[string]interface{}{
		"levy_setup_id": id,
	})

	return helper.JsonDeleted(c, "Levy setup deleted", fiber.Map{"levy_setup_id": id})
}
