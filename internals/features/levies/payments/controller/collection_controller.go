package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "sabimarket_backend/internals/features/audit/service"
	"sabimarket_backend/internals/configs"
	"sabimarket_backend/internals/features/levies/payments/dto"
	"sabimarket_backend/internals/features/levies/payments/repository"
	"sabimarket_backend/internals/features/levies/payments/service"
	setupRepo "sabimarket_backend/internals/features/levies/setups/repository"
	marketRepo "sabimarket_backend/internals/features/markets/repository"
	notifService "sabimarket_backend/internals/features/notifications/service"
	database "sabimarket_backend/internals/databases"
	helper "sabimarket_backend/internals/helpers"
)

// CollectionController serves the field roles: scan → verify → collect.
type CollectionController struct {
	DB         *gorm.DB
	Ledger     *repository.LevyPaymentRepository
	Collection *service.CollectionService
	Validate   *validator.Validate
}

func NewCollectionController(db *gorm.DB) *CollectionController {
	ledger := repository.NewLevyPaymentRepository(db)
	codec := service.NewQRCodec(configs.QRSecret, configs.QRMaxAge)
	var guard service.IdempotencyGuard
	if g := service.NewRedisIdempotencyGuard(database.Redis); g != nil {
		guard = g
	}
	return &CollectionController{
		DB:     db,
		Ledger: ledger,
		Collection: service.NewCollectionService(
			marketRepo.NewDirectoryRepository(db),
			setupRepo.NewLevySetupRepository(db),
			ledger,
			codec,
			guard,
		),
		Validate: validator.New(),
	}
}

/* ======================= SCAN ======================= */
// POST /api/g/levies/scan
func (h *CollectionController) ValidateQRCode(c *fiber.Ctx) error {
	var req dto.ValidateQRCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.Collection.VerifyScan(req.QRPayload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQR) {
			return helper.JsonErrorWithCode(c, fiber.StatusBadRequest, "INVALID_QR", "QR payload is malformed or tampered")
		}
		if errors.Is(err, service.ErrExpiredQR) {
			return helper.JsonErrorWithCode(c, fiber.StatusBadRequest, "INVALID_QR", "QR payload has expired, ask the trader to refresh it")
		}
		return err
	}
	return helper.JsonOK(c, "Trader verified", resp)
}

/* ======================= COLLECT ======================= */
// POST /api/g/levies/collect
func (h *CollectionController) Collect(c *fiber.Ctx) error {
	collectorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CollectLevyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if key := c.Get("X-Idempotency-Key"); key != "" && req.IdempotencyKey == nil {
		req.IdempotencyKey = &key
	}

	// A scan payload outranks a trusted trader_id: verify it first.
	traderID := uuid.Nil
	if req.QRPayload != nil {
		verified, err := h.Collection.VerifyScan(*req.QRPayload)
		if err != nil {
			if errors.Is(err, service.ErrInvalidQR) || errors.Is(err, service.ErrExpiredQR) {
				return helper.JsonErrorWithCode(c, fiber.StatusBadRequest, "INVALID_QR", "QR payload is malformed or tampered")
			}
			return err
		}
		traderID = verified.TraderID
	} else if req.TraderID != nil {
		traderID = *req.TraderID
	}
	if traderID == uuid.Nil {
		return fiber.NewError(fiber.StatusBadRequest, "Either qr_payload or trader_id is required")
	}

	payment, duplicate, err := h.Collection.Collect(c.UserContext(), service.CollectInput{
		CollectorID:    collectorID,
		TraderID:       traderID,
		AmountKobo:     req.AmountKobo,
		Method:         req.Method,
		TransactionRef: req.TransactionRef,
		IdempotencyKey: req.IdempotencyKey,
		QRPayload:      req.QRPayload,
	})
	if err != nil {
		return err
	}
	if duplicate {
		return helper.JsonOK(c, "Duplicate submission, returning existing payment", dto.FromModel(*payment))
	}

	auditService.RecordFromCtx(c, h.DB, "levy_payment.collect", map[string]interface{}{
		"levy_payment_id": payment.LevyPaymentID,
		"trader_id":       payment.LevyPaymentTraderID,
		"amount_kobo":     payment.LevyPaymentAmountKobo,
		"method":          payment.LevyPaymentMethod,
	})
	notifService.Dispatch(h.DB, collectorID, "Levy collected",
		"Collection recorded successfully.")

	return helper.JsonCreated(c, "Levy payment recorded", dto.FromModel(*payment))
}

/* ======================= MY LEDGER VIEWS ======================= */

// GET /api/g/levies/today
func (h *CollectionController) MyTodayLevies(c *fiber.Ctx) error {
	goodBoyID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	list, total, err := h.Ledger.GetTodayForGoodBoy(goodBoyID, paging)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "OK", dto.FromModels(list, total).Items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/g/levies/range?from=&to=
func (h *CollectionController) MyLeviesByDateRange(c *fiber.Ctx) error {
	goodBoyID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := h.Validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if q.To.Before(q.From) {
		return fiber.NewError(fiber.StatusBadRequest, "to must not precede from")
	}

	list, err := h.Ledger.GetByDateRange(goodBoyID, q.From, q.To)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromModels(list, int64(len(list))))
}

// GET /api/g/levies/total?from=&to=
func (h *CollectionController) MyTotalCollected(c *fiber.Ctx) error {
	goodBoyID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := h.Validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	total, err := h.Ledger.TotalByGoodBoy(goodBoyID, q.From, q.To)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", fiber.Map{"total_kobo": total})
}
