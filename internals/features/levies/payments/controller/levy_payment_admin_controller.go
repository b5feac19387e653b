package controller

import (
	"fmt"
	"time"

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
	database "sabimarket_backend/internals/databases"
	helper "sabimarket_backend/internals/helpers"
)

// LevyPaymentAdminController is the back-office ledger surface: listing,
// manual entry, gateway checkout, QR minting and corrections.
type LevyPaymentAdminController struct {
	DB         *gorm.DB
	Ledger     *repository.LevyPaymentRepository
	Directory  *marketRepo.DirectoryRepository
	Collection *service.CollectionService
	Codec      *service.QRCodec
	Validate   *validator.Validate
}

func NewLevyPaymentAdminController(db *gorm.DB) *LevyPaymentAdminController {
	ledger := repository.NewLevyPaymentRepository(db)
	codec := service.NewQRCodec(configs.QRSecret, configs.QRMaxAge)
	var guard service.IdempotencyGuard
	if g := service.NewRedisIdempotencyGuard(database.Redis); g != nil {
		guard = g
	}
	return &LevyPaymentAdminController{
		DB:        db,
		Ledger:    ledger,
		Directory: marketRepo.NewDirectoryRepository(db),
		Collection: service.NewCollectionService(
			marketRepo.NewDirectoryRepository(db),
			setupRepo.NewLevySetupRepository(db),
			ledger,
			codec,
			guard,
		),
		Codec:    codec,
		Validate: validator.New(),
	}
}

/* ======================= LIST / DETAIL ======================= */

// GET /api/a/levy-payments
func (h *LevyPaymentAdminController) GetPaged(c *fiber.Ctx) error {
	var q dto.ListLevyPaymentQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := h.Validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)
	list, total, err := h.Ledger.GetPaged(q, paging)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "OK", dto.FromModels(list, total).Items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/a/levy-payments/:id
func (h *LevyPaymentAdminController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid levy payment id")
	}
	row, err := h.Ledger.GetByID(id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromModel(*row))
}

// GET /api/a/levy-payments/trader/:trader_id/total
func (h *LevyPaymentAdminController) TotalByTrader(c *fiber.Ctx) error {
	traderID, err := uuid.Parse(c.Params("trader_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid trader id")
	}
	total, err := h.Ledger.TotalByTrader(traderID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", fiber.Map{"trader_id": traderID, "total_kobo": total})
}

/* ======================= MANUAL ENTRY ======================= */

// POST /api/a/levy-payments
// Manual back-office entry for collections taken outside the scan flow
// (walk-ins at the chairman's office, bank transfer reconciliation).
func (h *LevyPaymentAdminController) ProcessTraderLevyPayment(c *fiber.Ctx) error {
	operatorID, err := helper.GetUserIDFromToken(c)
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
	if req.TraderID == nil {
		return fiber.NewError(fiber.StatusBadRequest, "trader_id is required for manual entry")
	}
	if key := c.Get("X-Idempotency-Key"); key != "" && req.IdempotencyKey == nil {
		req.IdempotencyKey = &key
	}

	payment, duplicate, err := h.Collection.Collect(c.UserContext(), service.CollectInput{
		CollectorID:    operatorID,
		TraderID:       *req.TraderID,
		AmountKobo:     req.AmountKobo,
		Method:         req.Method,
		TransactionRef: req.TransactionRef,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return err
	}
	if duplicate {
		return helper.JsonOK(c, "Duplicate submission, returning existing payment", dto.FromModel(*payment))
	}

	auditService.RecordFromCtx(c, h.DB, "levy_payment.manual_entry", map[string]interface{}{
		"levy_payment_id": payment.LevyPaymentID,
		"trader_id":       payment.LevyPaymentTraderID,
		"amount_kobo":     payment.LevyPaymentAmountKobo,
		"method":          payment.LevyPaymentMethod,
	})

	resp := fiber.Map{"payment": dto.FromModel(*payment)}

	// Gateway entries get a checkout token; the row stays pending until the
	// webhook settles it.
	if payment.IsOpen() && service.GatewayEnabled() {
		trader, derr := h.Directory.GetTrader(payment.LevyPaymentTraderID)
		if derr == nil {
			if payment.LevyPaymentTransactionRef == nil {
				ref := fmt.Sprintf("LEVY-%s", payment.LevyPaymentID)
				payment.LevyPaymentTransactionRef = &ref
				if uerr := h.DB.Model(payment).
					Update("levy_payment_transaction_ref", ref).Error; uerr != nil {
					return fiber.NewError(fiber.StatusInternalServerError, uerr.Error())
				}
			}
			phone := ""
			if trader.TraderPhone != nil {
				phone = *trader.TraderPhone
			}
			token, redirectURL, serr := service.GenerateLevySnapToken(payment, trader.TraderFullName, phone)
			if serr != nil {
				return fiber.NewError(fiber.StatusBadGateway, serr.Error())
			}
			resp["snap_token"] = token
			resp["redirect_url"] = redirectURL
		}
	}

	return helper.JsonCreated(c, "Levy payment recorded", resp)
}

/* ======================= QR MINTING ======================= */

// POST /api/a/levy-payments/qr/:trader_id
// Mints a fresh signed QR payload for a trader's laminated card.
func (h *LevyPaymentAdminController) IssueTraderQR(c *fiber.Ctx) error {
	traderID, err := uuid.Parse(c.Params("trader_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid trader id")
	}
	trader, err := h.Directory.GetTrader(traderID)
	if err != nil {
		return err
	}
	if trader.TraderIsBlocked {
		return fiber.NewError(fiber.StatusForbidden, "Trader is blocked")
	}

	issuedAt := time.Now().UTC()
	payload := h.Codec.Encode(trader.TraderID, issuedAt)

	auditService.RecordFromCtx(c, h.DB, "levy_payment.qr_issue", map[string]interface{}{
		"trader_id": trader.TraderID,
		"issued_at": issuedAt,
	})
	return helper.JsonCreated(c, "QR payload issued", fiber.Map{
		"trader_id":  trader.TraderID,
		"qr_payload": payload,
		"issued_at":  issuedAt,
	})
}

/* ======================= CORRECTIONS ======================= */

// DELETE /api/a/levy-payments/:id
func (h *LevyPaymentAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid levy payment id")
	}
	row, err := h.Ledger.GetByID(id)
	if err != nil {
		return err
	}
	if err := h.Ledger.Delete(id); err != nil {
		return err
	}

	auditService.RecordFromCtx(c, h.DB, "levy_payment.delete", map[string]interface{}{
		"levy_payment_id": row.LevyPaymentID,
		"trader_id":       row.LevyPaymentTraderID,
		"amount_kobo":     row.LevyPaymentAmountKobo,
		"status":          row.LevyPaymentStatus,
	})
	return helper.JsonDeleted(c, "Levy payment deleted", fiber.Map{"levy_payment_id": id})
}
