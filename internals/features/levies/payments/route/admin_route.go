package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sabimarket_backend/internals/constants"
	paymentCtl "sabimarket_backend/internals/features/levies/payments/controller"
	authMiddleware "sabimarket_backend/internals/middlewares/auth"
)

// LevyPaymentAdminRoutes mounts the back-office ledger. The group gate above is
// wide enough for assist officers, so every route carries its own role check:
// ledger reads and QR minting stay chairman/admin, manual entry also admits
// assist officers, deletion is admin only.
func LevyPaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := paymentCtl.NewLevyPaymentAdminController(db)

	payments := r.Group("/levy-payments")
	ledgerRead := authMiddleware.OnlyRoles(constants.RoleErrorChairman("the levy ledger"), constants.ChairmanAndAbove...)

	payments.Get("/", ledgerRead, ctl.GetPaged)
	payments.Get("/trader/:trader_id/total", ledgerRead, ctl.TotalByTrader)
	payments.Get("/:id", ledgerRead, ctl.GetByID)

	payments.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorChairman("manual levy entry"), constants.ManualEntryRoles...),
		ctl.ProcessTraderLevyPayment)

	payments.Post("/qr/:trader_id", ledgerRead, ctl.IssueTraderQR)

	payments.Delete("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("levy payment deletion"), constants.AdminOnly...),
		ctl.Delete)
}
