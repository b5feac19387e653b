package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sabimarket_backend/internals/constants"
	marketCtl "sabimarket_backend/internals/features/markets/controller"
	authMiddleware "sabimarket_backend/internals/middlewares/auth"
)

// MarketAdminRoutes mounts market and trader administration, chairman/admin only.
func MarketAdminRoutes(r fiber.Router, db *gorm.DB) {
	mc := marketCtl.NewMarketController(db)
	tc := marketCtl.NewTraderController(db)

	directoryAdmin := authMiddleware.OnlyRoles(constants.RoleErrorChairman("market administration"), constants.ChairmanAndAbove...)

	markets := r.Group("/markets", directoryAdmin)
	markets.Post("/", mc.Create)
	markets.Get("/", mc.List)
	markets.Get("/:id", mc.GetByID)
	markets.Patch("/:id", mc.Update)

	traders := r.Group("/traders", directoryAdmin)
	traders.Post("/", tc.Register)
	traders.Get("/market/:market_id", tc.ListByMarket)
	traders.Get("/:id", tc.GetByID)
	traders.Patch("/:id", tc.Update)
	traders.Post("/:id/block", tc.Block)
	traders.Post("/:id/unblock", tc.Unblock)
}
