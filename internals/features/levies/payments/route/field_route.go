package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentCtl "sabimarket_backend/internals/features/levies/payments/controller"
	"sabimarket_backend/internals/middlewares"
)

// LevyCollectionRoutes mounts the field workflow (scan, collect, my-ledger)
// under the collector group. Scans carry the tighter rate limit.
func LevyCollectionRoutes(r fiber.Router, db *gorm.DB) {
	ctl := paymentCtl.NewCollectionController(db)

	levies := r.Group("/levies")

	levies.Post("/scan", middlewares.ScanRateLimiter(), ctl.ValidateQRCode)
	levies.Post("/collect", ctl.Collect)

	levies.Get("/today", ctl.MyTodayLevies)
	levies.Get("/range", ctl.MyLeviesByDateRange)
	levies.Get("/total", ctl.MyTotalCollected)
}
