package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentCtl "sabimarket_backend/internals/features/levies/payments/controller"
)

// LevyPaymentPublicRoutes mounts the unauthenticated gateway callback.
func LevyPaymentPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := paymentCtl.NewWebhookController(db)

	r.Post("/payments/notification", ctl.HandleNotification)
}
