package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	PaymentRoute "sabimarket_backend/internals/features/levies/payments/route"
	SetupRoute "sabimarket_backend/internals/features/levies/setups/route"
)

func LevyAdminRoutes(r fiber.Router, db *gorm.DB) {
	SetupRoute.LevySetupAdminRoutes(r, db)
	PaymentRoute.LevyPaymentAdminRoutes(r, db)
}

func LevyFieldRoutes(r fiber.Router, db *gorm.DB) {
	PaymentRoute.LevyCollectionRoutes(r, db)
}

func LevyPublicRoutes(r fiber.Router, db *gorm.DB) {
	PaymentRoute.LevyPaymentPublicRoutes(r, db)
}
