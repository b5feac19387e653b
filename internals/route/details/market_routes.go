package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	MarketRoute "sabimarket_backend/internals/features/markets/route"
)

func MarketAdminRoutes(r fiber.Router, db *gorm.DB) {
	MarketRoute.MarketAdminRoutes(r, db)
}
