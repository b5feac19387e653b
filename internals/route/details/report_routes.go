package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ReportRoute "sabimarket_backend/internals/features/levies/reports/route"
)

func ReportAdminRoutes(r fiber.Router, db *gorm.DB) {
	ReportRoute.ReportAdminRoutes(r, db)
}
