package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sabimarket_backend/internals/constants"
	reportCtl "sabimarket_backend/internals/features/levies/reports/controller"
	authMiddleware "sabimarket_backend/internals/middlewares/auth"
)

// ReportAdminRoutes mounts the dashboard aggregates, chairman/admin only.
func ReportAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := reportCtl.NewReportController(db)

	reports := r.Group("/reports",
		authMiddleware.OnlyRoles(constants.RoleErrorChairman("market reports"), constants.ChairmanAndAbove...))

	reports.Get("/revenue/total", ctl.GetTotalRevenue)
	reports.Get("/revenue/dashboard", ctl.GetRevenueDashboard)
	reports.Get("/levies/total", ctl.GetTotalLevies)
	reports.Get("/compliance/:market_id", ctl.GetMarketComplianceRate)
}
