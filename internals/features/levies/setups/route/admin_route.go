package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sabimarket_backend/internals/constants"
	setupCtl "sabimarket_backend/internals/features/levies/setups/controller"
	authMiddleware "sabimarket_backend/internals/middlewares/auth"
)

// LevySetupAdminRoutes mounts the rate-card CRUD, chairman/admin only.
func LevySetupAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := setupCtl.NewLevySetupController(db)

	setups := r.Group("/levy-setups",
		authMiddleware.OnlyRoles(constants.RoleErrorChairman("levy setup configuration"), constants.ChairmanAndAbove...))

	setups.Post("/", ctl.Configure)
	setups.Get("/", ctl.List)
	setups.Get("/active", ctl.GetActive)
	setups.Get("/:id", ctl.GetByID)
	setups.Patch("/:id", ctl.Update)
	setups.Post("/:id/deactivate", ctl.Deactivate)
	setups.Delete("/:id", ctl.Delete)
}
