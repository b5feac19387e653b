package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	UserRoute "sabimarket_backend/internals/features/users/route"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	UserRoute.AuthRoutes(app.Group("/api"), db)
}

func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	UserRoute.UserAdminRoutes(r, db)
}
