package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sabimarket_backend/internals/constants"
	userCtl "sabimarket_backend/internals/features/users/controller"
	"sabimarket_backend/internals/middlewares"
	authMiddleware "sabimarket_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the unauthenticated login and refresh endpoints.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userCtl.NewAuthController(db)
	r.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	r.Post("/refresh", middlewares.LoginRateLimiter(), ctl.Refresh)
}

// UserAdminRoutes mounts account management under the authenticated group.
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userCtl.NewAuthController(db)

	users := r.Group("/users")
	users.Get("/me", ctl.Me)
	users.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("user provisioning"), constants.AdminOnly...),
		ctl.CreateUser)
}
