package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sabimarket_backend/internals/constants"
	routeDetails "sabimarket_backend/internals/route/details"
	authMiddleware "sabimarket_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → no JWT (gateway callbacks)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ADMIN → back-office staff. The group gate admits assist officers so they
	// can reach manual levy entry; feature routes narrow to chairman/admin.
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorBackOffice("the back office"),
			constants.BackOfficeRoles...,
		),
	)

	// FIELD → collectors (goodboys, assist officers, caretakers)
	log.Println("[INFO] Setting up FIELD group (Auth + RoleCheck)...")
	field := app.Group("/api/g",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorCollector("field collection"),
			constants.CollectorRoles...,
		),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Levy routes...")
	routeDetails.LevyAdminRoutes(admin, db)
	routeDetails.LevyFieldRoutes(field, db)
	routeDetails.LevyPublicRoutes(public, db)

	log.Println("[INFO] Mounting Market routes...")
	routeDetails.MarketAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Report routes...")
	routeDetails.ReportAdminRoutes(admin, db)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserAdminRoutes(admin, db)
}
