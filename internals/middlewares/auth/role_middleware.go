package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "sabimarket_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError validates the role claim with a custom message.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := helper.RequireRoles(c, allowedRoles, customForbiddenMessage); err != nil {
			return err
		}
		return c.Next()
	}
}

// OnlyRoles is the short form used in route files.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
