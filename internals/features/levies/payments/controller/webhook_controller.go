package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sabimarket_backend/internals/features/levies/payments/service"
	helper "sabimarket_backend/internals/helpers"
)

// WebhookController receives gateway status notifications on the public,
// unauthenticated path. The gateway retries on non-2xx.
type WebhookController struct {
	DB *gorm.DB
}

func NewWebhookController(db *gorm.DB) *WebhookController {
	return &WebhookController{DB: db}
}

// POST /api/public/payments/notification
func (h *WebhookController) HandleNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification payload")
	}

	if err := service.HandleGatewayStatusWebhook(h.DB, body); err != nil {
		log.Printf("[ERROR] gateway webhook: %v", err)
		if fe, ok := err.(*fiber.Error); ok {
			return fe
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonOK(c, "Notification processed", nil)
}
