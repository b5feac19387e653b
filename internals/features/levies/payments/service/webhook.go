package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	paymentModel "sabimarket_backend/internals/features/levies/payments/model"
	"sabimarket_backend/internals/features/levies/payments/repository"
)

// HandleGatewayStatusWebhook applies a gateway notification to its pending
// ledger row. Status correction is the only post-creation mutation allowed.
func HandleGatewayStatusWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Incomplete webhook payload:", body)
		return fmt.Errorf("invalid payload")
	}

	repo := repository.NewLevyPaymentRepository(db)
	payment, err := repo.FindByTransactionRef(orderID)
	if err != nil {
		log.Printf("[ERROR] No levy payment for order_id=%s: %v", orderID, err)
		return fmt.Errorf("levy payment with order_id %s not found", orderID)
	}

	switch status {
	case "capture", "settlement":
		return repo.UpdateStatus(payment.LevyPaymentID, paymentModel.PaymentStatusCompleted)
	case "expire", "cancel", "deny":
		return repo.UpdateStatus(payment.LevyPaymentID, paymentModel.PaymentStatusFailed)
	default:
		log.Println("[INFO] Unhandled gateway status:", status)
		return nil
	}
}
