package service

import (
	"errors"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	paymentModel "sabimarket_backend/internals/features/levies/payments/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client
var snapReady bool

// InitMidtrans must be called at bootstrap. Gateway collections are rejected
// when no server key is configured.
func InitMidtrans(serverKey string, useProduction bool) {
	if serverKey == "" {
		return
	}
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
	snapReady = true
}

func GatewayEnabled() bool { return snapReady }

// GenerateLevySnapToken creates a gateway checkout for a pending levy payment.
// The ledger row's transaction reference doubles as the gateway OrderID.
func GenerateLevySnapToken(p *paymentModel.LevyPaymentModel, payerName, payerPhone string) (token string, redirectURL string, err error) {
	if !snapReady {
		return "", "", errors.New("payment gateway is not configured")
	}
	if p.LevyPaymentAmountKobo <= 0 {
		return "", "", errors.New("invalid levy_payment_amount_kobo")
	}
	if p.LevyPaymentTransactionRef == nil || *p.LevyPaymentTransactionRef == "" {
		return "", "", errors.New("levy_payment_transaction_ref is required (used as OrderID)")
	}

	// Midtrans amounts are whole currency units.
	gross := p.LevyPaymentAmountKobo / 100

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  *p.LevyPaymentTransactionRef,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payerName,
			Phone: payerPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       p.LevyPaymentID.String(),
				Price:    gross,
				Qty:      1,
				Name:     fmt.Sprintf("Market levy (%s, %s)", p.LevyPaymentOccupancyType, p.LevyPaymentPeriod),
				Category: "LEVY",
			},
		},
	}

	resp, snapErr := SnapClient.CreateTransaction(req)
	if snapErr != nil {
		return "", "", snapErr
	}
	return resp.Token, resp.RedirectURL, nil
}
