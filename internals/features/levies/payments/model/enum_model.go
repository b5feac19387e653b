package model

import "errors"

type PaymentStatus string
type PaymentMethod string

// ErrDuplicateIdempotencyKey marks an idempotency-key collision on insert.
// Callers fetch and return the existing row instead of failing.
var ErrDuplicateIdempotencyKey = errors.New("levy payment idempotency key already used")

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodPOS      PaymentMethod = "pos"
	PaymentMethodGateway  PaymentMethod = "gateway"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodPOS, PaymentMethodGateway:
		return true
	}
	return false
}

// IsAsync reports whether the method settles through an external gateway,
// in which case a new payment starts as pending instead of completed.
func (m PaymentMethod) IsAsync() bool {
	return m == PaymentMethodGateway
}
