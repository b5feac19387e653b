package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sabimarket_backend/internals/features/levies/payments/dto"
	paymentModel "sabimarket_backend/internals/features/levies/payments/model"
	reportService "sabimarket_backend/internals/features/levies/reports/service"
	setupModel "sabimarket_backend/internals/features/levies/setups/model"
	marketModel "sabimarket_backend/internals/features/markets/model"
)

/* =========================================================
   Collaborator interfaces (satisfied by the concrete repositories)
========================================================= */

type TraderDirectory interface {
	GetTrader(id uuid.UUID) (*marketModel.TraderModel, error)
	GetMarket(id uuid.UUID) (*marketModel.MarketModel, error)
}

type SetupSource interface {
	GetActiveByTuple(marketID uuid.UUID, occupancy setupModel.OccupancyType, frequency setupModel.PaymentFrequency) (*setupModel.LevySetupModel, error)
}

type Ledger interface {
	Append(p *paymentModel.LevyPaymentModel) error
	FindByIdempotencyKey(key string) (*paymentModel.LevyPaymentModel, error)
	LastCompletedAt(traderID uuid.UUID) (*time.Time, error)
}

// IdempotencyGuard is the redis fast path in front of the ledger's unique
// index. Reserve returns false when the key was already taken.
type IdempotencyGuard interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

/* =========================================================
   Collection workflow: scan → verify → collect → record
========================================================= */

type CollectionService struct {
	Directory TraderDirectory
	Setups    SetupSource
	Ledger    Ledger
	Codec     *QRCodec
	Guard     IdempotencyGuard // nil disables the fast path
	Now       func() time.Time
}

func NewCollectionService(dir TraderDirectory, setups SetupSource, ledger Ledger, codec *QRCodec, guard IdempotencyGuard) *CollectionService {
	return &CollectionService{
		Directory: dir,
		Setups:    setups,
		Ledger:    ledger,
		Codec:     codec,
		Guard:     guard,
		Now:       time.Now,
	}
}

type CollectInput struct {
	CollectorID    uuid.UUID
	ChairmanID     *uuid.UUID
	TraderID       uuid.UUID
	AmountKobo     *int64
	Method         paymentModel.PaymentMethod
	TransactionRef *string
	IdempotencyKey *string
	QRPayload      *string
}

// Collect records one levy collection. The second return is true when the
// submission was a duplicate and the existing row is returned instead.
func (s *CollectionService) Collect(ctx context.Context, in CollectInput) (*paymentModel.LevyPaymentModel, bool, error) {
	if !in.Method.Valid() {
		return nil, false, fiber.NewError(fiber.StatusBadRequest, "Unknown payment method")
	}

	// Duplicate-submission check before any write.
	if in.IdempotencyKey != nil && *in.IdempotencyKey != "" {
		existing, err := s.Ledger.FindByIdempotencyKey(*in.IdempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
		if s.Guard != nil {
			// Redis being down degrades to the unique index alone.
			if ok, err := s.Guard.Reserve(ctx, *in.IdempotencyKey, 10*time.Minute); err == nil && !ok {
				return nil, false, fiber.NewError(fiber.StatusConflict, "Duplicate submission already in progress")
			}
		}
	}

	trader, market, err := s.resolveTrader(in.TraderID)
	if err != nil {
		return nil, false, err
	}

	setup, err := s.activeSetupFor(trader)
	if err != nil {
		return nil, false, err
	}

	amount := setup.LevySetupAmountKobo
	if in.AmountKobo != nil {
		amount = *in.AmountKobo
	}
	if amount <= 0 {
		return nil, false, fiber.NewError(fiber.StatusBadRequest, "Payment amount must be positive")
	}

	status := paymentModel.PaymentStatusCompleted
	if in.Method.IsAsync() {
		status = paymentModel.PaymentStatusPending
	}

	now := s.Now().UTC()
	due := now.AddDate(0, 0, setup.LevySetupFrequency.DayCount())
	payment := &paymentModel.LevyPaymentModel{
		LevyPaymentSetupID:        &setup.LevySetupID,
		LevyPaymentChairmanID:     firstNonNil(in.ChairmanID, market.MarketChairmanID),
		LevyPaymentMarketID:       market.MarketID,
		LevyPaymentTraderID:       trader.TraderID,
		LevyPaymentGoodBoyID:      &in.CollectorID,
		LevyPaymentAmountKobo:     amount,
		LevyPaymentOccupancyType:  trader.TraderOccupancyType,
		LevyPaymentPeriod:         setup.LevySetupFrequency,
		LevyPaymentMethod:         in.Method,
		LevyPaymentStatus:         status,
		LevyPaymentTransactionRef: in.TransactionRef,
		LevyPaymentIdempotencyKey: in.IdempotencyKey,
		LevyPaymentPaymentDate:    &now,
		LevyPaymentDueDate:        &due,
		LevyPaymentCollectionDate: now,
		LevyPaymentQRPayload:      in.QRPayload,
	}

	if err := s.Ledger.Append(payment); err != nil {
		// The unique index caught a concurrent duplicate: return the winner.
		if errors.Is(err, paymentModel.ErrDuplicateIdempotencyKey) && in.IdempotencyKey != nil {
			if existing, ferr := s.Ledger.FindByIdempotencyKey(*in.IdempotencyKey); ferr == nil && existing != nil {
				return existing, true, nil
			}
		}
		return nil, false, err
	}
	return payment, false, nil
}

// VerifyScan is the QR verification gateway:
// Scanned → Decoded → TraderResolved → Verified → terminal response.
func (s *CollectionService) VerifyScan(payload string) (*dto.QRVerificationResponse, error) {
	traderID, _, err := s.Codec.Decode(payload)
	if err != nil {
		return nil, err // ErrInvalidQR / ErrExpiredQR, mapped by the controller
	}

	trader, _, err := s.resolveTrader(traderID)
	if err != nil {
		return nil, err
	}

	setup, err := s.activeSetupFor(trader)
	if err != nil {
		return nil, err
	}

	last, err := s.Ledger.LastCompletedAt(trader.TraderID)
	if err != nil {
		return nil, err
	}
	compliant := reportService.PaidWithinWindow(last, setup.LevySetupFrequency.DayCount(), s.Now().UTC())

	return &dto.QRVerificationResponse{
		TraderID:        trader.TraderID,
		TraderFullName:  trader.TraderFullName,
		MarketID:        trader.TraderMarketID,
		OccupancyType:   trader.TraderOccupancyType,
		Frequency:       setup.LevySetupFrequency,
		AmountDueKobo:   setup.LevySetupAmountKobo,
		IsCompliant:     compliant,
		LastPaymentDate: last,
	}, nil
}

/* ======================= internals ======================= */

// resolveTrader loads the trader and enforces block/market-active status.
func (s *CollectionService) resolveTrader(traderID uuid.UUID) (*marketModel.TraderModel, *marketModel.MarketModel, error) {
	trader, err := s.Directory.GetTrader(traderID)
	if err != nil {
		return nil, nil, err
	}
	if trader.TraderIsBlocked {
		return nil, nil, fiber.NewError(fiber.StatusForbidden, "Trader is blocked")
	}
	market, err := s.Directory.GetMarket(trader.TraderMarketID)
	if err != nil {
		return nil, nil, err
	}
	if !market.MarketIsActive {
		return nil, nil, fiber.NewError(fiber.StatusForbidden, "Market is inactive")
	}
	return trader, market, nil
}

func (s *CollectionService) activeSetupFor(trader *marketModel.TraderModel) (*setupModel.LevySetupModel, error) {
	setup, err := s.Setups.GetActiveByTuple(trader.TraderMarketID, trader.TraderOccupancyType, trader.TraderFrequency)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok && fe.Code == fiber.StatusNotFound {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				"Levy not configured for this market and occupancy type — contact the market chairman")
		}
		return nil, err
	}
	return setup, nil
}

func firstNonNil(vals ...*uuid.UUID) *uuid.UUID {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
