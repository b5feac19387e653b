package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	paymentModel "sabimarket_backend/internals/features/levies/payments/model"
	setupModel "sabimarket_backend/internals/features/levies/setups/model"
	marketModel "sabimarket_backend/internals/features/markets/model"
)

/* ======================= fakes ======================= */

type fakeDirectory struct {
	traders map[uuid.UUID]*marketModel.TraderModel
	markets map[uuid.UUID]*marketModel.MarketModel
}

func (f *fakeDirectory) GetTrader(id uuid.UUID) (*marketModel.TraderModel, error) {
	if t, ok := f.traders[id]; ok {
		return t, nil
	}
	return nil, fiber.NewError(fiber.StatusNotFound, "Trader not found")
}

func (f *fakeDirectory) GetMarket(id uuid.UUID) (*marketModel.MarketModel, error) {
	if m, ok := f.markets[id]; ok {
		return m, nil
	}
	return nil, fiber.NewError(fiber.StatusNotFound, "Market not found")
}

type fakeSetups struct {
	setups map[string]*setupModel.LevySetupModel
}

func setupKey(marketID uuid.UUID, occ setupModel.OccupancyType, freq setupModel.PaymentFrequency) string {
	return marketID.String() + "|" + string(occ) + "|" + string(freq)
}

func (f *fakeSetups) GetActiveByTuple(marketID uuid.UUID, occ setupModel.OccupancyType, freq setupModel.PaymentFrequency) (*setupModel.LevySetupModel, error) {
	if s, ok := f.setups[setupKey(marketID, occ, freq)]; ok {
		return s, nil
	}
	return nil, fiber.NewError(fiber.StatusNotFound, "No active levy setup for this market and occupancy type")
}

type fakeLedger struct {
	rows      []*paymentModel.LevyPaymentModel
	appendErr error
}

func (f *fakeLedger) Append(p *paymentModel.LevyPaymentModel) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	if p.LevyPaymentID == uuid.Nil {
		p.LevyPaymentID = uuid.New()
	}
	f.rows = append(f.rows, p)
	return nil
}

func (f *fakeLedger) FindByIdempotencyKey(key string) (*paymentModel.LevyPaymentModel, error) {
	for _, r := range f.rows {
		if r.LevyPaymentIdempotencyKey != nil && *r.LevyPaymentIdempotencyKey == key {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) LastCompletedAt(traderID uuid.UUID) (*time.Time, error) {
	var last *time.Time
	for _, r := range f.rows {
		if r.LevyPaymentTraderID != traderID || r.LevyPaymentStatus != paymentModel.PaymentStatusCompleted {
			continue
		}
		t := r.LevyPaymentCollectionDate
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last, nil
}

type fakeGuard struct {
	taken map[string]bool
}

func (f *fakeGuard) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	if f.taken == nil {
		f.taken = map[string]bool{}
	}
	if f.taken[key] {
		return false, nil
	}
	f.taken[key] = true
	return true, nil
}

/* ======================= harness ======================= */

type fixture struct {
	svc      *CollectionService
	ledger   *fakeLedger
	market   *marketModel.MarketModel
	trader   *marketModel.TraderModel
	setup    *setupModel.LevySetupModel
	now      time.Time
}

// newFixture builds one market with a daily open-space rate of 500 naira
// (50_000 kobo) and one registered trader.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	chairmanID := uuid.New()
	market := &marketModel.MarketModel{
		MarketID:         uuid.New(),
		MarketChairmanID: &chairmanID,
		MarketName:       "Oja-Oba",
		MarketIsActive:   true,
	}
	trader := &marketModel.TraderModel{
		TraderID:            uuid.New(),
		TraderMarketID:      market.MarketID,
		TraderFullName:      "Mama Nkechi",
		TraderOccupancyType: setupModel.OccupancyOpenSpace,
		TraderFrequency:     setupModel.FrequencyDaily,
	}
	setup := &setupModel.LevySetupModel{
		LevySetupID:            uuid.New(),
		LevySetupChairmanID:    &chairmanID,
		LevySetupMarketID:      market.MarketID,
		LevySetupOccupancyType: setupModel.OccupancyOpenSpace,
		LevySetupFrequency:     setupModel.FrequencyDaily,
		LevySetupAmountKobo:    50_000,
		LevySetupIsActive:      true,
	}

	ledger := &fakeLedger{}
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := NewCollectionService(
		&fakeDirectory{
			traders: map[uuid.UUID]*marketModel.TraderModel{trader.TraderID: trader},
			markets: map[uuid.UUID]*marketModel.MarketModel{market.MarketID: market},
		},
		&fakeSetups{setups: map[string]*setupModel.LevySetupModel{
			setupKey(market.MarketID, setupModel.OccupancyOpenSpace, setupModel.FrequencyDaily): setup,
		}},
		ledger,
		NewQRCodec("test-secret", 0),
		&fakeGuard{},
	)
	svc.Now = func() time.Time { return now }

	return &fixture{svc: svc, ledger: ledger, market: market, trader: trader, setup: setup, now: now}
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	if !ok {
		t.Fatalf("expected *fiber.Error, got %T: %v", err, err)
	}
	return fe.Code
}

/* ======================= Collect ======================= */

func TestCollectDefaultsAmountFromSetup(t *testing.T) {
	fx := newFixture(t)

	p, dup, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID: uuid.New(),
		TraderID:    fx.trader.TraderID,
		Method:      paymentModel.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if dup {
		t.Fatal("unexpected duplicate")
	}
	if p.LevyPaymentAmountKobo != 50_000 {
		t.Errorf("amount = %d, want 50000", p.LevyPaymentAmountKobo)
	}
	if p.LevyPaymentStatus != paymentModel.PaymentStatusCompleted {
		t.Errorf("status = %s, want completed", p.LevyPaymentStatus)
	}
	if p.LevyPaymentSetupID == nil || *p.LevyPaymentSetupID != fx.setup.LevySetupID {
		t.Error("payment not linked to the active setup")
	}
	if p.LevyPaymentChairmanID == nil || *p.LevyPaymentChairmanID != *fx.market.MarketChairmanID {
		t.Error("chairman not inherited from market")
	}
	wantDue := fx.now.AddDate(0, 0, 1)
	if p.LevyPaymentDueDate == nil || !p.LevyPaymentDueDate.Equal(wantDue) {
		t.Errorf("due date = %v, want %v", p.LevyPaymentDueDate, wantDue)
	}
}

func TestCollectExplicitAmountOverridesSetup(t *testing.T) {
	fx := newFixture(t)
	amount := int64(75_000)

	p, _, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID: uuid.New(),
		TraderID:    fx.trader.TraderID,
		AmountKobo:  &amount,
		Method:      paymentModel.PaymentMethodTransfer,
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if p.LevyPaymentAmountKobo != amount {
		t.Errorf("amount = %d, want %d", p.LevyPaymentAmountKobo, amount)
	}
}

func TestCollectGatewayStartsPending(t *testing.T) {
	fx := newFixture(t)

	p, _, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID: uuid.New(),
		TraderID:    fx.trader.TraderID,
		Method:      paymentModel.PaymentMethodGateway,
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if p.LevyPaymentStatus != paymentModel.PaymentStatusPending {
		t.Errorf("status = %s, want pending", p.LevyPaymentStatus)
	}
}

func TestCollectRejectsUnknownMethod(t *testing.T) {
	fx := newFixture(t)

	_, _, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID: uuid.New(),
		TraderID:    fx.trader.TraderID,
		Method:      paymentModel.PaymentMethod("barter"),
	})
	if got := fiberCode(t, err); got != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", got)
	}
}

func TestCollectWithoutSetupFailsWithGuidance(t *testing.T) {
	fx := newFixture(t)
	fx.trader.TraderOccupancyType = setupModel.OccupancyWarehouse // no rate configured

	_, _, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID: uuid.New(),
		TraderID:    fx.trader.TraderID,
		Method:      paymentModel.PaymentMethodCash,
	})
	if got := fiberCode(t, err); got != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got)
	}
	fe := err.(*fiber.Error)
	if fe.Message == "" || fe.Message == "No active levy setup for this market and occupancy type" {
		t.Errorf("message should tell the collector to contact the chairman, got %q", fe.Message)
	}
}

func TestCollectBlockedTraderForbidden(t *testing.T) {
	fx := newFixture(t)
	fx.trader.TraderIsBlocked = true

	_, _, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID: uuid.New(),
		TraderID:    fx.trader.TraderID,
		Method:      paymentModel.PaymentMethodCash,
	})
	if got := fiberCode(t, err); got != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", got)
	}
}

func TestCollectInactiveMarketForbidden(t *testing.T) {
	fx := newFixture(t)
	fx.market.MarketIsActive = false

	_, _, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID: uuid.New(),
		TraderID:    fx.trader.TraderID,
		Method:      paymentModel.PaymentMethodCash,
	})
	if got := fiberCode(t, err); got != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", got)
	}
}

func TestCollectDuplicateIdempotencyKeyReturnsExisting(t *testing.T) {
	fx := newFixture(t)
	key := "scan-session-0001"

	first, dup, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID:    uuid.New(),
		TraderID:       fx.trader.TraderID,
		Method:         paymentModel.PaymentMethodCash,
		IdempotencyKey: &key,
	})
	if err != nil || dup {
		t.Fatalf("first Collect: dup=%v err=%v", dup, err)
	}

	second, dup, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID:    uuid.New(),
		TraderID:       fx.trader.TraderID,
		Method:         paymentModel.PaymentMethodCash,
		IdempotencyKey: &key,
	})
	if err != nil {
		t.Fatalf("second Collect: %v", err)
	}
	if !dup {
		t.Fatal("second submission should be reported as duplicate")
	}
	if second.LevyPaymentID != first.LevyPaymentID {
		t.Error("duplicate should return the original row")
	}
	if len(fx.ledger.rows) != 1 {
		t.Errorf("ledger rows = %d, want 1", len(fx.ledger.rows))
	}
}

func TestCollectConcurrentDuplicateCaughtByUniqueIndex(t *testing.T) {
	fx := newFixture(t)
	key := "scan-session-0002"

	// Seed the row the "other" request inserted, then make Append fail the way
	// the repository does on a unique violation.
	existing := &paymentModel.LevyPaymentModel{
		LevyPaymentID:             uuid.New(),
		LevyPaymentTraderID:       fx.trader.TraderID,
		LevyPaymentMarketID:       fx.market.MarketID,
		LevyPaymentAmountKobo:     50_000,
		LevyPaymentStatus:         paymentModel.PaymentStatusCompleted,
		LevyPaymentIdempotencyKey: &key,
	}

	fx.svc.Guard = nil // bypass the fast path so Append is reached
	fx.ledger.appendErr = paymentModel.ErrDuplicateIdempotencyKey

	// FindByIdempotencyKey must miss on the pre-check and hit after Append
	// fails, as in a true race. Simulate with a ledger that only exposes the
	// row after the first lookup.
	calls := 0
	racer := &racingLedger{inner: fx.ledger, existing: existing, calls: &calls}
	fx.svc.Ledger = racer

	p, dup, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID:    uuid.New(),
		TraderID:       fx.trader.TraderID,
		Method:         paymentModel.PaymentMethodCash,
		IdempotencyKey: &key,
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if !dup {
		t.Fatal("expected duplicate=true")
	}
	if p.LevyPaymentID != existing.LevyPaymentID {
		t.Error("should return the row that won the race")
	}
}

type racingLedger struct {
	inner    *fakeLedger
	existing *paymentModel.LevyPaymentModel
	calls    *int
}

func (r *racingLedger) Append(p *paymentModel.LevyPaymentModel) error {
	return paymentModel.ErrDuplicateIdempotencyKey
}

func (r *racingLedger) FindByIdempotencyKey(key string) (*paymentModel.LevyPaymentModel, error) {
	*r.calls++
	if *r.calls == 1 {
		return nil, nil
	}
	return r.existing, nil
}

func (r *racingLedger) LastCompletedAt(traderID uuid.UUID) (*time.Time, error) {
	return r.inner.LastCompletedAt(traderID)
}

/* ======================= VerifyScan ======================= */

func TestVerifyScanLifecycle(t *testing.T) {
	fx := newFixture(t)
	payload := fx.svc.Codec.Encode(fx.trader.TraderID, fx.now)

	// Never paid: verified but non-compliant.
	resp, err := fx.svc.VerifyScan(payload)
	if err != nil {
		t.Fatalf("VerifyScan: %v", err)
	}
	if resp.TraderFullName != "Mama Nkechi" {
		t.Errorf("name = %q", resp.TraderFullName)
	}
	if resp.AmountDueKobo != 50_000 {
		t.Errorf("amount due = %d, want 50000", resp.AmountDueKobo)
	}
	if resp.IsCompliant {
		t.Error("trader with no payments must be non-compliant")
	}
	if resp.LastPaymentDate != nil {
		t.Error("last payment date should be nil before any payment")
	}

	// Pay, then re-scan: compliant within the daily window.
	if _, _, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID: uuid.New(),
		TraderID:    fx.trader.TraderID,
		Method:      paymentModel.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	resp, err = fx.svc.VerifyScan(payload)
	if err != nil {
		t.Fatalf("VerifyScan after payment: %v", err)
	}
	if !resp.IsCompliant {
		t.Error("trader who just paid must be compliant")
	}
	if resp.LastPaymentDate == nil {
		t.Error("last payment date should be set")
	}
}

func TestVerifyScanPendingPaymentDoesNotCount(t *testing.T) {
	fx := newFixture(t)
	payload := fx.svc.Codec.Encode(fx.trader.TraderID, fx.now)

	if _, _, err := fx.svc.Collect(context.Background(), CollectInput{
		CollectorID: uuid.New(),
		TraderID:    fx.trader.TraderID,
		Method:      paymentModel.PaymentMethodGateway, // stays pending
	}); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	resp, err := fx.svc.VerifyScan(payload)
	if err != nil {
		t.Fatalf("VerifyScan: %v", err)
	}
	if resp.IsCompliant {
		t.Error("pending payment must not make a trader compliant")
	}
}

func TestVerifyScanInvalidPayload(t *testing.T) {
	fx := newFixture(t)

	if _, err := fx.svc.VerifyScan("garbage-not-a-payload"); err != ErrInvalidQR {
		t.Errorf("err = %v, want ErrInvalidQR", err)
	}
}

func TestVerifyScanUnknownTrader(t *testing.T) {
	fx := newFixture(t)
	payload := fx.svc.Codec.Encode(uuid.New(), fx.now)

	_, err := fx.svc.VerifyScan(payload)
	if got := fiberCode(t, err); got != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", got)
	}
}
