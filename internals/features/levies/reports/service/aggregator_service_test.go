package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	paymentModel "sabimarket_backend/internals/features/levies/payments/model"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := now.AddDate(0, 0, -n)
	return &t
}

func TestPaidWithinWindow(t *testing.T) {
	tests := []struct {
		name       string
		last       *time.Time
		windowDays int
		want       bool
	}{
		{"never paid", nil, 7, false},
		{"paid today", daysAgo(0), 7, true},
		{"paid inside window", daysAgo(3), 7, true},
		{"paid exactly on boundary", daysAgo(7), 7, true}, // boundary is inclusive
		{"paid just outside", daysAgo(8), 7, false},
		{"zero window", daysAgo(0), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PaidWithinWindow(tt.last, tt.windowDays, now); got != tt.want {
				t.Errorf("PaidWithinWindow(%v, %d) = %v, want %v", tt.last, tt.windowDays, got, tt.want)
			}
		})
	}
}

func TestComplianceRate(t *testing.T) {
	seg := func(windowDays, paidDaysAgo int) TraderSegment {
		s := TraderSegment{TraderID: uuid.New(), WindowDays: windowDays}
		if paidDaysAgo >= 0 {
			s.LastPaidAt = daysAgo(paidDaysAgo)
		}
		return s
	}

	tests := []struct {
		name    string
		traders []TraderSegment
		want    float64
	}{
		{"no traders", nil, 0},
		{"all compliant", []TraderSegment{seg(7, 1), seg(7, 0)}, 1},
		{"half compliant", []TraderSegment{seg(7, 1), seg(7, 30)}, 0.5},
		{"never paid counts against", []TraderSegment{seg(7, 1), seg(7, -1)}, 0.5},
		{"no-setup trader counts against", []TraderSegment{seg(7, 1), seg(0, -1)}, 0.5},
		{"no-setup trader with old payment counts against", []TraderSegment{seg(7, 1), seg(7, 0), seg(0, 3), seg(0, -1)}, 0.5},
		{"only no-setup segments", []TraderSegment{seg(0, -1)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := MarketComplianceSnapshot{Now: now, Traders: tt.traders}
			if got := ComplianceRate(snap); got != tt.want {
				t.Errorf("ComplianceRate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComplianceRateIsReadIdempotent(t *testing.T) {
	snap := MarketComplianceSnapshot{
		Now: now,
		Traders: []TraderSegment{
			{TraderID: uuid.New(), WindowDays: 7, LastPaidAt: daysAgo(2)},
			{TraderID: uuid.New(), WindowDays: 30},
		},
	}
	first := ComplianceRate(snap)
	for i := 0; i < 5; i++ {
		if got := ComplianceRate(snap); got != first {
			t.Fatalf("run %d: ComplianceRate = %v, want %v", i, got, first)
		}
	}
}

func TestSumRevenueCountsCompletedOnly(t *testing.T) {
	rows := []RevenueRow{
		{AmountKobo: 50_000, Status: paymentModel.PaymentStatusCompleted, CollectionDate: now},
		{AmountKobo: 20_000, Status: paymentModel.PaymentStatusPending, CollectionDate: now},
		{AmountKobo: 30_000, Status: paymentModel.PaymentStatusFailed, CollectionDate: now},
		{AmountKobo: 10_000, Status: paymentModel.PaymentStatusCompleted, CollectionDate: now},
	}
	if got := SumRevenue(rows); got != 60_000 {
		t.Errorf("SumRevenue = %d, want 60000", got)
	}
	if got := SumRevenue(nil); got != 0 {
		t.Errorf("SumRevenue(nil) = %d, want 0", got)
	}
}

func TestSumRevenueBetweenInclusiveBounds(t *testing.T) {
	from := now.AddDate(0, 0, -7)
	rows := []RevenueRow{
		{AmountKobo: 1, Status: paymentModel.PaymentStatusCompleted, CollectionDate: from},                    // on lower bound
		{AmountKobo: 2, Status: paymentModel.PaymentStatusCompleted, CollectionDate: now},                     // on upper bound
		{AmountKobo: 4, Status: paymentModel.PaymentStatusCompleted, CollectionDate: from.AddDate(0, 0, -1)},  // before
		{AmountKobo: 8, Status: paymentModel.PaymentStatusCompleted, CollectionDate: now.AddDate(0, 0, 1)},    // after
		{AmountKobo: 16, Status: paymentModel.PaymentStatusPending, CollectionDate: now},                      // pending
	}
	if got := SumRevenueBetween(rows, from, now); got != 3 {
		t.Errorf("SumRevenueBetween = %d, want 3", got)
	}
}

func TestPeriodDelta(t *testing.T) {
	span := 24 * time.Hour
	rows := []RevenueRow{
		{AmountKobo: 100, Status: paymentModel.PaymentStatusCompleted, CollectionDate: now.Add(-2 * time.Hour)},  // current day
		{AmountKobo: 40, Status: paymentModel.PaymentStatusCompleted, CollectionDate: now.Add(-30 * time.Hour)},  // previous day
		{AmountKobo: 7, Status: paymentModel.PaymentStatusCompleted, CollectionDate: now.Add(-60 * time.Hour)},   // older
		{AmountKobo: 500, Status: paymentModel.PaymentStatusFailed, CollectionDate: now.Add(-1 * time.Hour)},     // ignored
	}

	current, previous, delta := PeriodDelta(rows, now, span)
	if current != 100 {
		t.Errorf("current = %d, want 100", current)
	}
	if previous != 40 {
		t.Errorf("previous = %d, want 40", previous)
	}
	if delta != 60 {
		t.Errorf("delta = %d, want 60", delta)
	}
}
