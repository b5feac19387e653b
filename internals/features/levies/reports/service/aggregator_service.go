package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "sabimarket_backend/internals/features/levies/payments/model"
	setupModel "sabimarket_backend/internals/features/levies/setups/model"
	marketModel "sabimarket_backend/internals/features/markets/model"
)

/* =========================================================
   Snapshot (pure, in-memory)

   Dashboard queries load the relevant rows once per request and derive every
   metric from that snapshot, instead of issuing one aggregate query per metric.
   The derivation functions below are pure so concurrent dashboard calls are
   idempotent and side-effect free.
========================================================= */

// TraderSegment is one trader's levy context within a market.
type TraderSegment struct {
	TraderID   uuid.UUID
	WindowDays int // 0 when the segment has no active setup
	LastPaidAt *time.Time
}

// MarketComplianceSnapshot holds everything needed to compute a market's rate.
type MarketComplianceSnapshot struct {
	Now     time.Time
	Traders []TraderSegment
}

// PaidWithinWindow reports whether a payment at last keeps a trader compliant
// for a window of windowDays counted back from now. The boundary is inclusive:
// paying exactly windowDays ago still counts.
func PaidWithinWindow(last *time.Time, windowDays int, now time.Time) bool {
	if last == nil || windowDays <= 0 {
		return false
	}
	cutoff := now.AddDate(0, 0, -windowDays)
	return !last.Before(cutoff)
}

// ComplianceRate returns CompliantTraders / TotalTraders in 0..1. Every trader
// in the market counts in the denominator; a trader whose segment has no active
// setup can never be compliant. Zero traders yields 0, never a division error.
func ComplianceRate(s MarketComplianceSnapshot) float64 {
	if len(s.Traders) == 0 {
		return 0
	}
	compliant := 0
	for _, t := range s.Traders {
		if PaidWithinWindow(t.LastPaidAt, t.WindowDays, s.Now) {
			compliant++
		}
	}
	return float64(compliant) / float64(len(s.Traders))
}

// RevenueRow is the slice of a ledger row that revenue math needs.
type RevenueRow struct {
	AmountKobo     int64
	Status         paymentModel.PaymentStatus
	CollectionDate time.Time
}

// SumRevenue totals completed rows only. Pending and failed rows never count.
func SumRevenue(rows []RevenueRow) int64 {
	var total int64
	for _, r := range rows {
		if r.Status == paymentModel.PaymentStatusCompleted {
			total += r.AmountKobo
		}
	}
	return total
}

// SumRevenueBetween totals completed rows with collection date in [from, to].
func SumRevenueBetween(rows []RevenueRow, from, to time.Time) int64 {
	var total int64
	for _, r := range rows {
		if r.Status != paymentModel.PaymentStatusCompleted {
			continue
		}
		if r.CollectionDate.Before(from) || r.CollectionDate.After(to) {
			continue
		}
		total += r.AmountKobo
	}
	return total
}

// PeriodDelta runs the same aggregation over two adjacent windows and
// subtracts: current window [to-span, to], previous [to-2*span, to-span).
func PeriodDelta(rows []RevenueRow, to time.Time, span time.Duration) (current, previous, delta int64) {
	from := to.Add(-span)
	prevFrom := from.Add(-span)
	current = SumRevenueBetween(rows, from, to)
	previous = SumRevenueBetween(rows, prevFrom, from.Add(-time.Nanosecond))
	return current, previous, current - previous
}

/* =========================================================
   Aggregator (DB-backed snapshot loader)
========================================================= */

type AggregatorService struct {
	DB *gorm.DB
}

func NewAggregatorService(db *gorm.DB) *AggregatorService {
	return &AggregatorService{DB: db}
}

// LoadMarketComplianceSnapshot builds the snapshot for one market: traders,
// their active setup windows, and each trader's last completed payment.
func (s *AggregatorService) LoadMarketComplianceSnapshot(marketID uuid.UUID, now time.Time) (*MarketComplianceSnapshot, error) {
	var traders []marketModel.TraderModel
	if err := s.DB.
		Where("trader_market_id = ?", marketID).
		Find(&traders).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var setups []setupModel.LevySetupModel
	if err := s.DB.
		Where("levy_setup_market_id = ? AND levy_setup_is_active = TRUE", marketID).
		Order("levy_setup_created_at ASC").
		Find(&setups).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	// Newest active setup wins per tuple (legacy duplicates).
	windows := make(map[string]int, len(setups))
	for _, st := range setups {
		key := string(st.LevySetupOccupancyType) + "|" + string(st.LevySetupFrequency)
		windows[key] = st.LevySetupFrequency.DayCount()
	}

	type lastRow struct {
		TraderID uuid.UUID `gorm:"column:trader_id"`
		LastAt   time.Time `gorm:"column:last_at"`
	}
	var lasts []lastRow
	if err := s.DB.Model(&paymentModel.LevyPaymentModel{}).
		Select("levy_payment_trader_id AS trader_id, MAX(levy_payment_collection_date) AS last_at").
		Where("levy_payment_market_id = ? AND levy_payment_status = ?", marketID, paymentModel.PaymentStatusCompleted).
		Group("levy_payment_trader_id").
		Scan(&lasts).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	lastByTrader := make(map[uuid.UUID]time.Time, len(lasts))
	for _, l := range lasts {
		lastByTrader[l.TraderID] = l.LastAt
	}

	snap := &MarketComplianceSnapshot{Now: now, Traders: make([]TraderSegment, 0, len(traders))}
	for _, t := range traders {
		seg := TraderSegment{TraderID: t.TraderID}
		key := string(t.TraderOccupancyType) + "|" + string(t.TraderFrequency)
		seg.WindowDays = windows[key]
		if last, ok := lastByTrader[t.TraderID]; ok {
			lt := last
			seg.LastPaidAt = &lt
		}
		snap.Traders = append(snap.Traders, seg)
	}
	return snap, nil
}

// MarketComplianceRate is the public aggregate used by dashboards and the
// verification gateway.
func (s *AggregatorService) MarketComplianceRate(marketID uuid.UUID) (float64, error) {
	snap, err := s.LoadMarketComplianceSnapshot(marketID, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return ComplianceRate(*snap), nil
}

// TotalRevenue sums completed ledger rows, optionally within a market.
func (s *AggregatorService) TotalRevenue(marketID *uuid.UUID) (int64, error) {
	q := s.DB.Model(&paymentModel.LevyPaymentModel{}).
		Where("levy_payment_status = ?", paymentModel.PaymentStatusCompleted)
	if marketID != nil {
		q = q.Where("levy_payment_market_id = ?", *marketID)
	}
	var total int64
	if err := q.Select("COALESCE(SUM(levy_payment_amount_kobo), 0)").Scan(&total).Error; err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return total, nil
}

// TotalLevies sums completed rows collected in [from, to] inclusive.
func (s *AggregatorService) TotalLevies(marketID *uuid.UUID, from, to time.Time) (int64, error) {
	q := s.DB.Model(&paymentModel.LevyPaymentModel{}).
		Where("levy_payment_status = ? AND levy_payment_collection_date >= ? AND levy_payment_collection_date <= ?",
			paymentModel.PaymentStatusCompleted, from, to)
	if marketID != nil {
		q = q.Where("levy_payment_market_id = ?", *marketID)
	}
	var total int64
	if err := q.Select("COALESCE(SUM(levy_payment_amount_kobo), 0)").Scan(&total).Error; err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return total, nil
}

// RevenueDashboard loads one snapshot of ledger rows and derives the headline
// metrics plus day-over-day and period-over-period deltas from it.
func (s *AggregatorService) RevenueDashboard(marketID *uuid.UUID, now time.Time) (*RevenueDashboard, error) {
	// One load, many metrics: 60 days back covers the widest delta window.
	since := now.AddDate(0, 0, -60)
	q := s.DB.Model(&paymentModel.LevyPaymentModel{}).
		Where("levy_payment_collection_date >= ?", since)
	if marketID != nil {
		q = q.Where("levy_payment_market_id = ?", *marketID)
	}
	var models []paymentModel.LevyPaymentModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	rows := make([]RevenueRow, 0, len(models))
	for _, mdl := range models {
		rows = append(rows, RevenueRow{
			AmountKobo:     mdl.LevyPaymentAmountKobo,
			Status:         mdl.LevyPaymentStatus,
			CollectionDate: mdl.LevyPaymentCollectionDate,
		})
	}

	allTime, err := s.TotalRevenue(marketID)
	if err != nil {
		return nil, err
	}

	dayCur, dayPrev, dayDelta := PeriodDelta(rows, now, 24*time.Hour)
	monthCur, monthPrev, monthDelta := PeriodDelta(rows, now, 30*24*time.Hour)

	return &RevenueDashboard{
		TotalRevenueKobo:  allTime,
		TodayKobo:         dayCur,
		YesterdayKobo:     dayPrev,
		DayDeltaKobo:      dayDelta,
		Last30DaysKobo:    monthCur,
		Prev30DaysKobo:    monthPrev,
		MonthDeltaKobo:    monthDelta,
	}, nil
}

type RevenueDashboard struct {
	TotalRevenueKobo int64 `json:"total_revenue_kobo"`
	TodayKobo        int64 `json:"today_kobo"`
	YesterdayKobo    int64 `json:"yesterday_kobo"`
	DayDeltaKobo     int64 `json:"day_delta_kobo"`
	Last30DaysKobo   int64 `json:"last_30_days_kobo"`
	Prev30DaysKobo   int64 `json:"prev_30_days_kobo"`
	MonthDeltaKobo   int64 `json:"month_delta_kobo"`
}
