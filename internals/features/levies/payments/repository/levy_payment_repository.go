package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sabimarket_backend/internals/features/levies/payments/dto"
	m "sabimarket_backend/internals/features/levies/payments/model"
	helper "sabimarket_backend/internals/helpers"
)

// ledgerSearchSQL matches a free-text query against the transaction reference
// or the trader's name. Soft-deleted traders stay out of search results.
const ledgerSearchSQL = "(levy_payment_transaction_ref ILIKE ? OR levy_payment_trader_id IN " +
	"(SELECT trader_id FROM traders WHERE trader_full_name ILIKE ? AND trader_deleted_at IS NULL))"

type LevyPaymentRepository struct {
	DB *gorm.DB
}

func NewLevyPaymentRepository(db *gorm.DB) *LevyPaymentRepository {
	return &LevyPaymentRepository{DB: db}
}

/* ======================= WRITE ======================= */

// Append inserts one collection row inside its own transaction.
func (r *LevyPaymentRepository) Append(p *m.LevyPaymentModel) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return m.ErrDuplicateIdempotencyKey
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record levy payment")
	}
	return nil
}

// UpdateStatus is the only mutation allowed after creation.
func (r *LevyPaymentRepository) UpdateStatus(id uuid.UUID, status m.PaymentStatus) error {
	res := r.DB.Model(&m.LevyPaymentModel{}).
		Where("levy_payment_id = ?", id).
		Update("levy_payment_status", status)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Levy payment not found")
	}
	return nil
}

// Delete is an administrative hard delete. Aggregates are computed live, so no
// recomputation is triggered.
func (r *LevyPaymentRepository) Delete(id uuid.UUID) error {
	res := r.DB.Unscoped().Where("levy_payment_id = ?", id).Delete(&m.LevyPaymentModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Levy payment not found")
	}
	return nil
}

/* ======================= READ ======================= */

func (r *LevyPaymentRepository) GetByID(id uuid.UUID) (*m.LevyPaymentModel, error) {
	var row m.LevyPaymentModel
	if err := r.DB.Where("levy_payment_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Levy payment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

// FindByIdempotencyKey returns nil, nil when the key is unused.
func (r *LevyPaymentRepository) FindByIdempotencyKey(key string) (*m.LevyPaymentModel, error) {
	var row m.LevyPaymentModel
	err := r.DB.Where("levy_payment_idempotency_key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

// FindByTransactionRef resolves a gateway order id back to its ledger row.
func (r *LevyPaymentRepository) FindByTransactionRef(ref string) (*m.LevyPaymentModel, error) {
	var row m.LevyPaymentModel
	err := r.DB.Where("levy_payment_transaction_ref = ?", ref).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Levy payment not found for transaction reference")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

// GetPaged returns a ledger page ordered by collection date, most recent first.
// q matches trader name or transaction reference, case-insensitive.
func (r *LevyPaymentRepository) GetPaged(q dto.ListLevyPaymentQuery, paging helper.Paging) ([]m.LevyPaymentModel, int64, error) {
	base := r.DB.Model(&m.LevyPaymentModel{})

	if q.Period != nil {
		base = base.Where("levy_payment_period = ?", *q.Period)
	}
	if q.MarketID != nil {
		base = base.Where("levy_payment_market_id = ?", *q.MarketID)
	}
	if q.TraderID != nil {
		base = base.Where("levy_payment_trader_id = ?", *q.TraderID)
	}
	if q.Q != nil && strings.TrimSpace(*q.Q) != "" {
		like := fmt.Sprintf("%%%s%%", strings.TrimSpace(*q.Q))
		base = base.Where(ledgerSearchSQL, like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []m.LevyPaymentModel
	if err := base.
		Order("levy_payment_collection_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return list, total, nil
}

// GetByDateRange is inclusive on both ends of collection_date.
// No matches is an empty slice, not an error.
func (r *LevyPaymentRepository) GetByDateRange(goodBoyID uuid.UUID, from, to time.Time) ([]m.LevyPaymentModel, error) {
	var list []m.LevyPaymentModel
	if err := r.DB.
		Where("levy_payment_goodboy_id = ? AND levy_payment_collection_date >= ? AND levy_payment_collection_date <= ?",
			goodBoyID, from, to).
		Order("levy_payment_collection_date DESC").
		Find(&list).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return list, nil
}

// GetTodayForGoodBoy filters to the current UTC calendar day.
func (r *LevyPaymentRepository) GetTodayForGoodBoy(goodBoyID uuid.UUID, paging helper.Paging) ([]m.LevyPaymentModel, int64, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	base := r.DB.Model(&m.LevyPaymentModel{}).
		Where("levy_payment_goodboy_id = ? AND levy_payment_collection_date >= ? AND levy_payment_collection_date < ?",
			goodBoyID, dayStart, dayEnd)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []m.LevyPaymentModel
	if err := base.
		Order("levy_payment_collection_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return list, total, nil
}

/* ======================= AGGREGATES ======================= */

// TotalByGoodBoy sums completed collections for one collector. 0 when no rows.
func (r *LevyPaymentRepository) TotalByGoodBoy(goodBoyID uuid.UUID, from, to time.Time) (int64, error) {
	var total int64
	err := r.DB.Model(&m.LevyPaymentModel{}).
		Where("levy_payment_goodboy_id = ? AND levy_payment_status = ? AND levy_payment_collection_date >= ? AND levy_payment_collection_date <= ?",
			goodBoyID, m.PaymentStatusCompleted, from, to).
		Select("COALESCE(SUM(levy_payment_amount_kobo), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return total, nil
}

// TotalByTrader sums completed collections for one trader. 0 when no rows.
func (r *LevyPaymentRepository) TotalByTrader(traderID uuid.UUID) (int64, error) {
	var total int64
	err := r.DB.Model(&m.LevyPaymentModel{}).
		Where("levy_payment_trader_id = ? AND levy_payment_status = ?", traderID, m.PaymentStatusCompleted).
		Select("COALESCE(SUM(levy_payment_amount_kobo), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return total, nil
}

// LastCompletedAt returns the most recent completed collection date for a
// trader, nil when the trader has never paid.
func (r *LevyPaymentRepository) LastCompletedAt(traderID uuid.UUID) (*time.Time, error) {
	var row m.LevyPaymentModel
	err := r.DB.
		Where("levy_payment_trader_id = ? AND levy_payment_status = ?", traderID, m.PaymentStatusCompleted).
		Order("levy_payment_collection_date DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	t := row.LevyPaymentCollectionDate
	return &t, nil
}
