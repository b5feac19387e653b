package repository

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sabimarket_backend/internals/features/levies/setups/dto"
	m "sabimarket_backend/internals/features/levies/setups/model"
	paymentModel "sabimarket_backend/internals/features/levies/payments/model"
)

type LevySetupRepository struct {
	DB *gorm.DB
}

func NewLevySetupRepository(db *gorm.DB) *LevySetupRepository {
	return &LevySetupRepository{DB: db}
}

/* ======================= CREATE ======================= */

// Configure inserts a new active setup for the tuple. The pre-insert count
// rejects the common duplicate with a 409. Under read committed two concurrent
// configures can still both pass the count and insert; readers tolerate that by
// resolving duplicate actives newest-first (see GetActiveByTuple).
func (r *LevySetupRepository) Configure(setup *m.LevySetupModel) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&m.LevySetupModel{}).
			Where("levy_setup_market_id = ? AND levy_setup_occupancy_type = ? AND levy_setup_frequency = ? AND levy_setup_is_active = TRUE",
				setup.LevySetupMarketID, setup.LevySetupOccupancyType, setup.LevySetupFrequency).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "An active levy setup already exists for this market, occupancy type and frequency")
		}
		if err := tx.Create(setup).Error; err != nil {
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return fiber.NewError(fiber.StatusConflict, "An active levy setup already exists for this market, occupancy type and frequency")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create levy setup")
		}
		return nil
	})
}

/* ======================= READ ======================= */

func (r *LevySetupRepository) GetByID(id uuid.UUID) (*m.LevySetupModel, error) {
	var row m.LevySetupModel
	if err := r.DB.Where("levy_setup_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Levy setup not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

// GetActiveByTuple returns the single active setup for a tuple. Duplicate
// actives (legacy data, racing configures) resolve most-recently-created first.
func (r *LevySetupRepository) GetActiveByTuple(marketID uuid.UUID, occupancy m.OccupancyType, frequency m.PaymentFrequency) (*m.LevySetupModel, error) {
	var row m.LevySetupModel
	err := r.DB.
		Where("levy_setup_market_id = ? AND levy_setup_occupancy_type = ? AND levy_setup_frequency = ? AND levy_setup_is_active = TRUE",
			marketID, occupancy, frequency).
		Order("levy_setup_created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "No active levy setup for this market and occupancy type")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

// GetActiveByMarketAndOccupancy resolves across frequencies, newest first.
func (r *LevySetupRepository) GetActiveByMarketAndOccupancy(marketID uuid.UUID, occupancy m.OccupancyType) (*m.LevySetupModel, error) {
	var row m.LevySetupModel
	err := r.DB.
		Where("levy_setup_market_id = ? AND levy_setup_occupancy_type = ? AND levy_setup_is_active = TRUE",
			marketID, occupancy).
		Order("levy_setup_created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "No active levy setup for this market and occupancy type")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

func (r *LevySetupRepository) List(chairmanID *uuid.UUID, q dto.ListLevySetupQuery) ([]m.LevySetupModel, int64, error) {
	base := r.DB.Model(&m.LevySetupModel{})
	if chairmanID != nil {
		base = base.Where("levy_setup_chairman_id = ?", *chairmanID)
	}
	if q.MarketID != nil {
		base = base.Where("levy_setup_market_id = ?", *q.MarketID)
	}
	if q.OccupancyType != nil {
		base = base.Where("levy_setup_occupancy_type = ?", *q.OccupancyType)
	}
	if q.Frequency != nil {
		base = base.Where("levy_setup_frequency = ?", *q.Frequency)
	}
	if q.ActiveOnly {
		base = base.Where("levy_setup_is_active = TRUE")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	limit := q.Limit
	if limit == 0 {
		limit = 20
	}
	var list []m.LevySetupModel
	if err := base.
		Order("levy_setup_created_at DESC").
		Limit(limit).Offset(q.Offset).
		Find(&list).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return list, total, nil
}

/* ======================= UPDATE ======================= */

// ApplyUpdate applies a patch. Rate changes are versioned: deactivate current,
// insert replacement in the same transaction. The replacement tuple is re-checked
// because a frequency change may collide with another active setup.
func (r *LevySetupRepository) ApplyUpdate(cur *m.LevySetupModel, req dto.UpdateLevySetupRequest) (*m.LevySetupModel, error) {
	if !req.RequiresNewVersion(cur) {
		return cur, nil
	}
	next := req.NextVersion(cur)
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&m.LevySetupModel{}).
			Where("levy_setup_id = ?", cur.LevySetupID).
			Update("levy_setup_is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		var count int64
		if err := tx.Model(&m.LevySetupModel{}).
			Where("levy_setup_market_id = ? AND levy_setup_occupancy_type = ? AND levy_setup_frequency = ? AND levy_setup_is_active = TRUE",
				next.LevySetupMarketID, next.LevySetupOccupancyType, next.LevySetupFrequency).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "An active levy setup already exists for the target frequency")
		}
		if err := tx.Create(next).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create levy setup version")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

/* ======================= DELETE ======================= */

// Delete hard-deletes a setup, refusing while any payment still references it.
func (r *LevySetupRepository) Delete(id uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&paymentModel.LevyPaymentModel{}).
			Where("levy_payment_setup_id = ?", id).
			Count(&refs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if refs > 0 {
			return fiber.NewError(fiber.StatusConflict, "Levy setup is referenced by recorded payments; deactivate it instead")
		}
		res := tx.Unscoped().Where("levy_setup_id = ?", id).Delete(&m.LevySetupModel{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Levy setup not found")
		}
		return nil
	})
}

// Deactivate soft-disables a setup that can no longer be hard-deleted.
func (r *LevySetupRepository) Deactivate(id uuid.UUID) error {
	res := r.DB.Model(&m.LevySetupModel{}).
		Where("levy_setup_id = ?", id).
		Update("levy_setup_is_active", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Levy setup not found")
	}
	return nil
}
