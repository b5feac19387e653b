package repository

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	m "sabimarket_backend/internals/features/markets/model"
	helper "sabimarket_backend/internals/helpers"
)

// MarketAdminRepository is the write surface for markets and traders.
type MarketAdminRepository struct {
	DB *gorm.DB
}

func NewMarketAdminRepository(db *gorm.DB) *MarketAdminRepository {
	return &MarketAdminRepository{DB: db}
}

/* ======================= MARKETS ======================= */

func (r *MarketAdminRepository) CreateMarket(mk *m.MarketModel) error {
	if err := r.DB.Create(mk).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return fiber.NewError(fiber.StatusConflict, "Market already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create market")
	}
	return nil
}

func (r *MarketAdminRepository) UpdateMarket(id uuid.UUID, patch map[string]interface{}) (*m.MarketModel, error) {
	res := r.DB.Model(&m.MarketModel{}).
		Where("market_id = ?", id).
		Updates(patch)
	if res.Error != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Market not found")
	}
	var row m.MarketModel
	if err := r.DB.Where("market_id = ?", id).First(&row).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

func (r *MarketAdminRepository) ListMarkets(chairmanID *uuid.UUID, paging helper.Paging) ([]m.MarketModel, int64, error) {
	base := r.DB.Model(&m.MarketModel{})
	if chairmanID != nil {
		base = base.Where("market_chairman_id = ?", *chairmanID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []m.MarketModel
	if err := base.
		Order("market_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return list, total, nil
}

/* ======================= TRADERS ======================= */

func (r *MarketAdminRepository) CreateTrader(t *m.TraderModel) error {
	if err := r.DB.Create(t).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to register trader")
	}
	return nil
}

func (r *MarketAdminRepository) UpdateTrader(id uuid.UUID, patch map[string]interface{}) (*m.TraderModel, error) {
	res := r.DB.Model(&m.TraderModel{}).
		Where("trader_id = ?", id).
		Updates(patch)
	if res.Error != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Trader not found")
	}
	var row m.TraderModel
	if err := r.DB.Where("trader_id = ?", id).First(&row).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

// SetTraderBlocked flips the block flag. Blocked traders fail QR verification
// and collection until unblocked.
func (r *MarketAdminRepository) SetTraderBlocked(id uuid.UUID, blocked bool) (*m.TraderModel, error) {
	return r.UpdateTrader(id, map[string]interface{}{"trader_is_blocked": blocked})
}
