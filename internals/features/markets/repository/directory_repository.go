package repository

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	m "sabimarket_backend/internals/features/markets/model"
)

// DirectoryRepository is the read-mostly trader/market lookup surface consumed
// by the levy core.
type DirectoryRepository struct {
	DB *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{DB: db}
}

func (r *DirectoryRepository) GetTrader(id uuid.UUID) (*m.TraderModel, error) {
	var row m.TraderModel
	if err := r.DB.Where("trader_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Trader not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

func (r *DirectoryRepository) GetMarket(id uuid.UUID) (*m.MarketModel, error) {
	var row m.MarketModel
	if err := r.DB.Where("market_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Market not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

func (r *DirectoryRepository) ListTradersByMarket(marketID uuid.UUID) ([]m.TraderModel, error) {
	var list []m.TraderModel
	if err := r.DB.
		Where("trader_market_id = ?", marketID).
		Order("trader_full_name ASC").
		Find(&list).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return list, nil
}
