package repositories

import (
	"context"

	"github.com/Deveshu04/expert-succotash/src/models"

	"gorm.io/gorm"
)

type HoldingRepository interface {
	ListByUserID(ctx context.Context, userID uint) ([]models.Holding, error)
	GetByID(ctx context.Context, userID, id uint) (*models.Holding, error)
	Create(ctx context.Context, holding *models.Holding) error
	Update(ctx context.Context, holding *models.Holding) error
	Delete(ctx context.Context, userID, id uint) error
	DistinctSymbols(ctx context.Context) ([]string, error)
}

type holdingRepo struct {
	db *gorm.DB
}

func NewHoldingRepository(db *gorm.DB) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) ListByUserID(ctx context.Context, userID uint) ([]models.Holding, error) {
	var holdings []models.Holding
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("symbol ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

// GetByID is scoped by owner: another user's holding behaves as absent.
func (r *holdingRepo) GetByID(ctx context.Context, userID, id uint) (*models.Holding, error) {
	var holding models.Holding
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&holding).Error
	if err != nil {
		return nil, err
	}
	return &holding, nil
}

func (r *holdingRepo) Create(ctx context.Context, holding *models.Holding) error {
	return r.db.WithContext(ctx).Create(holding).Error
}

func (r *holdingRepo) Update(ctx context.Context, holding *models.Holding) error {
	return r.db.WithContext(ctx).Save(holding).Error
}

func (r *holdingRepo) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Holding{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DistinctSymbols returns every symbol held by any user, for cache refresh.
func (r *holdingRepo) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&models.Holding{}).
		Distinct("symbol").
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
