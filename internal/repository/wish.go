package repository

import (
	"context"
	"errors"
	"time"

	"wishwell/internal/models"

	"gorm.io/gorm"
)

// WishRepository defines the interface for wish data operations
type WishRepository interface {
	Create(ctx context.Context, wish *models.Wish) error
	GetByID(ctx context.Context, id uint) (*models.Wish, error)
	GetByShareToken(ctx context.Context, token string) (*models.Wish, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Wish, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	Reserve(ctx context.Context, id uint, purchasedBy string, purchaseDate time.Time) (bool, error)
	ClearReservation(ctx context.Context, id uint) error
	SetFulfilled(ctx context.Context, id uint) error
}

// wishRepository implements WishRepository
type wishRepository struct {
	db *gorm.DB
}

// NewWishRepository creates a new wish repository
func NewWishRepository(db *gorm.DB) WishRepository {
	return &wishRepository{db: db}
}

func (r *wishRepository) Create(ctx context.Context, wish *models.Wish) error {
	if err := r.db.WithContext(ctx).Create(wish).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *wishRepository) GetByID(ctx context.Context, id uint) (*models.Wish, error) {
	var wish models.Wish
	if err := r.db.WithContext(ctx).First(&wish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Wish", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &wish, nil
}

func (r *wishRepository) GetByShareToken(ctx context.Context, token string) (*models.Wish, error) {
	var wish models.Wish
	if err := r.db.WithContext(ctx).Where("share_token = ?", token).First(&wish).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Wish", token)
		}
		return nil, models.NewInternalError(err)
	}
	return &wish, nil
}

func (r *wishRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Wish, error) {
	var wishes []models.Wish
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at desc").
		Find(&wishes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return wishes, nil
}

func (r *wishRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *wishRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Wish{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Reserve atomically transitions an open wish to purchased. The status guard
// in the WHERE clause makes concurrent reservations race-safe: of two
// simultaneous reservers, exactly one matches a row. Returns false when the
// wish was not open (or does not exist).
func (r *wishRepository) Reserve(ctx context.Context, id uint, purchasedBy string, purchaseDate time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("id = ? AND status = ?", id, models.WishStatusOpen).
		Updates(map[string]interface{}{
			"status":        models.WishStatusPurchased,
			"purchased_by":  purchasedBy,
			"purchase_date": purchaseDate,
		})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ClearReservation reopens a wish, clearing both purchase fields.
func (r *wishRepository) ClearReservation(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.WishStatusOpen,
			"purchased_by":  nil,
			"purchase_date": nil,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *wishRepository) SetFulfilled(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("id = ?", id).
		Update("status", models.WishStatusFulfilled).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
