package repository

import (
	"context"
	"errors"

	"wishwell/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Tag, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	DeleteCascade(ctx context.Context, ownerID, tagID uint) ([]uint, error)
}

// tagRepository implements TagRepository
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("name asc").
		Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

func (r *tagRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteCascade removes a tag and, in the same transaction, rewrites the
// tag id lists of every owner wish that references it. Returns the ids of
// the wishes that were rewritten so callers can publish change events.
func (r *tagRepository) DeleteCascade(ctx context.Context, ownerID, tagID uint) ([]uint, error) {
	var touched []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wishes []models.Wish
		if err := tx.Where("user_id = ?", ownerID).Find(&wishes).Error; err != nil {
			return err
		}

		// Tag ids live in a serialized JSON column, so membership is
		// checked in application code rather than SQL.
		for i := range wishes {
			if !wishes[i].HasTag(tagID) {
				continue
			}
			if err := tx.Model(&models.Wish{}).
				Where("id = ?", wishes[i].ID).
				Update("tag_ids", wishes[i].WithoutTag(tagID)).Error; err != nil {
				return err
			}
			touched = append(touched, wishes[i].ID)
		}

		return tx.Delete(&models.Tag{}, tagID).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return touched, nil
}
