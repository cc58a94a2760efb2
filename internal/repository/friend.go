package repository

import (
	"context"
	"errors"

	"wishwell/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend edge data operations
type FriendRepository interface {
	Create(ctx context.Context, edge *models.FriendEdge) error
	GetByID(ctx context.Context, id uint) (*models.FriendEdge, error)
	GetEdgeBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendEdge, error)
	ListForUser(ctx context.Context, userID uint) ([]models.FriendEdge, error)
	ConnectedUserIDs(ctx context.Context, userID uint) ([]uint, error)
	AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error)
	UpdateStatus(ctx context.Context, edgeID uint, status models.FriendEdgeStatus) error
	Delete(ctx context.Context, edgeID uint) error
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, edge *models.FriendEdge) error {
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetByID(ctx context.Context, id uint) (*models.FriendEdge, error) {
	var edge models.FriendEdge
	if err := r.db.WithContext(ctx).Preload("Requester").Preload("Recipient").First(&edge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend edge", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

func (r *friendRepository) GetEdgeBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendEdge, error) {
	var edge models.FriendEdge

	// Find the edge regardless of which side initiated it
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
			userID1, userID2, userID2, userID1).
		Preload("Requester").
		Preload("Recipient").
		First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No edge exists
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

func (r *friendRepository) ListForUser(ctx context.Context, userID uint) ([]models.FriendEdge, error) {
	var edges []models.FriendEdge
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? OR recipient_id = ?", userID, userID).
		Preload("Requester").
		Preload("Recipient").
		Order("created_at desc").
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}

// ConnectedUserIDs returns every user that shares an edge with the given
// user, in any direction and regardless of status. Candidate search uses
// this set for exclusion, so rejected pairs never resurface.
func (r *friendRepository) ConnectedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	var edges []models.FriendEdge
	if err := r.db.WithContext(ctx).
		Select("requester_id", "recipient_id").
		Where("requester_id = ? OR recipient_id = ?", userID, userID).
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		if e.RequesterID == userID {
			ids = append(ids, e.RecipientID)
		} else {
			ids = append(ids, e.RequesterID)
		}
	}
	return ids, nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("status = ? AND ((requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?))",
			models.FriendEdgeStatusAccepted, userID1, userID2, userID2, userID1).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) UpdateStatus(ctx context.Context, edgeID uint, status models.FriendEdgeStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("id = ?", edgeID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) Delete(ctx context.Context, edgeID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FriendEdge{}, edgeID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
