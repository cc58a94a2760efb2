package service

import (
	"context"
	"time"

	"wishwell/internal/models"
)

type wishRepoStub struct {
	createFn           func(context.Context, *models.Wish) error
	getByIDFn          func(context.Context, uint) (*models.Wish, error)
	getByShareTokenFn  func(context.Context, string) (*models.Wish, error)
	listByOwnerFn      func(context.Context, uint) ([]models.Wish, error)
	updateFieldsFn     func(context.Context, uint, map[string]interface{}) error
	deleteFn           func(context.Context, uint) error
	reserveFn          func(context.Context, uint, string, time.Time) (bool, error)
	clearReservationFn func(context.Context, uint) error
	setFulfilledFn     func(context.Context, uint) error
}

func (s *wishRepoStub) Create(ctx context.Context, wish *models.Wish) error {
	return s.createFn(ctx, wish)
}
func (s *wishRepoStub) GetByID(ctx context.Context, id uint) (*models.Wish, error) {
	return s.getByIDFn(ctx, id)
}
func (s *wishRepoStub) GetByShareToken(ctx context.Context, token string) (*models.Wish, error) {
	return s.getByShareTokenFn(ctx, token)
}
func (s *wishRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]models.Wish, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *wishRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *wishRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *wishRepoStub) Reserve(ctx context.Context, id uint, purchasedBy string, purchaseDate time.Time) (bool, error) {
	return s.reserveFn(ctx, id, purchasedBy, purchaseDate)
}
func (s *wishRepoStub) ClearReservation(ctx context.Context, id uint) error {
	return s.clearReservationFn(ctx, id)
}
func (s *wishRepoStub) SetFulfilled(ctx context.Context, id uint) error {
	return s.setFulfilledFn(ctx, id)
}

func noopWishRepo() *wishRepoStub {
	return &wishRepoStub{
		createFn:          func(context.Context, *models.Wish) error { return nil },
		getByIDFn:         func(context.Context, uint) (*models.Wish, error) { return &models.Wish{}, nil },
		getByShareTokenFn: func(context.Context, string) (*models.Wish, error) { return &models.Wish{}, nil },
		listByOwnerFn:     func(context.Context, uint) ([]models.Wish, error) { return nil, nil },
		updateFieldsFn: func(context.Context, uint, map[string]interface{}) error {
			return nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
		reserveFn: func(context.Context, uint, string, time.Time) (bool, error) {
			return true, nil
		},
		clearReservationFn: func(context.Context, uint) error { return nil },
		setFulfilledFn:     func(context.Context, uint) error { return nil },
	}
}

type tagRepoStub struct {
	createFn        func(context.Context, *models.Tag) error
	getByIDFn       func(context.Context, uint) (*models.Tag, error)
	listByOwnerFn   func(context.Context, uint) ([]models.Tag, error)
	updateFieldsFn  func(context.Context, uint, map[string]interface{}) error
	deleteCascadeFn func(context.Context, uint, uint) ([]uint, error)
}

func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error {
	return s.createFn(ctx, tag)
}
func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]models.Tag, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *tagRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *tagRepoStub) DeleteCascade(ctx context.Context, ownerID, tagID uint) ([]uint, error) {
	return s.deleteCascadeFn(ctx, ownerID, tagID)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		createFn:      func(context.Context, *models.Tag) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.Tag, error) { return &models.Tag{}, nil },
		listByOwnerFn: func(context.Context, uint) ([]models.Tag, error) { return nil, nil },
		updateFieldsFn: func(context.Context, uint, map[string]interface{}) error {
			return nil
		},
		deleteCascadeFn: func(context.Context, uint, uint) ([]uint, error) { return nil, nil },
	}
}

type friendRepoStub struct {
	createFn              func(context.Context, *models.FriendEdge) error
	getByIDFn             func(context.Context, uint) (*models.FriendEdge, error)
	getEdgeBetweenUsersFn func(context.Context, uint, uint) (*models.FriendEdge, error)
	listForUserFn         func(context.Context, uint) ([]models.FriendEdge, error)
	connectedUserIDsFn    func(context.Context, uint) ([]uint, error)
	areFriendsFn          func(context.Context, uint, uint) (bool, error)
	updateStatusFn        func(context.Context, uint, models.FriendEdgeStatus) error
	deleteFn              func(context.Context, uint) error
}

func (s *friendRepoStub) Create(ctx context.Context, edge *models.FriendEdge) error {
	return s.createFn(ctx, edge)
}
func (s *friendRepoStub) GetByID(ctx context.Context, id uint) (*models.FriendEdge, error) {
	return s.getByIDFn(ctx, id)
}
func (s *friendRepoStub) GetEdgeBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendEdge, error) {
	return s.getEdgeBetweenUsersFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) ListForUser(ctx context.Context, userID uint) ([]models.FriendEdge, error) {
	return s.listForUserFn(ctx, userID)
}
func (s *friendRepoStub) ConnectedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.connectedUserIDsFn(ctx, userID)
}
func (s *friendRepoStub) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	return s.areFriendsFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) UpdateStatus(ctx context.Context, edgeID uint, status models.FriendEdgeStatus) error {
	return s.updateStatusFn(ctx, edgeID, status)
}
func (s *friendRepoStub) Delete(ctx context.Context, edgeID uint) error {
	return s.deleteFn(ctx, edgeID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn:              func(context.Context, *models.FriendEdge) error { return nil },
		getByIDFn:             func(context.Context, uint) (*models.FriendEdge, error) { return &models.FriendEdge{}, nil },
		getEdgeBetweenUsersFn: func(context.Context, uint, uint) (*models.FriendEdge, error) { return nil, nil },
		listForUserFn:         func(context.Context, uint) ([]models.FriendEdge, error) { return nil, nil },
		connectedUserIDsFn:    func(context.Context, uint) ([]uint, error) { return nil, nil },
		areFriendsFn:          func(context.Context, uint, uint) (bool, error) { return false, nil },
		updateStatusFn:        func(context.Context, uint, models.FriendEdgeStatus) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
	}
}

type userRepoStub struct {
	createFn              func(context.Context, *models.User) error
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	getByDisplayNameFn    func(context.Context, string) (*models.User, error)
	updateFn              func(context.Context, *models.User) error
	deleteFn              func(context.Context, uint) error
	searchByDisplayNameFn func(context.Context, string, int) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByDisplayName(ctx context.Context, displayName string) (*models.User, error) {
	return s.getByDisplayNameFn(ctx, displayName)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) SearchByDisplayName(ctx context.Context, query string, limit int) ([]models.User, error) {
	return s.searchByDisplayNameFn(ctx, query, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:           func(context.Context, *models.User) error { return nil },
		getByIDFn:          func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		getByDisplayNameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		updateFn:           func(context.Context, *models.User) error { return nil },
		deleteFn:           func(context.Context, uint) error { return nil },
		searchByDisplayNameFn: func(context.Context, string, int) ([]models.User, error) {
			return nil, nil
		},
	}
}
