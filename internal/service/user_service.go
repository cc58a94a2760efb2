package service

import (
	"context"

	"wishwell/internal/models"
	"wishwell/internal/repository"
)

type UserService struct {
	userRepo   repository.UserRepository
	friendRepo repository.FriendRepository
}

type UpdateProfileInput struct {
	UserID      uint
	DisplayName string
	AvatarURL   string
}

func NewUserService(userRepo repository.UserRepository, friendRepo repository.FriendRepository) *UserService {
	return &UserService{userRepo: userRepo, friendRepo: friendRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxDisplayNameLen = 30

	if in.DisplayName != "" && in.DisplayName != user.DisplayName {
		if len(in.DisplayName) > maxDisplayNameLen {
			return nil, models.NewValidationError("Display name too long (max 30 characters)")
		}
		existing, err := s.userRepo.GetByDisplayName(ctx, in.DisplayName)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Display name is already taken")
		}
		user.DisplayName = in.DisplayName
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount removes the user's friend edges in both directions, then the
// user record itself. Wishes keep their rows so counterparties retain their
// purchase history.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	edges, err := s.friendRepo.ListForUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, edge := range edges {
		if err := s.friendRepo.Delete(ctx, edge.ID); err != nil {
			return err
		}
	}

	return s.userRepo.Delete(ctx, userID)
}
