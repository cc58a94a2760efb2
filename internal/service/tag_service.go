package service

import (
	"context"
	"regexp"

	"wishwell/internal/models"
	"wishwell/internal/repository"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TagService provides tag business logic, including the delete cascade that
// keeps wish tag lists consistent.
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService returns a new TagService.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// CreateTagInput carries the caller-supplied fields for a new tag.
type CreateTagInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UpdateTagInput carries the patchable fields of a tag.
type UpdateTagInput struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// Create validates and stores a new tag for the owner.
func (s *TagService) Create(ctx context.Context, ownerID uint, input CreateTagInput) (*models.Tag, error) {
	if input.Name == "" {
		return nil, models.NewValidationError("Tag name is required")
	}
	if input.Color != "" && !hexColorPattern.MatchString(input.Color) {
		return nil, models.NewValidationError("Tag color must be a #RRGGBB hex value")
	}

	tag := &models.Tag{
		UserID: ownerID,
		Name:   input.Name,
		Color:  input.Color,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// List returns the owner's tags in name order.
func (s *TagService) List(ctx context.Context, ownerID uint) ([]models.Tag, error) {
	return s.tagRepo.ListByOwner(ctx, ownerID)
}

// Update applies an owner-only patch to a tag.
func (s *TagService) Update(ctx context.Context, ownerID, tagID uint, input UpdateTagInput) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag.UserID != ownerID {
		return nil, models.NewUnauthorizedError("You can only update your own tags")
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, models.NewValidationError("Tag name is required")
		}
		fields["name"] = *input.Name
	}
	if input.Color != nil {
		if !hexColorPattern.MatchString(*input.Color) {
			return nil, models.NewValidationError("Tag color must be a #RRGGBB hex value")
		}
		fields["color"] = *input.Color
	}

	if len(fields) == 0 {
		return tag, nil
	}
	if err := s.tagRepo.UpdateFields(ctx, tagID, fields); err != nil {
		return nil, err
	}
	return s.tagRepo.GetByID(ctx, tagID)
}

// Delete removes an owner's tag and strips it from every wish that carries
// it. Returns the ids of the rewritten wishes so the caller can publish
// their change events.
func (s *TagService) Delete(ctx context.Context, ownerID, tagID uint) (*models.Tag, []uint, error) {
	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, nil, err
	}
	if tag.UserID != ownerID {
		return nil, nil, models.NewUnauthorizedError("You can only delete your own tags")
	}

	touched, err := s.tagRepo.DeleteCascade(ctx, ownerID, tagID)
	if err != nil {
		return nil, nil, err
	}
	return tag, touched, nil
}
