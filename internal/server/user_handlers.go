package server

import (
	"wishwell/internal/cache"
	"wishwell/internal/models"
	"wishwell/internal/service"
	"wishwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		DisplayName string `json:"display_name"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.DisplayName != "" {
		if err := validation.ValidateDisplayName(req.DisplayName); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	// Cached profile is stale now
	cache.InvalidateProfile(c.Context(), s.redis, userID)

	return c.JSON(user)
}

// DeleteMyAccount handles DELETE /api/users/me. Friendships go with the
// account; wishes stay behind for anyone who already purchased from them.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.userService.DeleteAccount(c.Context(), userID); err != nil {
		return respondServiceError(c, err)
	}

	cache.InvalidateProfile(c.Context(), s.redis, userID)

	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// GetUserProfile handles GET /api/users/:id. The public display profile,
// served through the Redis profile cache.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if cached := cache.GetProfile(c.Context(), s.redis, id); cached != nil {
		return c.JSON(cached)
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	profile := user.Profile()
	cache.SetProfile(c.Context(), s.redis, profile)
	return c.JSON(profile)
}

// SearchFriendCandidates handles GET /api/users/search?q=
func (s *Server) SearchFriendCandidates(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	query := c.Query("q")

	candidates, err := s.friendService.SearchCandidates(c.Context(), userID, query)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": candidates})
}
