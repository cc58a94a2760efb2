package server

import (
	"wishwell/internal/models"
	"wishwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserTags handles GET /api/users/:id/tags
func (s *Server) GetUserTags(c *fiber.Ctx) error {
	ownerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tags, err := s.tagService.List(c.Context(), ownerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Attach the derived contrast color so clients don't recompute it
	out := make([]fiber.Map, 0, len(tags))
	for _, t := range tags {
		out = append(out, fiber.Map{
			"id":         t.ID,
			"user_id":    t.UserID,
			"name":       t.Name,
			"color":      t.Color,
			"text_color": t.TextColor(),
			"created_at": t.CreatedAt,
			"updated_at": t.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"tags": out})
}

// CreateTag handles POST /api/tags
func (s *Server) CreateTag(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.CreateTagInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.tagService.Create(c.Context(), userID, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishUserEvent(userID, EventTagCreated, tag)
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// UpdateTag handles PUT /api/tags/:id
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	tagID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.UpdateTagInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.tagService.Update(c.Context(), userID, tagID, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishUserEvent(userID, EventTagUpdated, tag)
	return c.JSON(tag)
}

// DeleteTag handles DELETE /api/tags/:id
//
// The cascade rewrites every owner wish referencing the tag; each rewritten
// wish is republished so mirrors pick up the new tag lists before the tag
// delete arrives.
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	tagID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, touched, err := s.tagService.Delete(c.Context(), userID, tagID)
	if err != nil {
		return respondServiceError(c, err)
	}

	for _, wishID := range touched {
		if wish, werr := s.wishRepo.GetByID(c.Context(), wishID); werr == nil {
			s.publishWishChange(EventWishUpdated, wish)
		}
	}
	s.publishUserEvent(userID, EventTagDeleted, fiber.Map{"id": tag.ID})

	return c.JSON(fiber.Map{
		"message":        "Tag deleted",
		"updated_wishes": touched,
	})
}
