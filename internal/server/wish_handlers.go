package server

import (
	"time"

	"wishwell/internal/models"
	"wishwell/internal/service"
	"wishwell/internal/store"

	"github.com/gofiber/fiber/v2"
)

// wishView decorates a wish with the derived display fields, the same way
// tags carry their computed text color.
type wishView struct {
	models.Wish
	PriorityText string `json:"priority_text"`
	IsUnlimited  bool   `json:"is_unlimited"`
}

func newWishView(w models.Wish) wishView {
	return wishView{
		Wish:         w,
		PriorityText: models.PriorityText(w.PriorityLevel),
		IsUnlimited:  w.IsUnlimited(),
	}
}

// GetUserWishes handles GET /api/users/:id/wishes
//
// The route is public: authentication is optional, and the viewer's identity
// (if any) picks the privacy tier. The owner sees everything; friends unlock
// friends-level; a share_token query unlocks link-level for anyone,
// including anonymous viewers. Optional status= and tag= query params narrow
// the result the same way the client-side view filter does.
func (s *Server) GetUserWishes(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	ownerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	wishes, err := s.wishService.ListForViewer(c.Context(), viewerID, ownerID, c.Query("share_token"))
	if err != nil {
		return respondServiceError(c, err)
	}

	filter := store.WishFilter{
		Status: store.StatusFilter(c.Query("status", string(store.StatusFilterAll))),
		TagID:  uint(c.QueryInt("tag", 0)),
	}
	if filter.Status != store.StatusFilterAll || filter.TagID != 0 {
		mirror := store.NewWishMirror(ownerID)
		mirror.Load(wishes, nil)
		wishes = mirror.Wishes(filter)
	}

	views := make([]wishView, 0, len(wishes))
	for _, w := range wishes {
		views = append(views, newWishView(w))
	}
	return c.JSON(fiber.Map{"wishes": views})
}

// GetSharedWish handles GET /api/shared/:token, the public lookup of a
// single link-visible wish by its share token.
func (s *Server) GetSharedWish(c *fiber.Ctx) error {
	wish, err := s.wishService.GetByShareToken(c.Context(), c.Params("token"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(newWishView(*wish))
}

// CreateWish handles POST /api/wishes
func (s *Server) CreateWish(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.CreateWishInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	wish, err := s.wishService.Create(c.Context(), userID, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishWishChange(EventWishCreated, wish)
	return c.Status(fiber.StatusCreated).JSON(wish)
}

// UpdateWish handles PUT /api/wishes/:id
func (s *Server) UpdateWish(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	wishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.UpdateWishInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	wish, err := s.wishService.Update(c.Context(), userID, wishID, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishWishChange(EventWishUpdated, wish)
	return c.JSON(wish)
}

// DeleteWish handles DELETE /api/wishes/:id
func (s *Server) DeleteWish(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	wishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	wish, err := s.wishService.Delete(c.Context(), userID, wishID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishWishDeleted(wish)
	return c.JSON(fiber.Map{"message": "Wish deleted"})
}

// ReserveWish handles POST /api/wishes/:id/reserve
func (s *Server) ReserveWish(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	wishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		PurchasedBy  string     `json:"purchased_by"`
		PurchaseDate *time.Time `json:"purchase_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	purchaseDate := time.Time{}
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	wish, err := s.wishService.Reserve(c.Context(), userID, wishID, req.PurchasedBy, purchaseDate)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishWishChange(EventWishReserved, wish)
	return c.JSON(wish)
}

// ConfirmWishReceived handles POST /api/wishes/:id/received
func (s *Server) ConfirmWishReceived(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	wishID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Received bool `json:"received"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	wish, err := s.wishService.ConfirmReceived(c.Context(), userID, wishID, req.Received)
	if err != nil {
		return respondServiceError(c, err)
	}

	eventType := EventWishFulfilled
	if !req.Received {
		eventType = EventWishReopened
	}
	s.publishWishChange(eventType, wish)
	return c.JSON(wish)
}
