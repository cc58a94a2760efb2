package service

import (
	"context"
	"net/url"
	"time"

	"wishwell/internal/models"
	"wishwell/internal/repository"

	"github.com/google/uuid"
)

// WishService provides wish business logic: validation, ownership checks
// and the reservation state machine.
type WishService struct {
	wishRepo   repository.WishRepository
	friendRepo repository.FriendRepository
}

// NewWishService returns a new WishService.
func NewWishService(wishRepo repository.WishRepository, friendRepo repository.FriendRepository) *WishService {
	return &WishService{
		wishRepo:   wishRepo,
		friendRepo: friendRepo,
	}
}

// CreateWishInput carries the caller-supplied fields for a new wish.
type CreateWishInput struct {
	Name          string             `json:"name"`
	Price         float64            `json:"price"`
	PriorityLevel int                `json:"priority_level"`
	Links         []string           `json:"links"`
	ImageURL      string             `json:"image_url"`
	Description   string             `json:"description"`
	Quantity      int                `json:"quantity"`
	PrivacyLevel  models.WishPrivacy `json:"privacy_level"`
	TagIDs        []uint             `json:"tag_ids"`
}

// UpdateWishInput carries the patchable fields of a wish. Pointer fields
// distinguish "absent" from zero values.
type UpdateWishInput struct {
	Name          *string             `json:"name"`
	Price         *float64            `json:"price"`
	PriorityLevel *int                `json:"priority_level"`
	Links         *[]string           `json:"links"`
	ImageURL      *string             `json:"image_url"`
	Description   *string             `json:"description"`
	Quantity      *int                `json:"quantity"`
	PrivacyLevel  *models.WishPrivacy `json:"privacy_level"`
	TagIDs        *[]uint             `json:"tag_ids"`
}

func validPriority(level int) bool {
	return level >= 1 && level <= 3
}

func validQuantity(q int) bool {
	return q >= 1 || q == models.QuantityUnlimited
}

func validPrivacy(p models.WishPrivacy) bool {
	switch p {
	case models.WishPrivacyPrivate, models.WishPrivacyFriends, models.WishPrivacyLink:
		return true
	}
	return false
}

// sanitizeLinks drops entries that do not parse as absolute http(s) URLs.
// Bad links are discarded rather than failing the whole request.
func sanitizeLinks(links []string) []string {
	out := make([]string, 0, len(links))
	for _, raw := range links {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// Create validates and stores a new wish for the owner. The status always
// starts open and purchase fields start empty, whatever the payload says.
func (s *WishService) Create(ctx context.Context, ownerID uint, input CreateWishInput) (*models.Wish, error) {
	if input.Name == "" {
		return nil, models.NewValidationError("Wish name is required")
	}
	if input.Price < 0 {
		return nil, models.NewValidationError("Price cannot be negative")
	}
	if input.PriorityLevel == 0 {
		input.PriorityLevel = 1
	}
	if !validPriority(input.PriorityLevel) {
		return nil, models.NewValidationError("Priority level must be 1, 2 or 3")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if !validQuantity(input.Quantity) {
		return nil, models.NewValidationError("Quantity must be at least 1, or -1 for unlimited")
	}
	if input.PrivacyLevel == "" {
		input.PrivacyLevel = models.WishPrivacyPrivate
	}
	if !validPrivacy(input.PrivacyLevel) {
		return nil, models.NewValidationError("Privacy level must be private, friends or link")
	}

	wish := &models.Wish{
		UserID:        ownerID,
		Name:          input.Name,
		Price:         input.Price,
		PriorityLevel: input.PriorityLevel,
		Links:         sanitizeLinks(input.Links),
		ImageURL:      input.ImageURL,
		Description:   input.Description,
		Quantity:      input.Quantity,
		PrivacyLevel:  input.PrivacyLevel,
		Status:        models.WishStatusOpen,
		TagIDs:        input.TagIDs,
	}
	if wish.PrivacyLevel == models.WishPrivacyLink {
		wish.ShareToken = uuid.NewString()
	}

	if err := s.wishRepo.Create(ctx, wish); err != nil {
		return nil, err
	}
	return wish, nil
}

// Update applies an owner-only patch. Status and purchase fields are not
// patchable here; the reserve and received transitions own those.
func (s *WishService) Update(ctx context.Context, ownerID, wishID uint, input UpdateWishInput) (*models.Wish, error) {
	wish, err := s.wishRepo.GetByID(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if wish.UserID != ownerID {
		return nil, models.NewUnauthorizedError("You can only update your own wishes")
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, models.NewValidationError("Wish name is required")
		}
		fields["name"] = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, models.NewValidationError("Price cannot be negative")
		}
		fields["price"] = *input.Price
	}
	if input.PriorityLevel != nil {
		if !validPriority(*input.PriorityLevel) {
			return nil, models.NewValidationError("Priority level must be 1, 2 or 3")
		}
		fields["priority_level"] = *input.PriorityLevel
	}
	if input.Links != nil {
		fields["links"] = sanitizeLinks(*input.Links)
	}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Quantity != nil {
		if !validQuantity(*input.Quantity) {
			return nil, models.NewValidationError("Quantity must be at least 1, or -1 for unlimited")
		}
		fields["quantity"] = *input.Quantity
	}
	if input.PrivacyLevel != nil {
		if !validPrivacy(*input.PrivacyLevel) {
			return nil, models.NewValidationError("Privacy level must be private, friends or link")
		}
		fields["privacy_level"] = *input.PrivacyLevel
		// Link-visible wishes get a share token on first switch
		if *input.PrivacyLevel == models.WishPrivacyLink && wish.ShareToken == "" {
			fields["share_token"] = uuid.NewString()
		}
	}
	if input.TagIDs != nil {
		fields["tag_ids"] = *input.TagIDs
	}

	if len(fields) == 0 {
		return wish, nil
	}
	if err := s.wishRepo.UpdateFields(ctx, wishID, fields); err != nil {
		return nil, err
	}
	return s.wishRepo.GetByID(ctx, wishID)
}

// Delete removes a wish. Owner only.
func (s *WishService) Delete(ctx context.Context, ownerID, wishID uint) (*models.Wish, error) {
	wish, err := s.wishRepo.GetByID(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if wish.UserID != ownerID {
		return nil, models.NewUnauthorizedError("You can only delete your own wishes")
	}
	if err := s.wishRepo.Delete(ctx, wishID); err != nil {
		return nil, err
	}
	return wish, nil
}

// ListForViewer returns the owner's wishes visible to the viewer. Owners see
// everything; friends additionally see friends-level wishes; a matching share
// token unlocks link-level wishes; private wishes stay owner-only.
func (s *WishService) ListForViewer(ctx context.Context, viewerID, ownerID uint, shareToken string) ([]models.Wish, error) {
	wishes, err := s.wishRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if viewerID == ownerID {
		return wishes, nil
	}

	isFriend, err := s.friendRepo.AreFriends(ctx, viewerID, ownerID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Wish, 0, len(wishes))
	for _, w := range wishes {
		switch w.PrivacyLevel {
		case models.WishPrivacyFriends:
			if isFriend {
				visible = append(visible, w)
			}
		case models.WishPrivacyLink:
			if isFriend || (shareToken != "" && shareToken == w.ShareToken) {
				visible = append(visible, w)
			}
		}
	}
	return visible, nil
}

// GetByShareToken resolves a single link-visible wish by its share token.
func (s *WishService) GetByShareToken(ctx context.Context, token string) (*models.Wish, error) {
	if token == "" {
		return nil, models.NewValidationError("Share token is required")
	}
	wish, err := s.wishRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if wish.PrivacyLevel != models.WishPrivacyLink {
		return nil, models.NewNotFoundError("Wish", token)
	}
	return wish, nil
}

// Reserve marks an open wish as purchased on behalf of the buyer. The
// transition is a compare-and-set on the open status, so two concurrent
// buyers cannot both win.
func (s *WishService) Reserve(ctx context.Context, viewerID uint, wishID uint, purchasedBy string, purchaseDate time.Time) (*models.Wish, error) {
	if purchasedBy == "" {
		return nil, models.NewValidationError("Buyer name is required")
	}
	wish, err := s.wishRepo.GetByID(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if wish.UserID == viewerID {
		return nil, models.NewValidationError("You cannot reserve your own wish")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	ok, err := s.wishRepo.Reserve(ctx, wishID, purchasedBy, purchaseDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewValidationError("Wish is no longer open")
	}
	return s.wishRepo.GetByID(ctx, wishID)
}

// ConfirmReceived resolves a purchased wish. Owner only: received=true
// closes it as fulfilled, received=false reopens it and clears the purchase
// fields even when they were never set.
func (s *WishService) ConfirmReceived(ctx context.Context, ownerID, wishID uint, received bool) (*models.Wish, error) {
	wish, err := s.wishRepo.GetByID(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if wish.UserID != ownerID {
		return nil, models.NewUnauthorizedError("You can only confirm your own wishes")
	}

	if received {
		if wish.Status != models.WishStatusPurchased {
			return nil, models.NewValidationError("Only purchased wishes can be marked received")
		}
		if err := s.wishRepo.SetFulfilled(ctx, wishID); err != nil {
			return nil, err
		}
	} else {
		if err := s.wishRepo.ClearReservation(ctx, wishID); err != nil {
			return nil, err
		}
	}
	return s.wishRepo.GetByID(ctx, wishID)
}
