// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"wishwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user gets.
const DefaultPassword = "Password123!"

var tagPalette = []struct {
	Name  string
	Color string
}{
	{"Books", "#8B5E3C"},
	{"Tech", "#2563EB"},
	{"Home", "#16A34A"},
	{"Clothing", "#DB2777"},
	{"Games", "#7C3AED"},
	{"Outdoors", "#0D9488"},
	{"Kitchen", "#EA580C"},
	{"Music", "#4338CA"},
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a generated display name and the default
// password.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		DisplayName: fmt.Sprintf("%s_%s", gofakeit.Username(), gofakeit.LetterN(4)),
		Email:       gofakeit.Email(),
		Password:    string(hashed),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// CreateTags persists a random subset of the tag palette for the user.
func (f *Factory) CreateTags(user *models.User, count int) ([]models.Tag, error) {
	if count > len(tagPalette) {
		count = len(tagPalette)
	}
	perm := f.rand.Perm(len(tagPalette))

	tags := make([]models.Tag, 0, count)
	for _, idx := range perm[:count] {
		tag := models.Tag{
			UserID: user.ID,
			Name:   tagPalette[idx].Name,
			Color:  tagPalette[idx].Color,
		}
		if err := f.db.Create(&tag).Error; err != nil {
			return nil, fmt.Errorf("failed to create tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// BuildWish constructs a wish struct without persisting it, so callers can
// batch inserts.
func (f *Factory) BuildWish(user *models.User, tags []models.Tag, overrides ...func(*models.Wish)) *models.Wish {
	privacies := []models.WishPrivacy{
		models.WishPrivacyPrivate,
		models.WishPrivacyFriends,
		models.WishPrivacyFriends,
		models.WishPrivacyLink,
	}

	wish := &models.Wish{
		UserID:        user.ID,
		Name:          gofakeit.ProductName(),
		Price:         gofakeit.Price(5, 500),
		PriorityLevel: f.rand.Intn(3) + 1,
		Description:   gofakeit.ProductDescription(),
		Quantity:      1,
		PrivacyLevel:  privacies[f.rand.Intn(len(privacies))],
		Status:        models.WishStatusOpen,
	}

	if f.rand.Intn(4) == 0 {
		wish.Quantity = models.QuantityUnlimited
	}
	if f.rand.Intn(2) == 0 {
		wish.Links = []string{gofakeit.URL()}
	}
	if wish.PrivacyLevel == models.WishPrivacyLink {
		wish.ShareToken = gofakeit.UUID()
	}
	if len(tags) > 0 && f.rand.Intn(3) > 0 {
		wish.TagIDs = []uint{tags[f.rand.Intn(len(tags))].ID}
	}

	// Spread creation dates so lists look lived-in
	daysBack := f.rand.Intn(60)
	wish.CreatedAt = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)

	for _, override := range overrides {
		override(wish)
	}
	return wish
}

// CreateWishesBatch persists multiple wishes in a single insert.
func (f *Factory) CreateWishesBatch(wishes []*models.Wish) error {
	if len(wishes) == 0 {
		return nil
	}
	if err := f.db.CreateInBatches(wishes, 100).Error; err != nil {
		return fmt.Errorf("failed to batch create wishes: %w", err)
	}
	return nil
}

// CreateFriendEdge persists an edge between two users with the given status.
func (f *Factory) CreateFriendEdge(requester, recipient *models.User, status models.FriendEdgeStatus) (*models.FriendEdge, error) {
	edge := &models.FriendEdge{
		RequesterID: requester.ID,
		RecipientID: recipient.ID,
		Status:      status,
	}
	if err := f.db.Create(edge).Error; err != nil {
		return nil, fmt.Errorf("failed to create friend edge: %w", err)
	}
	return edge, nil
}

// ReserveWish marks an open wish as purchased by the given display name.
func (f *Factory) ReserveWish(wish *models.Wish, purchasedBy string) error {
	now := time.Now().Add(-time.Duration(f.rand.Intn(10)) * 24 * time.Hour)
	return f.db.Model(wish).Updates(map[string]any{
		"status":        models.WishStatusPurchased,
		"purchased_by":  purchasedBy,
		"purchase_date": now,
	}).Error
}
