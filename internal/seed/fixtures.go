package seed

import (
	"fmt"
	"os"

	"wishwell/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// FixtureFile is a curated demo dataset: named users with explicit wishlists
// and friendships. Unlike the random seeder, fixtures are deterministic, so
// demos and onboarding walkthroughs always look the same.
type FixtureFile struct {
	Users []FixtureUser `yaml:"users"`
}

// FixtureUser describes one user and their data in a fixture file.
type FixtureUser struct {
	DisplayName string        `yaml:"display_name"`
	Email       string        `yaml:"email"`
	AvatarURL   string        `yaml:"avatar_url"`
	Tags        []FixtureTag  `yaml:"tags"`
	Wishes      []FixtureWish `yaml:"wishes"`
	Friends     []string      `yaml:"friends"` // display names, accepted edges
}

// FixtureTag describes a tag in a fixture file.
type FixtureTag struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// FixtureWish describes a wish in a fixture file.
type FixtureWish struct {
	Name        string   `yaml:"name"`
	Price       float64  `yaml:"price"`
	Priority    int      `yaml:"priority"`
	Privacy     string   `yaml:"privacy"`
	Quantity    int      `yaml:"quantity"`
	Description string   `yaml:"description"`
	Links       []string `yaml:"links"`
	Tags        []string `yaml:"tags"` // tag names, must be listed under the same user
	PurchasedBy string   `yaml:"purchased_by"`
}

// LoadFixtureFile parses a fixture YAML file.
func LoadFixtureFile(path string) (*FixtureFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	var file FixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file: %w", err)
	}
	return &file, nil
}

// ApplyFixtures inserts the fixture dataset into the database. Friendships
// reference users by display name, so users are created first.
func ApplyFixtures(db *gorm.DB, file *FixtureFile) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersByName := make(map[string]*models.User, len(file.Users))
	for _, fu := range file.Users {
		user := &models.User{
			DisplayName: fu.DisplayName,
			Email:       fu.Email,
			Password:    string(hashed),
			AvatarURL:   fu.AvatarURL,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create fixture user %q: %w", fu.DisplayName, err)
		}
		usersByName[fu.DisplayName] = user
	}

	for _, fu := range file.Users {
		user := usersByName[fu.DisplayName]

		tagsByName := make(map[string]uint, len(fu.Tags))
		for _, ft := range fu.Tags {
			tag := models.Tag{UserID: user.ID, Name: ft.Name, Color: ft.Color}
			if err := db.Create(&tag).Error; err != nil {
				return fmt.Errorf("failed to create fixture tag %q: %w", ft.Name, err)
			}
			tagsByName[ft.Name] = tag.ID
		}

		for _, fw := range fu.Wishes {
			wish, err := buildFixtureWish(user.ID, fw, tagsByName)
			if err != nil {
				return err
			}
			if err := db.Create(wish).Error; err != nil {
				return fmt.Errorf("failed to create fixture wish %q: %w", fw.Name, err)
			}
		}
	}

	// Friendships last, once every referenced user exists
	seen := make(map[[2]uint]bool)
	for _, fu := range file.Users {
		user := usersByName[fu.DisplayName]
		for _, friendName := range fu.Friends {
			friend, ok := usersByName[friendName]
			if !ok {
				return fmt.Errorf("fixture user %q lists unknown friend %q", fu.DisplayName, friendName)
			}
			key := [2]uint{user.ID, friend.ID}
			if user.ID > friend.ID {
				key = [2]uint{friend.ID, user.ID}
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			edge := models.FriendEdge{
				RequesterID: user.ID,
				RecipientID: friend.ID,
				Status:      models.FriendEdgeStatusAccepted,
			}
			if err := db.Create(&edge).Error; err != nil {
				return fmt.Errorf("failed to create fixture friendship: %w", err)
			}
		}
	}

	return nil
}

func buildFixtureWish(userID uint, fw FixtureWish, tagsByName map[string]uint) (*models.Wish, error) {
	privacy := models.WishPrivacy(fw.Privacy)
	if fw.Privacy == "" {
		privacy = models.WishPrivacyPrivate
	}
	switch privacy {
	case models.WishPrivacyPrivate, models.WishPrivacyFriends, models.WishPrivacyLink:
	default:
		return nil, fmt.Errorf("fixture wish %q has unknown privacy %q", fw.Name, fw.Privacy)
	}

	priority := fw.Priority
	if priority == 0 {
		priority = 1
	}
	quantity := fw.Quantity
	if quantity == 0 {
		quantity = 1
	}

	wish := &models.Wish{
		UserID:        userID,
		Name:          fw.Name,
		Price:         fw.Price,
		PriorityLevel: priority,
		Quantity:      quantity,
		Description:   fw.Description,
		Links:         fw.Links,
		PrivacyLevel:  privacy,
		Status:        models.WishStatusOpen,
	}
	if privacy == models.WishPrivacyLink {
		wish.ShareToken = fmt.Sprintf("demo-%d-%s", userID, sanitizeToken(fw.Name))
	}
	if fw.PurchasedBy != "" {
		wish.Status = models.WishStatusPurchased
		wish.PurchasedBy = &fw.PurchasedBy
	}

	for _, tagName := range fw.Tags {
		tagID, ok := tagsByName[tagName]
		if !ok {
			return nil, fmt.Errorf("fixture wish %q references unknown tag %q", fw.Name, tagName)
		}
		wish.TagIDs = append(wish.TagIDs, tagID)
	}
	return wish, nil
}

// sanitizeToken turns a wish name into a URL-safe share token suffix.
func sanitizeToken(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '-')
		}
	}
	return string(out)
}
