package seed

import (
	"fmt"
	"log"

	"wishwell/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers        int
	WishesPerUser   int
	ShouldClean     bool
	ReserveFraction float64 // share of friend-visible wishes to mark purchased
}

// DefaultOptions returns the seeding profile used by the seed command.
func DefaultOptions() Options {
	return Options{
		NumUsers:        25,
		WishesPerUser:   8,
		ShouldClean:     true,
		ReserveFraction: 0.2,
	}
}

// Seed populates the database with demo users, wishlists, and a friend mesh.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Seeding %d users with ~%d wishes each...", opts.NumUsers, opts.WishesPerUser)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d users created", len(users))

	totalWishes := 0
	userTags := make(map[uint][]models.Tag, len(users))
	for _, user := range users {
		tags, err := f.CreateTags(user, 3)
		if err != nil {
			return fmt.Errorf("failed to create tags: %w", err)
		}
		userTags[user.ID] = tags

		wishes := make([]*models.Wish, 0, opts.WishesPerUser)
		for i := 0; i < opts.WishesPerUser; i++ {
			wishes = append(wishes, f.BuildWish(user, tags))
		}
		if err := f.CreateWishesBatch(wishes); err != nil {
			return fmt.Errorf("failed to create wishes: %w", err)
		}
		totalWishes += len(wishes)
	}
	log.Printf("✓ %d wishes created", totalWishes)

	edges, err := seedFriendMesh(f, users)
	if err != nil {
		return fmt.Errorf("failed to create friend mesh: %w", err)
	}
	log.Printf("✓ %d friend edges created", edges)

	reserved, err := seedReservations(db, f, users, opts.ReserveFraction)
	if err != nil {
		return fmt.Errorf("failed to create reservations: %w", err)
	}
	log.Printf("✓ %d wishes reserved", reserved)

	log.Printf("✨ Done. All seeded users share the password %q", DefaultPassword)
	return nil
}

// seedFriendMesh connects each user to a handful of others with a mix of
// accepted, pending, and the occasional rejected edge.
func seedFriendMesh(f *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	statuses := []models.FriendEdgeStatus{
		models.FriendEdgeStatusAccepted,
		models.FriendEdgeStatusAccepted,
		models.FriendEdgeStatusAccepted,
		models.FriendEdgeStatusPending,
		models.FriendEdgeStatusRejected,
	}

	created := 0
	seen := make(map[[2]uint]bool)
	for _, user := range users {
		degree := 2 + f.rand.Intn(3)
		for d := 0; d < degree; d++ {
			other := users[f.rand.Intn(len(users))]
			if other.ID == user.ID {
				continue
			}
			key := [2]uint{user.ID, other.ID}
			if user.ID > other.ID {
				key = [2]uint{other.ID, user.ID}
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			status := statuses[f.rand.Intn(len(statuses))]
			if _, err := f.CreateFriendEdge(user, other, status); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// seedReservations marks a fraction of friend-visible open wishes as
// purchased by a random other user.
func seedReservations(db *gorm.DB, f *Factory, users []*models.User, fraction float64) (int, error) {
	if fraction <= 0 || len(users) < 2 {
		return 0, nil
	}

	var candidates []models.Wish
	err := db.
		Where("privacy_level = ? AND status = ?", models.WishPrivacyFriends, models.WishStatusOpen).
		Find(&candidates).Error
	if err != nil {
		return 0, err
	}

	reserved := 0
	for i := range candidates {
		if f.rand.Float64() >= fraction {
			continue
		}
		buyer := users[f.rand.Intn(len(users))]
		if buyer.ID == candidates[i].UserID {
			continue
		}
		if err := f.ReserveWish(&candidates[i], buyer.DisplayName); err != nil {
			return reserved, err
		}
		reserved++
	}
	return reserved, nil
}

// ClearAll deletes all seeded data. Order matters for foreign keys.
func ClearAll(db *gorm.DB) error {
	for _, model := range []any{
		&models.FriendEdge{},
		&models.Wish{},
		&models.Tag{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
