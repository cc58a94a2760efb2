package repository

import (
	"context"
	"testing"
	"time"

	"wishwell/internal/database"
	"wishwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*userRepository, *wishRepository, *tagRepository, *friendRepository) {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	users := NewUserRepository(db).(*userRepository)
	wishes := NewWishRepository(db).(*wishRepository)
	tags := NewTagRepository(db).(*tagRepository)
	friends := NewFriendRepository(db).(*friendRepository)
	return users, wishes, tags, friends
}

func seedUser(t *testing.T, users *userRepository, name string) *models.User {
	t.Helper()
	u := &models.User{
		DisplayName: name,
		Email:       name + "@example.com",
		Password:    "hashed-password",
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestWishRepository_CreateAndGet(t *testing.T) {
	users, wishes, _, _ := setupTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, users, "alice")

	wish := &models.Wish{
		UserID:        owner.ID,
		Name:          "Desk Lamp",
		Price:         45.50,
		PriorityLevel: 2,
		Links:         []string{"https://shop.example/lamp"},
		Quantity:      1,
		PrivacyLevel:  models.WishPrivacyFriends,
		Status:        models.WishStatusOpen,
		TagIDs:        []uint{3, 7},
	}
	require.NoError(t, wishes.Create(ctx, wish))
	require.NotZero(t, wish.ID)

	got, err := wishes.GetByID(ctx, wish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", got.Name)
	assert.Equal(t, []string{"https://shop.example/lamp"}, got.Links)
	assert.Equal(t, []uint{3, 7}, got.TagIDs)
	assert.Equal(t, models.WishStatusOpen, got.Status)
}

func TestWishRepository_GetByID_NotFound(t *testing.T) {
	_, wishes, _, _ := setupTestDB(t)

	_, err := wishes.GetByID(context.Background(), 9999)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestWishRepository_GetByShareToken(t *testing.T) {
	users, wishes, _, _ := setupTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, users, "bob")

	wish := &models.Wish{
		UserID:       owner.ID,
		Name:         "Board Game",
		Quantity:     1,
		PrivacyLevel: models.WishPrivacyLink,
		ShareToken:   "tok-abc123",
		Status:       models.WishStatusOpen,
	}
	require.NoError(t, wishes.Create(ctx, wish))

	got, err := wishes.GetByShareToken(ctx, "tok-abc123")
	require.NoError(t, err)
	assert.Equal(t, wish.ID, got.ID)
}

func TestWishRepository_ListByOwner_Ordering(t *testing.T) {
	users, wishes, _, _ := setupTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, users, "carol")
	other := seedUser(t, users, "dave")

	old := &models.Wish{UserID: owner.ID, Name: "Older", Quantity: 1, Status: models.WishStatusOpen}
	require.NoError(t, wishes.Create(ctx, old))
	// Force distinct timestamps so ordering is deterministic
	require.NoError(t, wishes.db.Model(old).Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer := &models.Wish{UserID: owner.ID, Name: "Newer", Quantity: 1, Status: models.WishStatusOpen}
	require.NoError(t, wishes.Create(ctx, newer))
	require.NoError(t, wishes.Create(ctx, &models.Wish{UserID: other.ID, Name: "Not mine", Quantity: 1}))

	list, err := wishes.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Newer", list[0].Name)
	assert.Equal(t, "Older", list[1].Name)
}

func TestWishRepository_Reserve(t *testing.T) {
	users, wishes, _, _ := setupTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, users, "erin")

	wish := &models.Wish{UserID: owner.ID, Name: "Headphones", Quantity: 1, Status: models.WishStatusOpen}
	require.NoError(t, wishes.Create(ctx, wish))

	when := time.Now()
	ok, err := wishes.Reserve(ctx, wish.ID, "frank", when)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := wishes.GetByID(ctx, wish.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WishStatusPurchased, got.Status)
	require.NotNil(t, got.PurchasedBy)
	assert.Equal(t, "frank", *got.PurchasedBy)
	require.NotNil(t, got.PurchaseDate)

	// Second reservation loses the race: the row is no longer open
	ok, err = wishes.Reserve(ctx, wish.ID, "grace", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = wishes.GetByID(ctx, wish.ID)
	require.NoError(t, err)
	assert.Equal(t, "frank", *got.PurchasedBy)
}

func TestWishRepository_ClearReservation(t *testing.T) {
	users, wishes, _, _ := setupTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, users, "hank")

	wish := &models.Wish{UserID: owner.ID, Name: "Kettle", Quantity: 1, Status: models.WishStatusOpen}
	require.NoError(t, wishes.Create(ctx, wish))

	ok, err := wishes.Reserve(ctx, wish.ID, "ivy", time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, wishes.ClearReservation(ctx, wish.ID))

	got, err := wishes.GetByID(ctx, wish.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WishStatusOpen, got.Status)
	assert.Nil(t, got.PurchasedBy)
	assert.Nil(t, got.PurchaseDate)

	// Reopened wish is reservable again
	ok, err = wishes.Reserve(ctx, wish.ID, "judy", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWishRepository_SetFulfilled(t *testing.T) {
	users, wishes, _, _ := setupTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, users, "kate")

	wish := &models.Wish{UserID: owner.ID, Name: "Scarf", Quantity: 1, Status: models.WishStatusOpen}
	require.NoError(t, wishes.Create(ctx, wish))

	ok, err := wishes.Reserve(ctx, wish.ID, "liam", time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, wishes.SetFulfilled(ctx, wish.ID))

	got, err := wishes.GetByID(ctx, wish.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WishStatusFulfilled, got.Status)
	require.NotNil(t, got.PurchasedBy)
	assert.Equal(t, "liam", *got.PurchasedBy)
}

func TestWishRepository_UpdateFieldsAndDelete(t *testing.T) {
	users, wishes, _, _ := setupTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, users, "mona")

	wish := &models.Wish{UserID: owner.ID, Name: "Mug", Quantity: 1, Status: models.WishStatusOpen}
	require.NoError(t, wishes.Create(ctx, wish))

	err := wishes.UpdateFields(ctx, wish.ID, map[string]interface{}{
		"name":           "Travel Mug",
		"priority_level": 3,
	})
	require.NoError(t, err)

	got, err := wishes.GetByID(ctx, wish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Travel Mug", got.Name)
	assert.Equal(t, 3, got.PriorityLevel)

	require.NoError(t, wishes.Delete(ctx, wish.ID))
	_, err = wishes.GetByID(ctx, wish.ID)
	require.Error(t, err)
}
