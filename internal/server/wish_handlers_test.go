package server

import (
	"fmt"
	"net/http"
	"testing"

	"wishwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWish(t *testing.T) {
	s, app := newTestServer(t)
	owner := createUser(t, s, "wish_owner", "owner@example.com")
	bearer := authToken(t, s, owner)

	t.Run("applies defaults", func(t *testing.T) {
		var wish models.Wish
		resp := doJSON(t, app, http.MethodPost, "/api/wishes/", bearer, map[string]any{
			"name": "Coffee grinder",
		}, &wish)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, owner.ID, wish.UserID)
		assert.Equal(t, models.WishStatusOpen, wish.Status)
		assert.Equal(t, 1, wish.PriorityLevel)
		assert.Equal(t, 1, wish.Quantity)
		assert.Equal(t, models.WishPrivacyPrivate, wish.PrivacyLevel)
	})

	t.Run("link privacy issues share token", func(t *testing.T) {
		var wish models.Wish
		resp := doJSON(t, app, http.MethodPost, "/api/wishes/", bearer, map[string]any{
			"name":          "Desk lamp",
			"privacy_level": "link",
		}, &wish)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotEmpty(t, wish.ShareToken)
	})

	t.Run("rejects invalid priority", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/wishes/", bearer, map[string]any{
			"name":           "Bad priority",
			"priority_level": 7,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/wishes/", bearer, map[string]any{
			"price": 19.99,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateAndDeleteWishOwnership(t *testing.T) {
	s, app := newTestServer(t)
	owner := createUser(t, s, "the_owner", "o@example.com")
	intruder := createUser(t, s, "intruder", "i@example.com")

	var wish models.Wish
	resp := doJSON(t, app, http.MethodPost, "/api/wishes/", authToken(t, s, owner), map[string]any{
		"name": "Guarded wish",
	}, &wish)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	target := fmt.Sprintf("/api/wishes/%d", wish.ID)

	resp = doJSON(t, app, http.MethodPut, target, authToken(t, s, intruder), map[string]any{
		"name": "Hijacked",
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, target, authToken(t, s, intruder), nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var updated models.Wish
	resp = doJSON(t, app, http.MethodPut, target, authToken(t, s, owner), map[string]any{
		"name": "Renamed wish",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed wish", updated.Name)

	var deleted struct {
		Message string `json:"message"`
	}
	resp = doJSON(t, app, http.MethodDelete, target, authToken(t, s, owner), nil, &deleted)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Wish deleted", deleted.Message)

	resp = doJSON(t, app, http.MethodPut, target, authToken(t, s, owner), map[string]any{
		"name": "Back from the dead",
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetUserWishesPrivacy(t *testing.T) {
	s, app := newTestServer(t)
	owner := createUser(t, s, "list_owner", "lo@example.com")
	friend := createUser(t, s, "list_friend", "lf@example.com")
	stranger := createUser(t, s, "list_stranger", "ls@example.com")
	befriend(t, s, owner, friend)

	ownerBearer := authToken(t, s, owner)
	for name, privacy := range map[string]string{
		"Private thing": "private",
		"Friends thing": "friends",
		"Link thing":    "link",
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/wishes/", ownerBearer, map[string]any{
			"name":          name,
			"privacy_level": privacy,
		}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	target := fmt.Sprintf("/api/users/%d/wishes", owner.ID)

	var body struct {
		Wishes []models.Wish `json:"wishes"`
	}

	resp := doJSON(t, app, http.MethodGet, target, ownerBearer, nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body.Wishes, 3)

	body.Wishes = nil
	resp = doJSON(t, app, http.MethodGet, target, authToken(t, s, friend), nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body.Wishes, 2)

	body.Wishes = nil
	resp = doJSON(t, app, http.MethodGet, target, authToken(t, s, stranger), nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body.Wishes)
}

func TestGetUserWishesAnonymousViewer(t *testing.T) {
	s, app := newTestServer(t)
	owner := createUser(t, s, "anon_owner", "ao@example.com")
	ownerBearer := authToken(t, s, owner)

	var linked models.Wish
	resp := doJSON(t, app, http.MethodPost, "/api/wishes/", ownerBearer, map[string]any{
		"name":          "Follow the link",
		"privacy_level": "link",
	}, &linked)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, linked.ShareToken)

	resp = doJSON(t, app, http.MethodPost, "/api/wishes/", ownerBearer, map[string]any{
		"name":          "Friends only",
		"privacy_level": "friends",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	target := fmt.Sprintf("/api/users/%d/wishes", owner.ID)

	var body struct {
		Wishes []models.Wish `json:"wishes"`
	}

	// No auth header at all: the route is reachable but shows nothing
	resp = doJSON(t, app, http.MethodGet, target, "", nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body.Wishes)

	// The share token alone unlocks the link-level wish
	body.Wishes = nil
	resp = doJSON(t, app, http.MethodGet, target+"?share_token="+linked.ShareToken, "", nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body.Wishes, 1)
	assert.Equal(t, "Follow the link", body.Wishes[0].Name)

	// A garbage bearer token degrades to the anonymous view, not an error
	resp = doJSON(t, app, http.MethodGet, target, "Bearer not-a-token", nil, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWishResponsesIncludeDerivedFields(t *testing.T) {
	s, app := newTestServer(t)
	owner := createUser(t, s, "derived_owner", "do@example.com")
	bearer := authToken(t, s, owner)

	var wish models.Wish
	resp := doJSON(t, app, http.MethodPost, "/api/wishes/", bearer, map[string]any{
		"name":           "Bottomless snacks",
		"priority_level": 3,
		"quantity":       -1,
		"privacy_level":  "link",
	}, &wish)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Wishes []struct {
			Name         string `json:"name"`
			PriorityText string `json:"priority_text"`
			IsUnlimited  bool   `json:"is_unlimited"`
		} `json:"wishes"`
	}
	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/wishes", owner.ID), bearer, nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body.Wishes, 1)
	assert.Equal(t, "High", body.Wishes[0].PriorityText)
	assert.True(t, body.Wishes[0].IsUnlimited)

	var shared struct {
		PriorityText string `json:"priority_text"`
		IsUnlimited  bool   `json:"is_unlimited"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/shared/"+wish.ShareToken, "", nil, &shared)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "High", shared.PriorityText)
	assert.True(t, shared.IsUnlimited)
}

func TestGetUserWishesStatusFilter(t *testing.T) {
	s, app := newTestServer(t)
	owner := createUser(t, s, "filter_owner", "fo@example.com")
	friend := createUser(t, s, "filter_friend", "ff@example.com")
	befriend(t, s, owner, friend)

	ownerBearer := authToken(t, s, owner)
	var reserved models.Wish
	resp := doJSON(t, app, http.MethodPost, "/api/wishes/", ownerBearer, map[string]any{
		"name":          "Gets reserved",
		"privacy_level": "friends",
	}, &reserved)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/wishes/", ownerBearer, map[string]any{
		"name":          "Stays open",
		"privacy_level": "friends",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/wishes/%d/reserve", reserved.ID),
		authToken(t, s, friend),
		map[string]any{"purchased_by": "filter_friend"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Wishes []models.Wish `json:"wishes"`
	}
	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/wishes?status=open", owner.ID), ownerBearer, nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body.Wishes, 1)
	assert.Equal(t, "Stays open", body.Wishes[0].Name)
}

func TestReserveWish(t *testing.T) {
	s, app := newTestServer(t)
	owner := createUser(t, s, "res_owner", "ro@example.com")
	friend := createUser(t, s, "res_friend", "rf@example.com")
	other := createUser(t, s, "res_other", "rx@example.com")
	befriend(t, s, owner, friend)

	var wish models.Wish
	resp := doJSON(t, app, http.MethodPost, "/api/wishes/", authToken(t, s, owner), map[string]any{
		"name":          "Espresso machine",
		"privacy_level": "friends",
	}, &wish)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	target := fmt.Sprintf("/api/wishes/%d/reserve", wish.ID)

	t.Run("owner cannot reserve their own wish", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, target, authToken(t, s, owner),
			map[string]any{"purchased_by": "res_owner"}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("purchaser name is required", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, target, authToken(t, s, friend),
			map[string]any{}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("reserve succeeds and defaults the purchase date", func(t *testing.T) {
		var got models.Wish
		resp := doJSON(t, app, http.MethodPost, target, authToken(t, s, friend),
			map[string]any{"purchased_by": "res_friend"}, &got)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, models.WishStatusPurchased, got.Status)
		require.NotNil(t, got.PurchasedBy)
		assert.Equal(t, "res_friend", *got.PurchasedBy)
		require.NotNil(t, got.PurchaseDate)
		assert.False(t, got.PurchaseDate.IsZero())
	})

	t.Run("second reserve loses the race", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, target, authToken(t, s, other),
			map[string]any{"purchased_by": "res_other"}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestConfirmWishReceived(t *testing.T) {
	s, app := newTestServer(t)
	owner := createUser(t, s, "recv_owner", "rvo@example.com")
	friend := createUser(t, s, "recv_friend", "rvf@example.com")
	befriend(t, s, owner, friend)

	newReservedWish := func(t *testing.T, name string) models.Wish {
		var wish models.Wish
		resp := doJSON(t, app, http.MethodPost, "/api/wishes/", authToken(t, s, owner), map[string]any{
			"name":          name,
			"privacy_level": "friends",
		}, &wish)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp = doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/wishes/%d/reserve", wish.ID),
			authToken(t, s, friend),
			map[string]any{"purchased_by": "recv_friend"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return wish
	}

	t.Run("confirm fulfills the wish", func(t *testing.T) {
		wish := newReservedWish(t, "Arrived gift")
		var got models.Wish
		resp := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/wishes/%d/received", wish.ID),
			authToken(t, s, owner),
			map[string]any{"received": true}, &got)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, models.WishStatusFulfilled, got.Status)
		assert.NotNil(t, got.PurchasedBy)
	})

	t.Run("deny reopens the wish and clears the reservation", func(t *testing.T) {
		wish := newReservedWish(t, "Never arrived")
		var got models.Wish
		resp := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/wishes/%d/received", wish.ID),
			authToken(t, s, owner),
			map[string]any{"received": false}, &got)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, models.WishStatusOpen, got.Status)
		assert.Nil(t, got.PurchasedBy)
		assert.Nil(t, got.PurchaseDate)
	})

	t.Run("only the owner can confirm", func(t *testing.T) {
		wish := newReservedWish(t, "Not yours to confirm")
		resp := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/wishes/%d/received", wish.ID),
			authToken(t, s, friend),
			map[string]any{"received": true}, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("cannot fulfill an open wish", func(t *testing.T) {
		var wish models.Wish
		resp := doJSON(t, app, http.MethodPost, "/api/wishes/", authToken(t, s, owner), map[string]any{
			"name": "Still open",
		}, &wish)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp = doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/wishes/%d/received", wish.ID),
			authToken(t, s, owner),
			map[string]any{"received": true}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetSharedWish(t *testing.T) {
	s, app := newTestServer(t)
	owner := createUser(t, s, "share_owner", "so@example.com")

	var wish models.Wish
	resp := doJSON(t, app, http.MethodPost, "/api/wishes/", authToken(t, s, owner), map[string]any{
		"name":          "Linkable wish",
		"privacy_level": "link",
	}, &wish)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, wish.ShareToken)

	// No auth header: possession of the token is the grant
	var got models.Wish
	resp = doJSON(t, app, http.MethodGet, "/api/shared/"+wish.ShareToken, "", nil, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, wish.ID, got.ID)

	resp = doJSON(t, app, http.MethodGet, "/api/shared/does-not-exist", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
