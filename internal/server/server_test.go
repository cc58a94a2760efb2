package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"wishwell/internal/config"
	"wishwell/internal/database"
	"wishwell/internal/models"
	"wishwell/internal/repository"
	"wishwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestServer builds a Server against an in-memory database with the full
// route table mounted. Redis-dependent paths (realtime, tickets) stay nil
// unless a test wires them explicitly.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	wishRepo := repository.NewWishRepository(db)
	tagRepo := repository.NewTagRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	s := &Server{
		config:     &config.Config{JWTSecret: "test_secret", Env: "test"},
		db:         db,
		userRepo:   userRepo,
		wishRepo:   wishRepo,
		tagRepo:    tagRepo,
		friendRepo: friendRepo,
	}
	s.wishService = service.NewWishService(wishRepo, friendRepo)
	s.tagService = service.NewTagService(tagRepo)
	s.friendService = service.NewFriendService(friendRepo, userRepo)
	s.userService = service.NewUserService(userRepo, friendRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// createUser inserts a user with a known password ("Password123!") and
// returns it.
func createUser(t *testing.T, s *Server, displayName, email string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		DisplayName: displayName,
		Email:       email,
		Password:    string(hashed),
	}
	require.NoError(t, s.userRepo.Create(context.Background(), user))
	return user
}

// authToken returns a valid bearer token for the user.
func authToken(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.DisplayName)
	require.NoError(t, err)
	return "Bearer " + token
}

// doJSON performs a request with an optional JSON body and bearer token and
// decodes the JSON response into out (if non-nil).
func doJSON(t *testing.T, app *fiber.App, method, target, bearer string, body any, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// befriend creates an accepted edge between two users directly in the store.
func befriend(t *testing.T, s *Server, a, b *models.User) {
	t.Helper()
	edge := &models.FriendEdge{
		RequesterID: a.ID,
		RecipientID: b.ID,
		Status:      models.FriendEdgeStatusAccepted,
	}
	require.NoError(t, s.friendRepo.Create(context.Background(), edge))
}
