package api_test

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"wishlist-service/internal/api"
	"wishlist-service/internal/auth"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/repository"
	"wishlist-service/internal/service"
)

var testSecret = []byte("api-test-secret")

const testSchema = `
	CREATE TABLE users (
		username TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		profile_pic TEXT,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	);
	CREATE TABLE item_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL UNIQUE,
		color_code TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE wishlist_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL UNIQUE,
		color_code TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		image_link TEXT NOT NULL DEFAULT '',
		category_id INTEGER NOT NULL REFERENCES item_categories(id),
		UNIQUE (name, link)
	);
	CREATE TABLE user_wishlists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		category_id INTEGER NOT NULL REFERENCES wishlist_categories(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		banner_img TEXT NOT NULL DEFAULT '',
		UNIQUE (username, category_id, title)
	);
	CREATE TABLE user_wishlist_items (
		item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		wishlist_id INTEGER NOT NULL REFERENCES user_wishlists(id) ON DELETE CASCADE,
		PRIMARY KEY (item_id, wishlist_id)
	);`

// server is the full HTTP surface wired over one in-memory database, minus
// the broker and rate limiter.
type server struct {
	e  *echo.Echo
	db *sql.DB
}

func newServer(t *testing.T) *server {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// one in-memory database per test; a second pooled connection would
	// see an empty schema
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	checker := repository.NewChecker(db)
	var events *service.EventPublisher

	users := service.NewUserService(repository.NewUserRepository(db), checker, events)
	items := service.NewItemService(
		repository.NewItemRepository(db),
		repository.NewCategoryRepository(db, entity.ItemCategory),
		checker, events)
	wishlists := service.NewWishlistService(
		repository.NewWishlistRepository(db),
		repository.NewCategoryRepository(db, entity.WishlistCategory),
		checker, events)

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.HTTPErrorHandler
	api.RegisterRoutes(e, testSecret,
		api.NewAuthHandler(users, testSecret),
		api.NewUserHandler(users, wishlists),
		api.NewItemHandler(items),
		api.NewWishlistHandler(wishlists))

	return &server{e: e, db: db}
}

// do performs one request and decodes the JSON body into a generic map.
// An empty token means anonymous.
func (s *server) do(t *testing.T, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

// register creates a user through the API and returns their token.
func (s *server) register(t *testing.T, username string) string {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username, "password": "secret",
		"firstName": "Test", "lastName": "User",
	})
	require.Equal(t, http.StatusCreated, code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// adminToken seeds an admin row directly and mints their credential.
// Registration can never produce one.
func (s *server) adminToken(t *testing.T) string {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO users (username, password, first_name, last_name, is_admin)
		 VALUES ($1, 'hashed', 'Ad', 'Min', TRUE)`, "admin")
	require.NoError(t, err)

	token, err := auth.GenerateToken(testSecret, "admin", true)
	require.NoError(t, err)
	return token
}
