package service_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"wishlist-service/internal/entity"
	"wishlist-service/internal/repository"
	"wishlist-service/internal/service"
)

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

// env bundles every service over one in-memory database so scenario tests
// can cross service boundaries the way requests do.
type env struct {
	db        *sql.DB
	users     *service.UserService
	items     *service.ItemService
	wishlists *service.WishlistService
}

func newEnv(t *testing.T) *env {
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

	return &env{
		db: db,
		users: service.NewUserService(
			repository.NewUserRepository(db), checker, events),
		items: service.NewItemService(
			repository.NewItemRepository(db),
			repository.NewCategoryRepository(db, entity.ItemCategory),
			checker, events),
		wishlists: service.NewWishlistService(
			repository.NewWishlistRepository(db),
			repository.NewCategoryRepository(db, entity.WishlistCategory),
			checker, events),
	}
}

func (e *env) register(t *testing.T, username string) {
	t.Helper()
	_, err := e.users.Register(context.Background(), entity.RegisterRequest{
		Username: username, Password: "secret", FirstName: "Test", LastName: "User",
	})
	require.NoError(t, err)
}

func (e *env) addItemCategory(t *testing.T, category string) {
	t.Helper()
	_, err := e.items.CreateCategory(context.Background(), entity.NewCategory{Category: category})
	require.NoError(t, err)
}

func (e *env) addWishlistCategory(t *testing.T, category string) {
	t.Helper()
	_, err := e.wishlists.CreateCategory(context.Background(), entity.NewCategory{Category: category})
	require.NoError(t, err)
}

func (e *env) addItem(t *testing.T, name, link, category string) int {
	t.Helper()
	created, err := e.items.Create(context.Background(), entity.NewItem{
		Name: name, Link: link, Price: 25, Category: category,
	})
	require.NoError(t, err)
	return created.ID
}
