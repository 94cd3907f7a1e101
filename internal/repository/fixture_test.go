package repository_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"wishlist-service/internal/entity"
	"wishlist-service/internal/repository"
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

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// one in-memory database per test; a second pooled connection would
	// see an empty schema
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

// seedUser inserts a user row directly; repository tests don't need real
// password hashes.
func seedUser(t *testing.T, db *sql.DB, username string, isAdmin bool) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO users (username, password, first_name, last_name, is_admin)
		 VALUES ($1, 'hashed', 'Test', 'User', $2)`, username, isAdmin)
	require.NoError(t, err)
}

func seedItemCategory(t *testing.T, db *sql.DB, category string) int {
	t.Helper()
	cats := repository.NewCategoryRepository(db, entity.ItemCategory)
	c, err := cats.Insert(context.Background(), entity.NewCategory{Category: category})
	require.NoError(t, err)
	return c.ID
}

func seedWishlistCategory(t *testing.T, db *sql.DB, category string) int {
	t.Helper()
	cats := repository.NewCategoryRepository(db, entity.WishlistCategory)
	c, err := cats.Insert(context.Background(), entity.NewCategory{Category: category})
	require.NoError(t, err)
	return c.ID
}

func seedItem(t *testing.T, db *sql.DB, name, link string, price float64, categoryID int) int {
	t.Helper()
	items := repository.NewItemRepository(db)
	id, err := items.Insert(context.Background(), entity.NewItem{
		Name: name, Link: link, Price: price, Category: "ignored",
	}, categoryID)
	require.NoError(t, err)
	return id
}

func seedWishlist(t *testing.T, db *sql.DB, username string, categoryID int, title string) int {
	t.Helper()
	lists := repository.NewWishlistRepository(db)
	w, err := lists.Insert(context.Background(), username, categoryID, entity.NewWishlist{Title: title})
	require.NoError(t, err)
	return w.ID
}
