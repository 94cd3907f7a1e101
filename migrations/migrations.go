package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		profile_pic TEXT,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS item_categories (
		id SERIAL PRIMARY KEY,
		category TEXT NOT NULL UNIQUE,
		color_code TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS wishlist_categories (
		id SERIAL PRIMARY KEY,
		category TEXT NOT NULL UNIQUE,
		color_code TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		image_link TEXT NOT NULL DEFAULT '',
		category_id INTEGER NOT NULL REFERENCES item_categories(id),
		UNIQUE (name, link)
	)`,
	`CREATE TABLE IF NOT EXISTS user_wishlists (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		category_id INTEGER NOT NULL REFERENCES wishlist_categories(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		banner_img TEXT NOT NULL DEFAULT '',
		UNIQUE (username, category_id, title)
	)`,
	`CREATE TABLE IF NOT EXISTS user_wishlist_items (
		item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		wishlist_id INTEGER NOT NULL REFERENCES user_wishlists(id) ON DELETE CASCADE,
		PRIMARY KEY (item_id, wishlist_id)
	)`,
}

// AutoMigrate creates the schema if it does not exist. The unique
// constraints back the service-level duplicate checks, so concurrent
// check-then-insert races still resolve to a duplicate error.
func AutoMigrate(retries int, db *sql.DB) error {
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		for i := 0; err != nil && i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(stmt)
		}
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
