package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"wishlist-service/internal/entity"
)

// Checker answers the read-only existence and uniqueness questions that
// guard every mutating operation. Not-found is never an error: boolean
// checks return false and row checks return nil.
type Checker struct {
	db *sql.DB
}

func NewChecker(db *sql.DB) *Checker {
	return &Checker{db: db}
}

func (c *Checker) UserExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT username FROM users WHERE username = $1`

	var found string
	err := c.db.QueryRowContext(ctx, query, username).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return true, nil
}

// ItemExists checks the (name, link) composite uniqueness invariant.
func (c *Checker) ItemExists(ctx context.Context, name, link string) (bool, error) {
	query := `SELECT id FROM items WHERE name = $1 AND link = $2`

	var id int
	err := c.db.QueryRowContext(ctx, query, name, link).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return true, nil
}

func (c *Checker) ItemExistsByID(ctx context.Context, id int) (bool, error) {
	query := `SELECT id FROM items WHERE id = $1`

	var found int
	err := c.db.QueryRowContext(ctx, query, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check item exists by id: %w", err)
	}
	return true, nil
}

// Category looks up a category of the given kind by name. The comparison is
// case-insensitive: names are stored lowercase and the input is lowercased
// before the lookup. Returns nil when the category does not exist.
func (c *Checker) Category(ctx context.Context, kind entity.CategoryKind, name string) (*entity.Category, error) {
	query := fmt.Sprintf(
		`SELECT id, category, color_code FROM %s WHERE category = $1`, kind.Table())

	cat := &entity.Category{}
	err := c.db.QueryRowContext(ctx, query, strings.ToLower(name)).
		Scan(&cat.ID, &cat.Category, &cat.ColorCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check %s category: %w", kind, err)
	}
	return cat, nil
}

// CategoryInUse reports whether any item or wishlist still references the
// category. Deleting a referenced category is blocked by the services.
func (c *Checker) CategoryInUse(ctx context.Context, kind entity.CategoryKind, id int) (bool, error) {
	table := "items"
	if kind == entity.WishlistCategory {
		table = "user_wishlists"
	}
	query := fmt.Sprintf(`SELECT category_id FROM %s WHERE category_id = $1 LIMIT 1`, table)

	var found int
	err := c.db.QueryRowContext(ctx, query, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s category in use: %w", kind, err)
	}
	return true, nil
}

// Wishlist checks the (username, categoryID, title) uniqueness invariant and
// returns the matched wishlist keys, or nil when absent.
func (c *Checker) Wishlist(ctx context.Context, username string, categoryID int, title string) (*entity.Wishlist, error) {
	query := `
		SELECT id, username, category_id, title
		FROM user_wishlists
		WHERE username = $1 AND category_id = $2 AND title = $3`

	w := &entity.Wishlist{}
	err := c.db.QueryRowContext(ctx, query, username, categoryID, title).
		Scan(&w.ID, &w.Username, &w.CategoryID, &w.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check wishlist exists: %w", err)
	}
	return w, nil
}

// ItemInWishlist returns the association row, or nil when the item is not
// saved on the wishlist.
func (c *Checker) ItemInWishlist(ctx context.Context, itemID, wishlistID int) (*entity.WishlistItem, error) {
	query := `
		SELECT item_id, wishlist_id
		FROM user_wishlist_items
		WHERE item_id = $1 AND wishlist_id = $2`

	wi := &entity.WishlistItem{}
	err := c.db.QueryRowContext(ctx, query, itemID, wishlistID).
		Scan(&wi.ItemID, &wi.WishlistID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check item in wishlist: %w", err)
	}
	return wi, nil
}
