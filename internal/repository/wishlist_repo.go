package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wishlist-service/internal/apperr"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/query"
)

type WishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *sql.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

const wishlistBaseSelect = `
	SELECT w.id, w.username, u.profile_pic, c.category, c.color_code, w.title, w.description, w.banner_img
	FROM user_wishlists w
	INNER JOIN users u ON w.username = u.username
	INNER JOIN wishlist_categories c ON w.category_id = c.id`

func wishlistOrder(orderBy string) string {
	if orderBy == "username" {
		return "w.username"
	}
	return "w.title"
}

func scanWishlists(rows *sql.Rows) ([]entity.Wishlist, error) {
	var lists []entity.Wishlist
	for rows.Next() {
		var w entity.Wishlist
		err := rows.Scan(&w.ID, &w.Username, &w.ProfilePic, &w.Category,
			&w.ColorCode, &w.Title, &w.Description, &w.BannerImg)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist: %w", err)
		}
		lists = append(lists, w)
	}
	return lists, rows.Err()
}

func (r *WishlistRepository) List(ctx context.Context, f entity.WishlistFilter) ([]entity.Wishlist, error) {
	q := query.New(wishlistBaseSelect).
		WhereContains("w.title", f.Title).
		WhereEq("c.category", f.Category).
		OrderBy(wishlistOrder(f.OrderBy))

	rows, err := r.db.QueryContext(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list wishlists: %w", err)
	}
	defer rows.Close()

	return scanWishlists(rows)
}

// ListByUser returns a user's wishlists sorted by category.
func (r *WishlistRepository) ListByUser(ctx context.Context, username string) ([]entity.Wishlist, error) {
	sel := wishlistBaseSelect + ` WHERE w.username = $1 ORDER BY c.category`

	rows, err := r.db.QueryContext(ctx, sel, username)
	if err != nil {
		return nil, fmt.Errorf("list wishlists by user: %w", err)
	}
	defer rows.Close()

	return scanWishlists(rows)
}

func (r *WishlistRepository) ListByUserAndCategory(ctx context.Context, username string, categoryID int) ([]entity.Wishlist, error) {
	sel := wishlistBaseSelect + ` WHERE w.username = $1 AND w.category_id = $2 ORDER BY w.title`

	rows, err := r.db.QueryContext(ctx, sel, username, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list wishlists by category: %w", err)
	}
	defer rows.Close()

	return scanWishlists(rows)
}

// GetByKey fetches a wishlist by its (username, categoryID, title) compound
// key, or nil when absent.
func (r *WishlistRepository) GetByKey(ctx context.Context, username string, categoryID int, title string) (*entity.Wishlist, error) {
	sel := wishlistBaseSelect + ` WHERE w.username = $1 AND w.category_id = $2 AND w.title = $3`

	w := &entity.Wishlist{}
	err := r.db.QueryRowContext(ctx, sel, username, categoryID, title).
		Scan(&w.ID, &w.Username, &w.ProfilePic, &w.Category,
			&w.ColorCode, &w.Title, &w.Description, &w.BannerImg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return w, nil
}

// Get fetches a wishlist by id, or nil when absent.
func (r *WishlistRepository) Get(ctx context.Context, id int) (*entity.Wishlist, error) {
	sel := wishlistBaseSelect + ` WHERE w.id = $1`

	w := &entity.Wishlist{}
	err := r.db.QueryRowContext(ctx, sel, id).
		Scan(&w.ID, &w.Username, &w.ProfilePic, &w.Category,
			&w.ColorCode, &w.Title, &w.Description, &w.BannerImg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return w, nil
}

// ListItems returns a wishlist's member items sorted by item name.
func (r *WishlistRepository) ListItems(ctx context.Context, wishlistID int) ([]entity.Item, error) {
	sel := `
		SELECT uwi.item_id, i.name, i.price, i.description, i.link, i.image_link, c.category, c.color_code
		FROM user_wishlist_items uwi
		INNER JOIN items i ON uwi.item_id = i.id
		INNER JOIN item_categories c ON i.category_id = c.id
		WHERE uwi.wishlist_id = $1
		ORDER BY i.name`

	rows, err := r.db.QueryContext(ctx, sel, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		var it entity.Item
		err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Description,
			&it.Link, &it.ImageLink, &it.Category, &it.ColorCode)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *WishlistRepository) Insert(ctx context.Context, username string, categoryID int, n entity.NewWishlist) (*entity.Wishlist, error) {
	insert := `
		INSERT INTO user_wishlists (username, category_id, title, description, banner_img)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, category_id, title, description, banner_img`

	w := &entity.Wishlist{}
	err := r.db.QueryRowContext(ctx, insert,
		username, categoryID, n.Title, n.Description, n.BannerImg,
	).Scan(&w.ID, &w.Username, &w.CategoryID, &w.Title, &w.Description, &w.BannerImg)
	if isUniqueViolation(err) {
		return nil, apperr.BadRequest("the %s wishlist already exists for %s", n.Title, username)
	}
	if err != nil {
		return nil, fmt.Errorf("insert wishlist: %w", err)
	}
	return w, nil
}

// Update applies a sparse field map to the wishlist row and reports whether
// it exists.
func (r *WishlistRepository) Update(ctx context.Context, id int, fields map[string]any) (bool, error) {
	cols := map[string]string{
		"title":       "title",
		"description": "description",
		"bannerImg":   "banner_img",
		"categoryId":  "category_id",
	}
	set, args, err := query.PartialUpdate(fields, cols)
	if err != nil {
		return false, err
	}

	stmt := fmt.Sprintf(`UPDATE user_wishlists SET %s WHERE id = $%d RETURNING id`, set, len(args)+1)
	args = append(args, id)

	var updated int
	err = r.db.QueryRowContext(ctx, stmt, args...).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if isUniqueViolation(err) {
		return false, apperr.BadRequest("a wishlist with that category and title already exists")
	}
	if err != nil {
		return false, fmt.Errorf("update wishlist: %w", err)
	}
	return true, nil
}

func (r *WishlistRepository) Delete(ctx context.Context, id int) (bool, error) {
	del := `DELETE FROM user_wishlists WHERE id = $1 RETURNING id`

	var deleted int
	err := r.db.QueryRowContext(ctx, del, id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete wishlist: %w", err)
	}
	return true, nil
}

// AddItem saves an item on a wishlist.
func (r *WishlistRepository) AddItem(ctx context.Context, itemID, wishlistID int) error {
	insert := `
		INSERT INTO user_wishlist_items (item_id, wishlist_id)
		VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, insert, itemID, wishlistID)
	if isUniqueViolation(err) {
		return apperr.BadRequest("the item is already on the wishlist")
	}
	if err != nil {
		return fmt.Errorf("add item to wishlist: %w", err)
	}
	return nil
}

// RemoveItem deletes the association row and reports whether it existed.
func (r *WishlistRepository) RemoveItem(ctx context.Context, itemID, wishlistID int) (bool, error) {
	del := `
		DELETE FROM user_wishlist_items
		WHERE item_id = $1 AND wishlist_id = $2
		RETURNING wishlist_id`

	var deleted int
	err := r.db.QueryRowContext(ctx, del, itemID, wishlistID).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove item from wishlist: %w", err)
	}
	return true, nil
}
