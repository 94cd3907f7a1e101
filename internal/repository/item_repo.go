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

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

var itemUpdateCols = map[string]string{
	"name":        "name",
	"price":       "price",
	"description": "description",
	"link":        "link",
	"imageLink":   "image_link",
	"categoryId":  "category_id",
}

const itemBaseSelect = `
	SELECT i.id, i.name, i.price, i.description, i.link, i.image_link, c.category, c.color_code
	FROM items i
	INNER JOIN item_categories c ON c.id = i.category_id`

// itemOrder maps recognized orderBy values to sort expressions. Anything
// else falls back to the name ascending default.
func itemOrder(orderBy string) string {
	switch orderBy {
	case "priceLower":
		return "i.price ASC"
	case "priceHigher":
		return "i.price DESC"
	default:
		return "i.name"
	}
}

func (r *ItemRepository) List(ctx context.Context, f entity.ItemFilter) ([]entity.Item, error) {
	q := query.New(itemBaseSelect).
		WhereContains("i.name", f.Name).
		WhereEq("c.category", f.Category).
		OrderBy(itemOrder(f.OrderBy))

	rows, err := r.db.QueryContext(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		var it entity.Item
		err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Description,
			&it.Link, &it.ImageLink, &it.Category, &it.ColorCode)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Get returns the item joined with its category, or nil when absent.
func (r *ItemRepository) Get(ctx context.Context, id int) (*entity.Item, error) {
	sel := itemBaseSelect + ` WHERE i.id = $1`

	it := &entity.Item{}
	err := r.db.QueryRowContext(ctx, sel, id).
		Scan(&it.ID, &it.Name, &it.Price, &it.Description,
			&it.Link, &it.ImageLink, &it.Category, &it.ColorCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// ListWishlistRefs returns the wishlists referencing an item, sorted by
// wishlist title.
func (r *ItemRepository) ListWishlistRefs(ctx context.Context, itemID int) ([]entity.ItemWishlistRef, error) {
	sel := `
		SELECT i.id, uwi.wishlist_id, w.title, u.username, u.profile_pic,
		       c.category, c.color_code, w.description, w.banner_img
		FROM items i
		INNER JOIN user_wishlist_items uwi ON uwi.item_id = i.id
		INNER JOIN user_wishlists w ON uwi.wishlist_id = w.id
		INNER JOIN users u ON u.username = w.username
		INNER JOIN wishlist_categories c ON w.category_id = c.id
		WHERE i.id = $1
		ORDER BY w.title`

	rows, err := r.db.QueryContext(ctx, sel, itemID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist refs: %w", err)
	}
	defer rows.Close()

	var refs []entity.ItemWishlistRef
	for rows.Next() {
		var ref entity.ItemWishlistRef
		err := rows.Scan(&ref.ItemID, &ref.WishlistID, &ref.Title, &ref.Username,
			&ref.ProfilePic, &ref.Category, &ref.ColorCode, &ref.Description, &ref.BannerImg)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *ItemRepository) Insert(ctx context.Context, n entity.NewItem, categoryID int) (int, error) {
	insert := `
		INSERT INTO items (name, price, description, link, image_link, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, insert,
		n.Name, n.Price, n.Description, n.Link, n.ImageLink, categoryID,
	).Scan(&id)
	if isUniqueViolation(err) {
		return 0, apperr.BadRequest("%s already exists", n.Name)
	}
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

// Update applies a sparse field map to the item row and reports whether the
// item exists. Category names must be resolved to a categoryId field by the
// caller before the update reaches the builder.
func (r *ItemRepository) Update(ctx context.Context, id int, fields map[string]any) (bool, error) {
	set, args, err := query.PartialUpdate(fields, itemUpdateCols)
	if err != nil {
		return false, err
	}

	stmt := fmt.Sprintf(`UPDATE items SET %s WHERE id = $%d RETURNING id`, set, len(args)+1)
	args = append(args, id)

	var updated int
	err = r.db.QueryRowContext(ctx, stmt, args...).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if isUniqueViolation(err) {
		return false, apperr.BadRequest("an item with that name and link already exists")
	}
	if err != nil {
		return false, fmt.Errorf("update item: %w", err)
	}
	return true, nil
}

// Delete removes the item and returns its name for the confirmation
// message; found is false when the item does not exist.
func (r *ItemRepository) Delete(ctx context.Context, id int) (name string, found bool, err error) {
	del := `DELETE FROM items WHERE id = $1 RETURNING id, name`

	var deleted int
	err = r.db.QueryRowContext(ctx, del, id).Scan(&deleted, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("delete item: %w", err)
	}
	return name, true, nil
}

// ListByCategory returns every item in a category.
func (r *ItemRepository) ListByCategory(ctx context.Context, categoryID int) ([]entity.Item, error) {
	sel := itemBaseSelect + ` WHERE c.id = $1 ORDER BY i.name`

	rows, err := r.db.QueryContext(ctx, sel, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list items by category: %w", err)
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		var it entity.Item
		err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Description,
			&it.Link, &it.ImageLink, &it.Category, &it.ColorCode)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
