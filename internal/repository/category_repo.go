package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"wishlist-service/internal/apperr"
	"wishlist-service/internal/entity"
)

// CategoryRepository serves one category table; item and wishlist categories
// get separate instances over the same connection pool.
type CategoryRepository struct {
	db   *sql.DB
	kind entity.CategoryKind
}

func NewCategoryRepository(db *sql.DB, kind entity.CategoryKind) *CategoryRepository {
	return &CategoryRepository{db: db, kind: kind}
}

func (r *CategoryRepository) Kind() entity.CategoryKind {
	return r.kind
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	sel := fmt.Sprintf(
		`SELECT id, category, color_code FROM %s ORDER BY category`, r.kind.Table())

	rows, err := r.db.QueryContext(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("list %s categories: %w", r.kind, err)
	}
	defer rows.Close()

	var cats []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Category, &c.ColorCode); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Insert stores a category name lowercased; lookups are case-insensitive
// because of this write-time normalization.
func (r *CategoryRepository) Insert(ctx context.Context, n entity.NewCategory) (*entity.Category, error) {
	insert := fmt.Sprintf(`
		INSERT INTO %s (category, color_code)
		VALUES ($1, $2)
		RETURNING id, category, color_code`, r.kind.Table())

	c := &entity.Category{}
	err := r.db.QueryRowContext(ctx, insert, strings.ToLower(n.Category), n.ColorCode).
		Scan(&c.ID, &c.Category, &c.ColorCode)
	if isUniqueViolation(err) {
		return nil, apperr.BadRequest("%s already exists", n.Category)
	}
	if err != nil {
		return nil, fmt.Errorf("insert %s category: %w", r.kind, err)
	}
	return c, nil
}

// Delete removes a category by name and reports whether a row was deleted.
func (r *CategoryRepository) Delete(ctx context.Context, category string) (bool, error) {
	del := fmt.Sprintf(
		`DELETE FROM %s WHERE category = $1 RETURNING id`, r.kind.Table())

	var deleted int
	err := r.db.QueryRowContext(ctx, del, strings.ToLower(category)).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete %s category: %w", r.kind, err)
	}
	return true, nil
}
