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

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// userUpdateCols maps logical update fields to physical columns.
var userUpdateCols = map[string]string{
	"firstName":  "first_name",
	"lastName":   "last_name",
	"password":   "password",
	"profilePic": "profile_pic",
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) (*entity.User, error) {
	insert := `
		INSERT INTO users (username, password, first_name, last_name, profile_pic, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING username, first_name, last_name, profile_pic, is_admin`

	created := &entity.User{}
	err := r.db.QueryRowContext(ctx, insert,
		u.Username, u.Password, u.FirstName, u.LastName, u.ProfilePic, u.IsAdmin,
	).Scan(&created.Username, &created.FirstName, &created.LastName, &created.ProfilePic, &created.IsAdmin)
	if isUniqueViolation(err) {
		return nil, apperr.BadRequest("%s already exists", u.Username)
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// GetByUsername returns the user including the hashed password, for the
// authenticate path. Returns nil when absent.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	sel := `
		SELECT username, password, first_name, last_name, profile_pic, is_admin
		FROM users
		WHERE username = $1`

	u := &entity.User{}
	err := r.db.QueryRowContext(ctx, sel, username).
		Scan(&u.Username, &u.Password, &u.FirstName, &u.LastName, &u.ProfilePic, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	sel := `
		SELECT username, first_name, last_name, profile_pic, is_admin
		FROM users
		ORDER BY username`

	rows, err := r.db.QueryContext(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.ProfilePic, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListWishlistSummaries returns the per-category wishlist summaries attached
// to a fetched user, sorted by category.
func (r *UserRepository) ListWishlistSummaries(ctx context.Context, username string) ([]entity.WishlistSummary, error) {
	sel := `
		SELECT w.id, c.category
		FROM user_wishlists w
		INNER JOIN wishlist_categories c ON w.category_id = c.id
		WHERE w.username = $1
		ORDER BY c.category`

	rows, err := r.db.QueryContext(ctx, sel, username)
	if err != nil {
		return nil, fmt.Errorf("list wishlist summaries: %w", err)
	}
	defer rows.Close()

	var summaries []entity.WishlistSummary
	for rows.Next() {
		var s entity.WishlistSummary
		if err := rows.Scan(&s.ID, &s.Category); err != nil {
			return nil, fmt.Errorf("scan wishlist summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Update applies a sparse field map to the user row. The username lands in
// the argument list right after the SET parameters. Returns nil when the
// user does not exist.
func (r *UserRepository) Update(ctx context.Context, username string, fields map[string]any) (*entity.User, error) {
	set, args, err := query.PartialUpdate(fields, userUpdateCols)
	if err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE username = $%d
		RETURNING username, first_name, last_name, profile_pic, is_admin`,
		set, len(args)+1)
	args = append(args, username)

	u := &entity.User{}
	err = r.db.QueryRowContext(ctx, stmt, args...).
		Scan(&u.Username, &u.FirstName, &u.LastName, &u.ProfilePic, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete removes the user and reports whether a row was deleted.
func (r *UserRepository) Delete(ctx context.Context, username string) (bool, error) {
	del := `DELETE FROM users WHERE username = $1 RETURNING username`

	var deleted string
	err := r.db.QueryRowContext(ctx, del, username).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return true, nil
}
