package entity

type User struct {
	Username   string  `json:"username"`
	Password   string  `json:"-"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	ProfilePic *string `json:"profilePic"`
	IsAdmin    bool    `json:"isAdmin"`

	// Wishlists holds the per-category summaries attached when a single
	// user is fetched.
	Wishlists []WishlistSummary `json:"wishlists,omitempty"`
}

// WishlistSummary is the denormalized row attached to a fetched user.
type WishlistSummary struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
}

type RegisterRequest struct {
	Username   string  `json:"username" validate:"required"`
	Password   string  `json:"password" validate:"required"`
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName" validate:"required"`
	ProfilePic *string `json:"profilePic"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate is a sparse update payload; nil fields are left untouched.
type UserUpdate struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Password   *string `json:"password"`
	ProfilePic *string `json:"profilePic"`
}

// Fields maps the provided attributes to their logical field names.
func (u UserUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.FirstName != nil {
		fields["firstName"] = *u.FirstName
	}
	if u.LastName != nil {
		fields["lastName"] = *u.LastName
	}
	if u.Password != nil {
		fields["password"] = *u.Password
	}
	if u.ProfilePic != nil {
		fields["profilePic"] = *u.ProfilePic
	}
	return fields
}
