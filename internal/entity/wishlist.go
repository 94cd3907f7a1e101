package entity

type Wishlist struct {
	ID          int     `json:"id"`
	Username    string  `json:"username"`
	ProfilePic  *string `json:"profilePic,omitempty"`
	CategoryID  int     `json:"-"`
	Category    string  `json:"category,omitempty"`
	ColorCode   string  `json:"colorCode,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	BannerImg   string  `json:"bannerImg"`

	// Items holds the sorted member items attached when a single wishlist
	// is fetched by its compound key.
	Items []Item `json:"items,omitempty"`
}

// WishlistItem is the item-on-wishlist association row.
type WishlistItem struct {
	ItemID     int `json:"itemId"`
	WishlistID int `json:"wishlistId"`
}

// WishlistUpdate is a sparse update payload; nil fields are left untouched.
type WishlistUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	BannerImg   *string `json:"bannerImg"`
	Category    *string `json:"category"`
}

// Fields maps the provided attributes to their logical field names. The
// category name is intentionally absent: the service resolves it to a
// category id before building the update.
func (u WishlistUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.BannerImg != nil {
		fields["bannerImg"] = *u.BannerImg
	}
	return fields
}

// WishlistFilter holds the optional list-query parameters. Zero values mean
// "no filter"; unrecognized OrderBy values fall back to the default sort.
type WishlistFilter struct {
	Title    string `query:"title"`
	Category string `query:"category"`
	OrderBy  string `query:"orderBy"`
}

type NewWishlist struct {
	Category    string `json:"category" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	BannerImg   string `json:"bannerImg"`
}
