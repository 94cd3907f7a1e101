package entity

type Item struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Link        string  `json:"link"`
	ImageLink   string  `json:"imageLink"`
	Category    string  `json:"category"`
	ColorCode   string  `json:"colorCode"`

	// Wishlists holds the references attached when a single item is fetched.
	Wishlists []ItemWishlistRef `json:"wishlists,omitempty"`
}

// ItemWishlistRef is the denormalized row describing a wishlist that has
// the item saved on it.
type ItemWishlistRef struct {
	ItemID      int     `json:"itemId"`
	WishlistID  int     `json:"wishlistId"`
	Title       string  `json:"title"`
	Username    string  `json:"username"`
	ProfilePic  *string `json:"profilePic"`
	Category    string  `json:"category"`
	ColorCode   string  `json:"colorCode"`
	Description string  `json:"description"`
	BannerImg   string  `json:"bannerImg"`
}

// ItemFilter holds the optional list-query parameters. Zero values mean
// "no filter"; unrecognized OrderBy values fall back to the default sort.
type ItemFilter struct {
	Name     string `query:"name"`
	Category string `query:"category"`
	OrderBy  string `query:"orderBy"`
}

type NewItem struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Link        string  `json:"link" validate:"required"`
	ImageLink   string  `json:"imageLink"`
	Category    string  `json:"category" validate:"required"`
}

// ItemUpdate is a sparse update payload; nil fields are left untouched.
type ItemUpdate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Link        *string  `json:"link"`
	ImageLink   *string  `json:"imageLink"`
	Category    *string  `json:"category"`
}

// Fields maps the provided attributes to their logical field names. The
// category name is intentionally absent: the service resolves it to a
// category id before building the update.
func (u ItemUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Link != nil {
		fields["link"] = *u.Link
	}
	if u.ImageLink != nil {
		fields["imageLink"] = *u.ImageLink
	}
	return fields
}
