package entity

// CategoryKind selects which category table an operation targets. Item and
// wishlist categories share a shape but live in separate tables.
type CategoryKind string

const (
	ItemCategory     CategoryKind = "item"
	WishlistCategory CategoryKind = "wishlist"
)

// Table returns the physical table backing the kind.
func (k CategoryKind) Table() string {
	if k == WishlistCategory {
		return "wishlist_categories"
	}
	return "item_categories"
}

type Category struct {
	ID        int    `json:"id"`
	Category  string `json:"category"`
	ColorCode string `json:"colorCode"`
}

type NewCategory struct {
	Category  string `json:"category" validate:"required"`
	ColorCode string `json:"colorCode"`
}
