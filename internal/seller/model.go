package seller

import "markethub/internal/catalog"

// Listing is a product created on the seller profile page. Listings are
// owned by the viewing session only: they are not persisted, not linked to
// an account, and never join the global catalog.
type Listing struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	PriceKopecks int64            `json:"price"`
	Category     catalog.Category `json:"category"`
	Description  string           `json:"description"`
	Image        string           `json:"image"`
}

// ListingForm is the raw listing form as submitted; the price arrives as
// typed.
type ListingForm struct {
	Name        string
	Price       string
	Category    string
	Description string
	Image       string
}

// DefaultImage is the form's preselected glyph.
const DefaultImage = "📦"
