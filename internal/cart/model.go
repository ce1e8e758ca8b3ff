package cart

import "markethub/internal/catalog"

// Item is one cart line: a catalog product with an aggregated quantity.
// The cart holds at most one item per product id.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}
