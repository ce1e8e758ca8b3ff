package catalog

import "fmt"

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryFashion     Category = "fashion"
	CategoryHome        Category = "home"
	CategoryBeauty      Category = "beauty"
	CategorySports      Category = "sports"

	// CategoryAll is the filter wildcard, not a real category.
	CategoryAll Category = "all"
)

// Categories lists the real categories in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryFashion,
		CategoryHome,
		CategoryBeauty,
		CategorySports,
	}
}

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryElectronics, CategoryFashion, CategoryHome, CategoryBeauty, CategorySports:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Product is one entry of the global catalog.
type Product struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	PriceKopecks int64    `json:"price"`
	Seller       string   `json:"seller"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"reviews"`
	Category     Category `json:"category"`
	Image        string   `json:"image"`
}
