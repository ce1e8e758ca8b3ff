package catalog

import (
	"context"
	"strings"

	"markethub/internal/logger"

	"go.uber.org/zap"
)

// Service holds the in-memory global catalog. It starts empty: listings
// created on the seller page stay on the seller page and never join this
// list.
type Service struct {
	products []Product
}

func NewService() *Service {
	return &Service{products: []Product{}}
}

// Replace swaps the whole catalog. The only mutation path; used for
// seeding demo data.
func (s *Service) Replace(ctx context.Context, products []Product) {
	s.products = append([]Product(nil), products...)
	logger.FromCtx(ctx).Info("catalog replaced", zap.Int("products", len(s.products)))
}

// List copies out the catalog in its stored order.
func (s *Service) List() []Product {
	return append([]Product(nil), s.products...)
}

// Search filters the catalog by category and name query.
func (s *Service) Search(category Category, query string) []Product {
	return Filter(s.products, category, query)
}

// Filter returns the products matching both predicates: exact category
// match (CategoryAll is a wildcard) AND case-insensitive substring match
// on the name. Pure; output preserves input order.
func Filter(products []Product, category Category, query string) []Product {
	q := strings.ToLower(query)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category != CategoryAll && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}
