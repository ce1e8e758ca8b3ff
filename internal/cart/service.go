package cart

import (
	"context"

	"markethub/internal/catalog"
	"markethub/internal/logger"
	"markethub/internal/session"

	"go.uber.org/zap"
)

// SessionChecker is the slice of the session manager the cart needs: cart
// mutation is gated on an active session.
type SessionChecker interface {
	Current() (session.Session, bool)
}

// Service is the per-session cart. It lives in memory only and is cleared
// wholesale on logout.
type Service struct {
	sessions SessionChecker
	items    []Item
}

func NewService(sessions SessionChecker) *Service {
	return &Service{sessions: sessions, items: []Item{}}
}

// Add puts the product in the cart, aggregating by product id: a repeated
// add bumps the quantity instead of duplicating the line. There is no
// upper quantity bound.
func (s *Service) Add(ctx context.Context, product catalog.Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.Int64("product_id", product.ID),
	)

	if _, ok := s.sessions.Current(); !ok {
		log.Warn("add to cart rejected", zap.Error(ErrNotAuthenticated))
		return ErrNotAuthenticated
	}

	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity++
			log.Debug("quantity incremented", zap.Int("quantity", s.items[i].Quantity))
			return nil
		}
	}

	s.items = append(s.items, Item{Product: product, Quantity: 1})
	log.Debug("item added")
	return nil
}

// Remove drops the whole line for the product id. Removing an absent id is
// a no-op, so the operation is idempotent.
func (s *Service) Remove(ctx context.Context, productID int64) {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			logger.FromCtx(ctx).Debug("item removed", zap.Int64("product_id", productID))
			return
		}
	}
}

// Items copies out the cart lines in insertion order.
func (s *Service) Items() []Item {
	return append([]Item(nil), s.items...)
}

// TotalKopecks is the exact sum of price times quantity over all lines.
func (s *Service) TotalKopecks() int64 {
	var total int64
	for _, item := range s.items {
		total += item.Product.PriceKopecks * int64(item.Quantity)
	}
	return total
}

// Clear empties the cart. Hooked to logout.
func (s *Service) Clear() {
	s.items = []Item{}
}
