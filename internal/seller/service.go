package seller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"markethub/internal/catalog"
	"markethub/internal/logger"
	"markethub/internal/money"

	"go.uber.org/zap"
)

// Service manages the session-scoped listing collection. Listing ids are
// derived from the wall clock, bumped when two creations land in the same
// millisecond.
type Service struct {
	listings []Listing
	lastID   int64
}

func NewService() *Service {
	return &Service{listings: []Listing{}}
}

// Add validates and appends a new listing.
func (s *Service) Add(ctx context.Context, form ListingForm) (Listing, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddListing"),
	)

	if strings.TrimSpace(form.Name) == "" {
		return Listing{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(form.Price) == "" {
		return Listing{}, fmt.Errorf("%w: price is required", ErrValidation)
	}

	price, err := money.Parse(form.Price)
	if err != nil {
		log.Warn("listing rejected", zap.String("price", form.Price), zap.Error(err))
		return Listing{}, fmt.Errorf("%w: %q", ErrInvalidPrice, form.Price)
	}

	category, err := catalog.ParseCategory(form.Category)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	image := form.Image
	if image == "" {
		image = DefaultImage
	}

	listing := Listing{
		ID:           s.nextID(),
		Name:         form.Name,
		PriceKopecks: price,
		Category:     category,
		Description:  form.Description,
		Image:        image,
	}
	s.listings = append(s.listings, listing)

	log.Info("listing added",
		zap.Int64("listing_id", listing.ID),
		zap.String("category", string(listing.Category)),
	)
	return listing, nil
}

// Delete removes the listing by id. Deleting an absent id is a no-op, and
// there is deliberately no confirmation step.
func (s *Service) Delete(ctx context.Context, id int64) {
	for i := range s.listings {
		if s.listings[i].ID == id {
			s.listings = append(s.listings[:i], s.listings[i+1:]...)
			logger.FromCtx(ctx).Info("listing deleted", zap.Int64("listing_id", id))
			return
		}
	}
}

// List copies out the listings in creation order.
func (s *Service) List() []Listing {
	return append([]Listing(nil), s.listings...)
}

func (s *Service) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
