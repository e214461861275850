package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driven"
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
	"github.com/custodia-labs/foodshare/internal/logger"
)

// Ensure ListingService implements the interface.
var _ driving.ListingService = (*ListingService)(nil)

// ListingService validates and writes new food listings.
type ListingService struct {
	store driven.ListingStore
}

// NewListingService creates a new listing service.
func NewListingService(store driven.ListingStore) *ListingService {
	return &ListingService{store: store}
}

// Add validates the listing and inserts it as one row.
func (s *ListingService) Add(ctx context.Context, listing domain.FoodListing) (*domain.FoodListing, error) {
	if err := listing.Validate(); err != nil {
		return nil, err
	}

	id, err := s.store.Insert(ctx, listing)
	if err != nil {
		var we *domain.WriteError
		if errors.As(err, &we) {
			return nil, err
		}
		return nil, &domain.WriteError{Err: err}
	}

	listing.ID = id
	logger.Debug("inserted listing %d (%s, qty %d, %s)",
		id, listing.FoodName, listing.Quantity, listing.ProviderLocation)
	return &listing, nil
}
