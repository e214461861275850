package driven

import (
	"context"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

// ListingStore persists new food listings.
type ListingStore interface {
	// Insert writes one listing and commits before returning.
	// On failure nothing is written. Returns the store-assigned row ID.
	Insert(ctx context.Context, listing domain.FoodListing) (int64, error)
}
