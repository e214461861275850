package driving

import (
	"context"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

// ListingService writes new food listings.
type ListingService interface {
	// Add validates and inserts one listing, returning it with its assigned ID.
	// Returns *domain.ValidationError before touching the store when a field
	// is rejected, and *domain.WriteError when the insert fails.
	// Not idempotent: submitting the same listing twice creates two rows.
	Add(ctx context.Context, listing domain.FoodListing) (*domain.FoodListing, error)
}
