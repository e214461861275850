package driving

import (
	"context"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

// DashboardService is the request-handler surface driving adapters call:
// one method per filter change, one per form submission.
type DashboardService interface {
	// Options returns the selector options and the default filter.
	Options(ctx context.Context) (*domain.FilterOptions, domain.Filter, error)

	// Refresh runs every dashboard view for the filter.
	Refresh(ctx context.Context, filter domain.Filter) (*domain.Dashboard, error)

	// Submit inserts a listing from the add-listing form.
	Submit(ctx context.Context, listing domain.FoodListing) (*domain.FoodListing, error)
}
