package driving

import (
	"context"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

// QueryService provides the dashboard's read views.
type QueryService interface {
	// FilterOptions returns the distinct values for every filter selector.
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)

	// Distinct returns the distinct values for one filter selector.
	Distinct(ctx context.Context, field domain.FilterField) ([]string, error)

	// TotalQuantity returns a one-row, one-column table with the sum of all quantities.
	TotalQuantity(ctx context.Context) (*domain.Table, error)

	// ProviderContacts returns provider names and contacts in a city.
	ProviderContacts(ctx context.Context, city string) (*domain.Table, error)

	// FilteredListings returns listings matching the filter's food type and city,
	// and its provider when one is selected.
	FilteredListings(ctx context.Context, filter domain.Filter) (*domain.Table, error)

	// ClaimsDistribution returns one row per claim status with its count.
	ClaimsDistribution(ctx context.Context) (*domain.Table, error)

	// ReceiversByCity returns receivers in a city.
	ReceiversByCity(ctx context.Context, city string) (*domain.Table, error)

	// View runs one catalogue view for the filter.
	View(ctx context.Context, view domain.View, filter domain.Filter) (*domain.Table, error)

	// ProviderIDs returns every known provider ID, for the listing form.
	ProviderIDs(ctx context.Context) ([]int64, error)
}
