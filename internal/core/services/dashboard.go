package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
	"github.com/custodia-labs/foodshare/internal/logger"
)

// Ensure DashboardService implements the interface.
var _ driving.DashboardService = (*DashboardService)(nil)

// DashboardService is the single handler for filter changes and form
// submissions. Every driving adapter goes through it.
type DashboardService struct {
	queries  driving.QueryService
	listings driving.ListingService
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(queries driving.QueryService, listings driving.ListingService) *DashboardService {
	return &DashboardService{
		queries:  queries,
		listings: listings,
	}
}

// Options returns the selector options and the filter the dashboard opens with.
func (s *DashboardService) Options(ctx context.Context) (*domain.FilterOptions, domain.Filter, error) {
	opts, err := s.queries.FilterOptions(ctx)
	if err != nil {
		return nil, domain.Filter{}, fmt.Errorf("loading filter options: %w", err)
	}
	return opts, opts.DefaultFilter(), nil
}

// Refresh issues the five view queries for the filter.
func (s *DashboardService) Refresh(ctx context.Context, filter domain.Filter) (*domain.Dashboard, error) {
	logger.Section("Dashboard")
	logger.Debug("filter: city=%q provider=%q food_type=%q", filter.City, filter.Provider, filter.FoodType)

	d := &domain.Dashboard{Filter: filter}

	var err error
	if d.TotalQuantityTable, err = s.queries.TotalQuantity(ctx); err != nil {
		return nil, err
	}
	if len(d.TotalQuantityTable.Rows) > 0 && len(d.TotalQuantityTable.Rows[0]) > 0 {
		d.TotalQuantity, _ = domain.Int64(d.TotalQuantityTable.Rows[0][0])
	}
	if d.ProviderContacts, err = s.queries.ProviderContacts(ctx, filter.City); err != nil {
		return nil, err
	}
	if d.FilteredListings, err = s.queries.FilteredListings(ctx, filter); err != nil {
		return nil, err
	}
	if d.ClaimsDistribution, err = s.queries.ClaimsDistribution(ctx); err != nil {
		return nil, err
	}
	if d.Receivers, err = s.queries.ReceiversByCity(ctx, filter.City); err != nil {
		return nil, err
	}

	logger.Debug("dashboard: total=%d contacts=%d listings=%d statuses=%d receivers=%d",
		d.TotalQuantity, d.ProviderContacts.Len(), d.FilteredListings.Len(),
		d.ClaimsDistribution.Len(), d.Receivers.Len())
	return d, nil
}

// Submit inserts a listing from the add-listing form.
func (s *DashboardService) Submit(ctx context.Context, listing domain.FoodListing) (*domain.FoodListing, error) {
	return s.listings.Add(ctx, listing)
}
