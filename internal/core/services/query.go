package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driven"
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
	"github.com/custodia-labs/foodshare/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService runs the dashboard's read views against a QueryStore.
type QueryService struct {
	store driven.QueryStore
}

// NewQueryService creates a new query service.
func NewQueryService(store driven.QueryStore) *QueryService {
	return &QueryService{store: store}
}

// FilterOptions returns the distinct values for every filter selector.
func (s *QueryService) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	cities, err := s.Distinct(ctx, domain.FieldCity)
	if err != nil {
		return nil, err
	}
	providers, err := s.Distinct(ctx, domain.FieldProvider)
	if err != nil {
		return nil, err
	}
	foodTypes, err := s.Distinct(ctx, domain.FieldFoodType)
	if err != nil {
		return nil, err
	}

	return &domain.FilterOptions{
		Cities:    cities,
		Providers: providers,
		FoodTypes: foodTypes,
	}, nil
}

// Distinct returns the distinct values for one filter selector.
func (s *QueryService) Distinct(ctx context.Context, field domain.FilterField) ([]string, error) {
	if !field.IsValid() {
		return nil, fmt.Errorf("%w: filter field %q", domain.ErrInvalidInput, field)
	}
	values, err := s.store.Distinct(ctx, field)
	if err != nil {
		return nil, storeError("distinct "+string(field), err)
	}
	logger.Debug("%s options: %d", field, len(values))
	return values, nil
}

// TotalQuantity returns the one-row total quantity table.
func (s *QueryService) TotalQuantity(ctx context.Context) (*domain.Table, error) {
	return s.query(ctx, domain.ViewTotalQuantity)
}

// ProviderContacts returns provider names and contacts in a city.
func (s *QueryService) ProviderContacts(ctx context.Context, city string) (*domain.Table, error) {
	return s.query(ctx, domain.ViewProviderContacts, city)
}

// FilteredListings returns listings matching the filter. The provider
// narrows the result only when one is selected.
func (s *QueryService) FilteredListings(ctx context.Context, filter domain.Filter) (*domain.Table, error) {
	if filter.Provider != "" {
		return s.query(ctx, domain.ViewFilteredListings, filter.FoodType, filter.City, filter.Provider)
	}
	return s.query(ctx, domain.ViewFilteredListings, filter.FoodType, filter.City)
}

// ClaimsDistribution returns one row per claim status with its count.
func (s *QueryService) ClaimsDistribution(ctx context.Context) (*domain.Table, error) {
	return s.query(ctx, domain.ViewClaimsDistribution)
}

// ReceiversByCity returns receivers in a city.
func (s *QueryService) ReceiversByCity(ctx context.Context, city string) (*domain.Table, error) {
	return s.query(ctx, domain.ViewReceiversByCity, city)
}

// View runs one catalogue view, taking its parameters from the filter.
func (s *QueryService) View(ctx context.Context, view domain.View, filter domain.Filter) (*domain.Table, error) {
	switch view {
	case domain.ViewTotalQuantity:
		return s.TotalQuantity(ctx)
	case domain.ViewProviderContacts:
		return s.ProviderContacts(ctx, filter.City)
	case domain.ViewFilteredListings:
		return s.FilteredListings(ctx, filter)
	case domain.ViewClaimsDistribution:
		return s.ClaimsDistribution(ctx)
	case domain.ViewReceiversByCity:
		return s.ReceiversByCity(ctx, filter.City)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownView, view)
	}
}

// ProviderIDs returns every known provider ID.
func (s *QueryService) ProviderIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.store.ProviderIDs(ctx)
	if err != nil {
		return nil, storeError("provider ids", err)
	}
	return ids, nil
}

func (s *QueryService) query(ctx context.Context, view domain.View, args ...any) (*domain.Table, error) {
	start := time.Now()
	table, err := s.store.Query(ctx, view, args...)
	if err != nil {
		return nil, storeError("query "+string(view), err)
	}
	logger.Query(string(view), args, len(table.Rows), time.Since(start))
	return table, nil
}

// storeError wraps a store failure as *domain.StoreError unless it already
// is one or is a caller error.
func storeError(op string, err error) error {
	var se *domain.StoreError
	if errors.As(err, &se) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrUnknownView) {
		return err
	}
	return &domain.StoreError{Op: op, Err: err}
}
