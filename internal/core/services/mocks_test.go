package services

import (
	"context"

	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driven"
)

// failingQueryStore implements driven.QueryStore and fails every call.
type failingQueryStore struct {
	err   error
	calls int
}

var _ driven.QueryStore = (*failingQueryStore)(nil)

func (m *failingQueryStore) Distinct(_ context.Context, _ domain.FilterField) ([]string, error) {
	m.calls++
	return nil, m.err
}

func (m *failingQueryStore) Query(_ context.Context, _ domain.View, _ ...any) (*domain.Table, error) {
	m.calls++
	return nil, m.err
}

func (m *failingQueryStore) ProviderIDs(_ context.Context) ([]int64, error) {
	m.calls++
	return nil, m.err
}

// recordingQueryStore implements driven.QueryStore and records each view call.
type recordingQueryStore struct {
	views []domain.View
	args  [][]any
}

var _ driven.QueryStore = (*recordingQueryStore)(nil)

func (m *recordingQueryStore) Distinct(_ context.Context, _ domain.FilterField) ([]string, error) {
	return []string{}, nil
}

func (m *recordingQueryStore) Query(_ context.Context, view domain.View, args ...any) (*domain.Table, error) {
	m.views = append(m.views, view)
	m.args = append(m.args, args)
	if view == domain.ViewTotalQuantity {
		t := domain.NewTable("Total_Quantity")
		t.Rows = append(t.Rows, []any{int64(0)})
		return t, nil
	}
	return domain.NewTable(), nil
}

func (m *recordingQueryStore) ProviderIDs(_ context.Context) ([]int64, error) {
	return []int64{}, nil
}

// failingListingStore implements driven.ListingStore and fails every insert.
type failingListingStore struct {
	err   error
	calls int
}

var _ driven.ListingStore = (*failingListingStore)(nil)

func (m *failingListingStore) Insert(_ context.Context, _ domain.FoodListing) (int64, error) {
	m.calls++
	return 0, m.err
}
