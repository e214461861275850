package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodshare/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/services"
)

// newTestStore seeds two providers in two cities with one listing each.
func newTestStore(t *testing.T) *memory.FoodStore {
	t.Helper()
	store := memory.NewFoodStore()
	store.AddProvider(domain.Provider{ID: 1, Name: "Acme Foods", City: "Springfield", Contact: "555-0100"})
	store.AddProvider(domain.Provider{ID: 2, Name: "Kwik Mart", City: "Shelbyville", Contact: "555-0200"})
	store.AddReceiver(domain.Receiver{ID: 1, Name: "Food Bank", Type: "NGO", City: "Springfield", Contact: "555-0300"})
	store.AddClaim(domain.Claim{ID: 1, FoodID: 1, ReceiverID: 1, Status: domain.ClaimCompleted})

	expiry := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, l := range []domain.FoodListing{
		{FoodName: "Rice", Quantity: 5, ExpiryDate: expiry, ProviderID: 1, ProviderName: "Acme Foods",
			ProviderLocation: "Springfield", FoodType: "Vegan", MealType: "Dinner"},
		{FoodName: "Bread", Quantity: 3, ExpiryDate: expiry, ProviderID: 2, ProviderName: "Kwik Mart",
			ProviderLocation: "Shelbyville", FoodType: "Vegetarian", MealType: "Breakfast"},
	} {
		_, err := store.Insert(t.Context(), l)
		require.NoError(t, err)
	}
	return store
}

func newTestPorts(t *testing.T) *Ports {
	t.Helper()
	store := newTestStore(t)
	queries := services.NewQueryService(store)
	listings := services.NewListingService(store)
	return NewPorts(
		services.NewDashboardService(queries, listings),
		queries,
		services.NewSettingsService(memory.NewConfigStore()),
	)
}

func TestNewPorts(t *testing.T) {
	ports := newTestPorts(t)

	assert.NotNil(t, ports.Dashboard)
	assert.NotNil(t, ports.Query)
	assert.NotNil(t, ports.Settings)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	full := newTestPorts(t)

	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing dashboard", &Ports{Query: full.Query}, ErrMissingDashboardService},
		{"missing query", &Ports{Dashboard: full.Dashboard}, ErrMissingQueryService},
		{"settings optional", &Ports{Dashboard: full.Dashboard, Query: full.Query}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
