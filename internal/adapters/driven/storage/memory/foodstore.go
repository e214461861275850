package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driven"
)

// Ensure FoodStore implements the interfaces.
var (
	_ driven.QueryStore   = (*FoodStore)(nil)
	_ driven.ListingStore = (*FoodStore)(nil)
)

// FoodStore is an in-memory implementation of driven.QueryStore and
// driven.ListingStore. Rows are kept in insertion order.
type FoodStore struct {
	mu        sync.RWMutex
	listings  []domain.FoodListing
	providers []domain.Provider
	receivers []domain.Receiver
	claims    []domain.Claim
	nextID    int64
}

// NewFoodStore creates a new empty in-memory food store.
func NewFoodStore() *FoodStore {
	return &FoodStore{nextID: 1}
}

// AddProvider seeds a provider.
func (s *FoodStore) AddProvider(p domain.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = append(s.providers, p)
}

// AddReceiver seeds a receiver.
func (s *FoodStore) AddReceiver(r domain.Receiver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receivers = append(s.receivers, r)
}

// AddClaim seeds a claim.
func (s *FoodStore) AddClaim(c domain.Claim) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims = append(s.claims, c)
}

// Listings returns a copy of the stored listings.
func (s *FoodStore) Listings() []domain.FoodListing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.FoodListing, len(s.listings))
	copy(result, s.listings)
	return result
}

// Insert stores a listing and assigns it the next ID.
func (s *FoodStore) Insert(ctx context.Context, listing domain.FoodListing) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if listing.Quantity < 1 {
		return 0, fmt.Errorf("inserting listing: quantity %d violates constraint", listing.Quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	listing.ID = s.nextID
	s.nextID++
	s.listings = append(s.listings, listing)
	return listing.ID, nil
}

// Distinct returns the distinct non-empty values of a filter field.
func (s *FoodStore) Distinct(_ context.Context, field domain.FilterField) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var values []string
	switch field {
	case domain.FieldCity:
		for _, l := range s.listings {
			values = append(values, l.ProviderLocation)
		}
	case domain.FieldFoodType:
		for _, l := range s.listings {
			values = append(values, l.FoodType)
		}
	case domain.FieldProvider:
		for _, p := range s.providers {
			values = append(values, p.Name)
		}
	default:
		return nil, fmt.Errorf("%w: filter field %q", domain.ErrInvalidInput, field)
	}
	return unique(values), nil
}

// Query evaluates a catalogue view over the in-memory rows.
func (s *FoodStore) Query(_ context.Context, view domain.View, args ...any) (*domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch view {
	case domain.ViewTotalQuantity:
		if err := wantArgs(view, args, 0); err != nil {
			return nil, err
		}
		var total int64
		for _, l := range s.listings {
			total += int64(l.Quantity)
		}
		t := domain.NewTable("Total_Quantity")
		t.Rows = append(t.Rows, []any{total})
		return t, nil

	case domain.ViewProviderContacts:
		if err := wantArgs(view, args, 1); err != nil {
			return nil, err
		}
		t := domain.NewTable("Provider_Name", "Contact")
		for _, p := range s.providers {
			if p.City == args[0] {
				t.Rows = append(t.Rows, []any{p.Name, p.Contact})
			}
		}
		return t, nil

	case domain.ViewFilteredListings:
		if len(args) != 3 {
			if err := wantArgs(view, args, 2); err != nil {
				return nil, err
			}
		}
		t := domain.NewTable("Food_Name", "Quantity", "Expiry_Date", "Provider_Location", "Food_Type", "Meal_Type")
		for _, l := range s.listings {
			if l.FoodType != args[0] || l.ProviderLocation != args[1] {
				continue
			}
			if len(args) == 3 && l.ProviderName != args[2] {
				continue
			}
			t.Rows = append(t.Rows, []any{
				l.FoodName, int64(l.Quantity), l.ExpiryString(), l.ProviderLocation, l.FoodType, l.MealType,
			})
		}
		return t, nil

	case domain.ViewClaimsDistribution:
		if err := wantArgs(view, args, 0); err != nil {
			return nil, err
		}
		var order []domain.ClaimStatus
		counts := make(map[domain.ClaimStatus]int64)
		for _, c := range s.claims {
			if _, seen := counts[c.Status]; !seen {
				order = append(order, c.Status)
			}
			counts[c.Status]++
		}
		t := domain.NewTable("Claim_Status", "Total_Claims")
		for _, status := range order {
			t.Rows = append(t.Rows, []any{string(status), counts[status]})
		}
		return t, nil

	case domain.ViewReceiversByCity:
		if err := wantArgs(view, args, 1); err != nil {
			return nil, err
		}
		t := domain.NewTable("Name", "Type", "Contact")
		for _, r := range s.receivers {
			if r.City == args[0] {
				t.Rows = append(t.Rows, []any{r.Name, r.Type, r.Contact})
			}
		}
		return t, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownView, view)
	}
}

// ProviderIDs returns every seeded provider ID.
func (s *FoodStore) ProviderIDs(_ context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.providers))
	for _, p := range s.providers {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func wantArgs(view domain.View, args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("view %s: %w: expected %d arguments, got %d",
			view, domain.ErrInvalidInput, n, len(args))
	}
	return nil
}

func unique(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := []string{}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
