package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodshare/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
	"github.com/custodia-labs/foodshare/internal/core/services"
)

func newTestPorts(t *testing.T) (*Ports, *memory.FoodStore) {
	t.Helper()
	store := memory.NewFoodStore()
	store.AddProvider(domain.Provider{ID: 1, Name: "Acme Foods", City: "Springfield", Contact: "555-0100"})
	store.AddProvider(domain.Provider{ID: 2, Name: "Kwik Mart", City: "Shelbyville", Contact: "555-0200"})
	store.AddReceiver(domain.Receiver{ID: 1, Name: "Food Bank", Type: "NGO", City: "Springfield", Contact: "555-0300"})
	store.AddClaim(domain.Claim{ID: 1, FoodID: 1, ReceiverID: 1, Status: domain.ClaimPending})

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

	queries := services.NewQueryService(store)
	return &Ports{
		Dashboard: services.NewDashboardService(queries, services.NewListingService(store)),
		Query:     queries,
	}, store
}

func newTestServer(t *testing.T, opts Options) (*Server, *memory.FoodStore) {
	t.Helper()
	ports, store := newTestPorts(t)
	server, err := NewServer(ports, opts)
	require.NoError(t, err)
	return server, store
}

// envelope decodes the response with Data left raw for the caller.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestNewServer_Validate(t *testing.T) {
	_, err := NewServer(nil, Options{})
	assert.ErrorIs(t, err, ErrMissingDashboardService)

	ports, _ := newTestPorts(t)
	_, err = NewServer(&Ports{Dashboard: ports.Dashboard}, Options{})
	assert.ErrorIs(t, err, ErrMissingQueryService)
}

func TestHealthz(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	rec, env := do(t, server.Handler(), http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", env.Status)
}

func TestOptions(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	rec, env := do(t, server.Handler(), http.MethodGet, "/api/v1/options", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)

	var data optionsResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []string{"Springfield", "Shelbyville"}, data.Options.Cities)
	assert.Equal(t, domain.Filter{City: "Springfield", FoodType: "Vegan"}, data.DefaultFilter)
}

func TestDashboard(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	t.Run("explicit filter", func(t *testing.T) {
		rec, env := do(t, server.Handler(), http.MethodGet,
			"/api/v1/dashboard?city=Shelbyville&food_type=Vegetarian", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var d domain.Dashboard
		require.NoError(t, json.Unmarshal(env.Data, &d))
		assert.Equal(t, int64(8), d.TotalQuantity)
		assert.Equal(t, "Shelbyville", d.Filter.City)
		require.Len(t, d.FilteredListings.Rows, 1)
		assert.Equal(t, "Bread", d.FilteredListings.Rows[0][0])
		require.Len(t, d.ProviderContacts.Rows, 1)
		assert.Equal(t, "555-0200", d.ProviderContacts.Rows[0][1])
	})

	t.Run("defaults", func(t *testing.T) {
		rec, env := do(t, server.Handler(), http.MethodGet, "/api/v1/dashboard", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var d domain.Dashboard
		require.NoError(t, json.Unmarshal(env.Data, &d))
		assert.Equal(t, domain.Filter{City: "Springfield", FoodType: "Vegan"}, d.Filter)
		assert.Len(t, d.Receivers.Rows, 1)
	})

	t.Run("no match is an empty table", func(t *testing.T) {
		rec, env := do(t, server.Handler(), http.MethodGet,
			"/api/v1/dashboard?city=Ogdenville&food_type=Vegan", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var d domain.Dashboard
		require.NoError(t, json.Unmarshal(env.Data, &d))
		assert.Empty(t, d.FilteredListings.Rows)
		assert.NotEmpty(t, d.FilteredListings.Columns)
	})
}

func TestView(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	t.Run("provider contacts", func(t *testing.T) {
		rec, env := do(t, server.Handler(), http.MethodGet,
			"/api/v1/views/provider_contacts?city=Springfield", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var data struct {
			View  string        `json:"view"`
			Table *domain.Table `json:"table"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "provider_contacts", data.View)
		assert.Equal(t, []string{"Provider_Name", "Contact"}, data.Table.Columns)
		require.Len(t, data.Table.Rows, 1)
		assert.Equal(t, []any{"Acme Foods", "555-0100"}, data.Table.Rows[0])
	})

	t.Run("unknown view", func(t *testing.T) {
		rec, env := do(t, server.Handler(), http.MethodGet, "/api/v1/views/drop_table", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "error", env.Status)
	})
}

func TestProviderIDs(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	rec, env := do(t, server.Handler(), http.MethodGet, "/api/v1/providers/ids", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		ProviderIDs []int64 `json:"provider_ids"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []int64{1, 2}, data.ProviderIDs)
}

func TestAddListing(t *testing.T) {
	valid := listingRequest{
		FoodName:         "Soup",
		Quantity:         4,
		ExpiryDate:       "2026-04-01",
		ProviderID:       1,
		ProviderName:     "Acme Foods",
		ProviderLocation: "Springfield",
		FoodType:         "Vegan",
		MealType:         "Lunch",
	}

	t.Run("created and visible in the filtered view", func(t *testing.T) {
		server, _ := newTestServer(t, Options{})

		rec, env := do(t, server.Handler(), http.MethodPost, "/api/v1/listings", valid)

		require.Equal(t, http.StatusCreated, rec.Code)
		var added listingResponse
		require.NoError(t, json.Unmarshal(env.Data, &added))
		assert.Equal(t, int64(3), added.FoodID)
		assert.Equal(t, "2026-04-01", added.ExpiryDate)

		_, env = do(t, server.Handler(), http.MethodGet,
			"/api/v1/views/filtered_listings?city=Springfield&food_type=Vegan", nil)
		var data struct {
			Table *domain.Table `json:"table"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		count := 0
		for _, row := range data.Table.Rows {
			if row[0] == "Soup" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	tests := []struct {
		name   string
		mutate func(*listingRequest)
	}{
		{"zero quantity", func(r *listingRequest) { r.Quantity = 0 }},
		{"negative quantity", func(r *listingRequest) { r.Quantity = -2 }},
		{"bad date", func(r *listingRequest) { r.ExpiryDate = "April 1st" }},
		{"unknown provider", func(r *listingRequest) { r.ProviderID = 42 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, store := newTestServer(t, Options{})
			req := valid
			tt.mutate(&req)

			rec, env := do(t, server.Handler(), http.MethodPost, "/api/v1/listings", req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "error", env.Status)
			assert.NotEmpty(t, env.Error)
			assert.Len(t, store.Listings(), 2)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		server, _ := newTestServer(t, Options{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// brokenDashboard fails every call with a store error.
type brokenDashboard struct {
	driving.DashboardService
}

func (brokenDashboard) Options(context.Context) (*domain.FilterOptions, domain.Filter, error) {
	return nil, domain.Filter{}, &domain.StoreError{Op: "distinct city", Err: errors.New("database is locked")}
}

func TestStoreErrorsMapTo503(t *testing.T) {
	ports, _ := newTestPorts(t)
	server, err := NewServer(&Ports{Dashboard: brokenDashboard{}, Query: ports.Query}, Options{})
	require.NoError(t, err)

	rec, env := do(t, server.Handler(), http.MethodGet, "/api/v1/options", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, env.Error, "database is locked")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(&domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}))
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrUnknownView))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(&domain.StoreError{Op: "x", Err: errors.New("y")}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(&domain.WriteError{Err: errors.New("disk full")}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestCORS(t *testing.T) {
	server, _ := newTestServer(t, Options{AllowedOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/options", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/options", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMount(t *testing.T) {
	mounted := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	server, _ := newTestServer(t, Options{Mount: map[string]http.Handler{"/mcp": mounted}})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
