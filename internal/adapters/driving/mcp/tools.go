package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

// FilterOptionsInput is the input schema for the filter_options tool.
type FilterOptionsInput struct{}

// FilterOptionsOutput is the output schema for the filter_options tool.
type FilterOptionsOutput struct {
	Cities        []string    `json:"cities"`
	Providers     []string    `json:"providers"`
	FoodTypes     []string    `json:"food_types"`
	DefaultFilter FilterInput `json:"default_filter"`
}

// FilterInput is the input schema for the dashboard tool.
type FilterInput struct {
	City     string `json:"city,omitempty" jsonschema:"city to filter by (defaults to the first known city)"`
	Provider string `json:"provider,omitempty" jsonschema:"provider name to narrow listings to (empty for any provider)"`
	FoodType string `json:"food_type,omitempty" jsonschema:"food type to filter by (defaults to the first known type)"`
}

// DashboardOutput is the output schema for the dashboard tool.
type DashboardOutput struct {
	Filter             FilterInput      `json:"filter"`
	TotalQuantity      int64            `json:"total_quantity"`
	ProviderContacts   []map[string]any `json:"provider_contacts"`
	FilteredListings   []map[string]any `json:"filtered_listings"`
	ClaimsDistribution []map[string]any `json:"claims_distribution"`
	Receivers          []map[string]any `json:"receivers"`
}

// AddListingInput is the input schema for the add_listing tool.
type AddListingInput struct {
	FoodName         string `json:"food_name" jsonschema:"name of the food item"`
	Quantity         int    `json:"quantity" jsonschema:"number of units, at least 1"`
	ExpiryDate       string `json:"expiry_date" jsonschema:"expiry date as YYYY-MM-DD"`
	ProviderID       int64  `json:"provider_id" jsonschema:"ID of a known provider"`
	ProviderName     string `json:"provider_name,omitempty" jsonschema:"provider display name"`
	ProviderLocation string `json:"provider_location" jsonschema:"city the food is available in"`
	FoodType         string `json:"food_type" jsonschema:"food category, e.g. Vegetarian"`
	MealType         string `json:"meal_type,omitempty" jsonschema:"meal the food suits, e.g. Dinner"`
}

// AddListingOutput is the output schema for the add_listing tool.
type AddListingOutput struct {
	FoodID     int64  `json:"food_id"`
	FoodName   string `json:"food_name"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "filter_options",
		Description: "List the cities, providers and food types the dashboard can filter by",
	}, s.handleFilterOptions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "dashboard",
		Description: "Run every dashboard view for a city, food type and optional provider",
	}, s.handleDashboard)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_listing",
		Description: "Add a food listing offered for donation",
	}, s.handleAddListing)
}

// handleFilterOptions handles the filter_options tool invocation.
func (s *Server) handleFilterOptions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ FilterOptionsInput,
) (*mcp.CallToolResult, FilterOptionsOutput, error) {
	opts, def, err := s.ports.Dashboard.Options(ctx)
	if err != nil {
		return nil, FilterOptionsOutput{}, err
	}
	return nil, FilterOptionsOutput{
		Cities:        opts.Cities,
		Providers:     opts.Providers,
		FoodTypes:     opts.FoodTypes,
		DefaultFilter: toFilterInput(def),
	}, nil
}

// handleDashboard handles the dashboard tool invocation.
// Missing city or food type fall back to the dashboard defaults.
func (s *Server) handleDashboard(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FilterInput,
) (*mcp.CallToolResult, DashboardOutput, error) {
	filter := domain.Filter{City: input.City, Provider: input.Provider, FoodType: input.FoodType}
	if filter.City == "" || filter.FoodType == "" {
		_, def, err := s.ports.Dashboard.Options(ctx)
		if err != nil {
			return nil, DashboardOutput{}, err
		}
		if filter.City == "" {
			filter.City = def.City
		}
		if filter.FoodType == "" {
			filter.FoodType = def.FoodType
		}
	}

	d, err := s.ports.Dashboard.Refresh(ctx, filter)
	if err != nil {
		return nil, DashboardOutput{}, err
	}

	return nil, DashboardOutput{
		Filter:             toFilterInput(d.Filter),
		TotalQuantity:      d.TotalQuantity,
		ProviderContacts:   d.ProviderContacts.Records(),
		FilteredListings:   d.FilteredListings.Records(),
		ClaimsDistribution: d.ClaimsDistribution.Records(),
		Receivers:          d.Receivers.Records(),
	}, nil
}

// handleAddListing handles the add_listing tool invocation.
func (s *Server) handleAddListing(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddListingInput,
) (*mcp.CallToolResult, AddListingOutput, error) {
	expiry, err := domain.ParseExpiryDate(input.ExpiryDate)
	if err != nil {
		return nil, AddListingOutput{}, err
	}

	listing := domain.FoodListing{
		FoodName:         input.FoodName,
		Quantity:         input.Quantity,
		ExpiryDate:       expiry,
		ProviderID:       input.ProviderID,
		ProviderName:     input.ProviderName,
		ProviderLocation: input.ProviderLocation,
		FoodType:         input.FoodType,
		MealType:         input.MealType,
	}
	known, err := s.ports.Query.ProviderIDs(ctx)
	if err != nil {
		return nil, AddListingOutput{}, err
	}
	if err := listing.CheckProvider(known); err != nil {
		return nil, AddListingOutput{}, err
	}

	added, err := s.ports.Dashboard.Submit(ctx, listing)
	if err != nil {
		return nil, AddListingOutput{}, err
	}

	return nil, AddListingOutput{
		FoodID:     added.ID,
		FoodName:   added.FoodName,
		Quantity:   added.Quantity,
		ExpiryDate: added.ExpiryString(),
	}, nil
}

func toFilterInput(f domain.Filter) FilterInput {
	return FilterInput{City: f.City, Provider: f.Provider, FoodType: f.FoodType}
}
