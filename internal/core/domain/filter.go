package domain

// FilterField identifies one of the dashboard's filter selectors.
// It is the only way to name a {table, column} pair. Column is the single
// mapping; adapters never build identifiers from input.
type FilterField string

// Filterable fields.
const (
	// FieldCity selects food_listings.Provider_Location.
	FieldCity FilterField = "city"

	// FieldProvider selects providers.Provider_Name.
	FieldProvider FilterField = "provider"

	// FieldFoodType selects food_listings.Food_Type.
	FieldFoodType FilterField = "food_type"
)

// AllFilterFields returns the filter fields in selector order.
func AllFilterFields() []FilterField {
	return []FilterField{FieldCity, FieldProvider, FieldFoodType}
}

// IsValid returns true if the field is in the allow-list.
func (f FilterField) IsValid() bool {
	switch f {
	case FieldCity, FieldProvider, FieldFoodType:
		return true
	default:
		return false
	}
}

// Column returns the {table, column} pair the field reads from.
func (f FilterField) Column() (table, column string) {
	switch f {
	case FieldCity:
		return "food_listings", "Provider_Location"
	case FieldProvider:
		return "providers", "Provider_Name"
	case FieldFoodType:
		return "food_listings", "Food_Type"
	default:
		return "", ""
	}
}

// Label returns the selector caption.
func (f FilterField) Label() string {
	switch f {
	case FieldCity:
		return "City"
	case FieldProvider:
		return "Provider"
	case FieldFoodType:
		return "Food Type"
	default:
		return unknownDescription
	}
}

// Filter holds the current selector values.
// An empty Provider means "any provider".
type Filter struct {
	City     string `json:"city"`
	Provider string `json:"provider"`
	FoodType string `json:"food_type"`
}

// Get returns the value selected for a field.
func (f Filter) Get(field FilterField) string {
	switch field {
	case FieldCity:
		return f.City
	case FieldProvider:
		return f.Provider
	case FieldFoodType:
		return f.FoodType
	default:
		return ""
	}
}

// With returns a copy of the filter with one field changed.
func (f Filter) With(field FilterField, value string) Filter {
	switch field {
	case FieldCity:
		f.City = value
	case FieldProvider:
		f.Provider = value
	case FieldFoodType:
		f.FoodType = value
	}
	return f
}

// FilterOptions holds the distinct values offered by each selector.
type FilterOptions struct {
	Cities    []string `json:"cities"`
	Providers []string `json:"providers"`
	FoodTypes []string `json:"food_types"`
}

// Values returns the options for a field.
func (o *FilterOptions) Values(field FilterField) []string {
	switch field {
	case FieldCity:
		return o.Cities
	case FieldProvider:
		return o.Providers
	case FieldFoodType:
		return o.FoodTypes
	default:
		return nil
	}
}

// DefaultFilter picks the first option of each selector, as the dashboard
// does on first load. Provider defaults to "any".
func (o *FilterOptions) DefaultFilter() Filter {
	var f Filter
	if len(o.Cities) > 0 {
		f.City = o.Cities[0]
	}
	if len(o.FoodTypes) > 0 {
		f.FoodType = o.FoodTypes[0]
	}
	return f
}
