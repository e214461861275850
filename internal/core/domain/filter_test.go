package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterField_IsValid(t *testing.T) {
	for _, f := range AllFilterFields() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, FilterField("Provider_Location; DROP TABLE claims").IsValid())
	assert.False(t, FilterField("").IsValid())
}

func TestFilterField_Column(t *testing.T) {
	tests := []struct {
		field  FilterField
		table  string
		column string
	}{
		{FieldCity, "food_listings", "Provider_Location"},
		{FieldProvider, "providers", "Provider_Name"},
		{FieldFoodType, "food_listings", "Food_Type"},
		{FilterField("bogus"), "", ""},
	}

	for _, tt := range tests {
		table, column := tt.field.Column()
		assert.Equal(t, tt.table, table)
		assert.Equal(t, tt.column, column)
	}
}

func TestFilterField_Label(t *testing.T) {
	assert.Equal(t, "City", FieldCity.Label())
	assert.Equal(t, "Provider", FieldProvider.Label())
	assert.Equal(t, "Food Type", FieldFoodType.Label())
	assert.Equal(t, "Unknown", FilterField("x").Label())
}

func TestFilter_GetWith(t *testing.T) {
	f := Filter{}.
		With(FieldCity, "Springfield").
		With(FieldProvider, "Acme Foods").
		With(FieldFoodType, "Vegan")

	assert.Equal(t, "Springfield", f.Get(FieldCity))
	assert.Equal(t, "Acme Foods", f.Get(FieldProvider))
	assert.Equal(t, "Vegan", f.Get(FieldFoodType))
	assert.Equal(t, "", f.Get(FilterField("x")))

	// With returns a copy
	g := f.With(FieldCity, "Shelbyville")
	assert.Equal(t, "Springfield", f.City)
	assert.Equal(t, "Shelbyville", g.City)
}

func TestFilterOptions_DefaultFilter(t *testing.T) {
	opts := &FilterOptions{
		Cities:    []string{"Springfield", "Shelbyville"},
		Providers: []string{"Acme Foods"},
		FoodTypes: []string{"Vegan", "Vegetarian"},
	}

	f := opts.DefaultFilter()

	assert.Equal(t, "Springfield", f.City)
	assert.Equal(t, "", f.Provider)
	assert.Equal(t, "Vegan", f.FoodType)
	assert.Equal(t, opts.Cities, opts.Values(FieldCity))
	assert.Equal(t, opts.Providers, opts.Values(FieldProvider))
	assert.Equal(t, opts.FoodTypes, opts.Values(FieldFoodType))

	empty := &FilterOptions{}
	assert.Equal(t, Filter{}, empty.DefaultFilter())
}
