package domain

// View names one read statement in the query catalogue.
type View string

// Catalogue views.
const (
	// ViewTotalQuantity sums Quantity over all listings. No parameters.
	ViewTotalQuantity View = "total_quantity"

	// ViewProviderContacts lists provider contacts for a city. Params: city.
	ViewProviderContacts View = "provider_contacts"

	// ViewFilteredListings lists listings for a food type and city, optionally
	// narrowed to one provider. Params: food type, city[, provider].
	ViewFilteredListings View = "filtered_listings"

	// ViewClaimsDistribution counts claims per status. No parameters.
	ViewClaimsDistribution View = "claims_distribution"

	// ViewReceiversByCity lists receivers for a city. Params: city.
	ViewReceiversByCity View = "receivers_by_city"
)

// AllViews returns the catalogue in dashboard order.
func AllViews() []View {
	return []View{
		ViewTotalQuantity,
		ViewProviderContacts,
		ViewFilteredListings,
		ViewClaimsDistribution,
		ViewReceiversByCity,
	}
}

// ParseView converts a view name to a View.
func ParseView(name string) (View, error) {
	v := View(name)
	if !v.IsValid() {
		return "", ErrUnknownView
	}
	return v, nil
}

// IsValid returns true if the view is in the catalogue.
func (v View) IsValid() bool {
	switch v {
	case ViewTotalQuantity, ViewProviderContacts, ViewFilteredListings,
		ViewClaimsDistribution, ViewReceiversByCity:
		return true
	default:
		return false
	}
}

// Title returns the dashboard heading for the view.
func (v View) Title() string {
	switch v {
	case ViewTotalQuantity:
		return "Total Quantity of Food Available"
	case ViewProviderContacts:
		return "Contact Providers in Selected City"
	case ViewFilteredListings:
		return "Food Listings (Filtered)"
	case ViewClaimsDistribution:
		return "Claims Distribution"
	case ViewReceiversByCity:
		return "Receivers in Selected City"
	default:
		return unknownDescription
	}
}

// String returns the view name.
func (v View) String() string {
	return string(v)
}
