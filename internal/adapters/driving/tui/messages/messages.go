// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/foodshare/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDashboard shows the filter selectors and result tables.
	ViewDashboard
	// ViewAddListing is the add-listing form.
	ViewAddListing
	// ViewSettings shows the application settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDashboard:
		return "dashboard"
	case ViewAddListing:
		return "add_listing"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// OptionsLoaded carries the selector options and the initial filter.
type OptionsLoaded struct {
	Options *domain.FilterOptions
	Filter  domain.Filter
	Err     error
}

// FilterChanged is sent when a selector value changes.
type FilterChanged struct {
	Filter domain.Filter
}

// DashboardLoaded carries the views for one filter.
type DashboardLoaded struct {
	Dashboard *domain.Dashboard
	Err       error
}

// ProviderIDsLoaded carries the provider IDs offered by the listing form.
type ProviderIDsLoaded struct {
	IDs []int64
	Err error
}

// ListingSubmitted signals the add-listing form was submitted.
type ListingSubmitted struct {
	Listing *domain.FoodListing
	Err     error
}

// DatabaseChanged signals another process wrote to the database.
type DatabaseChanged struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals a setting was saved.
type SettingsSaved struct {
	Key string
	Err error
}
