// Package tui provides the interactive terminal dashboard for foodshare.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dashboard handles filter changes and listing submissions.
	Dashboard driving.DashboardService

	// Query provides individual views and provider IDs.
	Query driving.QueryService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	dashboard driving.DashboardService,
	query driving.QueryService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Dashboard: dashboard,
		Query:     query,
		Settings:  settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Dashboard == nil {
		return ErrMissingDashboardService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
