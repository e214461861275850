package mcp

import (
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dashboard handles filter changes and listing submissions.
	Dashboard driving.DashboardService

	// Query provides individual views for resources.
	Query driving.QueryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Dashboard == nil {
		return ErrMissingDashboardService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
