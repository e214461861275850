// Package httpapi serves the foodshare dashboard as a JSON API over gin.
// Each route is one request handler: a filter change maps to a dashboard
// refresh and a form submission maps to a listing insert.
package httpapi

import (
	"errors"

	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
)

// Errors returned by Ports.Validate.
var (
	ErrMissingDashboardService = errors.New("httpapi: dashboard service is required")
	ErrMissingQueryService     = errors.New("httpapi: query service is required")
)

// Ports holds the driving ports used by the HTTP handlers.
type Ports struct {
	Dashboard driving.DashboardService
	Query     driving.QueryService
}

// Validate checks that the required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Dashboard == nil {
		return ErrMissingDashboardService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
