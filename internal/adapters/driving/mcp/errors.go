// Package mcp provides an MCP (Model Context Protocol) server adapter for foodshare.
// It lets AI assistants read the dashboard views and add food listings.
package mcp

import "errors"

// ErrMissingDashboardService is returned when the dashboard service is not provided.
var ErrMissingDashboardService = errors.New("mcp: dashboard service is required")

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
