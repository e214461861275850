// Package services implements the driving port interfaces.
// Services contain the dashboard's read views, listing validation and
// the filter-change and form-submission handlers, and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO or external dependencies.
package services
