// Package domain defines the core business entities for foodshare.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FoodListing: A quantity of food offered for donation
//   - Provider, Receiver, Claim: Read-only reference data
//   - FilterField: The allow-list of filterable {table, column} pairs
//   - Table: A tabular query result for display or aggregation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
