// Package sqlite provides the SQLite-based implementation of the driven store ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements both store interfaces
// through a single connection pool:
//
//   - QueryStore: Catalogue reads for the dashboard views
//   - ListingStore: Transactional single-row listing inserts
//
// # Schema
//
// The fixed schema (food_listings, providers, receivers, claims) is created from
// the versioned files in the migrations/ directory the first time a database is
// opened. Each file pair is NNN_name.up.sql and NNN_name.down.sql.
//
// # Statements
//
// Every statement is a constant in this package. Filter fields and views select
// a statement; caller values are only ever bound as parameters.
//
// # Data Location
//
// By default, the database is stored at ~/.foodshare/data/foodshare.db
//
// # Connections
//
// Each operation acquires its own connection from the pool for the lifetime of
// the call and releases it before returning. The database runs in WAL mode with
// a busy timeout so separate processes can read while another inserts.
package sqlite
