package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/foodshare/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driven"
	"github.com/custodia-labs/foodshare/internal/logger"
)

// DefaultFileName is the database file name inside the data directory.
const DefaultFileName = "foodshare.db"

// Store is the SQLite-backed storage shared by the query and listing stores.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the SQLite database at dbPath.
// If dbPath is empty, defaults to ~/.foodshare/data/foodshare.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".foodshare", "data", DefaultFileName)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode so other sessions can read during inserts
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Debug("opened database %s", dbPath)
	return s, nil
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// QueryStore returns a QueryStore interface backed by this store.
func (s *Store) QueryStore() driven.QueryStore {
	return &queryStore{store: s}
}

// ListingStore returns a ListingStore interface backed by this store.
func (s *Store) ListingStore() driven.ListingStore {
	return &listingStore{store: s}
}

// withConn runs fn on a connection acquired for this call only.
// The connection is returned to the pool when fn returns.
func (s *Store) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		logger.Debug("applied migration %s", name)
	}

	return nil
}

// ==================== Query Store ====================

// distinctStatements maps each allow-listed filter field to its statement.
// Identifiers come only from FilterField.Column.
var distinctStatements = buildDistinctStatements()

func buildDistinctStatements() map[domain.FilterField]string {
	statements := make(map[domain.FilterField]string, len(domain.AllFilterFields()))
	for _, field := range domain.AllFilterFields() {
		table, column := field.Column()
		statements[field] = fmt.Sprintf(
			"SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL", column, table, column)
	}
	return statements
}

// statement is one catalogue read.
type statement struct {
	// query is used with exactly len(params) arguments.
	query  string
	params []string

	// narrowed, when set, is used with one extra trailing argument.
	narrowed string
}

const filteredListingsQuery = `
	SELECT Food_Name, Quantity, Expiry_Date, Provider_Location, Food_Type, Meal_Type
	FROM food_listings
	WHERE Food_Type = ? AND Provider_Location = ?`

// catalogue holds the statement behind every dashboard view.
var catalogue = map[domain.View]statement{
	domain.ViewTotalQuantity: {
		query: `SELECT COALESCE(SUM(Quantity), 0) AS Total_Quantity FROM food_listings`,
	},
	domain.ViewProviderContacts: {
		query:  `SELECT Provider_Name, Contact FROM providers WHERE City = ?`,
		params: []string{"city"},
	},
	domain.ViewFilteredListings: {
		query:    filteredListingsQuery,
		params:   []string{"food_type", "city"},
		narrowed: filteredListingsQuery + ` AND Provider_Name = ?`,
	},
	domain.ViewClaimsDistribution: {
		query: `SELECT Claim_Status, COUNT(*) AS Total_Claims FROM claims GROUP BY Claim_Status`,
	},
	domain.ViewReceiversByCity: {
		query:  `SELECT Name, Type, Contact FROM receivers WHERE City = ?`,
		params: []string{"city"},
	},
}

// resolve picks the statement text for a view and argument count.
func (st statement) resolve(nargs int) (string, error) {
	switch {
	case nargs == len(st.params):
		return st.query, nil
	case st.narrowed != "" && nargs == len(st.params)+1:
		return st.narrowed, nil
	default:
		return "", fmt.Errorf("%w: expected %d arguments (%s), got %d",
			domain.ErrInvalidInput, len(st.params), strings.Join(st.params, ", "), nargs)
	}
}

// queryStore implements driven.QueryStore.
type queryStore struct {
	store *Store
}

var _ driven.QueryStore = (*queryStore)(nil)

// Distinct returns the distinct non-null values of an allow-listed field.
func (s *queryStore) Distinct(ctx context.Context, field domain.FilterField) ([]string, error) {
	query, ok := distinctStatements[field]
	if !ok {
		return nil, fmt.Errorf("%w: filter field %q", domain.ErrInvalidInput, field)
	}

	values := []string{}
	err := s.store.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var v sql.NullString
			if err := rows.Scan(&v); err != nil {
				return err
			}
			if v.Valid {
				values = append(values, v.String)
			}
		}
		return rows.Err()
	})
	if err != nil {
		return nil, &domain.StoreError{Op: "distinct " + string(field), Err: err}
	}
	return values, nil
}

// Query runs a catalogue view with bound parameters.
func (s *queryStore) Query(ctx context.Context, view domain.View, args ...any) (*domain.Table, error) {
	st, ok := catalogue[view]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownView, view)
	}
	query, err := st.resolve(len(args))
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", view, err)
	}

	var table *domain.Table
	err = s.store.withConn(ctx, func(conn *sql.Conn) error {
		var qerr error
		table, qerr = scanTable(ctx, conn, query, args...)
		return qerr
	})
	if err != nil {
		return nil, &domain.StoreError{Op: "query " + string(view), Err: err}
	}

	logger.Debug("view %s returned %d rows", view, table.Len())
	return table, nil
}

// ProviderIDs returns every known provider ID.
func (s *queryStore) ProviderIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	err := s.store.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `SELECT Provider_ID FROM providers`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, &domain.StoreError{Op: "provider ids", Err: err}
	}
	return ids, nil
}

// scanTable executes a read and collects every row with its column names.
func scanTable(ctx context.Context, conn *sql.Conn, query string, args ...any) (*domain.Table, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := domain.NewTable(columns...)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = normalise(v)
		}
		table.Rows = append(table.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// normalise converts driver values to display-ready values.
func normalise(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(domain.DateLayout)
	default:
		return val
	}
}

// ==================== Listing Store ====================

// listingStore implements driven.ListingStore.
type listingStore struct {
	store *Store
}

var _ driven.ListingStore = (*listingStore)(nil)

// Insert writes one listing in its own transaction.
func (s *listingStore) Insert(ctx context.Context, listing domain.FoodListing) (int64, error) {
	var id int64
	err := s.store.withConn(ctx, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		committed := false
		defer func() {
			if !committed {
				//nolint:errcheck // rollback after a failed statement; the original error is returned
				_ = tx.Rollback()
			}
		}()

		res, err := tx.ExecContext(ctx, `
			INSERT INTO food_listings
			(Food_Name, Quantity, Expiry_Date, Provider_ID, Provider_Name, Provider_Location, Food_Type, Meal_Type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, listing.FoodName, listing.Quantity, listing.ExpiryString(), listing.ProviderID,
			listing.ProviderName, listing.ProviderLocation, listing.FoodType, listing.MealType)
		if err != nil {
			return fmt.Errorf("inserting listing: %w", err)
		}

		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading listing id: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing listing: %w", err)
		}
		committed = true
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
