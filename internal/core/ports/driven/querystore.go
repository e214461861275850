package driven

import (
	"context"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

// QueryStore executes read-only statements against the dashboard schema.
// Implementations never build SQL identifiers from arguments: fields and
// views name entries in a fixed catalogue, and values are bound parameters.
type QueryStore interface {
	// Distinct returns the distinct non-null values of an allow-listed field.
	// Returns domain.ErrInvalidInput for a field outside the allow-list.
	Distinct(ctx context.Context, field domain.FilterField) ([]string, error)

	// Query runs a catalogue view with bound parameters.
	// An empty result is a table with columns and no rows, not an error.
	Query(ctx context.Context, view domain.View, args ...any) (*domain.Table, error)

	// ProviderIDs returns every known provider ID.
	ProviderIDs(ctx context.Context) ([]int64, error)
}
