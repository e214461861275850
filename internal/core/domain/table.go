package domain

import (
	"fmt"
	"time"
)

// Table is a tabular query result: named columns and rows in store order.
// An empty result has its columns set and no rows.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns, Rows: [][]any{}}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty returns true if the table has no rows.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// ColumnIndex returns the index of a named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at row, column name. ok is false if either is out of range.
func (t *Table) Value(row int, column string) (any, bool) {
	col := t.ColumnIndex(column)
	if col < 0 || row < 0 || row >= t.Len() || col >= len(t.Rows[row]) {
		return nil, false
	}
	return t.Rows[row][col], true
}

// Records returns each row as a column-name keyed map.
func (t *Table) Records() []map[string]any {
	records := make([]map[string]any, 0, t.Len())
	for _, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for i, c := range t.Columns {
			if i < len(row) {
				rec[c] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}

// StringRows returns every row with its cells rendered by FormatCell.
// Short rows are padded to the column count.
func (t *Table) StringRows() [][]string {
	rows := make([][]string, 0, t.Len())
	if t == nil {
		return rows
	}
	for _, r := range t.Rows {
		row := make([]string, len(t.Columns))
		for i := range t.Columns {
			if i < len(r) {
				row[i] = FormatCell(r[i])
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatCell renders a cell value for display. Dates use DateLayout.
func FormatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case time.Time:
		return c.Format(DateLayout)
	default:
		return fmt.Sprint(c)
	}
}

// Int64 converts a numeric cell to int64. Nil converts to 0.
func Int64(v any) (int64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// ClaimCount is one bar of the claims distribution.
type ClaimCount struct {
	Status ClaimStatus `json:"status"`
	Count  int64       `json:"count"`
}

// Dashboard is the full set of views for one filter selection.
type Dashboard struct {
	Filter             Filter `json:"filter"`
	TotalQuantity      int64  `json:"total_quantity"`
	TotalQuantityTable *Table `json:"total_quantity_table"`
	ProviderContacts   *Table `json:"provider_contacts"`
	FilteredListings   *Table `json:"filtered_listings"`
	ClaimsDistribution *Table `json:"claims_distribution"`
	Receivers          *Table `json:"receivers"`
}

// Table returns the result for a catalogue view.
func (d *Dashboard) Table(v View) *Table {
	switch v {
	case ViewTotalQuantity:
		return d.TotalQuantityTable
	case ViewProviderContacts:
		return d.ProviderContacts
	case ViewFilteredListings:
		return d.FilteredListings
	case ViewClaimsDistribution:
		return d.ClaimsDistribution
	case ViewReceiversByCity:
		return d.Receivers
	default:
		return nil
	}
}

// ClaimCounts converts the claims distribution table to typed counts.
// Rows with a non-numeric count are skipped.
func ClaimCounts(t *Table) []ClaimCount {
	statusCol := t.ColumnIndex("Claim_Status")
	countCol := t.ColumnIndex("Total_Claims")
	if statusCol < 0 || countCol < 0 {
		return nil
	}

	counts := make([]ClaimCount, 0, t.Len())
	for _, row := range t.Rows {
		n, ok := Int64(row[countCol])
		if !ok {
			continue
		}
		status, _ := row[statusCol].(string)
		counts = append(counts, ClaimCount{Status: ClaimStatus(status), Count: n})
	}
	return counts
}
