// Package results renders query results as a titled, scrollable table.
package results

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/foodshare/internal/core/domain"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 28
	defaultHeight  = 6
)

// Table wraps a bubbles table fed from a domain.Table.
type Table struct {
	styles *styles.Styles
	title  string
	model  table.Model
	width  int
	data   *domain.Table
}

// New creates an empty results table.
func New(s *styles.Styles, title string) *Table {
	if s == nil {
		s = styles.DefaultStyles()
	}
	m := table.New(
		table.WithHeight(defaultHeight),
		table.WithFocused(false),
		table.WithStyles(s.Table(false)),
	)
	return &Table{
		styles: s,
		title:  title,
		model:  m,
	}
}

// SetData replaces the table contents.
func (t *Table) SetData(data *domain.Table) {
	t.data = data

	// Rows must be cleared first; the model renders rows against the
	// current columns on every change.
	t.model.SetRows([]table.Row{})
	if data == nil {
		t.model.SetColumns([]table.Column{})
		return
	}
	rows := make([]table.Row, 0, data.Len())
	for _, r := range data.StringRows() {
		rows = append(rows, table.Row(r))
	}
	t.model.SetColumns(columns(data.Columns, rows))
	t.model.SetRows(rows)
	t.model.GotoTop()
}

// Data returns the current contents.
func (t *Table) Data() *domain.Table {
	return t.data
}

func columns(names []string, rows []table.Row) []table.Column {
	cols := make([]table.Column, len(names))
	for i, name := range names {
		w := lipgloss.Width(name)
		for _, r := range rows {
			if cw := lipgloss.Width(r[i]); cw > w {
				w = cw
			}
		}
		w = max(minColumnWidth, min(w, maxColumnWidth))
		cols[i] = table.Column{Title: name, Width: w}
	}
	return cols
}

// Update forwards navigation keys to the table when it is focused.
func (t *Table) Update(msg tea.Msg) (*Table, tea.Cmd) {
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

// View renders the title, the table and a row count.
func (t *Table) View() string {
	title := t.styles.Subtitle.Render(t.title)
	if t.model.Focused() {
		title = t.styles.Focused.Render(t.title)
	}

	if t.data == nil {
		return title + "\n" + t.styles.Muted.Render("Loading...")
	}
	if t.data.IsEmpty() {
		return title + "\n" + t.styles.Muted.Render("No matching rows")
	}

	body := t.model.View()
	border := t.styles.Border
	if t.model.Focused() {
		border = t.styles.FocusedBorder
	}
	if t.width > 0 {
		border = border.Width(t.width)
	}
	count := t.styles.Muted.Render(fmt.Sprintf("%d rows", t.data.Len()))
	return title + "\n" + border.Render(body) + "\n" + count
}

// Focus enables row navigation.
func (t *Table) Focus() {
	t.model.Focus()
	t.model.SetStyles(t.styles.Table(true))
}

// Blur disables row navigation.
func (t *Table) Blur() {
	t.model.Blur()
	t.model.SetStyles(t.styles.Table(false))
}

// Focused returns whether the table is focused.
func (t *Table) Focused() bool {
	return t.model.Focused()
}

// SetSize sets the width and visible row count.
func (t *Table) SetSize(width, height int) {
	t.width = width
	if height < 1 {
		height = 1
	}
	t.model.SetHeight(height)
	if width > 4 {
		t.model.SetWidth(width - 4)
	}
}

// Cursor returns the highlighted row index.
func (t *Table) Cursor() int {
	return t.model.Cursor()
}

// Title returns the table caption.
func (t *Table) Title() string {
	return t.title
}
