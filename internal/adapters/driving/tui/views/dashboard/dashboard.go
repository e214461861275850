// Package dashboard provides the filterable dashboard view for the TUI.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/components/results"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/components/selector"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
)

// errNoService is returned by load commands when no dashboard service is wired.
var errNoService = errors.New("dashboard service not available")

const barWidth = 30

// View shows the filter selectors and one table per catalogue view.
// Focus moves through the selectors first, then the tables.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.DashboardService
	ctx     context.Context

	fields    []domain.FilterField
	selectors []*selector.Selector
	views     []domain.View
	tables    []*results.Table
	focus     int

	options   *domain.FilterOptions
	filter    domain.Filter
	dashboard *domain.Dashboard

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new dashboard view.
func NewView(s *styles.Styles, service driving.DashboardService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		service: service,
		ctx:     context.Background(),
		fields:  domain.AllFilterFields(),
		views:   domain.AllViews(),
		width:   80,
		height:  24,
	}
	for _, f := range v.fields {
		// Provider is the only optional narrowing.
		v.selectors = append(v.selectors, selector.New(s, f.Label(), f == domain.FieldProvider))
	}
	for _, view := range v.views {
		v.tables = append(v.tables, results.New(s, view.Title()))
	}
	v.applyFocus()
	return v
}

// WithContext sets the context used for queries.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the selector options, then the dashboard.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadOptions()
}

func (v *View) loadOptions() tea.Cmd {
	service, ctx := v.service, v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.OptionsLoaded{Err: errNoService}
		}
		opts, filter, err := service.Options(ctx)
		return messages.OptionsLoaded{Options: opts, Filter: filter, Err: err}
	}
}

func (v *View) refresh() tea.Cmd {
	service, ctx, filter := v.service, v.ctx, v.filter
	v.loading = true
	return func() tea.Msg {
		if service == nil {
			return messages.DashboardLoaded{Err: errNoService}
		}
		d, err := service.Refresh(ctx, filter)
		return messages.DashboardLoaded{Dashboard: d, Err: err}
	}
}

// Update handles messages for the dashboard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.OptionsLoaded:
		if msg.Err != nil {
			v.loading = false
			v.err = msg.Err
			return v, nil
		}
		v.setOptions(msg.Options, msg.Filter)
		return v, v.refresh()

	case messages.FilterChanged:
		v.filter = msg.Filter
		v.syncSelectors()
		return v, v.refresh()

	case messages.DashboardLoaded:
		if msg.Dashboard != nil && msg.Dashboard.Filter != v.filter {
			// A newer filter is already in flight.
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.setDashboard(msg.Dashboard)
		return v, nil

	case messages.DatabaseChanged:
		// New listings may introduce new cities or food types.
		return v, v.loadOptions()
	}

	return v, nil
}

// setOptions installs selector options. On a reload the current
// selections are kept where they still exist.
func (v *View) setOptions(opts *domain.FilterOptions, initial domain.Filter) {
	if opts == nil {
		opts = &domain.FilterOptions{}
	}
	current := initial
	if v.options != nil {
		current = v.filter
	}
	v.options = opts
	for i, f := range v.fields {
		v.selectors[i].SetOptions(opts.Values(f), current.Get(f))
	}
	v.readSelectors()
}

func (v *View) readSelectors() {
	var f domain.Filter
	for i, field := range v.fields {
		f = f.With(field, v.selectors[i].Value())
	}
	v.filter = f
}

func (v *View) syncSelectors() {
	if v.options == nil {
		return
	}
	for i, f := range v.fields {
		v.selectors[i].SetOptions(v.options.Values(f), v.filter.Get(f))
	}
}

func (v *View) setDashboard(d *domain.Dashboard) {
	v.dashboard = d
	for i, view := range v.views {
		v.tables[i].SetData(d.Table(view))
	}
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.NextFocus):
		v.focus = (v.focus + 1) % v.focusCount()
		v.applyFocus()
		return v, nil
	case keymap.Matches(k, v.keymap.PrevFocus):
		v.focus = (v.focus - 1 + v.focusCount()) % v.focusCount()
		v.applyFocus()
		return v, nil
	case keymap.Matches(k, v.keymap.Refresh):
		v.loading = true
		return v, v.loadOptions()
	case keymap.Matches(k, v.keymap.AddListing):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewAddListing}
		}
	}

	if sel := v.focusedSelector(); sel != nil {
		changed := false
		switch {
		case keymap.Matches(k, v.keymap.Prev):
			changed = sel.Prev()
		case keymap.Matches(k, v.keymap.Next):
			changed = sel.Next()
		}
		if changed {
			v.readSelectors()
			filter := v.filter
			return v, func() tea.Msg {
				return messages.FilterChanged{Filter: filter}
			}
		}
		return v, nil
	}

	if tbl := v.focusedTable(); tbl != nil {
		var cmd tea.Cmd
		_, cmd = tbl.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) focusCount() int {
	return len(v.selectors) + len(v.tables)
}

func (v *View) applyFocus() {
	for i, s := range v.selectors {
		if i == v.focus {
			s.Focus()
		} else {
			s.Blur()
		}
	}
	for i, t := range v.tables {
		if len(v.selectors)+i == v.focus {
			t.Focus()
		} else {
			t.Blur()
		}
	}
}

func (v *View) focusedSelector() *selector.Selector {
	if v.focus < len(v.selectors) {
		return v.selectors[v.focus]
	}
	return nil
}

func (v *View) focusedTable() *results.Table {
	i := v.focus - len(v.selectors)
	if i >= 0 && i < len(v.tables) {
		return v.tables[i]
	}
	return nil
}

// View renders the dashboard.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Food Donation Dashboard"))
	b.WriteString("\n\n")

	sels := make([]string, 0, len(v.selectors))
	for _, s := range v.selectors {
		sels = append(sels, s.View())
	}
	b.WriteString(strings.Join(sels, "    "))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.dashboard == nil {
		if v.loading {
			b.WriteString(v.styles.Muted.Render("Loading dashboard..."))
		} else {
			b.WriteString(v.styles.Muted.Render("No data loaded."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.styles.Metric.Render(fmt.Sprintf("%d", v.dashboard.TotalQuantity)))
	b.WriteString(" ")
	b.WriteString(v.styles.Muted.Render("units available"))
	b.WriteString("\n\n")

	for i, t := range v.tables {
		b.WriteString(t.View())
		if v.views[i] == domain.ViewClaimsDistribution {
			if bars := v.renderClaimBars(); bars != "" {
				b.WriteString("\n")
				b.WriteString(bars)
			}
		}
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

// renderClaimBars draws the claims distribution as horizontal bars.
func (v *View) renderClaimBars() string {
	counts := domain.ClaimCounts(v.dashboard.ClaimsDistribution)
	if len(counts) == 0 {
		return ""
	}

	var peak int64
	labelWidth := 0
	for _, c := range counts {
		peak = max(peak, c.Count)
		labelWidth = max(labelWidth, lipgloss.Width(string(c.Status)))
	}

	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		n := 0
		if peak > 0 {
			n = int(c.Count * barWidth / peak)
		}
		label := fmt.Sprintf("%-*s", labelWidth, c.Status)
		bar := v.styles.Success.Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%s %s %d", label, bar, c.Count))
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[tab] next panel  [←/→] change filter  [r] reload  [a] add listing  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	rows := (height - 16) / len(v.tables)
	for _, t := range v.tables {
		t.SetSize(width, max(rows, 3))
	}
}

// Filter returns the current filter.
func (v *View) Filter() domain.Filter {
	return v.filter
}

// Dashboard returns the last loaded dashboard.
func (v *View) Dashboard() *domain.Dashboard {
	return v.dashboard
}

// Focus returns the focused panel index: selectors first, then tables.
func (v *View) Focus() int {
	return v.focus
}

// Loading returns whether a query is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
