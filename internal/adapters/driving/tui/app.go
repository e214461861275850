package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/views/addlisting"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// changes delivers database change notifications. Nil disables live refresh.
	changes <-chan struct{}

	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusBar *status.Bar

	menuView       *menu.View
	dashboardView  *dashboard.View
	addListingView *addlisting.View
	settingsView   *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error reported through ErrorOccurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		statusBar:      status.NewBar(s, km),
		menuView:       menu.NewView(s),
		dashboardView:  dashboard.NewView(s, ports.Dashboard),
		addListingView: addlisting.NewView(s, ports.Dashboard, ports.Query),
		settingsView:   settings.NewView(s, ports.Settings),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.dashboardView.WithContext(ctx)
	a.addListingView.WithContext(ctx)
	return a
}

// WithChanges sets the channel of database change notifications.
// Each notification refreshes the dashboard for its current filter.
func (a *App) WithChanges(changes <-chan struct{}) *App {
	a.changes = changes
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("foodshare - Food Donation Dashboard"),
		a.waitForChange(),
	)
}

// waitForChange blocks on the next change notification.
// It returns no message once the channel is closed.
func (a *App) waitForChange() tea.Cmd {
	changes := a.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return messages.DatabaseChanged{}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewDashboard:
			cmd = a.dashboardView.Init()
		case messages.ViewAddListing:
			a.addListingView.Reset()
			cmd = a.addListingView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			cmd = a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// Static views need no initialisation
		}
		a.syncStatus()
		return a, cmd

	case messages.DatabaseChanged:
		// Refresh even when the dashboard is not on screen so it is
		// current when the user returns.
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, tea.Batch(cmd, a.waitForChange())

	case messages.OptionsLoaded, messages.FilterChanged, messages.DashboardLoaded:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.ProviderIDsLoaded:
		a.addListingView, cmd = a.addListingView.Update(msg)
		return a, cmd

	case messages.ListingSubmitted:
		a.addListingView, cmd = a.addListingView.Update(msg)
		if msg.Err != nil {
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, cmd
		}
		a.statusBar.SetState(status.StateSaved)
		if msg.Listing != nil {
			a.statusBar.SetMessage(fmt.Sprintf("Listing %d added", msg.Listing.ID))
		}
		// The new listing may change totals and selector options.
		var reload tea.Cmd
		a.dashboardView, reload = a.dashboardView.Update(messages.DatabaseChanged{})
		return a, tea.Batch(cmd, reload)

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		if msg.Err != nil {
			a.statusBar.SetMessage(msg.Err.Error())
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	case messages.ViewAddListing:
		a.addListingView, cmd = a.addListingView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return a, cmd
}

// handleKeyMsg applies global keys, then forwards to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	// Global quit with ctrl+c
	if k == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.editing() {
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(k, a.keymap.Help) && a.currentView != messages.ViewHelp:
			a.currentView = messages.ViewHelp
			a.syncStatus()
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)

	case messages.ViewDashboard:
		if keymap.Matches(k, a.keymap.Back) {
			return a.back()
		}
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		a.syncStatus()

	case messages.ViewAddListing:
		if keymap.Matches(k, a.keymap.Back) {
			return a.back()
		}
		a.addListingView, cmd = a.addListingView.Update(msg)

	case messages.ViewSettings:
		// Settings handles esc itself to cancel an edit first.
		a.settingsView, cmd = a.settingsView.Update(msg)

	case messages.ViewHelp:
		if keymap.Matches(k, a.keymap.Back) {
			return a.back()
		}
	}
	return a, cmd
}

func (a *App) back() (tea.Model, tea.Cmd) {
	a.currentView = messages.ViewMenu
	a.syncStatus()
	return a, nil
}

// editing reports whether keys are going into a text input.
func (a *App) editing() bool {
	switch a.currentView {
	case messages.ViewAddListing:
		return a.addListingView.Editing()
	case messages.ViewSettings:
		return a.settingsView.Editing()
	default:
		return false
	}
}

// syncStatus derives the status bar from the active view.
func (a *App) syncStatus() {
	switch a.currentView {
	case messages.ViewDashboard:
		switch {
		case a.dashboardView.Err() != nil:
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(a.dashboardView.Err().Error())
		case a.dashboardView.Loading():
			a.statusBar.SetState(status.StateLoading)
		default:
			a.statusBar.SetState(status.StateDashboard)
		}
		if d := a.dashboardView.Dashboard(); d != nil {
			a.statusBar.SetTotal(d.TotalQuantity)
		}
	case messages.ViewAddListing:
		a.statusBar.SetState(status.StateForm)
		a.statusBar.SetMessage("")
	case messages.ViewMenu, messages.ViewSettings, messages.ViewHelp:
		a.statusBar.SetState(status.StateReady)
		a.statusBar.SetMessage("")
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewDashboard:
		body = a.dashboardView.View()
	case messages.ViewAddListing:
		body = a.addListingView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view from the key map.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// Leave a line for the status bar
	viewHeight := height - 1
	a.menuView.SetDimensions(width, viewHeight)
	a.dashboardView.SetDimensions(width, viewHeight)
	a.addListingView.SetDimensions(width, viewHeight)
	a.settingsView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
}
