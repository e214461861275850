// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View lists the settings and edits one at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	keys     []string
	err      error
	saved    string

	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	input := textinput.New()
	input.CharLimit = 512
	input.Width = 50

	return &View{
		styles:          s,
		settingsService: settingsService,
		keys:            domain.AllSettingKeys(),
		input:           input,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// saveSetting returns a command that stores one setting.
func (v *View) saveSetting(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Key: key, Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.saved = msg.Key
		// Reload settings after save
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.editing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		switch msg.String() {
		case keyEsc:
			v.editing = false
			v.input.Blur()
			return v, nil
		case keyEnter:
			v.editing = false
			v.input.Blur()
			return v, v.saveSetting(v.keys[v.selected], v.input.Value())
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		v.editing = true
		v.saved = ""
		v.input.SetValue(v.value(v.keys[v.selected]))
		v.input.CursorEnd()
		return v, v.input.Focus()
	}
	return v, nil
}

// value renders the current value of a setting for display and editing.
func (v *View) value(key string) string {
	if v.settings == nil {
		return ""
	}
	switch key {
	case domain.SettingStoragePath:
		return v.settings.Storage.Path
	case domain.SettingWatchEnabled:
		return strconv.FormatBool(v.settings.Watch.Enabled)
	case domain.SettingWatchDebounce:
		return v.settings.Watch.Debounce.String()
	case domain.SettingServerAddr:
		return v.settings.Server.Addr
	case domain.SettingServerAllowedOrigins:
		return strings.Join(v.settings.Server.AllowedOrigins, ",")
	default:
		return ""
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil && v.err == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	for i, key := range v.keys {
		indicator := "  "
		label := v.styles.Normal.Render(fmt.Sprintf("%-24s", key))
		if i == v.selected {
			indicator = "> "
			label = v.styles.Selected.Render(fmt.Sprintf("%-24s", key))
		}

		val := v.value(key)
		switch {
		case v.editing && i == v.selected:
			val = v.input.View()
		case val == "" && key == domain.SettingStoragePath:
			val = v.styles.Muted.Render("(default)")
		case val == "":
			val = v.styles.Muted.Render("(none)")
		}
		b.WriteString(indicator + label + " " + val + "\n")
	}
	b.WriteString("\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	case v.saved != "":
		b.WriteString(v.styles.Success.Render(fmt.Sprintf("Saved %s", v.saved)))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Storage and watch changes apply on next start."))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset clears editing state.
func (v *View) Reset() {
	v.selected = 0
	v.editing = false
	v.saved = ""
	v.err = nil
	v.input.Blur()
	v.input.Reset()
}

// Editing returns true while a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
