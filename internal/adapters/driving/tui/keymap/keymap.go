// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list or table.
	Up key.Binding

	// Down navigates down in a list or table.
	Down key.Binding

	// Prev selects the previous selector option.
	Prev key.Binding

	// Next selects the next selector option.
	Next key.Binding

	// NextFocus moves focus to the next selector, table or field.
	NextFocus key.Binding

	// PrevFocus moves focus to the previous selector, table or field.
	PrevFocus key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Submit sends the add-listing form.
	Submit key.Binding

	// Refresh re-runs the dashboard queries.
	Refresh key.Binding

	// AddListing opens the add-listing form.
	AddListing key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous option"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next option"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		AddListing: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add listing"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// DashboardHelp returns keybindings for the dashboard view.
func (k *KeyMap) DashboardHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Next, k.Refresh, k.AddListing, k.Back}
}

// FormHelp returns keybindings for the add-listing form.
func (k *KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Submit, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.NextFocus, k.PrevFocus, k.Select, k.Submit},
		{k.Refresh, k.AddListing, k.Back},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
