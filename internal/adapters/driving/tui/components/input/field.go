// Package input provides text input components for the TUI.
package input

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/styles"
)

// Kind restricts what a field accepts.
type Kind int

const (
	// KindText accepts any printable text.
	KindText Kind = iota
	// KindNumber accepts digits only.
	KindNumber
	// KindDate accepts digits and dashes, as in YYYY-MM-DD.
	KindDate
)

// Field is a labelled text input for the add-listing form.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	kind      Kind
}

// NewField creates a new form field.
func NewField(s *styles.Styles, label, placeholder string, kind Kind) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	if kind == KindDate {
		ti.CharLimit = len("2006-01-02")
	}
	if kind == KindNumber {
		ti.CharLimit = 9
	}

	return &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		kind:      kind,
	}
}

// Init initialises the field.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. Runes the field's kind does not accept
// are dropped.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyRunes && !f.accepts(km.Runes) {
		return f, nil
	}
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

func (f *Field) accepts(runes []rune) bool {
	for _, r := range runes {
		switch f.kind {
		case KindNumber:
			if !unicode.IsDigit(r) {
				return false
			}
		case KindDate:
			if !unicode.IsDigit(r) && r != '-' {
				return false
			}
		case KindText:
			if !unicode.IsPrint(r) {
				return false
			}
		}
	}
	return true
}

// View renders the label and the input.
func (f *Field) View() string {
	label := f.styles.Normal.Render(f.label + ":")
	if f.Focused() {
		label = f.styles.Focused.Render(f.label + ":")
	}
	return label + "\n" + f.styles.InputField.Render(f.textinput.View())
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Kind returns what the field accepts.
func (f *Field) Kind() Kind {
	return f.kind
}

// Value returns the trimmed input value.
func (f *Field) Value() string {
	return strings.TrimSpace(f.textinput.Value())
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	// Account for border and padding
	inputWidth := width - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
