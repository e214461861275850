// Package selector provides a single-choice option cycler for the TUI.
package selector

import (
	"strings"

	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/styles"
)

// AnyLabel is shown for the empty "any" choice.
const AnyLabel = "Any"

// Selector cycles through a fixed list of options with left and right.
// When built with allowAny, an empty choice comes first and means no constraint.
type Selector struct {
	styles   *styles.Styles
	label    string
	options  []string
	allowAny bool
	index    int
	focused  bool
}

// New creates a selector.
func New(s *styles.Styles, label string, allowAny bool) *Selector {
	if s == nil {
		s = styles.DefaultStyles()
	}
	sel := &Selector{
		styles:   s,
		label:    label,
		allowAny: allowAny,
	}
	sel.SetOptions(nil, "")
	return sel
}

// SetOptions replaces the options and selects current if present.
// Otherwise the first choice is selected.
func (s *Selector) SetOptions(options []string, current string) {
	s.options = make([]string, 0, len(options)+1)
	if s.allowAny {
		s.options = append(s.options, "")
	}
	s.options = append(s.options, options...)
	s.index = 0
	for i, o := range s.options {
		if o == current {
			s.index = i
			break
		}
	}
}

// Options returns the choices, including the empty "any" choice if allowed.
func (s *Selector) Options() []string {
	return s.options
}

// Value returns the selected option. Empty means "any" or no options.
func (s *Selector) Value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.index]
}

// Next selects the following option, wrapping around.
// Returns true if the value changed.
func (s *Selector) Next() bool {
	return s.move(1)
}

// Prev selects the preceding option, wrapping around.
// Returns true if the value changed.
func (s *Selector) Prev() bool {
	return s.move(-1)
}

func (s *Selector) move(delta int) bool {
	n := len(s.options)
	if n < 2 {
		return false
	}
	s.index = (s.index + delta + n) % n
	return true
}

// Focus marks the selector as focused.
func (s *Selector) Focus() {
	s.focused = true
}

// Blur removes focus.
func (s *Selector) Blur() {
	s.focused = false
}

// Focused returns whether the selector is focused.
func (s *Selector) Focused() bool {
	return s.focused
}

// Label returns the selector caption.
func (s *Selector) Label() string {
	return s.label
}

// View renders the selector as "Label: ‹ value ›".
func (s *Selector) View() string {
	var b strings.Builder

	label := s.label + ": "
	if s.focused {
		b.WriteString(s.styles.Focused.Render(label))
	} else {
		b.WriteString(s.styles.Normal.Render(label))
	}

	value := s.Value()
	switch {
	case len(s.options) == 0:
		b.WriteString(s.styles.Muted.Render("(none)"))
		return b.String()
	case value == "" && s.allowAny:
		value = AnyLabel
	}

	if s.focused {
		b.WriteString(s.styles.Selected.Render("‹ " + value + " ›"))
	} else {
		b.WriteString(s.styles.Normal.Render(value))
	}
	return b.String()
}
