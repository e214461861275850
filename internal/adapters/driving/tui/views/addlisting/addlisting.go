// Package addlisting provides the add-listing form view for the TUI.
package addlisting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/components/selector"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/foodshare/internal/core/domain"
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
)

var (
	errNoDashboard = errors.New("dashboard service not available")
	errNoQuery     = errors.New("query service not available")
)

// Form positions. The provider ID is a selector, every other position a text field.
const (
	posFoodName = iota
	posQuantity
	posExpiry
	posProviderID
	posProviderName
	posLocation
	posFoodType
	posMealType
	posCount
)

// View is the add-listing form.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	dashboard driving.DashboardService
	queries   driving.QueryService
	ctx       context.Context

	fields     map[int]*input.Field
	providerID *selector.Selector
	focus      int

	width      int
	height     int
	ready      bool
	submitting bool
	err        error
	added      *domain.FoodListing
}

// NewView creates a new add-listing view.
func NewView(s *styles.Styles, dashboard driving.DashboardService, queries driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:    s,
		keymap:    keymap.DefaultKeyMap(),
		dashboard: dashboard,
		queries:   queries,
		ctx:       context.Background(),
		fields: map[int]*input.Field{
			posFoodName:     input.NewField(s, "Food Name", "e.g. Vegetable Curry", input.KindText),
			posQuantity:     input.NewField(s, "Quantity", "units, at least 1", input.KindNumber),
			posExpiry:       input.NewField(s, "Expiry Date", "YYYY-MM-DD", input.KindDate),
			posProviderName: input.NewField(s, "Provider Name", "", input.KindText),
			posLocation:     input.NewField(s, "Provider Location", "city", input.KindText),
			posFoodType:     input.NewField(s, "Food Type", "Vegetarian, Non-Vegetarian, Vegan", input.KindText),
			posMealType:     input.NewField(s, "Meal Type", "Breakfast, Lunch, Dinner, Snacks", input.KindText),
		},
		providerID: selector.New(s, "Provider ID", false),
		width:      80,
		height:     24,
	}
	v.applyFocus()
	return v
}

// WithContext sets the context used for queries and inserts.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the provider IDs offered by the form.
func (v *View) Init() tea.Cmd {
	queries, ctx := v.queries, v.ctx
	return tea.Batch(v.focusCmd(), func() tea.Msg {
		if queries == nil {
			return messages.ProviderIDsLoaded{Err: errNoQuery}
		}
		ids, err := queries.ProviderIDs(ctx)
		return messages.ProviderIDsLoaded{IDs: ids, Err: err}
	})
}

// Update handles messages for the add-listing view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ProviderIDsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		ids := make([]string, len(msg.IDs))
		for i, id := range msg.IDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		v.providerID.SetOptions(ids, v.providerID.Value())
		return v, nil

	case messages.ListingSubmitted:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.added = msg.Listing
		v.clearFields()
		v.focus = posFoodName
		v.applyFocus()
		return v, v.focusCmd()
	}

	if f := v.focusedField(); f != nil {
		var cmd tea.Cmd
		_, cmd = f.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Submit):
		return v, v.submit()
	case keymap.Matches(k, v.keymap.Select):
		if v.focus == posCount-1 {
			return v, v.submit()
		}
		return v, v.moveFocus(1)
	case keymap.Matches(k, v.keymap.NextFocus), k == "down":
		return v, v.moveFocus(1)
	case keymap.Matches(k, v.keymap.PrevFocus), k == "up":
		return v, v.moveFocus(-1)
	}

	if v.focus == posProviderID {
		switch k {
		case "left", "h":
			v.providerID.Prev()
		case "right", "l":
			v.providerID.Next()
		}
		return v, nil
	}

	if f := v.focusedField(); f != nil {
		var cmd tea.Cmd
		_, cmd = f.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) moveFocus(delta int) tea.Cmd {
	v.focus = (v.focus + delta + posCount) % posCount
	v.applyFocus()
	return v.focusCmd()
}

func (v *View) applyFocus() {
	for pos, f := range v.fields {
		if pos == v.focus {
			f.Focus()
		} else {
			f.Blur()
		}
	}
	if v.focus == posProviderID {
		v.providerID.Focus()
	} else {
		v.providerID.Blur()
	}
}

func (v *View) focusCmd() tea.Cmd {
	if f := v.focusedField(); f != nil {
		return f.Focus()
	}
	return nil
}

func (v *View) focusedField() *input.Field {
	return v.fields[v.focus]
}

// Listing builds a listing from the form. Returns a *domain.ValidationError
// for a field that cannot be parsed.
func (v *View) Listing() (domain.FoodListing, error) {
	qty, err := strconv.Atoi(v.fields[posQuantity].Value())
	if err != nil {
		return domain.FoodListing{}, &domain.ValidationError{Field: "quantity", Reason: "must be a whole number"}
	}
	expiry, err := domain.ParseExpiryDate(v.fields[posExpiry].Value())
	if err != nil {
		return domain.FoodListing{}, err
	}
	providerID, err := strconv.ParseInt(v.providerID.Value(), 10, 64)
	if err != nil {
		return domain.FoodListing{}, &domain.ValidationError{Field: "provider_id", Reason: "must be a known provider"}
	}

	return domain.FoodListing{
		FoodName:         v.fields[posFoodName].Value(),
		Quantity:         qty,
		ExpiryDate:       expiry,
		ProviderID:       providerID,
		ProviderName:     v.fields[posProviderName].Value(),
		ProviderLocation: v.fields[posLocation].Value(),
		FoodType:         v.fields[posFoodType].Value(),
		MealType:         v.fields[posMealType].Value(),
	}, nil
}

// submit validates the form locally and hands it to the dashboard service.
func (v *View) submit() tea.Cmd {
	if v.submitting {
		return nil
	}
	listing, err := v.Listing()
	if err == nil {
		err = listing.Validate()
	}
	if err != nil {
		v.err = err
		v.added = nil
		return nil
	}

	v.submitting = true
	v.err = nil
	service, ctx := v.dashboard, v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.ListingSubmitted{Err: errNoDashboard}
		}
		added, err := service.Submit(ctx, listing)
		return messages.ListingSubmitted{Listing: added, Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Add Food Listing"))
	b.WriteString("\n\n")

	for pos := 0; pos < posCount; pos++ {
		if pos == posProviderID {
			b.WriteString(v.providerID.View())
		} else {
			b.WriteString(v.fields[pos].View())
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case v.submitting:
		b.WriteString(v.styles.Muted.Render("Submitting..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	case v.added != nil:
		b.WriteString(v.styles.Success.Render(fmt.Sprintf("Listing %d added: %s", v.added.ID, v.added.FoodName)))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[tab] next field  [←/→] provider  [ctrl+s] submit  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, f := range v.fields {
		f.SetWidth(width)
	}
}

// Reset clears the form and its status.
func (v *View) Reset() {
	v.clearFields()
	v.focus = posFoodName
	v.submitting = false
	v.err = nil
	v.added = nil
	v.applyFocus()
}

func (v *View) clearFields() {
	for _, f := range v.fields {
		f.Reset()
	}
}

// Editing returns true while a text field has focus, so global
// single-letter shortcuts must not be applied.
func (v *View) Editing() bool {
	return v.focusedField() != nil
}

// Added returns the last listing added in this form session.
func (v *View) Added() *domain.FoodListing {
	return v.added
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
