// Package replace provides the find and replace view for the TUI.
package replace

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/components/input"
	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/components/list"
	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/components/status"
	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/keymap"
	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/messages"
	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/styles"
	"github.com/halcyon-labs/restitch/internal/core/domain"
	"github.com/halcyon-labs/restitch/internal/core/ports/driving"
)

// contextChars is the context window used for the list display. The
// list renders one line per occurrence, so the full default window
// would only be truncated away again.
const contextChars = 40

// Focus identifies which part of the view receives keystrokes.
type Focus int

const (
	// FocusTerm is the search term input.
	FocusTerm Focus = iota
	// FocusReplacement is the replacement text input.
	FocusReplacement
	// FocusList is the occurrence list.
	FocusList
)

// View is the find and replace view with two inputs, the occurrence
// list, and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	term      *input.TextField
	replace   *input.TextField
	list      *list.OccurrenceList
	statusbar *status.Bar

	searchService  driving.SearchService
	replaceService driving.ReplaceService
	ctx            context.Context

	dir    string
	width  int
	height int
	ready  bool
	err    error
	focus  Focus
}

// NewView creates a new find and replace view rooted at dir.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	replaceService driving.ReplaceService,
	dir string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	term := input.NewTextField(s, "Find", "Text to find...")
	term.Focus()

	return &View{
		styles:         s,
		keymap:         km,
		term:           term,
		replace:        input.NewTextField(s, "Replace", "Replacement text..."),
		list:           list.NewOccurrenceList(s),
		statusbar:      status.NewBar(s, km),
		searchService:  searchService,
		replaceService: replaceService,
		ctx:            context.Background(),
		dir:            dir,
		width:          80,
		height:         24,
		ready:          false,
		focus:          FocusTerm,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.term.Init()
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ReplaceCompleted:
		v.handleReplaceCompleted(msg)
		return v, nil

	case messages.ReplaceAllCompleted:
		v.handleReplaceAllCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	return v.forwardToFocused(msg)
}

// forwardToFocused routes a message to the focused input.
func (v *View) forwardToFocused(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	switch v.focus {
	case FocusTerm:
		v.term, cmd = v.term.Update(msg)
	case FocusReplacement:
		v.replace, cmd = v.replace.Update(msg)
	case FocusList:
		v.list, cmd = v.list.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focus == FocusList {
		return v.handleListKey(msg)
	}
	return v.handleInputKey(msg)
}

// handleInputKey processes keys while an input field has focus.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		v.toggleInputFocus()
		return v, nil

	case tea.KeyEnter:
		term := v.term.Value()
		if term == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		return v, v.performSearch(term)

	case tea.KeyEsc:
		// Esc from the inputs quits the program.
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v.forwardToFocused(msg)
}

// handleListKey processes keys while the occurrence list has focus.
func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		v.focusField(FocusTerm)
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
		return v, nil
	}

	if msg.Type == tea.KeyEnter {
		return v, v.replaceSelected()
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
		return v, nil
	case "j":
		v.list.MoveDown()
		return v, nil
	case "r":
		return v, v.replaceSelected()
	case "a":
		return v, v.replaceAll()
	case "q":
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v, nil
}

// toggleInputFocus flips focus between the two input fields.
func (v *View) toggleInputFocus() {
	if v.focus == FocusTerm {
		v.focusField(FocusReplacement)
	} else {
		v.focusField(FocusTerm)
	}
}

// focusField moves focus to the given part of the view.
func (v *View) focusField(f Focus) {
	v.focus = f
	v.term.Blur()
	v.replace.Blur()
	switch f {
	case FocusTerm:
		v.term.Focus()
	case FocusReplacement:
		v.replace.Focus()
	case FocusList:
		// List has no focus state of its own.
	}
}

// performSearch runs a search against the view's directory.
func (v *View) performSearch(term string) tea.Cmd {
	return func() tea.Msg {
		summary, err := v.searchService.Search(v.ctx, v.dir, term, domain.SearchOptions{
			ContextChars: contextChars,
		})
		return messages.SearchCompleted{Summary: summary, Err: err}
	}
}

// replaceSelected replaces the selected occurrence with the current
// replacement text.
func (v *View) replaceSelected() tea.Cmd {
	occ := v.list.SelectedOccurrence()
	if occ == nil || v.list.IsReplaced(occ.ID) {
		return nil
	}
	id := occ.ID
	newText := v.replace.Value()
	v.statusbar.SetState(status.StateReplacing)

	return func() tea.Msg {
		err := v.replaceService.ReplaceOne(v.ctx, id, newText)
		return messages.ReplaceCompleted{OccurrenceID: id, Err: err}
	}
}

// replaceAll replaces every remaining occurrence with the current
// replacement text.
func (v *View) replaceAll() tea.Cmd {
	requests := make([]domain.ReplaceRequest, 0, v.list.Count())
	newText := v.replace.Value()
	for _, occ := range v.list.Occurrences() {
		if v.list.IsReplaced(occ.ID) {
			continue
		}
		requests = append(requests, domain.ReplaceRequest{
			OccurrenceID: occ.ID,
			NewText:      newText,
		})
	}
	if len(requests) == 0 {
		return nil
	}
	v.statusbar.SetState(status.StateReplacing)

	return func() tea.Msg {
		summary, err := v.replaceService.ReplaceMany(v.ctx, requests)
		return messages.ReplaceAllCompleted{Summary: summary, Err: err}
	}
}

// handleSearchCompleted publishes results into the list.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetOccurrences(msg.Summary.Occurrences)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResultCount(msg.Summary.TotalOccurrences)

	if msg.Summary.TotalOccurrences > 0 {
		v.focusField(FocusList)
	}
}

// handleReplaceCompleted marks the occurrence applied.
func (v *View) handleReplaceCompleted(msg messages.ReplaceCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.MarkReplaced(msg.OccurrenceID)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("Replaced " + msg.OccurrenceID)
}

// handleReplaceAllCompleted marks every applied occurrence.
func (v *View) handleReplaceAllCompleted(msg messages.ReplaceAllCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	failed := make(map[string]bool, len(msg.Summary.Failures))
	for _, f := range msg.Summary.Failures {
		failed[f.OccurrenceID] = true
	}
	for _, occ := range v.list.Occurrences() {
		if !failed[occ.ID] {
			v.list.MarkReplaced(occ.ID)
		}
	}

	v.err = nil
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage(fmt.Sprintf("Applied %d of %d", msg.Summary.Successful, msg.Summary.TotalProcessed))
}

// View renders the find and replace view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("Restitch") +
		v.styles.Muted.Render("  "+v.dir)
	sections = append(sections, header, "")

	sections = append(sections, v.term.View())
	sections = append(sections, v.replace.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View())

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.term.SetWidth(width)
	v.replace.SetWidth(width)
	v.list.SetDimensions(width, height-12) // Reserve space for header, inputs, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Term returns the current search term.
func (v *View) Term() string {
	return v.term.Value()
}

// SetTerm sets the search term.
func (v *View) SetTerm(term string) {
	v.term.SetValue(term)
}

// Replacement returns the current replacement text.
func (v *View) Replacement() string {
	return v.replace.Value()
}

// SetReplacement sets the replacement text.
func (v *View) SetReplacement(text string) {
	v.replace.SetValue(text)
}

// Occurrences returns the listed occurrences.
func (v *View) Occurrences() []domain.Occurrence {
	return v.list.Occurrences()
}

// SelectedIndex returns the index of the selected occurrence.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Focus returns which part of the view has focus.
func (v *View) Focus() Focus {
	return v.focus
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to its initial input state.
func (v *View) Reset() {
	v.focusField(FocusTerm)
	v.term.SetValue("")
	v.replace.SetValue("")
	v.list.SetOccurrences(nil)
	v.err = nil
	v.statusbar.Clear()
}
