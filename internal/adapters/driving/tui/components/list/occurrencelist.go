// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/styles"
	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// OccurrenceList displays search occurrences in a navigable list,
// grouped under their file paths. Replaced occurrences stay listed
// with a marker so the user can see what the session already applied.
type OccurrenceList struct {
	occurrences []domain.Occurrence
	replaced    map[string]bool
	selected    int
	styles      *styles.Styles
	width       int
	height      int
}

// NewOccurrenceList creates a new occurrence list component.
func NewOccurrenceList(s *styles.Styles) *OccurrenceList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &OccurrenceList{
		occurrences: nil,
		replaced:    make(map[string]bool),
		selected:    0,
		styles:      s,
		width:       80,
		height:      10,
	}
}

// Init initialises the occurrence list.
func (l *OccurrenceList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *OccurrenceList) Update(msg tea.Msg) (*OccurrenceList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			l.MoveUp()
		case "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the occurrence list.
func (l *OccurrenceList) View() string {
	if len(l.occurrences) == 0 {
		return l.styles.Muted.Render("No occurrences")
	}

	lines := make([]string, 0, len(l.occurrences)*2+2)

	header := l.styles.Subtitle.Render(fmt.Sprintf("Occurrences (%d)", len(l.occurrences)))
	lines = append(lines, header, "")

	// Each occurrence takes up to 2 lines (file path header + entry).
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.occurrences) {
		end = len(l.occurrences)
	}

	lastFile := ""
	if start > 0 {
		lastFile = l.occurrences[start-1].FilePath
	}
	for i := start; i < end; i++ {
		occ := &l.occurrences[i]
		if occ.FilePath != lastFile {
			lines = append(lines, l.styles.Subtitle.Render(occ.FilePath))
			lastFile = occ.FilePath
		}
		lines = append(lines, l.renderOccurrence(i, occ))
	}

	return strings.Join(lines, "\n")
}

// renderOccurrence formats a single occurrence with its context.
func (l *OccurrenceList) renderOccurrence(index int, occ *domain.Occurrence) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	marker := " "
	if l.replaced[occ.ID] {
		marker = "✓"
	}

	context := occ.ContextBefore + occ.MatchText + occ.ContextAfter
	maxLen := l.width - len(occ.ID) - 10
	if maxLen < 20 {
		maxLen = 20
	}
	if len(context) > maxLen {
		context = context[:maxLen-3] + "..."
	}

	line := fmt.Sprintf("%s%s [%s] %s", indicator, marker, occ.ID, context)
	if index == l.selected {
		return l.styles.Selected.Render(line)
	}
	if l.replaced[occ.ID] {
		return l.styles.Success.Render(line)
	}
	return l.styles.Normal.Render(line)
}

// SetOccurrences replaces the list contents and resets selection and
// replacement markers.
func (l *OccurrenceList) SetOccurrences(occurrences []domain.Occurrence) {
	l.occurrences = occurrences
	l.replaced = make(map[string]bool)
	l.selected = 0
}

// Occurrences returns the current occurrences.
func (l *OccurrenceList) Occurrences() []domain.Occurrence {
	return l.occurrences
}

// MarkReplaced flags an occurrence as applied.
func (l *OccurrenceList) MarkReplaced(id string) {
	l.replaced[id] = true
}

// IsReplaced reports whether an occurrence has been applied.
func (l *OccurrenceList) IsReplaced(id string) bool {
	return l.replaced[id]
}

// Selected returns the index of the selected occurrence.
func (l *OccurrenceList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *OccurrenceList) SetSelected(index int) {
	if index >= 0 && index < len(l.occurrences) {
		l.selected = index
	}
}

// SelectedOccurrence returns the currently selected occurrence, or nil
// if the list is empty.
func (l *OccurrenceList) SelectedOccurrence() *domain.Occurrence {
	if len(l.occurrences) == 0 || l.selected < 0 || l.selected >= len(l.occurrences) {
		return nil
	}
	return &l.occurrences[l.selected]
}

// MoveUp moves selection up.
func (l *OccurrenceList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *OccurrenceList) MoveDown() {
	if l.selected < len(l.occurrences)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *OccurrenceList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *OccurrenceList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *OccurrenceList) Height() int {
	return l.height
}

// Count returns the number of occurrences.
func (l *OccurrenceList) Count() int {
	return len(l.occurrences)
}

// IsEmpty returns whether the list is empty.
func (l *OccurrenceList) IsEmpty() bool {
	return len(l.occurrences) == 0
}
