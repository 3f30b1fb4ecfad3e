package replace

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/messages"
	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// mockSearchService is a test double for driving.SearchService.
type mockSearchService struct {
	summary  *domain.SearchSummary
	err      error
	lastRoot string
	lastTerm string
}

func (m *mockSearchService) Search(_ context.Context, root, term string, _ domain.SearchOptions) (*domain.SearchSummary, error) {
	m.lastRoot = root
	m.lastTerm = term
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockSearchService) Validate(_ context.Context, root string) (*domain.DirectoryInfo, error) {
	return &domain.DirectoryInfo{Path: root, Exists: true}, nil
}

func (m *mockSearchService) Results(context.Context) (*domain.SearchSummary, error) {
	return m.summary, nil
}

// mockReplaceService is a test double for driving.ReplaceService.
type mockReplaceService struct {
	summary      *domain.ReplaceSummary
	err          error
	lastID       string
	lastText     string
	lastRequests []domain.ReplaceRequest
}

func (m *mockReplaceService) ReplaceOne(_ context.Context, occurrenceID, newText string) error {
	m.lastID = occurrenceID
	m.lastText = newText
	return m.err
}

func (m *mockReplaceService) ReplaceMany(_ context.Context, requests []domain.ReplaceRequest) (*domain.ReplaceSummary, error) {
	m.lastRequests = requests
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockReplaceService) History(context.Context, int) ([]domain.ReplacementRecord, error) {
	return nil, nil
}

func summaryWith(occurrences ...domain.Occurrence) *domain.SearchSummary {
	return &domain.SearchSummary{
		TotalOccurrences: len(occurrences),
		Occurrences:      occurrences,
	}
}

// runCmd executes a command and feeds the resulting message back into
// the view, the way the Bubbletea runtime would.
func runCmd(v *View, cmd tea.Cmd) *View {
	if cmd == nil {
		return v
	}
	msg := cmd()
	v, _ = v.Update(msg)
	return v
}

func newTestView(search *mockSearchService, replace *mockReplaceService) *View {
	v := NewView(nil, nil, search, replace, "/docs")
	v.SetDimensions(120, 40)
	return v
}

func TestView_InitialFocus(t *testing.T) {
	v := newTestView(&mockSearchService{}, &mockReplaceService{})
	assert.Equal(t, FocusTerm, v.Focus())
}

func TestView_TabSwitchesFields(t *testing.T) {
	v := newTestView(&mockSearchService{}, &mockReplaceService{})

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusReplacement, v.Focus())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusTerm, v.Focus())
}

func TestView_SearchFlow(t *testing.T) {
	search := &mockSearchService{summary: summaryWith(
		domain.Occurrence{ID: "occ-000001", FilePath: "a.docx", MatchText: "old"},
		domain.Occurrence{ID: "occ-000002", FilePath: "a.docx", MatchText: "old"},
	)}
	v := newTestView(search, &mockReplaceService{})

	v.SetTerm("old")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v = runCmd(v, cmd)

	assert.Equal(t, "/docs", search.lastRoot)
	assert.Equal(t, "old", search.lastTerm)
	assert.Len(t, v.Occurrences(), 2)
	assert.Equal(t, FocusList, v.Focus())
	assert.NoError(t, v.Err())
}

func TestView_SearchWithEmptyTermDoesNothing(t *testing.T) {
	search := &mockSearchService{}
	v := newTestView(search, &mockReplaceService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, search.lastTerm)
}

func TestView_SearchWithNoMatchesKeepsInputFocus(t *testing.T) {
	search := &mockSearchService{summary: summaryWith()}
	v := newTestView(search, &mockReplaceService{})

	v.SetTerm("absent")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	assert.Equal(t, FocusTerm, v.Focus())
	assert.Empty(t, v.Occurrences())
}

func TestView_SearchError(t *testing.T) {
	search := &mockSearchService{err: errors.New("scan failed")}
	v := newTestView(search, &mockReplaceService{})

	v.SetTerm("old")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	require.Error(t, v.Err())
	assert.Contains(t, v.Err().Error(), "scan failed")
}

func TestView_ReplaceSelected(t *testing.T) {
	search := &mockSearchService{summary: summaryWith(
		domain.Occurrence{ID: "occ-000001", FilePath: "a.docx", MatchText: "old"},
		domain.Occurrence{ID: "occ-000002", FilePath: "a.docx", MatchText: "old"},
	)}
	replaceSvc := &mockReplaceService{}
	v := newTestView(search, replaceSvc)

	v.SetTerm("old")
	v.SetReplacement("new")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)
	require.Equal(t, FocusList, v.Focus())

	// Select the second occurrence and replace it.
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v = runCmd(v, cmd)

	assert.Equal(t, "occ-000002", replaceSvc.lastID)
	assert.Equal(t, "new", replaceSvc.lastText)
	assert.NoError(t, v.Err())

	// Replacing the same occurrence again is a no-op.
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestView_ReplaceSelectedError(t *testing.T) {
	search := &mockSearchService{summary: summaryWith(
		domain.Occurrence{ID: "occ-000001", FilePath: "a.docx", MatchText: "old"},
	)}
	replaceSvc := &mockReplaceService{err: domain.ErrStaleOccurrence}
	v := newTestView(search, replaceSvc)

	v.SetTerm("old")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	require.Error(t, v.Err())
	assert.ErrorIs(t, v.Err(), domain.ErrStaleOccurrence)
}

func TestView_ReplaceAll(t *testing.T) {
	search := &mockSearchService{summary: summaryWith(
		domain.Occurrence{ID: "occ-000001", FilePath: "a.docx", MatchText: "old"},
		domain.Occurrence{ID: "occ-000002", FilePath: "b.docx", MatchText: "old"},
	)}
	replaceSvc := &mockReplaceService{summary: &domain.ReplaceSummary{
		TotalProcessed: 2,
		Successful:     2,
	}}
	v := newTestView(search, replaceSvc)

	v.SetTerm("old")
	v.SetReplacement("new")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	require.NotNil(t, cmd)
	v = runCmd(v, cmd)

	require.Len(t, replaceSvc.lastRequests, 2)
	assert.Equal(t, "occ-000001", replaceSvc.lastRequests[0].OccurrenceID)
	assert.Equal(t, "new", replaceSvc.lastRequests[0].NewText)
	assert.NoError(t, v.Err())

	// Everything applied, so a second replace-all has nothing to do.
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	assert.Nil(t, cmd)
}

func TestView_ReplaceAllPartialFailure(t *testing.T) {
	search := &mockSearchService{summary: summaryWith(
		domain.Occurrence{ID: "occ-000001", FilePath: "a.docx", MatchText: "old"},
		domain.Occurrence{ID: "occ-000002", FilePath: "a.docx", MatchText: "old"},
	)}
	replaceSvc := &mockReplaceService{summary: &domain.ReplaceSummary{
		TotalProcessed: 2,
		Successful:     1,
		Failures: []domain.ReplaceFailure{
			{OccurrenceID: "occ-000002", Reason: "document changed since search"},
		},
	}}
	v := newTestView(search, replaceSvc)

	v.SetTerm("old")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	v = runCmd(v, cmd)

	// Only the failed occurrence remains for a retry.
	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	require.NotNil(t, cmd)
	runCmd(v, cmd)
	require.Len(t, replaceSvc.lastRequests, 1)
	assert.Equal(t, "occ-000002", replaceSvc.lastRequests[0].OccurrenceID)
}

func TestView_EscFromListReturnsToInput(t *testing.T) {
	search := &mockSearchService{summary: summaryWith(
		domain.Occurrence{ID: "occ-000001", FilePath: "a.docx", MatchText: "old"},
	)}
	v := newTestView(search, &mockReplaceService{})

	v.SetTerm("old")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)
	require.Equal(t, FocusList, v.Focus())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FocusTerm, v.Focus())
}

func TestView_QuitKeys(t *testing.T) {
	t.Run("q quits from the list", func(t *testing.T) {
		search := &mockSearchService{summary: summaryWith(
			domain.Occurrence{ID: "occ-000001", FilePath: "a.docx", MatchText: "old"},
		)}
		v := newTestView(search, &mockReplaceService{})
		v.SetTerm("old")
		v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
		v = runCmd(v, cmd)

		_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		require.NotNil(t, cmd)
		assert.IsType(t, messages.Quit{}, cmd())
	})

	t.Run("esc quits from the inputs", func(t *testing.T) {
		v := newTestView(&mockSearchService{}, &mockReplaceService{})
		_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.IsType(t, messages.Quit{}, cmd())
	})
}

func TestView_TypingGoesToFocusedField(t *testing.T) {
	v := newTestView(&mockSearchService{}, &mockReplaceService{})

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("old")})
	assert.Equal(t, "old", v.Term())
	assert.Empty(t, v.Replacement())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("new")})
	assert.Equal(t, "new", v.Replacement())
	assert.Equal(t, "old", v.Term())
}

func TestView_View(t *testing.T) {
	v := newTestView(&mockSearchService{}, &mockReplaceService{})

	view := v.View()
	assert.Contains(t, view, "Restitch")
	assert.Contains(t, view, "/docs")
	assert.Contains(t, view, "Find")
	assert.Contains(t, view, "Replace")
}

func TestView_Reset(t *testing.T) {
	search := &mockSearchService{summary: summaryWith(
		domain.Occurrence{ID: "occ-000001", FilePath: "a.docx", MatchText: "old"},
	)}
	v := newTestView(search, &mockReplaceService{})

	v.SetTerm("old")
	v.SetReplacement("new")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	v.Reset()

	assert.Equal(t, FocusTerm, v.Focus())
	assert.Empty(t, v.Term())
	assert.Empty(t, v.Replacement())
	assert.Empty(t, v.Occurrences())
	assert.NoError(t, v.Err())
}
