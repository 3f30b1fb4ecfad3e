package cli

import (
	"context"
	"testing"

	"github.com/halcyon-labs/restitch/internal/core/domain"
	"github.com/halcyon-labs/restitch/internal/core/ports/driving"
)

// mockSearchService is a test double for driving.SearchService.
type mockSearchService struct {
	summary  *domain.SearchSummary
	info     *domain.DirectoryInfo
	err      error
	lastRoot string
	lastTerm string
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, root, term string, opts domain.SearchOptions) (*domain.SearchSummary, error) {
	m.lastRoot = root
	m.lastTerm = term
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockSearchService) Validate(_ context.Context, root string) (*domain.DirectoryInfo, error) {
	m.lastRoot = root
	if m.err != nil {
		return nil, m.err
	}
	return m.info, nil
}

func (m *mockSearchService) Results(context.Context) (*domain.SearchSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

// mockReplaceService is a test double for driving.ReplaceService.
type mockReplaceService struct {
	summary      *domain.ReplaceSummary
	records      []domain.ReplacementRecord
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

func (m *mockReplaceService) History(_ context.Context, _ int) ([]domain.ReplacementRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

// withServices swaps the package-level services for the test's
// lifetime.
func withServices(t *testing.T, search driving.SearchService, replace driving.ReplaceService) {
	t.Helper()
	origSearch, origReplace := searchService, replaceService
	searchService, replaceService = search, replace
	t.Cleanup(func() {
		searchService, replaceService = origSearch, origReplace
	})
}
