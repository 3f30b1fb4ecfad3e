package mcp

import (
	"context"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// mockSearchService is a test double for driving.SearchService.
type mockSearchService struct {
	summary    *domain.SearchSummary
	info       *domain.DirectoryInfo
	err        error
	lastRoot   string
	lastTerm   string
	lastOpts   domain.SearchOptions
	resultsErr error
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
	if m.resultsErr != nil {
		return nil, m.resultsErr
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
