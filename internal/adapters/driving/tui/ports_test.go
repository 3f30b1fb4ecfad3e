package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// stubSearchService is a minimal driving.SearchService for wiring tests.
type stubSearchService struct{}

func (stubSearchService) Search(context.Context, string, string, domain.SearchOptions) (*domain.SearchSummary, error) {
	return &domain.SearchSummary{}, nil
}

func (stubSearchService) Validate(_ context.Context, root string) (*domain.DirectoryInfo, error) {
	return &domain.DirectoryInfo{Path: root}, nil
}

func (stubSearchService) Results(context.Context) (*domain.SearchSummary, error) {
	return &domain.SearchSummary{}, nil
}

// stubReplaceService is a minimal driving.ReplaceService for wiring tests.
type stubReplaceService struct{}

func (stubReplaceService) ReplaceOne(context.Context, string, string) error {
	return nil
}

func (stubReplaceService) ReplaceMany(context.Context, []domain.ReplaceRequest) (*domain.ReplaceSummary, error) {
	return &domain.ReplaceSummary{}, nil
}

func (stubReplaceService) History(context.Context, int) ([]domain.ReplacementRecord, error) {
	return nil, nil
}

func TestNewPorts(t *testing.T) {
	p := NewPorts(stubSearchService{}, stubReplaceService{})
	require.NotNil(t, p)
	assert.NotNil(t, p.Search)
	assert.NotNil(t, p.Replace)
}

func TestPorts_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := &Ports{Search: stubSearchService{}, Replace: stubReplaceService{}}
		assert.NoError(t, p.Validate())
	})

	t.Run("missing search service", func(t *testing.T) {
		p := &Ports{Replace: stubReplaceService{}}
		assert.ErrorIs(t, p.Validate(), ErrMissingSearchService)
	})

	t.Run("missing replace service", func(t *testing.T) {
		p := &Ports{Search: stubSearchService{}}
		assert.ErrorIs(t, p.Validate(), ErrMissingReplaceService)
	})
}
