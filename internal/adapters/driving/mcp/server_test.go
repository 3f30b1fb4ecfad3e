package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("requires search service", func(t *testing.T) {
		_, err := NewServer(&Ports{Replace: &mockReplaceService{}})
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("requires replace service", func(t *testing.T) {
		_, err := NewServer(&Ports{Search: &mockSearchService{}})
		assert.ErrorIs(t, err, ErrMissingReplaceService)
	})

	t.Run("creates server with valid ports", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search:  &mockSearchService{},
			Replace: &mockReplaceService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}
