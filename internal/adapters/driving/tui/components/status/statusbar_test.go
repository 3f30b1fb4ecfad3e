package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	b := NewBar(nil, nil)
	require.NotNil(t, b)

	assert.Equal(t, StateReady, b.State())
	assert.Empty(t, b.Message())
	assert.Zero(t, b.ResultCount())
}

func TestBar_States(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)

	t.Run("ready", func(t *testing.T) {
		assert.Contains(t, b.View(), "Ready")
	})

	t.Run("searching", func(t *testing.T) {
		b.SetState(StateSearching)
		assert.Contains(t, b.View(), "Searching...")
	})

	t.Run("replacing", func(t *testing.T) {
		b.SetState(StateReplacing)
		assert.Contains(t, b.View(), "Replacing...")
	})

	t.Run("error with message", func(t *testing.T) {
		b.SetState(StateError)
		b.SetMessage("boom")
		assert.Contains(t, b.View(), "Error: boom")
	})

	t.Run("results show occurrence count", func(t *testing.T) {
		b.SetMessage("")
		b.SetState(StateResults)
		b.SetResultCount(7)
		assert.Contains(t, b.View(), "7 occurrences")
	})

	t.Run("results message wins over count", func(t *testing.T) {
		b.SetMessage("Replaced occ-000001")
		assert.Contains(t, b.View(), "Replaced occ-000001")
	})
}

func TestBar_Hints(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(200)

	t.Run("input hints by default", func(t *testing.T) {
		assert.Contains(t, b.View(), "tab: switch field")
	})

	t.Run("results hints with occurrences", func(t *testing.T) {
		b.SetState(StateResults)
		b.SetResultCount(3)
		assert.Contains(t, b.View(), "a: replace all")
	})
}

func TestBar_Clear(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetState(StateError)
	b.SetMessage("boom")
	b.SetResultCount(5)

	b.Clear()

	assert.Equal(t, StateReady, b.State())
	assert.Empty(t, b.Message())
	assert.Zero(t, b.ResultCount())
}
