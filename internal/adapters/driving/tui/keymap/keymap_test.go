package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	t.Run("quit binds q and ctrl+c", func(t *testing.T) {
		assert.True(t, Matches("q", km.Quit))
		assert.True(t, Matches("ctrl+c", km.Quit))
	})

	t.Run("navigation binds arrows and vim keys", func(t *testing.T) {
		assert.True(t, Matches("up", km.Up))
		assert.True(t, Matches("k", km.Up))
		assert.True(t, Matches("down", km.Down))
		assert.True(t, Matches("j", km.Down))
	})

	t.Run("replace all binds a", func(t *testing.T) {
		assert.True(t, Matches("a", km.ReplaceAll))
	})

	t.Run("switch field binds tab", func(t *testing.T) {
		assert.True(t, Matches("tab", km.SwitchField))
	})

	t.Run("no match for unbound key", func(t *testing.T) {
		assert.False(t, Matches("x", km.Quit))
	})
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	t.Run("input help is non-empty", func(t *testing.T) {
		assert.NotEmpty(t, km.InputHelp())
	})

	t.Run("results help includes replace all", func(t *testing.T) {
		bindings := km.ResultsHelp()
		found := false
		for _, b := range bindings {
			if Matches("a", b) {
				found = true
			}
		}
		assert.True(t, found)
	})
}
