package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigGetCommand(t *testing.T) {
	t.Run("existing key", func(t *testing.T) {
		store := newMockConfigStore()
		store.values["search.context_chars"] = 80
		withConfigStore(t, store)

		out, err := executeCommand(t, "config", "get", "search.context_chars")
		require.NoError(t, err)
		assert.Contains(t, out, "80")
	})

	t.Run("missing key", func(t *testing.T) {
		withConfigStore(t, newMockConfigStore())

		_, err := executeCommand(t, "config", "get", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not set")
	})

	t.Run("no store configured", func(t *testing.T) {
		withConfigStore(t, nil)

		_, err := executeCommand(t, "config", "get", "search.context_chars")
		require.Error(t, err)
	})
}

func TestConfigSetCommand(t *testing.T) {
	t.Run("stores typed values", func(t *testing.T) {
		store := newMockConfigStore()
		withConfigStore(t, store)

		_, err := executeCommand(t, "config", "set", "files.watch", "true")
		require.NoError(t, err)
		assert.Equal(t, true, store.values["files.watch"])

		_, err = executeCommand(t, "config", "set", "search.context_chars", "80")
		require.NoError(t, err)
		assert.Equal(t, 80, store.values["search.context_chars"])

		_, err = executeCommand(t, "config", "set", "backup.dir", "/backups")
		require.NoError(t, err)
		assert.Equal(t, "/backups", store.values["backup.dir"])
	})

	t.Run("save failure", func(t *testing.T) {
		store := newMockConfigStore()
		store.setErr = errors.New("read-only filesystem")
		withConfigStore(t, store)

		_, err := executeCommand(t, "config", "set", "backup.dir", "/backups")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read-only filesystem")
	})
}

func TestConfigPathCommand(t *testing.T) {
	store := newMockConfigStore()
	withConfigStore(t, store)

	out, err := executeCommand(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "/tmp/restitch/config.toml")
}

func TestCoerceConfigValue(t *testing.T) {
	assert.Equal(t, true, coerceConfigValue("true"))
	assert.Equal(t, false, coerceConfigValue("false"))
	assert.Equal(t, 42, coerceConfigValue("42"))
	assert.Equal(t, "42abc", coerceConfigValue("42abc"))
	assert.Equal(t, "hello", coerceConfigValue("hello"))
}
