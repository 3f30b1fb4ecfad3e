package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/messages"
)

func validPorts() *Ports {
	return &Ports{Search: stubSearchService{}, Replace: stubReplaceService{}}
}

func TestNewApp(t *testing.T) {
	t.Run("valid ports", func(t *testing.T) {
		app, err := NewApp(validPorts(), "/docs")
		require.NoError(t, err)
		require.NotNil(t, app)
		assert.False(t, app.Ready())
	})

	t.Run("empty dir defaults to current directory", func(t *testing.T) {
		app, err := NewApp(validPorts(), "")
		require.NoError(t, err)
		require.NotNil(t, app)
	})

	t.Run("invalid ports", func(t *testing.T) {
		app, err := NewApp(&Ports{}, "/docs")
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})
}

func TestApp_WithContext(t *testing.T) {
	app, err := NewApp(validPorts(), "/docs")
	require.NoError(t, err)

	got := app.WithContext(context.Background())
	assert.Same(t, app, got)
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(validPorts(), "/docs")
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)

	updated, ok := model.(*App)
	require.True(t, ok)
	assert.True(t, updated.Ready())
}

func TestApp_Quit(t *testing.T) {
	t.Run("ctrl+c", func(t *testing.T) {
		app, err := NewApp(validPorts(), "/docs")
		require.NoError(t, err)

		_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("quit message", func(t *testing.T) {
		app, err := NewApp(validPorts(), "/docs")
		require.NoError(t, err)

		_, cmd := app.Update(messages.Quit{})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestApp_View(t *testing.T) {
	app, err := NewApp(validPorts(), "/docs")
	require.NoError(t, err)

	t.Run("before sizing", func(t *testing.T) {
		assert.Equal(t, "Initialising...", app.View())
	})

	t.Run("after sizing", func(t *testing.T) {
		app.SetDimensions(120, 40)
		view := app.View()
		assert.Contains(t, view, "Restitch")
		assert.Contains(t, view, "/docs")
	})
}

func TestApp_Init(t *testing.T) {
	app, err := NewApp(validPorts(), "/docs")
	require.NoError(t, err)
	assert.NotNil(t, app.Init())
}
