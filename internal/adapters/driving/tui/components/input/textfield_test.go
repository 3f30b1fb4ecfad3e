package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextField(t *testing.T) {
	f := NewTextField(nil, "Find", "Text to find...")
	require.NotNil(t, f)

	assert.Equal(t, "Find", f.Label())
	assert.Empty(t, f.Value())
	assert.False(t, f.Focused())
}

func TestTextField_Typing(t *testing.T) {
	f := NewTextField(nil, "Find", "")
	f.Focus()
	require.True(t, f.Focused())

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello")})
	assert.Equal(t, "hello", f.Value())
}

func TestTextField_SetValue(t *testing.T) {
	f := NewTextField(nil, "Replace", "")
	f.SetValue("new text")
	assert.Equal(t, "new text", f.Value())

	f.Reset()
	assert.Empty(t, f.Value())
}

func TestTextField_FocusBlur(t *testing.T) {
	f := NewTextField(nil, "Find", "")

	f.Focus()
	assert.True(t, f.Focused())

	f.Blur()
	assert.False(t, f.Focused())
}

func TestTextField_SetWidth(t *testing.T) {
	f := NewTextField(nil, "Find", "")

	f.SetWidth(100)
	assert.Equal(t, 100, f.Width())

	// Narrow widths clamp the inner input rather than going negative.
	f.SetWidth(5)
	assert.Equal(t, 5, f.Width())
}

func TestTextField_View(t *testing.T) {
	f := NewTextField(nil, "Find", "Text to find...")
	view := f.View()
	assert.Contains(t, view, "Find")
}
