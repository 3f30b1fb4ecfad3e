// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back returns to the input fields from the occurrence list.
	Back key.Binding

	// Confirm submits a search from the inputs or replaces the
	// selected occurrence from the list.
	Confirm key.Binding

	// ReplaceAll replaces every occurrence of the session.
	ReplaceAll key.Binding

	// SwitchField moves focus between the term and replacement inputs.
	SwitchField key.Binding

	// Up navigates up in the occurrence list.
	Up key.Binding

	// Down navigates down in the occurrence list.
	Down key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search/replace"),
		),
		ReplaceAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "replace all"),
		),
		SwitchField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// InputHelp returns keybindings shown while the inputs have focus.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.SwitchField, k.Quit}
}

// ResultsHelp returns keybindings shown while the list has focus.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Confirm, k.ReplaceAll, k.Back, k.Quit}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
