// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// TogglePalette opens or closes the action palette.
	TogglePalette key.Binding

	// Close leaves the palette or settings, or clears the query.
	Close key.Binding

	// Up moves the focused list up.
	Up key.Binding

	// Down moves the focused list down.
	Down key.Binding

	// Confirm submits the query or runs the highlighted entry.
	Confirm key.Binding

	// AcceptSuggestion completes the query with the suggestion.
	AcceptSuggestion key.Binding

	// SwitchFocus moves focus between the query and the file list.
	SwitchFocus key.Binding

	// FocusSearch returns from the file list to the query.
	FocusSearch key.Binding

	// Settings opens the integrations menu.
	Settings key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		TogglePalette: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "actions"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		AcceptSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "switch focus"),
		),
		FocusSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "integrations"),
		),
	}
}

// SearchHelp returns the hints shown while typing a query.
func (k *KeyMap) SearchHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.AcceptSuggestion, k.TogglePalette, k.Settings, k.Quit}
}

// ResultsHelp returns the hints shown while the file list has focus.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.FocusSearch, k.Quit}
}

// PaletteHelp returns the hints shown while the palette is open.
func (k *KeyMap) PaletteHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Close}
}

// SettingsHelp returns the hints shown in the integrations menu.
func (k *KeyMap) SettingsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Close}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Confirm},
		{k.TogglePalette, k.Close, k.AcceptSuggestion},
		{k.SwitchFocus, k.FocusSearch, k.Settings, k.Quit},
	}
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
