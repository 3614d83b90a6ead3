package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the terminal storefront.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding // Feature the highlighted menu entry.
	Buy     key.Binding // Buy one ticket for the featured movie.
	Refresh key.Binding // Re-fetch the catalog, keeping the featured movie.
	Quit    key.Binding
}

// DefaultKeyMap pairs vim-style navigation with the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "show movie"),
	),
	Buy: key.NewBinding(
		key.WithKeys("b", " "),
		key.WithHelp("b", "buy ticket"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Buy, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Buy, k.Refresh, k.Quit}}
}
