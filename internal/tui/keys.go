package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Root    key.Binding
	Browse  key.Binding
	History key.Binding
	Shared  key.Binding
	Search  key.Binding
	Filter  key.Binding
	Escape  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "open/play"),
		),
		Back: key.NewBinding(
			key.WithKeys("h", "backspace"),
			key.WithHelp("h/⌫", "back"),
		),
		Root: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "root"),
		),
		Browse: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "browse"),
		),
		History: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "history"),
		),
		Shared: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "shared"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "smart search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
