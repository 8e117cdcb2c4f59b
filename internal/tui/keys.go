package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the project list.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Reload key.Binding
	Filter key.Binding
	Add    key.Binding

	// Keyboard swiping
	SwipeLeft  key.Binding
	SwipeRight key.Binding
	Release    key.Binding
	Cancel     key.Binding

	// Confirmation
	Yes key.Binding
	No  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		SwipeLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "swipe left"),
		),
		SwipeRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "swipe right"),
		),
		Release: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "release"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwipeRight, k.SwipeLeft, k.Release, k.Add, k.Filter, k.Quit, k.Help}
}

// FullHelp lists every binding, grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Reload},
		{k.SwipeRight, k.SwipeLeft, k.Release, k.Cancel},
		{k.Add, k.Filter, k.Help, k.Quit},
	}
}
