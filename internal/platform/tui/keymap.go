package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a driver-level command derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionJump
	ActionDuck
	ActionStart
	ActionReset
	ActionPause
	ActionBack
	ActionQuit
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Jump  key.Binding
	Duck  key.Binding
	Start key.Binding
	Reset key.Binding
	Pause key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Duck, k.Start, k.Pause, k.Reset, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Duck},
		{k.Start, k.Pause, k.Reset},
		{k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/↑", "jump"),
		),
		Duck: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "duck"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Resolve translates a key message to an action.
func (k KeyMap) Resolve(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return ActionQuit
	case key.Matches(msg, k.Jump):
		return ActionJump
	case key.Matches(msg, k.Duck):
		return ActionDuck
	case key.Matches(msg, k.Start):
		return ActionStart
	case key.Matches(msg, k.Reset):
		return ActionReset
	case key.Matches(msg, k.Pause):
		return ActionPause
	case key.Matches(msg, k.Back):
		return ActionBack
	}
	return ActionNone
}
