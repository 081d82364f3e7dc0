package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shatter/internal/core"
)

// KeyMap holds the key bindings of the game screen.
// It implements help.KeyMap for the footer.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Fire    key.Binding
	Restart key.Binding
	Respawn key.Binding
	Pause   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns bindings for the one-line footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fire, k.Restart, k.Respawn, k.Pause, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Fire, k.Restart, k.Respawn},
		{k.Pause, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings. Movement uses WASD, with
// arrows as an alternative.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("click/space", "fire"),
		),
		Restart: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "new round"),
		),
		Respawn: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "respawn"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Respawn):
		return core.ActionRespawn
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

// MouseFires reports whether a mouse message is a fire click.
// Left and right buttons both fire.
func MouseFires(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress {
		return false
	}
	return msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonRight
}
