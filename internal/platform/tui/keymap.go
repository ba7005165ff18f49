package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gapbird/internal/core"
)

// KeyMap defines the key bindings for a game session.
// Every gameplay key maps to the single primary action.
type KeyMap struct {
	Primary key.Binding
	Help    key.Binding
	Scores  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Primary, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Primary},
		{k.Scores, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Primary: key.NewBinding(
			key.WithKeys(" ", "space", "up", "w", "enter"),
			key.WithHelp("space", "start/flap/restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Scores: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "leaderboard"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to an action.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Primary):
		return core.ActionPrimary
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	case key.Matches(msg, k.Scores):
		return core.ActionScores
	}
	return core.ActionNone
}
