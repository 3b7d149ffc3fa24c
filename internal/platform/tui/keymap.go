package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hangman/internal/core"
)

// GameKeyMap defines the key bindings of the game board.
type GameKeyMap struct {
	Guess  key.Binding
	Pick   key.Binding
	Reset  key.Binding
	Save   key.Binding
	SaveAs key.Binding
	Load   key.Binding
	Admin  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Guess, k.Pick, k.Reset, k.Save, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Guess, k.Pick, k.Reset},
		{k.Save, k.SaveAs, k.Load},
		{k.Admin, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Guess: key.NewBinding(
			key.WithKeys(letterKeys()...),
			key.WithHelp("a-z", "guess"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1/2/3", "next difficulty"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("^n", "new word"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "save"),
		),
		SaveAs: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("^a", "save as"),
		),
		Load: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("^o", "load"),
		),
		Admin: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("^w", "words"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^c", "quit"),
		),
	}
}

// letterKeys lists a-z and A-Z.
func letterKeys() []string {
	keys := make([]string, 0, 52)
	for r := 'a'; r <= 'z'; r++ {
		keys = append(keys, string(r), string(r-'a'+'A'))
	}
	return keys
}

// KeyMapper translates Bubble Tea key messages to game inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game input.
// Unbound keys yield an input with ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Input {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.Input{Action: core.ActionQuit}
	case key.Matches(msg, km.keys.Back):
		return core.Input{Action: core.ActionBack}
	case key.Matches(msg, km.keys.Reset):
		return core.Input{Action: core.ActionReset}
	case key.Matches(msg, km.keys.Save):
		return core.Input{Action: core.ActionSave}
	case key.Matches(msg, km.keys.SaveAs):
		return core.Input{Action: core.ActionSaveAs}
	case key.Matches(msg, km.keys.Load):
		return core.Input{Action: core.ActionLoad}
	case key.Matches(msg, km.keys.Admin):
		return core.Input{Action: core.ActionAdmin}
	case key.Matches(msg, km.keys.Pick):
		return core.Input{Action: core.ActionPick, Choice: int(msg.Runes[0] - '1')}
	case key.Matches(msg, km.keys.Guess):
		return core.GuessInput(msg.Runes[0])
	}
	return core.Input{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
