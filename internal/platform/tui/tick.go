// Package tui provides the Bubble Tea screens of the hangman game: the main
// menu, the game board, the save picker, the word admin and the statistics.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long a status message stays on the game board.
const flashDuration = 3 * time.Second

// flashClearMsg clears the status message it was scheduled for.
type flashClearMsg struct {
	id int
}

// flashClearCmd schedules the removal of flash message id.
func flashClearCmd(id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{id: id}
	})
}
