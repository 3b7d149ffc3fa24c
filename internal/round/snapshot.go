package round

import "github.com/vovakirdan/tui-hangman/internal/dictionary"

// Snapshot captures the complete round state for rendering and tests.
type Snapshot struct {
	Word       string // raw value, empty when no word is assigned
	Difficulty dictionary.Difficulty
	Hidden     string
	Guessed    []rune
	Missed     []rune
	Wrong      int
	Max        int
	Status     Status
}

// Snapshot returns the current round snapshot.
func (r *Round) Snapshot() Snapshot {
	return Snapshot{
		Word:       r.word.Raw(),
		Difficulty: r.word.Difficulty(),
		Hidden:     r.RenderHidden(),
		Guessed:    r.Guessed(),
		Missed:     r.Missed(),
		Wrong:      r.wrong,
		Max:        MaxWrongGuesses,
		Status:     r.Status(),
	}
}
