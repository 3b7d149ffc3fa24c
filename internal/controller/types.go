package controller

import (
	"errors"

	"github.com/vovakirdan/tui-hangman/internal/dictionary"
	"github.com/vovakirdan/tui-hangman/internal/round"
)

// ErrCanceled is returned by a DifficultyChooser when the player backs out.
var ErrCanceled = errors.New("controller: canceled")

// ErrNoRound is returned when an operation needs an active round.
var ErrNoRound = errors.New("controller: no active round")

// DifficultyChooser delegates the difficulty decision to the view.
type DifficultyChooser interface {
	ChooseDifficulty() (dictionary.Difficulty, error)
}

// FixedDifficulty always chooses the same difficulty.
type FixedDifficulty dictionary.Difficulty

// ChooseDifficulty implements DifficultyChooser.
func (f FixedDifficulty) ChooseDifficulty() (dictionary.Difficulty, error) {
	return dictionary.Difficulty(f), nil
}

// ChooserFunc adapts a function to DifficultyChooser.
type ChooserFunc func() (dictionary.Difficulty, error)

// ChooseDifficulty implements DifficultyChooser.
func (f ChooserFunc) ChooseDifficulty() (dictionary.Difficulty, error) {
	return f()
}

// Outcome is the result of applying one guess.
type Outcome int

const (
	StillPlaying Outcome = iota
	RoundWon
	RoundLost
)

// String returns a human-readable outcome.
func (o Outcome) String() string {
	switch o {
	case StillPlaying:
		return "still playing"
	case RoundWon:
		return "won"
	case RoundLost:
		return "lost"
	default:
		return "unknown"
	}
}

// GuessResult reports an applied guess. Finished is the word of the round
// that just ended, set only for RoundWon and RoundLost.
type GuessResult struct {
	Outcome  Outcome
	Finished dictionary.Word
}

// RoundResult describes a finished round for history storage.
type RoundResult struct {
	Player     string
	Word       string
	Difficulty dictionary.Difficulty
	Won        bool
	Wrong      int
	Guesses    int
}

// ResultRecorder stores finished rounds.
// This lets the controller report results without a storage dependency.
type ResultRecorder interface {
	RecordRound(result RoundResult) error
}

// FileSelection is the answer of a file picker: a selected path or a cancel.
type FileSelection struct {
	path     string
	selected bool
}

// Selected builds a selection of path.
func Selected(path string) FileSelection {
	return FileSelection{path: path, selected: true}
}

// Canceled builds a canceled selection.
func Canceled() FileSelection {
	return FileSelection{}
}

// Path returns the selected path, and false for a canceled selection.
func (s FileSelection) Path() (string, bool) {
	return s.path, s.selected
}

// View is the render state handed to the view after every command.
type View struct {
	Player     string
	SavePath   string
	Hidden     string
	Word       string
	Difficulty dictionary.Difficulty
	Wrong      int
	Max        int
	Guessed    []rune
	Missed     []rune
	Status     round.Status
	HasRound   bool
}
