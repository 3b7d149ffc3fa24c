// Package round implements the state machine of a single hangman round:
// the hidden word, the letters guessed so far and the wrong-guess counter.
//
// Guess never fails. It is a total function over the round state, and a
// round that is already won or lost ignores further guesses.
package round

import (
	"fmt"
	"unicode"

	"github.com/vovakirdan/tui-hangman/internal/dictionary"
)

// MaxWrongGuesses is the wrong-guess tolerance. The round is lost when the
// counter reaches it.
const MaxWrongGuesses = 6

// Status is the derived state of a round.
type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round is over.
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// Round holds the state of one round.
type Round struct {
	word    dictionary.Word
	guessed []rune // first-guess order, for stable encoding
	seen    map[rune]bool
	wrong   int
}

// New creates a fresh in-progress round for word.
func New(word dictionary.Word) *Round {
	r := &Round{}
	r.Reset(word)
	return r
}

// Restore rebuilds a round from persisted fields.
// Letters are canonicalized and de-duplicated; the counter must be in range.
func Restore(word dictionary.Word, guessed []rune, wrong int) (*Round, error) {
	if wrong < 0 || wrong > MaxWrongGuesses {
		return nil, fmt.Errorf("round: wrong guess count %d out of range [0, %d]", wrong, MaxWrongGuesses)
	}

	r := New(word)
	for _, letter := range guessed {
		r.record(unicode.ToUpper(letter))
	}
	r.wrong = wrong
	return r, nil
}

// Reset clears the guesses and the counter and assigns a new word.
// It is the only way out of Won or Lost.
func (r *Round) Reset(word dictionary.Word) {
	r.word = word
	r.guessed = nil
	r.seen = make(map[rune]bool)
	r.wrong = 0
}

// Guess applies one letter and returns the resulting status.
//
// Every letter is recorded so HasGuessed also answers for misses. A repeated
// wrong letter counts again; callers check HasGuessed first to avoid that.
// Without a word, or once the round is over, the guess is ignored.
func (r *Round) Guess(letter rune) Status {
	if r.word.IsZero() || r.Status().Terminal() {
		return r.Status()
	}

	letter = unicode.ToUpper(letter)
	r.record(letter)

	if !r.word.Contains(letter) && r.wrong < MaxWrongGuesses {
		r.wrong++
	}
	return r.Status()
}

// record adds letter to the guessed set.
func (r *Round) record(letter rune) {
	if r.seen == nil {
		r.seen = make(map[rune]bool)
	}
	if r.seen[letter] {
		return
	}
	r.seen[letter] = true
	r.guessed = append(r.guessed, letter)
}

// HasGuessed reports whether letter was already guessed, case-insensitively.
func (r *Round) HasGuessed(letter rune) bool {
	return r.seen[unicode.ToUpper(letter)]
}

// Status derives the round state from the word, the guesses and the counter.
func (r *Round) Status() Status {
	if r.word.IsZero() {
		return InProgress
	}
	if r.revealed() {
		return Won
	}
	if r.wrong >= MaxWrongGuesses {
		return Lost
	}
	return InProgress
}

// revealed reports whether every character of the word has been guessed.
func (r *Round) revealed() bool {
	for _, c := range r.word.Value() {
		if !r.seen[c] {
			return false
		}
	}
	return true
}

// RenderHidden returns the word with unguessed characters masked, e.g. "C A _".
// It is empty when the round has no word.
func (r *Round) RenderHidden() string {
	if r.word.IsZero() {
		return ""
	}
	return r.word.Hidden(func(c rune) bool { return r.seen[c] })
}

// Word returns the current word, which is zero when none is assigned.
func (r *Round) Word() dictionary.Word {
	return r.word
}

// HasWord reports whether a word is assigned.
func (r *Round) HasWord() bool {
	return !r.word.IsZero()
}

// WrongGuesses returns the wrong-guess counter.
func (r *Round) WrongGuesses() int {
	return r.wrong
}

// RemainingGuesses returns how many more misses the round tolerates.
func (r *Round) RemainingGuesses() int {
	return MaxWrongGuesses - r.wrong
}

// Guessed returns a copy of the guessed letters in first-guess order.
func (r *Round) Guessed() []rune {
	return append([]rune(nil), r.guessed...)
}

// Missed returns the guessed letters that are not in the word.
func (r *Round) Missed() []rune {
	var out []rune
	for _, letter := range r.guessed {
		if !r.word.Contains(letter) {
			out = append(out, letter)
		}
	}
	return out
}
