// Package dictionary provides the difficulty-tiered word bank the rounds
// draw their words from, and its flat-file persistence.
package dictionary

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Difficulty partitions the word bank and gates word selection.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties returns every difficulty in file order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// String returns the token used in the bank and save files.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Valid reports whether d is one of the three known difficulties.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// ParseDifficulty matches a file token exactly ("Easy", "Medium", "Hard").
func ParseDifficulty(token string) (Difficulty, error) {
	for _, d := range Difficulties() {
		if token == d.String() {
			return d, nil
		}
	}
	return 0, &InvalidDifficultyError{Token: token}
}

// ParseDifficultyFold matches a difficulty name in any case, for flags and prompts.
func ParseDifficultyFold(name string) (Difficulty, error) {
	for _, d := range Difficulties() {
		if strings.EqualFold(strings.TrimSpace(name), d.String()) {
			return d, nil
		}
	}
	return 0, &InvalidDifficultyError{Token: name}
}

// InvalidDifficultyError reports a difficulty tag that is not one of the
// three recognized names. In a bank file it means the file is corrupted.
type InvalidDifficultyError struct {
	Token string
	Line  int // 1-based line in the bank file, 0 when not from a file
}

func (e *InvalidDifficultyError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("dictionary: invalid difficulty %q on line %d", e.Token, e.Line)
	}
	return fmt.Sprintf("dictionary: invalid difficulty %q", e.Token)
}

// ErrInvalidWord is returned for words that are empty or contain characters
// reserved by the bank and save file formats.
var ErrInvalidWord = errors.New("dictionary: invalid word")

// reserved are the separators of the bank file ('|', '\n') and of save files (NUL).
const reserved = "|\x00\r\n"

// Word is an immutable (value, difficulty) pair.
// Letter matching uses the canonical uppercase form of the value.
// The zero Word means "no word".
type Word struct {
	raw        string
	difficulty Difficulty
}

// NewWord validates and builds a word.
func NewWord(raw string, d Difficulty) (Word, error) {
	if raw == "" || strings.ContainsAny(raw, reserved) {
		return Word{}, fmt.Errorf("%w: %q", ErrInvalidWord, raw)
	}
	if !d.Valid() {
		return Word{}, &InvalidDifficultyError{Token: d.String()}
	}
	return Word{raw: raw, difficulty: d}, nil
}

// MustWord is NewWord for literals known to be valid. It panics otherwise.
func MustWord(raw string, d Difficulty) Word {
	w, err := NewWord(raw, d)
	if err != nil {
		panic(err)
	}
	return w
}

// Raw returns the word as authored.
func (w Word) Raw() string {
	return w.raw
}

// Value returns the canonical uppercase form.
func (w Word) Value() string {
	return strings.ToUpper(w.raw)
}

// Difficulty returns the word's difficulty tag.
func (w Word) Difficulty() Difficulty {
	return w.difficulty
}

// IsZero reports whether w is the absent word.
func (w Word) IsZero() bool {
	return w.raw == ""
}

// String returns the raw value.
func (w Word) String() string {
	return w.raw
}

// Contains reports whether the canonical word contains letter, case-insensitively.
func (w Word) Contains(letter rune) bool {
	return strings.ContainsRune(w.Value(), unicode.ToUpper(letter))
}

// Hidden renders the word with every character not in visible masked by '_'.
// Characters are separated by a single space.
func (w Word) Hidden(visible func(rune) bool) string {
	var sb strings.Builder
	for i, r := range w.Value() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if visible != nil && visible(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Len returns the number of characters in the canonical word.
func (w Word) Len() int {
	return len([]rune(w.Value()))
}
