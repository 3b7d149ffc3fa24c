package round

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-hangman/internal/dictionary"
)

func word(raw string) dictionary.Word {
	return dictionary.MustWord(raw, dictionary.Easy)
}

func TestNewRoundInitialState(t *testing.T) {
	r := New(word("DOG"))

	if r.Status() != InProgress {
		t.Errorf("Status() = %v, expected InProgress", r.Status())
	}
	if r.WrongGuesses() != 0 {
		t.Errorf("WrongGuesses() = %d, expected 0", r.WrongGuesses())
	}
	if len(r.Guessed()) != 0 {
		t.Errorf("Guessed() = %q, expected empty", r.Guessed())
	}
	if r.RemainingGuesses() != MaxWrongGuesses {
		t.Errorf("RemainingGuesses() = %d, expected %d", r.RemainingGuesses(), MaxWrongGuesses)
	}
}

func TestRenderHiddenPlaceholderCount(t *testing.T) {
	for _, raw := range []string{"a", "test", "coucou", "Constitution", "Polymorphisme"} {
		r := New(word(raw))
		hidden := r.RenderHidden()

		if got := strings.Count(hidden, "_"); got != len(raw) {
			t.Errorf("RenderHidden(%q) = %q has %d placeholders, expected %d", raw, hidden, got, len(raw))
		}
		if hidden != strings.TrimSpace(hidden) {
			t.Errorf("RenderHidden(%q) = %q has surrounding whitespace", raw, hidden)
		}
	}
}

func TestGuessEveryLetterWins(t *testing.T) {
	for _, raw := range []string{"coucou", "Projet", "Polymorphisme"} {
		r := New(word(raw))

		// Lowercase guesses for a mixed-case word
		for _, c := range strings.ToLower(raw) {
			r.Guess(c)
		}

		expected := strings.Join(strings.Split(strings.ToUpper(raw), ""), " ")
		if r.RenderHidden() != expected {
			t.Errorf("RenderHidden() = %q, expected %q", r.RenderHidden(), expected)
		}
		if r.Status() != Won {
			t.Errorf("Status() = %v after revealing %q, expected Won", r.Status(), raw)
		}
		if r.WrongGuesses() != 0 {
			t.Errorf("WrongGuesses() = %d, expected 0", r.WrongGuesses())
		}
	}
}

func TestCatScenario(t *testing.T) {
	r := New(word("CAT"))

	steps := []struct {
		letter rune
		hidden string
		status Status
	}{
		{'C', "C _ _", InProgress},
		{'A', "C A _", InProgress},
		{'T', "C A T", Won},
	}

	for _, step := range steps {
		status := r.Guess(step.letter)
		if r.RenderHidden() != step.hidden {
			t.Errorf("after %q RenderHidden() = %q, expected %q", step.letter, r.RenderHidden(), step.hidden)
		}
		if status != step.status {
			t.Errorf("after %q Guess() = %v, expected %v", step.letter, status, step.status)
		}
	}
}

func TestDogScenarioLosesOnSixthMiss(t *testing.T) {
	r := New(word("DOG"))

	for i, letter := range []rune{'Q', 'X', 'Z', 'J', 'V', 'K'} {
		status := r.Guess(letter)

		if r.WrongGuesses() != i+1 {
			t.Errorf("after %q WrongGuesses() = %d, expected %d", letter, r.WrongGuesses(), i+1)
		}

		expected := InProgress
		if i == 5 {
			expected = Lost
		}
		if status != expected {
			t.Errorf("after miss %d Guess() = %v, expected %v", i+1, status, expected)
		}
	}
}

func TestGuessAfterLossDoesNotOverflow(t *testing.T) {
	r := New(word("DOG"))
	for _, letter := range "QXZJVK" {
		r.Guess(letter)
	}

	if r.Guess('W') != Lost {
		t.Error("Guess() after loss should keep Lost")
	}
	if r.WrongGuesses() != MaxWrongGuesses {
		t.Errorf("WrongGuesses() = %d after extra miss, expected %d", r.WrongGuesses(), MaxWrongGuesses)
	}
	if r.HasGuessed('W') {
		t.Error("Guess() after loss should not record the letter")
	}
	if r.RemainingGuesses() != 0 {
		t.Errorf("RemainingGuesses() = %d, expected 0", r.RemainingGuesses())
	}
}

func TestRepeatedWrongGuessCountsAgain(t *testing.T) {
	r := New(word("DOG"))

	r.Guess('Z')
	r.Guess('z')

	if r.WrongGuesses() != 2 {
		t.Errorf("WrongGuesses() = %d, expected 2 for a repeated miss", r.WrongGuesses())
	}
	if len(r.Guessed()) != 1 {
		t.Errorf("Guessed() = %q, expected a single entry", r.Guessed())
	}
}

func TestRepeatedCorrectGuessIsNoop(t *testing.T) {
	r := New(word("DOG"))

	r.Guess('D')
	r.Guess('d')

	if r.WrongGuesses() != 0 {
		t.Errorf("WrongGuesses() = %d, expected 0", r.WrongGuesses())
	}
	if r.RenderHidden() != "D _ _" {
		t.Errorf("RenderHidden() = %q, expected %q", r.RenderHidden(), "D _ _")
	}
}

func TestHasGuessedIncludesMisses(t *testing.T) {
	r := New(word("DOG"))
	r.Guess('o')
	r.Guess('q')

	if !r.HasGuessed('O') || !r.HasGuessed('Q') || !r.HasGuessed('q') {
		t.Error("HasGuessed should report hits and misses case-insensitively")
	}
	if r.HasGuessed('D') {
		t.Error("HasGuessed('D') should be false")
	}

	missed := r.Missed()
	if len(missed) != 1 || missed[0] != 'Q' {
		t.Errorf("Missed() = %q, expected [Q]", missed)
	}
}

func TestResetLeavesTerminalState(t *testing.T) {
	r := New(word("A"))
	r.Guess('A')
	if r.Status() != Won {
		t.Fatalf("Status() = %v, expected Won", r.Status())
	}

	r.Reset(word("BEE"))

	if r.Status() != InProgress {
		t.Errorf("Status() after Reset = %v, expected InProgress", r.Status())
	}
	if r.RenderHidden() != "_ _ _" {
		t.Errorf("RenderHidden() after Reset = %q, expected %q", r.RenderHidden(), "_ _ _")
	}
	if len(r.Guessed()) != 0 || r.WrongGuesses() != 0 {
		t.Error("Reset should clear guesses and counter")
	}
}

func TestGuessWithoutWordIsIgnored(t *testing.T) {
	r := New(dictionary.Word{})

	if r.Guess('A') != InProgress {
		t.Error("Guess() without word should report InProgress")
	}
	if r.WrongGuesses() != 0 || r.HasGuessed('A') {
		t.Error("Guess() without word should not change state")
	}
	if r.RenderHidden() != "" {
		t.Errorf("RenderHidden() without word = %q, expected empty", r.RenderHidden())
	}
}

func TestRestore(t *testing.T) {
	r, err := Restore(word("DOG"), []rune{'d', 'x'}, 1)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	if r.RenderHidden() != "D _ _" {
		t.Errorf("RenderHidden() = %q, expected %q", r.RenderHidden(), "D _ _")
	}
	if r.WrongGuesses() != 1 {
		t.Errorf("WrongGuesses() = %d, expected 1", r.WrongGuesses())
	}

	if _, err := Restore(word("DOG"), nil, MaxWrongGuesses+1); err == nil {
		t.Error("Restore() should reject a counter above the tolerance")
	}
	if _, err := Restore(word("DOG"), nil, -1); err == nil {
		t.Error("Restore() should reject a negative counter")
	}
}

func TestSnapshot(t *testing.T) {
	r := New(dictionary.MustWord("Object", dictionary.Medium))
	r.Guess('o')
	r.Guess('z')

	snap := r.Snapshot()
	if snap.Word != "Object" || snap.Difficulty != dictionary.Medium {
		t.Errorf("Snapshot word = %q/%v, expected Object/Medium", snap.Word, snap.Difficulty)
	}
	if snap.Hidden != "O _ _ _ _ _" {
		t.Errorf("Snapshot hidden = %q", snap.Hidden)
	}
	if snap.Wrong != 1 || snap.Max != MaxWrongGuesses {
		t.Errorf("Snapshot wrong = %d/%d, expected 1/%d", snap.Wrong, snap.Max, MaxWrongGuesses)
	}
	if snap.Status != InProgress {
		t.Errorf("Snapshot status = %v, expected InProgress", snap.Status)
	}
}
