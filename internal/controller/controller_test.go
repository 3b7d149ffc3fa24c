package controller

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-hangman/internal/dictionary"
	"github.com/vovakirdan/tui-hangman/internal/round"
	"github.com/vovakirdan/tui-hangman/internal/saves"
)

type memoryRecorder struct {
	results []RoundResult
	err     error
}

func (m *memoryRecorder) RecordRound(r RoundResult) error {
	m.results = append(m.results, r)
	return m.err
}

func setup(t *testing.T, bankContent string, chooser DifficultyChooser) (*Controller, *memoryRecorder) {
	t.Helper()
	dir := t.TempDir()

	bankPath := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(bankPath, []byte(bankContent), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	bank, err := dictionary.Load(bankPath)
	if err != nil {
		t.Fatalf("dictionary.Load failed: %v", err)
	}

	rec := &memoryRecorder{}
	c := New(bank, saves.NewStore(filepath.Join(dir, "saves"), nil), chooser, WithRecorder(rec))
	return c, rec
}

func startGame(t *testing.T, c *Controller, player string) {
	t.Helper()
	if err := c.NewGame(player); err != nil {
		t.Fatalf("NewGame(%q) failed: %v", player, err)
	}
}

func mustGuess(t *testing.T, c *Controller, letter rune) GuessResult {
	t.Helper()
	res, err := c.ApplyGuess(letter)
	if err != nil {
		t.Fatalf("ApplyGuess(%q) failed: %v", letter, err)
	}
	return res
}

func TestNewGameStartsRound(t *testing.T) {
	c, _ := setup(t, "Easy|CAT\n", FixedDifficulty(dictionary.Easy))

	if err := c.NewGame("alice"); err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}

	v := c.View()
	if v.Player != "alice" {
		t.Errorf("Player = %q, expected alice", v.Player)
	}
	if !v.HasRound || v.Word != "CAT" || v.Hidden != "_ _ _" {
		t.Errorf("View() = %+v, expected fresh CAT round", v)
	}
	if filepath.Base(v.SavePath) != "alice"+saves.Suffix {
		t.Errorf("SavePath = %q, expected alice save file", v.SavePath)
	}
	if _, err := os.Stat(v.SavePath); err != nil {
		t.Errorf("save file should exist: %v", err)
	}
}

func TestApplyGuessWinResetsRound(t *testing.T) {
	c, rec := setup(t, "Easy|CAT\n", FixedDifficulty(dictionary.Easy))
	startGame(t, c, "bob")

	var res GuessResult
	for _, letter := range []rune{'c', 'a', 't'} {
		var err error
		res, err = c.ApplyGuess(letter)
		if err != nil {
			t.Fatalf("ApplyGuess(%q) failed: %v", letter, err)
		}
	}

	if res.Outcome != RoundWon {
		t.Errorf("Outcome = %v, expected RoundWon", res.Outcome)
	}
	if res.Finished.Raw() != "CAT" {
		t.Errorf("Finished = %q, expected CAT", res.Finished.Raw())
	}

	// Auto-reset after the round ends
	v := c.View()
	if v.Status != round.InProgress || v.Hidden != "_ _ _" || len(v.Guessed) != 0 {
		t.Errorf("View() after win = %+v, expected a fresh round", v)
	}

	if len(rec.results) != 1 {
		t.Fatalf("recorded %d results, expected 1", len(rec.results))
	}
	if r := rec.results[0]; !r.Won || r.Player != "bob" || r.Word != "CAT" || r.Guesses != 3 {
		t.Errorf("recorded %+v, expected bob's CAT win in 3 guesses", r)
	}
}

func TestApplyGuessLossOnSixthMiss(t *testing.T) {
	c, rec := setup(t, "Easy|DOG\n", FixedDifficulty(dictionary.Easy))
	startGame(t, c, "carol")

	for i, letter := range []rune{'Q', 'X', 'Z', 'J', 'V'} {
		res := mustGuess(t, c, letter)
		if res.Outcome != StillPlaying {
			t.Fatalf("miss %d outcome = %v, expected StillPlaying", i+1, res.Outcome)
		}
		if c.View().Wrong != i+1 {
			t.Errorf("Wrong = %d, expected %d", c.View().Wrong, i+1)
		}
	}

	res, err := c.ApplyGuess('K')
	if err != nil {
		t.Fatalf("ApplyGuess failed: %v", err)
	}
	if res.Outcome != RoundLost {
		t.Errorf("Outcome = %v, expected RoundLost", res.Outcome)
	}
	if len(rec.results) != 1 || rec.results[0].Won || rec.results[0].Wrong != round.MaxWrongGuesses {
		t.Errorf("recorded %+v, expected one loss with %d misses", rec.results, round.MaxWrongGuesses)
	}
	if c.View().Wrong != 0 {
		t.Error("round should reset after a loss")
	}
}

func TestRecorderFailureDoesNotBlockPlay(t *testing.T) {
	c, rec := setup(t, "Easy|A\n", FixedDifficulty(dictionary.Easy))
	rec.err = errors.New("disk full")
	startGame(t, c, "dan")

	res, err := c.ApplyGuess('A')
	if err != nil {
		t.Fatalf("ApplyGuess failed: %v", err)
	}
	if res.Outcome != RoundWon {
		t.Errorf("Outcome = %v, expected RoundWon", res.Outcome)
	}
}

func TestStartNewRoundEmptyPartition(t *testing.T) {
	c, _ := setup(t, "Easy|CAT\n", FixedDifficulty(dictionary.Easy))
	startGame(t, c, "erin")
	mustGuess(t, c, 'C')

	err := c.StartNewRound(dictionary.Hard)
	if !errors.Is(err, dictionary.ErrEmptyPartition) {
		t.Fatalf("StartNewRound(Hard) error = %v, expected ErrEmptyPartition", err)
	}

	// The current round is left untouched
	if c.View().Hidden != "C _ _" {
		t.Errorf("Hidden = %q, expected the existing round", c.View().Hidden)
	}
}

func TestNewGameEmptyPartition(t *testing.T) {
	c, _ := setup(t, "Easy|CAT\n", FixedDifficulty(dictionary.Medium))

	err := c.NewGame("frank")
	if !errors.Is(err, dictionary.ErrEmptyPartition) {
		t.Errorf("NewGame() error = %v, expected ErrEmptyPartition", err)
	}
}

func TestChooserCanceled(t *testing.T) {
	canceled := ChooserFunc(func() (dictionary.Difficulty, error) {
		return 0, ErrCanceled
	})
	c, _ := setup(t, "Easy|CAT\n", canceled)

	if err := c.NewGame("gina"); !errors.Is(err, ErrCanceled) {
		t.Errorf("NewGame() error = %v, expected ErrCanceled", err)
	}
	if c.View().HasRound {
		t.Error("no round should start when the chooser is canceled")
	}
}

func TestFailedResetDoesNotReplayFinishedRound(t *testing.T) {
	next := dictionary.Easy
	chooser := ChooserFunc(func() (dictionary.Difficulty, error) {
		return next, nil
	})
	c, rec := setup(t, "Easy|CAT\n", chooser)
	startGame(t, c, "kim")

	// The next round asks for an empty difficulty
	next = dictionary.Hard
	mustGuess(t, c, 'C')
	mustGuess(t, c, 'A')
	res, err := c.ApplyGuess('T')
	if res.Outcome != RoundWon {
		t.Errorf("Outcome = %v, expected RoundWon", res.Outcome)
	}
	if !errors.Is(err, dictionary.ErrEmptyPartition) {
		t.Fatalf("ApplyGuess(T) error = %v, expected ErrEmptyPartition", err)
	}

	for _, letter := range []rune{'X', 'Y'} {
		res, err := c.ApplyGuess(letter)
		if res.Outcome != StillPlaying {
			t.Errorf("ApplyGuess(%q) outcome = %v, expected StillPlaying", letter, res.Outcome)
		}
		if !errors.Is(err, ErrNoRound) || !errors.Is(err, dictionary.ErrEmptyPartition) {
			t.Errorf("ApplyGuess(%q) error = %v, expected ErrNoRound wrapping ErrEmptyPartition", letter, err)
		}
	}
	if len(rec.results) != 1 {
		t.Fatalf("recorded %d results, expected 1", len(rec.results))
	}
	if c.HasGuessed('C') {
		t.Error("letters of the finished round should not count as played")
	}

	// Once a word is available the letter goes to the new round
	next = dictionary.Easy
	res = mustGuess(t, c, 'C')
	if res.Outcome != StillPlaying {
		t.Errorf("Outcome = %v, expected StillPlaying", res.Outcome)
	}
	if v := c.View(); v.Hidden != "C _ _" || v.Status != round.InProgress {
		t.Errorf("View() = %q/%v, expected \"C _ _\" in progress", v.Hidden, v.Status)
	}
	if len(rec.results) != 1 {
		t.Errorf("recorded %d results, expected 1", len(rec.results))
	}
}

func TestLoadFinishedSaveStartsNewRound(t *testing.T) {
	saved := map[string]string{
		"lost": "quinn\x00DOG\x00Easy\x00Q:X:Z:J:V:K\x006",
		"won":  "quinn\x00DOG\x00Easy\x00D:O:G\x000",
	}
	for name, content := range saved {
		c, rec := setup(t, "Easy|CAT\n", FixedDifficulty(dictionary.Easy))
		if err := c.Saves().EnsureDir(); err != nil {
			t.Fatalf("EnsureDir() failed: %v", err)
		}
		path := c.Saves().PathFor("quinn")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		if err := c.LoadFrom(path); err != nil {
			t.Fatalf("%s: LoadFrom() failed: %v", name, err)
		}
		v := c.View()
		if v.Player != "quinn" || v.Word != "CAT" || v.Wrong != 0 || v.Status != round.InProgress {
			t.Errorf("%s: View() = %+v, expected a fresh CAT round for quinn", name, v)
		}

		res := mustGuess(t, c, 'C')
		if res.Outcome != StillPlaying || c.View().Hidden != "C _ _" {
			t.Errorf("%s: guess after load = %v/%q, expected the letter applied", name, res.Outcome, c.View().Hidden)
		}
		if len(rec.results) != 0 {
			t.Errorf("%s: recorded %+v, expected nothing for a loaded round", name, rec.results)
		}
	}
}

func TestNewGameRejectsInvalidPlayer(t *testing.T) {
	c, _ := setup(t, "Easy|CAT\n", FixedDifficulty(dictionary.Easy))

	for _, name := range []string{"", "../evil", "a/b", "a\x00b"} {
		if err := c.NewGame(name); !errors.Is(err, saves.ErrInvalidPlayer) {
			t.Errorf("NewGame(%q) error = %v, expected ErrInvalidPlayer", name, err)
		}
	}
	if c.View().HasRound {
		t.Error("no session should start for an invalid player")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(c.Saves().Dir()), "evil"+saves.Suffix)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("no file should be created outside the saves directory, stat error = %v", err)
	}
}

func TestApplyGuessWithoutRound(t *testing.T) {
	c, _ := setup(t, "Easy|CAT\n", FixedDifficulty(dictionary.Easy))

	if _, err := c.ApplyGuess('A'); !errors.Is(err, ErrNoRound) {
		t.Errorf("ApplyGuess() error = %v, expected ErrNoRound", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	c, _ := setup(t, "Easy|DOG\n", FixedDifficulty(dictionary.Easy))
	startGame(t, c, "henry")
	mustGuess(t, c, 'O')
	mustGuess(t, c, 'Z')

	if err := c.SaveCurrent(); err != nil {
		t.Fatalf("SaveCurrent() failed: %v", err)
	}

	// A second controller resumes the saved round
	other := New(c.Bank(), c.Saves(), FixedDifficulty(dictionary.Easy))
	if err := other.NewGame("henry"); err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}

	v := other.View()
	if v.Hidden != "_ O _" || v.Wrong != 1 {
		t.Errorf("resumed View() = %q/%d, expected \"_ O _\"/1", v.Hidden, v.Wrong)
	}
	if !other.HasGuessed('z') {
		t.Error("resumed round should remember the miss")
	}
}

func TestSaveAsSelection(t *testing.T) {
	c, _ := setup(t, "Easy|DOG\n", FixedDifficulty(dictionary.Easy))
	startGame(t, c, "ivy")

	// Canceled is a no-op
	before := c.View().SavePath
	if err := c.SaveAs(Canceled()); err != nil {
		t.Fatalf("SaveAs(Canceled) failed: %v", err)
	}
	if c.View().SavePath != before {
		t.Error("SaveAs(Canceled) changed the save path")
	}

	target := filepath.Join(c.Saves().Dir(), "backup"+saves.Suffix)
	if err := c.SaveAs(Selected(target)); err != nil {
		t.Fatalf("SaveAs() failed: %v", err)
	}
	if c.View().SavePath != target {
		t.Errorf("SavePath = %q, expected %q", c.View().SavePath, target)
	}

	rec, err := c.Saves().Load(target)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if rec.Player != "ivy" || rec.Word.Raw() != "DOG" {
		t.Errorf("saved record = %+v, expected ivy/DOG", rec)
	}
}

func TestLoadSelection(t *testing.T) {
	c, _ := setup(t, "Easy|DOG\n", FixedDifficulty(dictionary.Easy))

	if err := c.Load(Canceled()); err != nil {
		t.Fatalf("Load(Canceled) failed: %v", err)
	}
	if c.View().HasRound {
		t.Error("Load(Canceled) should not start a session")
	}

	path := filepath.Join(c.Saves().Dir(), "jack"+saves.Suffix)
	if err := c.Saves().EnsureDir(); err != nil {
		t.Fatalf("EnsureDir() failed: %v", err)
	}
	if _, err := c.Saves().Create(path); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := c.Load(Selected(path)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if c.Player() != "jack" || !c.View().HasRound {
		t.Errorf("Load() session = %q/%v, expected jack with a round", c.Player(), c.View().HasRound)
	}
}

func TestAddRemoveWordPersists(t *testing.T) {
	c, _ := setup(t, "Easy|DOG\n", FixedDifficulty(dictionary.Easy))

	if err := c.AddWord("Ocean", dictionary.Medium); err != nil {
		t.Fatalf("AddWord() failed: %v", err)
	}
	if err := c.AddWord("bad|word", dictionary.Medium); !errors.Is(err, dictionary.ErrInvalidWord) {
		t.Errorf("AddWord(bad|word) error = %v, expected ErrInvalidWord", err)
	}

	reloaded, err := dictionary.Load(c.Bank().Path())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.WordsOf(dictionary.Medium)) != 1 {
		t.Error("AddWord should persist the bank")
	}

	removed, err := c.RemoveWord("DOG", dictionary.Easy)
	if err != nil || !removed {
		t.Fatalf("RemoveWord() = %v, %v; expected true, nil", removed, err)
	}
	removed, err = c.RemoveWord("DOG", dictionary.Easy)
	if err != nil || removed {
		t.Error("RemoveWord of an absent word should report false")
	}

	reloaded, err = dictionary.Load(c.Bank().Path())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.WordsOf(dictionary.Easy)) != 0 {
		t.Error("RemoveWord should persist the bank")
	}
}

func TestFileSelection(t *testing.T) {
	if _, ok := Canceled().Path(); ok {
		t.Error("Canceled().Path() should report false")
	}
	if p, ok := Selected("x").Path(); !ok || p != "x" {
		t.Errorf("Selected(x).Path() = %q, %v", p, ok)
	}
}
