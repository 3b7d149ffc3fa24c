// Package controller wires the word bank, the round state machine and the
// save store to the view. The view sends commands (new round, guess, save,
// load, word edits) and renders the View returned afterwards.
package controller

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hangman/internal/dictionary"
	"github.com/vovakirdan/tui-hangman/internal/round"
	"github.com/vovakirdan/tui-hangman/internal/saves"
)

// Controller orchestrates one player's session.
type Controller struct {
	bank     *dictionary.Bank
	store    *saves.Store
	chooser  DifficultyChooser
	recorder ResultRecorder
	logger   *log.Logger

	player   string
	savePath string
	round    *round.Round
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder reports finished rounds to r.
func WithRecorder(r ResultRecorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller with no session.
func New(bank *dictionary.Bank, store *saves.Store, chooser DifficultyChooser, opts ...Option) *Controller {
	c := &Controller{
		bank:    bank,
		store:   store,
		chooser: chooser,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetChooser replaces the difficulty chooser.
func (c *Controller) SetChooser(chooser DifficultyChooser) {
	c.chooser = chooser
}

// Bank returns the word bank.
func (c *Controller) Bank() *dictionary.Bank {
	return c.bank
}

// Saves returns the save store.
func (c *Controller) Saves() *saves.Store {
	return c.store
}

// Player returns the current player name.
func (c *Controller) Player() string {
	return c.player
}

// NewGame starts a session for player backed by the player's default save
// file. An existing save with a round resumes it; otherwise a new round starts.
func (c *Controller) NewGame(player string) error {
	if err := saves.ValidatePlayer(player); err != nil {
		return err
	}
	if err := c.store.EnsureDir(); err != nil {
		return err
	}
	path := c.store.PathFor(player)
	if _, err := c.store.Create(path); err != nil {
		return err
	}
	return c.LoadFrom(path)
}

// LoadFrom resumes the session stored at path.
// A save without a round, or with a round already won or lost, starts a new
// round with a chosen difficulty.
func (c *Controller) LoadFrom(path string) error {
	rec, err := c.store.Load(path)
	if err != nil {
		return err
	}

	if rec.HasWord() {
		rd, err := rec.Round()
		if err != nil {
			return fmt.Errorf("controller: cannot restore round: %w", err)
		}
		if !rd.Status().Terminal() {
			c.player, c.savePath = rec.Player, path
			c.round = rd
			c.logger.Info("session loaded", "player", c.player, "path", path)
			return nil
		}
		c.logger.Debug("saved round already finished", "path", path, "status", rd.Status())
	}

	d, err := c.chooser.ChooseDifficulty()
	if err != nil {
		return err
	}
	word, err := c.bank.PickRandom(d)
	if err != nil {
		return fmt.Errorf("controller: cannot start round: %w", err)
	}
	c.player, c.savePath = rec.Player, path
	c.round = round.New(word)
	c.logger.Info("new session", "player", c.player, "path", path, "difficulty", d)
	return nil
}

// Load handles the answer of a load picker. Canceled is a no-op.
func (c *Controller) Load(sel FileSelection) error {
	path, ok := sel.Path()
	if !ok {
		return nil
	}
	return c.LoadFrom(path)
}

// StartNewRound draws a word of difficulty d and resets the round.
// An empty difficulty leaves the current round untouched.
func (c *Controller) StartNewRound(d dictionary.Difficulty) error {
	word, err := c.bank.PickRandom(d)
	if err != nil {
		c.logger.Warn("cannot start round", "difficulty", d, "error", err)
		return fmt.Errorf("controller: cannot start round: %w", err)
	}

	if c.round == nil {
		c.round = round.New(word)
	} else {
		c.round.Reset(word)
	}
	c.logger.Debug("round started", "player", c.player, "difficulty", d)
	return nil
}

// Reset asks the chooser for a difficulty and starts a new round.
func (c *Controller) Reset() error {
	d, err := c.chooser.ChooseDifficulty()
	if err != nil {
		return err
	}
	return c.StartNewRound(d)
}

// HasGuessed reports whether letter was already played in the round in
// progress. Letters of a finished round do not count.
func (c *Controller) HasGuessed(letter rune) bool {
	if c.round == nil || c.round.Status().Terminal() {
		return false
	}
	return c.round.HasGuessed(letter)
}

// ApplyGuess plays one letter. When the round ends, the result is recorded
// and a new round starts with a difficulty from the chooser. A failure to
// start that round is returned alongside the outcome, and the next guess
// retries it before playing.
func (c *Controller) ApplyGuess(letter rune) (GuessResult, error) {
	if c.round == nil || !c.round.HasWord() {
		return GuessResult{}, ErrNoRound
	}
	// A finished round stays only when the reset after it failed.
	// It was already recorded; the letter goes to the next round.
	if c.round.Status().Terminal() {
		if err := c.Reset(); err != nil {
			return GuessResult{}, fmt.Errorf("%w: %w", ErrNoRound, err)
		}
	}

	status := c.round.Guess(letter)
	if !status.Terminal() {
		return GuessResult{Outcome: StillPlaying}, nil
	}

	res := GuessResult{Outcome: RoundLost, Finished: c.round.Word()}
	if status == round.Won {
		res.Outcome = RoundWon
	}
	c.logger.Info("round finished", "player", c.player, "word", res.Finished.Raw(), "outcome", res.Outcome)
	c.record(status)

	return res, c.Reset()
}

// record reports the finished round to the recorder. Failures are logged only.
func (c *Controller) record(status round.Status) {
	if c.recorder == nil {
		return
	}
	err := c.recorder.RecordRound(RoundResult{
		Player:     c.player,
		Word:       c.round.Word().Raw(),
		Difficulty: c.round.Word().Difficulty(),
		Won:        status == round.Won,
		Wrong:      c.round.WrongGuesses(),
		Guesses:    len(c.round.Guessed()),
	})
	if err != nil {
		c.logger.Warn("could not record round", "player", c.player, "error", err)
	}
}

// SaveCurrent writes the session to its save file.
func (c *Controller) SaveCurrent() error {
	if c.round == nil || c.savePath == "" {
		return ErrNoRound
	}
	return c.store.Save(saves.FromRound(c.player, c.round), c.savePath)
}

// SaveAs handles the answer of a save picker: the file is created if needed,
// becomes the session's save file, and is written. Canceled is a no-op.
func (c *Controller) SaveAs(sel FileSelection) error {
	path, ok := sel.Path()
	if !ok {
		return nil
	}
	if c.round == nil {
		return ErrNoRound
	}
	if _, err := c.store.Create(path); err != nil {
		return err
	}
	c.savePath = path
	return c.SaveCurrent()
}

// AddWord adds a word to the bank and persists it.
func (c *Controller) AddWord(raw string, d dictionary.Difficulty) error {
	w, err := dictionary.NewWord(raw, d)
	if err != nil {
		return err
	}
	c.bank.Add(w)
	if err := c.bank.Persist(); err != nil {
		return err
	}
	c.logger.Info("word added", "word", raw, "difficulty", d)
	return nil
}

// RemoveWord removes the first matching word and persists the bank.
// It reports whether a word was removed.
func (c *Controller) RemoveWord(raw string, d dictionary.Difficulty) (bool, error) {
	w, err := dictionary.NewWord(raw, d)
	if err != nil {
		if errors.Is(err, dictionary.ErrInvalidWord) {
			return false, nil
		}
		return false, err
	}
	if !c.bank.Remove(w) {
		return false, nil
	}
	if err := c.bank.Persist(); err != nil {
		return true, err
	}
	c.logger.Info("word removed", "word", raw, "difficulty", d)
	return true, nil
}

// View returns the current render state.
func (c *Controller) View() View {
	v := View{
		Player:   c.player,
		SavePath: c.savePath,
		Max:      round.MaxWrongGuesses,
	}
	if c.round == nil {
		return v
	}

	snap := c.round.Snapshot()
	v.Hidden = snap.Hidden
	v.Word = snap.Word
	v.Difficulty = snap.Difficulty
	v.Wrong = snap.Wrong
	v.Guessed = snap.Guessed
	v.Missed = snap.Missed
	v.Status = snap.Status
	v.HasRound = c.round.HasWord()
	return v
}
