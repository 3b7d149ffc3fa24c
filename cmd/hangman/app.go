package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hangman/internal/config"
	"github.com/vovakirdan/tui-hangman/internal/controller"
	"github.com/vovakirdan/tui-hangman/internal/core"
	"github.com/vovakirdan/tui-hangman/internal/dictionary"
	"github.com/vovakirdan/tui-hangman/internal/saves"
	"github.com/vovakirdan/tui-hangman/internal/storage"
)

// app bundles everything a command needs.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	bank    *dictionary.Bank
	saves   *saves.Store
	history *storage.Store // nil when history is disabled or unavailable

	closers []io.Closer
}

// openApp loads the configuration and opens the word bank, the save store
// and the history database. Interactive apps log to the configured file so
// the alternate screen stays clean.
func openApp(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if err := a.openLogger(interactive); err != nil {
		return nil, err
	}

	bank, err := dictionary.Load(cfg.WordsPath)
	if err != nil {
		a.Close()
		return nil, err
	}
	if cfg.Seed != 0 {
		bank.Seed(cfg.Seed)
	}
	a.bank = bank
	a.saves = saves.NewStore(cfg.SavesDir, a.logger)

	if cfg.History {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			a.logger.Warn("could not open history database", "path", cfg.DBPath, "error", err)
		} else {
			a.history = store
			a.closers = append(a.closers, store)
		}
	}

	a.logger.Debug("app ready", "words", cfg.WordsPath, "saves", cfg.SavesDir, "history", a.history != nil)
	return a, nil
}

// loadConfig applies the flags that were set on top of the loaded config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("words") {
		cfg.WordsPath = flagWords
	}
	if flags.Changed("saves") {
		cfg.SavesDir = flagSaves
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Expand(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// openLogger creates the logger at the configured level.
func (a *app) openLogger(interactive bool) error {
	level, err := log.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}

	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
		if a.cfg.LogFile != "" {
			if err := os.MkdirAll(filepath.Dir(a.cfg.LogFile), 0o755); err != nil {
				return fmt.Errorf("cannot create log directory: %w", err)
			}
			f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("cannot open log file: %w", err)
			}
			a.closers = append(a.closers, f)
			w = f
		}
	}

	a.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "hangman",
		Level:           level,
	})
	return nil
}

// newController creates a controller over the app's bank and saves.
func (a *app) newController(chooser controller.DifficultyChooser) *controller.Controller {
	opts := []controller.Option{controller.WithLogger(a.logger)}
	if a.history != nil {
		opts = append(opts, controller.WithRecorder(a.history))
	}
	return controller.New(a.bank, a.saves, chooser, opts...)
}

// defaultDifficulty returns the configured starting difficulty.
func (a *app) defaultDifficulty() dictionary.Difficulty {
	d, _ := a.cfg.Difficulty()
	return d
}

// runtimeConfig reads the terminal size for the interactive screens.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// Close releases the history database and the log file.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		//nolint:errcheck // Best-effort close on exit
		a.closers[i].Close()
	}
}
