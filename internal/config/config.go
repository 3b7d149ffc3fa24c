// Package config provides YAML-based configuration loading with
// .env and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-hangman/internal/dictionary"
)

// Config contains all runtime settings.
type Config struct {
	WordsPath         string `yaml:"words_path" env:"HANGMAN_WORDS_PATH"`
	SavesDir          string `yaml:"saves_dir" env:"HANGMAN_SAVES_DIR"`
	DBPath            string `yaml:"db_path" env:"HANGMAN_DB_PATH"`
	LogFile           string `yaml:"log_file" env:"HANGMAN_LOG_FILE"`
	LogLevel          string `yaml:"log_level" env:"HANGMAN_LOG_LEVEL"`
	Seed              int64  `yaml:"seed" env:"HANGMAN_SEED"`
	DefaultDifficulty string `yaml:"default_difficulty" env:"HANGMAN_DEFAULT_DIFFICULTY"`
	History           bool   `yaml:"history" env:"HANGMAN_HISTORY"`
}

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		WordsPath:         "~/.hangman/words.txt",
		SavesDir:          "~/.hangman/saves",
		DBPath:            "~/.hangman/history.db",
		LogFile:           "~/.hangman/hangman.log",
		LogLevel:          "info",
		DefaultDifficulty: dictionary.Easy.String(),
		History:           true,
	}
}

// Difficulty returns the configured default difficulty.
func (c Config) Difficulty() (dictionary.Difficulty, error) {
	d, err := dictionary.ParseDifficultyFold(c.DefaultDifficulty)
	if err != nil {
		return dictionary.Easy, fmt.Errorf("config: default_difficulty: %w", err)
	}
	return d, nil
}

// Validate checks values that cannot be fixed up silently.
func (c Config) Validate() error {
	if c.WordsPath == "" {
		return fmt.Errorf("config: words_path is empty")
	}
	if c.SavesDir == "" {
		return fmt.Errorf("config: saves_dir is empty")
	}
	if _, err := c.Difficulty(); err != nil {
		return err
	}
	return nil
}

// Expand resolves a leading ~ in every path field.
func (c *Config) Expand() error {
	for _, p := range []*string{&c.WordsPath, &c.SavesDir, &c.DBPath, &c.LogFile} {
		expanded, err := expandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
