// Package storage provides SQLite-based persistence for finished rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-hangman/internal/controller"
	"github.com/vovakirdan/tui-hangman/internal/dictionary"
)

// Store manages the SQLite database connection for round history.
type Store struct {
	db *sql.DB
}

// RoundEntry represents a single finished round.
type RoundEntry struct {
	ID         string
	Player     string
	Word       string
	Difficulty dictionary.Difficulty
	Won        bool
	Wrong      int
	Guesses    int
	CreatedAt  time.Time
}

// PlayerStats contains aggregated statistics for a player.
type PlayerStats struct {
	Player     string
	Rounds     int
	Wins       int
	Losses     int
	AvgWrong   float64
	LastPlayed time.Time
}

// WinRate returns the share of won rounds in [0, 1].
func (p PlayerStats) WinRate() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Rounds)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			word TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			won INTEGER NOT NULL,
			wrong_guesses INTEGER NOT NULL DEFAULT 0,
			guesses INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRound implements controller.ResultRecorder.
func (s *Store) RecordRound(result controller.RoundResult) error {
	_, err := s.SaveRound(result)
	return err
}

var _ controller.ResultRecorder = (*Store)(nil)

// SaveRound inserts a finished round and returns its generated ID.
func (s *Store) SaveRound(result controller.RoundResult) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO rounds (id, player, word, difficulty, won, wrong_guesses, guesses)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		result.Player,
		result.Word,
		result.Difficulty.String(),
		result.Won,
		result.Wrong,
		result.Guesses,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return id, nil
}

// RecentRounds retrieves the most recent rounds of player, newest first.
// An empty player matches every player.
func (s *Store) RecentRounds(player string, limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, word, difficulty, won, wrong_guesses, guesses, created_at
		 FROM rounds
		 WHERE ? = '' OR player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var difficulty string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Word, &difficulty, &e.Won, &e.Wrong, &e.Guesses, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if d, err := dictionary.ParseDifficulty(difficulty); err == nil {
			e.Difficulty = d
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerStats retrieves aggregated statistics for player.
func (s *Store) PlayerStats(player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(AVG(wrong_guesses), 0), MAX(created_at)
		 FROM rounds WHERE player = ?`,
		player,
	).Scan(&stats.Rounds, &stats.Wins, &stats.AvgWrong, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}

	stats.Losses = stats.Rounds - stats.Wins
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllPlayersStats retrieves statistics for every player with history.
func (s *Store) AllPlayersStats() (map[string]*PlayerStats, error) {
	rows, err := s.db.Query(
		`SELECT player, COUNT(*), SUM(won), AVG(wrong_guesses), MAX(created_at)
		 FROM rounds
		 GROUP BY player`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all players stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PlayerStats)
	for rows.Next() {
		var p PlayerStats
		var lastPlayed any
		if err := rows.Scan(&p.Player, &p.Rounds, &p.Wins, &p.AvgWrong, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		p.Losses = p.Rounds - p.Wins
		p.LastPlayed = parseTime(lastPlayed)
		stats[p.Player] = &p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearHistory deletes all rounds of player.
func (s *Store) ClearHistory(player string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE player = ?", player)
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
