// Package saves persists a player's round to a named save file and lists
// the save files available to the picker.
//
// A save file is a single line of NUL-separated fields:
//
//	player, word, difficulty, guessed letters (':'-joined), wrong guesses
//
// An empty or malformed file is not an error: it loads as a bare record
// named after the file, which is how a freshly created save starts a session.
package saves

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hangman/internal/core"
	"github.com/vovakirdan/tui-hangman/internal/dictionary"
	"github.com/vovakirdan/tui-hangman/internal/round"
)

const (
	// Suffix is the extension of save files.
	Suffix = ".hangman.txt"

	// Delimiter separates the fields of a save file.
	Delimiter = "\x00"

	letterSeparator = ":"
	fieldCount      = 5
)

// ErrNoWord is returned when saving a record that has no word yet.
var ErrNoWord = errors.New("saves: record has no word")

// ErrInvalidPlayer is returned for a player name that cannot name a save file.
var ErrInvalidPlayer = errors.New("saves: invalid player name")

// errMalformed marks content that falls back to a bare record.
var errMalformed = errors.New("saves: malformed save")

// Record is the durable snapshot of one player's round.
type Record struct {
	Player  string
	Word    dictionary.Word // zero when the save holds no round yet
	Guessed []rune
	Wrong   int
	Path    string // file the record was loaded from or last saved to
}

// HasWord reports whether the record carries a round.
func (r Record) HasWord() bool {
	return !r.Word.IsZero()
}

// Round rebuilds the round stored in the record.
func (r Record) Round() (*round.Round, error) {
	if !r.HasWord() {
		return nil, ErrNoWord
	}
	return round.Restore(r.Word, r.Guessed, r.Wrong)
}

// FromRound builds a record capturing rd for player.
func FromRound(player string, rd *round.Round) Record {
	return Record{
		Player:  player,
		Word:    rd.Word(),
		Guessed: rd.Guessed(),
		Wrong:   rd.WrongGuesses(),
	}
}

// Entry describes a save file for the picker.
type Entry struct {
	Path     string
	Player   string // derived from the file name
	Modified time.Time
}

// Store reads and writes save files under a directory.
type Store struct {
	dir    string
	logger *log.Logger
}

// NewStore creates a store rooted at dir. A nil logger discards messages.
func NewStore(dir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the saves directory.
func (s *Store) Dir() string {
	return s.dir
}

// ValidatePlayer checks that name can be stored in a save file and used as
// its file name inside the saves directory.
func ValidatePlayer(name string) error {
	switch {
	case strings.TrimSpace(name) == "", name == ".", strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidPlayer, name)
	case strings.ContainsAny(name, `/\`+Delimiter+"\r\n"):
		return fmt.Errorf("%w: %q", ErrInvalidPlayer, name)
	}
	return nil
}

// PathFor returns the save path for a player name.
// Callers validate the name with ValidatePlayer first.
func (s *Store) PathFor(player string) string {
	return filepath.Join(s.dir, player+Suffix)
}

// EnsureDir creates the saves directory if it does not exist.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &core.StorageError{Op: "create", Path: s.dir, Err: err}
	}
	return nil
}

// Create creates an empty save file at path if none exists.
// It reports whether a new file was created.
func (s *Store) Create(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, &core.StorageError{Op: "create", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return true, &core.StorageError{Op: "create", Path: path, Err: err}
	}
	return true, nil
}

// Load reads the record stored at path.
// Unparseable content yields a bare record named after the file.
func (s *Store) Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, &core.StorageError{Op: "load", Path: path, Err: err}
	}

	rec, err := decode(string(data))
	if err != nil {
		s.logger.Debug("save has no round, starting fresh", "path", path, "reason", err)
		return Record{Player: PlayerFromPath(path), Path: path}, nil
	}
	rec.Path = path
	return rec, nil
}

// Save overwrites path with the record.
func (s *Store) Save(rec Record, path string) error {
	if !rec.HasWord() {
		return ErrNoWord
	}
	if err := os.WriteFile(path, []byte(encode(rec)), 0o644); err != nil {
		return &core.StorageError{Op: "save", Path: path, Err: err}
	}
	s.logger.Debug("saved round", "player", rec.Player, "path", path)
	return nil
}

// List returns the save files in the directory, sorted by name.
// The directory is created if absent.
func (s *Store) List() ([]string, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths, nil
}

// Entries returns the save files with their player names and modification times.
func (s *Store) Entries() ([]Entry, error) {
	if err := s.EnsureDir(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &core.StorageError{Op: "list", Path: s.dir, Err: err}
	}

	var out []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), Suffix) {
			continue
		}
		e := Entry{
			Path:   filepath.Join(s.dir, de.Name()),
			Player: PlayerFromPath(de.Name()),
		}
		if info, err := de.Info(); err == nil {
			e.Modified = info.ModTime()
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out, nil
}

// PlayerFromPath derives a player name by dropping the last len(Suffix)
// characters of the file name. Names too short to carry the suffix are kept.
func PlayerFromPath(path string) string {
	name := filepath.Base(path)
	if len(name) <= len(Suffix) {
		return name
	}
	return name[:len(name)-len(Suffix)]
}

// encode renders the single-line file content.
func encode(rec Record) string {
	letters := make([]string, len(rec.Guessed))
	for i, r := range rec.Guessed {
		letters[i] = string(r)
	}

	return strings.Join([]string{
		rec.Player,
		rec.Word.Raw(),
		rec.Word.Difficulty().String(),
		strings.Join(letters, letterSeparator),
		strconv.Itoa(rec.Wrong),
	}, Delimiter)
}

// decode parses file content; any problem is reported as errMalformed.
func decode(content string) (Record, error) {
	fields := strings.Split(content, Delimiter)
	if len(fields) < fieldCount {
		return Record{}, fmt.Errorf("%w: %d fields", errMalformed, len(fields))
	}

	d, err := dictionary.ParseDifficulty(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	w, err := dictionary.NewWord(fields[1], d)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	wrong, err := strconv.Atoi(strings.TrimSpace(fields[4]))
	if err != nil || wrong < 0 || wrong > round.MaxWrongGuesses {
		return Record{}, fmt.Errorf("%w: wrong guess count %q", errMalformed, fields[4])
	}

	var guessed []rune
	if fields[3] != "" {
		for _, letter := range strings.Split(fields[3], letterSeparator) {
			if letter == "" {
				continue
			}
			guessed = append(guessed, []rune(letter)[0])
		}
	}

	return Record{
		Player:  fields[0],
		Word:    w,
		Guessed: guessed,
		Wrong:   wrong,
	}, nil
}
