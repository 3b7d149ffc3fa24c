package dictionary

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vovakirdan/tui-hangman/internal/core"
)

//go:embed defaults/words.txt
var defaultWords []byte

// ErrEmptyPartition is returned when a word is requested from a difficulty
// with no words. It is a configuration problem, not a gameplay one.
var ErrEmptyPartition = errors.New("dictionary: no words for difficulty")

const separator = "|"

// Bank owns the words of the game, backed by a flat file with one line per
// difficulty: "Easy|word1|word2". Mutations stay in memory until Persist.
type Bank struct {
	path  string
	words []Word
	rng   *rand.Rand
}

// Load reads the bank file at path. A missing file is first seeded with the
// built-in word list.
func Load(path string) (*Bank, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := seed(path); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.StorageError{Op: "load", Path: path, Err: err}
	}

	words, err := parse(data)
	if err != nil {
		return nil, &core.StorageError{Op: "load", Path: path, Err: err}
	}

	return &Bank{
		path:  path,
		words: words,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// seed writes the built-in word list to path, creating parent directories.
func seed(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &core.StorageError{Op: "create", Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, defaultWords, 0o644); err != nil {
		return &core.StorageError{Op: "create", Path: path, Err: err}
	}
	return nil
}

// parse decodes bank file content. Blank lines and empty tokens are skipped.
func parse(data []byte) ([]Word, error) {
	var words []Word

	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, separator)
		d, err := ParseDifficulty(fields[0])
		if err != nil {
			return nil, &InvalidDifficultyError{Token: fields[0], Line: line}
		}

		for _, raw := range fields[1:] {
			if raw == "" {
				continue
			}
			words = append(words, Word{raw: raw, difficulty: d})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Path returns the backing file.
func (b *Bank) Path() string {
	return b.path
}

// Seed reseeds the random source used by PickRandom.
func (b *Bank) Seed(seed int64) {
	b.rng = rand.New(rand.NewSource(seed))
}

// Len returns the number of entries, duplicates included.
func (b *Bank) Len() int {
	return len(b.words)
}

// Counts returns the number of entries per difficulty.
func (b *Bank) Counts() map[Difficulty]int {
	counts := make(map[Difficulty]int, 3)
	for _, d := range Difficulties() {
		counts[d] = 0
	}
	for _, w := range b.words {
		counts[w.difficulty]++
	}
	return counts
}

// WordsOf returns the entries tagged d in stored order.
// An empty result means no round of that difficulty can start.
func (b *Bank) WordsOf(d Difficulty) []Word {
	var out []Word
	for _, w := range b.words {
		if w.difficulty == d {
			out = append(out, w)
		}
	}
	return out
}

// Add appends a word. Duplicates are kept and raise the word's odds.
func (b *Bank) Add(w Word) {
	if w.IsZero() {
		return
	}
	b.words = append(b.words, w)
}

// Remove deletes the first entry equal to w (value and difficulty).
// It reports whether an entry was removed.
func (b *Bank) Remove(w Word) bool {
	for i, existing := range b.words {
		if existing == w {
			b.words = append(b.words[:i], b.words[i+1:]...)
			return true
		}
	}
	return false
}

// PickRandom returns a uniformly random word of difficulty d.
func (b *Bank) PickRandom(d Difficulty) (Word, error) {
	candidates := b.WordsOf(d)
	if len(candidates) == 0 {
		return Word{}, fmt.Errorf("%w %s", ErrEmptyPartition, d)
	}
	return candidates[b.rng.Intn(len(candidates))], nil
}

// Persist overwrites the backing file with every entry grouped by difficulty.
// The write is a plain overwrite with no crash safety.
func (b *Bank) Persist() error {
	if err := os.WriteFile(b.path, b.encode(), 0o644); err != nil {
		return &core.StorageError{Op: "persist", Path: b.path, Err: err}
	}
	return nil
}

// encode renders the bank file content.
func (b *Bank) encode() []byte {
	var buf bytes.Buffer
	for _, d := range Difficulties() {
		var raws []string
		for _, w := range b.WordsOf(d) {
			raws = append(raws, w.raw)
		}
		buf.WriteString(d.String())
		buf.WriteString(separator)
		buf.WriteString(strings.Join(raws, separator))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
