// Package leaderboard persists the top scores as a JSON array.
package leaderboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	configDirName = "math-snake"
	fileName      = "leaderboard.json"

	// EnvConfigDir overrides the directory scores are kept in.
	EnvConfigDir = "MATHSNAKE_CONFIG_DIR"

	MaxEntries    = 10
	MaxNameLength = 12
	AnonymousName = "Anonymous"
)

// Entry is one saved score.
type Entry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// ConfigDir returns the data directory, creating it if needed.
// EnvConfigDir is used as-is when set; otherwise UserConfigDir()/math-snake.
func ConfigDir() (string, error) {
	if env := os.Getenv(EnvConfigDir); env != "" {
		if err := os.MkdirAll(env, 0o755); err != nil {
			return "", errors.Wrap(err, "creating config dir")
		}
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locating user config dir")
	}
	dir := filepath.Join(base, configDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating config dir")
	}
	return dir, nil
}

type Option func(*Store)

// WithClock stamps entries with now instead of time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is a file-backed top-10 leaderboard. It is safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewStore(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}
	s := &Store{
		path: filepath.Join(dir, fileName),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path is the JSON file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load reads the saved entries, best first. A missing file is an empty board.
func (s *Store) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading leaderboard")
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "decoding leaderboard")
	}
	return entries, nil
}

// Leaderboard returns the saved entries; an unreadable file reads as empty.
func (s *Store) Leaderboard() []Entry {
	entries, _ := s.Load()
	return entries
}

// IsHighScore reports whether score would enter the board: true while fewer
// than MaxEntries are saved, otherwise only if it beats the last entry.
func (s *Store) IsHighScore(score int) bool {
	entries := s.Leaderboard()
	if len(entries) < MaxEntries {
		return true
	}
	return score > entries[len(entries)-1].Score
}

// HighScore is the best saved score, 0 when the board is empty.
func (s *Store) HighScore() int {
	entries := s.Leaderboard()
	if len(entries) == 0 {
		return 0
	}
	return entries[0].Score
}

// SaveScore inserts a score, keeps the board sorted best first and truncated
// to MaxEntries, and writes it atomically.
func (s *Store) SaveScore(name string, score int) (Entry, error) {
	if score < 0 {
		return Entry{}, errors.New("score must be non-negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// A corrupt file is replaced rather than blocking every future save.
	entries, _ := s.load()
	now := s.now()
	entry := Entry{
		ID:    uuid.New().String(),
		Name:  NormalizeName(name),
		Score: score,
		Date:  now.Format("2006-01-02"),
		Time:  now.Format("15:04"),
	}
	entries = append(entries, entry)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	if err := s.write(entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Store) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding leaderboard")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "writing leaderboard")
	}
	return errors.Wrap(os.Rename(tmp, s.path), "replacing leaderboard")
}

// Clear removes every saved score.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clearing leaderboard")
	}
	return nil
}

// NormalizeName trims a player name, caps it at MaxNameLength runes and
// substitutes AnonymousName for a blank one.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if rs := []rune(name); len(rs) > MaxNameLength {
		name = strings.TrimSpace(string(rs[:MaxNameLength]))
	}
	if name == "" {
		return AnonymousName
	}
	return name
}
