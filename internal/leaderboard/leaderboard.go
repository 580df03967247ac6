// Package leaderboard keeps a plain-text file of "name score" lines.
package leaderboard

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// BotName tags scores achieved by the autonomous player.
const BotName = "AlgoBot"

// ErrInvalidName is returned for a name that is neither three uppercase
// letters nor BotName.
var ErrInvalidName = errors.New("leaderboard: name must be three uppercase letters")

// placeholders fill the standings when fewer players have scored.
var placeholders = []string{"AAA", "BBB", "CCC"}

// Entry is one leaderboard line.
type Entry struct {
	Name  string
	Score int
}

// ValidName reports whether name may be written to the leaderboard.
func ValidName(name string) bool {
	if name == BotName {
		return true
	}
	if len(name) != 3 {
		return false
	}
	for _, r := range name {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Board is a leaderboard file. Appends are serialized.
type Board struct {
	mu   sync.Mutex
	path string
}

// Open returns the leaderboard stored at path. The file is created on the
// first Append.
func Open(path string) *Board {
	return &Board{path: path}
}

// Path returns the file path.
func (b *Board) Path() string { return b.path }

// Append adds a score line.
func (b *Board) Append(name string, score int) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if score < 0 {
		return fmt.Errorf("leaderboard: negative score %d", score)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := os.OpenFile(b.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("leaderboard: open %s: %w", b.path, err)
	}
	if _, err := fmt.Fprintf(f, "%s %d\n", name, score); err != nil {
		f.Close()
		return fmt.Errorf("leaderboard: write: %w", err)
	}
	return f.Close()
}

// Load reads every entry sorted by descending score. A missing file is an
// empty leaderboard. Blank lines are skipped; malformed lines are errors.
func (b *Board) Load() ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := os.Open(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leaderboard: open %s: %w", b.path, err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		e, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("leaderboard: %s:%d: %w", b.path, n, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: read %s: %w", b.path, err)
	}

	sortEntries(entries)
	return entries, nil
}

func parseLine(line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Entry{}, fmt.Errorf("want \"name score\", got %q", line)
	}
	score, err := strconv.Atoi(fields[1])
	if err != nil {
		return Entry{}, fmt.Errorf("bad score %q: %w", fields[1], err)
	}
	return Entry{Name: fields[0], Score: score}, nil
}

// sortEntries orders by descending score, then by name.
func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// Top returns the n highest entries.
func (b *Board) Top(n int) ([]Entry, error) {
	entries, err := b.Load()
	if err != nil {
		return nil, err
	}
	return entries[:min(n, len(entries))], nil
}

// Standings returns the best score of each name, highest first, padded
// with zero-score placeholders to at least n entries.
func (b *Board) Standings(n int) ([]Entry, error) {
	entries, err := b.Load()
	if err != nil {
		return nil, err
	}

	best := make(map[string]int)
	for _, p := range placeholders {
		best[p] = 0
	}
	for _, e := range entries {
		if s, ok := best[e.Name]; !ok || e.Score > s {
			best[e.Name] = e.Score
		}
	}

	out := make([]Entry, 0, len(best))
	for name, score := range best {
		out = append(out, Entry{Name: name, Score: score})
	}
	sortEntries(out)
	return out[:min(n, len(out))], nil
}
