package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetris-ga/internal/leaderboard"
	"github.com/vovakirdan/tetris-ga/internal/storage"
)

func TestScoreboardViews(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveScore(storage.ScoreEntry{Player: "ABC", Score: 420, Lines: 3, Level: 1}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.CreateRun("optimizer: {}\n", 77); err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	board := leaderboard.Open(filepath.Join(dir, "leaderboard.txt"))
	if err := board.Append(leaderboard.BotName, 9000); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	m := NewScoreboardModel(store, board, 10, 100, 30)
	if len(m.rows) != 1 || m.rows[0][1] != "ABC" {
		t.Errorf("scores rows = %v", m.rows)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view() != ViewLeaderboard || len(m.rows) != 1 || m.rows[0][1] != leaderboard.BotName {
		t.Errorf("leaderboard view = %v rows %v", m.view(), m.rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view() != ViewRuns || len(m.rows) != 1 || m.rows[0][3] != "77" {
		t.Errorf("runs view = %v rows %v", m.view(), m.rows)
	}
	if !strings.Contains(m.View(), "Training runs") {
		t.Error("View() should show the current view title")
	}

	// Wraps around backwards
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.view() != ViewLeaderboard {
		t.Errorf("shift+tab went to %v, expected leaderboard", m.view())
	}
}

func TestScoreboardWithoutSources(t *testing.T) {
	m := NewScoreboardModel(nil, nil, 10, 60, 20)
	if !strings.Contains(m.View(), "Nothing recorded yet") {
		t.Error("empty scoreboard should say so")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText() = %q", got)
	}
	if got := centerText("abcdef", 3); got != "abcdef" {
		t.Errorf("centerText() should not truncate, got %q", got)
	}
}
