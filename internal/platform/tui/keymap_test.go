package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetris-ga/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"up rotates", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCW, false},
		{"x rotates", runeKey('x'), core.ActionRotateCW, false},
		{"z rotates back", runeKey('z'), core.ActionRotateCCW, false},
		{"down soft drops", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop, false},
		{"space hard drops", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop, false},
		{"c holds", runeKey('c'), core.ActionHold, false},
		{"shift c holds", runeKey('C'), core.ActionHold, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('k'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestHelpPerMode(t *testing.T) {
	keys := DefaultKeyMap()
	if n := len(keys.Help(ModeWatch).ShortHelp()); n != 3 {
		t.Errorf("watch help has %d bindings, expected 3", n)
	}
	if n := len(keys.Help(ModePlay).ShortHelp()); n != 10 {
		t.Errorf("play help has %d bindings, expected 10", n)
	}
}
