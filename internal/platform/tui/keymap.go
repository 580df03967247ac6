package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetris-ga/internal/core"
)

// KeyMap holds the game key bindings.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	SoftDrop  key.Binding
	HardDrop  key.Binding
	Hold      key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		RotateCW:  key.NewBinding(key.WithKeys("up", "x"), key.WithHelp("↑/x", "rotate")),
		RotateCCW: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "rotate back")),
		SoftDrop:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "soft drop")),
		HardDrop:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "drop")),
		Hold:      key.NewBinding(key.WithKeys("c", "C"), key.WithHelp("c", "hold")),
		Pause:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpKeys adapts a list of bindings to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

// Help returns the bindings shown in the help line for a mode.
func (k KeyMap) Help(mode Mode) help.KeyMap {
	if mode == ModeWatch {
		return helpKeys{k.Pause, k.Restart, k.Quit}
	}
	return helpKeys{k.Left, k.Right, k.RotateCW, k.RotateCCW, k.SoftDrop, k.HardDrop, k.Hold, k.Pause, k.Restart, k.Quit}
}

type mapping struct {
	binding key.Binding
	action  core.Action
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys  KeyMap
	table []mapping
}

// NewKeyMapper creates a key mapper for the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{
		keys: keys,
		table: []mapping{
			{keys.Quit, core.ActionQuit},
			{keys.Left, core.ActionLeft},
			{keys.Right, core.ActionRight},
			{keys.RotateCW, core.ActionRotateCW},
			{keys.RotateCCW, core.ActionRotateCCW},
			{keys.SoftDrop, core.ActionSoftDrop},
			{keys.HardDrop, core.ActionHardDrop},
			{keys.Hold, core.ActionHold},
			{keys.Pause, core.ActionPause},
			{keys.Restart, core.ActionRestart},
		},
	}
}

// Keys returns the bindings the mapper was built from.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, e := range km.table {
		if key.Matches(msg, e.binding) {
			return e.action, e.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}
