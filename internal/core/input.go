package core

// Action is a semantic game action, decoupled from the key that produced it.
// Both the keyboard mapper and the autopilot speak in actions.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Left arrow
	ActionRight            // Right arrow
	ActionRotateCW         // Up arrow, X
	ActionRotateCCW        // Z
	ActionSoftDrop         // Down arrow
	ActionHardDrop         // Space
	ActionHold             // C, Shift
	ActionPause            // P
	ActionRestart          // R
	ActionQuit             // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionSoftDrop:  "SoftDrop",
	ActionHardDrop:  "HardDrop",
	ActionHold:      "Hold",
	ActionPause:     "Pause",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}
