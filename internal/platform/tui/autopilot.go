package tui

import (
	"github.com/vovakirdan/tetris-ga/internal/core"
	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

// Autopilot plays a live game for a policy. When a new piece spawns it asks
// the policy for a placement, then walks the piece there one action at a
// time: rotate first, shift next, hard drop last.
type Autopilot struct {
	policy  tetris.Policy
	target  tetris.Placement
	piece   int
	planned bool
	blocked bool
}

// NewAutopilot creates an autopilot driven by policy.
func NewAutopilot(policy tetris.Policy) *Autopilot {
	return &Autopilot{policy: policy}
}

// Target returns the placement chosen for the current piece, if any.
func (a *Autopilot) Target() (tetris.Placement, bool) {
	return a.target, a.planned && !a.blocked
}

// Next returns the action that brings the falling piece closer to its
// target placement.
func (a *Autopilot) Next(g *tetris.Game) core.Action {
	if g.GameOver() {
		return core.ActionNone
	}
	if !a.planned || a.piece != g.Pieces() {
		a.piece = g.Pieces()
		a.planned = true
		pl, ok := a.policy.SelectMove(g)
		a.target, a.blocked = pl, !ok
	}
	if a.blocked {
		return core.ActionHardDrop
	}

	pos := g.Position()
	switch {
	case pos.Rotation != a.target.Rotation:
		return core.ActionRotateCW
	case pos.X < a.target.X:
		return core.ActionRight
	case pos.X > a.target.X:
		return core.ActionLeft
	default:
		return core.ActionHardDrop
	}
}

// Blocked tells the autopilot its last action could not be applied. The
// rest of the piece is given up and dropped where it stands.
func (a *Autopilot) Blocked() {
	a.blocked = true
}

// Reset forgets the current plan. Call it after the game is reset.
func (a *Autopilot) Reset() {
	a.planned = false
	a.blocked = false
}
