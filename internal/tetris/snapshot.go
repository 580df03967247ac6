package tetris

import "time"

// StateType names the lifecycle state of a game.
type StateType string

const (
	StatePlaying  StateType = "playing"
	StateGameOver StateType = "game_over"
)

// Snapshot captures the complete game state for determinism testing,
// rendering and replay.
type Snapshot struct {
	Seed         uint64
	GravitySteps uint64
	Board        Board // locked cells only
	Current      Piece
	Next         Piece
	Held         Piece
	Rotation     int
	X, Y         int
	GhostY       int
	Score        int
	Level        int
	Lines        int
	Goal         int
	Pieces       int
	FallInterval time.Duration
	State        StateType
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	if g.gameOver {
		state = StateGameOver
	}

	return Snapshot{
		Seed:         g.seed,
		GravitySteps: g.gravitySteps,
		Board:        g.board,
		Current:      g.current,
		Next:         g.next,
		Held:         g.hold,
		Rotation:     g.rotation,
		X:            g.x,
		Y:            g.y,
		GhostY:       g.GhostY(),
		Score:        g.score,
		Level:        g.level,
		Lines:        g.lines,
		Goal:         g.goal,
		Pieces:       g.pieces,
		FallInterval: g.fallInterval,
		State:        state,
	}
}
