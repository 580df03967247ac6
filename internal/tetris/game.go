// Package tetris implements a deterministic falling-block simulator.
// It has no notion of rendering, input devices or who is playing: callers
// drive it either with whole placements (Step) or with live controls.
package tetris

import (
	"errors"
	"math/rand/v2"
	"time"
)

var (
	// ErrGameOver is returned when an action is attempted after the game ended.
	ErrGameOver = errors.New("tetris: game over")
	// ErrIllegalPlacement is returned by Step for a placement that does not fit.
	ErrIllegalPlacement = errors.New("tetris: illegal placement")
)

// Placement is a final resting position: rotation, x offset and y offset of
// the piece mask's top-left corner.
type Placement struct {
	Rotation int
	X        int
	Y        int
}

// StepResult describes the effect of locking one piece.
type StepResult struct {
	ScoreDelta int
	Lines      int
	GameOver   bool
}

// Policy picks a placement for the game's current piece.
// Returning false means no legal placement exists.
type Policy interface {
	SelectMove(g *Game) (Placement, bool)
}

// Game is a single game instance. It is not safe for concurrent use; run
// one Game per goroutine.
type Game struct {
	rules Rules
	seed  uint64
	rng   *rand.Rand
	bag   *Bag
	board Board

	current  Piece
	next     Piece
	hold     Piece
	holdUsed bool
	rotation int
	x, y     int

	score        int
	level        int
	lines        int
	goal         int
	pieces       int
	fallInterval time.Duration
	bottomCount  int
	gravitySteps uint64
	gameOver     bool
}

// New creates a game with the given rules and starts it with seed.
func New(rules Rules, seed uint64) *Game {
	g := &Game{rules: rules}
	g.Reset(seed)
	return g
}

// Reset clears the board, refills the bag from seed and draws the current
// and next pieces. Score, lines and piece count return to zero and the level
// to one.
func (g *Game) Reset(seed uint64) {
	g.seed = seed
	g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g.bag = NewBag(g.rng)
	g.board = Board{}

	g.current = g.bag.Next()
	g.next = g.bag.Next()
	g.hold = PieceNone
	g.holdUsed = false
	g.rotation = 0
	g.x, g.y = SpawnX, SpawnY

	g.score = 0
	g.level = 1
	g.lines = 0
	g.goal = g.rules.LinesPerLevel
	g.pieces = 0
	g.fallInterval = g.rules.FallInterval
	g.bottomCount = 0
	g.gravitySteps = 0
	g.gameOver = false
}

// Step drops the current piece at the placement's rotation and x offset from
// the spawn row, locks it, clears rows and spawns the next piece. The resting
// row is recomputed; Placement.Y is informational.
func (g *Game) Step(pl Placement) (StepResult, error) {
	if g.gameOver {
		return StepResult{GameOver: true}, ErrGameOver
	}
	if !g.board.IsStackable(g.current, pl.Rotation, pl.X, SpawnY) {
		return StepResult{}, ErrIllegalPlacement
	}

	before := g.score
	g.rotation = normRotation(pl.Rotation)
	g.x = pl.X
	g.y = g.board.DropY(g.current, g.rotation, g.x, SpawnY)

	lines := g.lock()
	return StepResult{
		ScoreDelta: g.score - before,
		Lines:      lines,
		GameOver:   g.gameOver,
	}, nil
}

// Run plays up to maxPieces drops with the policy and returns the final
// score. A policy with no move, or an illegal move, ends the game.
func (g *Game) Run(p Policy, maxPieces int) int {
	for range maxPieces {
		if g.gameOver {
			break
		}
		pl, ok := p.SelectMove(g)
		if !ok {
			g.gameOver = true
			break
		}
		if _, err := g.Step(pl); err != nil {
			g.gameOver = true
			break
		}
	}
	return g.score
}

// lock commits the current piece, applies line clears and scoring, then
// spawns the next piece. It returns the number of rows cleared.
func (g *Game) lock() int {
	g.score += g.rules.DropBonus * g.level
	cleared := g.lockAndClear()
	g.spawnNext()
	return cleared
}

// lockAndClear writes the current piece into the board, removes full rows
// and updates score, lines and level. It returns the rows cleared (0-4).
func (g *Game) lockAndClear() int {
	g.board.Place(g.current, g.rotation, g.x, g.y)
	g.pieces++
	g.bottomCount = 0

	cleared := g.board.ClearFullRows()
	g.score += g.rules.ScoreTable[min(cleared, MaxClear)] * g.level
	g.lines += cleared
	g.goal -= cleared

	// Level up resets the goal and speeds up gravity
	if g.goal < 1 {
		g.level++
		g.goal = g.rules.LinesPerLevel
		g.fallInterval = time.Duration(float64(g.fallInterval) * g.rules.FallDecay)
	}
	return cleared
}

// spawnNext promotes the next piece to current at the spawn position.
// A spawn that does not fit ends the game.
func (g *Game) spawnNext() {
	g.current = g.next
	g.next = g.bag.Next()
	g.resetPosition()
	g.holdUsed = false
	if !g.board.IsStackable(g.current, g.rotation, g.x, g.y) {
		g.gameOver = true
	}
}

func (g *Game) resetPosition() {
	g.rotation = 0
	g.x, g.y = SpawnX, SpawnY
	g.bottomCount = 0
}

// Board returns a copy of the locked cells, without the live piece.
func (g *Game) Board() Board { return g.board }

// BoardRef returns the live board for read-only inspection.
func (g *Game) BoardRef() *Board { return &g.board }

// Current returns the falling piece.
func (g *Game) Current() Piece { return g.current }

// Next returns the piece that spawns after the current one.
func (g *Game) Next() Piece { return g.next }

// Held returns the held piece, or PieceNone.
func (g *Game) Held() Piece { return g.hold }

// Position returns the current piece's rotation and offsets.
func (g *Game) Position() Placement {
	return Placement{Rotation: g.rotation, X: g.x, Y: g.y}
}

// Score returns the accumulated score.
func (g *Game) Score() int { return g.score }

// Level returns the current level, starting at 1.
func (g *Game) Level() int { return g.level }

// Lines returns the total rows cleared.
func (g *Game) Lines() int { return g.lines }

// Goal returns the rows still needed for the next level.
func (g *Game) Goal() int { return g.goal }

// Pieces returns how many pieces have been locked.
func (g *Game) Pieces() int { return g.pieces }

// FallInterval returns the current gravity period.
func (g *Game) FallInterval() time.Duration { return g.fallInterval }

// GameOver reports whether the game has ended.
func (g *Game) GameOver() bool { return g.gameOver }

// Seed returns the seed passed to the last Reset.
func (g *Game) Seed() uint64 { return g.seed }

// Rules returns the rules the game was created with.
func (g *Game) Rules() Rules { return g.rules }
