package tetris

// kicks are the offsets tried in order when a rotation does not fit in place.
var kicks = [...][2]int{
	{0, 0},
	{0, -1},
	{1, 0},
	{-1, 0},
	{0, -2},
	{2, 0},
	{-2, 0},
}

// MoveLeft shifts the falling piece one column left if it fits.
func (g *Game) MoveLeft() bool {
	return g.shift(-1)
}

// MoveRight shifts the falling piece one column right if it fits.
func (g *Game) MoveRight() bool {
	return g.shift(1)
}

func (g *Game) shift(dx int) bool {
	if g.gameOver || !g.board.IsStackable(g.current, g.rotation, g.x+dx, g.y) {
		return false
	}
	g.x += dx
	return true
}

// RotateRight turns the falling piece clockwise, trying wall kicks.
func (g *Game) RotateRight() bool {
	return g.rotate(1)
}

// RotateLeft turns the falling piece counter-clockwise, trying wall kicks.
func (g *Game) RotateLeft() bool {
	return g.rotate(-1)
}

func (g *Game) rotate(dir int) bool {
	if g.gameOver {
		return false
	}
	next := normRotation(g.rotation + dir)
	for _, k := range kicks {
		x, y := g.x+k[0], g.y+k[1]
		if g.board.IsStackable(g.current, next, x, y) {
			g.rotation = next
			g.x, g.y = x, y
			return true
		}
	}
	return false
}

// SoftDrop moves the falling piece one row down if it is not grounded.
func (g *Game) SoftDrop() bool {
	if g.gameOver || g.board.IsBottom(g.current, g.rotation, g.x, g.y) {
		return false
	}
	g.y++
	return true
}

// HardDrop drops the falling piece to its resting row and locks it at once.
func (g *Game) HardDrop() StepResult {
	if g.gameOver {
		return StepResult{GameOver: true}
	}
	before := g.score
	g.y = g.board.DropY(g.current, g.rotation, g.x, g.y)
	lines := g.lock()
	return StepResult{ScoreDelta: g.score - before, Lines: lines, GameOver: g.gameOver}
}

// Gravity advances one fall step. A grounded piece locks once it has been
// grounded for more than LockDelay steps.
func (g *Game) Gravity() StepResult {
	if g.gameOver {
		return StepResult{GameOver: true}
	}
	g.gravitySteps++

	if !g.board.IsBottom(g.current, g.rotation, g.x, g.y) {
		g.y++
		return StepResult{}
	}
	if g.bottomCount < g.rules.LockDelay {
		g.bottomCount++
		return StepResult{}
	}

	before := g.score
	lines := g.lock()
	return StepResult{ScoreDelta: g.score - before, Lines: lines, GameOver: g.gameOver}
}

// Hold swaps the falling piece with the held one, once per spawned piece.
// The first hold stores the piece and takes the next one from the queue.
func (g *Game) Hold() bool {
	if g.gameOver || g.holdUsed {
		return false
	}
	if g.hold == PieceNone {
		g.hold, g.current = g.current, g.next
		g.next = g.bag.Next()
	} else {
		g.hold, g.current = g.current, g.hold
	}
	g.resetPosition()
	g.holdUsed = true
	if !g.board.IsStackable(g.current, g.rotation, g.x, g.y) {
		g.gameOver = true
	}
	return true
}

// GhostY returns the row where the falling piece would land.
func (g *Game) GhostY() int {
	return g.board.DropY(g.current, g.rotation, g.x, g.y)
}

// Overlay returns a copy of the board with the landing preview drawn as
// Ghost and the falling piece drawn with its id.
func (g *Game) Overlay() Board {
	b := g.board
	if g.gameOver {
		return b
	}
	b.fill(g.current, g.rotation, g.x, g.GhostY(), Ghost)
	b.Place(g.current, g.rotation, g.x, g.y)
	return b
}
