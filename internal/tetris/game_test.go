package tetris

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"
)

// firstFit places every piece at the first legal rotation and x offset.
type firstFit struct{}

func (firstFit) SelectMove(g *Game) (Placement, bool) {
	b := g.BoardRef()
	p := g.Current()
	for r := range SearchRotations(p) {
		xr := XRangeOf(p, r)
		for x := xr.Min; x < xr.Max; x++ {
			if b.IsStackable(p, r, x, SpawnY) {
				return Placement{Rotation: r, X: x, Y: b.DropY(p, r, x, SpawnY)}, true
			}
		}
	}
	return Placement{}, false
}

func headlessRules() Rules {
	r := DefaultRules()
	r.DropBonus = 0
	return r
}

// fillRows occupies rows [from, to] in every column except skip.
func fillRows(b *Board, from, to, skip int) {
	for y := from; y <= to; y++ {
		for x := range Width {
			if x != skip {
				b[x][y] = Cell(PieceO)
			}
		}
	}
}

func countOccupied(b *Board) int {
	n := 0
	for x := range Width {
		for y := range Rows {
			if b[x][y].Occupied() {
				n++
			}
		}
	}
	return n
}

func TestBagDrawsEachPieceOncePerCycle(t *testing.T) {
	bag := NewBag(rand.New(rand.NewPCG(7, 7)))

	for cycle := range 3 {
		seen := make(map[Piece]int)
		for range NumPieces {
			seen[bag.Next()]++
		}
		for _, p := range AllPieces {
			if seen[p] != 1 {
				t.Errorf("cycle %d: piece %s drawn %d times, want 1", cycle, p, seen[p])
			}
		}
		if bag.Remaining() != 0 {
			t.Errorf("cycle %d: %d pieces left in bag, want 0", cycle, bag.Remaining())
		}
	}
}

func TestResetDrawsFromFreshBag(t *testing.T) {
	g := New(headlessRules(), 99)

	// Current and next come from the bag, so five remain
	if g.bag.Remaining() != NumPieces-2 {
		t.Fatalf("Remaining() = %d, want %d", g.bag.Remaining(), NumPieces-2)
	}
	if g.Current() == g.Next() {
		t.Errorf("current and next are both %s", g.Current())
	}
	if g.Score() != 0 || g.Lines() != 0 || g.Level() != 1 {
		t.Errorf("score/lines/level = %d/%d/%d, want 0/0/1", g.Score(), g.Lines(), g.Level())
	}
	if !g.board.IsEmpty() {
		t.Error("board not empty after reset")
	}
}

func TestXRanges(t *testing.T) {
	// Legal x offsets for the distinct search rotations of each piece
	want := map[Piece][]XRange{
		PieceI: {{0, 7}, {-2, 8}},
		PieceJ: {{0, 8}, {-1, 8}, {0, 8}, {0, 9}},
		PieceL: {{0, 8}, {-1, 8}, {0, 8}, {0, 9}},
		PieceO: {{-1, 8}},
		PieceS: {{0, 8}, {-1, 8}},
		PieceT: {{0, 8}, {-1, 8}, {0, 8}, {0, 9}},
		PieceZ: {{0, 8}, {-1, 8}},
	}

	for p, ranges := range want {
		if got := SearchRotations(p); got != len(ranges) {
			t.Errorf("SearchRotations(%s) = %d, want %d", p, got, len(ranges))
			continue
		}
		for r, xr := range ranges {
			if got := XRangeOf(p, r); got != xr {
				t.Errorf("XRangeOf(%s, %d) = %v, want %v", p, r, got, xr)
			}
		}
	}
}

func TestMasksHaveFourCells(t *testing.T) {
	for _, p := range AllPieces {
		for r := range NumRotations {
			n := 0
			mask := MaskOf(p, r)
			for i := range MaskSize {
				for j := range MaskSize {
					if mask[i][j] {
						n++
					}
				}
			}
			if n != 4 {
				t.Errorf("piece %s rotation %d has %d cells, want 4", p, r, n)
			}
		}
	}
}

func TestIsStackable(t *testing.T) {
	var b Board
	b[5][10] = Cell(PieceT)
	b[1][10] = Ghost

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"spawn on empty board", SpawnX, SpawnY, true},
		{"left edge", 0, 0, true},
		{"past left edge", -1, 0, false},
		{"past right edge", 7, 0, false},
		{"overlaps block", 4, 9, false},
		{"ghost is free", 0, 9, true},
		{"below floor", 0, 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Horizontal I occupies mask row 1, columns 0-3
			if got := b.IsStackable(PieceI, 0, tt.x, tt.y); got != tt.want {
				t.Errorf("IsStackable(I, 0, %d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestIsBottom(t *testing.T) {
	var b Board
	if got := b.DropY(PieceO, 0, 0, 0); got != Rows-2 {
		t.Fatalf("O on empty board lands at y=%d, want %d", got, Rows-2)
	}

	b[1][15] = Cell(PieceI)
	b[2][16] = Ghost
	// O occupies mask columns 1-2, so x=0 covers board columns 1-2
	if got := b.DropY(PieceO, 0, 0, 0); got != 13 {
		t.Errorf("O above a block lands at y=%d, want 13", got)
	}
}

func TestLockWithoutFullRowsClearsNothing(t *testing.T) {
	g := New(headlessRules(), 1)
	g.board[0][Rows-1] = Cell(PieceL)

	before := countOccupied(&g.board)
	g.current, g.rotation, g.x = PieceT, 0, SpawnX
	g.y = g.board.DropY(g.current, g.rotation, g.x, SpawnY)

	if cleared := g.lockAndClear(); cleared != 0 {
		t.Fatalf("lockAndClear() = %d, want 0", cleared)
	}
	if got := countOccupied(&g.board); got != before+4 {
		t.Errorf("occupied cells = %d, want %d", got, before+4)
	}
	if g.Score() != 0 || g.Lines() != 0 {
		t.Errorf("score/lines = %d/%d, want 0/0", g.Score(), g.Lines())
	}
}

func TestTetrisScoresThousandTimesLevel(t *testing.T) {
	for _, level := range []int{1, 3, 7} {
		g := New(headlessRules(), 1)
		g.level = level
		fillRows(&g.board, Rows-4, Rows-1, 0)

		// Vertical I drops into column 0
		g.current, g.rotation, g.x = PieceI, 1, -2
		g.y = g.board.DropY(g.current, g.rotation, g.x, SpawnY)

		if cleared := g.lockAndClear(); cleared != 4 {
			t.Fatalf("level %d: lockAndClear() = %d, want 4", level, cleared)
		}
		if g.Score() != 1000*level {
			t.Errorf("level %d: score = %d, want %d", level, g.Score(), 1000*level)
		}
		if !g.board.IsEmpty() {
			t.Errorf("level %d: board not empty after tetris", level)
		}
	}
}

func TestClearShiftsRowsAbove(t *testing.T) {
	var b Board
	fillRows(&b, Rows-1, Rows-1, -1)
	fillRows(&b, Rows-3, Rows-3, -1)
	b[4][Rows-2] = Cell(PieceS)
	b[7][Rows-4] = Cell(PieceZ)

	if cleared := b.ClearFullRows(); cleared != 2 {
		t.Fatalf("ClearFullRows() = %d, want 2", cleared)
	}
	if b[4][Rows-1] != Cell(PieceS) {
		t.Error("cell between cleared rows did not fall one row")
	}
	if b[7][Rows-2] != Cell(PieceZ) {
		t.Error("cell above both cleared rows did not fall two rows")
	}
	if got := countOccupied(&b); got != 2 {
		t.Errorf("occupied cells = %d, want 2", got)
	}
}

func TestClearIgnoresGhostCells(t *testing.T) {
	var b Board
	fillRows(&b, Rows-1, Rows-1, 9)
	b[9][Rows-1] = Ghost

	if b.RowFull(Rows - 1) {
		t.Error("row with a ghost cell reported full")
	}
	if cleared := b.ClearFullRows(); cleared != 0 {
		t.Errorf("ClearFullRows() = %d, want 0", cleared)
	}
}

func TestLevelUp(t *testing.T) {
	g := New(headlessRules(), 1)
	g.goal = 1
	fillRows(&g.board, Rows-1, Rows-1, 0)

	g.current, g.rotation, g.x = PieceI, 1, -2
	g.y = g.board.DropY(g.current, g.rotation, g.x, SpawnY)
	g.lockAndClear()

	if g.Level() != 2 {
		t.Errorf("level = %d, want 2", g.Level())
	}
	if g.Goal() != 10 {
		t.Errorf("goal = %d, want 10", g.Goal())
	}
	if g.FallInterval() != 900*time.Millisecond {
		t.Errorf("fall interval = %s, want 900ms", g.FallInterval())
	}
}

func TestBlockedSpawnEndsGame(t *testing.T) {
	g := New(headlessRules(), 5)
	for x := SpawnX; x < SpawnX+4; x++ {
		g.board[x][1] = Cell(PieceJ)
	}
	g.next = PieceI
	g.spawnNext()

	if !g.GameOver() {
		t.Fatal("expected game over after blocked spawn")
	}
	if _, err := g.Step(Placement{}); !errors.Is(err, ErrGameOver) {
		t.Errorf("Step after game over error = %v, want ErrGameOver", err)
	}
}

func TestStepRejectsIllegalPlacement(t *testing.T) {
	g := New(headlessRules(), 3)
	before := g.Snapshot()

	_, err := g.Step(Placement{Rotation: 0, X: 12})
	if !errors.Is(err, ErrIllegalPlacement) {
		t.Fatalf("Step error = %v, want ErrIllegalPlacement", err)
	}
	if g.Snapshot() != before {
		t.Error("illegal placement changed the game state")
	}
}

func TestStepLocksAndSpawns(t *testing.T) {
	g := New(headlessRules(), 11)
	next := g.Next()

	res, err := g.Step(Placement{Rotation: 0, X: XRangeOf(g.Current(), 0).Min})
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if res.GameOver || res.Lines != 0 || res.ScoreDelta != 0 {
		t.Errorf("Step result = %+v, want zero result", res)
	}
	if g.Current() != next {
		t.Errorf("current = %s, want previous next %s", g.Current(), next)
	}
	if g.Pieces() != 1 || countOccupied(&g.board) != 4 {
		t.Errorf("pieces/cells = %d/%d, want 1/4", g.Pieces(), countOccupied(&g.board))
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := New(headlessRules(), 12345)
	g2 := New(headlessRules(), 12345)

	s1 := g1.Run(firstFit{}, 200)
	s2 := g2.Run(firstFit{}, 200)

	if s1 != s2 {
		t.Errorf("score mismatch: %d vs %d", s1, s2)
	}
	if g1.Snapshot() != g2.Snapshot() {
		t.Error("snapshots differ for identical seeds")
	}
}

func TestRunStopsAtGameOver(t *testing.T) {
	g := New(headlessRules(), 8)
	g.Run(firstFit{}, 10_000)

	if !g.GameOver() {
		t.Fatal("first-fit policy should top out within 10000 pieces")
	}
	if g.Pieces() >= 10_000 {
		t.Errorf("pieces = %d, expected early game over", g.Pieces())
	}
}

func TestGravityLocksAfterDelay(t *testing.T) {
	rules := headlessRules()
	g := New(rules, 21)
	fall := g.GhostY() - g.Position().Y

	steps := 0
	for g.Pieces() == 0 {
		g.Gravity()
		steps++
	}
	if want := fall + rules.LockDelay + 1; steps != want {
		t.Errorf("piece locked after %d gravity steps, want %d", steps, want)
	}
}

func TestHardDropAwardsDropBonus(t *testing.T) {
	g := New(DefaultRules(), 4)
	res := g.HardDrop()

	if res.ScoreDelta != 10 {
		t.Errorf("hard drop score delta = %d, want 10", res.ScoreDelta)
	}
	if g.Pieces() != 1 {
		t.Errorf("pieces = %d, want 1", g.Pieces())
	}
}

func TestHoldOncePerPiece(t *testing.T) {
	g := New(headlessRules(), 17)
	first, second := g.Current(), g.Next()

	if !g.Hold() {
		t.Fatal("first hold rejected")
	}
	if g.Held() != first || g.Current() != second {
		t.Errorf("after hold held=%s current=%s, want %s/%s", g.Held(), g.Current(), first, second)
	}
	if g.Hold() {
		t.Error("second hold on the same piece accepted")
	}

	g.HardDrop()
	if !g.Hold() {
		t.Error("hold rejected after a new piece spawned")
	}
	if g.Current() != first {
		t.Errorf("current = %s, want held %s", g.Current(), first)
	}
}

func TestMoveAndRotate(t *testing.T) {
	g := New(headlessRules(), 2)
	g.current = PieceT
	g.resetPosition()

	for g.MoveLeft() {
	}
	if got := g.Position().X; got != XRangeOf(PieceT, 0).Min {
		t.Errorf("x after moving fully left = %d, want %d", got, XRangeOf(PieceT, 0).Min)
	}
	for g.MoveRight() {
	}
	if got := g.Position().X; got != XRangeOf(PieceT, 0).Max-1 {
		t.Errorf("x after moving fully right = %d, want %d", got, XRangeOf(PieceT, 0).Max-1)
	}

	for i := 1; i <= NumRotations; i++ {
		if !g.RotateRight() {
			t.Fatalf("rotation %d rejected on an empty board", i)
		}
	}
	if g.Position().Rotation != 0 {
		t.Errorf("rotation after four turns = %d, want 0", g.Position().Rotation)
	}
	if !g.RotateLeft() || g.Position().Rotation != 3 {
		t.Errorf("left rotation from 0 = %d, want 3", g.Position().Rotation)
	}
}

func TestOverlay(t *testing.T) {
	g := New(headlessRules(), 6)
	b := g.Overlay()

	var live, ghost int
	for x := range Width {
		for y := range Rows {
			switch b[x][y] {
			case Cell(g.Current()):
				live++
			case Ghost:
				ghost++
			}
		}
	}
	if live != 4 || ghost != 4 {
		t.Errorf("overlay has %d live and %d ghost cells, want 4 and 4", live, ghost)
	}
	if countOccupied(&g.board) != 0 {
		t.Error("overlay modified the game board")
	}
	if b.FullRows() != 0 {
		t.Error("ghost cells counted toward full rows")
	}
}

func TestInvalidPieceTablesAreEmpty(t *testing.T) {
	var b Board
	for _, p := range []Piece{PieceNone, Piece(8), Piece(255)} {
		if SearchRotations(p) != 0 {
			t.Errorf("SearchRotations(%d) = %d, expected 0", p, SearchRotations(p))
		}
		if xr := XRangeOf(p, 0); xr.Min != xr.Max {
			t.Errorf("XRangeOf(%d) = %+v, expected empty", p, xr)
		}
		if MaskOf(p, 0) != (Mask{}) {
			t.Errorf("MaskOf(%d) should be empty", p)
		}
		if !b.IsBottom(p, 0, 3, 0) {
			t.Errorf("IsBottom(%d) should be true", p)
		}
		if y := b.DropY(p, 0, 3, 0); y != 0 {
			t.Errorf("DropY(%d) = %d, expected 0", p, y)
		}
		b.Place(p, 0, 3, 0)
		if !b.IsEmpty() {
			t.Errorf("Place(%d) should not write cells", p)
		}
	}
}
