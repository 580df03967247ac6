package tetris

// Board dimensions. Row 0 is a hidden spawn row above the visible field.
const (
	Width  = 10
	Height = 20
	Rows   = Height + 1
	SpawnX = 3
	SpawnY = 0
)

// MaxClear is the most rows a single piece can complete.
const MaxClear = 4

// Cell values. Zero is empty, 1..7 are piece ids, Ghost marks a landing preview.
const (
	Empty Cell = 0
	Ghost Cell = 8
)

// Cell is the content of one board square.
type Cell uint8

// Occupied reports whether the cell blocks pieces. Ghost cells never do.
func (c Cell) Occupied() bool {
	return c != Empty && c != Ghost
}

// Board is the playfield indexed [x][y], x from the left, y from the top.
// It is a plain array so copies are cheap and never share state.
type Board [Width][Rows]Cell

// At returns the cell at (x, y), or Empty when out of range.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= Width || y < 0 || y >= Rows {
		return Empty
	}
	return b[x][y]
}

// IsStackable reports whether the piece mask at (x, y) overlaps no occupied
// cell and keeps every occupied mask cell inside the board.
func (b *Board) IsStackable(p Piece, rotation, x, y int) bool {
	if !p.Valid() {
		return false
	}
	mask := MaskOf(p, rotation)
	for i := range MaskSize {
		for j := range MaskSize {
			if !mask[i][j] {
				continue
			}
			cx, cy := x+j, y+i
			if cx < 0 || cx >= Width || cy < 0 || cy >= Rows {
				return false
			}
			if b[cx][cy].Occupied() {
				return false
			}
		}
	}
	return true
}

// IsBottom reports whether the piece at (x, y) cannot move one row down,
// either because it would leave the board or hit an occupied cell.
// An invalid piece is always at the bottom.
func (b *Board) IsBottom(p Piece, rotation, x, y int) bool {
	if !p.Valid() {
		return true
	}
	mask := MaskOf(p, rotation)
	for i := range MaskSize {
		for j := range MaskSize {
			if !mask[i][j] {
				continue
			}
			below := y + i + 1
			if below >= Rows {
				return true
			}
			if b.At(x+j, below).Occupied() {
				return true
			}
		}
	}
	return false
}

// DropY returns the lowest y the piece reaches falling from (x, y).
func (b *Board) DropY(p Piece, rotation, x, y int) int {
	for !b.IsBottom(p, rotation, x, y) {
		y++
	}
	return y
}

// Place writes the piece id into every mask cell at (x, y).
// Cells outside the board are skipped.
func (b *Board) Place(p Piece, rotation, x, y int) {
	b.fill(p, rotation, x, y, Cell(p))
}

func (b *Board) fill(p Piece, rotation, x, y int, c Cell) {
	mask := MaskOf(p, rotation)
	for i := range MaskSize {
		for j := range MaskSize {
			if !mask[i][j] {
				continue
			}
			cx, cy := x+j, y+i
			if cx < 0 || cx >= Width || cy < 0 || cy >= Rows {
				continue
			}
			b[cx][cy] = c
		}
	}
}

// RowFull reports whether every column of row y is occupied.
func (b *Board) RowFull(y int) bool {
	for x := range Width {
		if !b[x][y].Occupied() {
			return false
		}
	}
	return true
}

// FullRows counts the rows that are currently full.
func (b *Board) FullRows() int {
	n := 0
	for y := range Rows {
		if b.RowFull(y) {
			n++
		}
	}
	return n
}

// ClearFullRows removes full rows, shifting everything above each one down,
// and returns how many rows were removed. Rows are scanned top to bottom so
// each clear sees the board left by the previous one.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for y := range Rows {
		if !b.RowFull(y) {
			continue
		}
		cleared++
		for k := y; k > 0; k-- {
			for x := range Width {
				b[x][k] = b[x][k-1]
			}
		}
		for x := range Width {
			b[x][0] = Empty
		}
	}
	return cleared
}

// StackHeight returns the height of the tallest column.
func (b *Board) StackHeight() int {
	for y := range Rows {
		for x := range Width {
			if b[x][y].Occupied() {
				return Rows - y
			}
		}
	}
	return 0
}

// IsEmpty reports whether no cell is occupied.
func (b *Board) IsEmpty() bool {
	return b.StackHeight() == 0
}
