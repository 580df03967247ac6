// Package features scores a board with the nine heuristics an agent weighs.
package features

import "github.com/vovakirdan/tetris-ga/internal/tetris"

// Count is the length of a feature vector.
const Count = 9

// LinesWeight scales the full-row count so it is comparable to heights.
const LinesWeight = 8

// Feature indices, in genotype order.
const (
	AggregateHeight = iota
	Holes
	ColsWithHoles
	Bumpiness
	Pits
	DeepestWell
	RowTransitions
	ColTransitions
	LinesCleared
)

// Names lists the feature names in vector order.
var Names = [Count]string{
	"aggregate_height",
	"holes",
	"cols_with_holes",
	"bumpiness",
	"pits",
	"deepest_well",
	"row_transitions",
	"col_transitions",
	"lines_cleared",
}

// Vector is an ordered feature vector.
type Vector [Count]float64

// Dot returns the weighted sum of v.
func (v Vector) Dot(weights [Count]float64) float64 {
	var s float64
	for i := range Count {
		s += v[i] * weights[i]
	}
	return s
}

// Grid is the binarized board, indexed [col][row] with row 0 at the top.
type Grid [tetris.Width][tetris.Rows]bool

// Binarize marks every occupied cell. Ghost cells count as empty.
func Binarize(b *tetris.Board) Grid {
	var g Grid
	for x := range tetris.Width {
		for y := range tetris.Rows {
			g[x][y] = b[x][y].Occupied()
		}
	}
	return g
}

// Extract computes the feature vector of b. Full rows are counted before
// any clear, so b should hold the piece just placed.
func Extract(b *tetris.Board) Vector {
	g := Binarize(b)
	peaks := Peaks(&g)
	holes := ColumnHoles(&g, peaks)

	var v Vector
	var highest int
	for x := range tetris.Width {
		v[AggregateHeight] += float64(peaks[x])
		v[Holes] += float64(holes[x])
		if holes[x] > 0 {
			v[ColsWithHoles]++
		}
		if peaks[x] == 0 {
			v[Pits]++
		}
		highest = max(highest, peaks[x])
	}
	v[Bumpiness] = float64(Bump(peaks))
	for _, w := range Wells(peaks) {
		v[DeepestWell] = max(v[DeepestWell], float64(w))
	}
	v[RowTransitions] = float64(RowTrans(&g, highest))
	v[ColTransitions] = float64(ColTrans(&g, peaks))
	v[LinesCleared] = float64(b.FullRows() * LinesWeight)
	return v
}

// Peaks returns each column's height: rows from the bottom up to and
// including its topmost occupied cell, or 0 for an empty column.
func Peaks(g *Grid) [tetris.Width]int {
	var peaks [tetris.Width]int
	for x := range tetris.Width {
		for y := range tetris.Rows {
			if g[x][y] {
				peaks[x] = tetris.Rows - y
				break
			}
		}
	}
	return peaks
}

// ColumnHoles counts the empty cells below each column's peak.
func ColumnHoles(g *Grid, peaks [tetris.Width]int) [tetris.Width]int {
	var holes [tetris.Width]int
	for x := range tetris.Width {
		for y := tetris.Rows - peaks[x]; y < tetris.Rows; y++ {
			if !g[x][y] {
				holes[x]++
			}
		}
	}
	return holes
}

// Bump sums the absolute height differences of adjacent columns.
func Bump(peaks [tetris.Width]int) int {
	s := 0
	for x := range tetris.Width - 1 {
		d := peaks[x] - peaks[x+1]
		if d < 0 {
			d = -d
		}
		s += d
	}
	return s
}

// Wells returns each column's depth below its taller neighbour. Edge columns
// have a single neighbour.
func Wells(peaks [tetris.Width]int) [tetris.Width]int {
	var wells [tetris.Width]int
	for x := range tetris.Width {
		var left, right int
		if x > 0 {
			left = max(0, peaks[x-1]-peaks[x])
		}
		if x < tetris.Width-1 {
			right = max(0, peaks[x+1]-peaks[x])
		}
		wells[x] = max(left, right)
	}
	return wells
}

// RowTrans counts occupancy changes between horizontal neighbours in the
// rows at or below the highest peak.
func RowTrans(g *Grid, highest int) int {
	s := 0
	for y := tetris.Rows - highest; y < tetris.Rows; y++ {
		for x := 1; x < tetris.Width; x++ {
			if g[x][y] != g[x-1][y] {
				s++
			}
		}
	}
	return s
}

// ColTrans counts occupancy changes between vertical neighbours from each
// column's peak down. Columns of height 1 or less add nothing.
func ColTrans(g *Grid, peaks [tetris.Width]int) int {
	s := 0
	for x := range tetris.Width {
		if peaks[x] <= 1 {
			continue
		}
		for y := tetris.Rows - peaks[x]; y < tetris.Rows-1; y++ {
			if g[x][y] != g[x][y+1] {
				s++
			}
		}
	}
	return s
}
