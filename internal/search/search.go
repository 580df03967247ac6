// Package search finds the placement that maximizes a linear heuristic.
package search

import (
	"math"

	"github.com/vovakirdan/tetris-ga/internal/features"
	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

// Candidate is one legal final placement and its evaluation.
type Candidate struct {
	Placement tetris.Placement
	Features  features.Vector
	Score     float64
}

// Candidates enumerates every legal placement of p on b from the spawn row,
// in ascending rotation then ascending x order.
func Candidates(b *tetris.Board, p tetris.Piece, weights [features.Count]float64) []Candidate {
	var out []Candidate
	each(b, p, weights, func(c Candidate) {
		out = append(out, c)
	})
	return out
}

// Best returns the first placement with the highest score on b. It returns
// false when p has no legal placement.
func Best(b *tetris.Board, p tetris.Piece, weights [features.Count]float64) (tetris.Placement, float64, bool) {
	best := Candidate{Score: math.Inf(-1)}
	found := false
	each(b, p, weights, func(c Candidate) {
		if !found || c.Score > best.Score {
			best, found = c, true
		}
	})
	return best.Placement, best.Score, found
}

func each(b *tetris.Board, p tetris.Piece, weights [features.Count]float64, visit func(Candidate)) {
	if !p.Valid() {
		return
	}
	for r := range tetris.SearchRotations(p) {
		xr := tetris.XRangeOf(p, r)
		for x := xr.Min; x < xr.Max; x++ {
			if !b.IsStackable(p, r, x, tetris.SpawnY) {
				continue
			}
			y := b.DropY(p, r, x, tetris.SpawnY)

			scratch := *b
			scratch.Place(p, r, x, y)
			v := features.Extract(&scratch)
			visit(Candidate{
				Placement: tetris.Placement{Rotation: r, X: x, Y: y},
				Features:  v,
				Score:     v.Dot(weights),
			})
		}
	}
}
