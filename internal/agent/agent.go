// Package agent holds a weighted-heuristic player and its genotype.
package agent

import (
	"cmp"
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/tetris-ga/internal/features"
	"github.com/vovakirdan/tetris-ga/internal/search"
	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

// Genotype is the weight vector, one weight per feature.
type Genotype [features.Count]float64

// Finite reports whether every weight is a finite number.
func (g Genotype) Finite() bool {
	for _, w := range g {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return false
		}
	}
	return true
}

// Agent plays by picking the placement whose features score highest under
// its genotype.
type Agent struct {
	Genotype Genotype
	// FitScore is the mean score over the fitness trials.
	FitScore float64
	// FitRel is FitScore as a share of the population's total fitness.
	FitRel float64
}

// Random returns an agent with every weight drawn uniformly from [-1, 1).
func Random(rng *rand.Rand) *Agent {
	var g Genotype
	for i := range g {
		g[i] = rng.Float64()*2 - 1
	}
	return &Agent{Genotype: g}
}

// FromGenotype returns an agent with the given weights.
func FromGenotype(g Genotype) *Agent {
	return &Agent{Genotype: g}
}

// Mutated returns an agent whose weights are g scaled by independent
// Gaussian factors with mean 1 and standard deviation rate.
func Mutated(g Genotype, rate float64, rng *rand.Rand) *Agent {
	return &Agent{Genotype: Mutate(g, rate, rng)}
}

// Mutate applies multiplicative Gaussian noise to each weight. A rate of
// zero returns g unchanged.
func Mutate(g Genotype, rate float64, rng *rand.Rand) Genotype {
	if rate == 0 {
		return g
	}
	for i := range g {
		g[i] *= 1 + rng.NormFloat64()*rate
	}
	return g
}

// SelectMove implements tetris.Policy.
func (a *Agent) SelectMove(g *tetris.Game) (tetris.Placement, bool) {
	pl, _, ok := search.Best(g.BoardRef(), g.Current(), a.Genotype)
	return pl, ok
}

// Compare orders agents by ascending FitScore, for slices.SortStableFunc.
func Compare(a, b *Agent) int {
	return cmp.Compare(a.FitScore, b.FitScore)
}

var _ tetris.Policy = (*Agent)(nil)
