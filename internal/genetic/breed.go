package genetic

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/vovakirdan/tetris-ga/internal/agent"
)

// Rank computes each agent's share of the total fitness and returns the
// agents sorted by descending FitScore. Equal scores keep their order.
// A population with zero total fitness gets zero shares.
func Rank(pop []*agent.Agent) []*agent.Agent {
	var total float64
	for _, a := range pop {
		total += a.FitScore
	}
	for _, a := range pop {
		a.FitRel = 0
		if total > 0 {
			a.FitRel = a.FitScore / total
		}
	}

	sorted := slices.Clone(pop)
	slices.SortStableFunc(sorted, func(a, b *agent.Agent) int {
		return agent.Compare(b, a)
	})
	return sorted
}

// crossRatio is the threshold a uniform draw must exceed to take a weight
// from a. A zero share for b takes every weight from a; two zero shares
// split evenly.
func crossRatio(a, b *agent.Agent) float64 {
	if b.FitRel == 0 {
		if a.FitRel == 0 {
			return 0.5
		}
		return 0
	}
	r := a.FitRel / b.FitRel
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0.5
	}
	return r
}

// Cross builds a child genotype taking each weight from a when a uniform
// draw exceeds fitRel(a)/fitRel(b), and from b otherwise.
func Cross(a, b *agent.Agent, rng *rand.Rand) agent.Genotype {
	ratio := crossRatio(a, b)
	var child agent.Genotype
	for i := range child {
		if rng.Float64() > ratio {
			child[i] = a.Genotype[i]
		} else {
			child[i] = b.Genotype[i]
		}
	}
	return child
}

// pickTwo draws two distinct indices from [0, n).
func pickTwo(n int, rng *rand.Rand) (int, int) {
	i := rng.IntN(n)
	j := rng.IntN(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

// Breed builds the next generation from a ranked population: the elites
// first, unchanged, then mutated crossovers of two distinct parents drawn
// from the top Parents() agents.
func Breed(sorted []*agent.Agent, cfg Config, rng *rand.Rand) []*agent.Agent {
	next := make([]*agent.Agent, 0, cfg.PopulationSize)
	for _, e := range sorted[:cfg.EliteCount] {
		next = append(next, agent.FromGenotype(e.Genotype))
	}

	parents := sorted[:min(cfg.Parents(), len(sorted))]
	for len(next) < cfg.PopulationSize {
		i, j := pickTwo(len(parents), rng)
		child := agent.Mutate(Cross(parents[i], parents[j], rng), cfg.MutationRate, rng)
		if !child.Finite() {
			child = parents[i].Genotype
		}
		next = append(next, agent.FromGenotype(child))
	}
	return next
}
