package genetic

import (
	"time"

	"golang.org/x/exp/constraints"

	"github.com/vovakirdan/tetris-ga/internal/agent"
)

// Stats summarizes one evaluated generation.
type Stats struct {
	Generation int
	AvgFit     float64
	AvgGene    agent.Genotype
	TopFit     float64
	TopGene    agent.Genotype
	// EliteFit and EliteGene average the EliteCount best agents.
	EliteFit  float64
	EliteGene agent.Genotype
	Elapsed   time.Duration
}

type number interface {
	constraints.Integer | constraints.Float
}

// mean returns the arithmetic mean of xs, or 0 for no values.
func mean[T number](xs []T) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += float64(x)
	}
	return sum / float64(len(xs))
}

// meanGenotype averages the genotypes of agents element-wise.
func meanGenotype(agents []*agent.Agent) agent.Genotype {
	var g agent.Genotype
	if len(agents) == 0 {
		return g
	}
	for _, a := range agents {
		for i, w := range a.Genotype {
			g[i] += w
		}
	}
	for i := range g {
		g[i] /= float64(len(agents))
	}
	return g
}

func fitScores(agents []*agent.Agent) []float64 {
	out := make([]float64, len(agents))
	for i, a := range agents {
		out[i] = a.FitScore
	}
	return out
}

// summarize computes the statistics of a population sorted by descending
// fitness.
func summarize(gen int, sorted []*agent.Agent, eliteCount int, elapsed time.Duration) Stats {
	elite := sorted[:min(eliteCount, len(sorted))]
	return Stats{
		Generation: gen,
		AvgFit:     mean(fitScores(sorted)),
		AvgGene:    meanGenotype(sorted),
		TopFit:     sorted[0].FitScore,
		TopGene:    sorted[0].Genotype,
		EliteFit:   mean(fitScores(elite)),
		EliteGene:  meanGenotype(elite),
		Elapsed:    elapsed,
	}
}
