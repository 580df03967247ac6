package genetic

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

func testConfig() Config {
	rules := tetris.DefaultRules()
	rules.DropBonus = 0
	return Config{
		Generations:    1,
		Trials:         1,
		PopulationSize: 10,
		EliteCount:     2,
		SurvivalRate:   0.35,
		MutationRate:   0.2,
		MaxPieces:      60,
		Workers:        4,
		Seed:           20240601,
		Rules:          rules,
	}
}

func ranked(scores ...float64) []*agent.Agent {
	rng := rand.New(rand.NewPCG(8, 8))
	pop := make([]*agent.Agent, len(scores))
	for i, s := range scores {
		pop[i] = agent.Random(rng)
		pop[i].FitScore = s
	}
	return Rank(pop)
}

func TestValidate(t *testing.T) {
	require.NoError(t, testConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no generations", func(c *Config) { c.Generations = 0 }},
		{"no trials", func(c *Config) { c.Trials = 0 }},
		{"tiny population", func(c *Config) { c.PopulationSize = 1 }},
		{"too many elites", func(c *Config) { c.EliteCount = 11 }},
		{"negative elites", func(c *Config) { c.EliteCount = -1 }},
		{"survival above one", func(c *Config) { c.SurvivalRate = 1.5 }},
		{"one parent", func(c *Config) { c.SurvivalRate = 0.1 }},
		{"negative mutation", func(c *Config) { c.MutationRate = -0.1 }},
		{"nan mutation", func(c *Config) { c.MutationRate = math.NaN() }},
		{"no pieces", func(c *Config) { c.MaxPieces = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"bad rules", func(c *Config) { c.Rules.LinesPerLevel = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestParentsRoundsHalfUp(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, 4, cfg.Parents())
	cfg.PopulationSize, cfg.SurvivalRate = 100, 0.35
	assert.Equal(t, 35, cfg.Parents())
}

func TestRankSortsDescendingAndShares(t *testing.T) {
	sorted := ranked(10, 40, 30, 20)

	require.Len(t, sorted, 4)
	for i, want := range []float64{40, 30, 20, 10} {
		assert.Equal(t, want, sorted[i].FitScore)
	}
	assert.InDelta(t, 0.4, sorted[0].FitRel, 1e-12)
	assert.InDelta(t, 0.1, sorted[3].FitRel, 1e-12)
}

func TestRankZeroTotalFitness(t *testing.T) {
	for _, a := range ranked(0, 0, 0) {
		assert.Zero(t, a.FitRel)
	}
}

func TestCrossIdenticalParents(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 3))
	g := agent.Random(rng).Genotype

	splits := [][2]float64{{0.5, 0.5}, {0.9, 0.1}, {0.1, 0.9}, {0, 0.3}, {0.3, 0}, {0, 0}}
	for _, s := range splits {
		a := &agent.Agent{Genotype: g, FitRel: s[0]}
		b := &agent.Agent{Genotype: g, FitRel: s[1]}
		assert.Equal(t, g, Cross(a, b, rng), "split %v", s)
	}
}

func TestCrossRatioGuards(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 1))
	a := &agent.Agent{Genotype: agent.Genotype{1, 1, 1, 1, 1, 1, 1, 1, 1}, FitRel: 0.4}
	b := &agent.Agent{Genotype: agent.Genotype{2, 2, 2, 2, 2, 2, 2, 2, 2}}

	// A zero share for b takes every weight from a
	assert.Equal(t, a.Genotype, Cross(a, b, rng))

	// A ratio above one always takes b
	b.FitRel = 0.1
	assert.Equal(t, b.Genotype, Cross(a, b, rng))

	a.FitRel, b.FitRel = 0, 0
	child := Cross(a, b, rng)
	assert.True(t, child.Finite())
	for _, w := range child {
		assert.Contains(t, []float64{1, 2}, w)
	}
}

func TestBreedKeepsElitesFirst(t *testing.T) {
	cfg := testConfig()
	cfg.EliteCount = 3
	sorted := ranked(5, 90, 40, 70, 10, 60, 20, 80, 30, 50)

	rng := rand.New(rand.NewPCG(1, 1))
	next := Breed(sorted, cfg, rng)

	require.Len(t, next, cfg.PopulationSize)
	for i := range cfg.EliteCount {
		assert.Equal(t, sorted[i].Genotype, next[i].Genotype, "elite %d", i)
		assert.Zero(t, next[i].FitScore)
	}
	for _, a := range next {
		assert.True(t, a.Genotype.Finite())
	}
}

func TestBreedZeroFitnessStaysFinite(t *testing.T) {
	cfg := testConfig()
	sorted := ranked(0, 0, 0, 0, 0, 0, 0, 0, 0, 0)

	next := Breed(sorted, cfg, rand.New(rand.NewPCG(9, 9)))
	require.Len(t, next, cfg.PopulationSize)
	for _, a := range next {
		assert.True(t, a.Genotype.Finite(), "genotype %v", a.Genotype)
	}
}

func TestPickTwoDistinct(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 2))
	for range 1000 {
		i, j := pickTwo(2, rng)
		require.NotEqual(t, i, j)
		require.ElementsMatch(t, []int{0, 1}, []int{i, j})
	}
}

func TestTrialSeedIsStable(t *testing.T) {
	assert.Equal(t, TrialSeed(7, 3, 1), TrialSeed(7, 3, 1))
	assert.NotEqual(t, TrialSeed(7, 3, 1), TrialSeed(7, 3, 2))
	assert.NotEqual(t, TrialSeed(7, 3, 1), TrialSeed(7, 4, 1))
}

func TestRunOneGeneration(t *testing.T) {
	cfg := testConfig()

	var recorded []Stats
	opt, err := New(cfg, WithRecorder(RecorderFunc(func(_ context.Context, s Stats) error {
		recorded = append(recorded, s)
		return nil
	})))
	require.NoError(t, err)

	res, err := opt.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Population, 10)
	for _, a := range res.Population {
		assert.False(t, math.IsNaN(a.FitScore))
		assert.GreaterOrEqual(t, a.FitScore, 0.0)
	}
	require.Len(t, recorded, 1)
	assert.Equal(t, res.History, recorded)
	assert.Equal(t, res.Population[0].FitScore, recorded[0].TopFit)
	assert.Equal(t, res.Population[0].Genotype, recorded[0].TopGene)
	assert.GreaterOrEqual(t, recorded[0].TopFit, recorded[0].EliteFit)
	assert.GreaterOrEqual(t, recorded[0].EliteFit, recorded[0].AvgFit)
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	run := func(workers int) *Result {
		cfg := testConfig()
		cfg.Generations = 2
		cfg.Workers = workers
		opt, err := New(cfg)
		require.NoError(t, err)
		res, err := opt.Run(context.Background())
		require.NoError(t, err)
		return res
	}

	a, b := run(1), run(8)
	assert.Equal(t, a.History[len(a.History)-1].TopGene, b.History[len(b.History)-1].TopGene)
	for i := range a.History {
		assert.Equal(t, a.History[i].AvgFit, b.History[i].AvgFit)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	opt, err := New(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = opt.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecorderErrorStopsRun(t *testing.T) {
	boom := errors.New("disk full")
	cfg := testConfig()
	cfg.Generations = 3
	opt, err := New(cfg, WithRecorder(RecorderFunc(func(context.Context, Stats) error { return boom })))
	require.NoError(t, err)

	res, err := opt.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, res.History, 1)
}

func TestCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.yaml")
	cfg := testConfig()

	opt, err := New(cfg, WithCheckpoint(path))
	require.NoError(t, err)
	res, err := opt.Run(context.Background())
	require.NoError(t, err)

	cp, err := LoadCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Seed, cp.Seed)
	assert.Equal(t, 0, cp.Generation)
	assert.Equal(t, res.Population[0].Genotype, cp.Best)
	assert.Len(t, cp.Agents(), cfg.PopulationSize)

	// Resume from the saved population
	resumed, err := opt.RunFrom(context.Background(), cp.Agents())
	require.NoError(t, err)
	assert.Len(t, resumed.Population, cfg.PopulationSize)
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := testConfig()
	cfg.Trials = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEvaluateAveragesSharedTrials(t *testing.T) {
	cfg := testConfig()
	cfg.Trials = 3
	cfg.MaxPieces = 120
	o, err := New(cfg)
	require.NoError(t, err)

	g := agent.Random(rand.New(rand.NewPCG(3, 3))).Genotype
	pop := make([]*agent.Agent, 3)
	for i := range pop {
		pop[i] = agent.FromGenotype(g)
	}

	const gen = 2
	require.NoError(t, o.Evaluate(context.Background(), gen, pop))

	sum := 0
	for trial := range cfg.Trials {
		game := tetris.New(cfg.Rules, TrialSeed(cfg.Seed, gen, trial))
		sum += game.Run(agent.FromGenotype(g), cfg.MaxPieces)
	}
	want := float64(sum) / float64(cfg.Trials)

	for i, a := range pop {
		assert.InDelta(t, want, a.FitScore, 1e-9, "agent %d fitness is not the trial mean", i)
		assert.Equal(t, pop[0].FitScore, a.FitScore, "identical genotypes must score alike")
	}
}
