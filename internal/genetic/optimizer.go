// Package genetic evolves agent genotypes by fitness-proportional crossover,
// elitism and multiplicative Gaussian mutation.
package genetic

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

// Recorder receives the statistics of every evaluated generation.
type Recorder interface {
	Record(ctx context.Context, s Stats) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, s Stats) error

// Record calls f.
func (f RecorderFunc) Record(ctx context.Context, s Stats) error { return f(ctx, s) }

// Result is the outcome of a run.
type Result struct {
	// Seed is the seed actually used.
	Seed uint64
	// Population is the last evaluated generation, best first.
	Population []*agent.Agent
	// Best is the highest scoring agent seen in any generation.
	Best    agent.Agent
	History []Stats
}

// Optimizer runs the genetic loop. It owns its population exclusively.
type Optimizer struct {
	cfg            Config
	rng            *rand.Rand
	logger         *log.Logger
	recorders      []Recorder
	checkpointPath string
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(o *Optimizer) { o.logger = l }
}

// WithRecorder adds a sink for generation statistics.
func WithRecorder(r Recorder) Option {
	return func(o *Optimizer) { o.recorders = append(o.recorders, r) }
}

// New validates cfg and returns an optimizer.
func New(cfg Config, opts ...Option) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	o := &Optimizer{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o, nil
}

// Config returns the effective configuration, with seed and workers resolved.
func (o *Optimizer) Config() Config { return o.cfg }

// Run evolves a random initial population.
func (o *Optimizer) Run(ctx context.Context) (*Result, error) {
	pop := make([]*agent.Agent, o.cfg.PopulationSize)
	for i := range pop {
		pop[i] = agent.Random(o.rng)
	}
	return o.RunFrom(ctx, pop)
}

// RunFrom evolves the given initial population, which must have
// PopulationSize agents.
func (o *Optimizer) RunFrom(ctx context.Context, pop []*agent.Agent) (*Result, error) {
	if len(pop) != o.cfg.PopulationSize {
		return nil, fmt.Errorf("%w: initial population has %d agents, want %d",
			ErrInvalidConfig, len(pop), o.cfg.PopulationSize)
	}

	res := &Result{Seed: o.cfg.Seed}
	o.logger.Info("run started",
		"seed", o.cfg.Seed,
		"generations", o.cfg.Generations,
		"population", o.cfg.PopulationSize,
		"workers", o.cfg.Workers)

	for gen := range o.cfg.Generations {
		start := time.Now()
		if err := o.Evaluate(ctx, gen, pop); err != nil {
			return res, err
		}

		sorted := Rank(pop)
		stats := summarize(gen, sorted, o.cfg.EliteCount, time.Since(start))
		res.Population = sorted
		res.History = append(res.History, stats)
		if gen == 0 || sorted[0].FitScore > res.Best.FitScore {
			res.Best = *sorted[0]
		}

		o.logger.Info("generation",
			"generation", gen,
			"avg_fit", stats.AvgFit,
			"top_fit", stats.TopFit,
			"elite_fit", stats.EliteFit,
			"elapsed", stats.Elapsed.Round(time.Millisecond))

		for _, r := range o.recorders {
			if err := r.Record(ctx, stats); err != nil {
				return res, fmt.Errorf("genetic: record generation %d: %w", gen, err)
			}
		}

		if err := o.checkpoint(gen, sorted); err != nil {
			return res, err
		}

		if gen < o.cfg.Generations-1 {
			pop = Breed(sorted, o.cfg, o.rng)
		}
	}
	return res, nil
}

// TrialSeed returns the piece-sequence seed of one fitness trial. Every
// agent of a generation plays the same sequences.
func TrialSeed(runSeed uint64, gen, trial int) uint64 {
	r := rand.New(rand.NewPCG(runSeed, uint64(gen)<<32|uint64(trial)))
	return r.Uint64()
}

// Evaluate sets FitScore on every agent of pop to its mean score over the
// configured trials. Agents are scored concurrently, one game per worker
// at a time.
func (o *Optimizer) Evaluate(ctx context.Context, gen int, pop []*agent.Agent) error {
	seeds := make([]uint64, o.cfg.Trials)
	for t := range seeds {
		seeds[t] = TrialSeed(o.cfg.Seed, gen, t)
	}

	tasks := make(chan int, len(pop))
	for i := range pop {
		tasks <- i
	}
	close(tasks)

	var wg sync.WaitGroup
	for range min(o.cfg.Workers, len(pop)) {
		wg.Add(1)
		go func() {
			defer wg.Done()

			game := tetris.New(o.cfg.Rules, 0)
			scores := make([]int, len(seeds))
			for i := range tasks {
				if ctx.Err() != nil {
					continue
				}
				a := pop[i]
				for t, seed := range seeds {
					game.Reset(seed)
					scores[t] = game.Run(a, o.cfg.MaxPieces)
				}
				a.FitScore = mean(scores)
				o.logger.Debug("agent evaluated", "generation", gen, "agent", i, "fit", a.FitScore)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("genetic: generation %d: %w", gen, err)
	}
	return nil
}
