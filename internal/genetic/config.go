package genetic

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

// ErrInvalidConfig wraps every configuration problem reported by Validate.
var ErrInvalidConfig = errors.New("genetic: invalid config")

// Config holds every optimizer parameter. There are no implicit defaults;
// callers fill it from the configuration layer.
type Config struct {
	// Generations is the fixed number of generations to run.
	Generations int
	// Trials is the number of games averaged into one fitness score.
	Trials int
	// PopulationSize is the number of agents per generation.
	PopulationSize int
	// EliteCount agents are copied unchanged into the next generation.
	EliteCount int
	// SurvivalRate is the fraction of the sorted population used as parents.
	SurvivalRate float64
	// MutationRate is the standard deviation of the multiplicative noise.
	MutationRate float64
	// MaxPieces caps the piece drops of one headless game.
	MaxPieces int
	// Workers is the number of concurrent evaluators. Zero uses GOMAXPROCS.
	Workers int
	// Seed drives population, breeding and trial piece sequences. Zero
	// picks a random seed, reported in Result.Seed.
	Seed uint64
	// Rules are the game rules used for fitness trials.
	Rules tetris.Rules
}

// Parents returns how many top agents are eligible for crossover.
func (c Config) Parents() int {
	return int(math.Round(float64(c.PopulationSize) * c.SurvivalRate))
}

// Validate reports every invalid field, joined and wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	if c.Generations < 1 {
		errs = append(errs, fmt.Errorf("generations must be >= 1, got %d", c.Generations))
	}
	if c.Trials < 1 {
		errs = append(errs, fmt.Errorf("trials must be >= 1, got %d", c.Trials))
	}
	if c.PopulationSize < 2 {
		errs = append(errs, fmt.Errorf("population_size must be >= 2, got %d", c.PopulationSize))
	}
	if c.EliteCount < 0 || c.EliteCount > c.PopulationSize {
		errs = append(errs, fmt.Errorf("elite_count must be in [0, %d], got %d", c.PopulationSize, c.EliteCount))
	}
	if c.SurvivalRate <= 0 || c.SurvivalRate > 1 {
		errs = append(errs, fmt.Errorf("survival_rate must be in (0, 1], got %g", c.SurvivalRate))
	} else if c.PopulationSize >= 2 && c.Parents() < 2 {
		errs = append(errs, fmt.Errorf("survival_rate %g leaves %d parents, need at least 2", c.SurvivalRate, c.Parents()))
	}
	if c.MutationRate < 0 || math.IsNaN(c.MutationRate) || math.IsInf(c.MutationRate, 0) {
		errs = append(errs, fmt.Errorf("mutation_rate must be a finite value >= 0, got %g", c.MutationRate))
	}
	if c.MaxPieces < 1 {
		errs = append(errs, fmt.Errorf("max_pieces must be >= 1, got %d", c.MaxPieces))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
