package genetic

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tetris-ga/internal/agent"
)

// Checkpoint is the YAML snapshot written after a generation.
type Checkpoint struct {
	Seed       uint64           `yaml:"seed"`
	Generation int              `yaml:"generation"`
	BestFit    float64          `yaml:"best_fit"`
	Best       agent.Genotype   `yaml:"best"`
	Population []agent.Genotype `yaml:"population"`
}

// NewCheckpoint captures a population sorted by descending fitness.
func NewCheckpoint(seed uint64, gen int, sorted []*agent.Agent) Checkpoint {
	cp := Checkpoint{
		Seed:       seed,
		Generation: gen,
		Population: make([]agent.Genotype, len(sorted)),
	}
	for i, a := range sorted {
		cp.Population[i] = a.Genotype
	}
	if len(sorted) > 0 {
		cp.BestFit = sorted[0].FitScore
		cp.Best = sorted[0].Genotype
	}
	return cp
}

// Agents returns fresh agents for the checkpointed population.
func (cp Checkpoint) Agents() []*agent.Agent {
	out := make([]*agent.Agent, len(cp.Population))
	for i, g := range cp.Population {
		out[i] = agent.FromGenotype(g)
	}
	return out
}

// SaveCheckpoint writes cp to path, replacing any existing file.
func SaveCheckpoint(path string, cp Checkpoint) error {
	data, err := yaml.Marshal(cp)
	if err != nil {
		return fmt.Errorf("genetic: marshal checkpoint: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("genetic: write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("genetic: write checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a checkpoint written by SaveCheckpoint.
func LoadCheckpoint(path string) (Checkpoint, error) {
	var cp Checkpoint
	data, err := os.ReadFile(path)
	if err != nil {
		return cp, fmt.Errorf("genetic: read checkpoint: %w", err)
	}
	if err := yaml.Unmarshal(data, &cp); err != nil {
		return cp, fmt.Errorf("genetic: parse checkpoint %s: %w", path, err)
	}
	if !cp.Best.Finite() {
		return cp, errors.New("genetic: checkpoint best genotype has non-finite weights")
	}
	return cp, nil
}

func (o *Optimizer) checkpoint(gen int, sorted []*agent.Agent) error {
	if o.checkpointPath == "" {
		return nil
	}
	return SaveCheckpoint(o.checkpointPath, NewCheckpoint(o.cfg.Seed, gen, sorted))
}

// WithCheckpoint saves a checkpoint to path after every generation.
func WithCheckpoint(path string) Option {
	return func(o *Optimizer) { o.checkpointPath = path }
}
