// Package presets provides a global registry of named genotypes.
// Built-in weights register themselves in init(), so front ends can pick
// a player by name without training first.
package presets

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/genetic"
)

// Preset is a named genotype.
type Preset struct {
	Name        string
	Description string
	Genotype    agent.Genotype
}

var (
	presets = make(map[string]Preset)
	mu      sync.RWMutex
)

// Register adds a preset to the registry.
// Panics if a preset with the same name is already registered or the
// genotype has non-finite weights.
func Register(p Preset) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := presets[p.Name]; exists {
		panic(fmt.Sprintf("presets: %q already registered", p.Name))
	}
	if !p.Genotype.Finite() {
		panic(fmt.Sprintf("presets: %q has non-finite weights", p.Name))
	}

	presets[p.Name] = p
}

// List returns all registered presets, sorted by name.
func List() []Preset {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Preset, 0, len(presets))
	for _, p := range presets {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Get looks up a preset by name.
// Returns an error if the name is not registered.
func Get(name string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("presets: unknown preset %q", name)
	}

	return p, nil
}

// Exists checks if a preset with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := presets[name]
	return ok
}

// Resolve returns the genotype named by ref: a registered preset, or else
// the best genotype of a checkpoint file at that path.
func Resolve(ref string) (agent.Genotype, error) {
	if Exists(ref) {
		p, err := Get(ref)
		if err != nil {
			return agent.Genotype{}, err
		}
		return p.Genotype, nil
	}

	if _, err := os.Stat(ref); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return agent.Genotype{}, fmt.Errorf("presets: %q is neither a preset nor a checkpoint file", ref)
		}
		return agent.Genotype{}, fmt.Errorf("presets: %w", err)
	}
	cp, err := genetic.LoadCheckpoint(ref)
	if err != nil {
		return agent.Genotype{}, err
	}
	return cp.Best, nil
}
