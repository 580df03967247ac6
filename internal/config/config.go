// Package config provides YAML-based configuration loading for training,
// evaluation and the interactive front ends.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tetris-ga/internal/genetic"
	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

// Config is the complete configuration file.
type Config struct {
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Rules     RulesConfig     `yaml:"rules"`
	Output    OutputConfig    `yaml:"output"`
	Watch     WatchConfig     `yaml:"watch"`
	Serve     ServeConfig     `yaml:"serve"`
}

// OptimizerConfig defines the genetic search parameters.
type OptimizerConfig struct {
	Generations    int     `yaml:"generations"`
	Trials         int     `yaml:"trials"`
	PopulationSize int     `yaml:"population_size"`
	EliteCount     int     `yaml:"elite_count"`
	SurvivalRate   float64 `yaml:"survival_rate"`
	MutationRate   float64 `yaml:"mutation_rate"`
	MaxPieces      int     `yaml:"max_pieces"` // Piece drops per headless game
	Workers        int     `yaml:"workers"`    // 0 = GOMAXPROCS
	Seed           uint64  `yaml:"seed"`       // 0 = random
}

// RulesConfig defines scoring and leveling.
type RulesConfig struct {
	ScoreTable        [tetris.MaxClear + 1]int `yaml:"score_table"`
	DropBonus         int                      `yaml:"drop_bonus"`          // Per locked piece in live games
	HeadlessDropBonus int                      `yaml:"headless_drop_bonus"` // Per locked piece in fitness trials
	LinesPerLevel     int                      `yaml:"lines_per_level"`
	LockDelay         int                      `yaml:"lock_delay"`
	FallInterval      time.Duration            `yaml:"fall_interval"`
	FallDecay         float64                  `yaml:"fall_decay"`
}

// OutputConfig defines where results are written.
type OutputConfig struct {
	CSVPath         string `yaml:"csv_path"` // {time} expands to the unix start time
	LeaderboardPath string `yaml:"leaderboard_path"`
	DBPath          string `yaml:"db_path"`
	CheckpointPath  string `yaml:"checkpoint_path"`
}

// WatchConfig defines the live bot display.
type WatchConfig struct {
	TickRate time.Duration `yaml:"tick_rate"`
	Weights  string        `yaml:"weights"` // Preset name or checkpoint file
}

// ServeConfig defines the SSH spectator server.
type ServeConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Live returns the rules for interactive and watched games.
func (r RulesConfig) Live() tetris.Rules {
	return tetris.Rules{
		ScoreTable:    r.ScoreTable,
		DropBonus:     r.DropBonus,
		LinesPerLevel: r.LinesPerLevel,
		LockDelay:     r.LockDelay,
		FallInterval:  r.FallInterval,
		FallDecay:     r.FallDecay,
	}
}

// Headless returns the rules for fitness trials.
func (r RulesConfig) Headless() tetris.Rules {
	rules := r.Live()
	rules.DropBonus = r.HeadlessDropBonus
	return rules
}

// Genetic returns the optimizer configuration with headless rules.
func (c Config) Genetic() genetic.Config {
	o := c.Optimizer
	return genetic.Config{
		Generations:    o.Generations,
		Trials:         o.Trials,
		PopulationSize: o.PopulationSize,
		EliteCount:     o.EliteCount,
		SurvivalRate:   o.SurvivalRate,
		MutationRate:   o.MutationRate,
		MaxPieces:      o.MaxPieces,
		Workers:        o.Workers,
		Seed:           o.Seed,
		Rules:          c.Rules.Headless(),
	}
}

// CSVFile returns the run log path for a run started at t.
func (o OutputConfig) CSVFile(t time.Time) string {
	return strings.ReplaceAll(o.CSVPath, "{time}", strconv.FormatInt(t.Unix(), 10))
}

// Validate reports every invalid value.
func (c Config) Validate() error {
	var errs []error
	if err := c.Genetic().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Rules.HeadlessDropBonus < 0 {
		errs = append(errs, fmt.Errorf("config: rules.headless_drop_bonus must be >= 0, got %d", c.Rules.HeadlessDropBonus))
	}
	if err := c.Rules.Live().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Watch.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("config: watch.tick_rate must be > 0, got %s", c.Watch.TickRate))
	}
	return errors.Join(errs...)
}
