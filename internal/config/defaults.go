package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

//go:embed defaults/tetrisga.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	rules := tetris.DefaultRules()
	return Config{
		Optimizer: OptimizerConfig{
			Generations:    20,
			Trials:         3,
			PopulationSize: 100,
			EliteCount:     5,
			SurvivalRate:   0.35,
			MutationRate:   0.2,
			MaxPieces:      500,
			Workers:        0,
			Seed:           0,
		},
		Rules: RulesConfig{
			ScoreTable:        rules.ScoreTable,
			DropBonus:         rules.DropBonus,
			HeadlessDropBonus: 0,
			LinesPerLevel:     rules.LinesPerLevel,
			LockDelay:         rules.LockDelay,
			FallInterval:      rules.FallInterval,
			FallDecay:         rules.FallDecay,
		},
		Output: OutputConfig{
			CSVPath:         "run_at_{time}.csv",
			LeaderboardPath: "~/.tetrisga/leaderboard.txt",
			DBPath:          "~/.tetrisga/tetrisga.db",
			CheckpointPath:  "",
		},
		Watch: WatchConfig{
			TickRate: 50 * time.Millisecond,
			Weights:  "pytris",
		},
		Serve: ServeConfig{
			Address:     ":23234",
			HostKeyPath: "",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
