package tetris

import (
	"errors"
	"fmt"
	"time"
)

// Rules holds the scoring and leveling parameters of a game.
type Rules struct {
	// ScoreTable is the base award indexed by rows cleared (0-4), multiplied by level.
	ScoreTable [MaxClear + 1]int
	// DropBonus is awarded times level for every locked piece.
	DropBonus int
	// LinesPerLevel is the line goal reset at every level up.
	LinesPerLevel int
	// LockDelay is how many gravity steps a grounded piece survives before locking.
	LockDelay int
	// FallInterval is the gravity period at level 1.
	FallInterval time.Duration
	// FallDecay multiplies the fall interval at every level up.
	FallDecay float64
}

// DefaultRules returns the classic scoring: 50/150/350/1000 per 1-4 rows,
// a ten line goal per level and ten percent faster gravity per level.
func DefaultRules() Rules {
	return Rules{
		ScoreTable:    [MaxClear + 1]int{0, 50, 150, 350, 1000},
		DropBonus:     10,
		LinesPerLevel: 10,
		LockDelay:     6,
		FallInterval:  time.Second,
		FallDecay:     0.9,
	}
}

// Validate reports every rule that cannot drive a game.
func (r Rules) Validate() error {
	var errs []error
	for i, s := range r.ScoreTable {
		if s < 0 {
			errs = append(errs, fmt.Errorf("tetris: score_table[%d] must be >= 0, got %d", i, s))
		}
	}
	if r.DropBonus < 0 {
		errs = append(errs, fmt.Errorf("tetris: drop_bonus must be >= 0, got %d", r.DropBonus))
	}
	if r.LinesPerLevel < 1 {
		errs = append(errs, fmt.Errorf("tetris: lines_per_level must be >= 1, got %d", r.LinesPerLevel))
	}
	if r.LockDelay < 0 {
		errs = append(errs, fmt.Errorf("tetris: lock_delay must be >= 0, got %d", r.LockDelay))
	}
	if r.FallInterval <= 0 {
		errs = append(errs, fmt.Errorf("tetris: fall_interval must be > 0, got %s", r.FallInterval))
	}
	if r.FallDecay <= 0 || r.FallDecay > 1 {
		errs = append(errs, fmt.Errorf("tetris: fall_decay must be in (0, 1], got %g", r.FallDecay))
	}
	return errors.Join(errs...)
}
