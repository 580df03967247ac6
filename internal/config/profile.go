package config

import "fmt"

// Profile is a named training budget.
type Profile string

const (
	ProfileQuick    Profile = "quick"
	ProfileStandard Profile = "standard"
	ProfileFull     Profile = "full"
)

// Profiles lists the known profiles in increasing cost.
var Profiles = []Profile{ProfileQuick, ProfileStandard, ProfileFull}

// ApplyProfile overrides the optimizer budget with a profile's values.
// Other optimizer settings are left alone.
func ApplyProfile(cfg *Config, p Profile) error {
	o := &cfg.Optimizer
	switch p {
	case ProfileQuick:
		o.Generations, o.Trials, o.PopulationSize, o.MaxPieces = 3, 1, 20, 200
		o.EliteCount = min(o.EliteCount, 2)
	case ProfileStandard:
		o.Generations, o.Trials, o.PopulationSize, o.MaxPieces = 20, 3, 100, 500
	case ProfileFull:
		o.Generations, o.Trials, o.PopulationSize, o.MaxPieces = 50, 5, 200, 1000
	default:
		return fmt.Errorf("config: unknown profile %q (want one of %v)", p, Profiles)
	}
	return nil
}
