package main

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/genetic"
	"github.com/vovakirdan/tetris-ga/internal/presets"
	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

var (
	flagEvalWeights   string
	flagEvalGames     int
	flagEvalMaxPieces int
	flagEvalSeed      uint64
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Score a genotype over headless games",
	Long: `Play a number of headless games with one genotype and print the mean,
minimum and maximum score. Games use the same rules and piece budget as
training, so the mean is comparable to a fitness value.

Examples:
  tetrisga eval
  tetrisga eval --weights pytris-alt --games 50
  tetrisga eval --weights best.yaml --seed 7`,
	Args: cobra.NoArgs,
	Run:  runEval,
}

func init() {
	evalCmd.Flags().StringVar(&flagEvalWeights, "weights", "", "Preset name or checkpoint file (default: watch.weights)")
	evalCmd.Flags().IntVar(&flagEvalGames, "games", 10, "Number of games")
	evalCmd.Flags().IntVar(&flagEvalMaxPieces, "max-pieces", 0, "Piece drops per game (default: optimizer.max_pieces)")
	evalCmd.Flags().Uint64Var(&flagEvalSeed, "seed", 0, "Base seed (0 = random)")
}

// EvalSummary aggregates the scores of an evaluation.
type EvalSummary struct {
	Scores []int
	Mean   float64
	Min    int
	Max    int
}

// evaluate plays games headless games with g. Game i uses the trial seed
// of generation 0, trial i, so runs with the same seed are comparable.
func evaluate(g agent.Genotype, rules tetris.Rules, games, maxPieces int, seed uint64) EvalSummary {
	a := agent.FromGenotype(g)
	game := tetris.New(rules, seed)

	s := EvalSummary{Scores: make([]int, games)}
	total := 0
	for i := range games {
		game.Reset(genetic.TrialSeed(seed, 0, i))
		s.Scores[i] = game.Run(a, maxPieces)
		total += s.Scores[i]
	}
	if games > 0 {
		s.Mean = float64(total) / float64(games)
		s.Min = slices.Min(s.Scores)
		s.Max = slices.Max(s.Scores)
	}
	return s
}

func runEval(cmd *cobra.Command, _ []string) {
	cfg, _ := loadConfig()
	validate(cfg)

	if flagEvalGames < 1 {
		exitf("--games must be >= 1, got %d", flagEvalGames)
	}
	maxPieces := cfg.Optimizer.MaxPieces
	if cmd.Flags().Changed("max-pieces") {
		maxPieces = flagEvalMaxPieces
	}
	if maxPieces < 1 {
		exitf("--max-pieces must be >= 1, got %d", maxPieces)
	}

	ref := cfg.Watch.Weights
	if flagEvalWeights != "" {
		ref = flagEvalWeights
	}
	g, err := presets.Resolve(ref)
	if err != nil {
		exitf("%v", err)
	}

	seed := flagEvalSeed
	if seed == 0 {
		seed = rand.Uint64()
	}

	s := evaluate(g, cfg.Rules.Headless(), flagEvalGames, maxPieces, seed)

	fmt.Printf("Genotype: %s\n", ref)
	fmt.Printf("Seed:     %d\n", seed)
	fmt.Printf("Games:    %d x %d pieces\n", flagEvalGames, maxPieces)
	fmt.Println()
	fmt.Printf("Mean: %.2f\n", s.Mean)
	fmt.Printf("Min:  %d\n", s.Min)
	fmt.Printf("Max:  %d\n", s.Max)
}
