package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/config"
	"github.com/vovakirdan/tetris-ga/internal/genetic"
	"github.com/vovakirdan/tetris-ga/internal/runlog"
)

var (
	flagProfile     string
	flagResume      string
	flagGenerations int
	flagTrials      int
	flagPopulation  int
	flagElite       int
	flagSurvival    float64
	flagMutation    float64
	flagMaxPieces   int
	flagWorkers     int
	flagTrainSeed   uint64
	flagCSV         string
	flagCheckpoint  string
	flagNoDB        bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Evolve feature weights with the genetic algorithm",
	Long: `Run the genetic optimizer. Every generation each agent plays the same
headless games; the best agents breed the next generation.

Per-generation statistics go to a CSV run log and, unless --no-db is set,
to the run history in the database. With --checkpoint the ranked population
is saved after every generation and can seed a later run via --resume.

Profiles:
  quick    - 3 generations of 20 agents, for smoke tests
  standard - the default budget
  full     - 50 generations of 200 agents

Examples:
  tetrisga train
  tetrisga train --profile quick --seed 42
  tetrisga train --generations 50 --checkpoint best.yaml
  tetrisga train --resume best.yaml`,
	Args: cobra.NoArgs,
	Run:  runTrain,
}

func init() {
	f := trainCmd.Flags()
	f.StringVar(&flagProfile, "profile", "", "Budget profile: quick, standard, full")
	f.StringVar(&flagResume, "resume", "", "Checkpoint file whose population seeds this run")
	f.IntVar(&flagGenerations, "generations", 0, "Number of generations")
	f.IntVar(&flagTrials, "trials", 0, "Games per agent per generation")
	f.IntVar(&flagPopulation, "population", 0, "Population size")
	f.IntVar(&flagElite, "elite", 0, "Agents copied unchanged into the next generation")
	f.Float64Var(&flagSurvival, "survival", 0, "Fraction of the population that may breed")
	f.Float64Var(&flagMutation, "mutation", 0, "Relative mutation strength")
	f.IntVar(&flagMaxPieces, "max-pieces", 0, "Piece drops per game")
	f.IntVar(&flagWorkers, "workers", 0, "Concurrent evaluators (0 = one per CPU)")
	f.Uint64Var(&flagTrainSeed, "seed", 0, "Run seed (0 = random)")
	f.StringVar(&flagCSV, "csv", "", "CSV run log path ({time} expands to the start time)")
	f.StringVar(&flagCheckpoint, "checkpoint", "", "Checkpoint file written after each generation")
	f.BoolVar(&flagNoDB, "no-db", false, "Do not record the run in the database")
}

// applyTrainFlags overrides configuration values with explicitly set flags.
func applyTrainFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagProfile != "" {
		if err := config.ApplyProfile(cfg, config.Profile(flagProfile)); err != nil {
			exitf("%v", err)
		}
	}

	o := &cfg.Optimizer
	f := cmd.Flags()
	if f.Changed("generations") {
		o.Generations = flagGenerations
	}
	if f.Changed("trials") {
		o.Trials = flagTrials
	}
	if f.Changed("population") {
		o.PopulationSize = flagPopulation
	}
	if f.Changed("elite") {
		o.EliteCount = flagElite
	}
	if f.Changed("survival") {
		o.SurvivalRate = flagSurvival
	}
	if f.Changed("mutation") {
		o.MutationRate = flagMutation
	}
	if f.Changed("max-pieces") {
		o.MaxPieces = flagMaxPieces
	}
	if f.Changed("workers") {
		o.Workers = flagWorkers
	}
	if f.Changed("seed") {
		o.Seed = flagTrainSeed
	}
	if f.Changed("csv") {
		cfg.Output.CSVPath = flagCSV
	}
	if f.Changed("checkpoint") {
		cfg.Output.CheckpointPath = flagCheckpoint
	}
}

func runTrain(cmd *cobra.Command, _ []string) {
	cfg, source := loadConfig()
	applyTrainFlags(cmd, &cfg)
	validate(cfg)

	// The seed is fixed here so the run history can record it.
	if cfg.Optimizer.Seed == 0 {
		cfg.Optimizer.Seed = rand.Uint64()
	}

	logger := newLogger("train")
	logger.Info("configuration loaded", "source", source)

	var initial []*agent.Agent
	if flagResume != "" {
		cp, err := genetic.LoadCheckpoint(flagResume)
		if err != nil {
			exitf("%v", err)
		}
		initial = cp.Agents()
		if len(initial) != cfg.Optimizer.PopulationSize {
			logger.Warn("checkpoint population size overrides configuration",
				"checkpoint", len(initial), "config", cfg.Optimizer.PopulationSize)
			cfg.Optimizer.PopulationSize = len(initial)
			validate(cfg)
		}
		logger.Info("resuming", "checkpoint", flagResume, "generation", cp.Generation, "best_fit", cp.BestFit)
	}

	opts := []genetic.Option{genetic.WithLogger(logger)}

	csvPath := cfg.Output.CSVFile(time.Now())
	if csvPath != "" {
		w, err := runlog.Create(csvPath)
		if err != nil {
			exitf("%v", err)
		}
		defer w.Close()
		opts = append(opts, genetic.WithRecorder(w))
		logger.Info("writing run log", "path", csvPath)
	}

	if !flagNoDB {
		if store := openStore(cfg.Output.DBPath, logger); store != nil {
			defer store.Close()
			yaml, err := config.Marshal(cfg)
			if err != nil {
				exitf("%v", err)
			}
			runID, err := store.CreateRun(string(yaml), cfg.Optimizer.Seed)
			if err != nil {
				exitf("%v", err)
			}
			opts = append(opts, genetic.WithRecorder(store.RunRecorder(runID)))
			logger.Info("recording run", "run", runID)
		}
	}

	if cfg.Output.CheckpointPath != "" {
		opts = append(opts, genetic.WithCheckpoint(cfg.Output.CheckpointPath))
	}

	opt, err := genetic.New(cfg.Genetic(), opts...)
	if err != nil {
		exitf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var res *genetic.Result
	if initial != nil {
		res, err = opt.RunFrom(ctx, initial)
	} else {
		res, err = opt.Run(ctx)
	}
	if err != nil {
		if res == nil || len(res.History) == 0 {
			exitf("%v", err)
		}
		logger.Warn("run stopped early", "error", err, "generations", len(res.History))
	}

	printResult(res)
}

func printResult(res *genetic.Result) {
	fmt.Println()
	fmt.Printf("Seed:        %d\n", res.Seed)
	fmt.Printf("Generations: %d\n", len(res.History))
	fmt.Printf("Best fit:    %s\n", strconv.FormatFloat(res.Best.FitScore, 'f', 2, 64))
	fmt.Println("Best genotype:")
	printGenotype(res.Best.Genotype)
}
