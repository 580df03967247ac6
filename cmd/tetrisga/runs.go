package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagRunsLimit int
	flagRunID     int64
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show training history",
	Long: `List recorded training runs, newest first. With --run, print the
per-generation statistics of one run.

Examples:
  tetrisga runs
  tetrisga runs --run 3`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Runs to list")
	runsCmd.Flags().Int64Var(&flagRunID, "run", 0, "Show the generations of this run")
}

func runRuns(_ *cobra.Command, _ []string) {
	cfg, _ := loadConfig()
	store := openStore(cfg.Output.DBPath, newLogger("runs"))
	if store == nil {
		exitf("no database at %s", cfg.Output.DBPath)
	}
	defer store.Close()

	if flagRunID != 0 {
		gens, err := store.Generations(flagRunID)
		if err != nil {
			exitf("%v", err)
		}
		if len(gens) == 0 {
			fmt.Printf("Run %d has no recorded generations.\n", flagRunID)
			return
		}
		fmt.Printf("Run %d\n\n", flagRunID)
		fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "Gen", "Average", "Top", "Elite")
		fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "---", "-------", "---", "-----")
		for _, st := range gens {
			fmt.Printf("  %-4d  %-10.1f  %-10.1f  %.1f\n", st.Generation, st.AvgFit, st.TopFit, st.EliteFit)
		}
		fmt.Println()
		fmt.Println("Top genotype of the last generation:")
		printGenotype(gens[len(gens)-1].TopGene)
		return
	}

	runs, err := store.Runs(flagRunsLimit)
	if err != nil {
		exitf("%v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No training runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tetrisga train' to start one!")
		return
	}

	fmt.Printf("  %-4s  %-4s  %-10s  %-20s  %s\n", "Run", "Gens", "Best", "Seed", "Date")
	fmt.Printf("  %-4s  %-4s  %-10s  %-20s  %s\n", "---", "----", "----", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-4d  %-4d  %-10.1f  %-20d  %s\n",
			r.ID, r.Generations, r.BestFit, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
