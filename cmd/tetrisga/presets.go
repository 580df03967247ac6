package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/features"
	"github.com/vovakirdan/tetris-ga/internal/presets"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List built-in genotypes",
	Long: `Without arguments, list the registered genotypes. With a name, print
its weights per feature.

Preset names are accepted wherever a command takes --weights.

Examples:
  tetrisga presets
  tetrisga presets pytris`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPresets,
}

func runPresets(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		p, err := presets.Get(args[0])
		if err != nil {
			exitf("%v", err)
		}
		fmt.Printf("%s - %s\n\n", p.Name, p.Description)
		printGenotype(p.Genotype)
		return
	}

	fmt.Println("Available presets:")
	fmt.Println()
	for _, p := range presets.List() {
		fmt.Printf("  %-12s  %s\n", p.Name, p.Description)
	}
	fmt.Println()
	fmt.Println("Run 'tetrisga watch --weights <name>' to watch one play.")
}

func printGenotype(g agent.Genotype) {
	for i, w := range g {
		fmt.Printf("  %-18s %s\n", features.Names[i], strconv.FormatFloat(w, 'f', 6, 64))
	}
}
