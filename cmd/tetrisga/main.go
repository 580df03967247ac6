// tetrisga trains and runs a heuristic Tetris bot whose feature weights are
// tuned by a genetic algorithm.
//
// Usage:
//
//	tetrisga train           - Evolve feature weights
//	tetrisga eval            - Score a genotype over headless games
//	tetrisga watch           - Watch the bot play
//	tetrisga play            - Play yourself
//	tetrisga scores          - Show finished games and the leaderboard
//	tetrisga runs            - Show training history
//	tetrisga serve           - Start SSH server for spectators
//	tetrisga presets         - List built-in genotypes
//	tetrisga config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Configuration file
//	--log-level <lvl>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetrisga",
	Short: "Tetris bot tuned by a genetic algorithm",
	Long: `tetrisga plays Tetris with a one-piece lookahead bot. The bot scores
every placement of the falling piece with a weighted sum of nine board
features, and a genetic algorithm evolves the weights.

Available commands:
  train    - Evolve feature weights
  eval     - Score a genotype over headless games
  watch    - Watch the bot play live
  play     - Play with the keyboard
  scores   - View finished games and the leaderboard
  runs     - View training history
  serve    - Start SSH server where visitors watch the bot
  presets  - List built-in genotypes
  config   - Print the effective configuration

Examples:
  tetrisga train --profile quick
  tetrisga watch --weights pytris
  tetrisga play --name ABC
  tetrisga serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(configCmd)
}
