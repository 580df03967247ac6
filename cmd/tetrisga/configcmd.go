package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-ga/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration as YAML after the search order is applied:
--config, ~/.tetrisga/config.yaml, ./configs/tetrisga.yaml, then the
built-in defaults. The source is printed to stderr.

Examples:
  tetrisga config > my.yaml
  tetrisga --config my.yaml config`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, source := loadConfig()
	data, err := config.Marshal(cfg)
	if err != nil {
		exitf("%v", err)
	}
	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	os.Stdout.Write(data)
}
