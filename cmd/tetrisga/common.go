package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tetris-ga/internal/config"
	"github.com/vovakirdan/tetris-ga/internal/leaderboard"
	"github.com/vovakirdan/tetris-ga/internal/storage"
)

// exitf prints an error line and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration named by --config, or the first one
// found in the search path.
func loadConfig() (config.Config, string) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		exitf("%v", err)
	}
	return cfg, source
}

// validate exits when cfg is unusable after flag overrides.
func validate(cfg config.Config) {
	if err := cfg.Validate(); err != nil {
		exitf("invalid configuration:\n%v", err)
	}
}

func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		exitf("%v", err)
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the scores database, or returns nil with a warning.
func openStore(path string, logger *log.Logger) *storage.Store {
	if path == "" {
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open database, results will not be saved", "path", path, "error", err)
		return nil
	}
	return store
}

// openLeaderboard returns the text leaderboard, or nil when disabled.
func openLeaderboard(path string) *leaderboard.Board {
	if path == "" {
		return nil
	}
	expanded, err := config.ExpandHome(path)
	if err != nil {
		exitf("%v", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		exitf("cannot create leaderboard directory: %v", err)
	}
	return leaderboard.Open(expanded)
}

// termSize returns the terminal size, or 80x24 if it cannot be read.
func termSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
