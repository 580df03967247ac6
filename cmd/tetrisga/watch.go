package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-ga/internal/leaderboard"
	"github.com/vovakirdan/tetris-ga/internal/platform/tui"
	"github.com/vovakirdan/tetris-ga/internal/presets"
)

var (
	flagWatchWeights string
	flagWatchTick    time.Duration
	flagWatchSeed    uint64
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the bot play",
	Long: `Run a live game where the bot steers every piece to the placement it
rates best: rotate, shift, then hard drop, one step per tick. Gravity runs
at the normal fall interval.

Finished games are recorded on the leaderboard as ` + leaderboard.BotName + `.

Controls:
  P        - Pause
  R        - Restart
  Ctrl+S   - Save a text screenshot
  Q/Ctrl+C - Quit

Examples:
  tetrisga watch
  tetrisga watch --weights pytris-alt --tick 20ms
  tetrisga watch --weights best.yaml --seed 7`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchWeights, "weights", "", "Preset name or checkpoint file (default: watch.weights)")
	watchCmd.Flags().DurationVar(&flagWatchTick, "tick", 0, "Time between bot actions (default: watch.tick_rate)")
	watchCmd.Flags().Uint64Var(&flagWatchSeed, "seed", 0, "Piece sequence seed (0 = random per game)")
}

func runWatch(cmd *cobra.Command, _ []string) {
	cfg, _ := loadConfig()
	if cmd.Flags().Changed("weights") {
		cfg.Watch.Weights = flagWatchWeights
	}
	if cmd.Flags().Changed("tick") {
		cfg.Watch.TickRate = flagWatchTick
	}
	validate(cfg)

	g, err := presets.Resolve(cfg.Watch.Weights)
	if err != nil {
		exitf("%v", err)
	}

	logger := newLogger("watch")
	store := openStore(cfg.Output.DBPath, logger)
	if store != nil {
		defer store.Close()
	}

	width, height := termSize()
	err = tui.Run(tui.Options{
		Mode:        tui.ModeWatch,
		Rules:       cfg.Rules.Live(),
		Genotype:    g,
		Seed:        flagWatchSeed,
		TickRate:    cfg.Watch.TickRate,
		Store:       store,
		Leaderboard: openLeaderboard(cfg.Output.LeaderboardPath),
		Width:       width,
		Height:      height,
	})
	if err != nil {
		exitf("%v", err)
	}
}
