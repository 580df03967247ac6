package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-ga/internal/leaderboard"
	"github.com/vovakirdan/tetris-ga/internal/platform/tui"
)

var (
	flagPlayName string
	flagPlaySeed uint64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with the keyboard",
	Long: `Start a live game controlled from the keyboard. The final score is
added to the leaderboard under --name, three uppercase letters.

Controls:
  Left/Right - Move
  Up/X       - Rotate clockwise
  Z          - Rotate counter-clockwise
  Down       - Soft drop
  Space      - Hard drop
  C          - Hold
  P          - Pause
  R          - Restart
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Examples:
  tetrisga play
  tetrisga play --name ABC
  tetrisga play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayName, "name", "AAA", "Leaderboard name (three uppercase letters)")
	playCmd.Flags().Uint64Var(&flagPlaySeed, "seed", 0, "Piece sequence seed (0 = random per game)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if !leaderboard.ValidName(flagPlayName) || flagPlayName == leaderboard.BotName {
		exitf("invalid name %q: use three uppercase letters", flagPlayName)
	}

	cfg, _ := loadConfig()
	validate(cfg)

	logger := newLogger("play")
	store := openStore(cfg.Output.DBPath, logger)
	if store != nil {
		defer store.Close()
	}

	width, height := termSize()
	err := tui.Run(tui.Options{
		Mode:        tui.ModePlay,
		Rules:       cfg.Rules.Live(),
		Seed:        flagPlaySeed,
		TickRate:    cfg.Watch.TickRate,
		Player:      flagPlayName,
		Store:       store,
		Leaderboard: openLeaderboard(cfg.Output.LeaderboardPath),
		Width:       width,
		Height:      height,
	})
	if err != nil {
		exitf("%v", err)
	}
}
