package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-ga/internal/platform/tui"
)

var (
	flagScoresLimit  int
	flagScoresBrowse bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show finished games and the leaderboard",
	Long: `Display the best finished games from the database and the top of the
text leaderboard.

With --browse, open an interactive scoreboard that also lists training runs.

Examples:
  tetrisga scores
  tetrisga scores --limit 3
  tetrisga scores --browse`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Rows to show per table")
	scoresCmd.Flags().BoolVar(&flagScoresBrowse, "browse", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, _ := loadConfig()
	logger := newLogger("scores")

	store := openStore(cfg.Output.DBPath, logger)
	if store != nil {
		defer store.Close()
	}
	board := openLeaderboard(cfg.Output.LeaderboardPath)

	if flagScoresBrowse {
		width, height := termSize()
		if err := tui.RunScoreboard(store, board, flagScoresLimit, width, height); err != nil {
			exitf("%v", err)
		}
		return
	}

	fmt.Println("Leaderboard")
	fmt.Println()
	if board != nil {
		entries, err := board.Standings(flagScoresLimit)
		if err != nil {
			exitf("reading leaderboard: %v", err)
		}
		fmt.Printf("  %-4s  %-8s  %s\n", "Rank", "Name", "Score")
		fmt.Printf("  %-4s  %-8s  %s\n", "----", "----", "-----")
		for i, e := range entries {
			fmt.Printf("  %-4d  %-8s  %d\n", i+1, e.Name, e.Score)
		}
	} else {
		fmt.Println("  Leaderboard disabled (output.leaderboard_path is empty).")
	}

	fmt.Println()
	fmt.Println("Games")
	fmt.Println()
	if store == nil {
		fmt.Println("  No database.")
		return
	}

	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		exitf("retrieving scores: %v", err)
	}
	if len(scores) == 0 {
		fmt.Println("  No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tetrisga watch' or 'tetrisga play' to record the first one!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-5s  %s\n", "Rank", "Player", "Score", "Lines", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-5s  %s\n", "----", "------", "-----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8s  %-8d  %-5d  %-5d  %s\n",
			i+1, e.Player, e.Score, e.Lines, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.AllPlayerStats()
	if err != nil {
		exitf("retrieving player stats: %v", err)
	}
	fmt.Println()
	for _, player := range slices.Sorted(maps.Keys(stats)) {
		st := stats[player]
		fmt.Printf("  %-8s %d games, best %d, avg %.0f, %d lines\n",
			player, st.GamesCount, st.HighScore, st.AvgScore, st.TotalLines)
	}
}
