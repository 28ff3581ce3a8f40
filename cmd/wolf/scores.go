package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wolf/internal/core"
	"github.com/vovakirdan/tui-wolf/internal/registry"
)

var (
	flagScoresMap   string
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and level records",
	Long: `Display the top high scores for a game (default: wolf), followed by
the most recent level results.

Examples:
  wolf scores
  wolf scores wolf_demo
  wolf scores --map "Demo: Cellblock" --limit 20
  wolf scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMap, "map", "", "Only show level results for this map name")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Rows per table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every high score of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "wolf"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'wolf list' to see available games)", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		fmt.Printf("Cleared high scores of %s\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'wolf play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-12s  %-24s  %-8s  %s\n", "Rank", "Player", "Map", "Score", "Date")
		fmt.Printf("  %-4s  %-12s  %-24s  %-8s  %s\n", "----", "------", "---", "-----", "----")
		for i, e := range scores {
			score := fmt.Sprint(e.Score)
			if e.Won {
				score += "*"
			}
			fmt.Printf("  %-4d  %-12s  %-24s  %-8s  %s\n",
				i+1, e.Player, e.Map, score, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
		fmt.Println("* finished the episode")

		stats, err := store.GetGameStats(gameID)
		if err != nil {
			return err
		}
		fmt.Printf("\nRuns: %d  Wins: %d  Best: %d  Average: %.0f  Last played: %s\n",
			stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore,
			stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	history, err := store.LevelHistory(flagScoresMap, flagScoresLimit)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return nil
	}

	fmt.Printf("\nRecent levels\n\n")
	fmt.Printf("  %-12s  %-24s  %-6s  %5s  %5s  %5s  %5s  %5s\n", "Player", "Map", "Result", "Kills", "Secr", "Treas", "Time", "Par")
	fmt.Printf("  %-12s  %-24s  %-6s  %5s  %5s  %5s  %5s  %5s\n", "------", "---", "------", "-----", "----", "-----", "----", "---")
	for _, st := range history {
		result := "died"
		if st.Completed {
			result = "done"
		}
		fmt.Printf("  %-12s  %-24s  %-6s  %4d%%  %4d%%  %4d%%  %5s  %5s\n",
			st.Player, st.Map, result,
			core.Ratio(st.Kills, st.TotalKills),
			core.Ratio(st.Secrets, st.TotalSecrets),
			core.Ratio(st.Treasure, st.TotalTreasure),
			formatSeconds(st.Seconds), formatSeconds(st.ParSeconds))
	}
	return nil
}
