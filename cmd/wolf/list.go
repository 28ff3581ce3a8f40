package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wolf/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all registered games.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Best scores are optional; a missing database only hides the column.
	store, err := openStore()
	if err != nil {
		logger.Debug("no database for best scores", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	fmt.Printf("  %-*s  %-20s  %-5s  %-7s  %s\n", maxIDLen, "ID", "Title", "Saves", "Best", "Description")
	fmt.Printf("  %-*s  %-20s  %-5s  %-7s  %s\n", maxIDLen, "--", "-----", "-----", "----", "-----------")

	for _, g := range games {
		saves := "no"
		if g.Saves {
			saves = "yes"
		}
		best := "-"
		if store != nil {
			if hs, err := store.HighScore(g.ID); err == nil && hs > 0 {
				best = fmt.Sprint(hs)
			}
		}
		fmt.Printf("  %-*s  %-20s  %-5s  %-7s  %s\n", maxIDLen, g.ID, g.Title, saves, best, g.Summary)
	}

	fmt.Println()
	fmt.Printf("Skill: %s (%s)\n", appConfig.Skill, appConfig.Skill.Label())
	if appConfig.Maps.Start == "" {
		fmt.Println("Episode: built-in demo level (set maps.start to play map files)")
	} else {
		fmt.Printf("Episode: %s from %s\n", appConfig.Maps.Start, appConfig.Maps.Dir)
	}
	fmt.Println()
	fmt.Println("Run 'wolf play <id>' to play a game.")
}
