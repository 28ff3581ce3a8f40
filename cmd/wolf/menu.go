package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wolf/internal/platform/tui"
	"github.com/vovakirdan/tui-wolf/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again. When you have
a quick save (Ctrl+S in game) the menu starts on a Continue entry.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - High scores
  Q            - Quit

Examples:
  wolf menu
  wolf menu --fps 30
  wolf menu --db ./wolf.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	closeLog := logToFile()
	defer closeLog()

	store, err := openStore()
	if err != nil {
		logger.Warn("could not open database, saves and scores are disabled", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	player := playerName()
	cfg := runtimeConfig(terminalSize())

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, player)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}

		// Fresh seed for each game unless one was fixed
		if appConfig.Engine.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		opts := tui.RunOptions{Store: store, Player: player, Logger: logger, Resume: menuResult.Resume}
		if err := tui.Run(game, cfg, opts); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
