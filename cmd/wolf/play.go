package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-wolf/internal/config"
	"github.com/vovakirdan/tui-wolf/internal/platform/tui"
	"github.com/vovakirdan/tui-wolf/internal/registry"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the configured episode, or the game given by ID.

Controls:
  W/S, Up/Down      - Walk forward/backward
  A/D, Left/Right   - Turn
  Q/E, ,/.          - Strafe
  Shift + move      - Run
  Space             - Fire
  F/Enter           - Open doors, push walls, ride elevators
  1-4, Tab          - Select/cycle weapon
  +/-               - Automap zoom
  Ctrl+S / Ctrl+L   - Save / load the quick slot
  P/Esc             - Pause (Esc again leaves)
  R                 - Restart (after game over)
  Ctrl+C            - Quit

The log is written to ~/.wolf/wolf.log while the game runs.

Examples:
  wolf play
  wolf play wolf_demo
  wolf play --resume
  wolf play --skill hard --seed 42
  wolf play --config ./my-wolf.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Start from the quick save slot")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := "wolf"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'wolf list' to see available games)", gameID)
	}

	closeLog := logToFile()
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("could not open database, saves and scores are disabled", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	opts := tui.RunOptions{Store: store, Player: playerName(), Logger: logger, Resume: flagResume}
	if err := tui.Run(game, runtimeConfig(width, height), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// terminalSize returns the size of stdout, 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// logToFile sends the log to ~/.wolf/wolf.log while the terminal UI owns
// the screen. The returned func restores stderr logging.
func logToFile() func() {
	path, err := config.ExpandHome(filepath.Join("~", ".wolf", "wolf.log"))
	if err != nil {
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return func() {}
	}
	useLogWriter(f)
	return func() {
		useLogWriter(os.Stderr)
		f.Close()
	}
}
