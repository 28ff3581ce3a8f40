// wolf plays Wolfenstein-style levels as a top-down automap in the terminal.
//
// Usage:
//
//	wolf list                - List available games
//	wolf play [game]         - Play the episode (default) or the demo level
//	wolf menu                - Start menu to pick games interactively
//	wolf maps                - List the maps of the configured episode
//	wolf mapimg <map> <png>  - Render a map to a PNG image
//	wolf saves               - List stored save slots
//	wolf scores [game]       - Show high scores and level records
//	wolf serve               - Start SSH server for remote play
//	wolf config              - Print the engine configuration
//
// Global flags:
//
//	--config <path>    - Engine configuration YAML
//	--fps <rate>       - Set tick rate (default from config: 35)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--skill <preset>   - baby, easy, medium or hard
//	--db <path>        - Set database path (default: ~/.wolf/wolf.db)
//	--log-level <lvl>  - debug, info, warn or error
//	--player <name>    - Name stored with saves and scores
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wolf/internal/config"
	"github.com/vovakirdan/tui-wolf/internal/core"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf"
	"github.com/vovakirdan/tui-wolf/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagSkill    string
	flagDBPath   string
	flagLogLevel string
	flagPlayer   string
)

// Resolved by the root command before any subcommand runs.
var (
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wolf",
	Short: "Wolf - a Wolfenstein-style engine in your terminal",
	Long: `Wolf runs the simulation of a Wolfenstein 3-D style game and draws it
as a top-down automap in the terminal.

Available commands:
  list     - Show all available games
  play     - Play the episode or the demo level
  menu     - Interactive game picker menu
  maps     - List the maps of the configured episode
  mapimg   - Render a map to a PNG image
  saves    - List stored save slots
  scores   - View high scores and level records
  serve    - Start SSH server for remote play
  config   - Print the engine configuration

Examples:
  wolf play
  wolf play wolf_demo --skill baby
  wolf maps --dir ./maps
  wolf mapimg e1m1 e1m1.png
  wolf serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagSkill, "skill", "", "Skill preset: baby, easy, medium, hard")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Name stored with saves and scores (default: OS user)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(mapImgCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings reads the configuration, applies the flag overrides and
// hands the result to the game package.
func loadSettings(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		cfg.Engine.TickRate = flagFPS
	}
	if flagSeed != 0 {
		cfg.Engine.Seed = flagSeed
	}
	if flagSkill != "" {
		skill, err := config.ParseSkill(flagSkill)
		if err != nil {
			return err
		}
		cfg.Skill = skill
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	logger = config.NewLogger(os.Stderr, cfg.Log, "wolf")
	wolf.Configure(wolf.Settings{Config: cfg, Logger: logger})
	return nil
}

// useLogWriter redirects logging, e.g. to a file while the terminal UI
// owns the screen.
func useLogWriter(w io.Writer) {
	logger = config.NewLogger(w, appConfig.Log, "wolf")
	wolf.Configure(wolf.Settings{Config: appConfig, Logger: logger})
}

// runtimeConfig builds the per-game settings for a screen of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: appConfig.Engine.TickRate,
		Seed:     appConfig.Engine.Seed,
		Skill:    appConfig.Skill.Index(),
	}
}

// playerName returns the name saves and scores are stored under.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}

// openStore opens the configured database.
func openStore() (*storage.Store, error) {
	return storage.Open(appConfig.Storage.DBPath)
}
