package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/storage"
)

var (
	flagMapsDir   string
	flagWriteDemo string
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List the maps of the configured episode",
	Long: `List every map file in the maps directory with its level name, par
time, enemy count and best recorded time.

--write-demo saves the built-in demo level as a map file, a starting point
for new maps.

Examples:
  wolf maps
  wolf maps --dir ./maps
  wolf maps --write-demo ./maps/demo.map`,
	RunE: runMaps,
}

func init() {
	mapsCmd.Flags().StringVar(&flagMapsDir, "dir", "", "Maps directory (default from config)")
	mapsCmd.Flags().StringVar(&flagWriteDemo, "write-demo", "", "Write the demo level to this file and exit")
}

func runMaps(_ *cobra.Command, _ []string) error {
	if flagWriteDemo != "" {
		if err := os.WriteFile(flagWriteDemo, level.Encode(wolf.DemoMap()), 0o644); err != nil {
			return fmt.Errorf("writing demo map: %w", err)
		}
		fmt.Printf("Wrote %q to %s\n", wolf.DemoName, flagWriteDemo)
		return nil
	}

	dir := appConfig.Maps.Dir
	if flagMapsDir != "" {
		dir = flagMapsDir
	}
	paths, err := wolf.ListMaps(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Printf("No %s files in %s.\n", wolf.MapExt, dir)
		fmt.Println("Run 'wolf maps --write-demo <file>' to create one.")
		return nil
	}

	// Best times are optional; the listing works without a database
	store, err := openStore()
	if err != nil {
		logger.Debug("no database for best times", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	fmt.Printf("Maps in %s:\n\n", dir)
	fmt.Printf("  %-10s  %-24s  %-5s  %6s  %7s  %8s  %s\n", "File", "Name", "Par", "Actors", "Secrets", "Treasure", "Best")
	fmt.Printf("  %-10s  %-24s  %-5s  %6s  %7s  %8s  %s\n", "----", "----", "---", "------", "-------", "--------", "----")
	for _, path := range paths {
		file := strings.TrimSuffix(filepath.Base(path), wolf.MapExt)
		lvl, err := level.LoadMap(path)
		if err != nil {
			fmt.Printf("  %-10s  error: %v\n", file, err)
			continue
		}
		fmt.Printf("  %-10s  %-24s  %-5s  %6d  %7d  %8d  %s\n",
			file, lvl.Name, lvl.ParStr, len(lvl.Actors), lvl.TotalSecrets, lvl.TotalTreasure,
			bestTime(store, lvl.Name))
	}

	fmt.Println()
	if appConfig.Maps.Start == "" {
		fmt.Println("Set maps.start in the config to play these maps.")
	}
	return nil
}

// bestTime formats the fastest completion of a map, "-" when there is none.
func bestTime(store *storage.Store, mapName string) string {
	if store == nil {
		return "-"
	}
	secs, ok, err := store.BestTime(mapName)
	if err != nil || !ok {
		return "-"
	}
	return formatSeconds(secs)
}

func formatSeconds(secs float64) string {
	s := int(secs)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
