package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagSavesAll    bool
	flagSavesDelete int
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List stored save slots",
	Long: `List the save slots of the current player. Ctrl+S in a game writes
slot 0 and Ctrl+L restores it.

Examples:
  wolf saves
  wolf saves --all
  wolf saves --delete 0`,
	RunE: runSaves,
}

func init() {
	savesCmd.Flags().BoolVar(&flagSavesAll, "all", false, "List the slots of every player")
	savesCmd.Flags().IntVar(&flagSavesDelete, "delete", -1, "Delete this slot of the current player")
}

func runSaves(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	player := playerName()
	if flagSavesDelete >= 0 {
		if err := store.DeleteSave(player, flagSavesDelete); err != nil {
			return err
		}
		fmt.Printf("Deleted slot %d of %s\n", flagSavesDelete, player)
		return nil
	}

	filter := player
	if flagSavesAll {
		filter = ""
	}
	slots, err := store.ListSaves(filter)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		fmt.Println("No saved games.")
		return nil
	}

	fmt.Printf("  %-12s  %-4s  %-10s  %-24s  %8s  %s\n", "Player", "Slot", "Game", "Map", "Bytes", "Saved")
	fmt.Printf("  %-12s  %-4s  %-10s  %-24s  %8s  %s\n", "------", "----", "----", "---", "-----", "-----")
	for _, s := range slots {
		fmt.Printf("  %-12s  %-4d  %-10s  %-24s  %8d  %s\n",
			s.Player, s.Slot, s.GameID, s.Map, s.Size, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
