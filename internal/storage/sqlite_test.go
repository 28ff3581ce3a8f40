package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-wolf/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	store, err := Open("~/.wolf/wolf.db")
	if err != nil {
		t.Fatalf("Open(~) failed: %v", err)
	}
	defer store.Close()
	if _, err := os.Stat(filepath.Join(home, ".wolf", "wolf.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveScore(ScoreEntry{GameID: "wolf", Score: 700})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()
	if high, _ := store.HighScore("wolf"); high != 700 {
		t.Errorf("HighScore() after reopen = %d, expected 700", high)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{GameID: "wolf", Player: "bj", Map: "E1M1", Score: 100},
		{GameID: "wolf", Player: "bj", Map: "E1M2", Score: 50},
		{GameID: "wolf", Player: "hans", Map: "E1M9", Score: 200, Won: true},
		{GameID: "wolf_demo", Player: "bj", Score: 500},
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("wolf", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() returned %d entries, expected 3", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("scores not in descending order: %+v", scores)
	}
	top := scores[0]
	if top.Player != "hans" || top.Map != "E1M9" || !top.Won {
		t.Errorf("top entry = %+v", top)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	limited, _ := store.TopScores("wolf", 2)
	if len(limited) != 2 {
		t.Errorf("TopScores(limit 2) returned %d entries", len(limited))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("wolf")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty table = %d, expected 0", high)
	}

	store.SaveScore(ScoreEntry{GameID: "wolf", Score: 300})
	store.SaveScore(ScoreEntry{GameID: "wolf_demo", Score: 900})
	if high, _ = store.HighScore("wolf"); high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}

	if err := store.ClearScores("wolf"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if s, _ := store.TopScores("wolf", 10); len(s) != 0 {
		t.Errorf("wolf scores after clear = %d, expected 0", len(s))
	}
	if s, _ := store.TopScores("wolf_demo", 10); len(s) != 1 {
		t.Error("clearing wolf should not touch wolf_demo")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore(ScoreEntry{GameID: "wolf", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "wolf", Score: 300, Won: true})

	stats, err := store.GetGameStats("wolf")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats(empty) failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestStoreSaveSlots(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.GetSave("bj", 0); err != nil || ok {
		t.Fatalf("GetSave(empty) = ok %v err %v, expected not found", ok, err)
	}

	first := SaveSlot{Player: "bj", Slot: 0, GameID: "wolf", Map: "E1M1", Label: "start", Data: []byte{1, 2, 3}}
	if err := store.PutSave(first); err != nil {
		t.Fatalf("PutSave() failed: %v", err)
	}
	second := first
	second.Map, second.Data = "E1M2", []byte{9, 8, 7, 6}
	if err := store.PutSave(second); err != nil {
		t.Fatalf("PutSave(overwrite) failed: %v", err)
	}
	store.PutSave(SaveSlot{Player: "bj", Slot: 3, GameID: "wolf", Map: "E1M5", Data: []byte{0}})
	store.PutSave(SaveSlot{Player: "hans", Slot: 0, GameID: "wolf", Map: "E1M9", Data: []byte{5}})

	got, ok, err := store.GetSave("bj", 0)
	if err != nil || !ok {
		t.Fatalf("GetSave() = ok %v err %v", ok, err)
	}
	if got.Map != "E1M2" || !bytes.Equal(got.Data, second.Data) || got.Size != 4 {
		t.Errorf("GetSave() = %+v, expected the overwritten slot", got)
	}

	slots, err := store.ListSaves("bj")
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(slots) != 2 || slots[0].Slot != 0 || slots[1].Slot != 3 || slots[0].Size != 4 {
		t.Errorf("ListSaves(bj) = %+v", slots)
	}
	if all, _ := store.ListSaves(""); len(all) != 3 {
		t.Errorf("ListSaves(all) returned %d slots, expected 3", len(all))
	}

	if err := store.DeleteSave("bj", 0); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if _, ok, _ := store.GetSave("bj", 0); ok {
		t.Error("slot still present after DeleteSave")
	}
	if err := store.DeleteSave("bj", 42); err != nil {
		t.Errorf("DeleteSave(empty slot) error = %v", err)
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	reports := []core.LevelReport{
		{Map: "E1M1", Completed: true, Kills: 10, TotalKills: 12, Seconds: 95.5, ParSeconds: 90, Score: 4000},
		{Map: "E1M1", Completed: false, Kills: 3, TotalKills: 12, Seconds: 20},
		{Map: "E1M1", Completed: true, Kills: 12, TotalKills: 12, Secrets: 1, TotalSecrets: 2, Seconds: 80.25, ParSeconds: 90},
		{Map: "E1M2", Completed: true, Seconds: 30},
	}
	for _, r := range reports {
		if _, err := store.RecordLevel("bj", r); err != nil {
			t.Fatalf("RecordLevel() failed: %v", err)
		}
	}

	hist, err := store.LevelHistory("E1M1", 10)
	if err != nil {
		t.Fatalf("LevelHistory() failed: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("LevelHistory(E1M1) returned %d rows, expected 3", len(hist))
	}
	if hist[0].LevelReport != reports[2] || hist[0].Player != "bj" {
		t.Errorf("newest row = %+v, expected %+v", hist[0].LevelReport, reports[2])
	}
	if all, _ := store.LevelHistory("", 10); len(all) != 4 {
		t.Errorf("LevelHistory(all) returned %d rows, expected 4", len(all))
	}

	best, ok, err := store.BestTime("E1M1")
	if err != nil || !ok || best != 80.25 {
		t.Errorf("BestTime(E1M1) = %v %v %v, expected 80.25", best, ok, err)
	}
	if _, ok, _ := store.BestTime("E2M1"); ok {
		t.Error("BestTime() for an unplayed map should report false")
	}
}
