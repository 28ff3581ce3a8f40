package wolf

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-wolf/internal/config"
	"github.com/vovakirdan/tui-wolf/internal/core"
)

func episodeOf(n int) *Episode {
	ep := &Episode{}
	for i := range n {
		ep.Paths = append(ep.Paths, fmt.Sprintf("e1m%d.map", i+1))
	}
	return ep
}

func TestEpisodeNext(t *testing.T) {
	tests := []struct {
		name     string
		maps     int
		cur      int
		from     int
		secret   bool
		expected int
		ok       bool
	}{
		{"demo ends", 0, 0, -1, false, 0, false},
		{"normal exit", 10, 0, -1, false, 1, true},
		{"secret elevator", 10, 0, -1, true, 9, true},
		{"leaving the secret level", 10, 9, 3, false, 4, true},
		{"boss level skips the secret slot", 10, 8, -1, false, 0, false},
		{"short episode has no secret slot", 3, 1, -1, true, 2, true},
		{"last map", 3, 2, -1, false, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := episodeOf(tc.maps).Next(tc.cur, tc.from, tc.secret)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("Next(%d, %d, %v) = %d, %v, expected %d, %v",
					tc.cur, tc.from, tc.secret, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestLoadEpisode(t *testing.T) {
	dir := t.TempDir()
	writeMap(t, dir, "e1m1", "First")
	writeMap(t, dir, "e1m2", "Second")
	writeMap(t, dir, "e1m3", "Third")

	ep, err := LoadEpisode(config.MapsConfig{})
	if err != nil || !ep.Demo() || ep.Len() != 1 {
		t.Fatalf("LoadEpisode(empty) = %+v, %v, expected the demo", ep, err)
	}

	ep, err = LoadEpisode(config.MapsConfig{Dir: dir, Start: "e1m2.map"})
	if err != nil {
		t.Fatalf("LoadEpisode() error = %v", err)
	}
	if ep.Len() != 3 || ep.Start != 1 {
		t.Errorf("episode = %d maps from %d, expected 3 from 1", ep.Len(), ep.Start)
	}
	lvl, err := ep.Level(2)
	if err != nil || lvl.Name != "Third" {
		t.Errorf("Level(2) = %v, %v", lvl, err)
	}
	if i := ep.Find("Second"); i != 1 {
		t.Errorf("Find(Second) = %d, expected 1", i)
	}

	ep, err = LoadEpisode(config.MapsConfig{Dir: dir, Start: "e1m1", Order: []string{"e1m3", "e1m1"}})
	if err != nil {
		t.Fatalf("LoadEpisode(order) error = %v", err)
	}
	if len(ep.Paths) != 2 || filepath.Base(ep.Paths[0]) != "e1m3.map" || ep.Start != 1 {
		t.Errorf("ordered episode = %+v", ep)
	}

	if _, err := LoadEpisode(config.MapsConfig{Dir: dir, Start: "e2m1"}); err == nil {
		t.Error("LoadEpisode(unknown start) should fail")
	}
	if _, err := LoadEpisode(config.MapsConfig{Dir: t.TempDir(), Start: "e1m1"}); !errors.Is(err, ErrNoMaps) {
		t.Errorf("LoadEpisode(empty dir) error = %v, expected ErrNoMaps", err)
	}
}

func TestLevelBonus(t *testing.T) {
	tests := []struct {
		name     string
		report   core.LevelReport
		expected int
	}{
		{"died", core.LevelReport{Seconds: 10, ParSeconds: 90}, 0},
		{"over par", core.LevelReport{Completed: true, Seconds: 120, ParSeconds: 90}, 0},
		{"under par", core.LevelReport{Completed: true, Seconds: 80.5, ParSeconds: 90}, 10 * parBonusPerSecond},
		{"perfect kills", core.LevelReport{Completed: true, Kills: 5, TotalKills: 5, Seconds: 90, ParSeconds: 90}, ratioBonus},
		{"nothing to find", core.LevelReport{Completed: true, Seconds: 100, ParSeconds: 90}, 0},
		{"all ratios", core.LevelReport{
			Completed: true, Kills: 1, TotalKills: 1, Secrets: 2, TotalSecrets: 2,
			Treasure: 3, TotalTreasure: 3, Seconds: 89, ParSeconds: 90,
		}, 3*ratioBonus + parBonusPerSecond},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := levelBonus(tc.report); got != tc.expected {
				t.Errorf("levelBonus() = %d, expected %d", got, tc.expected)
			}
		})
	}
}
