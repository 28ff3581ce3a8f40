package sim

import (
	"testing"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

func TestCheckLine(t *testing.T) {
	m := roomMap(1, 1, 20, 20)
	m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
	m.Set(level.PlaneWalls, 10, 10, 1)
	m.Set(level.PlaneWalls, 10, 15, level.CodeDoorFirst)
	w := newTestWorld(t, m)

	c := units.Tile2Pos
	tests := []struct {
		name           string
		x1, y1, x2, y2 units.Pos
		expected       bool
	}{
		{"open floor", c(2), c(2), c(18), c(5), true},
		{"same tile", c(3), c(3), c(3) + 100, c(3) - 100, true},
		{"through wall east", c(5), c(10), c(15), c(10), false},
		{"through wall west", c(15), c(10), c(5), c(10), false},
		{"through wall north", c(10), c(5), c(10), c(15) - units.TileGlobal, false},
		{"diagonal through wall", c(8), c(8), c(12), c(12), false},
		{"beside wall", c(5), c(11), c(15), c(11), true},
		{"closed door", c(5), c(15), c(15), c(15), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.CheckLine(tc.x1, tc.y1, tc.x2, tc.y2); got != tc.expected {
				t.Errorf("CheckLine() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCheckLineThroughOpeningDoor(t *testing.T) {
	m := roomMap(1, 1, 20, 20)
	m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
	m.Set(level.PlaneWalls, 10, 15, level.CodeDoorFirst)
	w := newTestWorld(t, m)
	i := w.DoorAt(10, 15)

	// The door slides open from its low edge; cross near the high edge.
	x1, y1 := units.Tile2Pos(5), units.Pos(15<<units.TileShift+0xF000)
	x2, y2 := units.Tile2Pos(15), y1

	w.OpenDoor(i)
	w.ProcessDoors(5)
	if w.CheckLine(x1, y1, x2, y2) {
		t.Error("barely open door let the line through")
	}
	w.ProcessDoors(DoorFullOpen)
	if !w.CheckLine(x1, y1, x2, y2) {
		t.Error("fully open door blocked the line")
	}
}
