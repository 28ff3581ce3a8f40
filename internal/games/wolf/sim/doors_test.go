package sim

import (
	"testing"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// doorRoom is two single-tile rooms joined by a vertical door at (2,2).
func doorRoom() *level.MapFile {
	m := level.NewMapFile("door")
	m.Fill(level.PlaneWalls, 0, 0, level.MapSize-1, level.MapSize-1, 1)
	m.Set(level.PlaneWalls, 1, 1, level.CodeAreaFirst+1)
	m.Set(level.PlaneWalls, 1, 2, level.CodeAreaFirst+1)
	m.Set(level.PlaneWalls, 2, 2, level.CodeDoorFirst)
	m.Set(level.PlaneWalls, 3, 2, level.CodeAreaFirst+2)
	m.Set(level.PlaneObjects, 1, 1, level.CodePlayerEast)
	return m
}

func TestDoorRoomWorld(t *testing.T) {
	w := newTestWorld(t, doorRoom())

	if w.Player.Area != 1 {
		t.Errorf("player area = %d, expected 1", w.Player.Area)
	}
	i := w.DoorAt(2, 2)
	if i < 0 {
		t.Fatal("DoorAt(2,2) = -1")
	}
	d := w.Doors[i]
	if d.Area1 != w.Areas[3][2] || d.Area2 != w.Areas[1][2] {
		t.Errorf("door areas = (%d,%d), expected (%d,%d)", d.Area1, d.Area2, w.Areas[3][2], w.Areas[1][2])
	}
	if got := w.Opened(2, 2); got != 0 {
		t.Errorf("Opened(2,2) = %d, expected 0", got)
	}
	if w.Graph.Reachable(2) {
		t.Error("area 2 reachable through a closed door")
	}
	if w.Opened(5, 5) != 0 || w.DoorAt(-1, 0) != -1 {
		t.Error("non-door tiles should read closed")
	}
}

func TestDoorCycle(t *testing.T) {
	for _, step := range []int{1, 3, 7, 64} {
		w := newTestWorld(t, doorRoom())
		i := w.DoorAt(2, 2)
		w.OpenDoor(i)

		prev := w.DoorOpened(i)
		steps := 0
		for w.Doors[i].Action != DoorOpen {
			w.ProcessDoors(step)
			cur := w.DoorOpened(i)
			if cur < prev || cur > DoorFullOpen {
				t.Fatalf("step %d: opening went %d -> %d", step, prev, cur)
			}
			prev = cur
			if steps++; steps > DoorFullOpen {
				t.Fatalf("step %d: door never opened", step)
			}
		}
		if !w.Graph.Reachable(2) || w.Graph.Links[1][2] != 1 || w.Graph.Links[2][1] != 1 {
			t.Errorf("step %d: open door did not join areas", step)
		}

		steps = 0
		for w.Doors[i].Action == DoorOpen {
			w.ProcessDoors(step)
			if steps++; steps > DoorTimeout+1 {
				t.Fatalf("step %d: door never started closing", step)
			}
		}

		prev = w.DoorOpened(i)
		steps = 0
		for w.Doors[i].Action != DoorClosed {
			w.ProcessDoors(step)
			cur := w.DoorOpened(i)
			if cur > prev || cur < 0 {
				t.Fatalf("step %d: closing went %d -> %d", step, prev, cur)
			}
			prev = cur
			if steps++; steps > DoorFullOpen+1 {
				t.Fatalf("step %d: door never closed", step)
			}
		}
		if w.Graph.Reachable(2) || w.Graph.Links[1][2] != 0 || w.Graph.Links[2][1] != 0 {
			t.Errorf("step %d: closed door left areas joined", step)
		}
		if w.Opened(2, 2) != 0 {
			t.Errorf("step %d: Opened() = %d after closing", step, w.Opened(2, 2))
		}
	}
}

func TestDoorStaysOpenWhileBlocked(t *testing.T) {
	w := newTestWorld(t, doorRoom())
	i := w.DoorAt(2, 2)
	w.OpenDoor(i)
	w.ProcessDoors(DoorFullOpen)

	w.Player.TileX, w.Player.TileY = 2, 2
	for range DoorTimeout * 2 {
		w.ProcessDoors(1)
	}
	if w.Doors[i].Action != DoorOpen {
		t.Errorf("door action = %v, expected open while occupied", w.Doors[i].Action)
	}
	if w.Doors[i].Ticcount > DoorMinOpen+1 {
		t.Errorf("dwell = %d, expected pinned near %d", w.Doors[i].Ticcount, DoorMinOpen)
	}
	if w.UseDoor(i, 0) {
		t.Error("UseDoor() closed an occupied door")
	}

	w.Player.TileX, w.Player.TileY = 1, 1
	if !w.UseDoor(i, 0) || w.Doors[i].Action != DoorClosing {
		t.Errorf("UseDoor() on a clear open door: action = %v", w.Doors[i].Action)
	}
}

func TestLockedDoors(t *testing.T) {
	tests := []struct {
		name     string
		code     uint16
		keys     int
		expected bool
	}{
		{"plain", level.CodeDoorFirst, 0, true},
		{"gold without key", 0x5C, KeySilver, false},
		{"gold with key", 0x5C, KeyGold, true},
		{"silver without key", 0x5E, KeyGold, false},
		{"silver with key", 0x5E, KeySilver, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := doorRoom()
			m.Set(level.PlaneWalls, 2, 2, tc.code)
			w := newTestWorld(t, m)
			i := w.DoorAt(2, 2)
			if got := w.UseDoor(i, tc.keys); got != tc.expected {
				t.Errorf("UseDoor() = %v, expected %v", got, tc.expected)
			}
			if opening := w.Doors[i].Action == DoorOpening; opening != tc.expected {
				t.Errorf("door opening = %v, expected %v", opening, tc.expected)
			}
		})
	}
}

func TestOpenDoorRestartsDwell(t *testing.T) {
	w := newTestWorld(t, doorRoom())
	i := w.DoorAt(2, 2)
	w.OpenDoor(i)
	w.ProcessDoors(DoorFullOpen)
	w.ProcessDoors(100)
	w.OpenDoor(i)
	if w.Doors[i].Ticcount != 0 || w.Doors[i].Action != DoorOpen {
		t.Errorf("door = %+v, expected open with dwell reset", w.Doors[i])
	}
	if w.OpenDoors() != 1 {
		t.Errorf("OpenDoors() = %d, expected 1", w.OpenDoors())
	}
}

func TestUseDoorReversesOpening(t *testing.T) {
	w := newTestWorld(t, doorRoom())
	i := w.DoorAt(2, 2)
	w.OpenDoor(i)
	w.ProcessDoors(10)

	if !w.UseDoor(i, 0) {
		t.Fatal("UseDoor() on an opening door = false")
	}
	d := &w.Doors[i]
	if d.Action != DoorClosing || d.Ticcount != 10 {
		t.Errorf("door = %v at %d, expected closing from 10", d.Action, d.Ticcount)
	}
	w.ProcessDoors(10)
	if d.Action != DoorClosed || w.Graph.Reachable(2) {
		t.Errorf("door = %v, expected closed with areas split", d.Action)
	}
	if w.Graph.Links[1][2] != 0 || w.Graph.Links[2][1] != 0 {
		t.Errorf("links = %d/%d, expected 0", w.Graph.Links[1][2], w.Graph.Links[2][1])
	}

	// Used again before the first step, nothing was ever joined.
	w.OpenDoor(i)
	if !w.UseDoor(i, 0) || d.Action != DoorClosed {
		t.Errorf("door = %v, expected closed", d.Action)
	}
	w.ProcessDoors(5)
	if w.Graph.Links[1][2] != 0 {
		t.Errorf("links = %d, expected 0", w.Graph.Links[1][2])
	}

	w.OpenDoor(i)
	w.ProcessDoors(10)
	w.Player.TileX, w.Player.TileY = 2, 2
	if w.UseDoor(i, 0) || d.Action != DoorOpening {
		t.Errorf("occupied opening door = %v, expected still opening", d.Action)
	}
}

func TestActorsKeepDoorOpen(t *testing.T) {
	tests := []struct {
		name     string
		tx       int
		x        units.Pos
		flags    ActorFlags
		expected bool
	}{
		{"in the doorway", 2, units.Tile2Pos(2), 0, false},
		{"leaning in from the east", 3, 3*units.TileGlobal + 0x1000, 0, false},
		{"centered east of the door", 3, units.Tile2Pos(3), 0, true},
		{"non-marking in the doorway", 2, units.Tile2Pos(2), FlagNonMark, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, doorRoom())
			i := w.DoorAt(2, 2)
			w.OpenDoor(i)
			w.ProcessDoors(DoorFullOpen)

			a := w.spawnStand(level.ActorGuard, 3, 2, units.Dir4West)
			a.TileX, a.X = tc.tx, tc.x
			a.Flags |= tc.flags

			if got := w.UseDoor(i, 0); got != tc.expected {
				t.Errorf("UseDoor() = %v, expected %v", got, tc.expected)
			}
			if !tc.expected {
				for range DoorTimeout * 2 {
					w.ProcessDoors(1)
				}
				if w.Doors[i].Action != DoorOpen {
					t.Errorf("door = %v, expected held open", w.Doors[i].Action)
				}
			}
		})
	}
}
