package sim

import (
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// Door timing in tics.
const (
	DoorFullOpen = 63
	DoorMinOpen  = 50
	DoorTimeout  = 300
)

// DoorAction is the state of a door.
type DoorAction int

const (
	DoorClosed DoorAction = iota
	DoorOpening
	DoorOpen
	DoorClosing
)

func (a DoorAction) String() string {
	switch a {
	case DoorOpening:
		return "opening"
	case DoorOpen:
		return "open"
	case DoorClosing:
		return "closing"
	default:
		return "closed"
	}
}

// Key bits held by the player.
const (
	KeyGold   = 1 << 0
	KeySilver = 1 << 1
)

// Door is one entry of the door table. While Action is DoorOpen, Ticcount
// counts dwell time instead of opening progress.
type Door struct {
	X, Y         int
	Vertical     bool
	Kind         level.DoorKind
	Area1, Area2 int
	Action       DoorAction
	Ticcount     int
}

// DoorAt returns the index of the door on (x, y), or -1.
func (w *World) DoorAt(x, y int) int {
	if !units.InMap(x, y) {
		return -1
	}
	return w.DoorIndex[x][y]
}

// Opened returns how far the door on (x, y) is open, from 0 to DoorFullOpen.
// Tiles without a door count as closed.
func (w *World) Opened(x, y int) int {
	i := w.DoorAt(x, y)
	if i < 0 {
		return 0
	}
	return w.DoorOpened(i)
}

// DoorOpened returns how far door i is open.
func (w *World) DoorOpened(i int) int {
	d := &w.Doors[i]
	if d.Action == DoorOpen {
		return DoorFullOpen
	}
	return d.Ticcount
}

// OpenDoor starts door i opening, or restarts its dwell if already open.
func (w *World) OpenDoor(i int) {
	d := &w.Doors[i]
	if d.Action == DoorOpen {
		d.Ticcount = 0
		return
	}
	d.Action = DoorOpening
}

// closeDoor starts an open door closing unless something is in the way.
func (w *World) closeDoor(i int) bool {
	d := &w.Doors[i]
	if d.Action != DoorOpen || !w.canCloseDoor(d) {
		return false
	}
	d.Action = DoorClosing
	d.Ticcount = DoorFullOpen
	return true
}

// UseDoor toggles door i. Locked doors need the matching key bit.
func (w *World) UseDoor(i int, keys int) bool {
	d := &w.Doors[i]
	switch d.Kind {
	case level.DoorGold:
		if keys&KeyGold == 0 {
			w.emit(EventDoorLocked, "You need the gold key")
			return false
		}
	case level.DoorSilver:
		if keys&KeySilver == 0 {
			w.emit(EventDoorLocked, "You need the silver key")
			return false
		}
	}

	switch d.Action {
	case DoorClosed, DoorClosing:
		w.OpenDoor(i)
		return true
	case DoorOpen:
		if !w.closeDoor(i) {
			w.log.Debug("door blocked", "x", d.X, "y", d.Y)
			return false
		}
		return true
	case DoorOpening:
		// Reverses from wherever the slab has got to.
		if !w.canCloseDoor(d) {
			w.log.Debug("door blocked", "x", d.X, "y", d.Y)
			return false
		}
		if d.Ticcount == 0 {
			// Not moved yet, so the areas were never joined.
			d.Action = DoorClosed
			return true
		}
		d.Action = DoorClosing
		return true
	}
	return false
}

// canCloseDoor reports whether the doorway and the tiles beside it along
// the door's axis are clear of the player and actors.
func (w *World) canCloseDoor(d *Door) bool {
	p := &w.Player
	if p.TileX == d.X && p.TileY == d.Y {
		return false
	}

	if d.Vertical {
		if p.TileY == d.Y {
			if units.Pos2Tile(p.X+CloseWall) == d.X || units.Pos2Tile(p.X-CloseWall) == d.X {
				return false
			}
		}
	} else {
		if p.TileX == d.X {
			if units.Pos2Tile(p.Y+CloseWall) == d.Y || units.Pos2Tile(p.Y-CloseWall) == d.Y {
				return false
			}
		}
	}

	for i := range w.numActors {
		a := &w.actors[i]
		if a.Flags&(FlagNeverMark|FlagNonMark) != 0 {
			continue
		}
		if a.TileX == d.X && a.TileY == d.Y {
			return false
		}
		if d.Vertical {
			if a.TileY == d.Y {
				if a.TileX == d.X-1 && units.Pos2Tile(a.X+CloseWall) == d.X {
					return false
				}
				if a.TileX == d.X+1 && units.Pos2Tile(a.X-CloseWall) == d.X {
					return false
				}
			}
		} else if a.TileX == d.X {
			if a.TileY == d.Y-1 && units.Pos2Tile(a.Y+CloseWall) == d.Y {
				return false
			}
			if a.TileY == d.Y+1 && units.Pos2Tile(a.Y-CloseWall) == d.Y {
				return false
			}
		}
	}
	return true
}

// ProcessDoors advances every door by tics.
func (w *World) ProcessDoors(tics int) {
	if tics <= 0 {
		return
	}
	for i := range w.Doors {
		d := &w.Doors[i]
		switch d.Action {
		case DoorClosed:
			continue

		case DoorOpening:
			if d.Ticcount == 0 {
				// Sound and sight pass as soon as the door starts moving.
				w.Graph.Join(d.Area1, d.Area2)
				w.Graph.Connect(w.Player.Area)
				if w.Graph.Reachable(d.Area1) {
					w.emit(EventDoorOpen, "")
				}
			}
			d.Ticcount += tics
			if d.Ticcount >= DoorFullOpen {
				d.Action = DoorOpen
				d.Ticcount = 0
			}

		case DoorOpen:
			if d.Ticcount > DoorMinOpen && !w.canCloseDoor(d) {
				d.Ticcount = DoorMinOpen
			}
			if d.Ticcount >= DoorTimeout {
				d.Action = DoorClosing
				d.Ticcount = DoorFullOpen
			} else {
				d.Ticcount += tics
			}

		case DoorClosing:
			d.Ticcount -= tics
			if d.Ticcount <= 0 {
				d.Ticcount = 0
				d.Action = DoorClosed
				w.Graph.Disconnect(d.Area1, d.Area2)
				w.Graph.Connect(w.Player.Area)
			}
		}
	}
}

// OpenDoors returns the number of doors that are not fully closed.
func (w *World) OpenDoors() int {
	n := 0
	for i := range w.Doors {
		if w.Doors[i].Action != DoorClosed {
			n++
		}
	}
	return n
}

// doorPassable reports whether door i lets movers through.
func (w *World) doorPassable(i int) bool {
	return w.Doors[i].Action == DoorOpen
}
