package sim

import (
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// inert actors move without collision checks.
func inert(t level.ActorType) bool {
	return t == level.ActorBJ || t == level.ActorSmoke
}

// diagOnly actors never open doors; a door ahead simply blocks them.
func diagOnly(t level.ActorType) bool {
	switch t {
	case level.ActorDog, level.ActorFakeHitler,
		level.ActorBlinky, level.ActorClyde, level.ActorPinky, level.ActorInky:
		return true
	}
	return false
}

func isGhost(t level.ActorType) bool {
	switch t {
	case level.ActorBlinky, level.ActorClyde, level.ActorPinky, level.ActorInky:
		return true
	}
	return false
}

func isProjectile(t level.ActorType) bool {
	switch t {
	case level.ActorNeedle, level.ActorFire, level.ActorRocket:
		return true
	}
	return false
}

// checkDiag reports whether a mover may enter (x, y) without opening anything.
func (w *World) checkDiag(a *Actor, x, y int) bool {
	t := w.tileAt(x, y)
	if t.Has(level.TileSolid) {
		return false
	}
	if t.Has(level.TileDoor) && !w.doorPassable(w.DoorAt(x, y)) {
		return false
	}
	return !w.blockingActorAt(x, y, a.ID)
}

// checkSide is checkDiag that reports a closed door on (x, y) instead of
// failing. door is -1 when there is none.
func (w *World) checkSide(a *Actor, x, y int) (ok bool, door int) {
	t := w.tileAt(x, y)
	if t.Has(level.TileSolid) {
		return false, -1
	}
	door = -1
	if t.Has(level.TileDoor) {
		if i := w.DoorAt(x, y); i >= 0 && !w.doorPassable(i) {
			door = i
		}
	}
	if w.blockingActorAt(x, y, a.ID) {
		return false, -1
	}
	return true, door
}

// tryWalk claims the tile ahead in a.Dir. On success the actor owns the new
// tile and has a full tile to walk, or waits on a door it just opened.
func (w *World) tryWalk(a *Actor) bool {
	if a.Dir == units.DirNone {
		return false
	}
	dx, dy := units.DX8[a.Dir], units.DY8[a.Dir]
	nx, ny := a.TileX+dx, a.TileY+dy
	door := -1

	switch {
	case inert(a.Type):
	case a.Dir.IsDiagonal() || diagOnly(a.Type):
		if !w.checkDiag(a, nx, ny) {
			return false
		}
		if a.Dir.IsDiagonal() && (!w.checkDiag(a, a.TileX+dx, a.TileY) || !w.checkDiag(a, a.TileX, a.TileY+dy)) {
			return false
		}
	default:
		ok, d := w.checkSide(a, nx, ny)
		if !ok {
			return false
		}
		door = d
	}

	a.TileX, a.TileY = nx, ny
	if door >= 0 {
		w.OpenDoor(door)
		a.Distance = -door - 1
		return true
	}
	if area := w.areaAt(nx, ny); area >= 0 {
		a.Area = area
	}
	a.Distance = units.TileGlobal
	return true
}

// selectPathDir follows waypoint arrows, otherwise keeps walking straight.
func (w *World) selectPathDir(a *Actor) {
	if d := level.TurnDir(w.tileAt(a.TileX, a.TileY)); d >= 0 {
		a.Dir = units.Dir8(d)
	}
	a.Distance = units.TileGlobal
	if !w.tryWalk(a) {
		a.Dir = units.DirNone
	}
}

func (w *World) playerDelta(a *Actor) (dx, dy int) {
	return w.Player.TileX - a.TileX, w.Player.TileY - a.TileY
}

// searchDir tries every cardinal direction except skip, in an order chosen
// at random.
func (w *World) searchDir(a *Actor, skip units.Dir8) bool {
	order := [4]units.Dir8{units.DirNorth, units.DirWest, units.DirSouth, units.DirEast}
	if w.rnd() > 128 {
		order = [4]units.Dir8{units.DirEast, units.DirSouth, units.DirWest, units.DirNorth}
	}
	for _, d := range order {
		if d == skip {
			continue
		}
		a.Dir = d
		if w.tryWalk(a) {
			return true
		}
	}
	return false
}

// selectChaseDir heads straight for the player along the major axis first.
func (w *World) selectChaseDir(a *Actor) {
	olddir := a.Dir
	turnaround := units.Opposite[olddir]
	dx, dy := w.playerDelta(a)

	d1, d2 := units.DirNone, units.DirNone
	if dx > 0 {
		d1 = units.DirEast
	} else if dx < 0 {
		d1 = units.DirWest
	}
	if dy > 0 {
		d2 = units.DirNorth
	} else if dy < 0 {
		d2 = units.DirSouth
	}
	if units.AbsInt(dy) > units.AbsInt(dx) {
		d1, d2 = d2, d1
	}
	if d1 == turnaround {
		d1 = units.DirNone
	}
	if d2 == turnaround {
		d2 = units.DirNone
	}

	for _, d := range [2]units.Dir8{d1, d2} {
		if d != units.DirNone {
			a.Dir = d
			if w.tryWalk(a) {
				return
			}
		}
	}

	if olddir != units.DirNone {
		a.Dir = olddir
		if w.tryWalk(a) {
			return
		}
	}
	if w.searchDir(a, turnaround) {
		return
	}
	if turnaround != units.DirNone {
		a.Dir = turnaround
		if w.tryWalk(a) {
			return
		}
	}
	a.Dir = units.DirNone
}

// selectDodgeDir zig-zags toward the player, preferring a diagonal.
func (w *World) selectDodgeDir(a *Actor) {
	turnaround := units.DirNone
	if a.Flags&FlagFirstAttack != 0 {
		a.Flags &^= FlagFirstAttack
	} else {
		turnaround = units.Opposite[a.Dir]
	}

	dx, dy := w.playerDelta(a)
	var try [5]units.Dir8
	if dx > 0 {
		try[1], try[3] = units.DirEast, units.DirWest
	} else {
		try[1], try[3] = units.DirWest, units.DirEast
	}
	if dy > 0 {
		try[2], try[4] = units.DirNorth, units.DirSouth
	} else {
		try[2], try[4] = units.DirSouth, units.DirNorth
	}

	if units.AbsInt(dx) > units.AbsInt(dy) {
		try[1], try[2] = try[2], try[1]
		try[3], try[4] = try[4], try[3]
	}
	if w.rnd() < 128 {
		try[1], try[2] = try[2], try[1]
		try[3], try[4] = try[4], try[3]
	}
	try[0] = units.Diagonal[try[1]][try[2]]

	for _, d := range try {
		if d == units.DirNone || d == turnaround {
			continue
		}
		a.Dir = d
		if w.tryWalk(a) {
			return
		}
	}
	if turnaround != units.DirNone {
		a.Dir = turnaround
		if w.tryWalk(a) {
			return
		}
	}
	a.Dir = units.DirNone
}

// selectRunDir moves directly away from the player.
func (w *World) selectRunDir(a *Actor) {
	dx, dy := w.playerDelta(a)
	var try [2]units.Dir8
	if dx < 0 {
		try[0] = units.DirEast
	} else {
		try[0] = units.DirWest
	}
	if dy > 0 {
		try[1] = units.DirSouth
	} else {
		try[1] = units.DirNorth
	}
	if units.AbsInt(dy) > units.AbsInt(dx) {
		try[0], try[1] = try[1], try[0]
	}

	for _, d := range try {
		a.Dir = d
		if w.tryWalk(a) {
			return
		}
	}
	if w.searchDir(a, units.DirNone) {
		return
	}
	a.Dir = units.DirNone
}

// moveObj advances an actor by move units along its direction. Actors that
// would crowd the player back off instead; ghosts hurt on contact.
func (w *World) moveObj(a *Actor, move int) {
	dx := units.Pos(units.DX8[a.Dir] * move)
	dy := units.Pos(units.DY8[a.Dir] * move)
	a.X += dx
	a.Y += dy

	if !inert(a.Type) && !isProjectile(a.Type) && w.Graph.Reachable(a.Area) {
		p := &w.Player
		if units.Abs(a.X-p.X) <= MinActorDist && units.Abs(a.Y-p.Y) <= MinActorDist {
			if isGhost(a.Type) {
				w.TakeDamage(w.tics*2, a)
			}
			a.X -= dx
			a.Y -= dy
			return
		}
	}
	a.Distance -= move
}

// snapToTile centers an actor on the tile it just reached.
func snapToTile(a *Actor) {
	a.X = units.Tile2Pos(a.TileX)
	a.Y = units.Tile2Pos(a.TileY)
}

// waitDoor handles an actor queued on a door. It returns false while the
// door is still not passable.
func (w *World) waitDoor(a *Actor) bool {
	if a.Distance >= 0 {
		return true
	}
	door := -a.Distance - 1
	if door >= len(w.Doors) {
		w.assertf("actor %d waits on door %d of %d", a.ID, door, len(w.Doors))
		a.Distance = units.TileGlobal
		return true
	}
	w.OpenDoor(door)
	if !w.doorPassable(door) {
		return false
	}
	a.Distance = units.TileGlobal
	return true
}

// walkTiles moves an actor speed*tics units, choosing a new direction with
// pick whenever it reaches a tile center.
func (w *World) walkTiles(a *Actor, tics int, pick func(*Actor)) {
	if a.Dir == units.DirNone {
		pick(a)
		if a.Dir == units.DirNone {
			return
		}
	}
	move := a.Speed * tics
	for move > 0 {
		if !w.waitDoor(a) {
			return
		}
		if move < a.Distance {
			w.moveObj(a, move)
			return
		}
		snapToTile(a)
		move -= a.Distance
		pick(a)
		if a.Dir == units.DirNone {
			return
		}
	}
}
