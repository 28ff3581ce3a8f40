package sim

import (
	"math"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// ImpulseNextWeapon cycles to the next owned weapon.
const ImpulseNextWeapon = 5

// Cmd is the player input for one Tick. Forward and Strafe are world units
// per tic (positive is forward and right). Turn is fine angle units per tic,
// positive counter-clockwise. Impulse 1..4 selects a weapon.
type Cmd struct {
	Forward int
	Strafe  int
	Turn    int
	Impulse int
	Use     bool
	Attack  bool
}

// maxThrust is the largest step taken in one thrust so a move can never
// skip over a wall.
const maxThrust = MinDist*2 - 1

func (w *World) controlPlayer(cmd Cmd, tics int) {
	p := &w.Player
	if cmd.Impulse != 0 && !p.Attacking {
		w.selectWeapon(cmd.Impulse)
	}

	w.controlMovement(cmd, tics)
	if p.PlayState != PlayPlaying {
		return
	}
	w.checkPickups()
	w.cmdUse(cmd)

	if p.Attacking {
		w.playerAttack(cmd, tics)
	} else if cmd.Attack && !p.attackHeld {
		w.startAttack()
	}
	p.attackHeld = cmd.Attack
}

// controlMovement turns and moves the player for tics.
func (w *World) controlMovement(cmd Cmd, tics int) {
	p := &w.Player
	if cmd.Turn != 0 {
		p.Angle = units.NormalizeRad(p.Angle + units.Fine2Rad(cmd.Turn*tics))
	}
	p.Speed = units.AbsInt(cmd.Forward) + units.AbsInt(cmd.Strafe)

	for range tics {
		if cmd.Forward != 0 {
			w.thrust(p.Angle, cmd.Forward)
		}
		if cmd.Strafe != 0 {
			w.thrust(p.Angle-math.Pi/2, cmd.Strafe)
		}
		if p.PlayState != PlayPlaying {
			return
		}
	}
}

func (w *World) thrust(angle float64, speed int) {
	speed = max(-maxThrust, min(maxThrust, speed))
	xmove := units.Pos(float64(speed) * math.Cos(angle))
	ymove := units.Pos(float64(speed) * math.Sin(angle))
	w.clipMove(xmove, ymove)
	w.playerMoved()
}

// playerMoved refreshes everything derived from the player position.
func (w *World) playerMoved() {
	p := &w.Player
	p.TileX = units.Pos2Tile(p.X)
	p.TileY = units.Pos2Tile(p.Y)
	if area := w.areaAt(p.TileX, p.TileY); area >= 0 && area != p.Area {
		p.Area = area
		w.Graph.Connect(area)
	}
	if w.tileAt(p.TileX, p.TileY).Has(level.TileExit) {
		w.startVictory()
	}
}

// clipMove slides along walls: the full move, then each axis alone.
func (w *World) clipMove(xmove, ymove units.Pos) {
	p := &w.Player
	bx, by := p.X, p.Y
	switch {
	case w.TryMove(bx+xmove, by+ymove):
		p.X, p.Y = bx+xmove, by+ymove
	case w.TryMove(bx+xmove, by):
		p.X = bx + xmove
	case w.TryMove(bx, by+ymove):
		p.Y = by + ymove
	}
}

// TryMove reports whether the player fits at (x, y).
func (w *World) TryMove(x, y units.Pos) bool {
	xl := units.Pos2Tile(x - PlayerSize)
	xh := units.Pos2Tile(x + PlayerSize)
	yl := units.Pos2Tile(y - PlayerSize)
	yh := units.Pos2Tile(y + PlayerSize)
	for tx := xl; tx <= xh; tx++ {
		for ty := yl; ty <= yh; ty++ {
			if w.tileBlocksMover(tx, ty) {
				return false
			}
		}
	}

	for i := range w.numActors {
		a := &w.actors[i]
		if a.Flags&FlagShootable == 0 {
			continue
		}
		if units.Abs(x-a.X) < MinActorDist && units.Abs(y-a.Y) < MinActorDist {
			return false
		}
	}
	return true
}

// cmdUse interacts with the tile the player faces. It fires once per press.
func (w *World) cmdUse(cmd Cmd) {
	p := &w.Player
	if !cmd.Use {
		p.useHeld = false
		return
	}
	if p.useHeld {
		return
	}
	p.useHeld = true

	dir := units.Dir4FromFine(units.Rad2Fine(p.Angle))
	cx, cy := p.TileX+units.DX4[dir], p.TileY+units.DY4[dir]
	t := w.tileAt(cx, cy)

	switch {
	case t.Has(level.TileDoor):
		if i := w.DoorAt(cx, cy); i >= 0 {
			w.UseDoor(i, p.Keys)
		}
	case t.Has(level.TileSecret):
		w.PushWall(cx, cy, dir)
	case t.Has(level.TileElevator):
		if dir != units.Dir4East && dir != units.Dir4West {
			w.emit(EventNoWay, "")
			return
		}
		w.WallTexX[cx][cy] += 2
		w.WallTexY[cx][cy] += 2
		w.State.EndTime = w.State.Time
		if w.tileAt(p.TileX, p.TileY).Has(level.TileSecretLevel) {
			p.PlayState = PlaySecretLevel
		} else {
			p.PlayState = PlayComplete
		}
		w.emit(EventLevelDone, "")
		w.log.Info("level complete",
			"name", w.Level.Name,
			"secret", p.PlayState == PlaySecretLevel,
			"tics", w.State.Time)
	default:
		w.emit(EventNoWay, "")
	}
}
