package sim

import (
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

func (w *World) runThink(a *Actor, th Think, tics int) {
	switch th {
	case ThinkStand:
		w.sightPlayer(a, tics)
	case ThinkPath:
		w.thinkPath(a, tics)
	case ThinkChase:
		w.thinkChase(a, tics)
	case ThinkDogChase:
		w.thinkDogChase(a, tics)
	case ThinkGhosts:
		w.walkTiles(a, tics, w.selectChaseDir)
	case ThinkBossChase:
		w.thinkBossChase(a, tics)
	case ThinkFake:
		w.thinkFake(a, tics)
	case ThinkProjectile:
		w.thinkProjectile(a, tics)
	case ThinkBJRun:
		w.thinkBJRun(a, tics)
	case ThinkBJJump:
		w.moveObj(a, BJJumpSpeed*tics)
	case ThinkDormant:
		w.thinkDormant(a)
	default:
		w.assertf("think %d out of range for %s", th, a.Type)
	}
}

// reactionTime is how many tics an actor hesitates after noticing the player.
func (w *World) reactionTime(t level.ActorType) int {
	switch t {
	case level.ActorGuard:
		return 1 + w.rnd()/4
	case level.ActorOfficer:
		return 2
	case level.ActorMutant, level.ActorSS:
		return 1 + w.rnd()/6
	case level.ActorDog:
		return 1 + w.rnd()/8
	default:
		return 1
	}
}

// sightPlayer looks and listens for the player. Once the player is noticed
// the actor waits out its reaction time, then attacks.
func (w *World) sightPlayer(a *Actor, tics int) bool {
	if a.Flags&FlagAttackMode != 0 {
		w.assertf("%s %d in attack mode looked for the player", a.Type, a.ID)
		return false
	}

	if a.Temp2 != 0 {
		a.Temp2 -= tics
		if a.Temp2 > 0 {
			return false
		}
		a.Temp2 = 0
	} else {
		if !w.Graph.Reachable(a.Area) {
			return false
		}
		if a.Flags&FlagAmbush != 0 {
			if !w.checkSight(a) {
				return false
			}
			a.Flags &^= FlagAmbush
		} else if !w.madeNoise && !w.checkSight(a) {
			return false
		}
		a.Temp2 = w.reactionTime(a.Type)
		return false
	}

	w.firstSighting(a)
	return true
}

// checkSight reports whether the actor can see the player: close by, or in
// front of it with a clear line.
func (w *World) checkSight(a *Actor) bool {
	if !w.Graph.Reachable(a.Area) {
		return false
	}
	p := &w.Player
	dx := int64(p.X - a.X)
	dy := int64(p.Y - a.Y)
	if abs64(dx) < MinSight && abs64(dy) < MinSight {
		return true
	}
	if a.Dir != units.DirNone {
		if int64(units.DX8[a.Dir])*dx+int64(units.DY8[a.Dir])*dy < 0 {
			return false
		}
	}
	return w.checkLineToPlayer(a)
}

// firstSighting switches an actor into combat.
func (w *World) firstSighting(a *Actor) {
	switch a.Type {
	case level.ActorGuard, level.ActorMutant:
		a.Speed *= 3
	case level.ActorOfficer:
		a.Speed *= 5
	case level.ActorSS:
		a.Speed *= 4
	case level.ActorDog:
		a.Speed *= 2
	case level.ActorBlinky, level.ActorClyde, level.ActorPinky, level.ActorInky:
		a.Speed *= 2
	case level.ActorHitler:
	default:
		a.Speed = SpdPatrol * 3
	}
	if !isGhost(a.Type) {
		w.newState(a, StChase1)
	}
	if a.Distance < 0 {
		a.Distance = 0
	}
	a.Flags |= FlagAttackMode | FlagFirstAttack
}

func (w *World) thinkPath(a *Actor, tics int) {
	if w.sightPlayer(a, tics) {
		return
	}
	w.walkTiles(a, tics, w.selectPathDir)
}

// playerTileDist is the chessboard distance to the player in tiles.
func (w *World) playerTileDist(a *Actor) int {
	dx, dy := w.playerDelta(a)
	return max(units.AbsInt(dx), units.AbsInt(dy))
}

func (w *World) thinkChase(a *Actor, tics int) {
	if w.State.Victory {
		return
	}
	dodge := false
	if w.checkLineToPlayer(a) {
		dist := w.playerTileDist(a)
		chance := 300
		if dist != 0 && !(dist == 1 && a.Distance < 0x4000) {
			chance = (tics << 4) / dist
		}
		if w.rnd() < chance {
			w.newState(a, StShoot1)
			return
		}
		dodge = true
	}
	if dodge {
		w.walkTiles(a, tics, w.selectDodgeDir)
	} else {
		w.walkTiles(a, tics, w.selectChaseDir)
	}
}

func (w *World) thinkDogChase(a *Actor, tics int) {
	if a.Dir == units.DirNone {
		w.selectDodgeDir(a)
		if a.Dir == units.DirNone {
			return
		}
	}
	p := &w.Player
	move := a.Speed * tics
	for move > 0 {
		if int(units.Abs(p.X-a.X))-move <= MinActorDist && int(units.Abs(p.Y-a.Y))-move <= MinActorDist {
			w.newState(a, StShoot1)
			return
		}
		if move < a.Distance {
			w.moveObj(a, move)
			return
		}
		snapToTile(a)
		move -= a.Distance
		w.selectDodgeDir(a)
		if a.Dir == units.DirNone {
			return
		}
	}
}

// thinkBossChase is used by bosses that throw things: they keep their
// distance and back away when the player gets close.
func (w *World) thinkBossChase(a *Actor, tics int) {
	if w.State.Victory {
		return
	}
	dodge := false
	dist := w.playerTileDist(a)
	if w.checkLineToPlayer(a) {
		if w.rnd() < tics<<3 {
			w.newState(a, StShoot1)
			return
		}
		dodge = true
	}
	w.walkTiles(a, tics, func(a *Actor) {
		switch {
		case dist < 4:
			w.selectRunDir(a)
		case dodge:
			w.selectDodgeDir(a)
		default:
			w.selectChaseDir(a)
		}
	})
}

func (w *World) thinkFake(a *Actor, tics int) {
	if w.State.Victory {
		return
	}
	if w.checkLineToPlayer(a) && w.rnd() < tics<<1 {
		w.newState(a, StShoot1)
		return
	}
	w.walkTiles(a, tics, w.selectDodgeDir)
}

// thinkDormant arms an ambush actor once the player has stepped away and
// nothing solid crowds its spot.
func (w *World) thinkDormant(a *Actor) {
	p := &w.Player
	if units.Abs(a.X-p.X) <= MinActorDist && units.Abs(a.Y-p.Y) <= MinActorDist {
		return
	}
	xl := units.Pos2Tile(a.X - MinDist)
	xh := units.Pos2Tile(a.X + MinDist)
	yl := units.Pos2Tile(a.Y - MinDist)
	yh := units.Pos2Tile(a.Y + MinDist)
	for x := xl; x <= xh; x++ {
		for y := yl; y <= yh; y++ {
			if w.tileAt(x, y).Has(level.TileSolid) || w.blockingActorAt(x, y, a.ID) {
				return
			}
		}
	}
	a.Flags |= FlagAmbush | FlagShootable
	a.Flags &^= FlagAttackMode | FlagNonMark
	a.Distance = 0
	w.newState(a, StPath1)
}

func (w *World) thinkBJRun(a *Actor, tics int) {
	move := BJRunSpeed * tics
	for move > 0 {
		if move < a.Distance {
			w.moveObj(a, move)
			return
		}
		snapToTile(a)
		move -= a.Distance
		w.selectPathDir(a)
		a.Temp2--
		if a.Temp2 <= 0 {
			w.newState(a, StShoot1)
			return
		}
	}
}
