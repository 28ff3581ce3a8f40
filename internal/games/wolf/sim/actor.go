package sim

import (
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// ActorFlags is the per-actor attribute bitmask.
type ActorFlags uint16

const (
	FlagShootable ActorFlags = 1 << iota
	FlagBonus
	FlagNeverMark
	FlagVisible
	FlagAttackMode
	FlagFirstAttack
	FlagAmbush
	FlagNonMark
)

// Movement speeds in world units per tic.
const (
	SpdPatrol   = 512
	SpdDog      = 1500
	BJRunSpeed  = 2048
	BJJumpSpeed = 680
	BJRunTiles  = 6
)

// Actor is one entry of the live actor array. Distance is the world units
// left before the actor reaches the center of TileX, TileY; a negative value
// -(door+1) means the actor waits for that door to open.
type Actor struct {
	ID       int
	Type     level.ActorType
	State    StateID
	X, Y     units.Pos
	TileX    int
	TileY    int
	Angle    units.Fine
	Dir      units.Dir8
	Distance int
	Speed    int
	Ticcount int
	Health   int
	Flags    ActorFlags
	Area     int
	// Temp2 holds the reaction delay before a first sighting, and the tiles
	// left to run for the victory actor.
	Temp2  int
	Sprite int
}

// Info returns the record of the actor's current state.
func (a *Actor) Info() StateInfo {
	return stateTables[a.Type][a.State]
}

// Alive reports whether the actor can still be hurt.
func (a *Actor) Alive() bool {
	return a.Flags&FlagShootable != 0
}

// startHealth is indexed by actor type, then skill.
var startHealth = [level.NumActorTypes][4]int{
	level.ActorGuard:       {25, 25, 25, 25},
	level.ActorOfficer:     {50, 50, 50, 50},
	level.ActorSS:          {100, 100, 100, 100},
	level.ActorDog:         {1, 1, 1, 1},
	level.ActorHans:        {850, 950, 1050, 1200},
	level.ActorSchabbs:     {850, 950, 1550, 2400},
	level.ActorFakeHitler:  {200, 300, 400, 500},
	level.ActorMechaHitler: {800, 950, 1050, 1200},
	level.ActorHitler:      {500, 700, 800, 900},
	level.ActorMutant:      {45, 55, 55, 65},
	level.ActorBlinky:      {25, 25, 25, 25},
	level.ActorClyde:       {25, 25, 25, 25},
	level.ActorPinky:       {25, 25, 25, 25},
	level.ActorInky:        {25, 25, 25, 25},
	level.ActorGretel:      {850, 950, 1050, 1200},
	level.ActorGift:        {850, 950, 1050, 1200},
	level.ActorFat:         {850, 950, 1050, 1200},
}

func (w *World) startHealth(t level.ActorType) int {
	s := w.opts.Skill
	if s < level.SkillBaby {
		s = level.SkillBaby
	}
	if s > level.SkillHard {
		s = level.SkillHard
	}
	return startHealth[t][s]
}

// newActor claims a slot for an actor on tile (tx, ty). It returns nil when
// the array is full.
func (w *World) newActor(t level.ActorType, tx, ty int, state StateID) *Actor {
	var a *Actor
	for i := range w.numActors {
		if w.actors[i].State == StRemove {
			a = &w.actors[i]
			break
		}
	}
	if a == nil {
		if w.numActors >= MaxActors {
			w.log.Debug("actor array full", "type", t)
			return nil
		}
		a = &w.actors[w.numActors]
		w.numActors++
	}

	w.nextID++
	*a = Actor{
		ID:    w.nextID,
		Type:  t,
		TileX: tx,
		TileY: ty,
		X:     units.Tile2Pos(tx),
		Y:     units.Tile2Pos(ty),
		Dir:   units.DirNone,
		Area:  w.areaAt(tx, ty),
	}
	w.newState(a, state)
	return a
}

// newState switches an actor to s and restarts its countdown.
func (w *World) newState(a *Actor, s StateID) {
	if s < 0 || s >= NumStates {
		w.assertf("state %d out of range for %s", s, a.Type)
		s = StRemove
	}
	if s != StRemove && !stateTables[a.Type][s].defined {
		w.assertf("state %s undefined for %s", s, a.Type)
	}
	a.State = s
	a.Ticcount = stateTables[a.Type][s].Tics
}

// spawnFromMap instantiates an actor placed by the object plane.
func (w *World) spawnFromMap(s level.ActorSpawn) {
	if s.Type < 0 || s.Type >= level.NumActorTypes {
		w.assertf("spawn type %d out of range", s.Type)
		return
	}
	switch s.Mode {
	case level.SpawnStand:
		w.spawnStand(s.Type, s.X, s.Y, s.Dir)
	case level.SpawnPatrol:
		w.spawnPatrol(s.Type, s.X, s.Y, s.Dir)
	case level.SpawnBoss:
		w.spawnBoss(s.Type, s.X, s.Y)
	case level.SpawnGhost:
		w.spawnGhost(s.Type, s.X, s.Y)
	case level.SpawnDeadGuard:
		w.spawnDeadGuard(s.X, s.Y)
	}
}

func (w *World) spawnStand(t level.ActorType, x, y int, dir units.Dir4) *Actor {
	a := w.newActor(t, x, y, StStand)
	if a == nil {
		return nil
	}
	a.Speed = SpdPatrol
	if t == level.ActorDog {
		a.Speed = SpdDog
	}
	a.Dir = units.Dir8FromDir4(dir)
	a.Health = w.startHealth(t)
	a.Flags |= FlagShootable
	if w.tileAt(x, y).Has(level.TileAmbush) {
		a.Flags |= FlagAmbush
	}
	w.State.TotalKills++
	return a
}

// spawnPatrol starts a walking actor already heading for the next tile.
// On ambush floor the actor waits dormant until the player moves away.
func (w *World) spawnPatrol(t level.ActorType, x, y int, dir units.Dir4) *Actor {
	dormant := w.tileAt(x, y).Has(level.TileAmbush)
	state := StPath1
	if dormant {
		state = StDormant
	}
	a := w.newActor(t, x, y, state)
	if a == nil {
		return nil
	}
	a.Speed = SpdPatrol
	if t == level.ActorDog {
		a.Speed = SpdDog
	}
	a.Dir = units.Dir8FromDir4(dir)
	a.Health = w.startHealth(t)
	w.State.TotalKills++

	if dormant {
		a.Flags |= FlagNonMark
		return a
	}
	a.Flags |= FlagShootable
	a.Distance = units.TileGlobal
	a.TileX += units.DX4[dir]
	a.TileY += units.DY4[dir]
	return a
}

func (w *World) spawnBoss(t level.ActorType, x, y int) *Actor {
	state := StStand
	if t == level.ActorHitler {
		state = StChase1
	}
	a := w.newActor(t, x, y, state)
	if a == nil {
		return nil
	}
	a.Speed = SpdPatrol
	a.Health = w.startHealth(t)
	a.Dir = units.DirSouth
	if t == level.ActorFakeHitler {
		a.Dir = units.DirNorth
	}
	a.Flags |= FlagShootable | FlagAmbush
	w.State.TotalKills++
	return a
}

// spawnGhost places a ghost. Ghosts cannot be killed so they count as
// killed from the start.
func (w *World) spawnGhost(t level.ActorType, x, y int) *Actor {
	a := w.newActor(t, x, y, StChase1)
	if a == nil {
		return nil
	}
	a.Speed = SpdDog
	a.Dir = units.DirEast
	a.Flags |= FlagAmbush
	w.State.TotalKills++
	w.State.Kills++
	return a
}

func (w *World) spawnDeadGuard(x, y int) *Actor {
	a := w.newActor(level.ActorGuard, x, y, StDead)
	if a == nil {
		return nil
	}
	a.Flags |= FlagNonMark
	return a
}

// blockingActorAt reports whether a live actor other than exceptID occupies
// tile (x, y).
func (w *World) blockingActorAt(x, y int, exceptID int) bool {
	for i := range w.numActors {
		a := &w.actors[i]
		if a.ID == exceptID || a.State == StRemove {
			continue
		}
		if a.Flags&FlagShootable == 0 {
			continue
		}
		if a.TileX == x && a.TileY == y {
			return true
		}
	}
	return false
}

// doActor runs one actor for tics and reports whether it should be removed.
func (w *World) doActor(a *Actor, tics int) bool {
	if a.State == StRemove {
		return true
	}
	if a.Ticcount != 0 {
		a.Ticcount -= tics
		for a.Ticcount <= 0 {
			if act := a.Info().Action; act != ActionNone {
				w.runAction(a, act)
				if a.State == StRemove {
					return true
				}
			}
			a.State = a.Info().Next
			if a.State == StRemove {
				return true
			}
			if d := a.Info().Tics; d == 0 {
				a.Ticcount = 0
				break
			} else {
				a.Ticcount += d
			}
		}
	}

	if th := a.Info().Think; th != ThinkNone {
		w.runThink(a, th, tics)
		if a.State == StRemove {
			return true
		}
	}

	w.updateSprite(a)
	return false
}

// sweepActors runs every actor once, compacting removed ones out of the
// array in place.
func (w *World) sweepActors(tics int) {
	for i := 0; i < w.numActors; i++ {
		if w.doActor(&w.actors[i], tics) {
			w.removeActor(i)
			i--
		}
	}
}

// removeActor drops slot i and shifts the rest down, keeping order.
func (w *World) removeActor(i int) {
	if i < 0 || i >= w.numActors {
		w.assertf("remove actor %d out of range", i)
		return
	}
	copy(w.actors[i:w.numActors-1], w.actors[i+1:w.numActors])
	w.numActors--
	w.actors[w.numActors] = Actor{}
}

func (w *World) updateSprite(a *Actor) {
	info := a.Info()
	a.Sprite = info.Sprite
	p := &w.Player

	switch info.Rotate {
	case RotateCreature:
		view := units.AngleTo(a.X, a.Y, p.X, p.Y)
		a.Sprite += units.Get8Dir(view - units.Fine2Rad(a.Dir.Fine()))
	case RotateProjectile:
		view := units.AngleTo(a.X, a.Y, p.X, p.Y)
		a.Sprite += (8 - units.Get8Dir(view-units.Fine2Rad(a.Angle))) & 7
	}

	if w.inView(a.X, a.Y) && w.CheckLine(p.X, p.Y, a.X, a.Y) {
		a.Flags |= FlagVisible
	} else {
		a.Flags &^= FlagVisible
	}
}

// inView reports whether a point lies inside the player's 90 degree view.
func (w *World) inView(x, y units.Pos) bool {
	fwd, lat := w.Player.relative(x, y)
	return fwd > 0 && abs64(lat) <= fwd
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
