package sim

import (
	"math"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// Projectile speeds in world units per tic.
const (
	NeedleSpeed = 0x2000
	RocketSpeed = 0x2000
	FireSpeed   = 0x1200

	maxProjectileStep = 0x10000
)

// RunSpeed is the thrust above which the player counts as running, which
// makes them harder to hit.
const RunSpeed = 6000

func (w *World) runAction(a *Actor, act Action) {
	switch act {
	case ActionShoot:
		w.actorShoot(a)
	case ActionBite:
		w.actorBite(a)
	case ActionThrowNeedle:
		w.launch(a, level.ActorNeedle, NeedleSpeed)
	case ActionThrowRocket:
		w.launch(a, level.ActorRocket, RocketSpeed)
	case ActionFakeFire:
		w.launch(a, level.ActorFire, FireSpeed)
	case ActionSmoke:
		w.spawnSmoke(a)
	case ActionDeathScream:
		w.emit(EventDeathScream, a.Type.String())
	case ActionHitlerMorph:
		w.hitlerMorph(a)
	case ActionStartDeathCam:
		w.startDeathCam(a)
	case ActionBJDone:
		w.Player.PlayState = PlayVictory
	default:
		w.assertf("action %d out of range for %s", act, a.Type)
	}
}

// actorShoot resolves one hitscan shot at the player.
func (w *World) actorShoot(a *Actor) {
	if !w.Graph.Reachable(a.Area) || !w.checkLineToPlayer(a) {
		return
	}
	w.emit(EventGunshot, a.Type.String())

	dist := w.playerTileDist(a)
	switch a.Type {
	case level.ActorSS, level.ActorHans, level.ActorGretel:
		dist = dist * 2 / 3
	}

	hitchance := 256
	if w.Player.Speed >= RunSpeed {
		hitchance = 160
	}
	if a.Flags&FlagVisible != 0 {
		hitchance -= dist * 16
	} else {
		hitchance -= dist * 8
	}

	if w.rnd() < hitchance {
		var damage int
		switch {
		case dist < 2:
			damage = w.rnd() >> 2
		case dist < 4:
			damage = w.rnd() >> 3
		default:
			damage = w.rnd() >> 4
		}
		w.TakeDamage(damage, a)
	}
}

func (w *World) actorBite(a *Actor) {
	p := &w.Player
	if int(units.Abs(p.X-a.X))-units.TileGlobal > MinActorDist ||
		int(units.Abs(p.Y-a.Y))-units.TileGlobal > MinActorDist {
		return
	}
	if w.rnd() < 180 {
		w.TakeDamage(w.rnd()>>4, a)
	}
}

// launch fires a projectile from a toward the player.
func (w *World) launch(a *Actor, t level.ActorType, speed int) *Actor {
	p := &w.Player
	angle := units.Rad2Fine(units.AngleTo(a.X, a.Y, p.X, p.Y))
	n := w.newActor(t, a.TileX, a.TileY, StChase1)
	if n == nil {
		return nil
	}
	n.X, n.Y = a.X, a.Y
	n.Angle = angle
	n.Speed = speed
	n.Flags = FlagNeverMark
	n.Area = a.Area
	return n
}

func (w *World) spawnSmoke(a *Actor) {
	n := w.newActor(level.ActorSmoke, a.TileX, a.TileY, StChase1)
	if n == nil {
		return
	}
	n.X, n.Y = a.X, a.Y
	n.Flags = FlagNeverMark
}

// projectileTryMove reports whether a projectile's box is clear of walls
// and closed doors. Projectiles pass through actors.
func (w *World) projectileTryMove(a *Actor) bool {
	xl := units.Pos2Tile(a.X - ProjSize)
	xh := units.Pos2Tile(a.X + ProjSize)
	yl := units.Pos2Tile(a.Y - ProjSize)
	yh := units.Pos2Tile(a.Y + ProjSize)
	for x := xl; x <= xh; x++ {
		for y := yl; y <= yh; y++ {
			if w.tileBlocksMover(x, y) {
				return false
			}
		}
	}
	return true
}

// tileBlocksMover reports whether (x, y) is solid or a door that is not
// fully open.
func (w *World) tileBlocksMover(x, y int) bool {
	t := w.tileAt(x, y)
	if t.Has(level.TileSolid) {
		return true
	}
	if t.Has(level.TileDoor) {
		i := w.DoorAt(x, y)
		return i < 0 || !w.doorPassable(i)
	}
	return false
}

func clampStep(v int) int {
	return max(-maxProjectileStep, min(maxProjectileStep, v))
}

func (w *World) thinkProjectile(a *Actor, tics int) {
	speed := float64(a.Speed * tics)
	rad := units.Fine2Rad(a.Angle)
	a.X += units.Pos(clampStep(int(speed * math.Cos(rad))))
	a.Y += units.Pos(clampStep(int(speed * math.Sin(rad))))

	if !w.projectileTryMove(a) {
		if a.Type == level.ActorRocket {
			w.newState(a, StDie1)
		} else {
			w.newState(a, StRemove)
		}
		return
	}

	p := &w.Player
	if units.Abs(a.X-p.X) < ProjectileSize && units.Abs(a.Y-p.Y) < ProjectileSize {
		var damage int
		switch a.Type {
		case level.ActorNeedle:
			damage = w.rnd()>>3 + 20
		case level.ActorRocket:
			damage = w.rnd()>>3 + 30
		default:
			damage = w.rnd() >> 3
		}
		w.TakeDamage(damage, a)
		w.newState(a, StRemove)
		return
	}

	a.TileX = units.Pos2Tile(a.X)
	a.TileY = units.Pos2Tile(a.Y)
	if area := w.areaAt(a.TileX, a.TileY); area >= 0 {
		a.Area = area
	}
}

// DamageActor hurts an actor. Actors caught off guard take double damage.
func (w *World) DamageActor(a *Actor, damage int) {
	if a.Flags&FlagShootable == 0 {
		return
	}
	w.madeNoise = true
	if a.Flags&FlagAttackMode == 0 {
		damage <<= 1
	}
	a.Health -= damage
	if a.Health <= 0 {
		w.killActor(a)
		return
	}

	if a.Flags&FlagAttackMode == 0 {
		w.firstSighting(a)
	}
	switch a.Type {
	case level.ActorGuard, level.ActorOfficer, level.ActorMutant, level.ActorSS:
		if a.Health&1 != 0 {
			w.newState(a, StPain)
		} else {
			w.newState(a, StPain1)
		}
	}
}

// killActor awards points, drops loot and starts the death animation.
func (w *World) killActor(a *Actor) {
	p := &w.Player
	tx, ty := a.TileX, a.TileY

	switch a.Type {
	case level.ActorGuard:
		w.givePoints(100)
		w.placeItem(level.BonusClip2, tx, ty)
	case level.ActorOfficer:
		w.givePoints(400)
		w.placeItem(level.BonusClip2, tx, ty)
	case level.ActorMutant:
		w.givePoints(700)
		w.placeItem(level.BonusClip2, tx, ty)
	case level.ActorSS:
		w.givePoints(500)
		if p.BestWeapon < WeaponMachineGun {
			w.placeItem(level.BonusMachineGun, tx, ty)
		} else {
			w.placeItem(level.BonusClip2, tx, ty)
		}
	case level.ActorDog:
		w.givePoints(200)
	case level.ActorHans, level.ActorGretel:
		w.givePoints(5000)
		w.placeItem(level.BonusKey1, tx, ty)
	case level.ActorSchabbs, level.ActorGift, level.ActorFat, level.ActorHitler:
		w.givePoints(5000)
		w.State.KillX, w.State.KillY = p.X, p.Y
		if a.Type == level.ActorSchabbs {
			w.emit(EventDeathScream, a.Type.String())
		}
	case level.ActorFakeHitler:
		w.givePoints(2000)
	case level.ActorMechaHitler:
		w.givePoints(5000)
	}

	w.newState(a, StDie1)
	w.State.Kills++
	a.Flags &^= FlagShootable
	a.Flags |= FlagNonMark
	w.log.Debug("actor killed", "type", a.Type, "id", a.ID)
}

// hitlerMorph replaces the armored suit with the boss inside it.
func (w *World) hitlerMorph(a *Actor) {
	n := w.newActor(level.ActorHitler, a.TileX, a.TileY, StChase1)
	if n == nil {
		return
	}
	n.X, n.Y = a.X, a.Y
	n.Distance = a.Distance
	n.Dir = a.Dir
	n.Area = a.Area
	n.Flags = (a.Flags | FlagShootable) &^ FlagNonMark
	n.Speed = SpdPatrol * 5
	n.Health = w.startHealth(level.ActorHitler)
	w.State.TotalKills++
}

// Death camera framing.
const (
	DeathCamStart = 0x14000
	DeathCamStep  = 0x1000
	DeathCamMax   = 0x40000
	DeathCamTics  = 210
)

type deathCam struct {
	Active bool
	Tics   int
	Actor  int
}

// startDeathCam frames the fallen boss and replays its death. The camera
// backs away from the body toward the spot the killing shot came from until
// the player fits.
func (w *World) startDeathCam(a *Actor) {
	if w.deathCam.Active {
		return
	}
	p := &w.Player
	w.State.Victory = true
	w.deathCam = deathCam{Active: true, Actor: a.ID}
	p.PlayState = PlayDeathCam

	toward := units.AngleTo(a.X, a.Y, w.State.KillX, w.State.KillY)
	if w.State.KillX == a.X && w.State.KillY == a.Y {
		toward = units.AngleTo(a.X, a.Y, p.X, p.Y)
	}
	cos, sin := math.Cos(toward), math.Sin(toward)
	for dist := float64(DeathCamStart); dist <= DeathCamMax; dist += DeathCamStep {
		x := a.X + units.Pos(dist*cos)
		y := a.Y + units.Pos(dist*sin)
		if w.TryMove(x, y) {
			p.X, p.Y = x, y
			p.TileX, p.TileY = units.Pos2Tile(x), units.Pos2Tile(y)
			break
		}
	}
	p.Angle = units.AngleTo(p.X, p.Y, a.X, a.Y)
	w.newState(a, StDeathCam)
	w.log.Info("death cam", "boss", a.Type)
}

func (w *World) advanceDeathCam(tics int) {
	if !w.deathCam.Active {
		return
	}
	w.deathCam.Tics += tics
	if w.deathCam.Tics >= DeathCamTics {
		w.Player.PlayState = PlayVictory
	}
}

// startVictory hands the view to the victory runner when the player steps
// on an exit tile.
func (w *World) startVictory() {
	p := &w.Player
	if w.State.Victory {
		return
	}
	w.State.Victory = true
	w.State.EndTime = w.State.Time
	p.PlayState = PlayWatchingBJ

	bj := w.newActor(level.ActorBJ, p.TileX, p.TileY, StChase1)
	if bj == nil {
		p.PlayState = PlayVictory
		return
	}
	bj.X, bj.Y = p.X, p.Y
	bj.Dir = units.Dir8FromDir4(units.Dir4FromFine(units.Rad2Fine(p.Angle)))
	bj.Speed = BJRunSpeed
	bj.Flags = FlagNeverMark
	bj.Temp2 = BJRunTiles
	bj.Distance = 0
	w.emit(EventLevelDone, "")
}
