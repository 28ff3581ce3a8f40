package sim

import (
	"math"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// PlayState is the player's progress through a level.
type PlayState int

const (
	PlayNotInGame PlayState = iota
	PlayPlaying
	PlayDead
	PlaySecretLevel
	PlayDeathCam
	PlayWatchingBJ
	PlayVictory
	PlayComplete
)

func (s PlayState) String() string {
	switch s {
	case PlayPlaying:
		return "playing"
	case PlayDead:
		return "dead"
	case PlaySecretLevel:
		return "secret level"
	case PlayDeathCam:
		return "death cam"
	case PlayWatchingBJ:
		return "watching bj"
	case PlayVictory:
		return "victory"
	case PlayComplete:
		return "complete"
	default:
		return "not in game"
	}
}

// Finished reports whether the level is over for this state.
func (s PlayState) Finished() bool {
	switch s {
	case PlayDead, PlaySecretLevel, PlayVictory, PlayComplete:
		return true
	}
	return false
}

// Weapon is a player weapon, weakest first.
type Weapon int

const (
	WeaponKnife Weapon = iota
	WeaponPistol
	WeaponMachineGun
	WeaponChainGun

	NumWeapons
)

func (wp Weapon) String() string {
	switch wp {
	case WeaponKnife:
		return "knife"
	case WeaponPistol:
		return "pistol"
	case WeaponMachineGun:
		return "machine gun"
	case WeaponChainGun:
		return "chain gun"
	default:
		return "unknown"
	}
}

// Player limits.
const (
	StartHealth   = 100
	MaxHealth     = 100
	AugmentHealth = 150
	MaxAmmo       = 99
	BackpackAmmo  = 198
	MaxLives      = 9

	weaponStipend = 6
	faceWinceTics = units.TicRate
	maxFlash      = 255
)

// Player is the single player of a World.
type Player struct {
	X, Y         units.Pos
	TileX, TileY int
	// Angle is the facing in radians, counter-clockwise from east.
	Angle float64
	Area  int

	Health    int
	Ammo      int
	Lives     int
	Score     int
	NextExtra int
	// ExtraEvery is the score step between extra lives.
	ExtraEvery int
	StartAmmo  int
	Keys       int
	Backpack   bool
	Augment    bool
	GodMode    bool

	Weapon       Weapon
	BestWeapon   Weapon
	ChosenWeapon Weapon
	Attacking    bool
	AttackFrame  int
	AttackCount  int
	WeaponFrame  int

	PlayState    PlayState
	Speed        int
	DamageFlash  int
	FaceWince    int
	LastAttacker int

	useHeld    bool
	attackHeld bool
}

func newPlayer(opts Options) Player {
	p := Player{
		ExtraEvery: opts.ExtraLifePoints,
		StartAmmo:  opts.StartAmmo,
		Lives:      opts.StartLives,
		GodMode:    opts.GodMode,
	}
	if p.StartAmmo <= 0 {
		p.StartAmmo = DefaultOptions().StartAmmo
	}
	if p.Lives <= 0 {
		p.Lives = DefaultOptions().StartLives
	}
	p.NextExtra = p.ExtraEvery
	p.resetLoadout()
	return p
}

// resetLoadout restores new-game health, ammo and weapons.
func (p *Player) resetLoadout() {
	p.Health = StartHealth
	p.Ammo = p.StartAmmo
	p.Weapon = WeaponPistol
	p.BestWeapon = WeaponPistol
	p.ChosenWeapon = WeaponPistol
	p.Backpack = false
	p.Augment = false
	p.resetForLevel()
}

// resetForLevel clears everything that does not carry across levels.
func (p *Player) resetForLevel() {
	p.Keys = 0
	p.Attacking = false
	p.AttackFrame = 0
	p.AttackCount = 0
	p.WeaponFrame = 0
	p.PlayState = PlayPlaying
	p.Speed = 0
	p.DamageFlash = 0
	p.FaceWince = 0
	p.LastAttacker = 0
	p.useHeld = false
	p.attackHeld = false
	if p.Ammo == 0 {
		p.Weapon = WeaponKnife
	}
}

func (p *Player) healthCap() int {
	if p.Augment {
		return AugmentHealth
	}
	return MaxHealth
}

func (p *Player) ammoCap() int {
	if p.Backpack {
		return BackpackAmmo
	}
	return MaxAmmo
}

// GiveHealth heals up to the cap and reports whether any was needed.
func (p *Player) GiveHealth(n int) bool {
	limit := p.healthCap()
	if p.Health >= limit {
		return false
	}
	p.Health = min(p.Health+n, limit)
	return true
}

// GiveAmmo adds ammo up to the cap and reports whether any was needed. A
// player who ran dry gets their chosen gun back.
func (p *Player) GiveAmmo(n int) bool {
	limit := p.ammoCap()
	if p.Ammo >= limit {
		return false
	}
	if p.Ammo == 0 && !p.Attacking {
		p.Weapon = p.ChosenWeapon
	}
	p.Ammo = min(p.Ammo+n, limit)
	return true
}

// GiveWeapon grants a weapon plus a few rounds. It reports whether the
// player gained anything.
func (p *Player) GiveWeapon(wp Weapon) bool {
	gained := p.GiveAmmo(weaponStipend)
	if p.BestWeapon < wp {
		p.BestWeapon = wp
		p.Weapon = wp
		p.ChosenWeapon = wp
		gained = true
	}
	return gained
}

// GiveLife adds a life below the cap.
func (p *Player) GiveLife() bool {
	if p.Lives >= MaxLives {
		return false
	}
	p.Lives++
	return true
}

// GivePoints adds to the score and returns how many extra lives that earned.
func (p *Player) GivePoints(n int) int {
	p.Score += n
	if p.ExtraEvery <= 0 {
		return 0
	}
	lives := 0
	for p.Score >= p.NextExtra {
		p.NextExtra += p.ExtraEvery
		if p.GiveLife() {
			lives++
		}
	}
	return lives
}

// GiveKey adds a key bit and reports whether it was new.
func (p *Player) GiveKey(k int) bool {
	if p.Keys&k != 0 {
		return false
	}
	p.Keys |= k
	return true
}

// reborn spends a life after dying. The score survives. It fails without
// touching the player when the last life is in use.
func (p *Player) reborn() bool {
	if p.Lives <= 1 {
		return false
	}
	p.Lives--
	p.resetLoadout()
	return true
}

// relative transforms a world point into the player's view: distance ahead
// and distance to the right.
func (p *Player) relative(x, y units.Pos) (fwd, lat int64) {
	dx := float64(x - p.X)
	dy := float64(y - p.Y)
	c, s := math.Cos(p.Angle), math.Sin(p.Angle)
	return int64(dx*c + dy*s), int64(dx*s - dy*c)
}

func (w *World) givePoints(n int) {
	for range w.Player.GivePoints(n) {
		w.emit(EventExtraLife, "Extra life!")
	}
}

// TakeDamage hurts the player. attacker may be nil.
func (w *World) TakeDamage(points int, attacker *Actor) {
	p := &w.Player
	if attacker != nil {
		p.LastAttacker = attacker.ID
	}
	if p.PlayState != PlayPlaying || w.State.Victory {
		return
	}
	if p.GodMode {
		return
	}
	if w.opts.Skill == level.SkillBaby {
		points >>= 1
	}
	if points <= 0 {
		return
	}

	p.Health -= points
	if p.Health <= 0 {
		p.Health = 0
		p.PlayState = PlayDead
		w.log.Info("player killed", "by", attackerName(attacker), "score", p.Score)
	}
	p.DamageFlash = min(p.DamageFlash+points, maxFlash)
	if points > 30 && p.Health > 0 {
		p.FaceWince = faceWinceTics
	}
	w.emit(EventPlayerHurt, attackerName(attacker))
}

func attackerName(a *Actor) string {
	if a == nil {
		return ""
	}
	return a.Type.String()
}

// Reborn restarts the level after a death. It returns false when spending a
// life would leave the player with fewer than one.
func (w *World) Reborn() bool {
	if w.Player.PlayState != PlayDead {
		return false
	}
	if !w.Player.reborn() {
		return false
	}
	w.setupLevel()
	w.log.Info("player reborn", "lives", w.Player.Lives)
	return true
}
