package level

import "github.com/vovakirdan/tui-wolf/internal/games/wolf/units"

// ActorType enumerates every non-player entity, including projectiles.
type ActorType int

const (
	ActorGuard ActorType = iota
	ActorOfficer
	ActorSS
	ActorDog
	ActorHans
	ActorSchabbs
	ActorFakeHitler
	ActorMechaHitler
	ActorHitler
	ActorMutant
	ActorBlinky
	ActorClyde
	ActorPinky
	ActorInky
	ActorGretel
	ActorGift
	ActorFat
	ActorNeedle
	ActorFire
	ActorRocket
	ActorSmoke
	ActorBJ

	NumActorTypes
)

var actorNames = [NumActorTypes]string{
	"guard", "officer", "ss", "dog", "hans", "schabbs", "fake hitler",
	"mecha hitler", "hitler", "mutant", "blinky", "clyde", "pinky", "inky",
	"gretel", "giftmacher", "fettgesicht", "needle", "fire", "rocket",
	"smoke", "bj",
}

func (t ActorType) String() string {
	if t < 0 || t >= NumActorTypes {
		return "unknown"
	}
	return actorNames[t]
}

// SpawnMode selects how the simulation instantiates a spawn.
type SpawnMode int

const (
	SpawnStand SpawnMode = iota
	SpawnPatrol
	SpawnBoss
	SpawnGhost
	SpawnDeadGuard
)

// ActorSpawn is an actor placed by the object plane.
type ActorSpawn struct {
	Type ActorType
	Mode SpawnMode
	X, Y int
	Dir  units.Dir4
	// MinSkill is the lowest difficulty at which this spawn appears.
	MinSkill int
}

// Difficulty levels, lowest first.
const (
	SkillBaby = iota
	SkillEasy
	SkillMedium
	SkillHard
)

// Each tier of standard enemies repeats the same 36-code layout.
const (
	tierEasy   = 108
	tierMedium = 144
	tierHard   = 180
	tierSpan   = 36

	mutantEasy   = 216
	mutantMedium = 234
	mutantHard   = 252
)

var tierSkill = [3]int{SkillBaby, SkillMedium, SkillHard}

// actorForCode decodes an object plane code into an actor spawn.
func actorForCode(code uint16, x, y int) (ActorSpawn, bool) {
	c := int(code)
	s := ActorSpawn{X: x, Y: y}

	switch c {
	case 124:
		s.Type, s.Mode = ActorGuard, SpawnDeadGuard
		return s, true
	case 214:
		s.Type, s.Mode = ActorHans, SpawnBoss
		return s, true
	case 197:
		s.Type, s.Mode = ActorGretel, SpawnBoss
		return s, true
	case 215:
		s.Type, s.Mode = ActorGift, SpawnBoss
		return s, true
	case 179:
		s.Type, s.Mode = ActorFat, SpawnBoss
		return s, true
	case 196:
		s.Type, s.Mode = ActorSchabbs, SpawnBoss
		return s, true
	case 160:
		s.Type, s.Mode = ActorFakeHitler, SpawnBoss
		return s, true
	case 178:
		s.Type, s.Mode = ActorMechaHitler, SpawnBoss
		return s, true
	case 224, 225, 226, 227:
		s.Type = []ActorType{ActorBlinky, ActorClyde, ActorPinky, ActorInky}[c-224]
		s.Mode = SpawnGhost
		return s, true
	}

	for tier, base := range [3]int{mutantEasy, mutantMedium, mutantHard} {
		if c >= base && c < base+8 {
			s.Type = ActorMutant
			s.Dir = units.Dir4((c - base) % 4)
			s.Mode = SpawnStand
			if c-base >= 4 {
				s.Mode = SpawnPatrol
			}
			s.MinSkill = tierSkill[tier]
			return s, true
		}
	}

	for tier, base := range [3]int{tierEasy, tierMedium, tierHard} {
		if c < base || c >= base+tierSpan {
			continue
		}
		rel := c - base
		var group int
		switch {
		case rel < 16:
			// guard 0..7, officer 8..15
			group = rel / 8
		case rel >= 18 && rel < 34:
			// ss 18..25, dog 26..33
			group = 2 + (rel-18)/8
			rel -= 2
		default:
			return s, false
		}
		s.Type = []ActorType{ActorGuard, ActorOfficer, ActorSS, ActorDog}[group]
		s.Dir = units.Dir4(rel % 4)
		s.Mode = SpawnStand
		if rel%8 >= 4 {
			s.Mode = SpawnPatrol
		}
		s.MinSkill = tierSkill[tier]
		return s, true
	}
	return s, false
}

// SpawnCode returns the object plane code for a standard enemy, used by
// tools and tests that author maps.
func SpawnCode(t ActorType, mode SpawnMode, dir units.Dir4, skill int) (uint16, bool) {
	tier := 0
	switch {
	case skill >= SkillHard:
		tier = 2
	case skill >= SkillMedium:
		tier = 1
	}
	off := int(dir) & 3
	if mode == SpawnPatrol {
		off += 4
	} else if mode != SpawnStand {
		return 0, false
	}

	switch t {
	case ActorGuard:
		return uint16([3]int{tierEasy, tierMedium, tierHard}[tier] + off), true
	case ActorOfficer:
		return uint16([3]int{tierEasy, tierMedium, tierHard}[tier] + 8 + off), true
	case ActorSS:
		return uint16([3]int{tierEasy, tierMedium, tierHard}[tier] + 18 + off), true
	case ActorDog:
		return uint16([3]int{tierEasy, tierMedium, tierHard}[tier] + 26 + off), true
	case ActorMutant:
		return uint16([3]int{mutantEasy, mutantMedium, mutantHard}[tier] + off), true
	}
	return 0, false
}
