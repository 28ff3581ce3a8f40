package level

// StaticKind says how a static object interacts with the player.
type StaticKind int

const (
	StaticDress StaticKind = iota
	StaticBlock
	BonusKey1
	BonusKey2
	BonusFood
	BonusFirstAid
	BonusClip
	BonusClip2
	BonusMachineGun
	BonusChainGun
	BonusCross
	BonusChalice
	BonusBible
	BonusCrown
	BonusFullHeal
	BonusGibs
	BonusAlpo
)

// IsBonus reports whether the static is a pickup.
func (k StaticKind) IsBonus() bool {
	return k >= BonusKey1
}

// IsTreasure reports whether picking the static up counts toward the
// level's treasure ratio.
func (k StaticKind) IsTreasure() bool {
	switch k {
	case BonusCross, BonusChalice, BonusBible, BonusCrown, BonusFullHeal:
		return true
	}
	return false
}

// StaticInfo describes one static object type.
type StaticInfo struct {
	Name   string
	Sprite int
	Kind   StaticKind
}

// Statics is indexed by object code minus CodeStaticFirst.
var Statics = [CodeStaticLast - CodeStaticFirst + 1]StaticInfo{
	{"puddle", 0, StaticDress},
	{"green barrel", 1, StaticBlock},
	{"table and chairs", 2, StaticBlock},
	{"floor lamp", 3, StaticBlock},
	{"chandelier", 4, StaticDress},
	{"hanged man", 5, StaticBlock},
	{"dog food", 6, BonusAlpo},
	{"red pillar", 7, StaticBlock},
	{"tree", 8, StaticBlock},
	{"skeleton", 9, StaticDress},
	{"sink", 10, StaticBlock},
	{"potted plant", 11, StaticBlock},
	{"urn", 12, StaticBlock},
	{"bare table", 13, StaticBlock},
	{"ceiling light", 14, StaticDress},
	{"kitchen stuff", 15, StaticDress},
	{"suit of armor", 16, StaticBlock},
	{"hanging cage", 17, StaticBlock},
	{"skeleton in cage", 18, StaticBlock},
	{"skeleton relax", 19, StaticDress},
	{"gold key", 20, BonusKey1},
	{"silver key", 21, BonusKey2},
	{"bed", 22, StaticBlock},
	{"basket", 23, StaticDress},
	{"food", 24, BonusFood},
	{"first aid", 25, BonusFirstAid},
	{"clip", 26, BonusClip},
	{"machine gun", 27, BonusMachineGun},
	{"chain gun", 28, BonusChainGun},
	{"cross", 29, BonusCross},
	{"chalice", 30, BonusChalice},
	{"bible", 31, BonusBible},
	{"crown", 32, BonusCrown},
	{"extra life", 33, BonusFullHeal},
	{"gibs", 34, BonusGibs},
	{"barrel", 35, StaticBlock},
	{"well", 36, StaticBlock},
	{"empty well", 37, StaticBlock},
	{"gibs", 38, BonusGibs},
	{"flag", 39, StaticBlock},
	{"call apogee", 40, StaticBlock},
	{"junk", 41, StaticDress},
	{"junk", 42, StaticDress},
	{"junk", 43, StaticDress},
	{"pots", 44, StaticDress},
	{"stove", 45, StaticBlock},
	{"spears", 46, StaticBlock},
	{"vines", 47, StaticDress},
	{"marble pillar", 48, StaticBlock},
}

// DroppedClip is the static used for ammo dropped by killed enemies.
var DroppedClip = StaticInfo{"clip", 26, BonusClip2}

// StaticForCode returns the static info for an object code.
func StaticForCode(code uint16) (StaticInfo, bool) {
	if code < CodeStaticFirst || code > CodeStaticLast {
		return StaticInfo{}, false
	}
	return Statics[code-CodeStaticFirst], true
}

// StaticForKind returns the first static with the given kind, used when
// enemies drop pickups at runtime.
func StaticForKind(kind StaticKind) (StaticInfo, bool) {
	if kind == BonusClip2 {
		return DroppedClip, true
	}
	for _, s := range Statics {
		if s.Kind == kind {
			return s, true
		}
	}
	return StaticInfo{}, false
}

// StaticSpawn is a static object placed by the map.
type StaticSpawn struct {
	X, Y int
	Info StaticInfo
}
