package sim

import (
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// Static is a decoration or pickup lying on a tile.
type Static struct {
	X, Y int
	Info level.StaticInfo
}

// spawnStatic adds a static object. It fails when the table is full.
func (w *World) spawnStatic(x, y int, info level.StaticInfo) (int, bool) {
	if w.numStatics >= MaxStatics {
		w.log.Debug("static table full", "x", x, "y", y, "name", info.Name)
		return -1, false
	}
	i := w.numStatics
	w.statics[i] = Static{X: x, Y: y, Info: info}
	w.numStatics++
	if info.Kind.IsBonus() {
		w.Tiles[x][y] |= level.TilePowerup
	}
	return i, true
}

// placeItem drops a pickup of the given kind, used for enemy loot.
func (w *World) placeItem(kind level.StaticKind, x, y int) {
	if !units.InMap(x, y) {
		return
	}
	info, ok := level.StaticForKind(kind)
	if !ok {
		w.assertf("no static for kind %d", kind)
		return
	}
	w.spawnStatic(x, y, info)
}

func (w *World) removeStatic(i int) {
	copy(w.statics[i:w.numStatics-1], w.statics[i+1:w.numStatics])
	w.numStatics--
	w.statics[w.numStatics] = Static{}
}

// checkPickups collects what lies on the player's tile.
func (w *World) checkPickups() {
	p := &w.Player
	if !units.InMap(p.TileX, p.TileY) || !w.Tiles[p.TileX][p.TileY].Has(level.TilePowerup) {
		return
	}
	left := false
	for i := 0; i < w.numStatics; i++ {
		s := &w.statics[i]
		if s.X != p.TileX || s.Y != p.TileY || !s.Info.Kind.IsBonus() {
			continue
		}
		if w.getBonus(s.Info) {
			w.removeStatic(i)
			i--
			continue
		}
		left = true
	}
	if !left {
		w.Tiles[p.TileX][p.TileY] &^= level.TilePowerup
	}
}

// getBonus applies a pickup and reports whether it was taken.
func (w *World) getBonus(info level.StaticInfo) bool {
	p := &w.Player
	switch info.Kind {
	case level.BonusKey1:
		if !p.GiveKey(KeyGold) {
			return false
		}
	case level.BonusKey2:
		if !p.GiveKey(KeySilver) {
			return false
		}

	case level.BonusCross:
		w.givePoints(100)
		w.State.Treasure++
	case level.BonusChalice:
		w.givePoints(500)
		w.State.Treasure++
	case level.BonusBible:
		w.givePoints(1000)
		w.State.Treasure++
	case level.BonusCrown:
		w.givePoints(5000)
		w.State.Treasure++

	case level.BonusClip:
		if !p.GiveAmmo(8) {
			return false
		}
	case level.BonusClip2:
		if !p.GiveAmmo(4) {
			return false
		}
	case level.BonusMachineGun:
		if !p.GiveWeapon(WeaponMachineGun) {
			return false
		}
	case level.BonusChainGun:
		if !p.GiveWeapon(WeaponChainGun) {
			return false
		}

	case level.BonusFullHeal:
		p.GiveHealth(99)
		p.GiveAmmo(25)
		if p.GiveLife() {
			w.emit(EventExtraLife, "Extra life!")
		}
		w.State.Treasure++

	case level.BonusFood:
		if !p.GiveHealth(10) {
			return false
		}
	case level.BonusAlpo:
		if !p.GiveHealth(4) {
			return false
		}
	case level.BonusFirstAid:
		if !p.GiveHealth(25) {
			return false
		}
	case level.BonusGibs:
		if p.Health > 10 || !p.GiveHealth(1) {
			return false
		}

	default:
		return false
	}
	w.emit(EventPickup, info.Name)
	return true
}
