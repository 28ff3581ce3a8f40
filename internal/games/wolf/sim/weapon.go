package sim

import "github.com/vovakirdan/tui-wolf/internal/games/wolf/units"

// Attack step codes.
const (
	attackEnd    = -1
	attackNone   = 0
	attackGun    = 1
	attackKnife  = 2
	attackRepeat = 3
	attackChain  = 4
)

type attackStep struct {
	tics   int
	attack int
	frame  int
}

var attackInfo = [NumWeapons][4]attackStep{
	WeaponKnife:      {{6, attackNone, 1}, {6, attackKnife, 2}, {6, attackNone, 3}, {6, attackEnd, 4}},
	WeaponPistol:     {{6, attackNone, 1}, {6, attackGun, 2}, {6, attackNone, 3}, {6, attackEnd, 4}},
	WeaponMachineGun: {{6, attackNone, 1}, {6, attackGun, 2}, {6, attackRepeat, 3}, {6, attackEnd, 4}},
	WeaponChainGun:   {{6, attackNone, 1}, {6, attackGun, 2}, {6, attackChain, 3}, {6, attackEnd, 4}},
}

// Knife reach in world units.
const knifeRange = 0x18000

func (w *World) selectWeapon(impulse int) {
	p := &w.Player
	var want Weapon
	switch {
	case impulse == ImpulseNextWeapon:
		want = p.Weapon + 1
		if want > p.BestWeapon {
			want = WeaponKnife
		}
	case impulse >= 1 && impulse <= int(NumWeapons):
		want = Weapon(impulse - 1)
	default:
		return
	}
	if want > p.BestWeapon {
		return
	}
	if want != WeaponKnife && p.Ammo == 0 {
		return
	}
	p.Weapon = want
	p.ChosenWeapon = want
}

func (w *World) startAttack() {
	p := &w.Player
	p.Attacking = true
	p.AttackFrame = 0
	p.AttackCount = attackInfo[p.Weapon][0].tics
	p.WeaponFrame = attackInfo[p.Weapon][0].frame
}

// playerAttack steps the weapon animation, firing on the steps that call
// for it. Sustained-fire weapons loop while the trigger is held.
func (w *World) playerAttack(cmd Cmd, tics int) {
	p := &w.Player
	p.AttackCount -= tics
	for p.AttackCount <= 0 {
		cur := attackInfo[p.Weapon][p.AttackFrame]
		switch cur.attack {
		case attackEnd:
			p.Attacking = false
			p.AttackFrame = 0
			p.WeaponFrame = 0
			p.AttackCount = 0
			if p.Ammo == 0 {
				p.Weapon = WeaponKnife
			} else if p.Weapon != p.ChosenWeapon {
				p.Weapon = p.ChosenWeapon
			}
			return
		case attackChain:
			if p.Ammo == 0 {
				break
			}
			if cmd.Attack {
				p.AttackFrame -= 2
			}
			w.fireGun()
		case attackGun:
			w.fireGun()
		case attackKnife:
			w.knifeAttack()
		case attackRepeat:
			if p.Ammo > 0 && cmd.Attack {
				p.AttackFrame -= 2
			}
		}
		p.AttackCount += cur.tics
		p.AttackFrame++
		p.WeaponFrame = attackInfo[p.Weapon][p.AttackFrame].frame
	}
}

// fireGun spends a round and shoots. With no ammo the step is skipped.
func (w *World) fireGun() {
	p := &w.Player
	if p.Ammo == 0 {
		p.AttackFrame++
		return
	}
	w.gunAttack()
	p.Ammo--
}

// aimTarget returns the closest shootable actor inside the aim cone with a
// clear line, within reach.
func (w *World) aimTarget(reach int64) *Actor {
	p := &w.Player
	var best *Actor
	bestDist := reach
	for i := range w.numActors {
		a := &w.actors[i]
		if a.Flags&FlagShootable == 0 {
			continue
		}
		fwd, lat := p.relative(a.X, a.Y)
		if fwd <= 0 || fwd >= bestDist {
			continue
		}
		if abs64(lat) >= fwd/5+0x4000 {
			continue
		}
		if !w.CheckLine(p.X, p.Y, a.X, a.Y) {
			continue
		}
		best, bestDist = a, fwd
	}
	return best
}

func (w *World) gunAttack() {
	p := &w.Player
	w.madeNoise = true
	w.emit(EventGunshot, p.Weapon.String())

	target := w.aimTarget(1 << 62)
	if target == nil {
		return
	}
	dist := max(units.AbsInt(target.TileX-p.TileX), units.AbsInt(target.TileY-p.TileY))

	var damage int
	switch {
	case dist < 2:
		damage = w.rnd() / 4
	case dist < 4:
		damage = w.rnd() / 6
	default:
		if w.rnd()/12 < dist {
			return
		}
		damage = w.rnd() / 6
	}
	w.DamageActor(target, damage)
}

func (w *World) knifeAttack() {
	target := w.aimTarget(knifeRange)
	if target == nil {
		return
	}
	w.DamageActor(target, w.rnd()>>4)
}
