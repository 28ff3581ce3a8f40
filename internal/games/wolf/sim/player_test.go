package sim

import (
	"testing"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
)

func TestGiveAmmo(t *testing.T) {
	tests := []struct {
		name     string
		ammo     int
		backpack bool
		give     int
		expected int
		taken    bool
	}{
		{"below cap", 8, false, 8, 16, true},
		{"clamped", 95, false, 8, MaxAmmo, true},
		{"full", MaxAmmo, false, 8, MaxAmmo, false},
		{"backpack raises cap", MaxAmmo, true, 8, MaxAmmo + 8, true},
		{"backpack clamped", 195, true, 8, BackpackAmmo, true},
		{"backpack full", BackpackAmmo, true, 1, BackpackAmmo, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newPlayer(DefaultOptions())
			p.Ammo = tc.ammo
			p.Backpack = tc.backpack
			if got := p.GiveAmmo(tc.give); got != tc.taken {
				t.Errorf("GiveAmmo() = %v, expected %v", got, tc.taken)
			}
			if p.Ammo != tc.expected {
				t.Errorf("Ammo = %d, expected %d", p.Ammo, tc.expected)
			}
		})
	}
}

func TestGiveAmmoRestoresGun(t *testing.T) {
	p := newPlayer(DefaultOptions())
	p.Ammo = 0
	p.Weapon = WeaponKnife
	p.GiveAmmo(4)
	if p.Weapon != WeaponPistol {
		t.Errorf("Weapon = %v, expected pistol", p.Weapon)
	}
}

func TestGiveHealth(t *testing.T) {
	tests := []struct {
		name     string
		health   int
		augment  bool
		give     int
		expected int
		taken    bool
	}{
		{"heal", 50, false, 25, 75, true},
		{"clamped", 95, false, 25, MaxHealth, true},
		{"full", MaxHealth, false, 10, MaxHealth, false},
		{"augment raises cap", MaxHealth, true, 25, 125, true},
		{"augment clamped", 140, true, 25, AugmentHealth, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newPlayer(DefaultOptions())
			p.Health = tc.health
			p.Augment = tc.augment
			if got := p.GiveHealth(tc.give); got != tc.taken {
				t.Errorf("GiveHealth() = %v, expected %v", got, tc.taken)
			}
			if p.Health != tc.expected {
				t.Errorf("Health = %d, expected %d", p.Health, tc.expected)
			}
		})
	}
}

func TestGiveWeapon(t *testing.T) {
	p := newPlayer(DefaultOptions())
	if !p.GiveWeapon(WeaponMachineGun) {
		t.Fatal("GiveWeapon(machine gun) = false")
	}
	if p.Weapon != WeaponMachineGun || p.BestWeapon != WeaponMachineGun || p.Ammo != 14 {
		t.Errorf("player = weapon %v best %v ammo %d", p.Weapon, p.BestWeapon, p.Ammo)
	}

	p.Ammo = MaxAmmo
	if p.GiveWeapon(WeaponPistol) {
		t.Error("GiveWeapon(pistol) with full ammo = true")
	}
	if p.BestWeapon != WeaponMachineGun {
		t.Errorf("BestWeapon = %v, expected machine gun", p.BestWeapon)
	}
}

func TestGivePointsExtraLives(t *testing.T) {
	tests := []struct {
		name   string
		lives  int
		points int
		gained int
		lives2 int
		next   int
	}{
		{"below threshold", 3, 39999, 0, 3, 40000},
		{"two thresholds", 3, 85000, 2, 5, 120000},
		{"capped", 8, 85000, 1, MaxLives, 120000},
		{"at cap", MaxLives, 40000, 0, MaxLives, 80000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newPlayer(DefaultOptions())
			p.Lives = tc.lives
			if got := p.GivePoints(tc.points); got != tc.gained {
				t.Errorf("GivePoints() = %d, expected %d", got, tc.gained)
			}
			if p.Lives != tc.lives2 || p.NextExtra != tc.next || p.Score != tc.points {
				t.Errorf("lives %d next %d score %d, expected %d %d %d",
					p.Lives, p.NextExtra, p.Score, tc.lives2, tc.next, tc.points)
			}
		})
	}
}

func TestGiveKey(t *testing.T) {
	p := newPlayer(DefaultOptions())
	if !p.GiveKey(KeyGold) || p.GiveKey(KeyGold) {
		t.Error("GiveKey() should only accept a new key")
	}
	if !p.GiveKey(KeySilver) || p.Keys != KeyGold|KeySilver {
		t.Errorf("Keys = %b", p.Keys)
	}
}

func TestTakeDamage(t *testing.T) {
	tests := []struct {
		name     string
		skill    int
		god      bool
		damage   int
		expected int
		state    PlayState
	}{
		{"medium", level.SkillMedium, false, 20, 80, PlayPlaying},
		{"baby halves", level.SkillBaby, false, 20, 90, PlayPlaying},
		{"baby rounds down", level.SkillBaby, false, 1, 100, PlayPlaying},
		{"god mode", level.SkillHard, true, 500, 100, PlayPlaying},
		{"lethal", level.SkillHard, false, 150, 0, PlayDead},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := roomMap(1, 1, 5, 5)
			m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
			opts := DefaultOptions()
			opts.Skill = tc.skill
			opts.GodMode = tc.god
			w := buildWorld(t, m, opts)

			w.TakeDamage(tc.damage, nil)
			if w.Player.Health != tc.expected || w.Player.PlayState != tc.state {
				t.Errorf("health %d state %v, expected %d %v",
					w.Player.Health, w.Player.PlayState, tc.expected, tc.state)
			}
		})
	}
}

func TestTakeDamageRecordsAttacker(t *testing.T) {
	w := guardRoom(t)
	a := &w.Actors()[0]
	w.TakeDamage(40, a)
	if w.Player.LastAttacker != a.ID {
		t.Errorf("LastAttacker = %d, expected %d", w.Player.LastAttacker, a.ID)
	}
	if w.Player.DamageFlash != 40 || w.Player.FaceWince == 0 {
		t.Errorf("flash %d wince %d", w.Player.DamageFlash, w.Player.FaceWince)
	}
	runTics(w, 10, Cmd{})
	if w.Player.DamageFlash != 30 {
		t.Errorf("DamageFlash = %d after 10 tics, expected 30", w.Player.DamageFlash)
	}
}

func TestReborn(t *testing.T) {
	w := guardRoom(t)
	if w.Reborn() {
		t.Fatal("Reborn() while alive = true")
	}

	w.Player.Score = 1234
	w.Player.Ammo = 50
	w.DamageActor(&w.Actors()[0], 1000)
	w.TakeDamage(500, nil)
	if w.Player.PlayState != PlayDead {
		t.Fatalf("PlayState = %v, expected dead", w.Player.PlayState)
	}
	runTics(w, 5, Cmd{})

	if !w.Reborn() {
		t.Fatal("Reborn() = false with lives left")
	}
	p := w.Player
	if p.Lives != 2 || p.Health != StartHealth || p.Ammo != 8 || p.PlayState != PlayPlaying {
		t.Errorf("reborn player = lives %d health %d ammo %d state %v", p.Lives, p.Health, p.Ammo, p.PlayState)
	}
	if p.Score != 1334 {
		t.Errorf("Score = %d, expected 1334", p.Score)
	}
	if w.State.Kills != 0 || len(w.Actors()) != 1 || !w.Actors()[0].Alive() {
		t.Error("level was not restarted")
	}

	for _, lives := range []int{1, 0} {
		w.Player.Lives = lives
		w.TakeDamage(500, nil)
		if w.Reborn() {
			t.Errorf("Reborn() with %d lives = true", lives)
		}
		if w.Player.Lives != lives || w.Player.PlayState != PlayDead {
			t.Errorf("failed Reborn() left lives %d state %v, expected %d and dead", w.Player.Lives, w.Player.PlayState, lives)
		}
	}
}

func TestExtraLifeEvent(t *testing.T) {
	w := guardRoom(t)
	w.DrainEvents()
	w.givePoints(DefaultOptions().ExtraLifePoints)
	ev := w.DrainEvents()
	if len(ev) != 1 || ev[0].Kind != EventExtraLife {
		t.Errorf("events = %+v, expected one extra life", ev)
	}
	if w.Player.Lives != 4 {
		t.Errorf("Lives = %d, expected 4", w.Player.Lives)
	}
}
