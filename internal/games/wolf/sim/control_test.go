package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

func TestPlayerWalks(t *testing.T) {
	m := roomMap(1, 1, 10, 10)
	m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
	w := newTestWorld(t, m)
	x0 := w.Player.X

	runTics(w, 20, Cmd{Forward: 0x1000})
	if got := w.Player.X - x0; got != 20*0x1000 {
		t.Errorf("moved %#x, expected %#x", got, 20*0x1000)
	}
	if w.Player.Y != units.Tile2Pos(2) {
		t.Errorf("Y = %#x, expected unchanged", w.Player.Y)
	}
	if w.Player.TileX != units.Pos2Tile(w.Player.X) {
		t.Errorf("TileX = %d out of sync", w.Player.TileX)
	}
}

func TestPlayerStopsAtWall(t *testing.T) {
	m := roomMap(1, 1, 5, 5)
	m.Set(level.PlaneObjects, 2, 3, level.CodePlayerEast)
	w := newTestWorld(t, m)

	runTics(w, 200, Cmd{Forward: 0x3000})
	limit := units.Pos(6<<units.TileShift) - PlayerSize
	if w.Player.X >= limit {
		t.Errorf("X = %#x, expected below %#x", w.Player.X, limit)
	}
	if w.Player.X < limit-0x3000 {
		t.Errorf("X = %#x, stopped short of the wall", w.Player.X)
	}
}

func TestPlayerSlidesAlongWall(t *testing.T) {
	m := roomMap(1, 1, 5, 5)
	m.Set(level.PlaneObjects, 5, 2, level.CodePlayerEast)
	w := newTestWorld(t, m)
	w.Player.Angle = math.Pi / 4
	x0, y0 := w.Player.X, w.Player.Y

	runTics(w, 10, Cmd{Forward: 0x1000})
	if w.Player.Y <= y0 {
		t.Errorf("Y = %#x, expected the player to slide north from %#x", w.Player.Y, y0)
	}
	if w.Player.X+PlayerSize >= units.Pos(6<<units.TileShift) {
		t.Errorf("X = %#x moved into the wall (from %#x)", w.Player.X, x0)
	}
}

func TestThrustIsClamped(t *testing.T) {
	m := roomMap(1, 1, 10, 10)
	m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
	w := newTestWorld(t, m)
	x0 := w.Player.X

	w.RunTics(1, Cmd{Forward: 0x40000})
	if got := w.Player.X - x0; got != maxThrust {
		t.Errorf("moved %#x, expected %#x", got, maxThrust)
	}
}

func TestTryMove(t *testing.T) {
	w := guardRoom(t)
	guard := w.Actors()[0]
	c := units.Tile2Pos

	tests := []struct {
		name     string
		x, y     units.Pos
		expected bool
	}{
		{"open floor", c(5), c(5), true},
		{"inside wall", c(0), c(5), false},
		{"hugging wall", units.Pos(1<<units.TileShift) + PlayerSize + 1, c(5), true},
		{"overlapping wall", units.Pos(1<<units.TileShift) + PlayerSize - 1, c(5), false},
		{"on guard", guard.X, guard.Y, false},
		{"near guard", guard.X - MinActorDist + 1, guard.Y, false},
		{"clear of guard", guard.X - MinActorDist, guard.Y, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.TryMove(tc.x, tc.y); got != tc.expected {
				t.Errorf("TryMove() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPickups(t *testing.T) {
	m := roomMap(1, 1, 10, 3)
	m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
	m.Set(level.PlaneObjects, 3, 2, codeClip)
	m.Set(level.PlaneObjects, 4, 2, codeFood)
	m.Set(level.PlaneObjects, 5, 2, codeGoldKey)
	m.Set(level.PlaneObjects, 6, 2, codeCross)
	w := newTestWorld(t, m)
	if w.State.TotalTreasure != 1 {
		t.Fatalf("TotalTreasure = %d, expected 1", w.State.TotalTreasure)
	}
	w.Player.Health = 50

	runTics(w, 40, Cmd{Forward: 0x2000})

	p := w.Player
	if p.TileX < 6 {
		t.Fatalf("player stopped at tile %d", p.TileX)
	}
	if p.Ammo != 16 || p.Health != 60 || p.Keys != KeyGold || p.Score != 100 {
		t.Errorf("player = ammo %d health %d keys %b score %d", p.Ammo, p.Health, p.Keys, p.Score)
	}
	if w.State.Treasure != 1 {
		t.Errorf("Treasure = %d, expected 1", w.State.Treasure)
	}
	if n := len(w.Statics()); n != 0 {
		t.Errorf("%d statics left, expected none", n)
	}
	for x := 3; x <= 6; x++ {
		if w.Tiles[x][2].Has(level.TilePowerup) {
			t.Errorf("tile (%d,2) still marked as a pickup", x)
		}
	}
}

func TestPickupRefusedWhenFull(t *testing.T) {
	m := roomMap(1, 1, 10, 3)
	m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
	m.Set(level.PlaneObjects, 3, 2, codeFood)
	w := newTestWorld(t, m)

	runTics(w, 6, Cmd{Forward: 0x2000})
	if w.Player.TileX != 3 {
		t.Fatalf("player on tile %d, expected 3", w.Player.TileX)
	}
	if len(w.Statics()) != 1 || !w.Tiles[3][2].Has(level.TilePowerup) {
		t.Error("food taken at full health")
	}
}

func TestUseOpensDoor(t *testing.T) {
	m := doorRoom()
	m.Set(level.PlaneObjects, 1, 1, 0)
	m.Set(level.PlaneObjects, 1, 2, level.CodePlayerEast)
	w := newTestWorld(t, m)
	i := w.DoorAt(2, 2)

	w.RunTics(1, Cmd{Use: true})
	if w.Doors[i].Action != DoorOpening {
		t.Fatalf("door action = %v, expected opening", w.Doors[i].Action)
	}

	// Holding use does not fire again.
	runTics(w, DoorFullOpen, Cmd{Use: true})
	if w.Doors[i].Action != DoorOpen {
		t.Errorf("door action = %v, expected open", w.Doors[i].Action)
	}

	w.RunTics(1, Cmd{})
	w.RunTics(1, Cmd{Use: true})
	if w.Doors[i].Action != DoorClosing {
		t.Errorf("door action = %v, expected closing after a second press", w.Doors[i].Action)
	}
}

func TestUseElevator(t *testing.T) {
	tests := []struct {
		name     string
		floor    uint16
		expected PlayState
	}{
		{"normal exit", level.CodeAreaFirst + 1, PlayComplete},
		{"secret exit", level.CodeAreaFirst, PlaySecretLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := roomMap(1, 1, 2, 3)
			m.Set(level.PlaneWalls, 2, 2, tc.floor)
			m.Set(level.PlaneWalls, 3, 2, level.CodeElevatorWall)
			m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
			w := newTestWorld(t, m)
			tex := w.WallTexX[3][2]

			runTics(w, 30, Cmd{})
			w.RunTics(1, Cmd{Use: true})
			if w.Player.PlayState != tc.expected {
				t.Errorf("PlayState = %v, expected %v", w.Player.PlayState, tc.expected)
			}
			if w.WallTexX[3][2] != tex+2 {
				t.Errorf("switch texture = %d, expected %d", w.WallTexX[3][2], tex+2)
			}
			if w.State.EndTime != 30 {
				t.Errorf("EndTime = %d, expected 30", w.State.EndTime)
			}

			w.RunTics(10, Cmd{})
			if w.Time() != 31 {
				t.Errorf("Time() = %d, expected the level to stay finished", w.Time())
			}
		})
	}
}

func TestUseElevatorNeedsSideApproach(t *testing.T) {
	m := roomMap(1, 1, 3, 3)
	m.Set(level.PlaneWalls, 2, 4, level.CodeElevatorWall)
	m.Set(level.PlaneObjects, 2, 3, level.CodePlayerNorth)
	w := newTestWorld(t, m)
	w.DrainEvents()

	w.RunTics(1, Cmd{Use: true})
	if w.Player.PlayState != PlayPlaying {
		t.Errorf("PlayState = %v, expected playing", w.Player.PlayState)
	}
	ev := w.DrainEvents()
	if len(ev) != 1 || ev[0].Kind != EventNoWay {
		t.Errorf("events = %+v, expected no way", ev)
	}
}

func TestExitTileRunsVictory(t *testing.T) {
	m := roomMap(1, 1, 20, 3)
	m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
	m.Set(level.PlaneObjects, 3, 2, level.CodeExit)
	w := newTestWorld(t, m)

	runTics(w, 16, Cmd{Forward: 0x2000})
	if w.Player.PlayState != PlayWatchingBJ || !w.State.Victory {
		t.Fatalf("PlayState = %v, expected watching bj", w.Player.PlayState)
	}
	if len(w.Actors()) != 1 || w.Actors()[0].Type != level.ActorBJ {
		t.Fatalf("actors = %+v, expected the runner", w.Actors())
	}
	end := w.State.EndTime

	runTics(w, 1000, Cmd{})
	if w.Player.PlayState != PlayVictory {
		t.Errorf("PlayState = %v, expected victory", w.Player.PlayState)
	}
	if w.State.EndTime != end {
		t.Errorf("EndTime = %d, expected %d", w.State.EndTime, end)
	}
}

func TestWeaponSelect(t *testing.T) {
	m := roomMap(1, 1, 5, 5)
	m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
	w := newTestWorld(t, m)

	tests := []struct {
		impulse  int
		expected Weapon
	}{
		{1, WeaponKnife},
		{ImpulseNextWeapon, WeaponPistol},
		{3, WeaponPistol},
		{ImpulseNextWeapon, WeaponKnife},
		{2, WeaponPistol},
	}
	for _, tc := range tests {
		w.RunTics(1, Cmd{Impulse: tc.impulse})
		if w.Player.Weapon != tc.expected {
			t.Errorf("impulse %d: Weapon = %v, expected %v", tc.impulse, w.Player.Weapon, tc.expected)
		}
	}
}

func TestPistolKillsAdjacentGuard(t *testing.T) {
	m := roomMap(1, 1, 20, 20)
	m.Set(level.PlaneObjects, 2, 10, level.CodePlayerEast)
	m.Set(level.PlaneObjects, 3, 10, spawnCode(t, level.ActorGuard, level.SpawnStand, units.Dir4East))
	opts := DefaultOptions()
	opts.GodMode = true
	w := buildWorld(t, m, opts)
	guard := &w.Actors()[0]

	for range 20 {
		runTics(w, 30, Cmd{Attack: true})
		w.RunTics(1, Cmd{})
		if !guard.Alive() {
			break
		}
	}
	if guard.Alive() {
		t.Fatalf("guard health %d after repeated point blank shots", guard.Health)
	}
	if w.Player.Ammo >= 8 {
		t.Errorf("Ammo = %d, expected rounds spent", w.Player.Ammo)
	}
	if w.State.Kills != 1 {
		t.Errorf("Kills = %d, expected 1", w.State.Kills)
	}
}

func TestEmptyGunFallsBackToKnife(t *testing.T) {
	m := roomMap(1, 1, 5, 5)
	m.Set(level.PlaneObjects, 2, 2, level.CodePlayerEast)
	w := newTestWorld(t, m)
	w.Player.Ammo = 1

	runTics(w, 30, Cmd{Attack: true})
	if w.Player.Ammo != 0 || w.Player.Weapon != WeaponKnife {
		t.Errorf("ammo %d weapon %v, expected an empty pistol swapped for the knife", w.Player.Ammo, w.Player.Weapon)
	}
	if w.Player.Attacking {
		t.Error("attack still running")
	}
}
