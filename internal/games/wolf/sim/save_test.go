package sim

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// scriptCmd is a repeatable input pattern: walk, turn and fire in bursts.
func scriptCmd(i int) Cmd {
	var c Cmd
	if i%50 < 30 {
		c.Forward = 0x800
	}
	if i%70 < 10 {
		c.Turn = 15
	}
	if i%40 >= 10 && i%40 < 13 {
		c.Attack = true
	}
	return c
}

func busyWorld(t *testing.T) *World {
	t.Helper()
	m := roomMap(1, 1, 20, 20)
	m.Set(level.PlaneObjects, 2, 10, level.CodePlayerEast)
	m.Set(level.PlaneObjects, 10, 10, spawnCode(t, level.ActorGuard, level.SpawnStand, units.Dir4West))
	m.Set(level.PlaneObjects, 15, 5, spawnCode(t, level.ActorGuard, level.SpawnPatrol, units.Dir4North))
	m.Set(level.PlaneObjects, 18, 18, spawnCode(t, level.ActorDog, level.SpawnPatrol, units.Dir4West))
	m.Set(level.PlaneObjects, 5, 12, codeClip)
	m.Set(level.PlaneObjects, 6, 6, codeCross)
	opts := DefaultOptions()
	opts.GodMode = true
	opts.Seed = 42
	return buildWorld(t, m, opts)
}

func compareWorlds(t *testing.T, a, b *World) {
	t.Helper()
	if !reflect.DeepEqual(a.Actors(), b.Actors()) {
		t.Errorf("actors differ:\n%+v\n%+v", a.Actors(), b.Actors())
	}
	if !reflect.DeepEqual(a.Statics(), b.Statics()) {
		t.Errorf("statics differ: %+v vs %+v", a.Statics(), b.Statics())
	}
	pa, pb := a.Player, b.Player
	pa.LastAttacker, pb.LastAttacker = 0, 0
	if !reflect.DeepEqual(pa, pb) {
		t.Errorf("player differs:\n%+v\n%+v", pa, pb)
	}
	if a.State != b.State {
		t.Errorf("level state = %+v, expected %+v", b.State, a.State)
	}
	if !reflect.DeepEqual(a.Doors, b.Doors) || a.PWall != b.PWall {
		t.Error("doors or push-wall differ")
	}
	if a.Tiles != b.Tiles || a.Areas != b.Areas || a.WallTexX != b.WallTexX {
		t.Error("grids differ")
	}
	if a.Graph.Links != b.Graph.Links || a.Graph.ByPlayer != b.Graph.ByPlayer {
		t.Error("area graph differs")
	}
	if a.RandomDraws() != b.RandomDraws() {
		t.Errorf("random draws = %d, expected %d", b.RandomDraws(), a.RandomDraws())
	}
}

func TestSaveLoadResumesIdentically(t *testing.T) {
	w := busyWorld(t)
	for i := range 200 {
		w.RunTics(1, scriptCmd(i))
	}

	data, err := SaveBytes(w)
	if err != nil {
		t.Fatalf("SaveBytes() error = %v", err)
	}
	loaded, err := Load(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	compareWorlds(t, w, loaded)

	for i := 200; i < 600; i++ {
		w.RunTics(1, scriptCmd(i))
		loaded.RunTics(1, scriptCmd(i))
	}
	compareWorlds(t, w, loaded)
}

func TestSaveIsStable(t *testing.T) {
	w := busyWorld(t)
	runTics(w, 50, Cmd{Forward: 0x400})

	first, err := SaveBytes(w)
	if err != nil {
		t.Fatalf("SaveBytes() error = %v", err)
	}
	loaded, err := Load(bytes.NewReader(first), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := SaveBytes(loaded)
	if err != nil {
		t.Fatalf("SaveBytes() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("saving a loaded world produced different bytes")
	}
}

func TestSaveKeepsDroppedLoot(t *testing.T) {
	w := busyWorld(t)
	w.DamageActor(&w.Actors()[0], 1000)

	data, err := SaveBytes(w)
	if err != nil {
		t.Fatalf("SaveBytes() error = %v", err)
	}
	loaded, err := Load(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	st := loaded.Statics()
	if len(st) != 3 || st[2].Info != level.DroppedClip {
		t.Errorf("statics = %+v, expected the dropped clip last", st)
	}
}

func TestLoadRejectsCorruption(t *testing.T) {
	w := busyWorld(t)
	good, err := SaveBytes(w)
	if err != nil {
		t.Fatalf("SaveBytes() error = %v", err)
	}

	corrupt := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), good...)
		return f(b)
	}

	tests := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"empty", nil, ErrSaveFormat},
		{"bad magic", corrupt(func(b []byte) []byte { b[0] = 'X'; return b }), ErrSaveFormat},
		{"header version", corrupt(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[4:], SaveVersion+1)
			return b
		}), ErrSaveVersion},
		{"trailing version", corrupt(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[len(b)-4:], SaveVersion-1)
			return b
		}), ErrSaveVersion},
		{"truncated header", good[:10], ErrSaveFormat},
		{"truncated body", good[:len(good)/2], ErrSaveFormat},
		{"missing trailer", good[:len(good)-4], ErrSaveFormat},
		{"bad skill", corrupt(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[8:], 9)
			return b
		}), ErrSaveFormat},
		{"runaway draws", corrupt(func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[20:], maxSaveDraws+1)
			return b
		}), ErrSaveFormat},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Load(bytes.NewReader(tc.data), nil)
			if !errors.Is(err, tc.expected) {
				t.Errorf("Load() error = %v, expected %v", err, tc.expected)
			}
			if got != nil {
				t.Error("Load() returned a world on error")
			}
		})
	}
}
