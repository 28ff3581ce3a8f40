package export

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
)

func demoLevel(t *testing.T) *level.LevelData {
	t.Helper()
	lvl, err := wolf.DemoLevel()
	if err != nil {
		t.Fatalf("DemoLevel() error = %v", err)
	}
	return lvl
}

func rgbAt(t *testing.T, m *MapImage, x, y int) color.RGBA {
	t.Helper()
	img := m.Render()
	px, py := m.TileOrigin(x, y)
	ts := m.opts.TileSize
	r, g, b, a := img.At(int(px)+ts/2, int(py)+ts/2).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestUncroppedSize(t *testing.T) {
	m := New(demoLevel(t), Options{TileSize: 4})
	w, h := m.Size()
	if w != level.MapSize*4 || h != level.MapSize*4 {
		t.Errorf("Size() = %dx%d, expected %dx%d", w, h, level.MapSize*4, level.MapSize*4)
	}
	if x, y := m.TileOrigin(0, level.MapSize-1); x != 0 || y != 0 {
		t.Errorf("TileOrigin(north-west corner) = (%v,%v), expected (0,0)", x, y)
	}
}

func TestCropKeepsLevelWithBorder(t *testing.T) {
	lvl := demoLevel(t)
	m := New(lvl, DefaultOptions())
	w, h := m.Size()
	if w >= level.MapSize*12 || h >= level.MapSize*12 {
		t.Fatalf("Size() = %dx%d, expected a cropped image", w, h)
	}
	if !m.inside(lvl.SpawnX, lvl.SpawnY) {
		t.Error("spawn tile cropped away")
	}
}

func TestRenderColorsTiles(t *testing.T) {
	lvl := demoLevel(t)
	m := New(lvl, DefaultOptions())

	if got := rgbAt(t, m, lvl.SpawnX, lvl.SpawnY); got != colorPlayer {
		t.Errorf("spawn pixel = %v, expected %v", got, colorPlayer)
	}
	if got := rgbAt(t, m, m.x0, m.y1); got != colorWall {
		t.Errorf("corner pixel = %v, expected %v", got, colorWall)
	}
	a := lvl.Actors[0]
	if got := rgbAt(t, m, a.X, a.Y); got != colorActor {
		t.Errorf("actor pixel = %v, expected %v", got, colorActor)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.png")
	m := New(demoLevel(t), DefaultOptions())
	if err := m.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	w, h := m.Size()
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		t.Errorf("PNG is %dx%d, expected %dx%d", b.Dx(), b.Dy(), w, h)
	}

	if err := m.SavePNG(filepath.Join(t.TempDir(), "missing", "x.png")); err == nil {
		t.Error("SavePNG() into a missing directory should fail")
	}
}
