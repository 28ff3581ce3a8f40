// Package export renders decoded maps to raster images.
package export

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// Options controls the rendered image.
type Options struct {
	TileSize int  // Pixels per map tile
	Crop     bool // Trim solid rock around the level
	Grid     bool // Draw tile borders
}

// DefaultOptions returns 12 pixel tiles, cropped, with a grid.
func DefaultOptions() Options {
	return Options{TileSize: 12, Crop: true, Grid: true}
}

var (
	colorBackground = color.RGBA{12, 12, 28, 255}
	colorWall       = color.RGBA{70, 90, 160, 255}
	colorElevator   = color.RGBA{60, 180, 190, 255}
	colorSecret     = color.RGBA{200, 60, 200, 255}
	colorGrid       = color.RGBA{30, 30, 45, 255}
	colorPlayer     = color.RGBA{80, 220, 80, 255}
	colorActor      = color.RGBA{230, 60, 50, 255}
	colorTreasure   = color.RGBA{250, 210, 40, 255}
	colorPickup     = color.RGBA{120, 230, 140, 255}
	colorBlock      = color.RGBA{140, 140, 140, 255}
	colorExit       = color.RGBA{250, 250, 255, 255}
)

var doorColors = map[level.DoorKind]color.RGBA{
	level.DoorPlain:    {190, 150, 60, 255},
	level.DoorGold:     {250, 210, 40, 255},
	level.DoorSilver:   {210, 210, 230, 255},
	level.DoorElevator: {60, 180, 190, 255},
}

// MapImage draws one level.
type MapImage struct {
	lvl  *level.LevelData
	opts Options
	// Tile bounds drawn, inclusive; y grows north.
	x0, y0, x1, y1 int
}

// New prepares a renderer for lvl.
func New(lvl *level.LevelData, opts Options) *MapImage {
	if opts.TileSize <= 0 {
		opts.TileSize = DefaultOptions().TileSize
	}
	m := &MapImage{lvl: lvl, opts: opts, x1: level.MapSize - 1, y1: level.MapSize - 1}
	if opts.Crop {
		m.crop()
	}
	return m
}

// crop shrinks the bounds to the tiles that are not plain wall, plus a
// one tile border.
func (m *MapImage) crop() {
	x0, y0, x1, y1 := level.MapSize, level.MapSize, -1, -1
	for x := range level.MapSize {
		for y := range level.MapSize {
			t := m.lvl.Tiles[x][y]
			if t.Has(level.TileWall) && !t.Has(level.TileSecret|level.TileElevator) {
				continue
			}
			x0, y0 = min(x0, x), min(y0, y)
			x1, y1 = max(x1, x), max(y1, y)
		}
	}
	if x1 < 0 {
		return
	}
	m.x0, m.y0 = max(x0-1, 0), max(y0-1, 0)
	m.x1, m.y1 = min(x1+1, level.MapSize-1), min(y1+1, level.MapSize-1)
}

// Size returns the image size in pixels.
func (m *MapImage) Size() (int, int) {
	return (m.x1 - m.x0 + 1) * m.opts.TileSize, (m.y1 - m.y0 + 1) * m.opts.TileSize
}

// TileOrigin returns the top-left pixel of tile (x, y).
func (m *MapImage) TileOrigin(x, y int) (float64, float64) {
	ts := float64(m.opts.TileSize)
	return float64(x-m.x0) * ts, float64(m.y1-y) * ts
}

// Render draws the level.
func (m *MapImage) Render() image.Image {
	w, h := m.Size()
	dc := gg.NewContext(w, h)
	dc.SetColor(colorBackground)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	for x := m.x0; x <= m.x1; x++ {
		for y := m.y0; y <= m.y1; y++ {
			m.drawTile(dc, x, y)
		}
	}
	if m.opts.Grid {
		m.drawGrid(dc, w, h)
	}
	for _, s := range m.lvl.Statics {
		m.drawStatic(dc, s)
	}
	for _, a := range m.lvl.Actors {
		m.drawActor(dc, a)
	}
	if m.lvl.HasSpawn {
		m.drawPlayer(dc)
	}
	return dc.Image()
}

// SavePNG renders the level and writes it to path.
func (m *MapImage) SavePNG(path string) error {
	if err := gg.SavePNG(path, m.Render()); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

func (m *MapImage) drawTile(dc *gg.Context, x, y int) {
	px, py := m.TileOrigin(x, y)
	ts := float64(m.opts.TileSize)
	t := m.lvl.Tiles[x][y]
	area := m.lvl.Areas[x][y]

	switch {
	case t.Has(level.TileDoor):
		d, _ := m.lvl.DoorAt(x, y)
		dc.SetColor(areaColor(d.Area1))
		dc.DrawRectangle(px, py, ts, ts)
		dc.Fill()
		dc.SetColor(doorColors[d.Kind])
		if d.Vertical {
			dc.DrawRectangle(px+ts*0.35, py, ts*0.3, ts)
		} else {
			dc.DrawRectangle(px, py+ts*0.35, ts, ts*0.3)
		}
		dc.Fill()
	case t.Has(level.TileElevator):
		dc.SetColor(colorElevator)
		dc.DrawRectangle(px, py, ts, ts)
		dc.Fill()
	case t.Has(level.TileWall):
		dc.SetColor(colorWall)
		dc.DrawRectangle(px, py, ts, ts)
		dc.Fill()
		if t.Has(level.TileSecret) {
			dc.SetColor(colorSecret)
			dc.SetLineWidth(2)
			dc.DrawRectangle(px+1, py+1, ts-2, ts-2)
			dc.Stroke()
		}
	case area >= 0:
		dc.SetColor(areaColor(area))
		dc.DrawRectangle(px, py, ts, ts)
		dc.Fill()
		if t.Has(level.TileExit) {
			dc.SetColor(colorExit)
			dc.SetLineWidth(2)
			dc.DrawLine(px+2, py+2, px+ts-2, py+ts-2)
			dc.DrawLine(px+ts-2, py+2, px+2, py+ts-2)
			dc.Stroke()
		}
	}
}

func (m *MapImage) drawGrid(dc *gg.Context, w, h int) {
	ts := float64(m.opts.TileSize)
	dc.SetColor(colorGrid)
	dc.SetLineWidth(1)
	for x := 0.0; x <= float64(w); x += ts {
		dc.DrawLine(x, 0, x, float64(h))
		dc.Stroke()
	}
	for y := 0.0; y <= float64(h); y += ts {
		dc.DrawLine(0, y, float64(w), y)
		dc.Stroke()
	}
}

func (m *MapImage) drawStatic(dc *gg.Context, s level.StaticSpawn) {
	if !m.inside(s.X, s.Y) {
		return
	}
	switch {
	case s.Info.Kind.IsTreasure():
		dc.SetColor(colorTreasure)
	case s.Info.Kind.IsBonus():
		dc.SetColor(colorPickup)
	case s.Info.Kind == level.StaticBlock:
		dc.SetColor(colorBlock)
	default:
		return
	}
	cx, cy, ts := m.center(s.X, s.Y)
	dc.DrawRectangle(cx-ts*0.2, cy-ts*0.2, ts*0.4, ts*0.4)
	dc.Fill()
}

func (m *MapImage) drawActor(dc *gg.Context, a level.ActorSpawn) {
	if !m.inside(a.X, a.Y) {
		return
	}
	cx, cy, ts := m.center(a.X, a.Y)
	dc.SetColor(colorActor)
	dc.DrawCircle(cx, cy, ts*0.3)
	dc.Fill()
}

func (m *MapImage) drawPlayer(dc *gg.Context) {
	x, y := m.lvl.SpawnX, m.lvl.SpawnY
	if !m.inside(x, y) {
		return
	}
	cx, cy, ts := m.center(x, y)
	dc.SetColor(colorPlayer)
	dc.DrawCircle(cx, cy, ts*0.35)
	dc.Fill()

	// Image y grows down, map y grows north.
	ang := units.Fine2Rad(m.lvl.SpawnAngle)
	dc.SetLineWidth(2)
	dc.DrawLine(cx, cy, cx+math.Cos(ang)*ts*0.6, cy-math.Sin(ang)*ts*0.6)
	dc.Stroke()
}

func (m *MapImage) inside(x, y int) bool {
	return x >= m.x0 && x <= m.x1 && y >= m.y0 && y <= m.y1
}

func (m *MapImage) center(x, y int) (float64, float64, float64) {
	px, py := m.TileOrigin(x, y)
	ts := float64(m.opts.TileSize)
	return px + ts/2, py + ts/2, ts
}

// areaColor gives every area its own dark floor tint.
func areaColor(area int) color.RGBA {
	if area < 0 {
		return colorBackground
	}
	hue := float64(area*47%360) / 360
	r, g, b := hslToRGB(hue, 0.35, 0.22)
	return color.RGBA{r, g, b, 255}
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	q := l * (1 + s)
	if l >= 0.5 {
		q = l + s - l*s
	}
	p := 2*l - q
	conv := func(t float64) uint8 {
		t -= math.Floor(t)
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 0.5:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*(2.0/3-t)*6
		default:
			v = p
		}
		return uint8(math.Round(v * 255))
	}
	return conv(h + 1.0/3), conv(h), conv(h - 1.0/3)
}
