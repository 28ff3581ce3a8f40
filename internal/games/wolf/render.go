package wolf

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-wolf/internal/core"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/sim"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// Automap zoom levels. Each map tile covers zoomCells[zoom] screen cells.
const (
	minZoom = 0
	maxZoom = 2
)

var zoomCells = [maxZoom + 1][2]int{{1, 1}, {2, 1}, {4, 2}}

// Smallest screen the automap is drawn on.
const (
	minScreenW = 40
	minScreenH = 12
)

const hudRows = 2

// Player arrows indexed by Get8Dir octant, east first.
var playerArrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

type glyph struct {
	r rune
	c core.Color
}

var (
	glyphFloor    = glyph{'·', core.ColorGray}
	glyphWall     = glyph{'█', core.ColorBlue}
	glyphElevator = glyph{'▒', core.ColorCyan}
	glyphPushWall = glyph{'▓', core.ColorMagenta}
	glyphExit     = glyph{'X', core.ColorBrightGreen}
	glyphCorpse   = glyph{'%', core.ColorRed}
	glyphShot     = glyph{'*', core.ColorOrange}
)

var doorColors = map[level.DoorKind]core.Color{
	level.DoorPlain:    core.ColorYellow,
	level.DoorGold:     core.ColorBrightYellow,
	level.DoorSilver:   core.ColorBrightWhite,
	level.DoorElevator: core.ColorCyan,
}

// Render draws the automap with the status lines.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2, "Window too small")
		return
	}
	if g.world == nil {
		g.renderOverlay(dst, "Cannot start level", g.failure)
		return
	}

	g.renderHUD(dst)
	box := core.NewRect(0, hudRows, w, h-hudRows-1)
	dst.DrawBox(box, core.ColorGray)
	g.renderMap(dst, box.Inset(1))
	g.renderFooter(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "Victory!", fmt.Sprintf("Final score: %d", g.world.Player.Score))
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world
	p := &w.Player
	secs := w.State.Time / units.TicRate
	line1 := fmt.Sprintf(" %s  %02d:%02d  Score %d  Lives %d",
		w.Level.Name, secs/60, secs%60, p.Score, p.Lives)
	dst.DrawTextColored(0, 0, line1, core.ColorBrightWhite)

	healthColor := core.ColorBrightGreen
	switch {
	case p.Health <= 25:
		healthColor = core.ColorBrightRed
	case p.DamageFlash > 0:
		healthColor = core.ColorRed
	}
	health := fmt.Sprintf(" Health %d%%", p.Health)
	dst.DrawTextColored(0, 1, health, healthColor)

	var keys strings.Builder
	if p.Keys&sim.KeyGold != 0 {
		keys.WriteString(" [gold]")
	}
	if p.Keys&sim.KeySilver != 0 {
		keys.WriteString(" [silver]")
	}
	rest := fmt.Sprintf("  Ammo %d  %s%s  K %d%% S %d%% T %d%%",
		p.Ammo, p.Weapon, keys.String(),
		core.Ratio(w.State.Kills, w.State.TotalKills),
		core.Ratio(w.State.Secrets, w.State.TotalSecrets),
		core.Ratio(w.State.Treasure, w.State.TotalTreasure))
	dst.DrawText(len(health), 1, rest)
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if g.message != "" {
		dst.DrawTextColored(1, y, g.message, core.ColorBrightYellow)
		return
	}
	dst.DrawTextColored(1, y, "wasd move  q/e strafe  space fire  f use  1-4 weapon  +/- zoom  p pause", core.ColorGray)
}

// renderMap draws the tiles around the player into area, north up.
func (g *Game) renderMap(dst *core.Screen, area core.Rect) {
	if area.Empty() {
		return
	}
	cw, ch := zoomCells[g.zoom][0], zoomCells[g.zoom][1]
	cols, rows := area.W/cw, area.H/ch
	p := &g.world.Player
	left := p.TileX - cols/2
	top := p.TileY + rows/2
	offX := area.X + (area.W-cols*cw)/2
	offY := area.Y + (area.H-rows*ch)/2

	things := g.thingGlyphs()
	for j := range rows {
		for i := range cols {
			x, y := left+i, top-j
			gl, ok := things[[2]int{x, y}]
			if !ok {
				gl, ok = g.tileGlyph(x, y)
			}
			if !ok {
				continue
			}
			for dy := range ch {
				for dx := range cw {
					r := gl.r
					if dx > 0 && gl.r != glyphWall.r && gl.r != glyphElevator.r && gl.r != glyphPushWall.r {
						r = ' '
					}
					dst.SetColored(offX+i*cw+dx, offY+j*ch+dy, r, gl.c)
				}
			}
		}
	}
}

// tileGlyph returns the glyph of the static map content at (x, y), false
// for solid rock outside the level.
func (g *Game) tileGlyph(x, y int) (glyph, bool) {
	if !units.InMap(x, y) {
		return glyph{}, false
	}
	w := g.world
	t := w.Tiles[x][y]
	switch {
	case w.PWall.Active && w.PWall.X == x && w.PWall.Y == y:
		return glyphPushWall, true
	case t.Has(level.TileDoor):
		i := w.DoorAt(x, y)
		d := w.Doors[i]
		c := doorColors[d.Kind]
		switch open := w.DoorOpened(i); {
		case open >= sim.DoorFullOpen:
			return glyph{'\'', c}, true
		case open > 0:
			return glyph{'/', c}, true
		case d.Vertical:
			return glyph{'|', c}, true
		default:
			return glyph{'─', c}, true
		}
	case t.Has(level.TileElevator):
		return glyphElevator, true
	case t.Has(level.TileWall):
		if !g.wallVisible(x, y) {
			return glyph{}, false
		}
		return glyphWall, true
	case t.Has(level.TileExit):
		return glyphExit, true
	}
	return glyphFloor, true
}

// wallVisible reports whether a wall borders something that is not wall,
// so the void around the level stays blank.
func (g *Game) wallVisible(x, y int) bool {
	for d := range 8 {
		nx, ny := x+units.DX8[d], y+units.DY8[d]
		if units.InMap(nx, ny) && !g.world.Tiles[nx][ny].Has(level.TileWall) {
			return true
		}
	}
	return false
}

// thingGlyphs places the player, actors and statics. Living actors hide
// corpses and items on the same tile.
func (g *Game) thingGlyphs() map[[2]int]glyph {
	w := g.world
	out := make(map[[2]int]glyph)
	for _, s := range w.Statics() {
		if gl, ok := staticGlyph(s.Info); ok {
			out[[2]int{s.X, s.Y}] = gl
		}
	}
	for _, a := range w.Actors() {
		key := [2]int{a.TileX, a.TileY}
		switch {
		case a.Type == level.ActorSmoke || a.Type == level.ActorBJ:
			continue
		case a.Type >= level.ActorNeedle && a.Type <= level.ActorRocket:
			out[key] = glyphShot
		case a.Alive():
			out[key] = glyph{actorRune(a.Type), core.ColorBrightRed}
		default:
			if _, taken := out[key]; !taken {
				out[key] = glyphCorpse
			}
		}
	}
	p := &w.Player
	out[[2]int{p.TileX, p.TileY}] = glyph{playerArrows[units.Get8Dir(p.Angle)], core.ColorBrightGreen}
	return out
}

func staticGlyph(info level.StaticInfo) (glyph, bool) {
	switch info.Kind {
	case level.StaticDress:
		return glyph{}, false
	case level.StaticBlock:
		return glyph{'o', core.ColorGray}, true
	case level.BonusKey1:
		return glyph{'k', core.ColorBrightYellow}, true
	case level.BonusKey2:
		return glyph{'k', core.ColorBrightWhite}, true
	case level.BonusFood, level.BonusFirstAid, level.BonusAlpo, level.BonusGibs:
		return glyph{'+', core.ColorGreen}, true
	case level.BonusClip, level.BonusClip2:
		return glyph{'=', core.ColorYellow}, true
	case level.BonusMachineGun, level.BonusChainGun:
		return glyph{'W', core.ColorOrange}, true
	case level.BonusFullHeal:
		return glyph{'1', core.ColorBrightCyan}, true
	}
	if info.Kind.IsTreasure() {
		return glyph{'$', core.ColorBrightYellow}, true
	}
	return glyph{}, false
}

func actorRune(t level.ActorType) rune {
	switch t {
	case level.ActorGuard:
		return 'g'
	case level.ActorOfficer:
		return 'o'
	case level.ActorSS:
		return 's'
	case level.ActorDog:
		return 'd'
	case level.ActorMutant:
		return 'm'
	case level.ActorBlinky, level.ActorClyde, level.ActorPinky, level.ActorInky:
		return 'G'
	}
	return 'B'
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect((dst.Width()-width)/2, (dst.Height()-5)/2, width, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCenteredColored(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2)
}
