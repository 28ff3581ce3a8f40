package sim

import (
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// Push-wall travel.
const (
	PushWallTicsPerTile = 128
	PushWallMaxTiles    = 3
)

// PushWall is the single secret wall that may be sliding at any time.
type PushWall struct {
	Active   bool
	Dir      units.Dir4
	X, Y     int // tile the wall currently occupies
	Moved    int // whole tiles travelled
	Progress int // tics into the current tile
	TexX     int
	TexY     int
}

// pushBlocked is the set of flags that stop a sliding wall.
const pushBlocked = level.TileSolid | level.TileDoor | level.TilePowerup

// PushWall starts the secret wall at (x, y) sliding in dir. It returns false
// when the push has no effect: another wall is moving, the tile is not a
// secret, or the next tile is blocked.
func (w *World) PushWall(x, y int, dir units.Dir4) bool {
	if w.PWall.Active {
		return false
	}
	if !w.tileAt(x, y).Has(level.TileSecret) {
		return false
	}
	dx, dy := units.DX4[dir], units.DY4[dir]
	nx, ny := x+dx, y+dy
	if w.pushDestBlocked(nx, ny) {
		w.log.Debug("push-wall blocked", "x", x, "y", y, "dir", dir)
		return false
	}

	w.Tiles[x][y] &^= level.TileSecret | level.TileWall
	w.Tiles[x][y] |= level.TilePushWall
	w.State.Secrets++

	w.Tiles[nx][ny] |= level.TilePushWall
	w.WallTexX[nx][ny] = w.WallTexX[x][y]
	w.WallTexY[nx][ny] = w.WallTexY[x][y]

	w.PWall = PushWall{
		Active: true,
		Dir:    dir,
		X:      x,
		Y:      y,
		TexX:   w.WallTexX[x][y],
		TexY:   w.WallTexY[x][y],
	}
	w.emit(EventPushWall, "You found a secret!")
	return true
}

// pushDestBlocked reports whether the wall may not enter (x, y). Live actors
// hold their tile and the player holds every tile the body overlaps.
func (w *World) pushDestBlocked(x, y int) bool {
	if !units.InMap(x, y) || w.Tiles[x][y].Has(pushBlocked) {
		return true
	}
	p := &w.Player
	if x >= units.Pos2Tile(p.X-PlayerSize) && x <= units.Pos2Tile(p.X+PlayerSize) &&
		y >= units.Pos2Tile(p.Y-PlayerSize) && y <= units.Pos2Tile(p.Y+PlayerSize) {
		return true
	}
	return w.blockingActorAt(x, y, 0)
}

// ProcessPushWall advances the sliding wall by tics.
func (w *World) ProcessPushWall(tics int) {
	pw := &w.PWall
	if !pw.Active || tics <= 0 {
		return
	}
	pw.Progress += tics
	for pw.Active && pw.Progress >= PushWallTicsPerTile {
		pw.Progress -= PushWallTicsPerTile
		pw.Moved++

		dx, dy := units.DX4[pw.Dir], units.DY4[pw.Dir]
		w.Tiles[pw.X][pw.Y] &^= level.TilePushWall
		oldX, oldY := pw.X, pw.Y
		pw.X += dx
		pw.Y += dy
		// The vacated tile becomes floor of whatever area the wall moved into.
		if a := w.Areas[pw.X][pw.Y]; a >= 0 {
			w.Areas[oldX][oldY] = a
		}

		nx, ny := pw.X+dx, pw.Y+dy
		if pw.Moved >= PushWallMaxTiles || w.pushDestBlocked(nx, ny) {
			w.Tiles[pw.X][pw.Y] &^= level.TilePushWall
			w.Tiles[pw.X][pw.Y] |= level.TileWall
			w.WallTexX[pw.X][pw.Y] = pw.TexX
			w.WallTexY[pw.X][pw.Y] = pw.TexY
			w.Areas[pw.X][pw.Y] = level.AreaWall
			pw.Active = false
			pw.Progress = 0
			return
		}
		w.Tiles[nx][ny] |= level.TilePushWall
		w.WallTexX[nx][ny] = pw.TexX
		w.WallTexY[nx][ny] = pw.TexY
	}
}

// PushWallOffset returns the wall's sub-tile progress in world units along
// its direction, for renderers.
func (w *World) PushWallOffset() units.Pos {
	if !w.PWall.Active {
		return 0
	}
	return units.Pos(w.PWall.Progress * units.TileGlobal / PushWallTicsPerTile)
}
