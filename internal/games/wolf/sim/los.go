package sim

import (
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// CheckLine reports whether nothing solid lies between two world points.
// The trace walks every tile column the segment crosses, then every tile row.
// Walls block outright; a door blocks unless the crossing point falls inside
// its open span, measured in 1/64 of a tile.
func (w *World) CheckLine(x1p, y1p, x2p, y2p units.Pos) bool {
	// 1/256 tile precision.
	x1, y1 := int(x1p)>>8, int(y1p)>>8
	x2, y2 := int(x2p)>>8, int(y2p)>>8
	xt1, yt1 := x1>>8, y1>>8
	xt2, yt2 := x2>>8, y2>>8

	if xt1 != xt2 {
		var partial, xstep int
		if xt2 > xt1 {
			partial = 256 - (x1 & 0xFF)
			xstep = 1
		} else {
			partial = x1 & 0xFF
			xstep = -1
		}
		ystep := stepFrac(y2-y1, units.AbsInt(x2-x1))
		yfrac := y1 + (ystep*partial)>>8

		for x := xt1 + xstep; x != xt2+xstep; x += xstep {
			y := yfrac >> 8
			yfrac += ystep
			if !w.traceTileClear(x, y, yfrac-ystep/2) {
				return false
			}
		}
	}

	if yt1 != yt2 {
		var partial, ystep int
		if yt2 > yt1 {
			partial = 256 - (y1 & 0xFF)
			ystep = 1
		} else {
			partial = y1 & 0xFF
			ystep = -1
		}
		xstep := stepFrac(x2-x1, units.AbsInt(y2-y1))
		xfrac := x1 + (xstep*partial)>>8

		for y := yt1 + ystep; y != yt2+ystep; y += ystep {
			x := xfrac >> 8
			xfrac += xstep
			if !w.traceTileClear(x, y, xfrac-xstep/2) {
				return false
			}
		}
	}
	return true
}

func stepFrac(delta, span int) int {
	step := (delta << 8) / span
	if step > 0x7FFF {
		return 0x7FFF
	}
	if step < -0x7FFF {
		return -0x7FFF
	}
	return step
}

// traceTileClear tests one tile crossed by a trace. intercept is the
// crossing coordinate along the door in 1/256 tile units.
func (w *World) traceTileClear(x, y, intercept int) bool {
	t := w.tileAt(x, y)
	if t.Has(level.TileWall | level.TilePushWall) {
		return false
	}
	if !t.Has(level.TileDoor) {
		return true
	}
	open := w.Opened(x, y)
	if open == 0 {
		return false
	}
	return (intercept&0xFF)>>2 <= open
}

// checkLineToPlayer traces from an actor to the player.
func (w *World) checkLineToPlayer(a *Actor) bool {
	return w.CheckLine(a.X, a.Y, w.Player.X, w.Player.Y)
}
