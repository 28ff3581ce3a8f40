// Package units defines the spatial model shared by the level decoder and the
// simulation: fixed-point world coordinates, fine angles, grid directions and
// tic timing. It has no dependencies so every other wolf package can use it.
package units

// World coordinates are fixed-point: one tile = 1<<TileShift units.
const (
	TileShift  = 16
	TileGlobal = 1 << TileShift
	HalfTile   = TileGlobal / 2

	// MapSize is the width and height of every level grid in tiles.
	MapSize = 64
)

// Pos is a world-space coordinate in fixed-point units.
type Pos = int32

// Tile2Pos returns the world coordinate of the center of tile t.
func Tile2Pos(t int) Pos {
	return Pos(t<<TileShift) + HalfTile
}

// Pos2Tile returns the tile containing world coordinate p.
func Pos2Tile(p Pos) int {
	return int(p >> TileShift)
}

// InMap reports whether (x, y) is a valid tile coordinate.
func InMap(x, y int) bool {
	return x >= 0 && x < MapSize && y >= 0 && y < MapSize
}

// Abs returns the absolute value of a world coordinate delta.
func Abs(p Pos) Pos {
	if p < 0 {
		return -p
	}
	return p
}

// AbsInt returns the absolute value of an integer.
func AbsInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TicRate is the number of simulation tics per second.
const TicRate = 70

// TicClock converts elapsed milliseconds to whole tics, carrying the
// remainder between calls so no time is lost to rounding.
type TicClock struct {
	remainder int // leftover ms*TicRate not yet converted
}

// MsToTics converts ms milliseconds into tics.
func (c *TicClock) MsToTics(ms int) int {
	if ms <= 0 {
		return 0
	}
	total := ms*TicRate + c.remainder
	tics := total / 1000
	c.remainder = total % 1000
	return tics
}

// Reset drops any carried remainder.
func (c *TicClock) Reset() {
	c.remainder = 0
}
