package units

import "math"

// Fine angles are integer tenths of a degree, counter-clockwise from east.
const (
	Ang0   = 0
	Ang1   = 10
	Ang45  = 450
	Ang90  = 900
	Ang135 = 1350
	Ang180 = 1800
	Ang225 = 2250
	Ang270 = 2700
	Ang315 = 3150
	Ang360 = 3600
)

// Fine is an angle in fine units.
type Fine = int

// Fine2Rad converts a fine angle to radians.
func Fine2Rad(a Fine) float64 {
	return float64(a) * math.Pi / Ang180
}

// Rad2Fine converts radians to the nearest fine angle in [0, Ang360).
func Rad2Fine(r float64) Fine {
	return NormalizeFine(int(math.Round(r * Ang180 / math.Pi)))
}

// NormalizeFine wraps a fine angle into [0, Ang360).
func NormalizeFine(a Fine) Fine {
	a %= Ang360
	if a < 0 {
		a += Ang360
	}
	return a
}

// NormalizeRad wraps an angle into [0, 2pi).
func NormalizeRad(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// Get8Dir discretises an angle into one of eight 45 degree octants,
// with octant 0 centered on angle zero.
func Get8Dir(r float64) int {
	r = NormalizeRad(r + math.Pi/8)
	return int(r/(math.Pi/4)) & 7
}

// AngleTo returns the angle in radians from (x1, y1) to (x2, y2).
func AngleTo(x1, y1, x2, y2 Pos) float64 {
	return NormalizeRad(math.Atan2(float64(y2-y1), float64(x2-x1)))
}
