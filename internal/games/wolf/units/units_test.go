package units

import (
	"math"
	"testing"
)

func TestTilePosConversion(t *testing.T) {
	for _, tile := range []int{0, 1, 31, 63} {
		p := Tile2Pos(tile)
		if got := Pos2Tile(p); got != tile {
			t.Errorf("Pos2Tile(Tile2Pos(%d)) = %d", tile, got)
		}
		if got := Pos2Tile(p + HalfTile - 1); got != tile {
			t.Errorf("right edge of tile %d maps to %d", tile, got)
		}
	}
}

func TestFineRadRoundTrip(t *testing.T) {
	tests := []struct {
		fine Fine
		rad  float64
	}{
		{Ang0, 0},
		{Ang90, math.Pi / 2},
		{Ang180, math.Pi},
		{Ang270, 3 * math.Pi / 2},
	}

	for _, tc := range tests {
		if got := Fine2Rad(tc.fine); math.Abs(got-tc.rad) > 1e-9 {
			t.Errorf("Fine2Rad(%d) = %f, expected %f", tc.fine, got, tc.rad)
		}
		if got := Rad2Fine(tc.rad); got != tc.fine {
			t.Errorf("Rad2Fine(%f) = %d, expected %d", tc.rad, got, tc.fine)
		}
	}

	if NormalizeFine(-Ang90) != Ang270 {
		t.Errorf("NormalizeFine(-90deg) = %d", NormalizeFine(-Ang90))
	}
}

func TestGet8Dir(t *testing.T) {
	tests := []struct {
		rad      float64
		expected int
	}{
		{0, 0},
		{math.Pi / 4, 1},
		{math.Pi / 2, 2},
		{math.Pi, 4},
		{-math.Pi / 4, 7},
		{math.Pi/8 - 0.01, 0},
		{math.Pi/8 + 0.01, 1},
	}

	for _, tc := range tests {
		if got := Get8Dir(tc.rad); got != tc.expected {
			t.Errorf("Get8Dir(%f) = %d, expected %d", tc.rad, got, tc.expected)
		}
	}
}

func TestDirectionTables(t *testing.T) {
	for d := DirEast; d < DirNone; d++ {
		o := Opposite[d]
		if DX8[d] != -DX8[o] || DY8[d] != -DY8[o] {
			t.Errorf("Opposite[%d] = %d does not reverse the step", d, o)
		}
		if Opposite[o] != d {
			t.Errorf("Opposite is not an involution for %d", d)
		}
	}

	if Diagonal[DirEast][DirNorth] != DirNorthEast || Diagonal[DirSouth][DirWest] != DirSouthWest {
		t.Error("Diagonal table does not combine axes")
	}
	if Diagonal[DirEast][DirWest] != DirNone {
		t.Error("Diagonal of two horizontal directions should be DirNone")
	}
	if Dir4FromFine(Ang90+100) != Dir4North || Dir4FromFine(Ang360-100) != Dir4East {
		t.Error("Dir4FromFine picks the wrong quadrant")
	}
}

func TestTicClockCarriesRemainder(t *testing.T) {
	var c TicClock
	total := 0
	for i := 0; i < 1000; i++ {
		total += c.MsToTics(1)
	}
	if total != TicRate {
		t.Errorf("1000 x 1ms = %d tics, expected %d", total, TicRate)
	}
	if c.MsToTics(0) != 0 || c.MsToTics(-5) != 0 {
		t.Error("non-positive durations must not produce tics")
	}
}
