package units

// Dir4 is a cardinal direction. North is +Y.
type Dir4 int

const (
	Dir4East Dir4 = iota
	Dir4North
	Dir4West
	Dir4South
)

// DX4 and DY4 are the tile steps for each Dir4.
var (
	DX4 = [4]int{1, 0, -1, 0}
	DY4 = [4]int{0, 1, 0, -1}
)

// String returns the direction name.
func (d Dir4) String() string {
	switch d {
	case Dir4East:
		return "east"
	case Dir4North:
		return "north"
	case Dir4West:
		return "west"
	case Dir4South:
		return "south"
	default:
		return "unknown"
	}
}

// Dir8 is one of eight compass directions or DirNone.
type Dir8 int

const (
	DirEast Dir8 = iota
	DirNorthEast
	DirNorth
	DirNorthWest
	DirWest
	DirSouthWest
	DirSouth
	DirSouthEast
	DirNone
)

// DX8 and DY8 are the tile steps for each Dir8 (DirNone stays put).
var (
	DX8 = [9]int{1, 1, 0, -1, -1, -1, 0, 1, 0}
	DY8 = [9]int{0, 1, 1, 1, 0, -1, -1, -1, 0}
)

// Opposite maps a direction to its reverse.
var Opposite = [9]Dir8{
	DirWest, DirSouthWest, DirSouth, DirSouthEast,
	DirEast, DirNorthEast, DirNorth, DirNorthWest, DirNone,
}

// Diagonal combines an east/west and a north/south direction.
// Any pairing that is not one horizontal and one vertical yields DirNone.
var Diagonal = func() [9][9]Dir8 {
	var d [9][9]Dir8
	for i := range d {
		for j := range d[i] {
			d[i][j] = DirNone
		}
	}
	d[DirEast][DirNorth] = DirNorthEast
	d[DirEast][DirSouth] = DirSouthEast
	d[DirWest][DirNorth] = DirNorthWest
	d[DirWest][DirSouth] = DirSouthWest
	d[DirNorth][DirEast] = DirNorthEast
	d[DirNorth][DirWest] = DirNorthWest
	d[DirSouth][DirEast] = DirSouthEast
	d[DirSouth][DirWest] = DirSouthWest
	return d
}()

// Dir8ToFine is the facing angle of each direction. DirNone faces east.
var Dir8ToFine = [9]Fine{Ang0, Ang45, Ang90, Ang135, Ang180, Ang225, Ang270, Ang315, Ang0}

// Fine returns the facing angle of a direction.
func (d Dir8) Fine() Fine {
	if d < DirEast || d > DirNone {
		return Ang0
	}
	return Dir8ToFine[d]
}

// IsDiagonal reports whether the direction moves on both axes.
func (d Dir8) IsDiagonal() bool {
	return d == DirNorthEast || d == DirNorthWest || d == DirSouthWest || d == DirSouthEast
}

// Dir8FromDir4 widens a cardinal direction.
func Dir8FromDir4(d Dir4) Dir8 {
	return Dir8(d * 2)
}

// Dir4FromFine returns the cardinal direction closest to a fine angle.
func Dir4FromFine(a Fine) Dir4 {
	a = NormalizeFine(a + Ang45)
	return Dir4(a / Ang90)
}
