// Package level decodes compressed map files into the live tile grid used by
// the simulation and encodes grids back into the same format.
package level

// TileFlags is the per-tile attribute bitmask.
type TileFlags uint32

const (
	TileWall TileFlags = 1 << iota
	TileDoor
	TileSecret
	TileDress
	TileBlock
	TilePowerup
	TileAmbush
	TileExit
	TileSecretLevel
	TileElevator
	TileTurnEast
	TileTurnNorthEast
	TileTurnNorth
	TileTurnNorthWest
	TileTurnWest
	TileTurnSouthWest
	TileTurnSouth
	TileTurnSouthEast
	TilePushWall
)

// TileSolid is the set of flags that stop movement outright.
const TileSolid = TileWall | TileBlock | TilePushWall

// TileTurnMask covers all eight waypoint flags.
const TileTurnMask = TileTurnEast | TileTurnNorthEast | TileTurnNorth | TileTurnNorthWest |
	TileTurnWest | TileTurnSouthWest | TileTurnSouth | TileTurnSouthEast

// TurnFlag returns the waypoint flag for a Dir8 index (0 = east).
func TurnFlag(dir int) TileFlags {
	return TileTurnEast << uint(dir)
}

// TurnDir returns the Dir8 index of the waypoint on a tile, or -1.
func TurnDir(f TileFlags) int {
	for d := 0; d < 8; d++ {
		if f&TurnFlag(d) != 0 {
			return d
		}
	}
	return -1
}

// Has reports whether any of the given flags are set.
func (f TileFlags) Has(mask TileFlags) bool {
	return f&mask != 0
}

// Special area values.
const (
	AreaWall    = -1
	AreaDoor    = -2
	AreaUnknown = -3

	// NumAreas is the number of distinct floor areas a map may name.
	NumAreas = 37
)

// Wall plane codes.
const (
	CodeEmpty        = 0
	CodeElevatorWall = 0x15
	CodeDoorFirst    = 0x5A
	CodeDoorLast     = 0x5F
	CodeElevDoorA    = 0x64
	CodeElevDoorB    = 0x65
	CodeAmbush       = 0x6A
	CodeAreaFirst    = 0x6B
)

// Object plane codes.
const (
	CodePlayerNorth = 19
	CodePlayerEast  = 20
	CodePlayerSouth = 21
	CodePlayerWest  = 22
	CodeStaticFirst = 23
	CodeStaticLast  = 71
	CodeTurnFirst   = 0x5A
	CodeTurnLast    = 0x61
	CodePushWall    = 98
	CodeExit        = 99
)

// IsDoorCode reports whether a wall plane code places a door.
func IsDoorCode(code uint16) bool {
	return (code >= CodeDoorFirst && code <= CodeDoorLast) || code == CodeElevDoorA || code == CodeElevDoorB
}

// IsAreaCode reports whether a wall plane code names a floor area.
func IsAreaCode(code uint16) bool {
	return code >= CodeAreaFirst && code < CodeAreaFirst+NumAreas
}

// IsWallCode reports whether a wall plane code is a solid wall.
func IsWallCode(code uint16) bool {
	return code != CodeEmpty && code < CodeAmbush && !IsDoorCode(code)
}
