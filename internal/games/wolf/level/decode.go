package level

import (
	"fmt"
	"os"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// MaxDoors is the capacity of the door table.
const MaxDoors = 256

// DoorKind is the lock class of a door.
type DoorKind int

const (
	DoorPlain DoorKind = iota
	DoorGold
	DoorSilver
	DoorElevator
)

func (k DoorKind) String() string {
	switch k {
	case DoorGold:
		return "gold"
	case DoorSilver:
		return "silver"
	case DoorElevator:
		return "elevator"
	default:
		return "plain"
	}
}

// DoorInfo is a door placed by the wall plane.
type DoorInfo struct {
	X, Y     int
	Vertical bool
	Kind     DoorKind
	// Area1 and Area2 are the areas on either side: east and west for a
	// vertical door, north and south for a horizontal one.
	Area1, Area2 int
}

// LevelData is a decoded map ready to be instantiated by the simulation.
// Grids are indexed [x][y] with y growing north.
type LevelData struct {
	Name    string
	Music   string
	Ceiling uint32
	Floor   uint32
	Par     float32
	ParStr  string

	Planes [3][]uint16

	Tiles    [MapSize][MapSize]TileFlags
	WallTexX [MapSize][MapSize]int
	WallTexY [MapSize][MapSize]int
	Areas    [MapSize][MapSize]int

	Doors []DoorInfo
	// DoorIndex maps a tile to its index in Doors, or -1.
	DoorIndex [MapSize][MapSize]int

	Statics []StaticSpawn
	Actors  []ActorSpawn

	SpawnX, SpawnY int
	SpawnAngle     units.Fine
	HasSpawn       bool

	TotalSecrets  int
	TotalTreasure int
}

// DoorAt returns the door on tile (x, y).
func (l *LevelData) DoorAt(x, y int) (DoorInfo, bool) {
	if !units.InMap(x, y) {
		return DoorInfo{}, false
	}
	i := l.DoorIndex[x][y]
	if i < 0 {
		return DoorInfo{}, false
	}
	return l.Doors[i], true
}

// LoadMap reads and decodes the map file at path.
func LoadMap(path string) (*LevelData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	lvl, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("level: decode %s: %w", path, err)
	}
	return lvl, nil
}

// Decode parses a complete map file.
func Decode(data []byte) (*LevelData, error) {
	m, err := Unpack(data)
	if err != nil {
		return nil, err
	}
	return Build(m)
}

// Build classifies every tile of an uncompressed map.
func Build(m *MapFile) (*LevelData, error) {
	for i, p := range m.Planes {
		if len(p) != PlaneWords {
			return nil, fmt.Errorf("level: plane %d has %d words: %w", i, len(p), ErrFormat)
		}
	}

	lvl := &LevelData{
		Name:    m.Name,
		Music:   m.Music,
		Ceiling: m.Ceiling,
		Floor:   m.Floor,
		Par:     m.Par,
		ParStr:  m.ParStr,
	}
	for i := range m.Planes {
		lvl.Planes[i] = append([]uint16(nil), m.Planes[i]...)
	}

	for y0 := 0; y0 < MapSize; y0++ {
		for x := 0; x < MapSize; x++ {
			y := MapSize - 1 - y0
			lvl.DoorIndex[x][y] = -1
			wall := m.Planes[PlaneWalls][y0*MapSize+x]
			obj := m.Planes[PlaneObjects][y0*MapSize+x]

			if err := lvl.classifyWall(x, y, wall); err != nil {
				return nil, err
			}
			lvl.classifyObject(x, y, obj)
		}
	}

	lvl.repairAreas()

	for i := range lvl.Doors {
		d := &lvl.Doors[i]
		if d.Vertical {
			d.Area1 = lvl.areaAt(d.X+1, d.Y)
			d.Area2 = lvl.areaAt(d.X-1, d.Y)
		} else {
			d.Area1 = lvl.areaAt(d.X, d.Y+1)
			d.Area2 = lvl.areaAt(d.X, d.Y-1)
		}
	}
	return lvl, nil
}

func (l *LevelData) classifyWall(x, y int, code uint16) error {
	switch {
	case code == CodeEmpty:
		l.Areas[x][y] = AreaUnknown
	case IsDoorCode(code):
		if len(l.Doors) >= MaxDoors {
			return fmt.Errorf("level: more than %d doors: %w", MaxDoors, ErrFormat)
		}
		d := DoorInfo{X: x, Y: y, Vertical: code%2 == 0}
		switch code {
		case 0x5C, 0x5D:
			d.Kind = DoorGold
		case 0x5E, 0x5F:
			d.Kind = DoorSilver
		case CodeElevDoorA, CodeElevDoorB:
			d.Kind = DoorElevator
		}
		l.DoorIndex[x][y] = len(l.Doors)
		l.Doors = append(l.Doors, d)
		l.Tiles[x][y] |= TileDoor
		l.Areas[x][y] = AreaDoor
	case code == CodeAmbush:
		l.Tiles[x][y] |= TileAmbush
		l.Areas[x][y] = AreaUnknown
	case code >= CodeAreaFirst:
		if !IsAreaCode(code) {
			l.Areas[x][y] = AreaUnknown
			return nil
		}
		l.Areas[x][y] = int(code - CodeAreaFirst)
		if code == CodeAreaFirst {
			l.Tiles[x][y] |= TileSecretLevel
		}
	default:
		l.Tiles[x][y] |= TileWall
		l.Areas[x][y] = AreaWall
		l.WallTexX[x][y] = int(code-1)*2 + 1
		l.WallTexY[x][y] = int(code-1) * 2
		if code == CodeElevatorWall {
			l.Tiles[x][y] |= TileElevator
		}
	}
	return nil
}

func (l *LevelData) classifyObject(x, y int, code uint16) {
	if code == 0 {
		return
	}
	switch {
	case code >= CodePlayerNorth && code <= CodePlayerWest:
		l.SpawnX, l.SpawnY = x, y
		l.HasSpawn = true
		l.SpawnAngle = [4]units.Fine{units.Ang90, units.Ang0, units.Ang270, units.Ang180}[code-CodePlayerNorth]
	case code >= CodeStaticFirst && code <= CodeStaticLast:
		info, _ := StaticForCode(code)
		l.Statics = append(l.Statics, StaticSpawn{X: x, Y: y, Info: info})
		switch {
		case info.Kind == StaticBlock:
			l.Tiles[x][y] |= TileBlock
		case info.Kind == StaticDress:
			l.Tiles[x][y] |= TileDress
		default:
			l.Tiles[x][y] |= TilePowerup
		}
		if info.Kind.IsTreasure() {
			l.TotalTreasure++
		}
	case code >= CodeTurnFirst && code <= CodeTurnLast:
		l.Tiles[x][y] |= TurnFlag(int(code - CodeTurnFirst))
	case code == CodePushWall:
		l.Tiles[x][y] |= TileSecret
		l.TotalSecrets++
	case code == CodeExit:
		l.Tiles[x][y] |= TileExit
	default:
		if s, ok := actorForCode(code, x, y); ok {
			l.Actors = append(l.Actors, s)
		}
	}
}

// repairAreas makes a single pass over the grid giving each unresolved
// floor tile the area of its first resolved neighbor, checked -x, +x, -y, +y.
// Tiles with no resolved neighbor stay unknown.
func (l *LevelData) repairAreas() {
	for x := 0; x < MapSize; x++ {
		for y := 0; y < MapSize; y++ {
			if l.Areas[x][y] != AreaUnknown {
				continue
			}
			switch {
			case x > 0 && l.Areas[x-1][y] >= 0:
				l.Areas[x][y] = l.Areas[x-1][y]
			case x < MapSize-1 && l.Areas[x+1][y] >= 0:
				l.Areas[x][y] = l.Areas[x+1][y]
			case y > 0 && l.Areas[x][y-1] >= 0:
				l.Areas[x][y] = l.Areas[x][y-1]
			case y < MapSize-1 && l.Areas[x][y+1] >= 0:
				l.Areas[x][y] = l.Areas[x][y+1]
			}
		}
	}
}

func (l *LevelData) areaAt(x, y int) int {
	if !units.InMap(x, y) {
		return AreaUnknown
	}
	return l.Areas[x][y]
}

// SpawnArea returns the area of the player start tile.
func (l *LevelData) SpawnArea() int {
	return l.areaAt(l.SpawnX, l.SpawnY)
}

// MapFile rebuilds the uncompressed map the level was decoded from.
func (l *LevelData) MapFile() *MapFile {
	m := &MapFile{
		Name:    l.Name,
		Music:   l.Music,
		Ceiling: l.Ceiling,
		Floor:   l.Floor,
		Par:     l.Par,
		ParStr:  l.ParStr,
		RLETag:  DefaultRLETag,
	}
	for i := range l.Planes {
		m.Planes[i] = append([]uint16(nil), l.Planes[i]...)
	}
	return m
}
