package wolf

import (
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// DemoName is the map name of the built-in level.
const DemoName = "Demo: Cellblock"

// demoLayout is drawn north up. Blank cells are solid wall.
//
//	#  wall     E  elevator switch     P  secret push wall
//	|  door in a north-south wall      -  door in an east-west wall
//	=  gold door                       :  elevator door
//	.  floor           >  player start, facing east
//	c  clip   f  food   h  first aid   k  gold key   n  machine gun
//	t  cross  u  chalice  w  crown     l  floor lamp
//	g  guard  o  officer  s  SS  (standing)   p  guard  d  dog  (patrolling)
var demoLayout = []string{
	"##################################",
	"#........#.......................#",
	"#.>...c..|...g.......o.........k.#",
	"#........#...........t...........#",
	"#.f..l...#....p..................#",
	"#........#........g..............#",
	"##########.......................#",
	"         #########=###############",
	"         #...........s...........#####",
	"         #..d..........h.........P...#",
	"         #.......n...............#.uw#",
	"         #...u...................#####",
	"         ###########:#############",
	"                   #...E",
	"                   #####",
}

// Layout origin in map tiles: the first row sits at demoTop, the first
// column at demoLeft.
const (
	demoLeft = 12
	demoTop  = 44
)

const (
	codeWall       = 1
	codePlainDoorV = 0x5A
	codePlainDoorH = 0x5B
	codeGoldDoorH  = 0x5D
)

var demoStatics = map[rune]uint16{
	'c': 49, 'f': 47, 'h': 48, 'k': 43, 'n': 50,
	't': 52, 'u': 53, 'w': 55, 'l': 26,
}

type demoSpawn struct {
	t    level.ActorType
	mode level.SpawnMode
	dir  units.Dir4
}

var demoActors = map[rune]demoSpawn{
	'g': {level.ActorGuard, level.SpawnStand, units.Dir4West},
	'o': {level.ActorOfficer, level.SpawnStand, units.Dir4West},
	's': {level.ActorSS, level.SpawnStand, units.Dir4North},
	'p': {level.ActorGuard, level.SpawnPatrol, units.Dir4East},
	'd': {level.ActorDog, level.SpawnPatrol, units.Dir4East},
}

// DemoMap builds the built-in level used when no map directory is
// configured. Floor areas are numbered from 1 in reading order of the
// rooms the doors separate.
func DemoMap() *level.MapFile {
	m := level.NewMapFile(DemoName)
	m.Music = "GETTHEM"
	m.Par = 1.5
	m.ParStr = "01:30"
	m.Fill(level.PlaneWalls, 0, 0, level.MapSize-1, level.MapSize-1, codeWall)

	floor := make(map[[2]int]bool)
	for r, row := range demoLayout {
		for c, ch := range row {
			x, y := demoLeft+c, demoTop-r
			switch ch {
			case ' ', '#':
				continue
			case 'E':
				m.Set(level.PlaneWalls, x, y, level.CodeElevatorWall)
			case 'P':
				m.Set(level.PlaneObjects, x, y, level.CodePushWall)
			case '|':
				m.Set(level.PlaneWalls, x, y, codePlainDoorV)
			case '-':
				m.Set(level.PlaneWalls, x, y, codePlainDoorH)
			case '=':
				m.Set(level.PlaneWalls, x, y, codeGoldDoorH)
			case ':':
				m.Set(level.PlaneWalls, x, y, level.CodeElevDoorB)
			default:
				floor[[2]int{x, y}] = true
				placeDemoObject(m, x, y, ch)
			}
		}
	}

	area := uint16(1)
	for r, row := range demoLayout {
		for c := range row {
			p := [2]int{demoLeft + c, demoTop - r}
			if !floor[p] {
				continue
			}
			if fillArea(m, floor, p, level.CodeAreaFirst+area) {
				area++
			}
		}
	}
	return m
}

func placeDemoObject(m *level.MapFile, x, y int, ch rune) {
	if ch == '>' {
		m.Set(level.PlaneObjects, x, y, level.CodePlayerEast)
		return
	}
	if code, ok := demoStatics[ch]; ok {
		m.Set(level.PlaneObjects, x, y, code)
		return
	}
	if s, ok := demoActors[ch]; ok {
		if code, ok := level.SpawnCode(s.t, s.mode, s.dir, level.SkillBaby); ok {
			m.Set(level.PlaneObjects, x, y, code)
		}
	}
}

// fillArea floods the floor region containing start with code. It returns
// false when start already belongs to a region.
func fillArea(m *level.MapFile, floor map[[2]int]bool, start [2]int, code uint16) bool {
	if m.At(level.PlaneWalls, start[0], start[1]) != codeWall {
		return false
	}
	stack := [][2]int{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !floor[p] || m.At(level.PlaneWalls, p[0], p[1]) != codeWall {
			continue
		}
		m.Set(level.PlaneWalls, p[0], p[1], code)
		for d := range 4 {
			stack = append(stack, [2]int{p[0] + units.DX4[d], p[1] + units.DY4[d]})
		}
	}
	return true
}

// DemoLevel encodes and decodes the demo map, so it goes through the same
// path as a map read from disk.
func DemoLevel() (*level.LevelData, error) {
	return level.Decode(level.Encode(DemoMap()))
}
