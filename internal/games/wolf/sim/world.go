// Package sim runs the simulation of a decoded level: doors, push-walls, the
// area graph, actor state machines, the player controller and the gameplay
// line-of-sight trace. A World is single threaded; every mutation happens
// inside Tick.
package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

const (
	MapSize    = units.MapSize
	MaxActors  = 150
	MaxStatics = 400
)

// Distances in world units.
const (
	MinDist        = 0x5800
	PlayerSize     = MinDist
	CloseWall      = MinDist
	MinActorDist   = 0x10000
	MinSight       = 0x18000
	ProjectileSize = 0xC000
	ProjSize       = 0x2000
)

// ErrNoSpawn is returned when a level has no player start.
var ErrNoSpawn = errors.New("sim: level has no player start")

// Options configures a new World.
type Options struct {
	Skill           int
	Seed            int64
	GodMode         bool
	MaxFrameMs      int
	ExtraLifePoints int
	StartLives      int
	StartAmmo       int
	Logger          *log.Logger
	Strict          bool
}

// DefaultOptions returns the standard rules at medium skill.
func DefaultOptions() Options {
	return Options{
		Skill:           level.SkillMedium,
		Seed:            1,
		MaxFrameMs:      100,
		ExtraLifePoints: 40000,
		StartLives:      3,
		StartAmmo:       8,
	}
}

// LevelState holds the per-level counters used for ratios and timing.
type LevelState struct {
	Time          int // tics since level start
	Kills         int
	TotalKills    int
	Secrets       int
	TotalSecrets  int
	Treasure      int
	TotalTreasure int
	Victory       bool // exit sequence running, enemies stand down
	EndTime       int  // Time at which the level ended, 0 while running
	KillX, KillY  units.Pos
}

// Event is a gameplay notification for the presentation layer.
type Event struct {
	Kind EventKind
	Text string
}

// EventKind classifies an Event.
type EventKind int

const (
	EventHalt EventKind = iota
	EventDeathScream
	EventDoorOpen
	EventDoorLocked
	EventPushWall
	EventPickup
	EventNoWay
	EventPlayerHurt
	EventGunshot
	EventExtraLife
	EventLevelDone
)

const maxEvents = 32

// World is one independent running level.
type World struct {
	Level *level.LevelData

	Tiles    [MapSize][MapSize]level.TileFlags
	WallTexX [MapSize][MapSize]int
	WallTexY [MapSize][MapSize]int
	Areas    [MapSize][MapSize]int

	Doors     []Door
	DoorIndex [MapSize][MapSize]int
	PWall     PushWall
	Graph     AreaGraph

	actors     [MaxActors]Actor
	numActors  int
	statics    [MaxStatics]Static
	numStatics int
	nextID     int

	Player Player
	State  LevelState

	// Strict turns invariant violations into panics.
	Strict bool

	rng       *Random
	madeNoise bool
	tics      int
	clock     units.TicClock
	opts      Options
	log       *log.Logger
	events    []Event
	deathCam  deathCam
}

// NewWorld instantiates lvl. When carry is non-nil the player keeps its
// score, lives, weapons and ammo from the previous level.
func NewWorld(lvl *level.LevelData, opts Options, carry *Player) (*World, error) {
	if lvl == nil {
		return nil, errors.New("sim: nil level")
	}
	if !lvl.HasSpawn {
		return nil, fmt.Errorf("sim: %s: %w", lvl.Name, ErrNoSpawn)
	}
	if opts.MaxFrameMs <= 0 {
		opts.MaxFrameMs = DefaultOptions().MaxFrameMs
	}
	if opts.ExtraLifePoints <= 0 {
		opts.ExtraLifePoints = DefaultOptions().ExtraLifePoints
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	w := &World{
		Level:  lvl,
		Strict: opts.Strict,
		rng:    NewRandom(opts.Seed),
		opts:   opts,
		log:    opts.Logger,
	}
	w.Graph.Strict = opts.Strict

	if carry != nil {
		w.Player = *carry
		w.Player.resetForLevel()
	} else {
		w.Player = newPlayer(opts)
	}
	w.setupLevel()

	w.log.Info("level loaded",
		"name", lvl.Name,
		"doors", len(w.Doors),
		"actors", w.numActors,
		"statics", w.numStatics,
		"skill", opts.Skill)
	return w, nil
}

// setupLevel copies the level grids and spawns everything on them.
func (w *World) setupLevel() {
	lvl := w.Level
	w.Tiles = lvl.Tiles
	w.WallTexX = lvl.WallTexX
	w.WallTexY = lvl.WallTexY
	w.Areas = lvl.Areas
	w.DoorIndex = lvl.DoorIndex

	w.Doors = make([]Door, len(lvl.Doors))
	for i, d := range lvl.Doors {
		w.Doors[i] = Door{
			X: d.X, Y: d.Y,
			Vertical: d.Vertical,
			Kind:     d.Kind,
			Area1:    d.Area1,
			Area2:    d.Area2,
			Action:   DoorClosed,
		}
	}

	w.PWall = PushWall{}
	w.numActors = 0
	w.numStatics = 0
	w.nextID = 0
	w.events = nil
	w.deathCam = deathCam{}
	w.clock.Reset()

	w.State = LevelState{
		TotalSecrets:  lvl.TotalSecrets,
		TotalTreasure: lvl.TotalTreasure,
	}

	for _, s := range lvl.Statics {
		if _, ok := w.spawnStatic(s.X, s.Y, s.Info); !ok {
			break
		}
	}

	p := &w.Player
	p.X = units.Tile2Pos(lvl.SpawnX)
	p.Y = units.Tile2Pos(lvl.SpawnY)
	p.TileX, p.TileY = lvl.SpawnX, lvl.SpawnY
	p.Angle = units.Fine2Rad(lvl.SpawnAngle)
	p.Area = w.Areas[lvl.SpawnX][lvl.SpawnY]
	p.PlayState = PlayPlaying

	w.Graph.Init(p.Area)
	w.Graph.Connect(p.Area)

	for _, s := range lvl.Actors {
		if s.MinSkill > w.opts.Skill {
			continue
		}
		w.spawnFromMap(s)
	}
}

// Skill returns the difficulty the world was created with.
func (w *World) Skill() int {
	return w.opts.Skill
}

// Actors returns the live actor array. The slice aliases world storage and
// is only valid until the next Tick.
func (w *World) Actors() []Actor {
	return w.actors[:w.numActors]
}

// ActorByID finds a live actor by its stable identifier.
func (w *World) ActorByID(id int) *Actor {
	if id == 0 {
		return nil
	}
	for i := range w.numActors {
		if w.actors[i].ID == id {
			return &w.actors[i]
		}
	}
	return nil
}

// Statics returns the static object array.
func (w *World) Statics() []Static {
	return w.statics[:w.numStatics]
}

// MadeNoise reports whether the player made noise during the last step.
func (w *World) MadeNoise() bool {
	return w.madeNoise
}

// RandomDraws returns how many random values the world has consumed.
func (w *World) RandomDraws() uint64 {
	return w.rng.draws
}

// DrainEvents returns and clears pending events.
func (w *World) DrainEvents() []Event {
	ev := w.events
	w.events = nil
	return ev
}

func (w *World) emit(kind EventKind, text string) {
	if len(w.events) >= maxEvents {
		w.events = w.events[1:]
	}
	w.events = append(w.events, Event{Kind: kind, Text: text})
}

func (w *World) rnd() int {
	return w.rng.RndT()
}

// tileAt returns the flags of (x, y), treating everything off the map as wall.
func (w *World) tileAt(x, y int) level.TileFlags {
	if !units.InMap(x, y) {
		return level.TileWall
	}
	return w.Tiles[x][y]
}

func (w *World) areaAt(x, y int) int {
	if !units.InMap(x, y) {
		return level.AreaWall
	}
	return w.Areas[x][y]
}

func (w *World) assertf(format string, args ...any) {
	if w.Strict {
		panic(fmt.Sprintf("sim: "+format, args...))
	}
	w.log.Debug(fmt.Sprintf(format, args...))
}
