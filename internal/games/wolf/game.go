// Package wolf adapts the simulation to the platform: it maps terminal
// actions onto player commands, walks the episode from level to level and
// draws a top-down automap.
package wolf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-wolf/internal/config"
	"github.com/vovakirdan/tui-wolf/internal/core"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/sim"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
	"github.com/vovakirdan/tui-wolf/internal/metrics"
	"github.com/vovakirdan/tui-wolf/internal/registry"
)

// Intermission bonuses awarded when a level is completed.
const (
	parBonusPerSecond = 500
	ratioBonus        = 10000
)

// messageTTL is how long a status message stays on the HUD, in frames.
const messageTTL = 70

// Settings is the configuration shared by every new game.
type Settings struct {
	Config config.Config
	Logger *log.Logger
}

var (
	settingsMu sync.RWMutex
	settings   = Settings{Config: config.DefaultConfig()}
)

// Configure sets the configuration used by games created afterwards.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = s
}

func currentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	s := settings
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	return s
}

// Game plays an episode of levels.
type Game struct {
	demo     bool
	settings Settings
	log      *log.Logger

	episode *Episode
	index   int
	from    int // level whose secret elevator led to the secret slot
	world   *sim.World
	input   *controls
	gauge   metrics.WorldGauge

	seed    int64
	skill   int
	frameMs int
	frame   uint64

	screenW int
	screenH int
	zoom    int

	paused   bool
	gameOver bool
	won      bool
	failure  string

	message       string
	messageFrames int

	reports []core.LevelReport
}

// New creates a game playing the configured episode.
func New() *Game {
	return &Game{}
}

// NewDemo creates a game playing only the built-in level.
func NewDemo() *Game {
	return &Game{demo: true}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:      "wolf",
		Summary: "The configured episode, level by level",
	}, func() registry.Game {
		return New()
	})
	registry.Register(registry.GameInfo{
		ID:      "wolf_demo",
		Summary: "The built-in demo level",
	}, func() registry.Game {
		return NewDemo()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.demo {
		return "wolf_demo"
	}
	return "wolf"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.demo {
		return "Wolf (demo level)"
	}
	return "Wolf"
}

// Reset starts a new run from the first level of the episode.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.settings = currentSettings()
	g.log = g.settings.Logger
	g.gauge.Release()

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = g.settings.Config.Engine.TickRate
	}
	g.frameMs = 1000 / max(tickRate, 1)
	g.seed = cfg.Seed
	g.skill = cfg.Skill
	if g.skill < 0 || g.skill > 3 {
		g.skill = g.settings.Config.Skill.Index()
	}
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.input = newControls(g.settings.Config.Player)
	g.frame = 0
	g.zoom = 1
	g.paused, g.gameOver, g.won = false, false, false
	g.failure = ""
	g.message, g.messageFrames = "", 0
	g.reports = nil
	g.from = -1
	g.world = nil

	g.episode = &Episode{}
	var epErr error
	if !g.demo {
		ep, err := LoadEpisode(g.settings.Config.Maps)
		if err != nil {
			g.log.Warn("cannot load episode, playing the demo level", "err", err)
			epErr = err
		} else {
			g.episode = ep
		}
	}
	if err := g.enterLevel(g.episode.Start, nil); err != nil {
		g.fail(err)
		return
	}
	if epErr != nil {
		g.say("Maps unavailable, playing the demo level")
	}
}

// enterLevel builds the world for episode level i.
func (g *Game) enterLevel(i int, carry *sim.Player) error {
	lvl, err := g.episode.Level(i)
	if err != nil {
		return err
	}
	pc := g.settings.Config.Player
	opts := sim.DefaultOptions()
	opts.Skill = g.skill
	opts.Seed = g.seed + int64(i)
	opts.GodMode = pc.GodMode
	opts.StartLives = pc.StartLives
	opts.StartAmmo = pc.StartAmmo
	opts.ExtraLifePoints = pc.ExtraLifePoints
	opts.MaxFrameMs = g.settings.Config.Engine.MaxFrameMs
	opts.Logger = g.log

	w, err := sim.NewWorld(lvl, opts, carry)
	if err != nil {
		return err
	}
	g.world = w
	g.index = i
	g.input.reset()
	g.updateGauge()
	if lvl.ParStr != "" {
		g.say(fmt.Sprintf("%s  par %s", lvl.Name, lvl.ParStr))
	} else {
		g.say(lvl.Name)
	}
	return nil
}

func (g *Game) fail(err error) {
	g.log.Error("cannot start level", "err", err)
	g.failure = err.Error()
	g.gameOver = true
	g.world = nil
	g.gauge.Release()
}

// Step advances the game by one frame.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.frame++
	if g.messageFrames > 0 {
		if g.messageFrames--; g.messageFrames == 0 {
			g.message = ""
		}
	}

	if input.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: 1000 / g.frameMs,
			Seed:     g.seed + 1,
			Skill:    g.skill,
		})
		return core.StepResult{State: g.State()}
	}
	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if input.Has(core.ActionZoomIn) {
		g.zoom = min(g.zoom+1, maxZoom)
	}
	if input.Has(core.ActionZoomOut) {
		g.zoom = max(g.zoom-1, minZoom)
	}
	if g.gameOver || g.paused || g.world == nil {
		return core.StepResult{State: g.State()}
	}

	cmd := g.input.command(input, g.frameMs)
	start := time.Now()
	res := g.world.Tick(g.frameMs, cmd)
	metrics.RecordTick(time.Since(start), res.Tics)

	for _, ev := range g.world.DrainEvents() {
		g.handleEvent(ev)
	}
	g.updateGauge()

	if res.PlayState.Finished() {
		g.finishLevel(res.PlayState)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) handleEvent(ev sim.Event) {
	switch ev.Kind {
	case sim.EventDoorLocked, sim.EventPushWall, sim.EventExtraLife:
		g.say(ev.Text)
	case sim.EventPickup:
		g.say("Picked up " + ev.Text)
	case sim.EventNoWay:
		g.say("No way")
	case sim.EventLevelDone:
		g.say("Level complete")
	}
}

// finishLevel moves the run on once the level has ended.
func (g *Game) finishLevel(st sim.PlayState) {
	switch st {
	case sim.PlayDead:
		g.record(false)
		metrics.RecordLevelFinished("dead")
		if g.world.Reborn() {
			g.input.reset()
			g.say(fmt.Sprintf("You died. %d lives left", g.world.Player.Lives))
			return
		}
		g.gameOver = true
		g.gauge.Release()

	case sim.PlayVictory:
		g.record(true)
		metrics.RecordLevelFinished("victory")
		g.gameOver, g.won = true, true
		g.gauge.Release()

	case sim.PlayComplete, sim.PlaySecretLevel:
		secret := st == sim.PlaySecretLevel
		report := g.record(true)
		g.world.Player.GivePoints(levelBonus(report))
		if secret {
			metrics.RecordLevelFinished("secret")
		} else {
			metrics.RecordLevelFinished("complete")
		}

		next, ok := g.episode.Next(g.index, g.from, secret)
		if !ok {
			g.gameOver, g.won = true, true
			g.gauge.Release()
			return
		}
		if secret && next == secretIndex {
			g.from = g.index
		} else if g.index == secretIndex {
			g.from = -1
		}
		carry := g.world.Player
		if err := g.enterLevel(next, &carry); err != nil {
			g.fail(err)
		}
	}
}

// record queues the report of the current level.
func (g *Game) record(completed bool) core.LevelReport {
	r := levelReport(g.world, completed)
	g.reports = append(g.reports, r)
	g.log.Info("level finished",
		"map", r.Map,
		"completed", completed,
		"kills", fmt.Sprintf("%d%%", core.Ratio(r.Kills, r.TotalKills)),
		"seconds", r.Seconds)
	return r
}

func levelReport(w *sim.World, completed bool) core.LevelReport {
	st := w.State
	tics := st.EndTime
	if tics == 0 {
		tics = st.Time
	}
	return core.LevelReport{
		Map:           w.Level.Name,
		Completed:     completed,
		Kills:         st.Kills,
		TotalKills:    st.TotalKills,
		Secrets:       st.Secrets,
		TotalSecrets:  st.TotalSecrets,
		Treasure:      st.Treasure,
		TotalTreasure: st.TotalTreasure,
		Seconds:       float64(tics) / units.TicRate,
		ParSeconds:    float64(w.Level.Par) * 60,
		Score:         w.Player.Score,
	}
}

// levelBonus is the score awarded between levels: points for every second
// under par and a flat bonus for each perfect ratio.
func levelBonus(r core.LevelReport) int {
	if !r.Completed {
		return 0
	}
	bonus := 0
	if left := int(r.ParSeconds) - int(r.Seconds); left > 0 {
		bonus += left * parBonusPerSecond
	}
	for _, pair := range [][2]int{
		{r.Kills, r.TotalKills},
		{r.Secrets, r.TotalSecrets},
		{r.Treasure, r.TotalTreasure},
	} {
		if pair[1] > 0 && pair[0] >= pair[1] {
			bonus += ratioBonus
		}
	}
	return bonus
}

func (g *Game) updateGauge() {
	if g.world == nil {
		return
	}
	live := 0
	for _, a := range g.world.Actors() {
		if a.Alive() {
			live++
		}
	}
	g.gauge.Update(live, g.world.OpenDoors())
}

func (g *Game) say(msg string) {
	g.message = msg
	g.messageFrames = messageTTL
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.gameOver,
		Paused:   g.paused,
		Won:      g.won,
		Message:  g.message,
	}
	if g.world != nil {
		st.Score = g.world.Player.Score
		st.Level = g.world.Level.Name
	}
	return st
}

// SaveState serialises the running level.
func (g *Game) SaveState() ([]byte, error) {
	if g.world == nil || g.gameOver {
		return nil, errors.New("wolf: no level in progress")
	}
	data, err := sim.SaveBytes(g.world)
	metrics.RecordSave("save", err)
	if err != nil {
		return nil, err
	}
	g.say("Game saved")
	return data, nil
}

// LoadState replaces the running level with a saved one.
func (g *Game) LoadState(data []byte) error {
	w, err := sim.Load(bytes.NewReader(data), g.log)
	metrics.RecordSave("load", err)
	if err != nil {
		return err
	}
	g.world = w
	if i := g.episode.Find(w.Level.Name); i >= 0 {
		g.index = i
	}
	g.input.reset()
	g.paused, g.gameOver, g.won = false, false, false
	g.failure = ""
	g.updateGauge()
	g.say("Game loaded")
	return nil
}

// DrainReports returns and clears the reports of levels finished since the
// last call.
func (g *Game) DrainReports() []core.LevelReport {
	out := g.reports
	g.reports = nil
	return out
}

// Close withdraws the game's contribution to the shared gauges.
func (g *Game) Close() {
	g.gauge.Release()
}

// World exposes the running level, nil after a failed start.
func (g *Game) World() *sim.World {
	return g.world
}
