// Package registry keeps the games the platform can run. Games register in
// init() so the CLI, the menu and the SSH server find them without
// importing each game's constructor.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-wolf/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the interface every playable game implements.
// Games contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "wolf").
	// Scores and save slots are stored under it.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new run. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one platform frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst, which is pre-cleared.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Persistable is implemented by games whose running state fits in a save slot.
type Persistable interface {
	SaveState() ([]byte, error)
	LoadState(data []byte) error
}

// Reporter is implemented by games that finish levels. The platform drains
// the reports after each step and records them.
type Reporter interface {
	DrainReports() []core.LevelReport
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID      string
	Title   string
	Summary string // One line shown under the title in menus
	Saves   bool   // Whether the game implements Persistable
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries []entry // In registration order
	byID    = make(map[string]int)
)

// Register adds a game. Title and Saves are filled from a probe instance
// when left empty. Panics on a duplicate ID.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := byID[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}

	probe := f()
	if info.Title == "" {
		info.Title = probe.Title()
	}
	if _, ok := probe.(Persistable); ok {
		info.Saves = true
	}

	byID[info.ID] = len(entries)
	entries = append(entries, entry{info: info, factory: f})
}

// List returns all registered games in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, len(entries))
	for i, e := range entries {
		result[i] = e.info
	}
	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	i, ok := byID[id]
	if !ok {
		return GameInfo{}, false
	}
	return entries[i].info, true
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	i, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return entries[i].factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := byID[id]
	return ok
}
