package wolf

import "github.com/vovakirdan/tui-wolf/internal/games/wolf/units"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
	StateWin      GameStateType = "win"
	StateFailed   GameStateType = "failed"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Frame       uint64
	Level       string
	LevelIndex  int
	Tics        int
	PlayerX     units.Pos
	PlayerY     units.Pos
	Angle       units.Fine
	Health      int
	Ammo        int
	Lives       int
	Score       int
	Kills       int
	Secrets     int
	Treasure    int
	LiveActors  int
	OpenDoors   int
	RandomDraws uint64
	State       GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{Frame: g.frame, LevelIndex: g.index}
	switch {
	case g.world == nil:
		s.State = StateFailed
		return s
	case g.won:
		s.State = StateWin
	case g.gameOver:
		s.State = StateGameOver
	case g.paused:
		s.State = StatePaused
	default:
		s.State = StatePlaying
	}

	w := g.world
	p := &w.Player
	s.Level = w.Level.Name
	s.Tics = w.State.Time
	s.PlayerX, s.PlayerY = p.X, p.Y
	s.Angle = units.Rad2Fine(p.Angle)
	s.Health, s.Ammo, s.Lives, s.Score = p.Health, p.Ammo, p.Lives, p.Score
	s.Kills, s.Secrets, s.Treasure = w.State.Kills, w.State.Secrets, w.State.Treasure
	for _, a := range w.Actors() {
		if a.Alive() {
			s.LiveActors++
		}
	}
	s.OpenDoors = w.OpenDoors()
	s.RandomDraws = w.RandomDraws()
	return s
}
