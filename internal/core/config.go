package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
// Skill is the difficulty index, 0 (easiest) to 3.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
	Skill    int   // Difficulty index
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Skill:    2,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Won      bool // Whether the game ended in victory
	Level    string
	Message  string // Transient status line, e.g. "Saved"
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState
}

// LevelReport summarises a finished level for the statistics table.
type LevelReport struct {
	Map           string
	Completed     bool // false when the player died on the level
	Kills         int
	TotalKills    int
	Secrets       int
	TotalSecrets  int
	Treasure      int
	TotalTreasure int
	Seconds       float64
	ParSeconds    float64
	Score         int
}

// Ratio returns n out of total as a percentage, 0 when total is 0.
func Ratio(n, total int) int {
	if total <= 0 {
		return 0
	}
	return n * 100 / total
}
