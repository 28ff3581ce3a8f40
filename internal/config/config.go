// Package config provides YAML-based engine configuration loading and skill
// presets for the wolf engine.
package config

import "time"

// Config is the complete engine configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Player  PlayerConfig  `yaml:"player"`
	Skill   SkillPreset   `yaml:"skill"`
	Maps    MapsConfig    `yaml:"maps"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// EngineConfig controls how the platform drives the simulation.
type EngineConfig struct {
	TickRate   int   `yaml:"tick_rate"`    // Frames per second of the terminal loop
	MaxFrameMs int   `yaml:"max_frame_ms"` // Longest wall-clock step fed to one tick
	Seed       int64 `yaml:"seed"`         // 0 picks a seed from the clock
}

// PlayerConfig holds the starting loadout and the control speeds.
type PlayerConfig struct {
	GodMode         bool `yaml:"god_mode"`
	StartLives      int  `yaml:"start_lives"`
	StartAmmo       int  `yaml:"start_ammo"`
	ExtraLifePoints int  `yaml:"extra_life_points"`

	// Speeds are in world units (forward, strafe) or tenths of a degree
	// (turn) per tic.
	WalkSpeed    int `yaml:"walk_speed"`
	RunSpeed     int `yaml:"run_speed"`
	TurnSpeed    int `yaml:"turn_speed"`
	RunTurnSpeed int `yaml:"run_turn_speed"`

	// HoldMs keeps a movement key active after its last press. Terminals
	// report key repeats, not releases.
	HoldMs int `yaml:"hold_ms"`
}

// MapsConfig locates the map files.
type MapsConfig struct {
	Dir   string   `yaml:"dir"`   // Directory scanned for *.map files
	Start string   `yaml:"start"` // First map; empty starts the built-in demo
	Order []string `yaml:"order"` // Episode order; empty sorts the directory
}

// LogConfig configures the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// StorageConfig locates the sqlite database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig configures the SSH server and the metrics endpoint.
type ServerConfig struct {
	Address           string        `yaml:"address"`
	HostKeyPath       string        `yaml:"host_key_path"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	MetricsAddress    string        `yaml:"metrics_address"` // Empty disables /metrics
	SessionsPerMinute float64       `yaml:"sessions_per_minute"`
	SessionBurst      int           `yaml:"session_burst"`
}
