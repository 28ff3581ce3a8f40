package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/wolf.yaml
var defaultWolfYAML []byte

// DefaultConfig returns the built-in configuration. It matches the embedded
// defaults/wolf.yaml.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			TickRate:   35,
			MaxFrameMs: 100,
		},
		Player: PlayerConfig{
			StartLives:      3,
			StartAmmo:       8,
			ExtraLifePoints: 40000,
			WalkSpeed:       5250,
			RunSpeed:        10500,
			TurnSpeed:       17,
			RunTurnSpeed:    35,
			HoldMs:          160,
		},
		Skill: SkillMedium,
		Maps: MapsConfig{
			Dir:   "maps",
			Order: []string{},
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			DBPath: "~/.wolf/wolf.db",
		},
		Server: ServerConfig{
			Address:           ":23235",
			IdleTimeout:       30 * time.Minute,
			MetricsAddress:    ":9323",
			SessionsPerMinute: 12,
			SessionBurst:      4,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWolfYAML
}
