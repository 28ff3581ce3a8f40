package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchDefaultConfig(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultConfig())
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse([]byte("skill: hard\nplayer:\n  god_mode: true\nserver:\n  idle_timeout: 90s\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Skill != SkillHard || !cfg.Player.GodMode {
		t.Errorf("overrides not applied: skill %q god %v", cfg.Skill, cfg.Player.GodMode)
	}
	if cfg.Player.StartLives != 3 || cfg.Engine.TickRate != 35 {
		t.Errorf("defaults lost: lives %d tick rate %d", cfg.Player.StartLives, cfg.Engine.TickRate)
	}
	if cfg.Server.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v, expected 90s", cfg.Server.IdleTimeout)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"tick rate", "engine:\n  tick_rate: 0\n", "tick_rate"},
		{"skill", "skill: nightmare\n", "unknown skill"},
		{"log level", "log:\n  level: loud\n", "log.level"},
		{"negative lives", "player:\n  start_lives: -1\n", "must not be negative"},
		{"syntax", "engine: [\n", "yaml"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Parse() error = %v, expected it to mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Skill != SkillMedium {
		t.Errorf("embedded Skill = %q, expected medium", cfg.Skill)
	}

	writeConfig(t, filepath.Join(work, "configs", ConfigFile), "skill: easy\n")
	if cfg, _ = Load(""); cfg.Skill != SkillEasy {
		t.Errorf("local Skill = %q, expected easy", cfg.Skill)
	}

	writeConfig(t, filepath.Join(home, ".wolf", "configs", ConfigFile), "skill: hard\n")
	if cfg, _ = Load(""); cfg.Skill != SkillHard {
		t.Errorf("user Skill = %q, expected hard", cfg.Skill)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeConfig(t, custom, "skill: baby\n")
	if cfg, _ = Load(custom); cfg.Skill != SkillBaby {
		t.Errorf("custom Skill = %q, expected baby", cfg.Skill)
	}

	if _, err := Load(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("Load(missing custom path) should fail")
	}
}

func TestParseSkill(t *testing.T) {
	tests := []struct {
		in       string
		expected SkillPreset
		index    int
	}{
		{"baby", SkillBaby, 0},
		{"1", SkillEasy, 1},
		{"Normal", SkillMedium, 2},
		{" hard ", SkillHard, 3},
		{"", SkillMedium, 2},
	}
	for _, tc := range tests {
		got, err := ParseSkill(tc.in)
		if err != nil {
			t.Errorf("ParseSkill(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.expected || got.Index() != tc.index {
			t.Errorf("ParseSkill(%q) = %q (%d), expected %q (%d)", tc.in, got, got.Index(), tc.expected, tc.index)
		}
	}
	if _, err := ParseSkill("4"); err == nil {
		t.Error("ParseSkill(4) should fail")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := ExpandHome("~/.wolf/wolf.db")
	if err != nil {
		t.Fatalf("ExpandHome() error = %v", err)
	}
	if got != filepath.Join(home, ".wolf", "wolf.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome(absolute) = %q", got)
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
