package config

import (
	"fmt"
	"strings"
)

// SkillPreset is a named difficulty level.
type SkillPreset string

const (
	SkillBaby   SkillPreset = "baby"
	SkillEasy   SkillPreset = "easy"
	SkillMedium SkillPreset = "medium"
	SkillHard   SkillPreset = "hard"
)

// SkillPresets lists the presets from easiest to hardest.
var SkillPresets = []SkillPreset{SkillBaby, SkillEasy, SkillMedium, SkillHard}

// ParseSkill accepts a preset name or its index ("0".."3").
func ParseSkill(s string) (SkillPreset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, p := range SkillPresets {
		if s == string(p) || s == fmt.Sprint(i) {
			return p, nil
		}
	}
	switch s {
	case "normal":
		return SkillMedium, nil
	case "":
		return SkillMedium, nil
	}
	return "", fmt.Errorf("config: unknown skill %q (want baby, easy, medium or hard)", s)
}

// Index returns the difficulty index used by the simulation. Unknown
// presets fall back to medium.
func (p SkillPreset) Index() int {
	for i, q := range SkillPresets {
		if p == q {
			return i
		}
	}
	return 2
}

// Label returns the menu text for the preset.
func (p SkillPreset) Label() string {
	switch p {
	case SkillBaby:
		return "Can I play, Daddy?"
	case SkillEasy:
		return "Don't hurt me."
	case SkillHard:
		return "I am Death incarnate!"
	default:
		return "Bring 'em on!"
	}
}
