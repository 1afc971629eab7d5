package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
// An empty string selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables speed progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// The initial speed never exceeds speed.max afterwards.
func ApplyPreset(cfg *ClimberConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Initial *= 0.75
		cfg.Terrain.BirdChance *= 0.5
		cfg.PowerUps.Chance = math.Min(1, cfg.PowerUps.Chance*1.5)
	case DifficultyHard:
		cfg.Speed.Initial *= 1.3
		cfg.Terrain.BirdChance = math.Min(1, cfg.Terrain.BirdChance*1.5)
		cfg.PowerUps.Chance *= 0.5
	case DifficultyFixed:
		// Variants may force exponential mode; a unit multiplier keeps it flat too.
		cfg.Speed.Mode = SpeedLinear
		cfg.Speed.Increase = 0
		cfg.Speed.Multiplier = 1
	}
	if cfg.Speed.Max > 0 {
		cfg.Speed.Initial = math.Min(cfg.Speed.Initial, cfg.Speed.Max)
	}
}
