package config

import (
	_ "embed"
)

//go:embed defaults/climber.yaml
var defaultClimberYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultClimberYAML
}

// DefaultClimberConfig returns the default climber configuration.
// It mirrors defaults/climber.yaml and is used if the embedded file cannot be parsed.
func DefaultClimberConfig() ClimberConfig {
	return ClimberConfig{
		Terrain: TerrainConfig{
			SegmentHeight:          24,
			YInterval:              4,
			YOffset:                0.4,
			MaxBranches:            3,
			SameLayerMinAngle:      30,
			SameLayerMaxAngle:      120,
			DifferentLayerMinAngle: 45,
			DifferentLayerMaxAngle: 150,
			BirdChance:             0.15,
			BranchHalfWidth:        12,
			Overlap:                0,
			SpawnMargin:            8,
			DestroyMargin:          4,
		},
		Speed: SpeedConfig{
			Mode:       SpeedLinear,
			Initial:    0.08,
			Increase:   0.00002,
			Multiplier: 1.0001,
			Max:        0.6,
		},
		PowerUps: PowerUpConfig{
			Chance:        0.08,
			MaxPerSegment: 1,
			Weights: map[string]float64{
				PowerUpShield:      1,
				PowerUpLock:        1,
				PowerUpGoldenAcorn: 0.5,
			},
			Durations: map[string]float64{
				PowerUpShield:      10,
				PowerUpLock:        8,
				PowerUpGoldenAcorn: 5,
			},
			Exclusions: DefaultExclusions(),
		},
		Player: PlayerConfig{
			Home:            0.7,
			SteerSpeed:      4,
			FallSpeed:       0.5,
			HalfWidth:       6,
			Stun:            0.2,
			BounceFactor:    1.5,
			SwipeWindow:     0.25,
			SwipeCooldown:   10,
			OffScreenOffset: 0.1,
		},
		Bird: BirdConfig{
			Speed:     1.5,
			HalfWidth: 6,
			OnTouch:   BirdKill,
		},
		Camera: CameraConfig{
			ShakeMagnitude: 1,
			ShakeDuration:  0.3,
		},
		Score: ScoreConfig{
			Multiplier: 10,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  -1,
		},
	}
}

// DefaultExclusions returns the power-up exclusion matrix:
// golden acorn and lock are mutually exclusive with the acorn winning,
// shield and lock cancel each other, and shield cannot start during an acorn.
func DefaultExclusions() []ExclusionRule {
	return []ExclusionRule{
		{Active: PowerUpLock, Incoming: PowerUpGoldenAcorn, Action: ExclusionCancel},
		{Active: PowerUpGoldenAcorn, Incoming: PowerUpLock, Action: ExclusionReject},
		{Active: PowerUpLock, Incoming: PowerUpShield, Action: ExclusionCancel},
		{Active: PowerUpShield, Incoming: PowerUpLock, Action: ExclusionCancel},
		{Active: PowerUpGoldenAcorn, Incoming: PowerUpShield, Action: ExclusionReject},
	}
}
