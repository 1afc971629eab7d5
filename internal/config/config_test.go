package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) error = %v", err)
	}
	def := DefaultClimberConfig()

	if cfg.Terrain != def.Terrain {
		t.Errorf("terrain = %+v, expected %+v", cfg.Terrain, def.Terrain)
	}
	if cfg.Speed != def.Speed {
		t.Errorf("speed = %+v, expected %+v", cfg.Speed, def.Speed)
	}
	if len(cfg.PowerUps.Exclusions) != len(def.PowerUps.Exclusions) {
		t.Errorf("exclusions = %d rules, expected %d", len(cfg.PowerUps.Exclusions), len(def.PowerUps.Exclusions))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("terrain:\n  max_branches: 5\nspeed:\n  mode: exponential\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Terrain.MaxBranches != 5 {
		t.Errorf("MaxBranches = %d, expected 5", cfg.Terrain.MaxBranches)
	}
	if cfg.Speed.Mode != SpeedExponential {
		t.Errorf("Speed.Mode = %q, expected %q", cfg.Speed.Mode, SpeedExponential)
	}
	if cfg.Terrain.YInterval != DefaultClimberConfig().Terrain.YInterval {
		t.Errorf("YInterval = %v, expected default to be kept", cfg.Terrain.YInterval)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "climber.yaml")
	if err := os.WriteFile(path, []byte("terrain:\n  bird_chance: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Terrain.BirdChance != 0.5 {
		t.Errorf("BirdChance = %v, expected 0.5", cfg.Terrain.BirdChance)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("terrain:\n  same_layer_min_angle: 90\n  same_layer_max_angle: 60\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Load() error = %v, expected a *ValidationError", err)
	}
	if verr.Field != "terrain.same_layer_angle" {
		t.Errorf("ValidationError.Field = %q, expected %q", verr.Field, "terrain.same_layer_angle")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClimberConfig)
		field  string
	}{
		{"inverted same-layer range", func(c *ClimberConfig) { c.Terrain.SameLayerMinAngle = 200; c.Terrain.SameLayerMaxAngle = 100 }, "terrain.same_layer_angle"},
		{"collapsed window", func(c *ClimberConfig) { c.Terrain.DifferentLayerMinAngle = 190; c.Terrain.DifferentLayerMaxAngle = 200 }, "terrain.different_layer_angle"},
		{"zero y interval", func(c *ClimberConfig) { c.Terrain.YInterval = 0 }, "terrain.y_interval"},
		{"negative segment height", func(c *ClimberConfig) { c.Terrain.SegmentHeight = -1 }, "terrain.segment_height"},
		{"no branches", func(c *ClimberConfig) { c.Terrain.MaxBranches = 0 }, "terrain.max_branches"},
		{"bird chance above one", func(c *ClimberConfig) { c.Terrain.BirdChance = 1.5 }, "terrain.bird_chance"},
		{"negative power-up cap", func(c *ClimberConfig) { c.PowerUps.MaxPerSegment = -1 }, "power_ups.max_per_segment"},
		{"zero weights", func(c *ClimberConfig) { c.PowerUps.Weights = map[string]float64{PowerUpShield: 0} }, "power_ups.weights"},
		{"exponential below one", func(c *ClimberConfig) { c.Speed.Mode = SpeedExponential; c.Speed.Multiplier = 0.99 }, "speed.multiplier"},
		{"unknown speed mode", func(c *ClimberConfig) { c.Speed.Mode = "quadratic" }, "speed.mode"},
		{"unknown exclusion action", func(c *ClimberConfig) {
			c.PowerUps.Exclusions = []ExclusionRule{{Active: PowerUpLock, Incoming: PowerUpShield, Action: "ignore"}}
		}, "power_ups.exclusions[0]"},
		{"unknown bird behavior", func(c *ClimberConfig) { c.Bird.OnTouch = "hug" }, "bird.on_touch"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultClimberConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, expected an error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error %v is not a *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Validate() = %v, expected field %q", err, tc.field)
			}
		})
	}
}

func TestValidateAggregates(t *testing.T) {
	cfg := DefaultClimberConfig()
	cfg.Terrain.YInterval = 0
	cfg.Terrain.MaxBranches = 0
	cfg.Speed.Mode = "?"

	err := cfg.Validate()
	for _, field := range []string{"terrain.y_interval", "terrain.max_branches", "speed.mode"} {
		if err == nil || !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() = %v, expected it to mention %q", err, field)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultClimberConfig()

	easy := DefaultClimberConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Speed.Initial >= base.Speed.Initial {
		t.Errorf("easy initial speed = %v, expected less than %v", easy.Speed.Initial, base.Speed.Initial)
	}

	hard := DefaultClimberConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Terrain.BirdChance <= base.Terrain.BirdChance {
		t.Errorf("hard bird chance = %v, expected more than %v", hard.Terrain.BirdChance, base.Terrain.BirdChance)
	}

	fixed := DefaultClimberConfig()
	fixed.Speed.Mode = SpeedExponential
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Speed.Mode != SpeedLinear || fixed.Speed.Increase != 0 || fixed.Speed.Multiplier != 1 {
		t.Errorf("fixed speed = %+v, expected linear with no increase and a unit multiplier", fixed.Speed)
	}
}

func TestApplyPresetKeepsInitialBelowMax(t *testing.T) {
	cfg := DefaultClimberConfig()
	cfg.Speed.Max = cfg.Speed.Initial * 1.1
	ApplyPreset(&cfg, DifficultyHard)

	if cfg.Speed.Initial != cfg.Speed.Max {
		t.Errorf("hard initial speed = %v, expected it clamped to max %v", cfg.Speed.Initial, cfg.Speed.Max)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after hard preset = %v, expected nil", err)
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v, expected normal", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(\"insane\") should fail")
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		seconds  float64
		rate     int
		expected int
	}{
		{1, 60, 60},
		{0.2, 60, 12},
		{0.001, 60, 1},
		{0, 60, 0},
		{1, 0, 0},
	}
	for _, tc := range tests {
		if got := Ticks(tc.seconds, tc.rate); got != tc.expected {
			t.Errorf("Ticks(%v, %d) = %d, expected %d", tc.seconds, tc.rate, got, tc.expected)
		}
	}
}
