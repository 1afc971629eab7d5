package config

import (
	"errors"
	"fmt"
	"slices"
)

// ValidationError reports one invalid configuration field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// CheckAngleRange validates a [min, max] rotation window.
// The window must be non-empty and must not wrap past the opposite side,
// which happens when min exceeds 360-min.
func CheckAngleRange(field string, min, max float64) error {
	switch {
	case min < 0:
		return invalid(field, "min angle %g is negative", min)
	case min > max:
		return invalid(field, "min angle %g exceeds max angle %g", min, max)
	case min > 360-min:
		return invalid(field, "min angle %g leaves no room on a 360 degree circle", min)
	case max <= 0:
		return invalid(field, "max angle %g must be positive", max)
	}
	return nil
}

// Validate checks the configuration and returns every violation joined together.
func (c ClimberConfig) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	t := c.Terrain
	if t.SegmentHeight <= 0 {
		add(invalid("terrain.segment_height", "must be positive, got %g", t.SegmentHeight))
	}
	if t.YInterval <= 0 {
		add(invalid("terrain.y_interval", "must be positive, got %g", t.YInterval))
	}
	if t.YOffset < 0 || (t.YInterval > 0 && t.YOffset >= t.YInterval/2) {
		add(invalid("terrain.y_offset", "must be in [0, y_interval/2), got %g", t.YOffset))
	}
	if t.MaxBranches < 1 {
		add(invalid("terrain.max_branches", "must be at least 1, got %d", t.MaxBranches))
	}
	add(CheckAngleRange("terrain.same_layer_angle", t.SameLayerMinAngle, t.SameLayerMaxAngle))
	add(CheckAngleRange("terrain.different_layer_angle", t.DifferentLayerMinAngle, t.DifferentLayerMaxAngle))
	add(checkChance("terrain.bird_chance", t.BirdChance))
	if t.BranchHalfWidth < 0 {
		add(invalid("terrain.branch_half_width", "must not be negative, got %g", t.BranchHalfWidth))
	}
	if t.Overlap < 0 || (t.SegmentHeight > 0 && t.Overlap >= t.SegmentHeight) {
		add(invalid("terrain.overlap", "must be in [0, segment_height), got %g", t.Overlap))
	}
	if t.SpawnMargin < 0 {
		add(invalid("terrain.spawn_margin", "must not be negative, got %g", t.SpawnMargin))
	}
	if t.DestroyMargin < 0 {
		add(invalid("terrain.destroy_margin", "must not be negative, got %g", t.DestroyMargin))
	}

	s := c.Speed
	switch s.Mode {
	case SpeedLinear:
		if s.Increase < 0 {
			add(invalid("speed.increase", "must not be negative, got %g", s.Increase))
		}
	case SpeedExponential:
		if s.Multiplier < 1 {
			add(invalid("speed.multiplier", "must be at least 1, got %g", s.Multiplier))
		}
	default:
		add(invalid("speed.mode", "unknown mode %q (use linear or exponential)", s.Mode))
	}
	if s.Initial < 0 {
		add(invalid("speed.initial", "must not be negative, got %g", s.Initial))
	}
	if s.Max < 0 || (s.Max > 0 && s.Max < s.Initial) {
		add(invalid("speed.max", "must be 0 or at least speed.initial, got %g", s.Max))
	}

	add(c.PowerUps.validate())

	p := c.Player
	if p.Home <= 0 || p.Home > 1 {
		add(invalid("player.home", "must be in (0, 1], got %g", p.Home))
	}
	if p.FallSpeed <= 0 {
		add(invalid("player.fall_speed", "must be positive, got %g", p.FallSpeed))
	}
	if p.SteerSpeed <= 0 {
		add(invalid("player.steer_speed", "must be positive, got %g", p.SteerSpeed))
	}
	if p.OffScreenOffset < 0 {
		add(invalid("player.off_screen_offset", "must not be negative, got %g", p.OffScreenOffset))
	}

	if c.Bird.OnTouch != BirdKill && c.Bird.OnTouch != BirdBounce {
		add(invalid("bird.on_touch", "unknown behavior %q (use kill or bounce)", c.Bird.OnTouch))
	}
	if c.Score.Multiplier < 0 {
		add(invalid("score.multiplier", "must not be negative, got %g", c.Score.Multiplier))
	}

	return errors.Join(errs...)
}

func (p PowerUpConfig) validate() error {
	var errs []error
	if err := checkChance("power_ups.chance", p.Chance); err != nil {
		errs = append(errs, err)
	}
	if p.MaxPerSegment < 0 {
		errs = append(errs, invalid("power_ups.max_per_segment", "must not be negative, got %d", p.MaxPerSegment))
	}

	total := 0.0
	for kind, w := range p.Weights {
		if !slices.Contains(PowerUpKinds, kind) {
			errs = append(errs, invalid("power_ups.weights", "unknown power-up %q", kind))
			continue
		}
		if w < 0 {
			errs = append(errs, invalid("power_ups.weights."+kind, "must not be negative, got %g", w))
			continue
		}
		total += w
	}
	if p.Chance > 0 && p.MaxPerSegment > 0 && total == 0 {
		errs = append(errs, invalid("power_ups.weights", "all weights are zero but chance is %g", p.Chance))
	}

	for kind, d := range p.Durations {
		if !slices.Contains(PowerUpKinds, kind) {
			errs = append(errs, invalid("power_ups.durations", "unknown power-up %q", kind))
		} else if d <= 0 {
			errs = append(errs, invalid("power_ups.durations."+kind, "must be positive, got %g", d))
		}
	}

	for i, r := range p.Exclusions {
		field := fmt.Sprintf("power_ups.exclusions[%d]", i)
		if !slices.Contains(PowerUpKinds, r.Active) {
			errs = append(errs, invalid(field, "unknown active power-up %q", r.Active))
		}
		if !slices.Contains(PowerUpKinds, r.Incoming) {
			errs = append(errs, invalid(field, "unknown incoming power-up %q", r.Incoming))
		}
		if r.Active == r.Incoming {
			errs = append(errs, invalid(field, "power-up %q cannot exclude itself", r.Active))
		}
		if r.Action != ExclusionCancel && r.Action != ExclusionReject {
			errs = append(errs, invalid(field, "unknown action %q (use cancel or reject)", r.Action))
		}
	}
	return errors.Join(errs...)
}

func checkChance(field string, v float64) error {
	if v < 0 || v > 1 {
		return invalid(field, "must be in [0, 1], got %g", v)
	}
	return nil
}
