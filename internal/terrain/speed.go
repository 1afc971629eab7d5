package terrain

import "github.com/vovakirdan/treeclimber/internal/config"

// SpeedController raises the scroll speed every tick.
type SpeedController struct {
	cfg   config.SpeedConfig
	speed float64
}

// NewSpeedController creates a controller at the configured initial speed.
func NewSpeedController(cfg config.SpeedConfig) *SpeedController {
	return &SpeedController{cfg: cfg, speed: cfg.Initial}
}

// Tick returns the speed for this tick and then increases it,
// so the increase takes effect on the next tick.
func (c *SpeedController) Tick() float64 {
	current := c.speed
	switch c.cfg.Mode {
	case config.SpeedExponential:
		c.speed *= c.cfg.Multiplier
	default:
		c.speed += c.cfg.Increase
	}
	if c.cfg.Max > 0 && c.speed > c.cfg.Max {
		c.speed = c.cfg.Max
	}
	return current
}

// Speed returns the speed the next Tick will use.
func (c *SpeedController) Speed() float64 {
	return c.speed
}

// Reset returns to the initial speed.
func (c *SpeedController) Reset() {
	c.speed = c.cfg.Initial
}
