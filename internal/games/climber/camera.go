package climber

// Camera is the view collaborator driven by the game.
type Camera interface {
	UpdateScroll(speed float64)
	Lock()
	Unlock()
	Shake(magnitude float64)
}

var _ Camera = (*TrackingCamera)(nil)

// TrackingCamera records the state the renderer needs: scroll speed,
// whether the view follows the player and any running screen shake.
type TrackingCamera struct {
	speed      float64
	locked     bool
	shakeTicks int
	shakeMag   float64
	duration   int
	tick       int
}

// NewTrackingCamera creates a camera whose shakes last duration ticks.
func NewTrackingCamera(duration int) *TrackingCamera {
	return &TrackingCamera{duration: duration}
}

func (c *TrackingCamera) UpdateScroll(speed float64) { c.speed = speed }
func (c *TrackingCamera) Lock() { c.locked = true }
func (c *TrackingCamera) Unlock() { c.locked = false }

// Shake starts a shake, replacing a weaker one.
func (c *TrackingCamera) Shake(magnitude float64) {
	if c.shakeTicks > 0 && c.shakeMag > magnitude {
		return
	}
	c.shakeMag = magnitude
	c.shakeTicks = c.duration
}

// Tick counts down the shake.
func (c *TrackingCamera) Tick() {
	c.tick++
	if c.shakeTicks > 0 {
		c.shakeTicks--
	}
}

// Locked reports whether the view follows the player.
func (c *TrackingCamera) Locked() bool { return c.locked }

// Speed returns the last scroll speed.
func (c *TrackingCamera) Speed() float64 { return c.speed }

// Offset returns the horizontal shake offset in columns for this tick.
func (c *TrackingCamera) Offset() int {
	if c.shakeTicks == 0 {
		return 0
	}
	mag := int(c.shakeMag + 0.5)
	if mag < 1 {
		mag = 1
	}
	if c.tick%2 == 0 {
		return mag
	}
	return -mag
}
