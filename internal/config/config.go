// Package config provides YAML-based climber configuration loading,
// validation and difficulty presets.
package config

// ClimberConfig contains all configuration for the tree climber.
type ClimberConfig struct {
	Terrain  TerrainConfig `yaml:"terrain"`
	Speed    SpeedConfig   `yaml:"speed"`
	PowerUps PowerUpConfig `yaml:"power_ups"`
	Player   PlayerConfig  `yaml:"player"`
	Bird     BirdConfig    `yaml:"bird"`
	Camera   CameraConfig  `yaml:"camera"`
	Score    ScoreConfig   `yaml:"score"`
	Audio    AudioConfig   `yaml:"audio"`
}

// TerrainConfig drives segment layout and streaming.
// Distances are in screen rows, angles in degrees.
type TerrainConfig struct {
	SegmentHeight          float64 `yaml:"segment_height"`
	YInterval              float64 `yaml:"y_interval"`
	YOffset                float64 `yaml:"y_offset"` // ± jitter applied to each branch
	MaxBranches            int     `yaml:"max_branches"`
	SameLayerMinAngle      float64 `yaml:"same_layer_min_angle"`
	SameLayerMaxAngle      float64 `yaml:"same_layer_max_angle"`
	DifferentLayerMinAngle float64 `yaml:"different_layer_min_angle"`
	DifferentLayerMaxAngle float64 `yaml:"different_layer_max_angle"`
	BirdChance             float64 `yaml:"bird_chance"`
	BranchHalfWidth        float64 `yaml:"branch_half_width"` // angular half-span of a branch
	Overlap                float64 `yaml:"overlap"`           // rows a new segment overlaps its caller
	SpawnMargin            float64 `yaml:"spawn_margin"`      // rows below the view at which the next segment is generated
	DestroyMargin          float64 `yaml:"destroy_margin"`    // rows above the view at which a segment is removed
}

// Speed increase modes.
const (
	SpeedLinear      = "linear"
	SpeedExponential = "exponential"
)

// SpeedConfig defines the scroll speed progression.
type SpeedConfig struct {
	Mode       string  `yaml:"mode"`       // "linear" or "exponential"
	Initial    float64 `yaml:"initial"`    // rows per tick
	Increase   float64 `yaml:"increase"`   // added per tick in linear mode
	Multiplier float64 `yaml:"multiplier"` // applied per tick in exponential mode
	Max        float64 `yaml:"max"`        // 0 means uncapped
}

// Power-up kind names as they appear in YAML.
const (
	PowerUpShield      = "shield"
	PowerUpLock        = "lock"
	PowerUpGoldenAcorn = "golden_acorn"
)

// PowerUpKinds lists every known power-up kind name.
var PowerUpKinds = []string{PowerUpShield, PowerUpLock, PowerUpGoldenAcorn}

// Exclusion actions.
const (
	ExclusionCancel = "cancel" // deactivate the active kind
	ExclusionReject = "reject" // refuse the incoming kind
)

// PowerUpConfig defines spawning, durations and exclusion rules.
type PowerUpConfig struct {
	Chance        float64            `yaml:"chance"`
	MaxPerSegment int                `yaml:"max_per_segment"`
	Weights       map[string]float64 `yaml:"weights"`
	Durations     map[string]float64 `yaml:"durations"` // seconds
	Exclusions    []ExclusionRule    `yaml:"exclusions"`
}

// ExclusionRule says what happens when Incoming is activated while Active is on.
type ExclusionRule struct {
	Active   string `yaml:"active"`
	Incoming string `yaml:"incoming"`
	Action   string `yaml:"action"`
}

// PlayerConfig defines the player's movement.
type PlayerConfig struct {
	Home            float64 `yaml:"home"`        // resting height as a fraction of the view
	SteerSpeed      float64 `yaml:"steer_speed"` // degrees per tick
	FallSpeed       float64 `yaml:"fall_speed"`  // rows per tick
	HalfWidth       float64 `yaml:"half_width"`  // angular half-span of the player
	Stun            float64 `yaml:"stun"`        // seconds
	BounceFactor    float64 `yaml:"bounce_factor"`
	SwipeWindow     float64 `yaml:"swipe_window"`   // seconds
	SwipeCooldown   float64 `yaml:"swipe_cooldown"` // seconds
	OffScreenOffset float64 `yaml:"off_screen_offset"`
}

// Bird touch behaviors.
const (
	BirdKill   = "kill"
	BirdBounce = "bounce"
)

// BirdConfig defines hostile bird behavior.
type BirdConfig struct {
	Speed     float64 `yaml:"speed"` // degrees per tick
	HalfWidth float64 `yaml:"half_width"`
	OnTouch   string  `yaml:"on_touch"` // "kill" or "bounce"
}

// CameraConfig defines screen shake.
type CameraConfig struct {
	ShakeMagnitude float64 `yaml:"shake_magnitude"` // columns
	ShakeDuration  float64 `yaml:"shake_duration"`  // seconds
}

// ScoreConfig defines score accrual.
type ScoreConfig struct {
	Multiplier float64 `yaml:"multiplier"`
}

// AudioConfig defines the sound backend.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // beep volume exponent, 0 is unchanged
}

// Ticks converts a duration in seconds into whole simulation ticks.
// Any positive duration lasts at least one tick.
func Ticks(seconds float64, tickRate int) int {
	if seconds <= 0 || tickRate <= 0 {
		return 0
	}
	n := int(seconds*float64(tickRate) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}
