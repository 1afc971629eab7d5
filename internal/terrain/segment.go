package terrain

import "github.com/vovakirdan/treeclimber/internal/powerup"

// LayerKind distinguishes branch layers from bird layers.
type LayerKind int

const (
	BranchLayer LayerKind = iota
	BirdLayer
)

func (k LayerKind) String() string {
	if k == BirdLayer {
		return "bird"
	}
	return "branch"
}

// PowerUpSpawn is a pickup sitting on a branch.
type PowerUpSpawn struct {
	Kind     powerup.Kind
	Consumed bool
}

// Occupant is one branch. Y is its jittered offset below the segment top.
type Occupant struct {
	Angle   float64
	Y       float64
	PowerUp *PowerUpSpawn
	Broken  bool
}

// Direction is the way a bird circles the trunk.
type Direction int

const (
	Clockwise        Direction = 1
	Counterclockwise Direction = -1
)

// BirdOccupant is a hostile bird circling the trunk at a fixed depth.
type BirdOccupant struct {
	Angle     float64
	Direction Direction
	Y         float64
	Dead      bool
}

// Layer is a horizontal band holding either branches or a single bird.
// Depth is the unjittered offset below the segment top.
type Layer struct {
	Kind     LayerKind
	Depth    float64
	Branches []Occupant
	Bird     *BirdOccupant
}

// Angles returns the angles of the layer's branches in placement order.
func (l Layer) Angles() []float64 {
	out := make([]float64, len(l.Branches))
	for i, b := range l.Branches {
		out[i] = b.Angle
	}
	return out
}

// Phase is a segment's position in its streaming lifecycle.
type Phase int

const (
	Active Phase = iota
	PassedSpawnThreshold
	PassedDestroyThreshold
	Removed
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case PassedSpawnThreshold:
		return "passed-spawn"
	case PassedDestroyThreshold:
		return "passed-destroy"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Segment is one vertical slice of the tree.
// Position is the camera-space Y of its top edge; Y grows upward.
type Segment struct {
	ID       int
	Position float64
	Height   float64
	Layers   []Layer
	Last     LastLayerState
	Phase    Phase

	spawnedNext bool
}

// Top returns the camera-space Y of the top edge.
func (s *Segment) Top() float64 {
	return s.Position
}

// Bottom returns the camera-space Y of the bottom edge.
func (s *Segment) Bottom() float64 {
	return s.Position - s.Height
}

// WorldY converts an offset below the segment top into camera space.
func (s *Segment) WorldY(offset float64) float64 {
	return s.Position - offset
}

// SpawnedNext reports whether this segment already triggered generation.
func (s *Segment) SpawnedNext() bool {
	return s.spawnedNext
}

// PowerUpCount returns how many power-ups were spawned in the segment.
func (s *Segment) PowerUpCount() int {
	n := 0
	for _, l := range s.Layers {
		for _, b := range l.Branches {
			if b.PowerUp != nil {
				n++
			}
		}
	}
	return n
}
