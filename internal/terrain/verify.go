package terrain

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/treeclimber/internal/config"
)

// Violation is a broken layout invariant found by a Verifier.
type Violation struct {
	Segment int
	Layer   int
	Reason  string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("terrain: segment %d layer %d: %s", v.Segment, v.Layer, v.Reason)
}

// Verifier checks a chain of layouts against the generation rules.
// Layouts must be passed in generation order.
type Verifier struct {
	cfg      config.TerrainConfig
	maxPU    int
	ref      []float64
	lastBird bool
	segment  int
}

// NewVerifier starts a chain at the genesis state.
func NewVerifier(cfg config.TerrainConfig, pu config.PowerUpConfig) *Verifier {
	return &Verifier{
		cfg:   cfg,
		maxPU: pu.MaxPerSegment,
		ref:   Genesis(cfg).Occupants,
	}
}

// Check verifies the next layout of the chain.
func (v *Verifier) Check(l Layout) error {
	defer func() { v.segment++ }()

	powerUps := 0
	for li, layer := range l.Layers {
		fail := func(format string, args ...any) error {
			return &Violation{Segment: v.segment, Layer: li, Reason: fmt.Sprintf(format, args...)}
		}

		if layer.Kind == BirdLayer {
			if v.lastBird {
				return fail("two bird layers in a row")
			}
			v.lastBird = true
			continue
		}
		v.lastBird = false

		if n := len(layer.Branches); n == 0 || n > v.cfg.MaxBranches+1 {
			return fail("%d branches", n)
		}
		for i, b := range layer.Branches {
			if b.Angle < 0 || b.Angle >= 360 {
				return fail("angle %g out of range", b.Angle)
			}
			for _, r := range v.ref {
				if d := Distance(b.Angle, r); d < v.cfg.DifferentLayerMinAngle {
					return fail("branch %g is %g from branch %g of the layer above", b.Angle, d, r)
				}
			}
			for _, o := range layer.Branches[:i] {
				if d := Distance(b.Angle, o.Angle); d < v.cfg.SameLayerMinAngle {
					return fail("branches %g and %g are %g apart", b.Angle, o.Angle, d)
				}
			}
			if b.PowerUp != nil {
				powerUps++
			}
		}
		v.ref = layer.Angles()
	}

	if powerUps > v.maxPU {
		return &Violation{Segment: v.segment, Layer: -1, Reason: fmt.Sprintf("%d power-ups, cap is %d", powerUps, v.maxPU)}
	}
	if l.Last.IsBird != v.lastBird || !slices.Equal(l.Last.Occupants, v.ref) {
		return &Violation{Segment: v.segment, Layer: -1, Reason: "continuity state does not match the last layers"}
	}
	return nil
}
