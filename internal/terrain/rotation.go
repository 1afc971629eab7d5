package terrain

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/treeclimber/internal/config"
)

// Draw is one sample from a rotation window: prev + Side*Offset,
// with Offset in [Lo, Hi].
type Draw struct {
	Prev   float64
	Side   float64 // +1 or -1
	Offset float64
	Lo, Hi float64
}

// Angle returns the drawn angle normalized into [0, 360).
func (d Draw) Angle() float64 {
	return Normalize(d.Prev + d.Side*d.Offset)
}

// RotationPolicy picks branch angles relative to a previous branch.
type RotationPolicy struct {
	rng              *rand.Rand
	sameMin, sameMax float64
	diffMin, diffMax float64
}

// NewRotationPolicy creates a policy drawing from rng with the terrain's angle windows.
func NewRotationPolicy(rng *rand.Rand, cfg config.TerrainConfig) *RotationPolicy {
	return &RotationPolicy{
		rng:     rng,
		sameMin: cfg.SameLayerMinAngle,
		sameMax: cfg.SameLayerMaxAngle,
		diffMin: cfg.DifferentLayerMinAngle,
		diffMax: cfg.DifferentLayerMaxAngle,
	}
}

// Window returns the offset range used for the first branch of a layer
// (cross-layer) or for later branches (same layer). The upper bound is
// capped at 360-min so the result stays min away from prev on both sides.
func (p *RotationPolicy) Window(isFirstOnLayer bool) (lo, hi float64, err error) {
	field := "terrain.same_layer_angle"
	lo, hi = p.sameMin, p.sameMax
	if isFirstOnLayer {
		field = "terrain.different_layer_angle"
		lo, hi = p.diffMin, p.diffMax
	}
	if err := config.CheckAngleRange(field, lo, hi); err != nil {
		return 0, 0, err
	}
	return lo, math.Min(hi, 360-lo), nil
}

// Sample draws a side and an offset without normalizing.
func (p *RotationPolicy) Sample(prev float64, isFirstOnLayer bool) (Draw, error) {
	lo, hi, err := p.Window(isFirstOnLayer)
	if err != nil {
		return Draw{}, err
	}
	side := 1.0
	if p.rng.Intn(2) == 0 {
		side = -1
	}
	return Draw{
		Prev:   prev,
		Side:   side,
		Offset: lo + p.rng.Float64()*(hi-lo),
		Lo:     lo,
		Hi:     hi,
	}, nil
}

// PickAngle returns a legal angle for a new branch next to prev.
func (p *RotationPolicy) PickAngle(prev float64, isFirstOnLayer bool) (float64, error) {
	d, err := p.Sample(prev, isFirstOnLayer)
	if err != nil {
		return 0, err
	}
	return d.Angle(), nil
}

// sweepStep is the resolution used when searching a window for a legal angle.
const sweepStep = 1.0

// gridOffsets returns the searchable offsets of [lo, hi]: lo, lo+1, ... and hi.
func gridOffsets(lo, hi float64) []float64 {
	var out []float64
	for o := lo; o < hi; o += sweepStep {
		out = append(out, o)
	}
	return append(out, hi)
}

// Sweep returns the candidate angles of the draw's window in search order:
// the drawn angle, then the grid offsets on the drawn side starting at the
// draw and wrapping, then the other side.
func (d Draw) Sweep() []float64 {
	grid := gridOffsets(d.Lo, d.Hi)
	start := 0
	for start < len(grid) && grid[start] < d.Offset {
		start++
	}

	out := make([]float64, 0, 2*len(grid)+1)
	out = append(out, d.Angle())
	for i := range grid {
		o := grid[(start+i)%len(grid)]
		out = append(out, Normalize(d.Prev+d.Side*o))
	}
	for _, o := range grid {
		out = append(out, Normalize(d.Prev-d.Side*o))
	}
	return out
}
