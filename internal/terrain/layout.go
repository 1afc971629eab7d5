package terrain

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/treeclimber/internal/config"
	"github.com/vovakirdan/treeclimber/internal/powerup"
)

// ErrUnreachableLayer is returned when no legal first branch exists for a layer.
var ErrUnreachableLayer = errors.New("terrain: first branch of layer is unreachable")

// LastLayerState is the continuity handed from one segment to the next.
type LastLayerState struct {
	Occupants []float64 // angles of the last branch layer
	IsBird    bool      // whether the segment ended on a bird layer
	Gap       float64   // distance from the final layer to the segment bottom
}

// Genesis is the synthetic state used before the first segment exists.
func Genesis(cfg config.TerrainConfig) LastLayerState {
	return LastLayerState{
		Occupants: []float64{0},
		Gap:       cfg.YInterval,
	}
}

// Layout is the result of generating one segment.
type Layout struct {
	Layers []Layer
	Last   LastLayerState
}

// Generator builds segment layouts.
type Generator struct {
	cfg     config.TerrainConfig
	pu      config.PowerUpConfig
	rng     *rand.Rand
	policy  *RotationPolicy
	kinds   []powerup.Kind
	weights []float64
	total   float64
}

// NewGenerator creates a generator. The rng is shared with the rotation policy.
func NewGenerator(rng *rand.Rand, cfg config.TerrainConfig, pu config.PowerUpConfig) (*Generator, error) {
	g := &Generator{
		cfg:    cfg,
		pu:     pu,
		rng:    rng,
		policy: NewRotationPolicy(rng, cfg),
	}
	// Fixed kind order keeps weighted rolls deterministic across map iteration.
	for _, k := range powerup.Kinds {
		w := pu.Weights[k.String()]
		if w <= 0 {
			continue
		}
		g.kinds = append(g.kinds, k)
		g.weights = append(g.weights, w)
		g.total += w
	}
	if err := g.check(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) check() error {
	if g.cfg.YInterval <= 0 {
		return &config.ValidationError{Field: "terrain.y_interval", Reason: "must be positive"}
	}
	if g.cfg.MaxBranches < 1 {
		return &config.ValidationError{Field: "terrain.max_branches", Reason: "must be at least 1"}
	}
	if _, _, err := g.policy.Window(true); err != nil {
		return err
	}
	if _, _, err := g.policy.Window(false); err != nil {
		return err
	}
	if g.pu.Chance > 0 && g.pu.MaxPerSegment > 0 && g.total == 0 {
		return &config.ValidationError{Field: "power_ups.weights", Reason: "no power-up has a positive weight"}
	}
	return nil
}

// Policy returns the rotation policy used by the generator.
func (g *Generator) Policy() *RotationPolicy {
	return g.policy
}

// Generate lays out a segment of the given height below a segment that ended in prev.
// Layers are placed from the top down every y_interval rows, continuing the
// rhythm across the seam.
func (g *Generator) Generate(prev LastLayerState, height float64) (Layout, error) {
	if len(prev.Occupants) == 0 {
		prev = Genesis(g.cfg)
	}
	ref := prev.Occupants
	lastWasBird := prev.IsBird
	powerUps := 0

	var layers []Layer
	depth := g.cfg.YInterval - prev.Gap
	if depth < 0 {
		depth = 0
	}
	lastDepth := -prev.Gap

	for ; depth < height; depth += g.cfg.YInterval {
		lastDepth = depth

		if !lastWasBird && g.rng.Float64() < g.cfg.BirdChance {
			dir := Clockwise
			if g.rng.Intn(2) == 0 {
				dir = Counterclockwise
			}
			layers = append(layers, Layer{
				Kind:  BirdLayer,
				Depth: depth,
				Bird:  &BirdOccupant{Angle: g.rng.Float64() * 360, Direction: dir, Y: depth},
			})
			lastWasBird = true
			continue
		}

		layer, err := g.branchLayer(ref, depth, &powerUps)
		if err != nil {
			return Layout{}, err
		}
		layers = append(layers, layer)
		ref = layer.Angles()
		lastWasBird = false
	}

	return Layout{
		Layers: layers,
		Last: LastLayerState{
			Occupants: append([]float64(nil), ref...),
			IsBird:    lastWasBird,
			Gap:       height - lastDepth,
		},
	}, nil
}

func (g *Generator) branchLayer(ref []float64, depth float64, powerUps *int) (Layer, error) {
	layer := Layer{Kind: BranchLayer, Depth: depth}
	branchCount := 1 + g.rng.Intn(g.cfg.MaxBranches)
	var placed []float64

	for i := 0; i <= branchCount; i++ {
		var angle float64
		if i == 0 {
			a, err := g.firstAngle(ref)
			if err != nil {
				return layer, err
			}
			angle = a
		} else {
			a, err := g.policy.PickAngle(placed[len(placed)-1], false)
			if err != nil {
				return layer, err
			}
			if !g.fits(a, placed, ref) || !g.reachable(append(placed, a)) {
				break
			}
			angle = a
		}

		occ := Occupant{
			Angle: angle,
			Y:     depth + (g.rng.Float64()*2-1)*g.cfg.YOffset,
		}
		if *powerUps < g.pu.MaxPerSegment && g.rng.Float64() < g.pu.Chance {
			occ.PowerUp = &PowerUpSpawn{Kind: g.rollKind()}
			*powerUps++
		}
		layer.Branches = append(layer.Branches, occ)
		placed = append(placed, angle)
	}
	return layer, nil
}

// firstAngle draws the first branch of a layer next to the last reference
// branch. If the draw lands too close to another reference branch the window
// is swept for the nearest legal angle.
func (g *Generator) firstAngle(ref []float64) (float64, error) {
	d, err := g.policy.Sample(ref[len(ref)-1], true)
	if err != nil {
		return 0, err
	}
	for _, a := range d.Sweep() {
		if g.clearOf(a, ref, g.cfg.DifferentLayerMinAngle) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: no angle within %g..%g of %g clears %v",
		ErrUnreachableLayer, d.Lo, d.Hi, d.Prev, ref)
}

// fits reports whether a later branch keeps its distance from the layer and the reference layer.
func (g *Generator) fits(a float64, placed, ref []float64) bool {
	return g.clearOf(a, placed, g.cfg.SameLayerMinAngle) &&
		g.clearOf(a, ref, g.cfg.DifferentLayerMinAngle)
}

// reachable reports whether a layer ending in layer[len-1] leaves a legal
// first branch for the next layer.
func (g *Generator) reachable(layer []float64) bool {
	lo, hi, err := g.policy.Window(true)
	if err != nil {
		return false
	}
	last := layer[len(layer)-1]
	for _, o := range gridOffsets(lo, hi) {
		if g.clearOf(Normalize(last+o), layer, g.cfg.DifferentLayerMinAngle) ||
			g.clearOf(Normalize(last-o), layer, g.cfg.DifferentLayerMinAngle) {
			return true
		}
	}
	return false
}

func (g *Generator) clearOf(a float64, others []float64, min float64) bool {
	for _, o := range others {
		if Distance(a, o) < min {
			return false
		}
	}
	return true
}

func (g *Generator) rollKind() powerup.Kind {
	r := g.rng.Float64() * g.total
	for i, w := range g.weights {
		if r < w {
			return g.kinds[i]
		}
		r -= w
	}
	return g.kinds[len(g.kinds)-1]
}
