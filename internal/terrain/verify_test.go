package terrain

import (
	"errors"
	"testing"
)

func TestVerifierAcceptsGeneratedChain(t *testing.T) {
	cfg := testConfig()
	g := newGenerator(t, 11, cfg)
	v := NewVerifier(cfg.Terrain, cfg.PowerUps)

	state := Genesis(cfg.Terrain)
	for i := 0; i < 200; i++ {
		l, err := g.Generate(state, cfg.Terrain.SegmentHeight)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if err := v.Check(l); err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		state = l.Last
	}
}

func TestVerifierRejects(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name   string
		layout Layout
	}{
		{
			name: "consecutive birds",
			layout: Layout{
				Layers: []Layer{{Kind: BirdLayer, Bird: &BirdOccupant{}}, {Kind: BirdLayer, Bird: &BirdOccupant{}}},
				Last:   LastLayerState{Occupants: []float64{0}, IsBird: true},
			},
		},
		{
			name: "same layer too close",
			layout: Layout{
				Layers: []Layer{{Kind: BranchLayer, Branches: []Occupant{{Angle: 90}, {Angle: 100}}}},
				Last:   LastLayerState{Occupants: []float64{90, 100}},
			},
		},
		{
			name: "too close to the layer above",
			layout: Layout{
				Layers: []Layer{{Kind: BranchLayer, Branches: []Occupant{{Angle: 10}}}},
				Last:   LastLayerState{Occupants: []float64{10}},
			},
		},
		{
			name: "power-up cap",
			layout: Layout{
				Layers: []Layer{{Kind: BranchLayer, Branches: []Occupant{
					{Angle: 90, PowerUp: &PowerUpSpawn{}},
					{Angle: 180, PowerUp: &PowerUpSpawn{}},
					{Angle: 270, PowerUp: &PowerUpSpawn{}},
				}}},
				Last: LastLayerState{Occupants: []float64{90, 180, 270}},
			},
		},
		{
			name: "continuity mismatch",
			layout: Layout{
				Layers: []Layer{{Kind: BranchLayer, Branches: []Occupant{{Angle: 90}}}},
				Last:   LastLayerState{Occupants: []float64{45}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(cfg.Terrain, cfg.PowerUps)
			err := v.Check(tt.layout)
			var viol *Violation
			if !errors.As(err, &viol) {
				t.Errorf("Check() error = %v, expected a *Violation", err)
			}
		})
	}
}

func TestVerifierCountsSegments(t *testing.T) {
	cfg := testConfig()
	v := NewVerifier(cfg.Terrain, cfg.PowerUps)

	ok := Layout{
		Layers: []Layer{{Kind: BranchLayer, Branches: []Occupant{{Angle: 90}}}},
		Last:   LastLayerState{Occupants: []float64{90}},
	}
	if err := v.Check(ok); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	bad := Layout{
		Layers: []Layer{{Kind: BranchLayer, Branches: []Occupant{{Angle: 100}}}},
		Last:   LastLayerState{Occupants: []float64{100}},
	}
	var viol *Violation
	if err := v.Check(bad); !errors.As(err, &viol) || viol.Segment != 1 {
		t.Errorf("Check() error = %v, expected a violation in segment 1", err)
	}
}
