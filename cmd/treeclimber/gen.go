package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/treeclimber/internal/terrain"
)

var (
	flagGenSegments int
	flagGenCheck    bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Print generated tree segments as YAML",
	Long: `Generate a chain of segments from a seed and print their layouts.

With --check every segment is verified against the layout rules (branch
spacing, no two bird layers in a row, power-up cap) and the command fails
on the first violation.

Examples:
  treeclimber gen --seed 42
  treeclimber gen --segments 1000 --check > /dev/null`,
	Run: runGen,
}

func init() {
	genCmd.Flags().IntVar(&flagGenSegments, "segments", 10, "Number of segments to generate")
	genCmd.Flags().BoolVar(&flagGenCheck, "check", false, "Verify layout invariants")
}

type genDoc struct {
	Seed     int64        `yaml:"seed"`
	Segments []segmentDoc `yaml:"segments"`
}

type segmentDoc struct {
	ID     int        `yaml:"id"`
	Height float64    `yaml:"height"`
	Layers []layerDoc `yaml:"layers"`
}

type layerDoc struct {
	Kind     string      `yaml:"kind"`
	Depth    float64     `yaml:"depth"`
	Branches []branchDoc `yaml:"branches,omitempty"`
	Bird     *birdDoc    `yaml:"bird,omitempty"`
}

type branchDoc struct {
	Angle   float64 `yaml:"angle"`
	Y       float64 `yaml:"y"`
	PowerUp string  `yaml:"power_up,omitempty"`
}

type birdDoc struct {
	Angle     float64 `yaml:"angle"`
	Clockwise bool    `yaml:"clockwise"`
}

func runGen(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	s := seed()

	gen, err := terrain.NewGenerator(rand.New(rand.NewSource(s)), cfg.Terrain, cfg.PowerUps)
	if err != nil {
		fail("%v", err)
	}
	verifier := terrain.NewVerifier(cfg.Terrain, cfg.PowerUps)

	doc := genDoc{Seed: s}
	state := terrain.Genesis(cfg.Terrain)
	for i := 0; i < flagGenSegments; i++ {
		layout, err := gen.Generate(state, cfg.Terrain.SegmentHeight)
		if err != nil {
			fail("segment %d: %v", i, err)
		}
		if flagGenCheck {
			if err := verifier.Check(layout); err != nil {
				fail("%v", err)
			}
		}
		doc.Segments = append(doc.Segments, segmentYAML(i, cfg.Terrain.SegmentHeight, layout))
		state = layout.Last
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		fail("%v", err)
	}
	if err := enc.Close(); err != nil {
		fail("%v", err)
	}
	if flagGenCheck {
		fmt.Fprintf(os.Stderr, "%d segments checked, no violations\n", flagGenSegments)
	}
}

func segmentYAML(id int, height float64, l terrain.Layout) segmentDoc {
	seg := segmentDoc{ID: id, Height: height}
	for _, layer := range l.Layers {
		ld := layerDoc{Kind: layer.Kind.String(), Depth: layer.Depth}
		if b := layer.Bird; b != nil {
			ld.Bird = &birdDoc{Angle: b.Angle, Clockwise: b.Direction == terrain.Clockwise}
		}
		for _, br := range layer.Branches {
			bd := branchDoc{Angle: br.Angle, Y: br.Y}
			if br.PowerUp != nil {
				bd.PowerUp = br.PowerUp.Kind.String()
			}
			ld.Branches = append(ld.Branches, bd)
		}
		seg.Layers = append(seg.Layers, ld)
	}
	return seg
}
