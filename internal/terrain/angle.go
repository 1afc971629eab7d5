// Package terrain generates and streams the tree: branch and bird layers
// placed around the trunk, segment by segment, plus the scroll speed that
// moves them.
package terrain

import "math"

// Normalize maps an angle in degrees into [0, 360).
func Normalize(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// Distance returns the shortest circular distance between two angles, in [0, 180].
func Distance(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// SignedDelta returns the shortest signed rotation from a to b, in (-180, 180].
func SignedDelta(a, b float64) float64 {
	d := Normalize(b) - Normalize(a)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
