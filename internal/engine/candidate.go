// Package engine implements the core placement search: candidate generation
// (component D), placement validation (component E), placement scoring
// (component F), and the greedy void-filling driver (component G). It is
// modeled on the teacher's guillotine shelf packer in
// _examples/piwi3910-cnc-calculator/internal/engine/optimizer.go, generalized
// from 2D rectangle insertion to 3D void filling.
package engine

import (
	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
)

// candidate is one proposed placement: a box under a given orientation,
// anchored at position within void.
type candidate struct {
	orientation geometry.Orientation
	position    geometry.Vec3
	void        model.Void
}

// maxSamplesPerAxis caps the corner offsets tried on each axis (§4.D).
const maxSamplesPerAxis = 3

// generateCandidates proposes anchor positions for box inside void, for
// every orientation under which box fits. Positions are sampled from the
// void's low corner with up to maxSamplesPerAxis offsets per axis, spaced
// evenly across the leftover slack so the sampling density adapts to how
// much room the void has to spare.
func generateCandidates(void model.Void, box model.Box) []candidate {
	var out []candidate
	for _, o := range geometry.EnumerateOrientations(box.Width, box.Height, box.Length) {
		extents := o.Extents(box.Width, box.Height, box.Length)
		if extents.X > void.Extents.X || extents.Y > void.Extents.Y || extents.Z > void.Extents.Z {
			continue
		}
		slack := void.Extents.Sub(extents)
		xOffsets := sampleOffsets(slack.X)
		zOffsets := sampleOffsets(slack.Z)
		// Boxes always rest on the floor of the void on the y-axis; the
		// validator is what decides whether that floor actually supports
		// the box (§4.E).
		for _, dx := range xOffsets {
			for _, dz := range zOffsets {
				center := geometry.Vec3{
					X: void.Min.X + dx + extents.X/2,
					Y: void.Min.Y + extents.Y/2,
					Z: void.Min.Z + dz + extents.Z/2,
				}
				out = append(out, candidate{orientation: o, position: center, void: void})
			}
		}
	}
	return out
}

// sampleOffsets returns up to maxSamplesPerAxis evenly spaced offsets in
// [0, slack], always including 0 (flush against the void's low face).
func sampleOffsets(slack float64) []float64 {
	if slack <= 0 {
		return []float64{0}
	}
	n := maxSamplesPerAxis
	offsets := make([]float64, n)
	for i := 0; i < n; i++ {
		offsets[i] = slack * float64(i) / float64(n-1)
	}
	return offsets
}
