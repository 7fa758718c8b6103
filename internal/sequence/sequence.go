// Package sequence derives the loading sequence from a finished placement
// (§4.J). It is new code, grounded on the teacher's sort.Slice comparator
// idiom used throughout _examples/piwi3910-cnc-calculator/internal/engine/optimizer.go.
package sequence

import (
	"sort"

	"github.com/fleetpack/truckload/internal/model"
)

// Generate sorts placed boxes by (rank(destination) ascending, isFragile
// ascending, weight descending), the load-in order; the reverse is the
// unload order. This is a pure derivation from the final placement with no
// feedback into it.
func Generate(placed []model.PlacedBox) []model.PlacedBox {
	out := make([]model.PlacedBox, len(placed))
	copy(out, placed)

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Box.Destination.Rank(), out[j].Box.Destination.Rank()
		if ri != rj {
			return ri < rj
		}
		if out[i].Box.IsFragile != out[j].Box.IsFragile {
			return !out[i].Box.IsFragile
		}
		return out[i].Box.Weight > out[j].Box.Weight
	})

	return out
}
