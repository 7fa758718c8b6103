package engine

import (
	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
)

// valid reports whether placing box at candidate c is legal: it must stay
// within the truck's interior, must not collide with any box already
// placed, and must rest on either the truck floor or on top of enough
// already-placed material to satisfy the configured support ratio (§4.E).
func valid(c candidate, box model.Box, truckAABB geometry.AABB, placed []model.PlacedBox, cfg model.OptimizerConfig) bool {
	extents := c.orientation.Extents(box.Width, box.Height, box.Length)
	boxAABB := geometry.NewAABB(c.position, extents)

	if !geometry.Contains(truckAABB, boxAABB, cfg.Epsilon) {
		return false
	}
	for _, p := range placed {
		if geometry.Overlap(boxAABB, p.AABB(), cfg.Epsilon) {
			return false
		}
	}
	return isSupported(boxAABB, truckAABB, placed, box.IsFragile, cfg)
}

// isSupported reports whether the base of boxAABB is covered, by at least
// the applicable support ratio, by either the truck floor or the top faces
// of already-placed boxes coplanar with the base (§4.E). Fragile boxes
// require FragileSupportRatio instead of SupportRatio.
func isSupported(boxAABB, truckAABB geometry.AABB, placed []model.PlacedBox, fragile bool, cfg model.OptimizerConfig) bool {
	required := cfg.SupportRatio
	if fragile {
		required = cfg.FragileSupportRatio
	}

	baseArea := (boxAABB.Max().X - boxAABB.Min().X) * (boxAABB.Max().Z - boxAABB.Min().Z)
	if baseArea <= 0 {
		return false
	}

	boxBaseY := boxAABB.Min().Y
	if abs(boxBaseY-truckAABB.Min().Y) <= cfg.Epsilon {
		return true // resting on the truck floor
	}

	var supported float64
	for _, p := range placed {
		pAABB := p.AABB()
		if abs(pAABB.Max().Y-boxBaseY) > cfg.Epsilon {
			continue // not coplanar with the box's base
		}
		supported += geometry.PlanarOverlapArea(boxAABB, pAABB, 1)
	}
	return supported/baseArea >= required
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// exceedsWeight reports whether adding box would push the cumulative placed
// weight over the configured capacity, with tolerance epsilon (§7, §8's
// weight-bound invariant).
func exceedsWeight(placed []model.PlacedBox, box model.Box, cfg model.OptimizerConfig) bool {
	total := box.Weight
	for _, p := range placed {
		total += p.Box.Weight
	}
	return total > cfg.MaxWeight+cfg.Epsilon
}
