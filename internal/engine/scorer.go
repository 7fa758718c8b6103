package engine

import (
	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
)

// score returns the scalar placement quality of candidate c, to be
// maximized across all candidates for a box (§4.F). It is a weighted
// additive sum; only relative magnitudes matter.
func score(c candidate, box model.Box, truck model.TruckDimensions, truckAABB geometry.AABB, placed []model.PlacedBox, cfg model.OptimizerConfig) float64 {
	extents := c.orientation.Extents(box.Width, box.Height, box.Length)
	boxAABB := geometry.NewAABB(c.position, extents)
	boxMin, boxMax := boxAABB.Min(), boxAABB.Max()

	var s float64

	// Low placement bonus: stability improves as the box sits lower.
	s += truck.Height - c.position.Y

	// Heavy-low bonus.
	s += (box.Weight / 100) * (truck.Height - c.position.Y)

	// Centered bonus.
	s += -abs(c.position.X) - abs(c.position.Z)

	// Wall/floor/back contact bonus. Floor is the largest.
	truckMin, truckMax := truckAABB.Min(), truckAABB.Max()
	floorContact := abs(boxMin.Y-truckMin.Y) <= cfg.Epsilon
	if floorContact {
		s += 100
	}
	lateralWalls := 0
	if abs(boxMin.X-truckMin.X) <= cfg.Epsilon || abs(boxMax.X-truckMax.X) <= cfg.Epsilon {
		s += 40
		lateralWalls++
	}
	if abs(boxMin.Z-truckMin.Z) <= cfg.Epsilon || abs(boxMax.Z-truckMax.Z) <= cfg.Epsilon {
		s += 30
		lateralWalls++
	}

	// Box-to-box contact bonus. Lateral contact is worth more than vertical.
	// These contacts do not count toward the structural corner/edge bonus
	// below, which is walls-only per §4.F.
	for _, p := range placed {
		pAABB := p.AABB()
		pMin, pMax := pAABB.Min(), pAABB.Max()
		if abs(boxMin.X-pMax.X) <= cfg.Epsilon || abs(boxMax.X-pMin.X) <= cfg.Epsilon {
			if overlap := geometry.PlanarOverlapArea(boxAABB, pAABB, 0); overlap > 0 {
				s += 150
			}
		}
		if abs(boxMin.Z-pMax.Z) <= cfg.Epsilon || abs(boxMax.Z-pMin.Z) <= cfg.Epsilon {
			if overlap := geometry.PlanarOverlapArea(boxAABB, pAABB, 2); overlap > 0 {
				s += 150
			}
		}
		if abs(boxMin.Y-pMax.Y) <= cfg.Epsilon {
			if overlap := geometry.PlanarOverlapArea(boxAABB, pAABB, 1); overlap > 0 {
				s += 70
			}
		}
	}

	// Temperature-zone compliance.
	if zoneCompliant(box, c.position, truck, cfg) {
		s += 500
	} else {
		s -= 500
	}

	// Fragility shaping.
	if box.IsFragile {
		s += truck.Height - c.position.Y
		for _, p := range placed {
			if p.Box.IsFragile || p.Position.Y <= c.position.Y {
				continue
			}
			overlap := geometry.PlanarOverlapArea(boxAABB, p.AABB(), 1)
			baseArea := (boxMax.X - boxMin.X) * (boxMax.Z - boxMin.Z)
			if baseArea > 0 && overlap/baseArea >= 0.3 {
				s -= 300
			}
		}
	}

	// LIFO shaping.
	target := float64(box.Destination.Rank()) / 3
	normalizedZ := (c.position.Z + truck.Length/2) / truck.Length
	s -= 200 * abs(target-normalizedZ)

	// Structural bonus: corners (floor + at least 2 walls) and edges
	// (floor + exactly 1 wall).
	if floorContact && lateralWalls >= 2 {
		s += 120
	} else if floorContact && lateralWalls == 1 {
		s += 50
	}

	return s
}

// zoneCompliant reports whether position satisfies box's temperature zone
// depth band measured from the truck's rear (+z) door (§4.F).
func zoneCompliant(box model.Box, position geometry.Vec3, truck model.TruckDimensions, cfg model.OptimizerConfig) bool {
	backZ := truck.Length / 2
	depth := backZ - position.Z
	switch box.TemperatureZone {
	case model.ZoneFrozen:
		return depth >= 0 && depth <= cfg.ZoneOffsets.Frozen
	case model.ZoneCold:
		return depth > cfg.ZoneOffsets.Frozen && depth <= cfg.ZoneOffsets.Cold
	default:
		return depth > cfg.ZoneOffsets.Cold
	}
}
