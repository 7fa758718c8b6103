// Package scoring computes the three global quality metrics of §4.I:
// stability, safety, and utilization, each clamped to [0, 100]. It is new
// code, grounded on the teacher's percentage-metric style in
// model.SheetResult.Efficiency (_examples/piwi3910-cnc-calculator/internal/model/model.go),
// generalized from a single sheet-utilization ratio to three weighted
// placement metrics.
package scoring

import (
	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
)

// Evaluate computes Stability, Safety, and Utilization for a completed
// placement.
func Evaluate(placed []model.PlacedBox, truck model.TruckDimensions, cfg model.OptimizerConfig) model.Scores {
	return model.Scores{
		Stability:   stability(placed, truck),
		Safety:      safety(placed, truck, cfg),
		Utilization: utilization(placed, truck, cfg),
	}
}

// centerOfGravity returns the mass-weighted centroid of placed, or the
// truck's floor center if nothing is placed.
func centerOfGravity(placed []model.PlacedBox, truck model.TruckDimensions) (x, y, z, totalWeight float64) {
	for _, p := range placed {
		w := p.Box.Weight
		totalWeight += w
		x += w * p.Position.X
		y += w * p.Position.Y
		z += w * p.Position.Z
	}
	if totalWeight == 0 {
		return 0, 0, 0, 0
	}
	return x / totalWeight, y / totalWeight, z / totalWeight, totalWeight
}

func stability(placed []model.PlacedBox, truck model.TruckDimensions) float64 {
	s := 100.0
	cogX, cogY, cogZ, totalWeight := centerOfGravity(placed, truck)
	if totalWeight == 0 {
		return s
	}

	heightLimit := 0.6 * truck.Height
	if cogY > heightLimit {
		s -= 100 * (cogY - heightLimit) / truck.Height
	}
	s -= 40 * abs(cogX) / (truck.Width / 2)
	s -= 40 * abs(cogZ) / (truck.Length / 2)

	return clamp(s)
}

func safety(placed []model.PlacedBox, truck model.TruckDimensions, cfg model.OptimizerConfig) float64 {
	s := 100.0

	var totalWeight float64
	for _, p := range placed {
		totalWeight += p.Box.Weight
	}
	if totalWeight > cfg.MaxWeight {
		s -= 30
	}

	highFragile := 0
	for _, p := range placed {
		if p.Box.IsFragile && p.Position.Y > 0.7*truck.Height {
			highFragile++
		}
	}
	s -= 5 * float64(highFragile)

	s -= 10 * float64(collisionCount(placed, cfg.Epsilon))

	return clamp(s)
}

// collisionCount counts overlapping AABB pairs among placed, which should
// be zero if the packer's invariants hold (§8.1).
func collisionCount(placed []model.PlacedBox, eps float64) int {
	count := 0
	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			if overlaps(placed[i], placed[j], eps) {
				count++
			}
		}
	}
	return count
}

func utilization(placed []model.PlacedBox, truck model.TruckDimensions, cfg model.OptimizerConfig) float64 {
	truckVolume := truck.Width * truck.Length * truck.Height
	var placedVolume, totalWeight float64
	for _, p := range placed {
		e := p.Extents()
		placedVolume += e.X * e.Y * e.Z
		totalWeight += p.Box.Weight
	}

	var volumePct, weightPct float64
	if truckVolume > 0 {
		volumePct = 100 * placedVolume / truckVolume
	}
	if cfg.MaxWeight > 0 {
		weightPct = 100 * totalWeight / cfg.MaxWeight
	}

	return clamp(0.6*volumePct + 0.4*weightPct)
}

func overlaps(a, b model.PlacedBox, eps float64) bool {
	return geometry.Overlap(a.AABB(), b.AABB(), eps)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
