package mcts

import (
	"math"

	"github.com/fleetpack/truckload/internal/model"
)

// EvaluateConfiguration is the MCTS reward function (§4.H): volume
// utilization bonus, center-of-gravity bonus, zone-compliance bonus, and an
// accessibility penalty for boxes buried deep and near the truck's
// centerline where they'd be hard to reach during unloading.
func EvaluateConfiguration(placed []model.PlacedBox, unplaced []model.Box, truck model.TruckDimensions, cfg model.OptimizerConfig) float64 {
	var reward float64

	truckVolume := truck.Width * truck.Length * truck.Height
	if truckVolume > 0 {
		var placedVolume float64
		for _, p := range placed {
			e := p.Extents()
			placedVolume += e.X * e.Y * e.Z
		}
		reward += 1000 * (placedVolume / truckVolume)
	}

	reward -= 800 * float64(len(unplaced))

	if len(placed) > 0 {
		var totalWeight, weightedY float64
		for _, p := range placed {
			totalWeight += p.Box.Weight
			weightedY += p.Box.Weight * p.Position.Y
		}
		if totalWeight > 0 {
			cogHeight := weightedY / totalWeight
			reward += 200 * (1 - cogHeight/truck.Height)
		}
	}

	backZ := truck.Length / 2
	for _, p := range placed {
		depth := backZ - p.Position.Z
		compliant := false
		switch p.Box.TemperatureZone {
		case model.ZoneFrozen:
			compliant = depth >= 0 && depth <= cfg.ZoneOffsets.Frozen
		case model.ZoneCold:
			compliant = depth > cfg.ZoneOffsets.Frozen && depth <= cfg.ZoneOffsets.Cold
		default:
			compliant = depth > cfg.ZoneOffsets.Cold
		}
		if compliant {
			reward += 20
		} else {
			reward -= 20
		}

		// Accessibility penalty: boxes that are both deep (high y) and
		// centered (small |x|) are hard to reach from either side door.
		centered := math.Max(0, 1-math.Abs(p.Position.X)/(truck.Width/2))
		depthFraction := p.Position.Y / truck.Height
		reward -= 15 * centered * depthFraction
	}

	return reward
}
