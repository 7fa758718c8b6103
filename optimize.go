// Package truckload is the public API of the truck loading optimizer: a
// single Optimize entry point over plain data types, with no CLI, file, or
// network surface of its own (§6). Callers supply boxes, truck dimensions,
// and a tuning config, and consume the resulting placement, scores, and
// loading sequence; everything else lives under internal/.
package truckload

import (
	"context"

	"github.com/fleetpack/truckload/internal/engine"
	"github.com/fleetpack/truckload/internal/mcts"
	"github.com/fleetpack/truckload/internal/model"
	"github.com/fleetpack/truckload/internal/scoring"
	"github.com/fleetpack/truckload/internal/sequence"
)

// Re-exported data model types, so callers depend only on this package.
type (
	Box              = model.Box
	TruckDimensions  = model.TruckDimensions
	PlacedBox        = model.PlacedBox
	PlacementResult  = model.PlacementResult
	OptimizerConfig  = model.OptimizerConfig
	ProgressObserver = model.ProgressObserver
	ZoneOffsets      = model.ZoneOffsets
	TemperatureZone  = model.TemperatureZone
	Destination      = model.Destination
)

// Re-exported constants and constructors.
const (
	ZoneRegular = model.ZoneRegular
	ZoneCold    = model.ZoneCold
	ZoneFrozen  = model.ZoneFrozen

	Stop1 = model.Stop1
	Stop2 = model.Stop2
	Stop3 = model.Stop3
	Stop4 = model.Stop4
)

// NewBox constructs a Box with a fresh ID.
func NewBox(label string, width, height, length, weight float64, zone TemperatureZone, fragile bool, dest Destination) Box {
	return model.NewBox(label, width, height, length, weight, zone, fragile, dest)
}

// DefaultConfig returns the §6 default OptimizerConfig.
func DefaultConfig() OptimizerConfig {
	return model.DefaultConfig()
}

// Optimize runs the full pipeline: input validation, the greedy
// void-filling packer, the optional MCTS refinement pass for small inputs,
// global scoring, and loading-sequence generation (§2). It never returns an
// error for placement infeasibility; that is reported through
// PlacementResult.Unplaced per §7. The only error path is a rejected
// precondition: a malformed box or truck.
func Optimize(ctx context.Context, boxes []Box, truck TruckDimensions, cfg OptimizerConfig) (PlacementResult, error) {
	if err := truck.Validate(); err != nil {
		return PlacementResult{}, err
	}
	for i, b := range boxes {
		if err := b.Validate(i); err != nil {
			return PlacementResult{}, err
		}
	}

	placed, unplaced := engine.Pack(boxes, truck, cfg)

	budgetExhausted := false
	if cfg.MCTSEnabled && len(boxes) <= cfg.MCTSThreshold {
		refined, exhausted, err := mcts.Refine(ctx, boxes, placed, unplaced, truck, cfg)
		if err == nil {
			placed, unplaced = refined.Placed, refined.Unplaced
		}
		budgetExhausted = exhausted
	}

	result := PlacementResult{
		Placed:              placed,
		Unplaced:            unplaced,
		Scores:              scoring.Evaluate(placed, truck, cfg),
		LoadingSequence:     sequence.Generate(placed),
		MCTSBudgetExhausted: budgetExhausted,
	}
	return result, nil
}
