package engine

import (
	"sort"

	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
	"github.com/fleetpack/truckload/internal/voidmgr"
)

// Candidate is the exported shape of a scored placement, used by the MCTS
// refiner to build tree nodes without reaching into this package's
// unexported candidate-generation internals.
type Candidate struct {
	Position    geometry.Vec3
	Orientation geometry.Orientation
	Score       float64
}

// VoidsFor reconstructs the void list that would exist after greedily
// committing placed in order, by replaying §4.C's initialize/split/prune
// sequence. The MCTS refiner works from a (placed, queue) pair rather than
// carrying its own void-manager state, so it rebuilds voids on demand; this
// keeps engine the single owner of void bookkeeping.
func VoidsFor(truck model.TruckDimensions, placed []model.PlacedBox, cfg model.OptimizerConfig) []model.Void {
	voids := voidmgr.Initial(truck)
	for i, p := range placed {
		target, ok := containingVoid(voids, p.AABB())
		if !ok {
			continue
		}
		voids = removeVoid(voids, target)
		voids = append(voids, voidmgr.Place(target, p.AABB(), cfg.Epsilon)...)
		voids = voidmgr.Prune(voids, placed[:i+1], cfg.Epsilon, cfg.MaxVoids)
	}
	return voids
}

// containingVoid finds the void that the given box AABB was carved out of:
// the smallest void that contains it.
func containingVoid(voids []model.Void, boxAABB geometry.AABB) (model.Void, bool) {
	var best model.Void
	bestVolume := -1.0
	found := false
	for _, v := range voids {
		if !geometry.Contains(v.AABB(), boxAABB, 1e-6) {
			continue
		}
		if !found || v.Volume() < bestVolume {
			best, bestVolume, found = v, v.Volume(), true
		}
	}
	return best, found
}

// TopCandidates returns up to topN valid candidates for box against the
// current placed configuration, ranked by score descending (§4.H: "a
// candidate placement for the next box ... truncated to the top ~8 by a
// cheap version of §4.F").
func TopCandidates(box model.Box, truck model.TruckDimensions, placed []model.PlacedBox, cfg model.OptimizerConfig, topN int) []Candidate {
	if exceedsWeight(placed, box, cfg) {
		return nil
	}
	truckAABB := truck.AABB()
	voids := VoidsFor(truck, placed, cfg)

	var scored []Candidate
	for _, v := range voidmgr.SortForPlacement(voids) {
		for _, c := range generateCandidates(v, box) {
			if !valid(c, box, truckAABB, placed, cfg) {
				continue
			}
			scored = append(scored, Candidate{
				Position:    c.position,
				Orientation: c.orientation,
				Score:       score(c, box, truck, truckAABB, placed, cfg),
			})
		}
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// BestCandidate returns the single highest-scoring valid candidate for box,
// the same rule §4.G's greedy driver uses, for MCTS rollouts.
func BestCandidate(box model.Box, truck model.TruckDimensions, placed []model.PlacedBox, cfg model.OptimizerConfig) (Candidate, bool) {
	top := TopCandidates(box, truck, placed, cfg, 1)
	if len(top) == 0 {
		return Candidate{}, false
	}
	return top[0], true
}
