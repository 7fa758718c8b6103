package engine

import (
	"sort"

	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
	"github.com/fleetpack/truckload/internal/voidmgr"
)

// Pack runs the greedy best-first void-filling packer (component G). It
// sorts boxes by (rank(destination) ascending, weight descending), then for
// each box in turn scans every void and orientation for the single
// highest-scoring valid candidate, commits it, splits and prunes the void
// list, and reports progress through cfg.Observer. A box for which no valid
// candidate exists is reported unplaced rather than aborting the run.
func Pack(boxes []model.Box, truck model.TruckDimensions, cfg model.OptimizerConfig) (placed []model.PlacedBox, unplaced []model.Box) {
	truckAABB := truck.AABB()
	voids := voidmgr.Initial(truck)
	queue := SortQueue(boxes)

	for i, box := range queue {
		best, ok := bestCandidate(voids, box, truck, truckAABB, placed, cfg)
		if !ok || exceedsWeight(placed, box, cfg) {
			unplaced = append(unplaced, box)
		} else {
			extents := best.orientation.Extents(box.Width, box.Height, box.Length)
			pb := model.PlacedBox{Box: box, Position: best.position, Orientation: best.orientation}
			placed = append(placed, pb)

			voids = removeVoid(voids, best.void)
			voids = append(voids, voidmgr.Place(best.void, geometry.NewAABB(best.position, extents), cfg.Epsilon)...)
			voids = voidmgr.Prune(voids, placed, cfg.Epsilon, cfg.MaxVoids)
		}

		if cfg.Observer != nil {
			cfg.Observer.OnProgress(float64(i+1)/float64(len(queue)), len(placed))
		}
	}

	return placed, unplaced
}

// bestCandidate scans every void, sorted in the packer's consumption order,
// for the single highest-scoring valid placement of box.
func bestCandidate(voids []model.Void, box model.Box, truck model.TruckDimensions, truckAABB geometry.AABB, placed []model.PlacedBox, cfg model.OptimizerConfig) (candidate, bool) {
	sorted := voidmgr.SortForPlacement(voids)

	var best candidate
	bestScore := 0.0
	found := false

	for _, v := range sorted {
		for _, c := range generateCandidates(v, box) {
			if !valid(c, box, truckAABB, placed, cfg) {
				continue
			}
			s := score(c, box, truck, truckAABB, placed, cfg)
			if !found || s > bestScore {
				best, bestScore, found = c, s, true
			}
		}
	}

	return best, found
}

// SortQueue returns boxes ordered the way the packer driver consumes them:
// destination rank ascending (latest-unloaded stops first, for LIFO
// accessibility), then weight descending (§4.G step 1). Used by both Pack
// and the MCTS refiner so a tree search explores the same box order the
// greedy pass would.
func SortQueue(boxes []model.Box) []model.Box {
	queue := make([]model.Box, len(boxes))
	copy(queue, boxes)
	sort.SliceStable(queue, func(i, j int) bool {
		ri, rj := queue[i].Destination.Rank(), queue[j].Destination.Rank()
		if ri != rj {
			return ri < rj
		}
		return queue[i].Weight > queue[j].Weight
	})
	return queue
}

// removeVoid returns voids with the first void matching target's ID
// removed.
func removeVoid(voids []model.Void, target model.Void) []model.Void {
	out := make([]model.Void, 0, len(voids))
	removed := false
	for _, v := range voids {
		if !removed && v.ID == target.ID {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}
