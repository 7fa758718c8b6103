// Package voidmgr maintains the list of empty axis-aligned cuboids a truck
// is split into as boxes are placed. It generalizes the teacher's 2D
// guillotinePacker free-rectangle bookkeeping (internal/engine/optimizer.go's
// splitAroundPlacement/pruneContained) to three axes, using a loose six-way
// split that deliberately allows voids to overlap (§4.C and §9's decided
// Open Question: loose split, not tight).
package voidmgr

import (
	"sort"

	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
)

// Initial returns the single void covering the whole truck interior.
func Initial(truck model.TruckDimensions) []model.Void {
	box := truck.AABB()
	return []model.Void{model.NewVoid(box.Min(), box.Extents())}
}

// Place splits void around the placed box's AABB, producing up to six slabs
// (one per face of the original void not covered by the box) spanning the
// full extent of the original void on the other two axes. Slabs thinner than
// eps are discarded. The original void is not included in the result.
func Place(void model.Void, placedAABB geometry.AABB, eps float64) []model.Void {
	voidMin, voidMax := void.Min, void.Min.Add(void.Extents)
	boxMin, boxMax := placedAABB.Min(), placedAABB.Max()

	var out []model.Void

	add := func(min, max geometry.Vec3) {
		extents := max.Sub(min)
		if extents.X < eps || extents.Y < eps || extents.Z < eps {
			return
		}
		out = append(out, model.NewVoid(min, extents))
	}

	// -x slab: from void's lower x face up to the box's lower x face.
	add(voidMin, geometry.Vec3{X: boxMin.X, Y: voidMax.Y, Z: voidMax.Z})
	// +x slab: from the box's upper x face to the void's upper x face.
	add(geometry.Vec3{X: boxMax.X, Y: voidMin.Y, Z: voidMin.Z}, voidMax)
	// -y slab (below the box).
	add(voidMin, geometry.Vec3{X: voidMax.X, Y: boxMin.Y, Z: voidMax.Z})
	// +y slab (above the box).
	add(geometry.Vec3{X: voidMin.X, Y: boxMax.Y, Z: voidMin.Z}, voidMax)
	// -z slab.
	add(voidMin, geometry.Vec3{X: voidMax.X, Y: voidMax.Y, Z: boxMin.Z})
	// +z slab.
	add(geometry.Vec3{X: voidMin.X, Y: voidMin.Y, Z: boxMax.Z}, voidMax)

	return out
}

// Prune removes voids that have collapsed to near-nothing or that are
// mostly consumed by placed boxes, then sorts and caps the survivors
// (§4.C). placed is the full list of placed boxes, not just the most recent
// one, since an earlier void can be invalidated by any later placement.
func Prune(voids []model.Void, placed []model.PlacedBox, eps float64, maxVoids int) []model.Void {
	survivors := make([]model.Void, 0, len(voids))
	for _, v := range voids {
		if v.Extents.X < eps && v.Extents.Y < eps && v.Extents.Z < eps {
			continue
		}
		if mostlyConsumed(v, placed) {
			continue
		}
		survivors = append(survivors, v)
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		ci, cj := survivors[i].Center(), survivors[j].Center()
		if ci.Y != cj.Y {
			return ci.Y < cj.Y
		}
		return survivors[i].Volume() < survivors[j].Volume()
	})

	if maxVoids > 0 && len(survivors) > maxVoids {
		survivors = survivors[:maxVoids]
	}
	return survivors
}

// mostlyConsumed reports whether more than 80% of the void's volume is
// covered by placed boxes.
func mostlyConsumed(v model.Void, placed []model.PlacedBox) bool {
	volume := v.Volume()
	if volume <= 0 {
		return true
	}
	vBox := v.AABB()
	var consumed float64
	for _, p := range placed {
		consumed += geometry.OverlapVolume(vBox, p.AABB())
	}
	return consumed > 0.8*volume
}

// SortForPlacement orders voids the way the packer driver consumes them:
// ascending y (prefer lower, more accessible voids), then ascending volume
// (prefer the tightest fit), then descending z (prefer voids toward the
// rear of the truck, §4.G step 3a).
func SortForPlacement(voids []model.Void) []model.Void {
	sorted := make([]model.Void, len(voids))
	copy(sorted, voids)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := sorted[i].Center(), sorted[j].Center()
		if ci.Y != cj.Y {
			return ci.Y < cj.Y
		}
		if sorted[i].Volume() != sorted[j].Volume() {
			return sorted[i].Volume() < sorted[j].Volume()
		}
		return ci.Z > cj.Z
	})
	return sorted
}
