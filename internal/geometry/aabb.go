package geometry

import "math"

// AABB is an axis-aligned bounding box expressed as a center and positive
// half-extents, mirroring the teacher's (center, extents) rect convention
// generalized from two to three axes.
type AABB struct {
	Center Vec3
	Half   Vec3 // half-extents; always >= 0 on each axis
}

// NewAABB builds an AABB from a center point and full extents (width,
// height, length).
func NewAABB(center, extents Vec3) AABB {
	return AABB{Center: center, Half: extents.Scale(0.5)}
}

// FromMinExtents builds an AABB from a lower corner and full extents, the
// representation voids are stored in.
func FromMinExtents(min, extents Vec3) AABB {
	half := extents.Scale(0.5)
	return AABB{Center: min.Add(half), Half: half}
}

// Min returns the lower corner of the box.
func (a AABB) Min() Vec3 {
	return a.Center.Sub(a.Half)
}

// Max returns the upper corner of the box.
func (a AABB) Max() Vec3 {
	return a.Center.Add(a.Half)
}

// Extents returns the full (non-half) size on each axis.
func (a AABB) Extents() Vec3 {
	return a.Half.Scale(2)
}

// Volume returns the box's volume.
func (a AABB) Volume() float64 {
	e := a.Extents()
	return e.X * e.Y * e.Z
}

// Overlap reports whether a and b intersect by more than eps on every axis.
// Boxes that merely touch (share a face) do not count as overlapping.
func Overlap(a, b AABB, eps float64) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	return aMin.X < bMax.X-eps && aMax.X > bMin.X+eps &&
		aMin.Y < bMax.Y-eps && aMax.Y > bMin.Y+eps &&
		aMin.Z < bMax.Z-eps && aMax.Z > bMin.Z+eps
}

// OverlapVolume returns the volume of the intersection of a and b (zero if
// they don't overlap).
func OverlapVolume(a, b AABB) float64 {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()

	dx := math.Min(aMax.X, bMax.X) - math.Max(aMin.X, bMin.X)
	dy := math.Min(aMax.Y, bMax.Y) - math.Max(aMin.Y, bMin.Y)
	dz := math.Min(aMax.Z, bMax.Z) - math.Max(aMin.Z, bMin.Z)

	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}
	return dx * dy * dz
}

// Contains reports whether inner is fully inside outer, within tolerance eps
// (each inner face may be up to eps outside the corresponding outer face).
func Contains(outer, inner AABB, eps float64) bool {
	oMin, oMax := outer.Min(), outer.Max()
	iMin, iMax := inner.Min(), inner.Max()
	return iMin.X >= oMin.X-eps && iMax.X <= oMax.X+eps &&
		iMin.Y >= oMin.Y-eps && iMax.Y <= oMax.Y+eps &&
		iMin.Z >= oMin.Z-eps && iMax.Z <= oMax.Z+eps
}

// PlanarOverlapArea returns the overlap area of the two boxes' projections
// onto the plane perpendicular to the given axis (0=x, 1=y, 2=z). It ignores
// the boxes' extent along that axis entirely; callers check coplanarity
// separately.
func PlanarOverlapArea(a, b AABB, axis int) float64 {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()

	var d1, d2 float64
	switch axis {
	case 0: // project onto y-z
		d1 = math.Min(aMax.Y, bMax.Y) - math.Max(aMin.Y, bMin.Y)
		d2 = math.Min(aMax.Z, bMax.Z) - math.Max(aMin.Z, bMin.Z)
	case 1: // project onto x-z
		d1 = math.Min(aMax.X, bMax.X) - math.Max(aMin.X, bMin.X)
		d2 = math.Min(aMax.Z, bMax.Z) - math.Max(aMin.Z, bMin.Z)
	default: // project onto x-y
		d1 = math.Min(aMax.X, bMax.X) - math.Max(aMin.X, bMin.X)
		d2 = math.Min(aMax.Y, bMax.Y) - math.Max(aMin.Y, bMin.Y)
	}
	if d1 <= 0 || d2 <= 0 {
		return 0
	}
	return d1 * d2
}
