package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// IntersectRay reports whether the segment origin + direction * [0, maxDistance] touches the box
func (a AABB) IntersectRay(origin, direction mgl64.Vec3, maxDistance float64) bool {
	tMin, tMax, _, ok := slab(origin, direction, a.Min, a.Max)
	if !ok {
		return false
	}

	return tMax >= 0 && tMin <= maxDistance
}

// ClipRay returns the part of the segment origin + direction * [0, maxDistance] inside the box
func (a AABB) ClipRay(origin, direction mgl64.Vec3, maxDistance float64) (tEnter, tExit float64, ok bool) {
	tMin, tMax, _, ok := slab(origin, direction, a.Min, a.Max)
	if !ok || tMax < 0 || tMin > maxDistance {
		return 0, 0, false
	}

	return math.Max(tMin, 0), math.Min(tMax, maxDistance), true
}

// Union returns the smallest box holding both boxes
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a.Min.X(), other.Min.X()), math.Min(a.Min.Y(), other.Min.Y()), math.Min(a.Min.Z(), other.Min.Z())},
		Max: mgl64.Vec3{math.Max(a.Max.X(), other.Max.X()), math.Max(a.Max.Y(), other.Max.Y()), math.Max(a.Max.Z(), other.Max.Z())},
	}
}

// slab clips a ray against an axis-aligned box.
// entryAxis is the axis of the face the ray enters through, -1 when the origin is inside on every axis.
func slab(origin, direction, min, max mgl64.Vec3) (tMin, tMax float64, entryAxis int, ok bool) {
	const epsilon = 1e-12

	tMin = math.Inf(-1)
	tMax = math.Inf(1)
	entryAxis = -1

	for i := range 3 {
		if math.Abs(direction[i]) < epsilon {
			// Parallel to the slab: reject if the origin lies outside of it
			if origin[i] < min[i] || origin[i] > max[i] {
				return 0, 0, -1, false
			}
			continue
		}

		t1 := (min[i] - origin[i]) / direction[i]
		t2 := (max[i] - origin[i]) / direction[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tMin {
			tMin = t1
			entryAxis = i
		}
		tMax = math.Min(tMax, t2)

		if tMin > tMax {
			return 0, 0, -1, false
		}
	}

	return tMin, tMax, entryAxis, true
}
