package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// AABB Utility Function Tests
// =============================================================================

func TestAABBIntersectRay(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name        string
		origin      mgl64.Vec3
		direction   mgl64.Vec3
		maxDistance float64
		want        bool
	}{
		{"straight hit", mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{1, 0, 0}, 100, true},
		{"too short", mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{1, 0, 0}, 3, false},
		{"pointing away", mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{-1, 0, 0}, 100, false},
		{"parallel outside", mgl64.Vec3{-5, 2, 0}, mgl64.Vec3{1, 0, 0}, 100, false},
		{"parallel inside slab", mgl64.Vec3{-5, 0.5, 0.5}, mgl64.Vec3{1, 0, 0}, 100, true},
		{"from inside", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, 0.1, true},
		{"diagonal", mgl64.Vec3{-5, -5, -5}, mgl64.Vec3{1, 1, 1}.Normalize(), 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := aabb.IntersectRay(tt.origin, tt.direction, tt.maxDistance); got != tt.want {
				t.Errorf("IntersectRay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBClipRay(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tEnter, tExit, ok := aabb.ClipRay(mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{1, 0, 0}, 100)
	if !ok || tEnter != 4 || tExit != 6 {
		t.Errorf("ClipRay() = %v, %v, %v, want 4, 6, true", tEnter, tExit, ok)
	}

	tEnter, tExit, ok = aabb.ClipRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, 0.5)
	if !ok || tEnter != 0 || tExit != 0.5 {
		t.Errorf("ClipRay() from inside = %v, %v, %v, want 0, 0.5, true", tEnter, tExit, ok)
	}

	if _, _, ok := aabb.ClipRay(mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{1, 0, 0}, 3); ok {
		t.Error("segment ending before the box should not clip")
	}
}

func TestAABBUnion(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{-1, 0, 0}, Max: mgl64.Vec3{0, 1, 1}}
	b := AABB{Min: mgl64.Vec3{0, -2, 0}, Max: mgl64.Vec3{3, 0, 0.5}}

	union := a.Union(b)
	if union.Min != (mgl64.Vec3{-1, -2, 0}) || union.Max != (mgl64.Vec3{3, 1, 1}) {
		t.Errorf("Union() = %v, want {-1 -2 0} {3 1 1}", union)
	}
}
