package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Helper functions
func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

// =============================================================================
// NewActor Tests
// =============================================================================

func TestNewActor_DefaultsTransform(t *testing.T) {
	a := NewActor("cube", Transform{Position: mgl64.Vec3{1, 2, 3}}, &Box{HalfExtents: mgl64.Vec3{1, 1, 1}})

	if a.Transform.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want {1 1 1}", a.Transform.Scale)
	}
	if a.Transform.Rotation != mgl64.QuatIdent() {
		t.Errorf("Rotation = %v, want identity", a.Transform.Rotation)
	}

	aabb := a.Shape.GetAABB()
	if !vec3Equal(aabb.Min, mgl64.Vec3{0, 1, 2}, 1e-9) || !vec3Equal(aabb.Max, mgl64.Vec3{2, 3, 4}, 1e-9) {
		t.Errorf("AABB = %v, want {0 1 2}-{2 3 4}", aabb)
	}
}

func TestActor_SetTransformRefreshesBounds(t *testing.T) {
	a := NewActor("ball", NewTransform(), &Sphere{Radius: 1})

	transform := NewTransform()
	transform.Position = mgl64.Vec3{10, 0, 0}
	transform.Scale = mgl64.Vec3{2, 1, 1}
	a.SetTransform(transform)

	aabb := a.Shape.GetAABB()
	if !vec3Equal(aabb.Min, mgl64.Vec3{8, -2, -2}, 1e-9) {
		t.Errorf("AABB.Min = %v, want {8 -2 -2}", aabb.Min)
	}
}

func TestActor_CloneIsIndependent(t *testing.T) {
	a := NewActor("cube", NewTransform(), &Box{HalfExtents: mgl64.Vec3{1, 1, 1}})
	clone := a.Clone()

	moved := clone.GetTransform()
	moved.Position = mgl64.Vec3{5, 5, 5}
	clone.SetTransform(moved)

	if a.Transform.Position != (mgl64.Vec3{}) {
		t.Errorf("original moved with its clone: %v", a.Transform.Position)
	}
	if a.Shape.GetAABB() == clone.Shape.GetAABB() {
		t.Error("clone shares bounds with the original")
	}
}

// =============================================================================
// Raycast Tests
// =============================================================================

func TestActor_Raycast(t *testing.T) {
	tests := []struct {
		name       string
		shape      ShapeInterface
		transform  Transform
		origin     mgl64.Vec3
		direction  mgl64.Vec3
		wantHit    bool
		wantPoint  mgl64.Vec3
		wantNormal mgl64.Vec3
	}{
		{
			name:       "box from above",
			shape:      &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			transform:  NewTransform(),
			origin:     mgl64.Vec3{0, 0, 10},
			direction:  mgl64.Vec3{0, 0, -1},
			wantHit:    true,
			wantPoint:  mgl64.Vec3{0, 0, 1},
			wantNormal: mgl64.Vec3{0, 0, 1},
		},
		{
			name:       "box from the side",
			shape:      &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			transform:  NewTransform(),
			origin:     mgl64.Vec3{-10, 0.5, 0},
			direction:  mgl64.Vec3{1, 0, 0},
			wantHit:    true,
			wantPoint:  mgl64.Vec3{-1, 0.5, 0},
			wantNormal: mgl64.Vec3{-1, 0, 0},
		},
		{
			name:  "rotated box",
			shape: &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			transform: Transform{
				Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}),
				Scale:    mgl64.Vec3{1, 1, 3},
			},
			origin:     mgl64.Vec3{0, -10, 0},
			direction:  mgl64.Vec3{0, 1, 0},
			wantHit:    true,
			wantPoint:  mgl64.Vec3{0, -3, 0},
			wantNormal: mgl64.Vec3{0, -1, 0},
		},
		{
			name:      "box missed",
			shape:     &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			transform: NewTransform(),
			origin:    mgl64.Vec3{5, 5, 10},
			direction: mgl64.Vec3{0, 0, -1},
			wantHit:   false,
		},
		{
			name:      "box behind the origin",
			shape:     &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			transform: NewTransform(),
			origin:    mgl64.Vec3{0, 0, 10},
			direction: mgl64.Vec3{0, 0, 1},
			wantHit:   false,
		},
		{
			name:       "sphere",
			shape:      &Sphere{Radius: 2},
			transform:  NewTransform(),
			origin:     mgl64.Vec3{10, 0, 0},
			direction:  mgl64.Vec3{-1, 0, 0},
			wantHit:    true,
			wantPoint:  mgl64.Vec3{2, 0, 0},
			wantNormal: mgl64.Vec3{1, 0, 0},
		},
		{
			name:      "inside sphere",
			shape:     &Sphere{Radius: 2},
			transform: NewTransform(),
			origin:    mgl64.Vec3{0, 0, 0},
			direction: mgl64.Vec3{1, 0, 0},
			wantHit:   false,
		},
		{
			name:       "ground plane",
			shape:      &Plane{Normal: mgl64.Vec3{0, 0, 1}},
			transform:  NewTransform(),
			origin:     mgl64.Vec3{3, 4, 10},
			direction:  mgl64.Vec3{0, 0, -1},
			wantHit:    true,
			wantPoint:  mgl64.Vec3{3, 4, 0},
			wantNormal: mgl64.Vec3{0, 0, 1},
		},
		{
			name:       "ground plane from below",
			shape:      &Plane{Normal: mgl64.Vec3{0, 0, 1}, Distance: 2},
			transform:  NewTransform(),
			origin:     mgl64.Vec3{0, 0, -10},
			direction:  mgl64.Vec3{0, 0, 1},
			wantHit:    true,
			wantPoint:  mgl64.Vec3{0, 0, -2},
			wantNormal: mgl64.Vec3{0, 0, -1},
		},
		{
			name:      "parallel to plane",
			shape:     &Plane{Normal: mgl64.Vec3{0, 0, 1}},
			transform: NewTransform(),
			origin:    mgl64.Vec3{0, 0, 1},
			direction: mgl64.Vec3{1, 0, 0},
			wantHit:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewActor(tt.name, tt.transform, tt.shape)
			hit, ok := a.Raycast(tt.origin, tt.direction, 1000)
			if ok != tt.wantHit {
				t.Fatalf("Raycast() hit = %v, want %v", ok, tt.wantHit)
			}
			if !ok {
				return
			}
			if !vec3Equal(hit.Point, tt.wantPoint, 1e-9) {
				t.Errorf("Point = %v, want %v", hit.Point, tt.wantPoint)
			}
			if !vec3Equal(hit.Normal, tt.wantNormal, 1e-9) {
				t.Errorf("Normal = %v, want %v", hit.Normal, tt.wantNormal)
			}
			if !floatEqual(hit.Distance, hit.Point.Sub(tt.origin).Len(), 1e-9) {
				t.Errorf("Distance = %v, want %v", hit.Distance, hit.Point.Sub(tt.origin).Len())
			}
			if hit.Actor != a {
				t.Error("hit does not reference the traced actor")
			}
		})
	}
}

func TestActor_RaycastMaxDistance(t *testing.T) {
	a := NewActor("cube", NewTransform(), &Box{HalfExtents: mgl64.Vec3{1, 1, 1}})

	if _, ok := a.Raycast(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{0, 0, -1}, 5); ok {
		t.Error("expected no hit beyond max distance")
	}
}

func TestActor_RaycastWithoutShape(t *testing.T) {
	a := NewActor("empty", NewTransform(), nil)

	if _, ok := a.Raycast(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 100); ok {
		t.Error("expected no hit on an actor without shape")
	}
}
