package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position, orientation and scale in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Forward is the local X axis in world space
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// Right is the local Y axis in world space
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
}

// Up is the local Z axis in world space
func (t Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

// Axes returns forward, right and up, in this order
func (t Transform) Axes() [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{t.Forward(), t.Right(), t.Up()}
}

// ApproxEqual compares two transforms component-wise within epsilon.
// Rotations q and -q describe the same orientation and are considered equal.
func (t Transform) ApproxEqual(other Transform, epsilon float64) bool {
	if !t.Position.ApproxEqualThreshold(other.Position, epsilon) {
		return false
	}
	if !t.Scale.ApproxEqualThreshold(other.Scale, epsilon) {
		return false
	}

	return t.Rotation.ApproxEqualThreshold(other.Rotation, epsilon) ||
		t.Rotation.ApproxEqualThreshold(other.Rotation.Scale(-1), epsilon)
}
