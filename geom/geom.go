// Package geom holds the stateless projection and intersection helpers shared by the modal tools.
package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/modal/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// RayLength is how far a cursor ray is extended before intersecting planes.
const RayLength = 100000.0

// ErrDegenerate is returned when the view matrices cannot be inverted.
var ErrDegenerate = errors.New("degenerate view projection")

// View is the part of a viewport needed to move between screen and world space.
// Screen coordinates start at the top-left corner, Y pointing down.
type View interface {
	Size() (width, height int)
	ViewMatrix() mgl64.Mat4
	ProjectionMatrix() mgl64.Mat4
}

// CursorView is a View that also knows where the cursor is.
type CursorView interface {
	View
	CursorPosition() mgl64.Vec2
}

// Ray is a half line starting at Origin. Direction is normalized.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// CursorWorldRay deprojects the current cursor position.
// The matrices are read on every call since the camera may move between frames.
func CursorWorldRay(view CursorView) (Ray, error) {
	return ScreenRay(view, view.CursorPosition())
}

// ScreenRay deprojects a screen point into a world ray starting on the near plane
func ScreenRay(view View, point mgl64.Vec2) (Ray, error) {
	width, height := view.Size()
	if width <= 0 || height <= 0 {
		return Ray{}, fmt.Errorf("viewport size %dx%d: %w", width, height, ErrDegenerate)
	}

	modelview := view.ViewMatrix()
	projection := view.ProjectionMatrix()
	winY := float64(height) - point.Y()

	near, err := mgl64.UnProject(mgl64.Vec3{point.X(), winY, 0}, modelview, projection, 0, 0, width, height)
	if err != nil {
		return Ray{}, fmt.Errorf("unproject near point: %w", errors.Join(ErrDegenerate, err))
	}
	far, err := mgl64.UnProject(mgl64.Vec3{point.X(), winY, 1}, modelview, projection, 0, 0, width, height)
	if err != nil {
		return Ray{}, fmt.Errorf("unproject far point: %w", errors.Join(ErrDegenerate, err))
	}

	direction := far.Sub(near)
	if direction.Len() == 0 || !IsFinite(direction) {
		return Ray{}, ErrDegenerate
	}

	return Ray{Origin: near, Direction: direction.Normalize()}, nil
}

// LinePlaneIntersection intersects the line through origin and origin + direction * RayLength
// with a plane. Points behind the origin are returned too.
// ok is false when the line is parallel to the plane or the result is not finite.
func LinePlaneIntersection(origin, direction, planeOrigin, planeNormal mgl64.Vec3) (mgl64.Vec3, bool) {
	const epsilon = 1e-9

	segment := direction.Mul(RayLength)
	denom := segment.Dot(planeNormal)
	if math.Abs(denom) < epsilon {
		return mgl64.Vec3{}, false
	}

	t := planeOrigin.Sub(origin).Dot(planeNormal) / denom
	point := origin.Add(segment.Mul(t))
	if !IsFinite(point) {
		return mgl64.Vec3{}, false
	}

	return point, true
}

// ProjectWorldToScreen projects a world point on screen.
// With clamp, the result is kept within [0, width] x [0, height].
func ProjectWorldToScreen(view View, point mgl64.Vec3, clamp bool) mgl64.Vec2 {
	width, height := view.Size()
	win := mgl64.Project(point, view.ViewMatrix(), view.ProjectionMatrix(), 0, 0, width, height)

	screen := mgl64.Vec2{win.X(), float64(height) - win.Y()}
	if clamp {
		screen[0] = mgl64.Clamp(screen[0], 0, float64(width))
		screen[1] = mgl64.Clamp(screen[1], 0, float64(height))
	}

	return screen
}

// AverageLocation returns the arithmetic mean of the objects positions
func AverageLocation(objects []actor.Object) mgl64.Vec3 {
	var sum mgl64.Vec3
	if len(objects) == 0 {
		return sum
	}

	for _, object := range objects {
		sum = sum.Add(object.GetTransform().Position)
	}

	n := float64(len(objects))

	return mgl64.Vec3{sum.X() / n, sum.Y() / n, sum.Z() / n}
}

// SurfaceAlignmentRotation rotates current so that its localUp axis points along normal.
// The correction is a pitch around the local Y axis followed by a tilt around the local X axis,
// which keeps the heading instead of flipping it like a plain shortest arc would.
// Anti-parallel inputs fall back to the shortest arc.
func SurfaceAlignmentRotation(current mgl64.Quat, localUp, normal mgl64.Vec3) mgl64.Quat {
	const epsilon = 1e-9

	localUp = localUp.Normalize()
	normal = normal.Normalize()
	worldUp := current.Rotate(localUp)

	dot := worldUp.Dot(normal)
	if dot > 1-epsilon {
		return current
	}
	if dot < -1+epsilon {
		return mgl64.QuatBetweenVectors(worldUp, normal).Mul(current).Normalize()
	}

	// Express the target in a frame where localUp is +Z
	toZ := mgl64.QuatBetweenVectors(localUp, mgl64.Vec3{0, 0, 1})
	target := toZ.Rotate(current.Inverse().Rotate(normal))

	pitch := math.Atan2(target.X(), target.Z())
	tilt := -math.Asin(mgl64.Clamp(target.Y(), -1, 1))

	local := mgl64.QuatRotate(pitch, mgl64.Vec3{0, 1, 0}).Mul(mgl64.QuatRotate(tilt, mgl64.Vec3{1, 0, 0}))
	local = toZ.Inverse().Mul(local).Mul(toZ)

	return current.Mul(local).Normalize()
}

// ClosestPointOnLine projects point on the infinite line through lineOrigin along direction
func ClosestPointOnLine(lineOrigin, direction, point mgl64.Vec3) mgl64.Vec3 {
	if direction.Len() == 0 {
		return lineOrigin
	}

	direction = direction.Normalize()

	return lineOrigin.Add(direction.Mul(point.Sub(lineOrigin).Dot(direction)))
}

// ProjectOnPlane removes the normal component of point relative to planeOrigin
func ProjectOnPlane(planeOrigin, normal, point mgl64.Vec3) mgl64.Vec3 {
	if normal.Len() == 0 {
		return point
	}

	normal = normal.Normalize()

	return point.Sub(normal.Mul(point.Sub(planeOrigin).Dot(normal)))
}

// SignedAngle returns the angle in radians rotating from into to around axis (right handed)
func SignedAngle(from, to, axis mgl64.Vec3) float64 {
	return math.Atan2(from.Cross(to).Dot(axis.Normalize()), from.Dot(to))
}

// IsFinite reports whether every component is neither NaN nor infinite
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}

	return true
}
