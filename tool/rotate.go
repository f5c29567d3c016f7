package tool

import (
	"math"

	"github.com/akmonengine/modal/axislock"
	"github.com/akmonengine/modal/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Rotate turns the selection around the pivot by the angle the cursor sweeps around it on screen.
// In trackball mode the axis follows the cursor motion instead.
type Rotate struct {
	base

	lastVector mgl64.Vec3
	lastHit    mgl64.Vec3
	lastCursor mgl64.Vec2
	trackball  bool
	// pending angle of the Ctrl stepping, in radians
	stepRemainder float64
}

func NewRotate() *Rotate {
	return &Rotate{base: base{kind: KindRotate}}
}

func (r *Rotate) Begin(ctx *Context) error {
	if err := r.begin(ctx); err != nil {
		return err
	}

	r.lastCursor = ctx.Viewport.CursorPosition()
	if hit, ok := r.intersect(ctx); ok {
		r.lastHit = hit
		r.lastVector = safeNormal(hit.Sub(r.group.Location()))
	}

	return nil
}

// Trackball reports whether the free rotation mode is on
func (r *Rotate) Trackball() bool {
	return r.trackball
}

// ToggleTrackball switches between the view axis sweep and the free trackball rotation
func (r *Rotate) ToggleTrackball(ctx *Context) {
	if !r.isActive() {
		return
	}

	r.trackball = !r.trackball
	r.stepRemainder = 0
	ctx.logger().Debug("rotate: trackball", "enabled", r.trackball)
}

// SetAxisLock locks the rotation axis. A dual request locks the single axis, trackball mode is left.
func (r *Rotate) SetAxisLock(ctx *Context, axis axislock.Axis, _ bool) {
	if !r.isActive() {
		return
	}

	r.setLock(ctx, axis, false)
	r.trackball = false
	r.stepRemainder = 0
}

func (r *Rotate) Update(ctx *Context) {
	if !r.isActive() {
		return
	}

	cursor := ctx.Viewport.CursorPosition()
	if cursor == r.lastCursor {
		// a still cursor never rotates
		return
	}

	hit, ok := r.intersect(ctx)
	if !ok {
		return
	}

	pivot := r.group.Location()
	vector := safeNormal(hit.Sub(pivot))

	var axis mgl64.Vec3
	var angle float64
	if r.trackball {
		axis, angle = r.trackballRotation(ctx, hit, pivot)
	} else {
		axis, angle = r.sweepRotation(ctx, vector)
	}

	r.lastCursor = cursor
	r.lastHit = hit
	r.lastVector = vector

	angle = r.step(ctx, angle*precision(ctx))
	if angle == 0 || axis.Len() == 0 || math.IsNaN(angle) {
		return
	}

	r.group.AddRotation(mgl64.QuatRotate(angle, axis.Normalize()))
}

// sweepRotation is the signed angle between the last and current pivot to cursor vectors,
// around the view axis or the locked axis turned toward the camera
func (r *Rotate) sweepRotation(ctx *Context, vector mgl64.Vec3) (mgl64.Vec3, float64) {
	forward := ctx.Viewport.ViewDirection()
	if vector.Len() == 0 || r.lastVector.Len() == 0 {
		return forward, 0
	}

	angle := geom.SignedAngle(r.lastVector, vector, forward)
	if !r.lock.IsLocked() {
		return forward, angle
	}

	axis := r.lock.Vector()
	if axis.Dot(forward) < 0 {
		axis = axis.Mul(-1)
	}

	return axis, angle
}

// trackballRotation turns around the perpendicular of the cursor motion and the view axis,
// by an angle proportional to the motion over the camera distance
func (r *Rotate) trackballRotation(ctx *Context, hit, pivot mgl64.Vec3) (mgl64.Vec3, float64) {
	delta := hit.Sub(r.lastHit)
	axis := delta.Cross(ctx.Viewport.ViewDirection())

	distance := ctx.Viewport.ViewLocation().Sub(pivot).Len()
	if distance == 0 {
		return axis, 0
	}

	return axis, delta.Len() / distance * math.Pi * ctx.settings().TrackballSpeed
}

// step accumulates angle while Ctrl is held and only lets whole RotationStep increments through
func (r *Rotate) step(ctx *Context, angle float64) float64 {
	if !ctx.Viewport.Modifiers().Ctrl() {
		r.stepRemainder = 0
		return angle
	}

	increment := mgl64.DegToRad(ctx.settings().RotationStep)
	r.stepRemainder += angle
	steps := math.Trunc(r.stepRemainder / increment)
	if steps == 0 {
		return 0
	}

	r.stepRemainder -= steps * increment

	return steps * increment
}

// intersect is where the cursor ray meets the camera facing plane through the pivot
func (r *Rotate) intersect(ctx *Context) (mgl64.Vec3, bool) {
	ray, err := geom.CursorWorldRay(ctx.Viewport)
	if err != nil {
		ctx.logger().Debug("rotate: cursor ray", "error", err)
		return mgl64.Vec3{}, false
	}

	return geom.LinePlaneIntersection(ray.Origin, ray.Direction, r.group.Location(), ctx.Viewport.ViewDirection())
}

func safeNormal(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() < 1e-12 {
		return mgl64.Vec3{}
	}

	return v.Normalize()
}
