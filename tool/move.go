package tool

import (
	"github.com/akmonengine/modal/axislock"
	"github.com/akmonengine/modal/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Move drags the selection on a camera facing plane through the pivot.
// While Ctrl is held every member is snapped onto the surface under its own screen position instead.
type Move struct {
	base

	// lastTarget is the constrained cursor point of the previous frame
	lastTarget mgl64.Vec3
	snapping   bool
}

func NewMove() *Move {
	return &Move{base: base{kind: KindMove}}
}

func (m *Move) Begin(ctx *Context) error {
	if err := m.begin(ctx); err != nil {
		return err
	}

	m.lastTarget = m.group.Location()
	if target, ok := m.target(ctx); ok {
		m.lastTarget = target
	}

	return nil
}

func (m *Move) Update(ctx *Context) {
	if !m.isActive() {
		return
	}

	if ctx.Viewport.Modifiers().Ctrl() && ctx.Scene != nil {
		m.snapping = true
		m.snapToSurface(ctx)
		return
	}
	if m.snapping {
		// back to the group positions
		m.snapping = false
		m.group.Apply()
	}

	target, ok := m.target(ctx)
	if !ok {
		return
	}

	delta := target.Sub(m.lastTarget).Mul(precision(ctx))
	m.lastTarget = target
	if delta == (mgl64.Vec3{}) {
		return
	}

	m.group.AddLocation(delta)
}

// SetAxisLock constrains the motion, the group goes back to its start pivot
// and the next frame re-applies the constrained cursor offset
func (m *Move) SetAxisLock(ctx *Context, axis axislock.Axis, dual bool) {
	if !m.isActive() {
		return
	}

	m.setLock(ctx, axis, dual)
	start := m.group.SetupTransform().Position
	m.group.SetLocation(start)
	m.lastTarget = start

	m.Update(ctx)
}

// target is where the cursor, offset to the pivot, meets the drag plane, after the axis constraint
func (m *Move) target(ctx *Context) (mgl64.Vec3, bool) {
	cursor := ctx.Viewport.CursorPosition().Add(m.group.CursorOffset())
	ray, err := geom.ScreenRay(ctx.Viewport, cursor)
	if err != nil {
		ctx.logger().Debug("move: cursor ray", "error", err)
		return mgl64.Vec3{}, false
	}

	start := m.group.SetupTransform().Position
	hit, ok := geom.LinePlaneIntersection(ray.Origin, ray.Direction, start, m.planeNormal(ctx))
	if !ok {
		return mgl64.Vec3{}, false
	}

	return m.lock.Constrain(start, hit), true
}

// planeNormal is the camera forward, the lock plane normal when dual locked,
// or the normal of the plane containing the lock axis that faces the camera best
func (m *Move) planeNormal(ctx *Context) mgl64.Vec3 {
	forward := ctx.Viewport.ViewDirection()

	switch {
	case !m.lock.IsLocked():
		return forward
	case m.lock.Dual:
		return m.lock.PlaneNormal
	}

	axis := m.lock.Vector()
	normal := forward.Sub(axis.Mul(forward.Dot(axis)))
	if normal.Len() < 1e-6 {
		return forward
	}

	return normal.Normalize()
}

// snapToSurface traces every member from its own screen position and places it on the hit surface,
// standing off along the normal and tilted to follow it. Members whose trace misses stay put.
func (m *Move) snapToSurface(ctx *Context) {
	settings := ctx.settings()
	cursor := ctx.Viewport.CursorPosition()
	ignore := m.group.Objects()
	up := mgl64.Vec3{0, 0, 1}

	for _, child := range m.group.Children() {
		ray, err := geom.ScreenRay(ctx.Viewport, cursor.Add(child.ScreenOffset))
		if err != nil {
			ctx.logger().Debug("move: snap ray", "error", err)
			return
		}

		hit, ok := ctx.Scene.LineTrace(ray.Origin, ray.At(settings.TraceDistance), ignore)
		if !ok {
			continue
		}

		transform := child.Object.GetTransform()
		transform.Position = hit.Point.Add(hit.Normal.Mul(m.lock.SnapOffset()))
		transform.Rotation = geom.SurfaceAlignmentRotation(child.Original.Rotation, up, hit.Normal)

		ctx.Journal.Modify(child.Object)
		child.Object.SetTransform(transform)
	}
}
