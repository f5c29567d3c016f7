// Package group binds several objects to one synthetic pivot so a modal edit moves them as a rigid body.
package group

import (
	"math"

	"github.com/akmonengine/modal/actor"
	"github.com/akmonengine/modal/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Recorder is notified before an object is mutated, so the change can be undone
type Recorder interface {
	Modify(object actor.Object)
}

// Child is one member of the group
type Child struct {
	Object actor.Object
	// Original is the world transform when the child was added
	Original actor.Transform
	// Current is the last transform written to the object by the group
	Current actor.Transform
	// RelativeOffset is pivot - child position
	RelativeOffset mgl64.Vec3
	// ScreenOffset is the child screen position minus the cursor, when it was added
	ScreenOffset mgl64.Vec2
}

// Group is the pivot transform shared by the members of a modal operation.
// The pivot scale is always one.
type Group struct {
	recorder Recorder
	pivot    actor.Transform
	setup    actor.Transform
	children []*Child

	screenLocation mgl64.Vec2
	cursorOffset   mgl64.Vec2
}

// New creates an empty group, recorder may be nil
func New(recorder Recorder) *Group {
	return &Group{
		recorder: recorder,
		pivot:    actor.NewTransform(),
		setup:    actor.NewTransform(),
	}
}

// AddChild registers a member and captures its current world transform as original
func (g *Group) AddChild(object actor.Object, screenOffset mgl64.Vec2) {
	transform := object.GetTransform()
	g.children = append(g.children, &Child{
		Object:       object,
		Original:     transform,
		Current:      transform,
		ScreenOffset: screenOffset,
	})
}

// FinishSetup places the pivot at the average member location with the first member orientation,
// then records every member offset and where the pivot sits on screen relative to the cursor.
func (g *Group) FinishSetup(view geom.View, cursor mgl64.Vec2) {
	objects := g.Objects()

	g.pivot = actor.NewTransform()
	g.pivot.Position = geom.AverageLocation(objects)
	if len(g.children) > 0 {
		g.pivot.Rotation = g.children[0].Original.Rotation
	}
	g.setup = g.pivot

	for _, child := range g.children {
		child.Current = child.Original
		child.RelativeOffset = g.pivot.Position.Sub(child.Original.Position)
	}

	if view != nil {
		g.screenLocation = geom.ProjectWorldToScreen(view, g.pivot.Position, false)
		g.cursorOffset = g.screenLocation.Sub(cursor)
	}
}

// Location is the pivot position
func (g *Group) Location() mgl64.Vec3 {
	return g.pivot.Position
}

// Rotation is the pivot orientation
func (g *Group) Rotation() mgl64.Quat {
	return g.pivot.Rotation
}

// Transform is the pivot transform
func (g *Group) Transform() actor.Transform {
	return g.pivot
}

// SetupTransform is the pivot transform computed by FinishSetup
func (g *Group) SetupTransform() actor.Transform {
	return g.setup
}

// ScreenLocation is the pivot screen position at setup
func (g *Group) ScreenLocation() mgl64.Vec2 {
	return g.screenLocation
}

// CursorOffset is the pivot screen position minus the cursor, at setup
func (g *Group) CursorOffset() mgl64.Vec2 {
	return g.cursorOffset
}

func (g *Group) Children() []*Child {
	return g.children
}

func (g *Group) Len() int {
	return len(g.children)
}

// Objects returns the members, in insertion order
func (g *Group) Objects() []actor.Object {
	objects := make([]actor.Object, 0, len(g.children))
	for _, child := range g.children {
		objects = append(objects, child.Object)
	}

	return objects
}

// SetLocation moves the pivot and every child with it
func (g *Group) SetLocation(location mgl64.Vec3) {
	g.pivot.Position = location

	for _, child := range g.children {
		child.Current.Position = g.pivot.Position.Sub(child.RelativeOffset)
		g.write(child)
	}
}

// AddLocation moves the pivot by delta
func (g *Group) AddLocation(delta mgl64.Vec3) {
	g.SetLocation(g.pivot.Position.Add(delta))
}

// AddRotation rotates every child around the pivot, on top of its current transform
func (g *Group) AddRotation(rotation mgl64.Quat) {
	g.pivot.Rotation = rotation.Mul(g.pivot.Rotation).Normalize()

	for _, child := range g.children {
		offset := child.Current.Position.Sub(g.pivot.Position)
		child.Current.Position = g.pivot.Position.Add(rotation.Rotate(offset))
		child.Current.Rotation = rotation.Mul(child.Current.Rotation).Normalize()
		child.RelativeOffset = g.pivot.Position.Sub(child.Current.Position)
		g.write(child)
	}
}

// SetScale scales every child around the pivot, starting over from its original transform.
// When uniform is false and bias axes are given, the scale only applies along those world axes:
// a child local axis gets 1 + (scale - 1) * w where w is the length of that axis projected on the
// bias axes, |dot| for a single axis.
func (g *Group) SetScale(scale float64, uniform bool, axes ...mgl64.Vec3) {
	bias := make([]mgl64.Vec3, 0, len(axes))
	for _, axis := range axes {
		if axis.Len() > 0 {
			bias = append(bias, axis.Normalize())
		}
	}
	if len(bias) == 0 {
		uniform = true
	}

	for _, child := range g.children {
		original := child.Original
		offset := original.Position.Sub(g.pivot.Position)

		factor := mgl64.Vec3{scale, scale, scale}
		delta := offset.Mul(scale - 1)
		if !uniform {
			localAxes := original.Axes()
			for i, localAxis := range localAxes {
				factor[i] = 1 + (scale-1)*alignment(localAxis, bias)
			}

			delta = mgl64.Vec3{}
			for _, axis := range bias {
				delta = delta.Add(axis.Mul(offset.Dot(axis) * (scale - 1)))
			}
		}

		child.Current = actor.Transform{
			Position: original.Position.Add(delta),
			Rotation: original.Rotation,
			Scale: mgl64.Vec3{
				original.Scale.X() * factor.X(),
				original.Scale.Y() * factor.Y(),
				original.Scale.Z() * factor.Z(),
			},
		}
		child.RelativeOffset = g.pivot.Position.Sub(child.Current.Position)
		g.write(child)
	}
}

// Apply writes every child current transform back to its object
func (g *Group) Apply() {
	for _, child := range g.children {
		g.write(child)
	}
}

func (g *Group) write(child *Child) {
	if g.recorder != nil {
		g.recorder.Modify(child.Object)
	}
	child.Object.SetTransform(child.Current)
}

// alignment is the length of axis projected on the span of the orthonormal bias axes
func alignment(axis mgl64.Vec3, bias []mgl64.Vec3) float64 {
	sum := 0.0
	for _, b := range bias {
		d := axis.Dot(b)
		sum += d * d
	}

	return math.Min(1, math.Sqrt(sum))
}
