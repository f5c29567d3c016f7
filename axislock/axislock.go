// Package axislock tracks the axis or plane a modal transform is constrained to, and the surface snap standoff.
package axislock

import (
	"github.com/akmonengine/modal/actor"
	"github.com/akmonengine/modal/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Axis is a world or local basis axis
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}

	return "None"
}

// Index is the basis column of the axis, -1 for AxisNone
func (a Axis) Index() int {
	return int(a) - 1
}

// Lock is the axis lock state of one modal operation.
// The zero value is unlocked in world space.
type Lock struct {
	Axis  Axis
	Dual  bool
	local bool

	// Vectors holds the constraint directions: one for a single axis, the two remaining ones for a dual lock
	Vectors []mgl64.Vec3
	// PlaneNormal is the pressed axis of a dual lock
	PlaneNormal mgl64.Vec3
	// Snapshot is the pivot transform when the lock was set
	Snapshot actor.Transform

	snapOffset float64
}

// Set locks to axis, or to the plane of the two other axes when dual is set.
// Pressing the locked axis again flips between world and local space, only for a single selected object;
// any other change goes back to world space.
func (l *Lock) Set(axis Axis, dual bool, pivot actor.Transform, selectionCount int) {
	if axis == AxisNone {
		l.Clear()
		return
	}

	if l.Axis == axis && l.Dual == dual && selectionCount == 1 {
		l.local = !l.local
	} else {
		l.local = false
	}

	l.Axis = axis
	l.Dual = dual
	l.Snapshot = pivot

	basis := [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if l.local {
		basis = pivot.Axes()
	}

	i := axis.Index()
	if dual {
		l.PlaneNormal = basis[i]
		l.Vectors = []mgl64.Vec3{basis[(i+1)%3], basis[(i+2)%3]}
	} else {
		l.PlaneNormal = mgl64.Vec3{}
		l.Vectors = []mgl64.Vec3{basis[i]}
	}
}

// Clear removes the constraint and resets to world space, the snap offset is kept
func (l *Lock) Clear() {
	l.Axis = AxisNone
	l.Dual = false
	l.local = false
	l.Vectors = nil
	l.PlaneNormal = mgl64.Vec3{}
	l.Snapshot = actor.Transform{}
}

func (l *Lock) IsLocked() bool {
	return l.Axis != AxisNone
}

func (l *Lock) IsWorldSpace() bool {
	return !l.local
}

// Vector is the single lock direction, zero when unlocked or dual
func (l *Lock) Vector() mgl64.Vec3 {
	if l.Dual || len(l.Vectors) == 0 {
		return mgl64.Vec3{}
	}

	return l.Vectors[0]
}

// VectorAxes names the basis axis of each entry of Vectors
func (l *Lock) VectorAxes() []Axis {
	switch {
	case !l.IsLocked():
		return nil
	case l.Dual:
		i := l.Axis.Index()
		return []Axis{Axis((i+1)%3 + 1), Axis((i+2)%3 + 1)}
	default:
		return []Axis{l.Axis}
	}
}

// Constrain brings point back onto the lock line or plane passing through origin
func (l *Lock) Constrain(origin, point mgl64.Vec3) mgl64.Vec3 {
	switch {
	case !l.IsLocked():
		return point
	case l.Dual:
		return geom.ProjectOnPlane(origin, l.PlaneNormal, point)
	default:
		return geom.ClosestPointOnLine(origin, l.Vector(), point)
	}
}

// AddSnapOffset changes the surface snap standoff distance
func (l *Lock) AddSnapOffset(delta float64) {
	l.snapOffset += delta
}

func (l *Lock) SnapOffset() float64 {
	return l.snapOffset
}

// SetSnapOffset sets the surface snap standoff distance
func (l *Lock) SetSnapOffset(offset float64) {
	l.snapOffset = offset
}
