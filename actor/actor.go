package actor

import "github.com/go-gl/mathgl/mgl64"

// Object is anything placed in a level whose world transform can be read and written
type Object interface {
	GetTransform() Transform
	SetTransform(transform Transform)
}

// Hit describes where a line trace met a surface
type Hit struct {
	Actor    *Actor
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// Actor is an editor level object with an optional trace shape
type Actor struct {
	Id   interface{}
	Name string

	// Spatial properties
	Transform Transform

	// Trace shape, nil for actors that never block traces
	Shape ShapeInterface
}

// NewActor creates a new actor and computes its bounds
func NewActor(name string, transform Transform, shape ShapeInterface) *Actor {
	if transform.Scale == (mgl64.Vec3{}) {
		transform.Scale = mgl64.Vec3{1, 1, 1}
	}
	if transform.Rotation == (mgl64.Quat{}) {
		transform.Rotation = mgl64.QuatIdent()
	}

	a := &Actor{
		Name:      name,
		Transform: transform,
		Shape:     shape,
	}
	if a.Shape != nil {
		a.Shape.ComputeAABB(a.Transform)
	}

	return a
}

func (a *Actor) GetTransform() Transform {
	return a.Transform
}

// SetTransform moves the actor and refreshes its bounds
func (a *Actor) SetTransform(transform Transform) {
	a.Transform = transform
	if a.Shape != nil {
		a.Shape.ComputeAABB(a.Transform)
	}
}

// Clone returns a copy of the actor with its own shape
func (a *Actor) Clone() *Actor {
	clone := &Actor{
		Id:        a.Id,
		Name:      a.Name,
		Transform: a.Transform,
	}
	if a.Shape != nil {
		clone.Shape = a.Shape.Clone()
	}

	return clone
}

// Raycast traces the segment origin + direction * [0, maxDistance] against the actor shape
func (a *Actor) Raycast(origin, direction mgl64.Vec3, maxDistance float64) (Hit, bool) {
	if a.Shape == nil {
		return Hit{}, false
	}
	if !a.Shape.GetAABB().IntersectRay(origin, direction, maxDistance) {
		return Hit{}, false
	}

	distance, normal, ok := a.Shape.Raycast(a.Transform, origin, direction, maxDistance)
	if !ok {
		return Hit{}, false
	}

	return Hit{
		Actor:    a,
		Point:    origin.Add(direction.Mul(distance)),
		Normal:   normal,
		Distance: distance,
	}, true
}
