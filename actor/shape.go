package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of trace shape
type ShapeType int

const (
	ShapeTypeSphere ShapeType = iota
	ShapeTypeBox
	ShapeTypePlane
)

// ShapeInterface is the interface that all trace shapes must implement
type ShapeInterface interface {
	Type() ShapeType
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform)
	GetAABB() AABB
	// Raycast returns the distance along direction and the world normal of the first surface hit
	Raycast(transform Transform, origin, direction mgl64.Vec3, maxDistance float64) (float64, mgl64.Vec3, bool)
	Clone() ShapeInterface
}

// Box represents an oriented box
// The box is defined by its half-extents (half-width, half-height, half-depth), multiplied by the transform scale
type Box struct {
	HalfExtents mgl64.Vec3
	aabb        AABB
}

func (b *Box) Type() ShapeType {
	return ShapeTypeBox
}

func (b *Box) scaledExtents(transform Transform) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Abs(b.HalfExtents.X() * transform.Scale.X()),
		math.Abs(b.HalfExtents.Y() * transform.Scale.Y()),
		math.Abs(b.HalfExtents.Z() * transform.Scale.Z()),
	}
}

func (b *Box) ComputeAABB(transform Transform) {
	h := b.scaledExtents(transform)

	// The 8 corners of the box in local space
	corners := [8]mgl64.Vec3{
		{-h.X(), -h.Y(), -h.Z()},
		{+h.X(), -h.Y(), -h.Z()},
		{-h.X(), +h.Y(), -h.Z()},
		{+h.X(), +h.Y(), -h.Z()},
		{-h.X(), -h.Y(), +h.Z()},
		{+h.X(), -h.Y(), +h.Z()},
		{-h.X(), +h.Y(), +h.Z()},
		{+h.X(), +h.Y(), +h.Z()},
	}

	worldCorner := transform.Rotation.Rotate(corners[0]).Add(transform.Position)
	min := worldCorner
	max := worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = transform.Rotation.Rotate(corners[i]).Add(transform.Position)

		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])

		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	b.aabb = AABB{Min: min, Max: max}
}

func (b *Box) GetAABB() AABB {
	return b.aabb
}

// Raycast runs the slab test in the box local space.
// A ray starting inside the box does not hit it.
func (b *Box) Raycast(transform Transform, origin, direction mgl64.Vec3, maxDistance float64) (float64, mgl64.Vec3, bool) {
	inverse := transform.Rotation.Inverse()
	localOrigin := inverse.Rotate(origin.Sub(transform.Position))
	localDirection := inverse.Rotate(direction)

	h := b.scaledExtents(transform)
	tMin, _, axis, ok := slab(localOrigin, localDirection, h.Mul(-1), h)
	if !ok || axis < 0 || tMin < 0 || tMin > maxDistance {
		return 0, mgl64.Vec3{}, false
	}

	var localNormal mgl64.Vec3
	if localDirection[axis] > 0 {
		localNormal[axis] = -1
	} else {
		localNormal[axis] = 1
	}

	return tMin, transform.Rotation.Rotate(localNormal), true
}

func (b *Box) Clone() ShapeInterface {
	return &Box{HalfExtents: b.HalfExtents, aabb: b.aabb}
}

// Sphere represents a spherical shape, its radius grows with the largest scale component
type Sphere struct {
	Radius float64
	aabb   AABB
}

func (s *Sphere) Type() ShapeType {
	return ShapeTypeSphere
}

func (s *Sphere) scaledRadius(transform Transform) float64 {
	scale := math.Max(math.Abs(transform.Scale.X()), math.Max(math.Abs(transform.Scale.Y()), math.Abs(transform.Scale.Z())))

	return s.Radius * scale
}

// ComputeAABB calculates the axis-aligned bounding box for the sphere
func (s *Sphere) ComputeAABB(transform Transform) {
	// Sphere AABB is not affected by rotation, only by position
	r := s.scaledRadius(transform)
	radiusVec := mgl64.Vec3{r, r, r}

	s.aabb = AABB{
		Min: transform.Position.Sub(radiusVec),
		Max: transform.Position.Add(radiusVec),
	}
}

func (s *Sphere) GetAABB() AABB {
	return s.aabb
}

func (s *Sphere) Raycast(transform Transform, origin, direction mgl64.Vec3, maxDistance float64) (float64, mgl64.Vec3, bool) {
	r := s.scaledRadius(transform)
	oc := origin.Sub(transform.Position)

	// |oc + t*d|² = r², direction is expected normalized
	a := direction.Dot(direction)
	halfB := oc.Dot(direction)
	c := oc.Dot(oc) - r*r
	if c <= 0 || a == 0 {
		// Starts inside the sphere
		return 0, mgl64.Vec3{}, false
	}

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, mgl64.Vec3{}, false
	}

	t := (-halfB - math.Sqrt(discriminant)) / a
	if t < 0 || t > maxDistance {
		return 0, mgl64.Vec3{}, false
	}

	hit := origin.Add(direction.Mul(t))

	return t, hit.Sub(transform.Position).Normalize(), true
}

func (s *Sphere) Clone() ShapeInterface {
	return &Sphere{Radius: s.Radius, aabb: s.aabb}
}

// Plane represents an infinite plane
// The plane is defined by the equation: Normal · (p - Position) + Distance = 0
// where Normal is the plane's normal vector (must be normalized)
// and Distance is the signed distance from the transform position along the normal
type Plane struct {
	Normal   mgl64.Vec3 // Plane normal (must be normalized)
	Distance float64    // Plane constant (signed distance from origin)
	aabb     AABB
}

func (p *Plane) Type() ShapeType {
	return ShapeTypePlane
}

func (p *Plane) ComputeAABB(transform Transform) {
	const thickness = 1.0 // detection thickness below the plane
	const infinity = 1e10 // large value for the unbounded dimensions

	// Point on the plane closest to the origin
	// Assumes p.Normal is normalized
	planePoint := p.Normal.Mul(-p.Distance)

	// Create base bounds with thickness along the normal
	min := planePoint.Sub(p.Normal.Mul(thickness)).Add(transform.Position)
	max := planePoint.Add(transform.Position)
	for i := range 3 {
		if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
	}

	absNormal := mgl64.Vec3{
		math.Abs(p.Normal.X()),
		math.Abs(p.Normal.Y()),
		math.Abs(p.Normal.Z()),
	}

	// For axes that are not exactly the normal, extend to infinity
	const threshold = 1.0
	for i := range 3 {
		if absNormal[i] < threshold {
			min[i] = -infinity
			max[i] = infinity
		}
	}

	p.aabb = AABB{Min: min, Max: max}
}

func (p *Plane) GetAABB() AABB {
	return p.aabb
}

// Raycast hits the plane from either side, the returned normal faces the ray origin
func (p *Plane) Raycast(transform Transform, origin, direction mgl64.Vec3, maxDistance float64) (float64, mgl64.Vec3, bool) {
	const epsilon = 1e-12

	denom := p.Normal.Dot(direction)
	if math.Abs(denom) < epsilon {
		return 0, mgl64.Vec3{}, false
	}

	t := -(p.Normal.Dot(origin.Sub(transform.Position)) + p.Distance) / denom
	if t < 0 || t > maxDistance {
		return 0, mgl64.Vec3{}, false
	}

	if denom > 0 {
		return t, p.Normal.Mul(-1), true
	}

	return t, p.Normal, true
}

func (p *Plane) Clone() ShapeInterface {
	return &Plane{Normal: p.Normal, Distance: p.Distance, aabb: p.aabb}
}
