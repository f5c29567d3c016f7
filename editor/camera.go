package editor

import (
	"math"

	"github.com/akmonengine/modal/host"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective viewport looking along its local X axis, local Z up
type Camera struct {
	Location mgl64.Vec3
	Rotation mgl64.Quat
	// Vertical field of view, in degrees
	Fov  float64
	Near float64
	Far  float64

	Width  int
	Height int

	// Cursor is in screen coordinates, origin at the top-left corner
	Cursor mgl64.Vec2
	Mods   host.Modifiers
	Flight bool
}

// NewCamera creates a camera at the origin looking down +X
func NewCamera(width, height int) *Camera {
	return &Camera{
		Rotation: mgl64.QuatIdent(),
		Fov:      90,
		Near:     0.1,
		Far:      10000,
		Width:    width,
		Height:   height,
		Cursor:   mgl64.Vec2{float64(width) / 2, float64(height) / 2},
	}
}

// LookAt turns the camera toward target, without roll
func (c *Camera) LookAt(target mgl64.Vec3) {
	direction := target.Sub(c.Location)
	if direction.Len() == 0 {
		return
	}
	direction = direction.Normalize()

	yaw := math.Atan2(direction.Y(), direction.X())
	pitch := math.Asin(mgl64.Clamp(direction.Z(), -1, 1))

	c.Rotation = mgl64.QuatRotate(yaw, mgl64.Vec3{0, 0, 1}).Mul(mgl64.QuatRotate(-pitch, mgl64.Vec3{0, 1, 0})).Normalize()
}

func (c *Camera) Size() (int, int) {
	return c.Width, c.Height
}

func (c *Camera) ViewMatrix() mgl64.Mat4 {
	forward := c.ViewDirection()
	up := c.Rotation.Rotate(mgl64.Vec3{0, 0, 1})

	return mgl64.LookAtV(c.Location, c.Location.Add(forward), up)
}

func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}

	return mgl64.Perspective(mgl64.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

func (c *Camera) CursorPosition() mgl64.Vec2 {
	return c.Cursor
}

func (c *Camera) ViewLocation() mgl64.Vec3 {
	return c.Location
}

func (c *Camera) ViewDirection() mgl64.Vec3 {
	return c.Rotation.Rotate(mgl64.Vec3{1, 0, 0}).Normalize()
}

func (c *Camera) Modifiers() host.Modifiers {
	return c.Mods
}

func (c *Camera) IsFlightCameraActive() bool {
	return c.Flight
}
