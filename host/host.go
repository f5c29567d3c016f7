// Package host declares what the modal tools need from the editor they run in.
package host

import (
	"image/color"

	"github.com/akmonengine/modal/actor"
	"github.com/akmonengine/modal/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Modifiers is a bit set of the held modifier keys
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }

// Viewport is the editor view the cursor lives in
type Viewport interface {
	geom.CursorView
	// ViewLocation is the camera position
	ViewLocation() mgl64.Vec3
	// ViewDirection is the normalized camera forward vector
	ViewDirection() mgl64.Vec3
	Modifiers() Modifiers
	IsFlightCameraActive() bool
}

// Subscription is returned by Selection.Subscribe, Unsubscribe must be safe to call twice
type Subscription interface {
	Unsubscribe()
}

// Selection is the editor set of selected objects
type Selection interface {
	Selected() []actor.Object
	// Subscribe registers fn to be called after every selection change
	Subscribe(fn func()) Subscription
}

// Journal is the editor undo system.
// Transactions nest: only the outermost End commits.
type Journal interface {
	Begin(name string)
	End()
	Cancel()
	// Modify records the state of object before it is mutated
	Modify(object actor.Object)
}

// TraceHit is the result of a scene line trace
type TraceHit struct {
	Object actor.Object
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// Scene gives access to the level geometry
type Scene interface {
	// LineTrace returns the first surface between start and end, ignoring the given objects
	LineTrace(start, end mgl64.Vec3, ignore []actor.Object) (TraceHit, bool)
	// Duplicate copies the objects, selects the copies and returns them
	Duplicate(objects []actor.Object) []actor.Object
}

// Canvas draws the HUD on top of the viewport, in screen coordinates
type Canvas interface {
	DrawLine(from, to mgl64.Vec2, c color.Color, dashed bool)
}

// Outline controls the selection outline color
type Outline interface {
	OutlineColor() color.Color
	SetOutlineColor(c color.Color)
}
