package tool

import (
	"math"

	"github.com/akmonengine/modal/axislock"
	"github.com/go-gl/mathgl/mgl64"
)

// minStartDistance keeps the scale ratio finite when the operation starts with the cursor on the pivot
const minStartDistance = 1.0

// Scale sizes the selection by the ratio of the cursor distance to the projected pivot,
// against that distance when the operation began
type Scale struct {
	base

	screenPivot   mgl64.Vec2
	startDistance float64
	current       float64
}

func NewScale() *Scale {
	return &Scale{base: base{kind: KindScale}, current: 1}
}

func (s *Scale) Begin(ctx *Context) error {
	if err := s.begin(ctx); err != nil {
		return err
	}

	s.screenPivot = s.group.ScreenLocation()
	s.startDistance = math.Max(minStartDistance, s.screenPivot.Sub(ctx.Viewport.CursorPosition()).Len())
	s.current = 1

	return nil
}

// Factor is the scale applied by the last update
func (s *Scale) Factor() float64 {
	return s.current
}

func (s *Scale) Update(ctx *Context) {
	if !s.isActive() {
		return
	}

	distance := s.screenPivot.Sub(ctx.Viewport.CursorPosition()).Len()
	scale := distance / s.startDistance

	mods := ctx.Viewport.Modifiers()
	if mods.Shift() {
		scale = 1 + (scale-1)*ctx.settings().PrecisionFactor
	}
	if mods.Ctrl() {
		step := ctx.settings().ScaleStep
		scale = math.Round(scale/step) * step
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}

	s.apply(scale)
}

// SetAxisLock biases the scale toward the locked axes and re-applies the current factor
func (s *Scale) SetAxisLock(ctx *Context, axis axislock.Axis, dual bool) {
	if !s.isActive() {
		return
	}

	s.setLock(ctx, axis, dual)
	s.apply(s.current)
}

func (s *Scale) apply(scale float64) {
	s.current = scale
	s.group.SetScale(scale, !s.lock.IsLocked(), s.lock.Vectors...)
}
