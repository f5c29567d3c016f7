package tool

import (
	"image/color"

	"github.com/akmonengine/modal/actor"
	"github.com/akmonengine/modal/axislock"
	"github.com/akmonengine/modal/geom"
	"github.com/akmonengine/modal/group"
	"github.com/akmonengine/modal/host"
	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is an object transform taken when the operation began
type Snapshot struct {
	Object   actor.Object
	Original actor.Transform
}

// base is the lifecycle shared by every tool
type base struct {
	kind      Kind
	group     *group.Group
	snapshots []Snapshot
	lock      axislock.Lock
	outline   color.Color

	started bool
	closed  bool
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) Lock() *axislock.Lock {
	return &b.lock
}

func (b *base) Closed() bool {
	return b.closed
}

// Group is the pivot the operation transforms, nil before Begin
func (b *base) Group() *group.Group {
	return b.group
}

func (b *base) Snapshots() []Snapshot {
	return b.snapshots
}

func (b *base) AddSnapOffset(delta float64) {
	b.lock.AddSnapOffset(delta)
}

func (b *base) isActive() bool {
	return b.started && !b.closed
}

func (b *base) begin(ctx *Context) error {
	if b.started {
		return ErrAlreadyStarted
	}

	selected := ctx.Selection.Selected()
	if len(selected) == 0 {
		return ErrNoSelection
	}
	b.started = true
	settings := ctx.settings()

	if ctx.Outline != nil {
		b.outline = ctx.Outline.OutlineColor()
	}

	b.snapshots = make([]Snapshot, 0, len(selected))
	for _, object := range selected {
		b.snapshots = append(b.snapshots, Snapshot{Object: object, Original: object.GetTransform()})
	}

	cursor := ctx.Viewport.CursorPosition()
	b.group = group.New(ctx.Journal)
	for _, snapshot := range b.snapshots {
		screen := geom.ProjectWorldToScreen(ctx.Viewport, snapshot.Original.Position, false)
		b.group.AddChild(snapshot.Object, screen.Sub(cursor))
	}
	b.group.FinishSetup(ctx.Viewport, cursor)

	ctx.Journal.Begin(b.kind.TransactionName())
	if ctx.Outline != nil {
		ctx.Outline.SetOutlineColor(settings.Highlight())
	}

	b.lock = axislock.Lock{}
	b.lock.SetSnapOffset(settings.SnapOffset)

	ctx.logger().Debug("tool begin",
		"tool", b.kind,
		"objects", len(b.snapshots),
		"pivot", b.group.Location(),
	)

	return nil
}

func (b *base) Close(ctx *Context, success bool) {
	if !b.isActive() {
		b.closed = true
		return
	}
	b.closed = true

	if ctx.Outline != nil && b.outline != nil {
		ctx.Outline.SetOutlineColor(b.outline)
	}

	if success {
		ctx.Journal.End()
		ctx.logger().Debug("tool accept", "tool", b.kind, "pivot", b.group.Location())
		return
	}

	for _, snapshot := range b.snapshots {
		snapshot.Object.SetTransform(snapshot.Original)
	}
	ctx.Journal.Cancel()
	ctx.logger().Debug("tool cancel", "tool", b.kind)
}

// setLock locks the pivot to axis, using the pivot basis when the lock flips to local space
func (b *base) setLock(ctx *Context, axis axislock.Axis, dual bool) {
	b.lock.Set(axis, dual, b.group.Transform(), b.group.Len())

	ctx.logger().Debug("axis lock",
		"tool", b.kind,
		"axis", axis,
		"dual", dual,
		"world", b.lock.IsWorldSpace(),
	)
}

// precision is the slowdown applied to the frame delta
func precision(ctx *Context) float64 {
	if ctx.Viewport.Modifiers().Shift() {
		return ctx.settings().PrecisionFactor
	}

	return 1
}

func (b *base) DrawOverlay(ctx *Context) {
	if !b.isActive() || ctx.Canvas == nil {
		return
	}

	settings := ctx.settings()
	pivot := b.group.Location()

	if settings.DrawGuides {
		axes := b.lock.VectorAxes()
		for i, vector := range b.lock.Vectors {
			from, to, ok := guideSegment(ctx.Viewport, pivot, vector, settings.GuideLength)
			if !ok {
				continue
			}
			ctx.Canvas.DrawLine(from, to, settings.AxisColor(axes[i].Index()), false)
		}
	}

	if settings.DrawCursorLine && inFront(ctx.Viewport, pivot) {
		screenPivot := geom.ProjectWorldToScreen(ctx.Viewport, pivot, true)
		ctx.Canvas.DrawLine(ctx.Viewport.CursorPosition(), screenPivot, settings.CursorLine(), true)
	}
}

// guideMargin keeps clipped guide ends strictly in front of the camera
const guideMargin = 1e-3

func inFront(viewport host.Viewport, point mgl64.Vec3) bool {
	return point.Sub(viewport.ViewLocation()).Dot(viewport.ViewDirection()) > guideMargin
}

// guideSegment projects the line pivot +- direction * length on screen,
// after clipping away the part behind the camera
func guideSegment(viewport host.Viewport, pivot, direction mgl64.Vec3, length float64) (mgl64.Vec2, mgl64.Vec2, bool) {
	eye := viewport.ViewLocation()
	forward := viewport.ViewDirection()

	a := pivot.Sub(direction.Mul(length))
	b := pivot.Add(direction.Mul(length))
	da := a.Sub(eye).Dot(forward) - guideMargin
	db := b.Sub(eye).Dot(forward) - guideMargin

	if da <= 0 && db <= 0 {
		return mgl64.Vec2{}, mgl64.Vec2{}, false
	}
	if da < 0 {
		a = a.Add(b.Sub(a).Mul(da / (da - db)))
	}
	if db < 0 {
		b = b.Add(a.Sub(b).Mul(db / (db - da)))
	}

	return geom.ProjectWorldToScreen(viewport, a, false), geom.ProjectWorldToScreen(viewport, b, false), true
}
