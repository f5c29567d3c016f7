// Package modal is a keyboard driven Move, Rotate and Scale mode for 3D editors.
//
// A Mode receives the editor key events and frame ticks. G, R and S start a modal operation on the
// selection, X, Y and Z lock it to an axis (a plane with Shift), the left mouse button accepts it and
// the right one cancels it.
package modal

import (
	"log/slog"

	"github.com/akmonengine/modal/actor"
	"github.com/akmonengine/modal/config"
	"github.com/akmonengine/modal/host"
	"github.com/akmonengine/modal/tool"
	"github.com/go-gl/mathgl/mgl64"
)

type Mode struct {
	Events Events

	ctx    tool.Context
	state  State
	active tool.Tool
	// objects the active tool operates on
	objects []actor.Object

	subscription host.Subscription
	// set by the selection listener, handled at the next InputKey or Tick
	forceCancel bool
	// the active move follows a duplication whose transaction is still open
	duplicating bool
}

// New creates a mode bound to the host handles of ctx
func New(ctx tool.Context) *Mode {
	if ctx.Settings == nil {
		ctx.Settings = config.Default()
	}
	if ctx.Logger == nil {
		ctx.Logger = slog.Default()
	}

	return &Mode{
		Events: NewEvents(),
		ctx:    ctx,
	}
}

// Enter starts listening to selection changes
func (m *Mode) Enter() {
	if m.subscription != nil {
		return
	}

	m.subscription = m.ctx.Selection.Subscribe(m.onSelectionChanged)
	m.ctx.Logger.Debug("mode enter")
}

// Exit cancels the active operation and stops listening to selection changes
func (m *Mode) Exit() {
	if m.active != nil {
		m.finish(false, false)
	}

	if m.subscription != nil {
		m.subscription.Unsubscribe()
		m.subscription = nil
	}
	m.forceCancel = false

	m.Events.flush()
	m.ctx.Logger.Debug("mode exit")
}

func (m *Mode) State() State {
	return m.state
}

// Active is the running tool, nil when idle
func (m *Mode) Active() tool.Tool {
	return m.active
}

func (m *Mode) Settings() *config.Settings {
	return m.ctx.Settings
}

// SetSettings swaps the settings, the active tool picks them up on its next update
func (m *Mode) SetSettings(settings *config.Settings) {
	if settings == nil {
		return
	}

	m.ctx.Settings = settings
	m.ctx.Logger.Info("settings applied")
}

// InputKey handles a key event and reports whether it was consumed
func (m *Mode) InputKey(key host.Key, event host.InputEvent) bool {
	m.handleForceCancel()

	cmd := route(m.state, input{
		key:          key,
		event:        event,
		mods:         m.ctx.Viewport.Modifiers(),
		hasSelection: len(m.ctx.Selection.Selected()) > 0,
		flight:       m.ctx.Viewport.IsFlightCameraActive(),
	})

	switch cmd.action {
	case actionNone:
		return false
	case actionBegin:
		return m.begin(cmd.kind)
	case actionAccept:
		m.finish(true, false)
	case actionCancel:
		m.finish(false, false)
	case actionToggleTrackball:
		if rotate, ok := m.active.(*tool.Rotate); ok {
			rotate.ToggleTrackball(&m.ctx)
		}
	case actionAxisLock:
		m.active.SetAxisLock(&m.ctx, cmd.axis, cmd.dual)
		lock := m.active.Lock()
		m.Events.emit(AxisLockEvent{
			Tool:       m.active.Kind(),
			Axis:       lock.Axis,
			Dual:       lock.Dual,
			WorldSpace: lock.IsWorldSpace(),
		})
	case actionSnapOffset:
		m.active.AddSnapOffset(cmd.sign * m.ctx.Settings.SnapOffsetStep)
	case actionReset:
		m.reset(cmd.channel)
	case actionDuplicate:
		m.duplicate()
	}

	return true
}

// Tick runs the active tool for one frame and delivers the buffered events
func (m *Mode) Tick() {
	m.handleForceCancel()

	if m.active != nil {
		m.active.Update(&m.ctx)
		if m.ctx.Canvas != nil {
			m.active.DrawOverlay(&m.ctx)
		}
	}

	m.Events.flush()
}

// onSelectionChanged only flags the active operation, it is closed outside of the notification
func (m *Mode) onSelectionChanged() {
	if m.state != Idle {
		m.forceCancel = true
	}
}

func (m *Mode) handleForceCancel() {
	if !m.forceCancel {
		return
	}

	m.forceCancel = false
	if m.active != nil {
		m.finish(false, true)
	}
}

func (m *Mode) begin(kind tool.Kind) bool {
	objects := m.ctx.Selection.Selected()

	t := tool.New(kind)
	if err := t.Begin(&m.ctx); err != nil {
		m.ctx.Logger.Debug("tool refused", "tool", kind, "error", err)
		return false
	}

	m.active = t
	m.state = stateOf(kind)
	m.objects = objects
	m.Events.emit(ToolBeginEvent{Tool: kind, Objects: objects})

	return true
}

func (m *Mode) finish(success, forced bool) {
	t := m.active
	objects := m.objects

	m.active = nil
	m.objects = nil
	m.state = Idle

	t.Close(&m.ctx, success)
	if m.duplicating {
		// the duplicate stays even when its move is cancelled
		m.duplicating = false
		m.ctx.Journal.End()
	}

	if success {
		m.Events.emit(ToolAcceptEvent{Tool: t.Kind(), Objects: objects})
		return
	}

	if forced {
		m.ctx.Logger.Debug("tool cancelled by a selection change", "tool", t.Kind())
	}
	m.Events.emit(ToolCancelEvent{Tool: t.Kind(), Objects: objects, Forced: forced})
}

func (m *Mode) reset(channel Channel) {
	objects := m.ctx.Selection.Selected()

	m.ctx.Journal.Begin("Reset " + channel.String())
	for _, object := range objects {
		m.ctx.Journal.Modify(object)

		transform := object.GetTransform()
		switch channel {
		case ChannelLocation:
			transform.Position = mgl64.Vec3{}
		case ChannelRotation:
			transform.Rotation = mgl64.QuatIdent()
		case ChannelScale:
			transform.Scale = mgl64.Vec3{1, 1, 1}
		}
		object.SetTransform(transform)
	}
	m.ctx.Journal.End()

	m.ctx.Logger.Info("transform reset", "channel", channel, "objects", len(objects))
	m.Events.emit(TransformResetEvent{Channel: channel, Objects: objects})
}

// duplicate copies the selection and moves the copies, both in one transaction
func (m *Mode) duplicate() {
	sources := m.ctx.Selection.Selected()

	m.ctx.Journal.Begin("Duplicate")
	copies := m.ctx.Scene.Duplicate(sources)
	if len(copies) == 0 {
		m.ctx.Journal.End()
		return
	}

	m.ctx.Logger.Info("duplicate", "objects", len(copies))
	m.Events.emit(DuplicateEvent{Sources: sources, Copies: copies})

	if !m.begin(tool.KindMove) {
		m.ctx.Journal.End()
		return
	}
	m.duplicating = true
}
