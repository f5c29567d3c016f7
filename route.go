package modal

import (
	"github.com/akmonengine/modal/axislock"
	"github.com/akmonengine/modal/host"
	"github.com/akmonengine/modal/tool"
)

// State is the active tool slot of the controller
type State uint8

const (
	Idle State = iota
	Moving
	Rotating
	Scaling
)

func (s State) String() string {
	switch s {
	case Moving:
		return "Moving"
	case Rotating:
		return "Rotating"
	case Scaling:
		return "Scaling"
	}

	return "Idle"
}

func stateOf(kind tool.Kind) State {
	switch kind {
	case tool.KindRotate:
		return Rotating
	case tool.KindScale:
		return Scaling
	default:
		return Moving
	}
}

// Channel is the transform part a reset clears
type Channel uint8

const (
	ChannelLocation Channel = iota
	ChannelRotation
	ChannelScale
)

func (c Channel) String() string {
	switch c {
	case ChannelRotation:
		return "Rotation"
	case ChannelScale:
		return "Scale"
	}

	return "Location"
}

type action uint8

const (
	// actionNone leaves the key to the host
	actionNone action = iota
	// actionConsume swallows the key without doing anything
	actionConsume
	actionBegin
	actionAccept
	actionCancel
	actionToggleTrackball
	actionAxisLock
	actionReset
	actionDuplicate
	actionSnapOffset
)

type input struct {
	key          host.Key
	event        host.InputEvent
	mods         host.Modifiers
	hasSelection bool
	flight       bool
}

type command struct {
	action  action
	kind    tool.Kind
	axis    axislock.Axis
	dual    bool
	channel Channel
	// sign of the snap offset change
	sign float64
}

var transformKeys = map[host.Key]tool.Kind{
	host.KeyG: tool.KindMove,
	host.KeyR: tool.KindRotate,
	host.KeyS: tool.KindScale,
}

var resetKeys = map[host.Key]Channel{
	host.KeyG: ChannelLocation,
	host.KeyR: ChannelRotation,
	host.KeyS: ChannelScale,
}

var axisKeys = map[host.Key]axislock.Axis{
	host.KeyX: axislock.AxisX,
	host.KeyY: axislock.AxisY,
	host.KeyZ: axislock.AxisZ,
}

// route maps a key event to what the controller does with it. It has no side effect.
func route(state State, in input) command {
	if in.event == host.Released {
		return command{action: actionNone}
	}

	if state != Idle {
		return routeActive(state, in)
	}

	return routeIdle(in)
}

func routeActive(state State, in input) command {
	switch in.key {
	case host.LeftMouseButton:
		return command{action: actionAccept}
	case host.RightMouseButton, host.KeyEscape:
		return command{action: actionCancel}
	case host.MouseScrollUp, host.MouseScrollDown:
		if !in.mods.Ctrl() {
			return command{action: actionNone}
		}
		sign := 1.0
		if in.key == host.MouseScrollDown {
			sign = -1
		}
		return command{action: actionSnapOffset, sign: sign}
	}

	if axis, ok := axisKeys[in.key]; ok {
		if in.event == host.Repeat {
			return command{action: actionConsume}
		}
		return command{action: actionAxisLock, axis: axis, dual: in.mods.Shift()}
	}

	if kind, ok := transformKeys[in.key]; ok && !in.mods.Alt() {
		// one tool at a time: the other transform keys are swallowed
		if state == Rotating && kind == tool.KindRotate && in.event == host.Pressed {
			return command{action: actionToggleTrackball}
		}
		return command{action: actionConsume}
	}

	return command{action: actionNone}
}

func routeIdle(in input) command {
	if in.mods.Alt() {
		if channel, ok := resetKeys[in.key]; ok && in.hasSelection {
			return command{action: actionReset, channel: channel}
		}
		return command{action: actionNone}
	}

	if in.flight || !in.hasSelection {
		return command{action: actionNone}
	}

	if kind, ok := transformKeys[in.key]; ok {
		return command{action: actionBegin, kind: kind}
	}

	if in.key == host.KeyD && in.mods.Shift() && !in.mods.Ctrl() {
		return command{action: actionDuplicate}
	}

	return command{action: actionNone}
}
