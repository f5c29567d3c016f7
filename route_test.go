package modal

import (
	"testing"

	"github.com/akmonengine/modal/axislock"
	"github.com/akmonengine/modal/host"
	"github.com/akmonengine/modal/tool"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name  string
		state State
		in    input
		want  command
	}{
		// Idle
		{"move", Idle, input{key: host.KeyG, hasSelection: true}, command{action: actionBegin, kind: tool.KindMove}},
		{"rotate", Idle, input{key: host.KeyR, hasSelection: true}, command{action: actionBegin, kind: tool.KindRotate}},
		{"scale on repeat", Idle, input{key: host.KeyS, event: host.Repeat, hasSelection: true}, command{action: actionBegin, kind: tool.KindScale}},
		{"released", Idle, input{key: host.KeyG, event: host.Released, hasSelection: true}, command{action: actionNone}},
		{"no selection", Idle, input{key: host.KeyG}, command{action: actionNone}},
		{"flight camera", Idle, input{key: host.KeyG, hasSelection: true, flight: true}, command{action: actionNone}},
		{"reset location", Idle, input{key: host.KeyG, mods: host.ModAlt, hasSelection: true}, command{action: actionReset, channel: ChannelLocation}},
		{"reset rotation", Idle, input{key: host.KeyR, mods: host.ModAlt, hasSelection: true}, command{action: actionReset, channel: ChannelRotation}},
		{"reset scale", Idle, input{key: host.KeyS, mods: host.ModAlt, hasSelection: true}, command{action: actionReset, channel: ChannelScale}},
		{"reset without selection", Idle, input{key: host.KeyS, mods: host.ModAlt}, command{action: actionNone}},
		{"duplicate", Idle, input{key: host.KeyD, mods: host.ModShift, hasSelection: true}, command{action: actionDuplicate}},
		{"ctrl shift D", Idle, input{key: host.KeyD, mods: host.ModShift | host.ModCtrl, hasSelection: true}, command{action: actionNone}},
		{"idle click", Idle, input{key: host.LeftMouseButton, hasSelection: true}, command{action: actionNone}},
		{"idle axis key", Idle, input{key: host.KeyX, hasSelection: true}, command{action: actionNone}},
		{"idle escape", Idle, input{key: host.KeyEscape, hasSelection: true}, command{action: actionNone}},

		// Active
		{"accept", Moving, input{key: host.LeftMouseButton}, command{action: actionAccept}},
		{"accept released", Moving, input{key: host.LeftMouseButton, event: host.Released}, command{action: actionNone}},
		{"cancel", Scaling, input{key: host.RightMouseButton}, command{action: actionCancel}},
		{"escape", Rotating, input{key: host.KeyEscape}, command{action: actionCancel}},
		{"lock X", Moving, input{key: host.KeyX}, command{action: actionAxisLock, axis: axislock.AxisX}},
		{"lock YZ plane", Moving, input{key: host.KeyX, mods: host.ModShift}, command{action: actionAxisLock, axis: axislock.AxisX, dual: true}},
		{"lock Z", Scaling, input{key: host.KeyZ}, command{action: actionAxisLock, axis: axislock.AxisZ}},
		{"lock repeat", Moving, input{key: host.KeyY, event: host.Repeat}, command{action: actionConsume}},
		{"trackball", Rotating, input{key: host.KeyR}, command{action: actionToggleTrackball}},
		{"trackball repeat", Rotating, input{key: host.KeyR, event: host.Repeat}, command{action: actionConsume}},
		{"other tool key", Moving, input{key: host.KeyR, hasSelection: true}, command{action: actionConsume}},
		{"same tool key", Scaling, input{key: host.KeyS, hasSelection: true}, command{action: actionConsume}},
		{"reset while active", Moving, input{key: host.KeyG, mods: host.ModAlt, hasSelection: true}, command{action: actionNone}},
		{"wheel", Moving, input{key: host.MouseScrollUp}, command{action: actionNone}},
		{"ctrl wheel up", Moving, input{key: host.MouseScrollUp, mods: host.ModCtrl}, command{action: actionSnapOffset, sign: 1}},
		{"ctrl wheel down", Moving, input{key: host.MouseScrollDown, mods: host.ModCtrl}, command{action: actionSnapOffset, sign: -1}},
		{"unrelated key", Moving, input{key: host.KeyD, mods: host.ModShift}, command{action: actionNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := route(tt.state, tt.in)
			if got != tt.want {
				t.Errorf("route(%v, %+v) = %+v, want %+v", tt.state, tt.in, got, tt.want)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	for state, want := range map[State]string{Idle: "Idle", Moving: "Moving", Rotating: "Rotating", Scaling: "Scaling"} {
		if state.String() != want {
			t.Errorf("Expected %s, got %s", want, state.String())
		}
	}
}
