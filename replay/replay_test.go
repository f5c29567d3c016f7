package replay

import (
	"testing"

	"github.com/akmonengine/modal/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moveScript = `
actors:
  - name: crate
    shape: box
selection: [crate]
steps:
  - cursor: [400, 300]
  - key: G
  - cursor: [500, 300]
    tick: 1
  - key: LeftMouseButton
`

// ===== Decode =====

func TestDecode(t *testing.T) {
	script, err := Decode([]byte(moveScript))
	require.NoError(t, err)

	require.Len(t, script.Actors, 1)
	assert.Equal(t, "box", script.Actors[0].Shape)
	assert.Equal(t, []string{"crate"}, script.Selection)
	require.Len(t, script.Steps, 4)
	require.NotNil(t, script.Steps[2].Cursor)
	assert.Equal(t, 500.0, script.Steps[2].Cursor.X())
	assert.Equal(t, 1, script.Steps[2].Tick)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"empty", ""},
		{"unknown field", "cameras: {}"},
		{"unknown key", "steps: [{key: Q}]"},
		{"unknown modifier", "steps: [{key: G, mods: [meta]}]"},
		{"unknown event", "steps: [{key: G, event: held}]"},
		{"negative tick", "steps: [{tick: -1}]"},
		{"unknown shape", "actors: [{name: a, shape: cone}]"},
		{"unnamed actor", "actors: [{shape: box}]"},
		{"duplicate actor", "actors: [{name: a}, {name: a}]"},
		{"plane without normal", "actors: [{name: a, shape: plane}]"},
		{"missing selection", "actors: [{name: a}]\nselection: [b]"},
		{"bad vector", "actors: [{name: a, position: [1, 2]}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.script))
			assert.ErrorIs(t, err, ErrInvalidScript)
		})
	}
}

func TestStep_KeysAreCaseInsensitive(t *testing.T) {
	in, err := Step{Key: "escape", Event: "Repeat", Mods: []string{"Shift", "ctrl"}}.input()
	require.NoError(t, err)

	assert.Equal(t, "Escape", string(in.key))
	assert.True(t, in.mods.Shift())
	assert.True(t, in.mods.Ctrl())
	assert.False(t, in.mods.Alt())
}

// ===== Run =====

func TestRun_Move(t *testing.T) {
	script, err := Decode([]byte(moveScript))
	require.NoError(t, err)

	result, err := Run(script, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Idle", result.State)
	assert.Equal(t, []string{"Modal Move"}, result.Records)
	assert.Equal(t, 0, result.UndoIdx)
	assert.Equal(t, []string{"begin Move (1)", "accept Move (1)"}, result.Events)

	require.Len(t, result.Actors, 1)
	crate := result.Actors[0]
	assert.True(t, crate.Selected)
	// screen right is world -Y for a camera on -X looking at the origin
	assert.Less(t, crate.Position.Y(), -1.0)
	assert.InDelta(t, 0, crate.Position.X(), 1e-6)
	assert.InDelta(t, 0, crate.Position.Z(), 1e-6)

	require.Len(t, result.Steps, 4)
	assert.False(t, result.Steps[0].Consumed)
	assert.True(t, result.Steps[1].Consumed)
	assert.Equal(t, "Moving", result.Steps[1].State)
	assert.True(t, result.Steps[3].Consumed)
	assert.Equal(t, "Idle", result.Steps[3].State)
}

func TestRun_OpenOperationIsCancelled(t *testing.T) {
	script, err := Decode([]byte(`
actors:
  - name: crate
    position: [0, 2, 1]
selection: [crate]
steps:
  - key: R
  - cursor: [100, 100]
    tick: 2
`))
	require.NoError(t, err)

	result, err := Run(script, config.Default(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Rotating", result.State)
	assert.Positive(t, result.Lines)
	assert.Empty(t, result.Records)
	assert.Equal(t, -1, result.UndoIdx)
	assert.Equal(t, []string{"begin Rotate (1)", "cancel Rotate (1)"}, result.Events)

	require.Len(t, result.Actors, 1)
	assert.Equal(t, [4]float64{1, 0, 0, 0}, result.Actors[0].Rotation)
	assert.Equal(t, 2.0, result.Actors[0].Position.Y())
}

func TestRun_ResetAndUndo(t *testing.T) {
	script, err := Decode([]byte(`
actors:
  - name: crate
    position: [1, 2, 3]
    scale: [2, 2, 2]
selection: [crate]
steps:
  - key: G
    mods: [alt]
  - key: S
    mods: [alt]
  - undo: 1
`))
	require.NoError(t, err)

	result, err := Run(script, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Reset Location", "Reset Scale"}, result.Records)
	assert.Equal(t, 0, result.UndoIdx)
	assert.Equal(t, []string{"reset Location (1)", "reset Scale (1)"}, result.Events)

	crate := result.Actors[0]
	assert.Equal(t, 0.0, crate.Position.Len())
	assert.Equal(t, 2.0, crate.Scale.X())
}

func TestRun_CameraAtOrigin(t *testing.T) {
	script, err := Decode([]byte(`
camera:
  location: [0, 0, 0]
  target: [0, 10, 0]
actors:
  - name: crate
    shape: box
    position: [0, 10, 0]
selection: [crate]
steps:
  - cursor: [400, 300]
  - key: G
  - cursor: [500, 300]
    tick: 1
  - key: LeftMouseButton
`))
	require.NoError(t, err)

	e, err := build(script)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{}, e.Camera.Location)

	result, err := Run(script, nil, nil)
	require.NoError(t, err)

	// looking along +Y with Z up, screen right is world +X
	crate := result.Actors[0]
	assert.Greater(t, crate.Position.X(), 1.0)
	assert.InDelta(t, 10, crate.Position.Y(), 1e-6)
	assert.InDelta(t, 0, crate.Position.Z(), 1e-6)
}

func TestBuild_DefaultCameraLocation(t *testing.T) {
	script, err := Decode([]byte(moveScript))
	require.NoError(t, err)

	e, err := build(script)
	require.NoError(t, err)
	assert.Equal(t, defaultLocation, e.Camera.Location)
}

func TestRun_Example(t *testing.T) {
	script, err := Load("testdata/example.yaml")
	require.NoError(t, err)

	result, err := Run(script, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Idle", result.State)
	assert.Equal(t, []string{"Modal Move", "Duplicate"}, result.Records)
	assert.Equal(t, 0, result.UndoIdx, "the duplicate was undone")
	assert.Len(t, result.Actors, 3)
	assert.Contains(t, result.Events, "lock Z world on Move")
	assert.Contains(t, result.Events, "duplicate (2)")
	assert.Contains(t, result.Events, "cancel Scale (2)")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	assert.Error(t, err)
}
