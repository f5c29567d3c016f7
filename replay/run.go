package replay

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/akmonengine/modal"
	"github.com/akmonengine/modal/actor"
	"github.com/akmonengine/modal/config"
	"github.com/akmonengine/modal/editor"
	"github.com/akmonengine/modal/tool"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
)

var defaultLocation = mgl64.Vec3{-20, 0, 0}

type Result struct {
	State   string        `yaml:"state"`
	Actors  []ActorResult `yaml:"actors"`
	Records []string      `yaml:"records"`
	UndoIdx int           `yaml:"undo_index"`
	Events  []string      `yaml:"events"`
	Steps   []StepResult  `yaml:"steps"`
	Lines   int           `yaml:"overlay_lines"`
}

type ActorResult struct {
	Name     string     `yaml:"name"`
	Position mgl64.Vec3 `yaml:"position"`
	// Rotation is the quaternion as w, x, y, z
	Rotation [4]float64 `yaml:"rotation"`
	Scale    mgl64.Vec3 `yaml:"scale"`
	Selected bool       `yaml:"selected"`
}

type StepResult struct {
	Key      string `yaml:"key,omitempty"`
	Consumed bool   `yaml:"consumed"`
	State    string `yaml:"state"`
}

// Run plays the script against a fresh in-memory editor. The mode is exited at the end,
// so an operation left open is cancelled.
func Run(script *Script, settings *config.Settings, logger *slog.Logger) (*Result, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}
	if settings == nil {
		settings = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	e, err := build(script)
	if err != nil {
		return nil, err
	}

	mode := modal.New(tool.Context{
		Viewport:  e.Camera,
		Selection: e.Selection,
		Journal:   e.Journal,
		Scene:     e,
		Canvas:    e.Canvas,
		Outline:   e,
		Settings:  settings,
		Logger:    logger,
	})

	result := &Result{}
	record := func(event modal.Event) {
		result.Events = append(result.Events, describe(event))
	}
	for _, eventType := range []modal.EventType{
		modal.TOOL_BEGIN, modal.TOOL_ACCEPT, modal.TOOL_CANCEL,
		modal.AXIS_LOCK, modal.TRANSFORM_RESET, modal.DUPLICATE,
	} {
		mode.Events.Subscribe(eventType, record)
	}

	mode.Enter()
	for i, step := range script.Steps {
		in, err := step.input()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		e.Camera.Mods = in.mods
		if step.Cursor != nil {
			e.Camera.Cursor = *step.Cursor
		}

		stepResult := StepResult{Key: string(in.key)}
		if in.key != "" {
			stepResult.Consumed = mode.InputKey(in.key, in.event)
		}
		for range step.Undo {
			if action, ok := e.Journal.Undo(); ok {
				logger.Debug("undo", "action", action)
			}
		}
		for range step.Redo {
			if action, ok := e.Journal.Redo(); ok {
				logger.Debug("redo", "action", action)
			}
		}
		for range step.Tick {
			e.Canvas.Reset()
			mode.Tick()
		}

		stepResult.State = mode.State().String()
		result.Steps = append(result.Steps, stepResult)
	}

	result.State = mode.State().String()
	result.Lines = len(e.Canvas.Lines)
	mode.Exit()

	for _, a := range e.Level.Actors {
		result.Actors = append(result.Actors, actorResult(a, e.Selection.IsSelected(a)))
	}
	for _, r := range e.Journal.Records {
		result.Records = append(result.Records, r.Action)
	}
	result.UndoIdx = e.Journal.Idx

	return result, nil
}

func build(script *Script) (*editor.Editor, error) {
	width, height := script.Camera.Width, script.Camera.Height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}

	e := editor.New(width, height)
	if script.Camera.Fov > 0 {
		e.Camera.Fov = script.Camera.Fov
	}
	e.Camera.Location = defaultLocation
	if script.Camera.Location != nil {
		e.Camera.Location = *script.Camera.Location
	}
	if script.Camera.Target == e.Camera.Location {
		return nil, fmt.Errorf("%w: camera target equals its location", ErrInvalidScript)
	}
	e.Camera.LookAt(script.Camera.Target)

	for _, a := range script.Actors {
		e.Level.AddActor(newActor(a))
	}

	selection := make([]actor.Object, 0, len(script.Selection))
	for _, name := range script.Selection {
		if a, ok := e.Level.Find(name); ok {
			selection = append(selection, a)
		}
	}
	e.Selection.Select(selection...)

	return e, nil
}

func newActor(a Actor) *actor.Actor {
	transform := actor.NewTransform()
	transform.Position = a.Position
	transform.Rotation = mgl64.AnglesToQuat(
		mgl64.DegToRad(a.Rotation.X()),
		mgl64.DegToRad(a.Rotation.Y()),
		mgl64.DegToRad(a.Rotation.Z()),
		mgl64.ZYX,
	)
	if a.Scale != nil {
		transform.Scale = *a.Scale
	}

	var shape actor.ShapeInterface
	switch a.Shape {
	case "box":
		halfExtents := a.HalfExtents
		if halfExtents == (mgl64.Vec3{}) {
			halfExtents = mgl64.Vec3{0.5, 0.5, 0.5}
		}
		shape = &actor.Box{HalfExtents: halfExtents}
	case "sphere":
		radius := a.Radius
		if radius <= 0 {
			radius = 0.5
		}
		shape = &actor.Sphere{Radius: radius}
	case "plane":
		shape = &actor.Plane{Normal: a.Normal.Normalize()}
	}

	return actor.NewActor(a.Name, transform, shape)
}

func actorResult(a *actor.Actor, selected bool) ActorResult {
	t := a.Transform
	return ActorResult{
		Name:     a.Name,
		Position: roundVec(t.Position),
		Rotation: [4]float64{round(t.Rotation.W), round(t.Rotation.V.X()), round(t.Rotation.V.Y()), round(t.Rotation.V.Z())},
		Scale:    roundVec(t.Scale),
		Selected: selected,
	}
}

// round keeps six decimals and folds negative zero
func round(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0
	}

	return r
}

func roundVec(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{round(v.X()), round(v.Y()), round(v.Z())}
}

func describe(event modal.Event) string {
	switch e := event.(type) {
	case modal.ToolBeginEvent:
		return fmt.Sprintf("begin %s (%d)", e.Tool, len(e.Objects))
	case modal.ToolAcceptEvent:
		return fmt.Sprintf("accept %s (%d)", e.Tool, len(e.Objects))
	case modal.ToolCancelEvent:
		if e.Forced {
			return fmt.Sprintf("cancel %s (%d, forced)", e.Tool, len(e.Objects))
		}
		return fmt.Sprintf("cancel %s (%d)", e.Tool, len(e.Objects))
	case modal.AxisLockEvent:
		space := "local"
		if e.WorldSpace {
			space = "world"
		}
		if e.Dual {
			return fmt.Sprintf("lock %s plane %s on %s", e.Axis, space, e.Tool)
		}
		return fmt.Sprintf("lock %s %s on %s", e.Axis, space, e.Tool)
	case modal.TransformResetEvent:
		return fmt.Sprintf("reset %s (%d)", e.Channel, len(e.Objects))
	case modal.DuplicateEvent:
		return fmt.Sprintf("duplicate (%d)", len(e.Copies))
	}

	return fmt.Sprintf("event %d", event.Type())
}
