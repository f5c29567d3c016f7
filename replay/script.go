// Package replay drives a Mode from a YAML script of key presses, cursor moves and frames.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akmonengine/modal/host"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScript = errors.New("invalid script")

type Script struct {
	Camera    Camera   `yaml:"camera"`
	Actors    []Actor  `yaml:"actors"`
	Selection []string `yaml:"selection"`
	Steps     []Step   `yaml:"steps"`
}

type Camera struct {
	Width    int         `yaml:"width"`
	Height   int         `yaml:"height"`
	// Location is (-20, 0, 0) when unset
	Location *mgl64.Vec3 `yaml:"location"`
	Target   mgl64.Vec3  `yaml:"target"`
	Fov      float64     `yaml:"fov"`
}

// Actor is a level actor, Shape is one of box, sphere, plane or empty for no trace shape
type Actor struct {
	Name        string     `yaml:"name"`
	Shape       string     `yaml:"shape"`
	HalfExtents mgl64.Vec3 `yaml:"half_extents"`
	Radius      float64    `yaml:"radius"`
	Normal      mgl64.Vec3 `yaml:"normal"`
	Position    mgl64.Vec3 `yaml:"position"`
	// Rotation is yaw, pitch and roll in degrees
	Rotation mgl64.Vec3  `yaml:"rotation"`
	Scale    *mgl64.Vec3 `yaml:"scale"`
}

// Step is applied in field order: modifiers, cursor, key, undo, redo then ticks
type Step struct {
	Key    string      `yaml:"key"`
	Event  string      `yaml:"event"`
	Mods   []string    `yaml:"mods"`
	Cursor *mgl64.Vec2 `yaml:"cursor"`
	Tick   int         `yaml:"tick"`
	Undo   int         `yaml:"undo"`
	Redo   int         `yaml:"redo"`
}

var keys = []host.Key{
	host.KeyG, host.KeyR, host.KeyS,
	host.KeyX, host.KeyY, host.KeyZ,
	host.KeyD, host.KeyEscape,
	host.LeftMouseButton, host.RightMouseButton,
	host.MouseScrollUp, host.MouseScrollDown,
}

var modifiers = map[string]host.Modifiers{
	"shift": host.ModShift,
	"ctrl":  host.ModCtrl,
	"alt":   host.ModAlt,
}

var events = map[string]host.InputEvent{
	"":         host.Pressed,
	"pressed":  host.Pressed,
	"released": host.Released,
	"repeat":   host.Repeat,
}

// Load reads and validates a script file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}

	script, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", path, err)
	}

	return script, nil
}

// Decode parses a script, unknown fields are rejected
func Decode(data []byte) (*Script, error) {
	var script Script

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}

	return &script, nil
}

func (s *Script) Validate() error {
	names := make(map[string]bool, len(s.Actors))
	for i, a := range s.Actors {
		if a.Name == "" {
			return fmt.Errorf("%w: actor %d has no name", ErrInvalidScript, i)
		}
		if names[a.Name] {
			return fmt.Errorf("%w: duplicate actor %q", ErrInvalidScript, a.Name)
		}
		names[a.Name] = true

		switch a.Shape {
		case "", "box", "sphere":
		case "plane":
			if a.Normal.Len() == 0 {
				return fmt.Errorf("%w: plane %q has no normal", ErrInvalidScript, a.Name)
			}
		default:
			return fmt.Errorf("%w: actor %q has unknown shape %q", ErrInvalidScript, a.Name, a.Shape)
		}
	}

	for _, name := range s.Selection {
		if !names[name] {
			return fmt.Errorf("%w: selected actor %q does not exist", ErrInvalidScript, name)
		}
	}

	for i, step := range s.Steps {
		if _, err := step.input(); err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalidScript, i, err)
		}
		if step.Tick < 0 || step.Undo < 0 || step.Redo < 0 {
			return fmt.Errorf("%w: step %d: negative count", ErrInvalidScript, i)
		}
	}

	return nil
}

type stepInput struct {
	key   host.Key
	event host.InputEvent
	mods  host.Modifiers
}

func (s Step) input() (stepInput, error) {
	var in stepInput

	if s.Key != "" {
		key, ok := lookupKey(s.Key)
		if !ok {
			return in, fmt.Errorf("unknown key %q", s.Key)
		}
		in.key = key
	}

	event, ok := events[strings.ToLower(s.Event)]
	if !ok {
		return in, fmt.Errorf("unknown event %q", s.Event)
	}
	in.event = event

	for _, name := range s.Mods {
		mod, ok := modifiers[strings.ToLower(name)]
		if !ok {
			return in, fmt.Errorf("unknown modifier %q", name)
		}
		in.mods |= mod
	}

	return in, nil
}

func lookupKey(name string) (host.Key, bool) {
	for _, key := range keys {
		if strings.EqualFold(string(key), name) {
			return key, true
		}
	}

	return "", false
}
