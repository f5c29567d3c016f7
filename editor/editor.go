// Package editor is an in-memory host for the modal tools: a level of traceable actors, a camera,
// a selection, an undo journal and a recording HUD canvas.
package editor

import (
	"fmt"
	"image/color"

	"github.com/akmonengine/modal/actor"
	"github.com/akmonengine/modal/host"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultOutlineColor is the selection outline color outside of a modal operation
var DefaultOutlineColor = colorful.Color{R: 0.95, G: 0.55, B: 0.1}

type Editor struct {
	Level     *Level
	Selection *Selection
	Journal   *Journal
	Camera    *Camera
	Canvas    *Canvas

	outline colorful.Color
}

// New creates an empty editor with a width x height viewport
func New(width, height int) *Editor {
	level := &Level{}
	selection := NewSelection()

	return &Editor{
		Level:     level,
		Selection: selection,
		Journal:   NewJournal(level, selection),
		Camera:    NewCamera(width, height),
		Canvas:    &Canvas{},
		outline:   DefaultOutlineColor,
	}
}

func (e *Editor) LineTrace(start, end mgl64.Vec3, ignore []actor.Object) (host.TraceHit, bool) {
	return e.Level.LineTrace(start, end, ignore)
}

// Duplicate places a copy of every actor in the level and selects the copies.
// Objects that are not level actors are skipped.
func (e *Editor) Duplicate(objects []actor.Object) []actor.Object {
	copies := make([]actor.Object, 0, len(objects))
	for _, object := range objects {
		source, ok := object.(*actor.Actor)
		if !ok || !e.Level.Contains(source) {
			continue
		}

		clone := source.Clone()
		clone.Name = e.uniqueName(source.Name)
		e.Level.AddActor(clone)
		e.Journal.Created(clone)
		copies = append(copies, clone)
	}

	if len(copies) > 0 {
		e.Selection.Select(copies...)
	}

	return copies
}

func (e *Editor) OutlineColor() color.Color {
	return e.outline
}

func (e *Editor) SetOutlineColor(c color.Color) {
	if col, ok := c.(colorful.Color); ok {
		e.outline = col
		return
	}
	if col, ok := colorful.MakeColor(c); ok {
		e.outline = col
	}
}

// Outline is the current outline color
func (e *Editor) Outline() colorful.Color {
	return e.outline
}

func (e *Editor) uniqueName(name string) string {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if _, found := e.Level.Find(candidate); !found {
			return candidate
		}
	}
}
