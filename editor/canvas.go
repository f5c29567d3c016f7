package editor

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Line is one recorded HUD line
type Line struct {
	From   mgl64.Vec2
	To     mgl64.Vec2
	Color  colorful.Color
	Dashed bool
}

// Canvas records the lines drawn during a frame
type Canvas struct {
	Lines []Line
}

func (c *Canvas) DrawLine(from, to mgl64.Vec2, clr color.Color, dashed bool) {
	// fully transparent colors are reported as not ok, they still map to black
	col, _ := colorful.MakeColor(clr)
	c.Lines = append(c.Lines, Line{From: from, To: to, Color: col, Dashed: dashed})
}

// Reset drops the recorded lines, called at the start of a frame
func (c *Canvas) Reset() {
	c.Lines = c.Lines[:0]
}
