// Package config loads the modal tool settings from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Settings tunes the modal tools. Angles are in degrees.
type Settings struct {
	// PrecisionFactor scales every delta while Shift is held
	PrecisionFactor float64 `toml:"precision_factor"`
	// RotationStep is the increment of the Ctrl angle stepping
	RotationStep float64 `toml:"rotation_step"`
	// ScaleStep is the increment of the Ctrl scale stepping
	ScaleStep float64 `toml:"scale_step"`
	// SnapOffsetStep is added to the snap standoff per scroll notch
	SnapOffsetStep float64 `toml:"snap_offset_step"`
	// SnapOffset is the standoff a move starts with
	SnapOffset float64 `toml:"snap_offset"`
	// TraceDistance is the length of surface snap traces
	TraceDistance float64 `toml:"trace_distance"`
	// TrackballSpeed multiplies the trackball angle
	TrackballSpeed float64 `toml:"trackball_speed"`
	// GuideLength is the half length of the axis guide lines
	GuideLength float64 `toml:"guide_length"`

	DrawGuides     bool `toml:"draw_guides"`
	DrawCursorLine bool `toml:"draw_cursor_line"`

	HighlightColor  string   `toml:"highlight_color"`
	AxisColors      []string `toml:"axis_colors"`
	CursorLineColor string   `toml:"cursor_line_color"`

	LogLevel string `toml:"log_level"`

	highlight  colorful.Color
	axisColors [3]colorful.Color
	cursorLine colorful.Color
	level      slog.Level
}

// Default returns the built-in settings
func Default() *Settings {
	s := &Settings{
		PrecisionFactor: 0.1,
		RotationStep:    11.25,
		ScaleStep:       0.1,
		SnapOffsetStep:  1,
		SnapOffset:      0,
		TraceDistance:   100000,
		TrackballSpeed:  1,
		GuideLength:     100000,
		DrawGuides:      true,
		DrawCursorLine:  true,
		HighlightColor:  "#ffffff",
		AxisColors:      []string{"#ff3352", "#8bdc00", "#2890ff"},
		CursorLineColor: "#000000",
		LogLevel:        "INFO",
	}
	if err := s.Validate(); err != nil {
		panic(err)
	}

	return s
}

// Load reads the settings file at path on top of the defaults
func Load(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}

	return s, nil
}

// Parse decodes TOML settings on top of the defaults
func Parse(data []byte) (*Settings, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads TOML settings on top of the defaults, unknown keys are rejected
func Decode(r io.Reader) (*Settings, error) {
	s := Default()

	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(s); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown settings: %s", strict.String())
		}
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the ranges and parses the colors and log level
func (s *Settings) Validate() error {
	if s.PrecisionFactor <= 0 {
		return fmt.Errorf("precision_factor must be positive, got %v", s.PrecisionFactor)
	}
	if s.RotationStep <= 0 || s.RotationStep > 360 {
		return fmt.Errorf("rotation_step must be in (0, 360], got %v", s.RotationStep)
	}
	if s.ScaleStep <= 0 {
		return fmt.Errorf("scale_step must be positive, got %v", s.ScaleStep)
	}
	if s.TraceDistance <= 0 {
		return fmt.Errorf("trace_distance must be positive, got %v", s.TraceDistance)
	}
	if s.TrackballSpeed <= 0 {
		return fmt.Errorf("trackball_speed must be positive, got %v", s.TrackballSpeed)
	}
	if s.SnapOffsetStep <= 0 {
		return fmt.Errorf("snap_offset_step must be positive, got %v", s.SnapOffsetStep)
	}
	if s.GuideLength <= 0 {
		return fmt.Errorf("guide_length must be positive, got %v", s.GuideLength)
	}
	if len(s.AxisColors) != 3 {
		return fmt.Errorf("axis_colors needs 3 colors, got %d", len(s.AxisColors))
	}

	var err error
	if s.highlight, err = colorful.Hex(s.HighlightColor); err != nil {
		return fmt.Errorf("highlight_color: %w", err)
	}
	if s.cursorLine, err = colorful.Hex(s.CursorLineColor); err != nil {
		return fmt.Errorf("cursor_line_color: %w", err)
	}
	for i, hex := range s.AxisColors {
		if s.axisColors[i], err = colorful.Hex(hex); err != nil {
			return fmt.Errorf("axis_colors[%d]: %w", i, err)
		}
	}
	if err := s.level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	return nil
}

// Highlight is the selection outline color while a tool is active
func (s *Settings) Highlight() colorful.Color {
	return s.highlight
}

// AxisColor is the guide color of axis 0 (X), 1 (Y) or 2 (Z)
func (s *Settings) AxisColor(i int) colorful.Color {
	return s.axisColors[i]
}

// CursorLine is the color of the dashed cursor to pivot line
func (s *Settings) CursorLine() colorful.Color {
	return s.cursorLine
}

func (s *Settings) Level() slog.Level {
	return s.level
}
