package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, 0.1, s.PrecisionFactor)
	assert.Equal(t, 11.25, s.RotationStep)
	assert.Equal(t, 100000.0, s.TraceDistance)
	assert.Equal(t, slog.LevelInfo, s.Level())
	assert.True(t, s.Highlight().AlmostEqualRgb(colorful.Color{R: 1, G: 1, B: 1}))
	assert.InDelta(t, 1.0, s.AxisColor(0).R, 1e-9)
}

func TestParse_Overrides(t *testing.T) {
	s, err := Parse([]byte(`
precision_factor = 0.25
rotation_step = 15.0
highlight_color = "#ff0000"
axis_colors = ["#110000", "#001100", "#000011"]
log_level = "debug"
draw_guides = false
`))
	require.NoError(t, err)

	assert.Equal(t, 0.25, s.PrecisionFactor)
	assert.Equal(t, 15.0, s.RotationStep)
	assert.False(t, s.DrawGuides)
	assert.True(t, s.DrawCursorLine, "untouched keys keep their default")
	assert.Equal(t, slog.LevelDebug, s.Level())
	assert.True(t, s.Highlight().AlmostEqualRgb(colorful.Color{R: 1}))
	assert.Equal(t, "#000011", s.AxisColor(2).Hex())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", `precision = 0.1`},
		{"bad toml", `precision_factor = `},
		{"negative precision", `precision_factor = -1.0`},
		{"zero rotation step", `rotation_step = 0.0`},
		{"zero snap offset step", `snap_offset_step = 0.0`},
		{"zero guide length", `guide_length = 0.0`},
		{"negative guide length", `guide_length = -1.0`},
		{"bad color", `highlight_color = "white"`},
		{"two axis colors", `axis_colors = ["#ff0000", "#00ff00"]`},
		{"bad level", `log_level = "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modal.toml")
	require.NoError(t, os.WriteFile(path, []byte("scale_step = 0.5\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.ScaleStep)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modal.toml")
	require.NoError(t, os.WriteFile(path, []byte("snap_offset_step = 1.0\n"), 0o644))

	w, err := NewWatcher(path, 10*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	reloaded := make(chan *Settings, 4)
	w.Start(func(s *Settings, err error) {
		if err == nil {
			reloaded <- s
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("snap_offset_step = 4.0\n"), 0o644))

	select {
	case s := <-reloaded:
		assert.Equal(t, 4.0, s.SnapOffsetStep)
	case <-time.After(5 * time.Second):
		t.Fatal("settings were not reloaded")
	}
}
