package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Spaghet Editor", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.True(t, cfg.GUI.Docking)
	assert.True(t, cfg.GUI.Viewports)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cfg.GUI.ClearColor)
	assert.Equal(t, PanelsConfig{true, true, true, true, true, true}, cfg.Panels)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	data := `
[window]
width = 1920
height = 1080

[opengl]
major = 4
minor = 6

[gui]
viewports = false
clear_color = [0.1, 0.2, 0.3, 1.0]

[panels]
console = false

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 1080, cfg.Window.Height)
	assert.Equal(t, "Spaghet Editor", cfg.Window.Title, "unset keys keep defaults")
	assert.Equal(t, 6, cfg.OpenGL.Minor)
	assert.True(t, cfg.OpenGL.Core)
	assert.False(t, cfg.GUI.Viewports)
	assert.True(t, cfg.GUI.Docking)
	assert.InDelta(t, 0.2, cfg.GUI.ClearColor[1], 1e-6)
	assert.False(t, cfg.Panels.Console)
	assert.True(t, cfg.Panels.Scene)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "[window]\nfullscreen = true\n"},
		{"syntax", "[window\nwidth = 1\n"},
		{"small window", "[window]\nwidth = 100\n"},
		{"old OpenGL", "[opengl]\nmajor = 3\nminor = 3\n"},
		{"clear color range", "[gui]\nclear_color = [2.0, 0.0, 0.0, 1.0]\n"},
		{"log level", "[log]\nlevel = \"chatty\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, Decode([]byte(tt.data), &cfg))
		})
	}
}

func TestLoadInvalidFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = 10\n"), 0o644))
	cfg, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
	assert.Equal(t, Default(), cfg)
}

func TestPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(EnvPath, want)
	got, err := Path()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	got, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".config", "spaghet", "editor.toml"),
		filepath.Join(filepath.Base(filepath.Dir(filepath.Dir(got))), filepath.Base(filepath.Dir(got)), filepath.Base(got)))
}
