// Package config loads the editor configuration from TOML.
//
// The file is optional and read-only: a missing file yields Default, and
// keys absent from the file keep their default values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "SPAGHET_EDITOR_CONFIG"

type Config struct {
	Window WindowConfig `toml:"window"`
	OpenGL OpenGLConfig `toml:"opengl"`
	GUI    GUIConfig    `toml:"gui"`
	Panels PanelsConfig `toml:"panels"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
	HighDPI   bool   `toml:"high_dpi"`
	VSync     bool   `toml:"vsync"`
}

type OpenGLConfig struct {
	Major int  `toml:"major"`
	Minor int  `toml:"minor"`
	Core  bool `toml:"core"`
}

type GUIConfig struct {
	NavKeyboard bool       `toml:"nav_keyboard"`
	NavGamepad  bool       `toml:"nav_gamepad"`
	Docking     bool       `toml:"docking"`
	Viewports   bool       `toml:"viewports"`
	ClearColor  [4]float32 `toml:"clear_color"`
}

// PanelsConfig holds the initial visibility of each panel.
type PanelsConfig struct {
	Hierarchy bool `toml:"hierarchy"`
	Inspector bool `toml:"inspector"`
	Project   bool `toml:"project"`
	Console   bool `toml:"console"`
	Scene     bool `toml:"scene"`
	Game      bool `toml:"game"`
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
	// ConsoleLines is how many records the Console panel keeps.
	ConsoleLines int `toml:"console_lines"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "Spaghet Editor",
			Width:     1280,
			Height:    720,
			Resizable: true,
			HighDPI:   true,
			VSync:     true,
		},
		OpenGL: OpenGLConfig{Major: 4, Minor: 1, Core: true},
		GUI: GUIConfig{
			NavKeyboard: true,
			NavGamepad:  true,
			Docking:     true,
			Viewports:   true,
			ClearColor:  [4]float32{0, 0, 0, 1},
		},
		Panels: PanelsConfig{
			Hierarchy: true,
			Inspector: true,
			Project:   true,
			Console:   true,
			Scene:     true,
			Game:      true,
		},
		Log: LogConfig{Level: "info", ConsoleLines: 256},
	}
}

// Path returns the config file location: $SPAGHET_EDITOR_CONFIG if set,
// else ~/.config/spaghet/editor.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return homedir.Expand(p)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("config: home directory: %w", err)
	}
	return filepath.Join(home, ".config", "spaghet", "editor.toml"), nil
}

// Load reads and validates the file at path. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("config: expand %q: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", expanded, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", expanded, err)
	}
	return cfg, nil
}

// Decode merges TOML data over cfg and validates the result. Unknown keys
// are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Window.Width < 320 || c.Window.Height < 240 {
		return fmt.Errorf("invalid window size %dx%d (minimum 320x240)", c.Window.Width, c.Window.Height)
	}
	if c.OpenGL.Major < 4 || (c.OpenGL.Major == 4 && c.OpenGL.Minor < 1) {
		return fmt.Errorf("invalid OpenGL version %d.%d (minimum 4.1)", c.OpenGL.Major, c.OpenGL.Minor)
	}
	for i, v := range c.GUI.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("invalid clear_color[%d]: %g (must be 0-1)", i, v)
		}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.ConsoleLines < 0 {
		return fmt.Errorf("invalid console_lines: %d", c.Log.ConsoleLines)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	l, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return l, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}
