// Command spaghet-editor opens the Spaghet engine editor: a window holding
// a main menu and the dockable Hierarchy, Inspector, Project, Console,
// Scene and Game panels.
//
// Prerequisites:
//
//	devbox shell                      # provides Go + OpenGL/X11 headers
//	go run ./cmd/spaghet-editor       # GLFW platform
//	go run -tags sdl ./cmd/spaghet-editor
//
// The configuration is read from $SPAGHET_EDITOR_CONFIG, falling back to
// ~/.config/spaghet/editor.toml. A missing file means defaults.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spaghet-engine/spaghet/gui"
	"github.com/spaghet-engine/spaghet/gui/backend/opengl"
	"github.com/spaghet-engine/spaghet/gui/backend/platformio"
	"github.com/spaghet-engine/spaghet/internal/config"
	"github.com/spaghet-engine/spaghet/internal/editor"
	"github.com/spaghet-engine/spaghet/internal/engine"
	"github.com/spaghet-engine/spaghet/internal/logging"
	"github.com/spaghet-engine/spaghet/internal/platform"
	"github.com/spaghet-engine/spaghet/internal/render"
)

func init() {
	// Windowing and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	path, err := config.Path()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log, ring := logging.New(os.Stderr, cfg.SlogLevel(), cfg.Log.ConsoleLines)
	slog.SetDefault(log)
	gui.SetLogger(log.With("component", "gui"))
	log.Info("configuration loaded", "path", path)

	eng := engine.New(log)
	if err := eng.Initialize(); err != nil {
		log.Error("engine failed to initialize", "error", err)
		return 1
	}
	defer eng.Shutdown()

	opts := []editor.Option{editor.WithLogger(log), editor.WithConfig(cfg)}
	if ring.Cap() > 0 {
		opts = append(opts, editor.WithConsole(ring))
	}
	p := platform.New(log)
	ed := editor.New(editor.Deps{
		Platform:    p,
		Graphics:    render.New(log),
		GUIPlatform: platformio.New(p),
		GUIRenderer: opengl.NewRenderer(),
	}, opts...)
	defer ed.Shutdown()

	if err := ed.Initialize(); err != nil {
		return 1
	}
	ed.Run()
	return 0
}
