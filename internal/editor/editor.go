// Package editor implements the editor shell: it brings up the platform,
// OpenGL and GUI in order, runs the frame loop drawing the dockable panel
// layout, and tears everything down in reverse.
package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spaghet-engine/spaghet/gui"
	"github.com/spaghet-engine/spaghet/internal/config"
	"github.com/spaghet-engine/spaghet/internal/logging"
	"github.com/spaghet-engine/spaghet/internal/platform"
)

// Initialization failures. Initialize wraps exactly one of them.
var (
	ErrPlatformInit    = errors.New("platform initialization failed")
	ErrWindowCreation  = errors.New("window creation failed")
	ErrRenderContext   = errors.New("render context creation failed")
	ErrFunctionLoad    = errors.New("render function loading failed")
	ErrGUIContext      = errors.New("GUI context creation failed")
	ErrGUIPlatformBind = errors.New("GUI platform binding failed")
	ErrGUIRendererBind = errors.New("GUI renderer binding failed")
)

// State is the editor lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateRunning
	StateShuttingDown
	StateTerminated
)

var stateNames = [...]string{
	StateUninitialized: "uninitialized",
	StateInitializing:  "initializing",
	StateRunning:       "running",
	StateShuttingDown:  "shutting-down",
	StateTerminated:    "terminated",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ConsoleSource supplies the records listed by the Console panel.
type ConsoleSource interface {
	Entries() []logging.Entry
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(e *Editor) { e.cfg = cfg }
}

// WithGUIContextFactory replaces gui.CreateContext.
func WithGUIContextFactory(f ContextFactory) Option {
	return func(e *Editor) {
		if f != nil {
			e.newGUIContext = f
		}
	}
}

// WithConsole sets the source of Console panel lines.
func WithConsole(src ConsoleSource) Option {
	return func(e *Editor) { e.console = src }
}

// Editor owns the platform window, GL context and GUI context for the
// lifetime of the process. It must be used from the main OS thread.
type Editor struct {
	deps          Deps
	cfg           config.Config
	log           *slog.Logger
	newGUIContext ContextFactory
	console       ConsoleSource

	state State

	platformInitialized    bool
	window                 platform.Window
	glContext              platform.GLContext
	guiContext             *gui.Context
	guiPlatformInitialized bool
	guiRendererInitialized bool

	shouldQuit  bool
	firstRun    bool
	resetLayout bool
	visible     [panelCount]bool
	consoleView consoleView

	frames       uint64
	layoutBuilds int
}

// New returns an uninitialized editor. It has no side effects.
func New(deps Deps, opts ...Option) *Editor {
	e := &Editor{
		deps:          deps,
		cfg:           config.Default(),
		log:           slog.Default(),
		newGUIContext: gui.CreateContext,
		consoleView:   consoleView{follow: true},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("component", "editor")
	p := e.cfg.Panels
	e.visible = [panelCount]bool{
		PanelHierarchy: p.Hierarchy,
		PanelInspector: p.Inspector,
		PanelProject:   p.Project,
		PanelConsole:   p.Console,
		PanelScene:     p.Scene,
		PanelGame:      p.Game,
	}
	return e
}

// State returns the lifecycle state.
func (e *Editor) State() State {
	return e.state
}

// GUIContext returns the GUI context, or nil before it is created and
// after Shutdown.
func (e *Editor) GUIContext() *gui.Context {
	return e.guiContext
}

func (e *Editor) guiFlags() gui.ConfigFlags {
	var flags gui.ConfigFlags
	g := e.cfg.GUI
	if g.NavKeyboard {
		flags |= gui.ConfigNavEnableKeyboard
	}
	if g.NavGamepad {
		flags |= gui.ConfigNavEnableGamepad
	}
	if g.Docking {
		flags |= gui.ConfigDockingEnable
	}
	if g.Viewports {
		flags |= gui.ConfigViewportsEnable
	}
	return flags
}

func (e *Editor) fail(sentinel, cause error, msg string) error {
	err := fmt.Errorf("%w: %w", sentinel, cause)
	e.log.Error(msg, "error", err)
	e.state = StateTerminated
	return err
}

// Initialize acquires every resource in dependency order. The first
// failing step aborts the rest; resources already acquired stay owned
// until Shutdown.
func (e *Editor) Initialize() error {
	if e.state != StateUninitialized {
		return fmt.Errorf("initialize: editor is %s", e.state)
	}
	e.state = StateInitializing
	d := e.deps
	switch {
	case d.Platform == nil:
		return e.fail(ErrPlatformInit, errors.New("no platform"), "editor platform failed to initialize")
	case d.Graphics == nil:
		return e.fail(ErrFunctionLoad, errors.New("no graphics API"), "editor failed to load renderer function pointers")
	case d.GUIPlatform == nil:
		return e.fail(ErrGUIPlatformBind, errors.New("no GUI platform binding"), "editor GUI failed to initialize for platform")
	case d.GUIRenderer == nil:
		return e.fail(ErrGUIRendererBind, errors.New("no GUI renderer"), "editor GUI failed to initialize for renderer")
	}

	if err := d.Platform.Init(platform.InitVideo | platform.InitGamepad); err != nil {
		return e.fail(ErrPlatformInit, err, "editor platform failed to initialize")
	}
	e.platformInitialized = true
	e.log.Info("editor platform initialized")

	gl := e.cfg.OpenGL
	attr := platform.GLAttributes{
		Major:             gl.Major,
		Minor:             gl.Minor,
		Core:              gl.Core,
		ForwardCompatible: gl.Core,
	}
	if e.cfg.Window.VSync {
		attr.SwapInterval = 1
	}
	if err := d.Platform.ConfigureGL(attr); err != nil {
		return e.fail(ErrPlatformInit, err,
			fmt.Sprintf("editor platform failed to configure for OpenGL %d.%d core", gl.Major, gl.Minor))
	}

	wc := e.cfg.Window
	flags := platform.WindowOpenGL
	if wc.Resizable {
		flags |= platform.WindowResizable
	}
	if wc.HighDPI {
		flags |= platform.WindowHighPixelDensity
	}
	win, err := d.Platform.CreateWindow(wc.Title, wc.Width, wc.Height, flags)
	if err != nil {
		return e.fail(ErrWindowCreation, err, "editor failed to create window")
	}
	e.window = win
	e.log.Info("editor window created", "width", wc.Width, "height", wc.Height)

	glctx, err := d.Platform.CreateGLContext(win)
	if err != nil {
		return e.fail(ErrRenderContext, err, "editor failed to create renderer context")
	}
	e.glContext = glctx
	e.log.Info("editor renderer context created")

	if err := d.Graphics.LoadFunctions(d.Platform.GetProcAddress); err != nil {
		return e.fail(ErrFunctionLoad, err, "editor failed to load renderer function pointers")
	}
	e.updateViewport()

	ctx, err := e.newGUIContext(e.guiFlags())
	if err == nil && ctx == nil {
		err = errors.New("factory returned no context")
	}
	if err != nil {
		return e.fail(ErrGUIContext, err, "editor failed to create GUI context")
	}
	e.guiContext = ctx
	e.log.Info("editor GUI context created", "flags", ctx.IO().ConfigFlags)

	if err := d.GUIPlatform.Init(ctx, win, glctx); err != nil {
		return e.fail(ErrGUIPlatformBind, err, "editor GUI failed to initialize for platform")
	}
	e.guiPlatformInitialized = true
	e.log.Info("editor GUI initialized for platform")

	if err := d.GUIRenderer.Init(ctx); err != nil {
		return e.fail(ErrGUIRendererBind, err, "editor GUI failed to initialize for renderer")
	}
	e.guiRendererInitialized = true
	e.log.Info("editor GUI initialized for renderer")

	e.state = StateRunning
	return nil
}

// Shutdown releases every owned resource in reverse order of acquisition.
// It is safe to call any number of times, whether or not Initialize
// succeeded.
func (e *Editor) Shutdown() {
	if e.state == StateTerminated && !e.ownsResources() {
		return
	}
	e.state = StateShuttingDown
	d := e.deps

	if e.guiRendererInitialized {
		d.GUIRenderer.Shutdown()
		e.guiRendererInitialized = false
		e.log.Info("editor GUI shut down for renderer")
	}
	if e.guiPlatformInitialized {
		d.GUIPlatform.Shutdown()
		e.guiPlatformInitialized = false
		e.log.Info("editor GUI shut down for platform")
	}
	if e.guiContext != nil {
		e.guiContext.Destroy()
		e.guiContext = nil
		e.log.Info("editor GUI context destroyed")
	}
	if e.glContext != nil {
		d.Platform.DestroyGLContext(e.glContext)
		e.glContext = nil
		e.log.Info("editor renderer context destroyed")
	}
	if e.window != nil {
		d.Platform.DestroyWindow(e.window)
		e.window = nil
		e.log.Info("editor window destroyed")
	}
	if e.platformInitialized {
		d.Platform.Quit()
		e.platformInitialized = false
		e.log.Info("editor platform shut down")
	}
	e.state = StateTerminated
}

func (e *Editor) ownsResources() bool {
	return e.platformInitialized || e.window != nil || e.glContext != nil ||
		e.guiContext != nil || e.guiPlatformInitialized || e.guiRendererInitialized
}

// RequestQuit ends Run after the current frame.
func (e *Editor) RequestQuit() {
	e.shouldQuit = true
}

// ShouldQuit reports whether a quit was requested.
func (e *Editor) ShouldQuit() bool {
	return e.shouldQuit
}

// ResetLayout rebuilds the default dock layout on the next frame.
func (e *Editor) ResetLayout() {
	e.resetLayout = true
}

// Frames returns the number of frames presented.
func (e *Editor) Frames() uint64 {
	return e.frames
}
