// Package platform wraps the windowing and input library behind a small
// contract: initialization, windows, OpenGL contexts and an event queue.
//
// The default build uses GLFW. Building with -tags sdl selects SDL2.
// Every call must happen on the main OS thread.
package platform

import "unsafe"

// InitFlags select the subsystems started by Init.
type InitFlags uint32

const (
	InitVideo InitFlags = 1 << iota
	InitGamepad
)

// WindowFlags customize a window created by CreateWindow.
type WindowFlags uint32

const (
	WindowOpenGL WindowFlags = 1 << iota
	WindowResizable
	WindowHighPixelDensity
	WindowBorderless
	WindowHidden
)

// GLAttributes describe the OpenGL context to request.
type GLAttributes struct {
	Major, Minor int
	Core         bool
	// ForwardCompatible is required for core profiles on macOS.
	ForwardCompatible bool
	// SwapInterval is applied when a context is created: 0 disables vsync.
	SwapInterval int
}

// Window is an OS window handle. IDs are unique for the process lifetime.
type Window interface {
	ID() uint32
}

// GLContext is an OpenGL context handle.
type GLContext interface {
	// WindowID returns the ID of the window the context was created for.
	WindowID() uint32
}

// ProcAddressFunc resolves OpenGL entry points.
type ProcAddressFunc func(name string) unsafe.Pointer

// Platform is implemented by the GLFW and SDL2 backends.
type Platform interface {
	Name() string
	Init(flags InitFlags) error
	ConfigureGL(attr GLAttributes) error
	CreateWindow(title string, width, height int, flags WindowFlags) (Window, error)
	CreateGLContext(w Window) (GLContext, error)
	GetProcAddress(name string) unsafe.Pointer
	PollEvent() (Event, bool)
	WindowSize(w Window) (int, int)
	WindowPixelSize(w Window) (int, int)
	WindowPosition(w Window) (int, int)
	SetWindowPosition(w Window, x, y int)
	SetWindowSize(w Window, width, height int)
	// CreateSharedWindow creates a window whose context shares objects
	// with share. It is used for secondary GUI viewports.
	CreateSharedWindow(title string, x, y, width, height int, share GLContext) (Window, GLContext, error)
	MakeCurrent(w Window, c GLContext) error
	SwapWindow(w Window)
	DestroyGLContext(c GLContext)
	DestroyWindow(w Window)
	ClipboardText() string
	SetClipboardText(text string)
	Quit()
}
