package editor

import (
	"unsafe"

	"github.com/spaghet-engine/spaghet/gui"
	"github.com/spaghet-engine/spaghet/internal/platform"
)

// Platform is the windowing, input and GL context layer.
type Platform interface {
	Init(flags platform.InitFlags) error
	ConfigureGL(attr platform.GLAttributes) error
	CreateWindow(title string, width, height int, flags platform.WindowFlags) (platform.Window, error)
	CreateGLContext(w platform.Window) (platform.GLContext, error)
	GetProcAddress(name string) unsafe.Pointer
	PollEvent() (platform.Event, bool)
	WindowPixelSize(w platform.Window) (int, int)
	MakeCurrent(w platform.Window, c platform.GLContext) error
	SwapWindow(w platform.Window)
	DestroyGLContext(c platform.GLContext)
	DestroyWindow(w platform.Window)
	Quit()
}

// Graphics is the graphics API used outside the GUI renderer.
type Graphics interface {
	LoadFunctions(getProcAddr platform.ProcAddressFunc) error
	Viewport(x, y, width, height int32)
	Clear(color [4]float32)
}

// GUIPlatform binds a GUI context to the platform window and input.
type GUIPlatform interface {
	Init(ctx *gui.Context, w platform.Window, c platform.GLContext) error
	Shutdown()
	NewFrame()
	// ProcessEvent reports whether the GUI wants the event.
	ProcessEvent(ev platform.Event) bool
}

// GUIRenderer draws GUI draw data with the graphics API.
type GUIRenderer interface {
	Init(ctx *gui.Context) error
	Shutdown()
	NewFrame()
	RenderDrawData(dd *gui.DrawData)
}

// ContextFactory creates the GUI context.
type ContextFactory func(flags gui.ConfigFlags) (*gui.Context, error)

// Deps are the collaborators an Editor drives. All are required.
type Deps struct {
	Platform    Platform
	Graphics    Graphics
	GUIPlatform GUIPlatform
	GUIRenderer GUIRenderer
}
