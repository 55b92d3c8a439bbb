// Package platformio connects a gui.Context to the windowing platform:
// it translates platform events into GUI input and manages the OS windows
// of secondary viewports.
package platformio

import (
	"errors"
	"fmt"
	"time"

	"github.com/spaghet-engine/spaghet/gui"
	"github.com/spaghet-engine/spaghet/internal/platform"
)

// Host is the part of the windowing platform the GUI binding needs.
type Host interface {
	WindowSize(w platform.Window) (int, int)
	WindowPixelSize(w platform.Window) (int, int)
	WindowPosition(w platform.Window) (int, int)
	SetWindowPosition(w platform.Window, x, y int)
	SetWindowSize(w platform.Window, width, height int)
	CreateSharedWindow(title string, x, y, width, height int, share platform.GLContext) (platform.Window, platform.GLContext, error)
	MakeCurrent(w platform.Window, c platform.GLContext) error
	SwapWindow(w platform.Window)
	DestroyGLContext(c platform.GLContext)
	DestroyWindow(w platform.Window)
	ClipboardText() string
	SetClipboardText(text string)
}

// viewportData is stored in gui.Viewport.PlatformHandle.
type viewportData struct {
	window platform.Window
	glctx  platform.GLContext
}

// Binding feeds platform events and window metrics into a gui.Context
// and implements gui.PlatformIO on top of the host's shared-context
// windows.
type Binding struct {
	ctx   *gui.Context
	host  Host
	main  platform.Window
	glctx platform.GLContext

	now  func() time.Time
	last time.Time

	byWindow map[uint32]*gui.Viewport
}

// New returns a binding over host.
func New(host Host) *Binding {
	return &Binding{
		host:     host,
		now:      time.Now,
		byWindow: make(map[uint32]*gui.Viewport),
	}
}

// Init binds the context to the main window and its GL context.
func (b *Binding) Init(ctx *gui.Context, win platform.Window, glctx platform.GLContext) error {
	if ctx == nil || win == nil {
		return errors.New("platformio: platform binding needs a context and a window")
	}
	if b.ctx != nil {
		return errors.New("platformio: platform binding already initialized")
	}
	b.ctx = ctx
	b.main = win
	b.glctx = glctx
	b.last = time.Time{}

	ctx.IO().BackendPlatformName = "spaghet-platform"
	ctx.IO().Clipboard = b
	main := ctx.MainViewport()
	main.PlatformHandle = &viewportData{window: win, glctx: glctx}
	ctx.SetPlatformIO(b)
	return nil
}

// Shutdown destroys secondary windows and unbinds the context.
func (b *Binding) Shutdown() {
	if b.ctx == nil {
		return
	}
	if !b.ctx.Destroyed() {
		b.ctx.DestroyPlatformWindows()
		b.ctx.MainViewport().PlatformHandle = nil
		b.ctx.SetPlatformIO(nil)
		b.ctx.IO().BackendPlatformName = ""
		b.ctx.IO().Clipboard = nil
	}
	clear(b.byWindow)
	b.ctx = nil
	b.main = nil
	b.glctx = nil
}

// NewFrame updates display size, framebuffer scale and delta time.
func (b *Binding) NewFrame() {
	if b.ctx == nil {
		return
	}
	io := b.ctx.IO()
	w, h := b.host.WindowSize(b.main)
	fbW, fbH := b.host.WindowPixelSize(b.main)
	io.DisplaySize = gui.Vec2{X: float32(w), Y: float32(h)}
	if w > 0 && h > 0 {
		io.DisplayFramebufferScale = gui.Vec2{X: float32(fbW) / float32(w), Y: float32(fbH) / float32(h)}
	}

	now := b.now()
	if b.last.IsZero() {
		io.DeltaTime = 1.0 / 60.0
	} else {
		io.DeltaTime = float32(now.Sub(b.last).Seconds())
		if io.DeltaTime <= 0 {
			io.DeltaTime = 1e-4
		}
	}
	b.last = now

	for _, vp := range b.ctx.Viewports() {
		if vp.IsMain() {
			continue
		}
		if d, ok := vp.PlatformHandle.(*viewportData); ok {
			_, ph := b.host.WindowPixelSize(d.window)
			_, lh := b.host.WindowSize(d.window)
			if lh > 0 {
				s := float32(ph) / float32(lh)
				vp.FramebufferScale = gui.Vec2{X: s, Y: s}
			}
		}
	}
}

// ProcessEvent applies an event to the GUI input state. It reports whether
// the GUI wants to consume it.
func (b *Binding) ProcessEvent(ev platform.Event) bool {
	if b.ctx == nil {
		return false
	}
	io := b.ctx.IO()
	in := io.Input
	switch ev.Type {
	case platform.EventMouseMotion:
		x, y := b.toGUI(ev.WindowID, ev.X, ev.Y)
		in.SetMousePos(x, y)
		return io.WantCaptureMouse
	case platform.EventMouseButton:
		setMods(in, ev.Mods)
		if b, ok := mouseButtons[ev.Button]; ok {
			in.SetMouseButton(b, ev.Down)
		}
		return io.WantCaptureMouse
	case platform.EventMouseWheel:
		in.AddMouseWheel(ev.X, ev.Y)
		return io.WantCaptureMouse
	case platform.EventKey:
		setMods(in, ev.Mods)
		if k, ok := keys[ev.Key]; ok {
			in.SetKey(k, ev.Down)
		}
		return io.WantCaptureKeyboard
	case platform.EventText:
		in.AddInputChar(ev.Char)
		return io.WantCaptureKeyboard
	case platform.EventGamepadButton:
		switch ev.Gamepad {
		case platform.GamepadLeftShoulder:
			in.SetKey(gui.KeyGamepadL1, ev.Down)
		case platform.GamepadRightShoulder:
			in.SetKey(gui.KeyGamepadR1, ev.Down)
		}
		return false
	case platform.EventWindowClose:
		if vp := b.byWindow[ev.WindowID]; vp != nil {
			vp.PlatformRequestClose = true
			return true
		}
	}
	return false
}

// toGUI converts a position local to the platform window into main-window
// client coordinates.
func (b *Binding) toGUI(windowID uint32, x, y float32) (float32, float32) {
	vp := b.byWindow[windowID]
	if vp == nil {
		return x, y
	}
	d := vp.PlatformHandle.(*viewportData)
	wx, wy := b.host.WindowPosition(d.window)
	mx, my := b.host.WindowPosition(b.main)
	return x + float32(wx-mx), y + float32(wy-my)
}

func (b *Binding) toScreen(pos gui.Vec2) (int, int) {
	mx, my := b.host.WindowPosition(b.main)
	return mx + int(pos.X), my + int(pos.Y)
}

// CreateWindow opens an OS window for a secondary viewport, sharing
// objects with the main GL context.
func (b *Binding) CreateWindow(vp *gui.Viewport) error {
	x, y := b.toScreen(vp.Pos)
	title := "spaghet"
	if w := vp.Window(); w != nil {
		title = w.Name
	}
	win, glctx, err := b.host.CreateSharedWindow(title, x, y, int(vp.Size.X), int(vp.Size.Y), b.glctx)
	if err != nil {
		return fmt.Errorf("create window for %s: %w", vp, err)
	}
	vp.PlatformHandle = &viewportData{window: win, glctx: glctx}
	b.byWindow[win.ID()] = vp
	// Creating the window may have switched the current context.
	if err := b.host.MakeCurrent(b.main, b.glctx); err != nil {
		gui.Logger().Warn("restore main context", "err", err)
	}
	return nil
}

func (b *Binding) DestroyWindow(vp *gui.Viewport) {
	d, ok := vp.PlatformHandle.(*viewportData)
	if !ok {
		return
	}
	delete(b.byWindow, d.window.ID())
	b.host.DestroyGLContext(d.glctx)
	b.host.DestroyWindow(d.window)
	vp.PlatformHandle = nil
	if err := b.host.MakeCurrent(b.main, b.glctx); err != nil {
		gui.Logger().Warn("restore main context", "err", err)
	}
}

func (b *Binding) SetWindowPos(vp *gui.Viewport, pos gui.Vec2) {
	if d, ok := vp.PlatformHandle.(*viewportData); ok {
		x, y := b.toScreen(pos)
		b.host.SetWindowPosition(d.window, x, y)
	}
}

func (b *Binding) SetWindowSize(vp *gui.Viewport, size gui.Vec2) {
	if d, ok := vp.PlatformHandle.(*viewportData); ok {
		b.host.SetWindowSize(d.window, int(size.X), int(size.Y))
	}
}

func (b *Binding) RenderWindow(vp *gui.Viewport) {
	if d, ok := vp.PlatformHandle.(*viewportData); ok {
		if err := b.host.MakeCurrent(d.window, d.glctx); err != nil {
			gui.Logger().Warn("make viewport current", "viewport", vp, "err", err)
		}
	}
}

func (b *Binding) SwapBuffers(vp *gui.Viewport) {
	if d, ok := vp.PlatformHandle.(*viewportData); ok {
		b.host.SwapWindow(d.window)
	}
}

func setMods(in *gui.InputState, m platform.Mod) {
	in.ModShift = m&platform.ModShift != 0
	in.ModCtrl = m&platform.ModCtrl != 0
	in.ModAlt = m&platform.ModAlt != 0
	in.ModSuper = m&platform.ModSuper != 0
}

var mouseButtons = map[platform.MouseButton]gui.MouseButton{
	platform.MouseLeft:   gui.MouseButtonLeft,
	platform.MouseRight:  gui.MouseButtonRight,
	platform.MouseMiddle: gui.MouseButtonMiddle,
}

var keys = map[platform.Key]gui.Key{
	platform.KeyTab:       gui.KeyTab,
	platform.KeyLeft:      gui.KeyLeft,
	platform.KeyRight:     gui.KeyRight,
	platform.KeyUp:        gui.KeyUp,
	platform.KeyDown:      gui.KeyDown,
	platform.KeyPageUp:    gui.KeyPageUp,
	platform.KeyPageDown:  gui.KeyPageDown,
	platform.KeyHome:      gui.KeyHome,
	platform.KeyEnd:       gui.KeyEnd,
	platform.KeyDelete:    gui.KeyDelete,
	platform.KeyBackspace: gui.KeyBackspace,
	platform.KeySpace:     gui.KeySpace,
	platform.KeyEnter:     gui.KeyEnter,
	platform.KeyEscape:    gui.KeyEscape,
	platform.KeyA:         gui.KeyA,
	platform.KeyC:         gui.KeyC,
	platform.KeyV:         gui.KeyV,
	platform.KeyX:         gui.KeyX,
	platform.KeyY:         gui.KeyY,
	platform.KeyZ:         gui.KeyZ,
}

// GetText implements gui.ClipboardProvider.
func (b *Binding) GetText() string {
	return b.host.ClipboardText()
}

// SetText implements gui.ClipboardProvider.
func (b *Binding) SetText(text string) {
	b.host.SetClipboardText(text)
}
