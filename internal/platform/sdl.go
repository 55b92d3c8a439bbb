//go:build sdl

package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// SDL implements Platform with SDL2.
type SDL struct {
	log         *slog.Logger
	attr        GLAttributes
	flags       InitFlags
	windows     map[uint32]*sdlWindow
	mainID      uint32
	controllers map[sdl.JoystickID]*sdl.GameController
}

type sdlWindow struct {
	id  uint32
	win *sdl.Window
}

func (w *sdlWindow) ID() uint32 { return w.id }

type sdlContext struct {
	windowID uint32
	ctx      sdl.GLContext
}

func (c *sdlContext) WindowID() uint32 { return c.windowID }

// New returns the SDL2 platform.
func New(logger *slog.Logger) *SDL {
	if logger == nil {
		logger = slog.Default()
	}
	return &SDL{
		log:         logger.With("component", "platform"),
		windows:     make(map[uint32]*sdlWindow),
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
	}
}

func (p *SDL) Name() string { return "sdl2" }

func (p *SDL) Init(flags InitFlags) error {
	var sub uint32
	if flags&InitVideo != 0 {
		sub |= sdl.INIT_VIDEO
	}
	if flags&InitGamepad != 0 {
		sub |= sdl.INIT_GAMECONTROLLER
	}
	if err := sdl.Init(sub); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	p.flags = flags
	v := sdl.Version{}
	sdl.GetVersion(&v)
	p.log.Debug("sdl initialized", "version", fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch))
	return nil
}

func (p *SDL) ConfigureGL(attr GLAttributes) error {
	if attr.Major < 1 {
		return fmt.Errorf("invalid OpenGL version %d.%d", attr.Major, attr.Minor)
	}
	var flags int
	if attr.ForwardCompatible {
		flags |= sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG
	}
	profile := sdl.GL_CONTEXT_PROFILE_COMPATIBILITY
	if attr.Core {
		profile = sdl.GL_CONTEXT_PROFILE_CORE
	}
	sets := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_FLAGS, flags},
		{sdl.GL_CONTEXT_PROFILE_MASK, profile},
		{sdl.GL_CONTEXT_MAJOR_VERSION, attr.Major},
		{sdl.GL_CONTEXT_MINOR_VERSION, attr.Minor},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
		{sdl.GL_STENCIL_SIZE, 8},
	}
	for _, s := range sets {
		if err := sdl.GLSetAttribute(s.attr, s.value); err != nil {
			return fmt.Errorf("sdl gl attribute %d: %w", s.attr, err)
		}
	}
	p.attr = attr
	return nil
}

func sdlWindowFlags(flags WindowFlags) uint32 {
	var out uint32
	if flags&WindowOpenGL != 0 {
		out |= sdl.WINDOW_OPENGL
	}
	if flags&WindowResizable != 0 {
		out |= sdl.WINDOW_RESIZABLE
	}
	if flags&WindowHighPixelDensity != 0 {
		out |= sdl.WINDOW_ALLOW_HIGHDPI
	}
	if flags&WindowBorderless != 0 {
		out |= sdl.WINDOW_BORDERLESS
	}
	if flags&WindowHidden != 0 {
		out |= sdl.WINDOW_HIDDEN
	}
	return out
}

func (p *SDL) CreateWindow(title string, width, height int, flags WindowFlags) (Window, error) {
	win, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height), sdlWindowFlags(flags))
	if err != nil {
		return nil, fmt.Errorf("sdl create window: %w", err)
	}
	w, err := p.register(win)
	if err != nil {
		return nil, err
	}
	if p.mainID == 0 {
		p.mainID = w.id
	}
	return w, nil
}

func (p *SDL) register(win *sdl.Window) (*sdlWindow, error) {
	id, err := win.GetID()
	if err != nil {
		_ = win.Destroy()
		return nil, fmt.Errorf("sdl window id: %w", err)
	}
	w := &sdlWindow{id: id, win: win}
	p.windows[id] = w
	return w, nil
}

func (p *SDL) lookup(w Window) *sdlWindow {
	if w == nil {
		return nil
	}
	return p.windows[w.ID()]
}

func (p *SDL) CreateGLContext(w Window) (GLContext, error) {
	sw := p.lookup(w)
	if sw == nil {
		return nil, errors.New("sdl: unknown window")
	}
	ctx, err := sw.win.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("sdl create gl context: %w", err)
	}
	if err := sw.win.GLMakeCurrent(ctx); err != nil {
		sdl.GLDeleteContext(ctx)
		return nil, fmt.Errorf("sdl make current: %w", err)
	}
	if err := sdl.GLSetSwapInterval(p.attr.SwapInterval); err != nil {
		p.log.Warn("swap interval not supported", "interval", p.attr.SwapInterval, "error", err)
	}
	return &sdlContext{windowID: sw.id, ctx: ctx}, nil
}

func (p *SDL) GetProcAddress(name string) unsafe.Pointer {
	return sdl.GLGetProcAddress(name)
}

func (p *SDL) PollEvent() (Event, bool) {
	for {
		raw := sdl.PollEvent()
		if raw == nil {
			return Event{}, false
		}
		if ev, ok := p.translate(raw); ok {
			return ev, true
		}
	}
}

// translate maps an SDL event; events the editor does not use report
// false.
func (p *SDL) translate(raw sdl.Event) (Event, bool) {
	switch e := raw.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_CLOSE:
			return Event{Type: EventWindowClose, WindowID: e.WindowID}, true
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			ev := Event{Type: EventWindowResized, WindowID: e.WindowID}
			if sw := p.windows[e.WindowID]; sw != nil {
				w, h := sw.win.GLGetDrawableSize()
				ev.Width, ev.Height = int(w), int(h)
			} else {
				ev.Width, ev.Height = int(e.Data1), int(e.Data2)
			}
			return ev, true
		case sdl.WINDOWEVENT_MOVED:
			return Event{Type: EventWindowMoved, WindowID: e.WindowID, X: float32(e.Data1), Y: float32(e.Data2)}, true
		case sdl.WINDOWEVENT_FOCUS_GAINED:
			return Event{Type: EventWindowFocus, WindowID: e.WindowID, Focused: true}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			return Event{Type: EventWindowFocus, WindowID: e.WindowID}, true
		}
	case *sdl.KeyboardEvent:
		return Event{
			Type:     EventKey,
			WindowID: e.WindowID,
			Key:      sdlKey(e.Keysym.Sym),
			Mods:     sdlMods(e.Keysym.Mod),
			Down:     e.State == sdl.PRESSED,
		}, true
	case *sdl.TextInputEvent:
		text := e.GetText()
		if text == "" {
			return Event{}, false
		}
		return Event{Type: EventText, WindowID: e.WindowID, Char: []rune(text)[0]}, true
	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMotion, WindowID: e.WindowID, X: float32(e.X), Y: float32(e.Y)}, true
	case *sdl.MouseButtonEvent:
		return Event{
			Type:     EventMouseButton,
			WindowID: e.WindowID,
			Button:   sdlMouseButton(e.Button),
			X:        float32(e.X),
			Y:        float32(e.Y),
			Down:     e.State == sdl.PRESSED,
		}, true
	case *sdl.MouseWheelEvent:
		return Event{Type: EventMouseWheel, WindowID: e.WindowID, X: float32(e.X), Y: float32(e.Y)}, true
	case *sdl.ControllerDeviceEvent:
		p.handleController(e)
	case *sdl.ControllerButtonEvent:
		btn := GamepadUnknown
		switch sdl.GameControllerButton(e.Button) {
		case sdl.CONTROLLER_BUTTON_LEFTSHOULDER:
			btn = GamepadLeftShoulder
		case sdl.CONTROLLER_BUTTON_RIGHTSHOULDER:
			btn = GamepadRightShoulder
		}
		if btn == GamepadUnknown {
			return Event{}, false
		}
		return Event{Type: EventGamepadButton, Gamepad: btn, Down: e.State == sdl.PRESSED}, true
	}
	return Event{}, false
}

func (p *SDL) handleController(e *sdl.ControllerDeviceEvent) {
	if p.flags&InitGamepad == 0 {
		return
	}
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		gc := sdl.GameControllerOpen(int(e.Which))
		if gc == nil {
			p.log.Warn("cannot open game controller", "index", e.Which, "error", sdl.GetError())
			return
		}
		id := gc.Joystick().InstanceID()
		p.controllers[id] = gc
		p.log.Debug("game controller added", "name", gc.Name())
	case sdl.CONTROLLERDEVICEREMOVED:
		if gc, ok := p.controllers[e.Which]; ok {
			gc.Close()
			delete(p.controllers, e.Which)
		}
	}
}

func (p *SDL) WindowSize(w Window) (int, int) {
	if sw := p.lookup(w); sw != nil {
		width, height := sw.win.GetSize()
		return int(width), int(height)
	}
	return 0, 0
}

func (p *SDL) WindowPixelSize(w Window) (int, int) {
	if sw := p.lookup(w); sw != nil {
		width, height := sw.win.GLGetDrawableSize()
		return int(width), int(height)
	}
	return 0, 0
}

func (p *SDL) WindowPosition(w Window) (int, int) {
	if sw := p.lookup(w); sw != nil {
		x, y := sw.win.GetPosition()
		return int(x), int(y)
	}
	return 0, 0
}

func (p *SDL) SetWindowPosition(w Window, x, y int) {
	if sw := p.lookup(w); sw != nil {
		sw.win.SetPosition(int32(x), int32(y))
	}
}

func (p *SDL) SetWindowSize(w Window, width, height int) {
	if sw := p.lookup(w); sw != nil {
		sw.win.SetSize(int32(width), int32(height))
	}
}

func (p *SDL) CreateSharedWindow(title string, x, y, width, height int, share GLContext) (Window, GLContext, error) {
	if sc, ok := share.(*sdlContext); ok && sc != nil {
		if sw := p.windows[sc.windowID]; sw != nil {
			if err := sw.win.GLMakeCurrent(sc.ctx); err != nil {
				return nil, nil, fmt.Errorf("sdl make current: %w", err)
			}
		}
		if err := sdl.GLSetAttribute(sdl.GL_SHARE_WITH_CURRENT_CONTEXT, 1); err != nil {
			return nil, nil, fmt.Errorf("sdl share context: %w", err)
		}
		defer sdl.GLSetAttribute(sdl.GL_SHARE_WITH_CURRENT_CONTEXT, 0)
	}
	win, err := sdl.CreateWindow(title, int32(x), int32(y), int32(width), int32(height),
		sdlWindowFlags(WindowOpenGL|WindowBorderless|WindowHighPixelDensity))
	if err != nil {
		return nil, nil, fmt.Errorf("sdl create window: %w", err)
	}
	w, err := p.register(win)
	if err != nil {
		return nil, nil, err
	}
	ctx, err := win.GLCreateContext()
	if err != nil {
		p.DestroyWindow(w)
		return nil, nil, fmt.Errorf("sdl create gl context: %w", err)
	}
	return w, &sdlContext{windowID: w.id, ctx: ctx}, nil
}

func (p *SDL) MakeCurrent(w Window, c GLContext) error {
	sw := p.lookup(w)
	if sw == nil {
		return errors.New("sdl: unknown window")
	}
	sc, ok := c.(*sdlContext)
	if !ok || sc == nil {
		return errors.New("sdl: invalid gl context")
	}
	return sw.win.GLMakeCurrent(sc.ctx)
}

func (p *SDL) SwapWindow(w Window) {
	if sw := p.lookup(w); sw != nil {
		sw.win.GLSwap()
	}
}

func (p *SDL) DestroyGLContext(c GLContext) {
	if sc, ok := c.(*sdlContext); ok && sc != nil {
		sdl.GLDeleteContext(sc.ctx)
	}
}

func (p *SDL) DestroyWindow(w Window) {
	sw := p.lookup(w)
	if sw == nil {
		return
	}
	if err := sw.win.Destroy(); err != nil {
		p.log.Warn("destroy window", "id", sw.id, "error", err)
	}
	delete(p.windows, sw.id)
	if sw.id == p.mainID {
		p.mainID = 0
	}
}

func (p *SDL) Quit() {
	for id, gc := range p.controllers {
		gc.Close()
		delete(p.controllers, id)
	}
	for id, sw := range p.windows {
		_ = sw.win.Destroy()
		delete(p.windows, id)
	}
	sdl.Quit()
}

func sdlMods(m uint16) Mod {
	var out Mod
	if m&uint16(sdl.KMOD_SHIFT) != 0 {
		out |= ModShift
	}
	if m&uint16(sdl.KMOD_CTRL) != 0 {
		out |= ModCtrl
	}
	if m&uint16(sdl.KMOD_ALT) != 0 {
		out |= ModAlt
	}
	if m&uint16(sdl.KMOD_GUI) != 0 {
		out |= ModSuper
	}
	return out
}

func sdlMouseButton(b uint8) MouseButton {
	switch b {
	case sdl.BUTTON_LEFT:
		return MouseLeft
	case sdl.BUTTON_RIGHT:
		return MouseRight
	case sdl.BUTTON_MIDDLE:
		return MouseMiddle
	default:
		return MouseOther
	}
}

func sdlKey(k sdl.Keycode) Key {
	switch k {
	case sdl.K_TAB:
		return KeyTab
	case sdl.K_LEFT:
		return KeyLeft
	case sdl.K_RIGHT:
		return KeyRight
	case sdl.K_UP:
		return KeyUp
	case sdl.K_DOWN:
		return KeyDown
	case sdl.K_PAGEUP:
		return KeyPageUp
	case sdl.K_PAGEDOWN:
		return KeyPageDown
	case sdl.K_HOME:
		return KeyHome
	case sdl.K_END:
		return KeyEnd
	case sdl.K_DELETE:
		return KeyDelete
	case sdl.K_BACKSPACE:
		return KeyBackspace
	case sdl.K_SPACE:
		return KeySpace
	case sdl.K_RETURN, sdl.K_KP_ENTER:
		return KeyEnter
	case sdl.K_ESCAPE:
		return KeyEscape
	case sdl.K_a:
		return KeyA
	case sdl.K_c:
		return KeyC
	case sdl.K_v:
		return KeyV
	case sdl.K_x:
		return KeyX
	case sdl.K_y:
		return KeyY
	case sdl.K_z:
		return KeyZ
	default:
		return KeyUnknown
	}
}

// ClipboardText returns the system clipboard contents.
func (p *SDL) ClipboardText() string {
	text, err := sdl.GetClipboardText()
	if err != nil {
		p.log.Warn("read clipboard", "error", err)
		return ""
	}
	return text
}

// SetClipboardText replaces the system clipboard contents.
func (p *SDL) SetClipboardText(text string) {
	if err := sdl.SetClipboardText(text); err != nil {
		p.log.Warn("write clipboard", "error", err)
	}
}
