//go:build !sdl

package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFW implements Platform with GLFW 3.3. Events are collected by GLFW
// callbacks into a queue drained by PollEvent.
type GLFW struct {
	log     *slog.Logger
	attr    GLAttributes
	flags   InitFlags
	windows map[uint32]*glfwWindow
	mainID  uint32
	nextID  uint32
	queue   []Event
	pumped  bool
	pads    map[glfw.Joystick]glfwPadState
}

type glfwPadState struct {
	left, right bool
}

type glfwWindow struct {
	id  uint32
	win *glfw.Window
}

func (w *glfwWindow) ID() uint32 { return w.id }

// GLFW contexts belong to their window.
type glfwContext struct {
	w *glfwWindow
}

func (c *glfwContext) WindowID() uint32 { return c.w.id }

// New returns the GLFW platform.
func New(logger *slog.Logger) *GLFW {
	if logger == nil {
		logger = slog.Default()
	}
	return &GLFW{
		log:     logger.With("component", "platform"),
		windows: make(map[uint32]*glfwWindow),
		pads:    make(map[glfw.Joystick]glfwPadState),
	}
}

func (p *GLFW) Name() string { return "glfw" }

func (p *GLFW) Init(flags InitFlags) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	p.flags = flags
	p.log.Debug("glfw initialized", "version", glfw.GetVersionString())
	return nil
}

// ConfigureGL records the context attributes; GLFW applies them as window
// hints when a window is created.
func (p *GLFW) ConfigureGL(attr GLAttributes) error {
	if attr.Major < 1 {
		return fmt.Errorf("invalid OpenGL version %d.%d", attr.Major, attr.Minor)
	}
	p.attr = attr
	return nil
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (p *GLFW) applyHints(flags WindowFlags) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, p.attr.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, p.attr.Minor)
	if p.attr.Core {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfwBool(p.attr.ForwardCompatible))
	glfw.WindowHint(glfw.Resizable, glfwBool(flags&WindowResizable != 0))
	glfw.WindowHint(glfw.ScaleToMonitor, glfwBool(flags&WindowHighPixelDensity != 0))
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfwBool(flags&WindowHighPixelDensity != 0))
	glfw.WindowHint(glfw.Decorated, glfwBool(flags&WindowBorderless == 0))
	glfw.WindowHint(glfw.Visible, glfwBool(flags&WindowHidden == 0))
	glfw.WindowHint(glfw.FocusOnShow, glfw.False)
}

func (p *GLFW) CreateWindow(title string, width, height int, flags WindowFlags) (Window, error) {
	p.applyHints(flags)
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	w := p.register(win)
	if p.mainID == 0 {
		p.mainID = w.id
	}
	return w, nil
}

func (p *GLFW) register(win *glfw.Window) *glfwWindow {
	p.nextID++
	w := &glfwWindow{id: p.nextID, win: win}
	p.windows[w.id] = w
	p.installCallbacks(w)
	return w
}

func (p *GLFW) lookup(w Window) *glfwWindow {
	if w == nil {
		return nil
	}
	return p.windows[w.ID()]
}

// CreateGLContext makes the window's built-in context current and returns
// it.
func (p *GLFW) CreateGLContext(w Window) (GLContext, error) {
	gw := p.lookup(w)
	if gw == nil {
		return nil, errors.New("glfw: unknown window")
	}
	gw.win.MakeContextCurrent()
	if glfw.GetCurrentContext() != gw.win {
		return nil, errors.New("glfw: window has no OpenGL context")
	}
	glfw.SwapInterval(p.attr.SwapInterval)
	return &glfwContext{w: gw}, nil
}

func (p *GLFW) GetProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

// PollEvent returns the next queued event. When the queue is empty it
// pumps GLFW once; it reports false after the pumped events are drained
// so each frame sees a bounded batch.
func (p *GLFW) PollEvent() (Event, bool) {
	if len(p.queue) == 0 && !p.pumped {
		glfw.PollEvents()
		p.pollGamepads()
		p.pumped = true
	}
	if len(p.queue) == 0 {
		p.pumped = false
		return Event{}, false
	}
	ev := p.queue[0]
	p.queue = p.queue[1:]
	return ev, true
}

func (p *GLFW) push(ev Event) {
	p.queue = append(p.queue, ev)
}

func (p *GLFW) installCallbacks(w *glfwWindow) {
	id := w.id
	w.win.SetCloseCallback(func(*glfw.Window) {
		p.push(Event{Type: EventWindowClose, WindowID: id})
		if id == p.mainID {
			p.push(Event{Type: EventQuit, WindowID: id})
		}
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		p.push(Event{Type: EventWindowResized, WindowID: id, Width: width, Height: height})
	})
	w.win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		p.push(Event{Type: EventWindowMoved, WindowID: id, X: float32(x), Y: float32(y)})
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		p.push(Event{Type: EventWindowFocus, WindowID: id, Focused: focused})
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		p.push(Event{
			Type:     EventKey,
			WindowID: id,
			Key:      glfwKey(key),
			Mods:     glfwMods(mods),
			Down:     action != glfw.Release,
		})
	})
	w.win.SetCharCallback(func(_ *glfw.Window, char rune) {
		p.push(Event{Type: EventText, WindowID: id, Char: char})
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		p.push(Event{Type: EventMouseMotion, WindowID: id, X: float32(x), Y: float32(y)})
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		p.push(Event{
			Type:     EventMouseButton,
			WindowID: id,
			Button:   glfwMouseButton(button),
			Mods:     glfwMods(mods),
			Down:     action == glfw.Press,
		})
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		p.push(Event{Type: EventMouseWheel, WindowID: id, X: float32(xoff), Y: float32(yoff)})
	})
}

// pollGamepads turns shoulder button edges into events; GLFW has no
// gamepad callbacks.
func (p *GLFW) pollGamepads() {
	if p.flags&InitGamepad == 0 {
		return
	}
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if !joy.IsGamepad() {
			delete(p.pads, joy)
			continue
		}
		state := joy.GetGamepadState()
		if state == nil {
			continue
		}
		prev := p.pads[joy]
		cur := glfwPadState{
			left:  state.Buttons[glfw.ButtonLeftBumper] == glfw.Press,
			right: state.Buttons[glfw.ButtonRightBumper] == glfw.Press,
		}
		if cur.left != prev.left {
			p.push(Event{Type: EventGamepadButton, Gamepad: GamepadLeftShoulder, Down: cur.left})
		}
		if cur.right != prev.right {
			p.push(Event{Type: EventGamepadButton, Gamepad: GamepadRightShoulder, Down: cur.right})
		}
		p.pads[joy] = cur
	}
}

func (p *GLFW) WindowSize(w Window) (int, int) {
	if gw := p.lookup(w); gw != nil {
		return gw.win.GetSize()
	}
	return 0, 0
}

func (p *GLFW) WindowPixelSize(w Window) (int, int) {
	if gw := p.lookup(w); gw != nil {
		return gw.win.GetFramebufferSize()
	}
	return 0, 0
}

func (p *GLFW) WindowPosition(w Window) (int, int) {
	if gw := p.lookup(w); gw != nil {
		return gw.win.GetPos()
	}
	return 0, 0
}

func (p *GLFW) SetWindowPosition(w Window, x, y int) {
	if gw := p.lookup(w); gw != nil {
		gw.win.SetPos(x, y)
	}
}

func (p *GLFW) SetWindowSize(w Window, width, height int) {
	if gw := p.lookup(w); gw != nil {
		gw.win.SetSize(width, height)
	}
}

func (p *GLFW) CreateSharedWindow(title string, x, y, width, height int, share GLContext) (Window, GLContext, error) {
	var shareWin *glfw.Window
	if c, ok := share.(*glfwContext); ok && c != nil {
		shareWin = c.w.win
	}
	p.applyHints(WindowBorderless | WindowHidden)
	win, err := glfw.CreateWindow(width, height, title, nil, shareWin)
	if err != nil {
		return nil, nil, fmt.Errorf("glfw create window: %w", err)
	}
	win.SetPos(x, y)
	win.Show()
	w := p.register(win)
	return w, &glfwContext{w: w}, nil
}

func (p *GLFW) MakeCurrent(w Window, c GLContext) error {
	gw := p.lookup(w)
	if gw == nil {
		return errors.New("glfw: unknown window")
	}
	if c != nil && c.WindowID() != gw.id {
		return fmt.Errorf("glfw: context of window %d cannot bind window %d", c.WindowID(), gw.id)
	}
	gw.win.MakeContextCurrent()
	return nil
}

func (p *GLFW) SwapWindow(w Window) {
	if gw := p.lookup(w); gw != nil {
		gw.win.SwapBuffers()
	}
}

// DestroyGLContext detaches the context; GLFW frees it with its window.
func (p *GLFW) DestroyGLContext(c GLContext) {
	if c == nil {
		return
	}
	if gw := p.windows[c.WindowID()]; gw != nil && glfw.GetCurrentContext() == gw.win {
		glfw.DetachCurrentContext()
	}
}

func (p *GLFW) DestroyWindow(w Window) {
	gw := p.lookup(w)
	if gw == nil {
		return
	}
	gw.win.Destroy()
	delete(p.windows, gw.id)
	if gw.id == p.mainID {
		p.mainID = 0
	}
}

func (p *GLFW) Quit() {
	for id, gw := range p.windows {
		gw.win.Destroy()
		delete(p.windows, id)
	}
	p.queue = nil
	glfw.Terminate()
}

func glfwMods(m glfw.ModifierKey) Mod {
	var out Mod
	if m&glfw.ModShift != 0 {
		out |= ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= ModSuper
	}
	return out
}

func glfwMouseButton(b glfw.MouseButton) MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return MouseLeft
	case glfw.MouseButtonRight:
		return MouseRight
	case glfw.MouseButtonMiddle:
		return MouseMiddle
	default:
		return MouseOther
	}
}

func glfwKey(key glfw.Key) Key {
	switch key {
	case glfw.KeyTab:
		return KeyTab
	case glfw.KeyLeft:
		return KeyLeft
	case glfw.KeyRight:
		return KeyRight
	case glfw.KeyUp:
		return KeyUp
	case glfw.KeyDown:
		return KeyDown
	case glfw.KeyPageUp:
		return KeyPageUp
	case glfw.KeyPageDown:
		return KeyPageDown
	case glfw.KeyHome:
		return KeyHome
	case glfw.KeyEnd:
		return KeyEnd
	case glfw.KeyDelete:
		return KeyDelete
	case glfw.KeyBackspace:
		return KeyBackspace
	case glfw.KeySpace:
		return KeySpace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return KeyEnter
	case glfw.KeyEscape:
		return KeyEscape
	case glfw.KeyA:
		return KeyA
	case glfw.KeyC:
		return KeyC
	case glfw.KeyV:
		return KeyV
	case glfw.KeyX:
		return KeyX
	case glfw.KeyY:
		return KeyY
	case glfw.KeyZ:
		return KeyZ
	default:
		return KeyUnknown
	}
}

// ClipboardText returns the system clipboard contents.
func (p *GLFW) ClipboardText() string {
	return glfw.GetClipboardString()
}

// SetClipboardText replaces the system clipboard contents.
func (p *GLFW) SetClipboardText(text string) {
	glfw.SetClipboardString(text)
}
