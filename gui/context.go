package gui

import "fmt"

// ConfigFlags enable optional context features.
type ConfigFlags uint32

const (
	// ConfigNavEnableKeyboard lets Ctrl+Tab cycle window focus.
	ConfigNavEnableKeyboard ConfigFlags = 1 << iota
	// ConfigNavEnableGamepad lets the shoulder buttons cycle window focus.
	ConfigNavEnableGamepad
	// ConfigDockingEnable activates DockSpace and docked windows.
	ConfigDockingEnable
	// ConfigViewportsEnable lets windows leave the main viewport into
	// their own platform windows.
	ConfigViewportsEnable
)

func (f ConfigFlags) String() string {
	return fmt.Sprintf("ConfigFlags(%#x)", uint32(f))
}

// IO is the data exchanged with the platform and renderer backends.
type IO struct {
	ConfigFlags ConfigFlags

	// Set by the platform backend before NewFrame.
	DisplaySize             Vec2
	DisplayFramebufferScale Vec2
	DeltaTime               float32
	Input                   *InputState

	// Set by the context during the frame for the application.
	WantCaptureMouse    bool
	WantCaptureKeyboard bool

	// Clipboard is installed by the platform binding.
	Clipboard ClipboardProvider

	BackendPlatformName string
	BackendRendererName string
}

// Context holds all GUI state. This is NOT context.Context.
// A Context is not safe for concurrent use; it belongs to the thread that
// owns the render context.
type Context struct {
	io         IO
	style      Style
	styleStack []styleMod
	font       *FontAtlas

	frameCount  uint64
	withinFrame bool
	destroyed   bool

	idStack []ID

	windows           map[ID]*Window
	windowOrder       []*Window // back to front
	windowsByCreation []*Window
	windowStack       []*Window
	currentWindow     *Window
	next              nextWindowData

	hoveredWindow *Window
	focusedWindow *Window
	movingWindow  *Window
	activeID      ID
	dragOrigin    Vec2
	mousePos      Vec2
	mouseDelta    Vec2

	dockNodes  map[ID]*DockNode
	dockNames  map[ID]string
	windowDock map[ID]ID

	viewports    []*Viewport
	mainViewport *Viewport
	platformIO   PlatformIO
	rendererIO   RendererIO

	menu  menuState
	popup *popup
}

// CreateContext builds a context with the default font and style.
func CreateContext(flags ConfigFlags) (*Context, error) {
	atlas, err := DefaultFontAtlas()
	if err != nil {
		return nil, fmt.Errorf("build font atlas: %w", err)
	}
	return NewContext(atlas, flags), nil
}

// NewContext creates a context rendering text with the given atlas.
func NewContext(font *FontAtlas, flags ConfigFlags) *Context {
	main := &Viewport{
		ID:               MainViewportID,
		Flags:            ViewportIsMain,
		FramebufferScale: Vec2{1, 1},
	}
	return &Context{
		io: IO{
			ConfigFlags:             flags,
			DisplayFramebufferScale: Vec2{1, 1},
			Input:                   NewInputState(),
		},
		style:        DefaultStyle(),
		styleStack:   make([]styleMod, 0, 8),
		font:         font,
		idStack:      make([]ID, 0, 32),
		windows:      make(map[ID]*Window),
		windowOrder:  make([]*Window, 0, 16),
		windowStack:  make([]*Window, 0, 8),
		dockNodes:    make(map[ID]*DockNode),
		dockNames:    make(map[ID]string),
		windowDock:   make(map[ID]ID),
		viewports:    []*Viewport{main},
		mainViewport: main,
	}
}

// Destroy releases frame resources. The context must not be used afterwards.
// Calling Destroy more than once is a no-op.
func (ctx *Context) Destroy() {
	if ctx.destroyed {
		return
	}
	for _, w := range ctx.windowOrder {
		ReleaseDrawList(w.DrawList)
		w.DrawList = nil
	}
	ctx.releasePopups()
	ctx.DestroyPlatformWindows()
	ctx.destroyed = true
	ctx.withinFrame = false
	ctx.windows = nil
	ctx.windowOrder = nil
	ctx.windowsByCreation = nil
	ctx.dockNodes = nil
	ctx.viewports = nil
}

// Destroyed reports whether Destroy has been called.
func (ctx *Context) Destroyed() bool {
	return ctx.destroyed
}

// IO returns the backend exchange structure.
func (ctx *Context) IO() *IO {
	return &ctx.io
}

// Font returns the font atlas. Renderers upload it and set TextureID.
func (ctx *Context) Font() *FontAtlas {
	return ctx.font
}

// FrameCount returns the number of frames started with NewFrame.
func (ctx *Context) FrameCount() uint64 {
	return ctx.frameCount
}

func (ctx *Context) dockingEnabled() bool {
	return ctx.io.ConfigFlags&ConfigDockingEnable != 0
}

func (ctx *Context) viewportsEnabled() bool {
	return ctx.io.ConfigFlags&ConfigViewportsEnable != 0
}

// NewFrame starts a frame. Backends must have updated IO first.
func (ctx *Context) NewFrame() {
	if ctx.destroyed {
		logger().Warn("NewFrame on destroyed context")
		return
	}
	if ctx.withinFrame {
		logger().Warn("NewFrame called before Render; discarding frame")
		ctx.Render()
	}
	ctx.frameCount++
	ctx.withinFrame = true

	io := &ctx.io
	if io.Input == nil {
		io.Input = NewInputState()
	}
	io.Input.UpdateKeyRepeat(io.DeltaTime)

	mouse := io.Input.MousePos()
	ctx.mouseDelta = mouse.Sub(ctx.mousePos)
	ctx.mousePos = mouse

	main := ctx.mainViewport
	main.Size = io.DisplaySize
	main.FramebufferScale = io.DisplayFramebufferScale
	main.WorkPos = main.Pos.Add(Vec2{0, main.workOffsetTop})
	main.WorkSize = main.Size.Sub(Vec2{0, main.workOffsetTop})
	main.pendingWorkOffsetTop = 0
	main.lastFrameActive = ctx.frameCount

	for _, w := range ctx.windowOrder {
		ReleaseDrawList(w.DrawList)
		w.DrawList = nil
	}
	ctx.releasePopups()

	ctx.windowStack = ctx.windowStack[:0]
	ctx.currentWindow = nil
	ctx.idStack = ctx.idStack[:0]

	ctx.updateHoveredWindow()
	ctx.updateMouseFocus()
	ctx.updateMenusOnInput()
	ctx.updateNav()
}

// updateHoveredWindow picks the front-most window that was visible last
// frame under the mouse. Windows on secondary viewports win over the main
// viewport because their OS windows sit above it.
func (ctx *Context) updateHoveredWindow() {
	ctx.hoveredWindow = nil
	ctx.menu.hovered = ctx.menu.openID != 0 && ctx.menu.rect.Contains(ctx.mousePos)
	if ctx.menu.hovered {
		return
	}
	if bar := ctx.menu.barWindow; bar != nil && bar.lastFrameActive+1 == ctx.frameCount &&
		ctx.menu.barRect.Contains(ctx.mousePos) {
		ctx.hoveredWindow = bar
		return
	}

	for pass := 0; pass < 2; pass++ {
		for i := len(ctx.windowOrder) - 1; i >= 0; i-- {
			w := ctx.windowOrder[i]
			if w.lastFrameActive+1 != ctx.frameCount {
				continue
			}
			onMain := w.Viewport == nil || w.Viewport == ctx.mainViewport
			if (pass == 0) == onMain {
				continue
			}
			if w.hitTest(ctx.mousePos) {
				ctx.hoveredWindow = w
				return
			}
		}
	}
}

func (ctx *Context) updateMouseFocus() {
	in := ctx.io.Input
	if !in.MouseClicked(MouseButtonLeft) {
		return
	}
	ctx.dragOrigin = in.MousePos()
	if ctx.menu.hovered {
		return
	}
	if ctx.hoveredWindow == nil {
		ctx.focusedWindow = nil
		return
	}
	ctx.FocusWindow(ctx.hoveredWindow.root())
}

// FocusWindow gives w keyboard focus, raises it unless it opted out, and
// selects its tab when docked.
func (ctx *Context) FocusWindow(w *Window) {
	ctx.focusedWindow = w
	if w == nil {
		return
	}
	if node := ctx.dockNodes[w.DockID]; node != nil && node.IsLeaf() {
		node.SelectedTab = w.ID
	}
	if w.Flags&WindowNoBringToFrontOnFocus != 0 {
		return
	}
	for i, o := range ctx.windowOrder {
		if o == w {
			copy(ctx.windowOrder[i:], ctx.windowOrder[i+1:])
			ctx.windowOrder[len(ctx.windowOrder)-1] = w
			break
		}
	}
}

// FocusedWindow returns the window holding focus, or nil.
func (ctx *Context) FocusedWindow() *Window {
	return ctx.focusedWindow
}

// HoveredWindow returns the window under the mouse this frame, or nil.
func (ctx *Context) HoveredWindow() *Window {
	return ctx.hoveredWindow
}

// Render ends the frame and builds draw data for every active viewport.
func (ctx *Context) Render() {
	if !ctx.withinFrame {
		logger().Warn("Render called outside a frame")
		return
	}
	for len(ctx.windowStack) > 0 {
		logger().Warn("missing End", "window", ctx.currentWindow.Name)
		ctx.End()
	}
	if ctx.popup != nil {
		logger().Warn("missing EndMenu")
		ctx.EndMenu()
	}
	if ctx.menu.openID != 0 && ctx.menu.lastSeen != ctx.frameCount {
		ctx.closeMenus()
	}

	for _, vp := range ctx.viewports {
		if vp.lastFrameActive != ctx.frameCount {
			vp.DrawData.Valid = false
			continue
		}
		ctx.buildDrawData(vp)
	}

	io := &ctx.io
	io.WantCaptureMouse = ctx.menu.openID != 0 ||
		(ctx.hoveredWindow != nil && ctx.hoveredWindow.Flags&WindowNoBackground == 0) ||
		ctx.activeID != 0
	io.WantCaptureKeyboard = ctx.focusedWindow != nil && ctx.focusedWindow.Flags&WindowNoNavFocus == 0

	if !io.Input.MouseDown(MouseButtonLeft) {
		ctx.activeID = 0
		ctx.movingWindow = nil
	}
	io.Input.Reset()

	main := ctx.mainViewport
	main.workOffsetTop = main.pendingWorkOffsetTop
	ctx.withinFrame = false
}

func (ctx *Context) buildDrawData(vp *Viewport) {
	dd := &vp.DrawData
	dd.CmdLists = dd.CmdLists[:0]
	dd.DisplayPos = vp.Pos
	dd.DisplaySize = vp.Size
	dd.FramebufferScale = vp.FramebufferScale

	appendWindow := func(w *Window) {
		if w.lastFrameActive != ctx.frameCount || w.Viewport != vp || w.DrawList == nil || w.DrawList.Empty() {
			return
		}
		w.DrawList.Finalize()
		dd.CmdLists = append(dd.CmdLists, w.DrawList)
	}
	for _, w := range ctx.windowOrder {
		if w.Flags&windowAlwaysOnTop == 0 {
			appendWindow(w)
		}
	}
	for _, w := range ctx.windowOrder {
		if w.Flags&windowAlwaysOnTop != 0 {
			appendWindow(w)
		}
	}
	for _, p := range ctx.menu.lists {
		if p.viewport == vp && !p.drawList.Empty() {
			p.drawList.Finalize()
			dd.CmdLists = append(dd.CmdLists, p.drawList)
		}
	}
	dd.Valid = true
}

// DrawData returns the main viewport's draw data from the last Render.
func (ctx *Context) DrawData() *DrawData {
	dd := &ctx.mainViewport.DrawData
	if !dd.Valid {
		return nil
	}
	return dd
}

// FindWindow returns the window with the given name, or nil.
func (ctx *Context) FindWindow(name string) *Window {
	return ctx.windows[windowID(name)]
}
