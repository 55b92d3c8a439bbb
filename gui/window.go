package gui

import "github.com/chewxy/math32"

// WindowFlags customize a window submitted with Begin.
type WindowFlags uint32

const (
	WindowNoTitleBar WindowFlags = 1 << iota
	WindowNoResize
	WindowNoMove
	WindowNoCollapse
	WindowNoBackground
	WindowNoBringToFrontOnFocus
	WindowNoNavFocus
	WindowNoDocking

	// windowAlwaysOnTop draws above every regular window; used by the main
	// menu bar.
	windowAlwaysOnTop
)

// WindowFlagsNone is the zero value of WindowFlags.
const WindowFlagsNone WindowFlags = 0

const (
	defaultWindowWidth  = 400
	defaultWindowHeight = 300
)

// Window is a named, persistent region of the screen. Windows are created
// on their first Begin and retained for the lifetime of the context.
type Window struct {
	ID        ID
	Name      string
	Flags     WindowFlags
	Pos       Vec2
	Size      Vec2
	Collapsed bool

	// DockID is the dock node the window is docked into, 0 when floating.
	DockID ID

	// Viewport is the platform window the window was drawn into this frame.
	Viewport *Viewport

	// DrawList is valid between Begin and the next NewFrame.
	DrawList *DrawList

	parent          *Window
	open            *bool
	lastFrameActive uint64
	docked          bool
	hitRect         Rect
	tabRect         Rect
	contentRect     Rect
	cursor          Vec2
	skipItems       bool
	idStackBase     int
	viewportID      ID
}

// Rect returns the window's outer rectangle.
func (w *Window) Rect() Rect {
	return RectFrom(w.Pos, w.Size)
}

// ContentRect returns the region available to widgets this frame.
func (w *Window) ContentRect() Rect {
	return w.contentRect
}

// Docked reports whether the window was drawn inside a dock node this frame.
func (w *Window) Docked() bool {
	return w.docked
}

// Active reports whether the window was submitted in the given frame.
func (w *Window) Active(frame uint64) bool {
	return w.lastFrameActive == frame
}

func (w *Window) hitTest(p Vec2) bool {
	return w.hitRect.Contains(p) || w.tabRect.Contains(p)
}

func (w *Window) root() *Window {
	for w.parent != nil && w.Flags&windowAlwaysOnTop == 0 {
		w = w.parent
	}
	return w
}

type nextWindowData struct {
	hasPos      bool
	pos         Vec2
	hasSize     bool
	size        Vec2
	hasViewport bool
	viewport    ID
}

// SetNextWindowPos sets the position of the next window.
func (ctx *Context) SetNextWindowPos(pos Vec2) {
	ctx.next.hasPos = true
	ctx.next.pos = pos
}

// SetNextWindowSize sets the size of the next window.
func (ctx *Context) SetNextWindowSize(size Vec2) {
	ctx.next.hasSize = true
	ctx.next.size = size
}

// SetNextWindowViewport pins the next window to a viewport.
func (ctx *Context) SetNextWindowViewport(id ID) {
	ctx.next.hasViewport = true
	ctx.next.viewport = id
}

func (ctx *Context) createWindow(name string, id ID) *Window {
	n := float32(len(ctx.windowsByCreation) % 10)
	base := ctx.mainViewport.WorkPos
	w := &Window{
		ID:   id,
		Name: name,
		Pos:  base.Add(Vec2{60 + 20*n, 60 + 20*n}),
		Size: Vec2{defaultWindowWidth, defaultWindowHeight},
	}
	if dock, ok := ctx.windowDock[id]; ok {
		w.DockID = dock
	}
	ctx.windows[id] = w
	ctx.windowOrder = append(ctx.windowOrder, w)
	ctx.windowsByCreation = append(ctx.windowsByCreation, w)
	logger().Debug("window created", "window", name)
	return w
}

// Begin starts a window. It returns false when the window is collapsed,
// hidden behind another tab or otherwise not visible; End must be called
// either way. If open is non-nil a close button is shown and clicking it
// stores false.
func (ctx *Context) Begin(name string, open *bool, flags WindowFlags) bool {
	if !ctx.withinFrame {
		logger().Warn("Begin called outside a frame", "window", name)
		return false
	}
	id := windowID(name)
	w, ok := ctx.windows[id]
	if !ok {
		w = ctx.createWindow(name, id)
	}
	if w.lastFrameActive == ctx.frameCount {
		logger().Warn("window submitted twice in one frame", "window", name)
	}

	w.Flags = flags
	if ctx.currentWindow != nil && flags&windowAlwaysOnTop != 0 {
		w.parent = ctx.currentWindow
	} else {
		w.parent = nil
	}
	w.open = open
	w.lastFrameActive = ctx.frameCount
	w.docked = false
	w.tabRect = Rect{}
	if w.DrawList == nil {
		w.DrawList = AcquireDrawList()
		w.DrawList.SetFont(ctx.font)
	}

	nd := ctx.next
	ctx.next = nextWindowData{}
	if nd.hasPos {
		w.Pos = nd.pos
	}
	if nd.hasSize {
		w.Size = nd.size
	}
	w.viewportID = 0
	if nd.hasViewport {
		w.viewportID = nd.viewport
	}

	w.idStackBase = len(ctx.idStack)
	ctx.windowStack = append(ctx.windowStack, w)
	ctx.currentWindow = w
	ctx.idStack = append(ctx.idStack, w.ID)

	var visible bool
	if node := ctx.dockNodeFor(w); node != nil {
		visible = ctx.beginDocked(w, node)
	} else {
		visible = ctx.beginFloating(w)
	}
	w.skipItems = !visible
	w.cursor = w.contentRect.Min()
	c := w.contentRect
	w.DrawList.PushClipRect(c.X, c.Y, c.X+c.W, c.Y+c.H)
	return visible
}

// End closes the window opened by the matching Begin.
func (ctx *Context) End() {
	n := len(ctx.windowStack)
	if n == 0 {
		logger().Warn("End called without Begin")
		return
	}
	w := ctx.windowStack[n-1]
	w.DrawList.PopClipRect() // content
	w.DrawList.PopClipRect() // window
	ctx.windowStack = ctx.windowStack[:n-1]
	ctx.idStack = ctx.idStack[:w.idStackBase]
	ctx.currentWindow = nil
	if n > 1 {
		ctx.currentWindow = ctx.windowStack[n-2]
	}
}

// CurrentWindow returns the window between Begin and End, or nil.
func (ctx *Context) CurrentWindow() *Window {
	return ctx.currentWindow
}

func (ctx *Context) dockNodeFor(w *Window) *DockNode {
	if w.DockID == 0 || w.Flags&WindowNoDocking != 0 || !ctx.dockingEnabled() {
		return nil
	}
	node := ctx.dockNodes[w.DockID]
	if node == nil || !node.IsLeaf() || node.lastFrameAlive != ctx.frameCount {
		return nil
	}
	return node
}

func (ctx *Context) titleBarHeight(w *Window) float32 {
	if w.Flags&WindowNoTitleBar != 0 {
		return 0
	}
	return ctx.FrameHeight()
}

func (ctx *Context) beginFloating(w *Window) bool {
	style := &ctx.style
	in := ctx.io.Input
	mouse := in.MousePos()
	hovered := ctx.hoveredWindow == w
	clicked := hovered && in.MouseClicked(MouseButtonLeft)
	titleH := ctx.titleBarHeight(w)

	moveID := hashID(w.ID, "#MOVE")
	resizeID := hashID(w.ID, "#RESIZE")

	if titleH > 0 && clicked {
		titleRect := Rect{w.Pos.X, w.Pos.Y, w.Size.X, titleH}
		closeRect := Rect{w.Pos.X + w.Size.X - titleH, w.Pos.Y, titleH, titleH}
		collapseRect := Rect{w.Pos.X, w.Pos.Y, titleH, titleH}
		switch {
		case w.open != nil && closeRect.Contains(mouse):
			*w.open = false
		case w.Flags&WindowNoCollapse == 0 && collapseRect.Contains(mouse):
			w.Collapsed = !w.Collapsed
		case titleRect.Contains(mouse) && w.Flags&WindowNoMove == 0:
			ctx.activeID = moveID
			ctx.movingWindow = w
		}
	}
	if ctx.activeID == moveID {
		if in.MouseDown(MouseButtonLeft) {
			w.Pos = w.Pos.Add(ctx.mouseDelta)
		} else {
			ctx.dockOnDrop(w, mouse)
		}
	}

	grip := style.ResizeGripSize
	canResize := !w.Collapsed && w.Flags&WindowNoResize == 0
	if canResize {
		gripRect := Rect{w.Pos.X + w.Size.X - grip, w.Pos.Y + w.Size.Y - grip, grip, grip}
		if clicked && gripRect.Contains(mouse) {
			ctx.activeID = resizeID
		}
		if ctx.activeID == resizeID && in.MouseDown(MouseButtonLeft) {
			w.Size = w.Size.Add(ctx.mouseDelta)
			w.Size.X = math32.Max(w.Size.X, style.WindowMinSize.X)
			w.Size.Y = math32.Max(w.Size.Y, style.WindowMinSize.Y)
		}
	}

	ctx.assignViewport(w)
	if vp := w.Viewport; vp != ctx.mainViewport && vp.PlatformRequestClose {
		vp.PlatformRequestClose = false
		if w.open != nil {
			*w.open = false
		}
	}

	height := w.Size.Y
	if w.Collapsed {
		height = titleH
	}
	w.hitRect = Rect{w.Pos.X, w.Pos.Y, w.Size.X, height}

	dl := w.DrawList
	r := w.hitRect
	dl.PushClipRect(r.X, r.Y, r.X+r.W, r.Y+r.H)
	if !w.Collapsed && w.Flags&WindowNoBackground == 0 {
		dl.AddRect(r.X, r.Y, r.W, r.H, style.WindowBgColor)
	}
	if titleH > 0 {
		titleColor := style.TitleBgColor
		if ctx.focusedWindow == w {
			titleColor = style.TitleBgActiveColor
		}
		dl.AddRect(r.X, r.Y, r.W, titleH, titleColor)
		textX := r.X + style.FramePadding.X
		if w.Flags&WindowNoCollapse == 0 {
			ctx.drawArrow(dl, Vec2{r.X, r.Y}, titleH, w.Collapsed)
			textX = r.X + titleH
		}
		dl.AddText(textX, r.Y+style.FramePadding.Y, w.Name, style.TextColor)
		if w.open != nil {
			ctx.drawCross(dl, Vec2{r.X + r.W - titleH, r.Y}, titleH)
		}
	}
	if style.WindowBorderSize > 0 && w.Flags&WindowNoBackground == 0 {
		dl.AddRectOutline(r.X, r.Y, r.W, r.H, style.BorderColor, style.WindowBorderSize)
	}
	if canResize {
		x2, y2 := r.X+r.W, r.Y+r.H
		dl.AddTriangle(x2, y2-grip, x2, y2, x2-grip, y2, style.ResizeGripColor)
	}

	if w.Collapsed {
		w.contentRect = Rect{}
		return false
	}
	pad := style.WindowPadding
	w.contentRect = Rect{
		X: w.Pos.X + pad.X,
		Y: w.Pos.Y + titleH + pad.Y,
		W: w.Size.X - 2*pad.X,
		H: w.Size.Y - titleH - 2*pad.Y,
	}
	return true
}

func (ctx *Context) beginDocked(w *Window, node *DockNode) bool {
	style := &ctx.style
	in := ctx.io.Input
	mouse := in.MousePos()
	tabH := ctx.FrameHeight()

	w.docked = true
	w.Collapsed = false
	w.Pos, w.Size = node.Pos, node.Size
	w.Viewport = node.viewport()

	tab := ctx.tabFor(node, w)
	closeRect := Rect{tab.X + tab.W - tabH, tab.Y, tabH, tabH}
	tabID := hashID(w.ID, "#TAB")

	if ctx.hoveredWindow == w && in.MouseClicked(MouseButtonLeft) && tab.Contains(mouse) {
		if w.open != nil && closeRect.Contains(mouse) {
			*w.open = false
		} else {
			node.SelectedTab = w.ID
			ctx.FocusWindow(w)
			ctx.activeID = tabID
		}
	}
	if ctx.activeID == tabID && in.MouseDown(MouseButtonLeft) && w.Flags&WindowNoMove == 0 &&
		math32.Abs(mouse.Y-ctx.dragOrigin.Y) > tabH {
		ctx.undock(w, node)
		w.Pos = mouse.Sub(Vec2{tab.W / 2, tabH / 2})
		ctx.activeID = hashID(w.ID, "#MOVE")
		ctx.movingWindow = w
		return ctx.beginFloating(w)
	}

	selected := node.SelectedTab == w.ID
	w.tabRect = tab

	dl := w.DrawList
	nr := node.Rect()
	dl.PushClipRect(nr.X, nr.Y, nr.X+nr.W, nr.Y+nr.H)

	tabColor := style.TabColor
	switch {
	case selected && ctx.focusedWindow == w:
		tabColor = style.TabActiveColor
	case selected:
		tabColor = style.TabUnfocusedColor
	case tab.Contains(mouse) && ctx.hoveredWindow == w:
		tabColor = style.TabHoveredColor
	}
	dl.AddRect(tab.X, tab.Y, tab.W, tab.H, tabColor)
	dl.AddText(tab.X+style.FramePadding.X, tab.Y+style.FramePadding.Y, w.Name, style.TextColor)
	if w.open != nil {
		ctx.drawCross(dl, Vec2{closeRect.X, closeRect.Y}, tabH)
	}

	if !selected {
		w.hitRect = Rect{}
		w.contentRect = Rect{}
		return false
	}

	body := Rect{nr.X, nr.Y + tabH, nr.W, nr.H - tabH}
	w.hitRect = body
	if w.Flags&WindowNoBackground == 0 {
		dl.AddRect(body.X, body.Y, body.W, body.H, style.WindowBgColor)
	}
	pad := style.WindowPadding
	w.contentRect = Rect{
		X: body.X + pad.X,
		Y: body.Y + pad.Y,
		W: body.W - 2*pad.X,
		H: body.H - 2*pad.Y,
	}
	return true
}

// assignViewport decides which viewport a floating window renders into.
// With viewports enabled a window fully outside the main viewport gets its
// own platform window.
func (ctx *Context) assignViewport(w *Window) {
	main := ctx.mainViewport
	if w.viewportID != 0 {
		if vp := ctx.findViewport(w.viewportID); vp != nil {
			w.Viewport = vp
			return
		}
	}
	if w.parent != nil {
		w.Viewport = w.parent.Viewport
		return
	}
	if !ctx.viewportsEnabled() || ctx.platformIO == nil || RectFrom(main.Pos, main.Size).Intersects(w.Rect()) {
		w.Viewport = main
		return
	}
	vp := ctx.viewportForWindow(w)
	vp.Pos = w.Pos
	vp.Size = w.Size
	vp.lastFrameActive = ctx.frameCount
	w.Viewport = vp
}

func (ctx *Context) drawArrow(dl *DrawList, pos Vec2, size float32, collapsed bool) {
	c := pos.Add(Vec2{size / 2, size / 2})
	r := size * 0.25
	col := ctx.style.TextColor
	if collapsed {
		dl.AddTriangle(c.X-r*0.6, c.Y-r, c.X+r, c.Y, c.X-r*0.6, c.Y+r, col)
		return
	}
	dl.AddTriangle(c.X-r, c.Y-r*0.6, c.X+r, c.Y-r*0.6, c.X, c.Y+r, col)
}

func (ctx *Context) drawCross(dl *DrawList, pos Vec2, size float32) {
	c := pos.Add(Vec2{size / 2, size / 2})
	r := size * 0.22
	col := ctx.style.TextColor
	dl.AddLine(c.X-r, c.Y-r, c.X+r, c.Y+r, col, 1)
	dl.AddLine(c.X+r, c.Y-r, c.X-r, c.Y+r, col, 1)
}
