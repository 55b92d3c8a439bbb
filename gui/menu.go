package gui

import "github.com/chewxy/math32"

const mainMenuBarName = "##MainMenuBar"

type menuState struct {
	barWindow *Window
	barRect   Rect
	barX      float32
	inBar     bool

	openID   ID
	rect     Rect // open popup, as drawn last frame
	hovered  bool
	lastSeen uint64
	widths   map[ID]float32

	lists []*popup
}

type popup struct {
	id       ID
	drawList *DrawList
	viewport *Viewport
	pos      Vec2
	cursorY  float32
	width    float32
	maxWidth float32
}

// BeginMainMenuBar starts the bar across the top of the main viewport.
// The bar reserves its height from the viewport work area and pushes the
// enclosing window's layout cursor below it. Call EndMainMenuBar only if
// it returns true.
func (ctx *Context) BeginMainMenuBar() bool {
	vp := ctx.mainViewport
	h := ctx.FrameHeight()
	ctx.SetNextWindowPos(vp.Pos)
	ctx.SetNextWindowSize(Vec2{vp.Size.X, h})
	ctx.PushStyleVarVec2(StyleVarWindowPadding, Vec2{})
	ctx.PushStyleVarFloat(StyleVarWindowBorderSize, 0)
	flags := WindowNoTitleBar | WindowNoResize | WindowNoMove | WindowNoCollapse |
		WindowNoDocking | WindowNoNavFocus | WindowNoBringToFrontOnFocus | windowAlwaysOnTop
	ok := ctx.Begin(mainMenuBarName, nil, flags)
	ctx.PopStyleVar(2)
	if !ok {
		ctx.End()
		return false
	}

	w := ctx.currentWindow
	r := w.hitRect
	w.DrawList.AddRect(r.X, r.Y, r.W, r.H, ctx.style.MenuBarBgColor)
	ctx.menu.barWindow = w
	ctx.menu.barRect = r
	ctx.menu.barX = r.X + ctx.style.ItemSpacing.X/2
	ctx.menu.inBar = true
	vp.pendingWorkOffsetTop = math32.Max(vp.pendingWorkOffsetTop, h)
	return true
}

// EndMainMenuBar ends the bar started by BeginMainMenuBar.
func (ctx *Context) EndMainMenuBar() {
	if !ctx.menu.inBar {
		logger().Warn("EndMainMenuBar without BeginMainMenuBar")
		return
	}
	ctx.menu.inBar = false
	ctx.End()
	if host := ctx.currentWindow; host != nil {
		bottom := ctx.menu.barRect.Y + ctx.menu.barRect.H
		host.cursor.Y = math32.Max(host.cursor.Y, bottom)
	}
}

// BeginMenu adds a menu title to the bar. It returns true while the menu is
// open; items follow and EndMenu must be called.
func (ctx *Context) BeginMenu(label string, opts ...Option) bool {
	if !ctx.menu.inBar || ctx.popup != nil {
		logger().Warn("BeginMenu outside a menu bar", "menu", label)
		return false
	}
	o := applyOptions(opts)
	disabled := GetOpt(o, OptDisabled)
	style := &ctx.style
	bar := ctx.menu.barWindow
	in := ctx.io.Input
	mouse := in.MousePos()

	id := ctx.GetID(label)
	width := ctx.font.TextWidth(label) + 2*style.ItemSpacing.X
	r := Rect{ctx.menu.barX, ctx.menu.barRect.Y, width, ctx.menu.barRect.H}
	ctx.menu.barX += width

	hovered := ctx.hoveredWindow == bar && r.Contains(mouse)
	if !disabled && hovered {
		switch {
		case in.MouseClicked(MouseButtonLeft) && ctx.menu.openID == id:
			ctx.closeMenus()
		case in.MouseClicked(MouseButtonLeft):
			ctx.menu.openID = id
		case ctx.menu.openID != 0 && ctx.menu.openID != id:
			ctx.menu.openID = id
		}
	}
	open := !disabled && ctx.menu.openID == id

	dl := bar.DrawList
	if open || (hovered && !disabled) {
		dl.AddRect(r.X, r.Y, r.W, r.H, style.HeaderHoveredColor)
	}
	textColor := style.TextColor
	if disabled {
		textColor = style.TextDisabledColor
	}
	dl.AddText(r.X+style.ItemSpacing.X, r.Y+style.FramePadding.Y, label, textColor)

	if !open {
		return false
	}
	if ctx.menu.widths == nil {
		ctx.menu.widths = make(map[ID]float32)
	}
	ctx.menu.lastSeen = ctx.frameCount
	pos := Vec2{r.X, r.Y + r.H}
	p := &popup{
		id:       id,
		drawList: AcquireDrawList(),
		viewport: bar.Viewport,
		pos:      pos,
		cursorY:  pos.Y + style.WindowPadding.Y/2,
		width:    ctx.menu.widths[id],
	}
	p.drawList.SetFont(ctx.font)
	ctx.popup = p
	return true
}

// EndMenu closes a menu opened by BeginMenu.
func (ctx *Context) EndMenu() {
	p := ctx.popup
	if p == nil {
		logger().Warn("EndMenu without BeginMenu")
		return
	}
	ctx.popup = nil
	style := &ctx.style
	width := math32.Max(p.width, p.maxWidth)
	height := p.cursorY - p.pos.Y + style.WindowPadding.Y/2
	p.drawList.InsertRect(p.pos.X, p.pos.Y, width, height, style.PopupBgColor)
	p.drawList.AddRectOutline(p.pos.X, p.pos.Y, width, height, style.BorderColor, 1)

	ctx.menu.rect = Rect{p.pos.X, p.pos.Y, width, height}
	ctx.menu.widths[p.id] = width
	ctx.menu.lists = append(ctx.menu.lists, p)
}

// MenuItem adds a clickable item to the open menu and reports whether it
// was activated this frame. Activating an item closes the menu.
func (ctx *Context) MenuItem(label string, opts ...Option) bool {
	return ctx.menuItem(label, false, opts)
}

// MenuItemToggle is a MenuItem with a check mark bound to selected.
// Activation flips *selected.
func (ctx *Context) MenuItemToggle(label string, selected *bool, opts ...Option) bool {
	checked := selected != nil && *selected
	if !ctx.menuItem(label, checked, opts) {
		return false
	}
	if selected != nil {
		*selected = !*selected
	}
	return true
}

func (ctx *Context) menuItem(label string, checked bool, opts []Option) bool {
	p := ctx.popup
	if p == nil {
		logger().Warn("MenuItem outside an open menu", "item", label)
		return false
	}
	o := applyOptions(opts)
	disabled := GetOpt(o, OptDisabled)
	shortcut := GetOpt(o, OptShortcut)
	style := &ctx.style
	in := ctx.io.Input
	h := ctx.FrameHeight()

	itemW := h + ctx.font.TextWidth(label) + 2*style.FramePadding.X
	if shortcut != "" {
		itemW += 2*style.ItemSpacing.X + ctx.font.TextWidth(shortcut)
	}
	p.maxWidth = math32.Max(p.maxWidth, itemW)
	width := math32.Max(p.width, itemW)
	r := Rect{p.pos.X, p.cursorY, width, h}
	p.cursorY += h

	hovered := ctx.menu.hovered && r.Contains(in.MousePos())
	dl := p.drawList
	if hovered && !disabled {
		dl.AddRect(r.X, r.Y, r.W, r.H, style.HeaderHoveredColor)
	}
	textColor := style.TextColor
	if disabled {
		textColor = style.TextDisabledColor
	}
	if checked {
		ctx.drawCheckMark(dl, Vec2{r.X, r.Y}, h)
	}
	textY := r.Y + style.FramePadding.Y
	dl.AddText(r.X+h, textY, label, textColor)
	if shortcut != "" {
		dl.AddText(r.X+r.W-style.FramePadding.X-ctx.font.TextWidth(shortcut), textY, shortcut, style.TextDisabledColor)
	}

	if !hovered || disabled || !in.MouseReleased(MouseButtonLeft) {
		return false
	}
	ctx.closeMenus()
	return true
}

func (ctx *Context) menuSeparator() {
	p := ctx.popup
	style := &ctx.style
	y := p.cursorY + style.ItemSpacing.Y/2
	width := math32.Max(p.width, p.maxWidth)
	p.drawList.AddRect(p.pos.X, y, width, 1, style.SeparatorColor)
	p.cursorY += style.ItemSpacing.Y + 1
}

func (ctx *Context) drawCheckMark(dl *DrawList, pos Vec2, size float32) {
	s := size * 0.5
	x := pos.X + size*0.25
	y := pos.Y + size*0.25
	col := ctx.style.CheckMarkColor
	dl.AddLine(x, y+s*0.5, x+s*0.4, y+s*0.9, col, 2)
	dl.AddLine(x+s*0.4, y+s*0.9, x+s, y+s*0.1, col, 2)
}

// MenuOpen reports whether any menu is open.
func (ctx *Context) MenuOpen() bool {
	return ctx.menu.openID != 0
}

func (ctx *Context) closeMenus() {
	ctx.menu.openID = 0
	ctx.menu.rect = Rect{}
	ctx.menu.hovered = false
}

// updateMenusOnInput closes open menus on Escape or a click elsewhere.
func (ctx *Context) updateMenusOnInput() {
	if ctx.menu.openID == 0 {
		return
	}
	in := ctx.io.Input
	if in.KeyPressed(KeyEscape) {
		ctx.closeMenus()
		return
	}
	if in.MouseClicked(MouseButtonLeft) && !ctx.menu.hovered && !ctx.menu.barRect.Contains(in.MousePos()) {
		ctx.closeMenus()
	}
}

func (ctx *Context) releasePopups() {
	for _, p := range ctx.menu.lists {
		ReleaseDrawList(p.drawList)
	}
	ctx.menu.lists = ctx.menu.lists[:0]
	if ctx.popup != nil {
		ReleaseDrawList(ctx.popup.drawList)
		ctx.popup = nil
	}
}
