package gui

import "github.com/chewxy/math32"

// DockNodeFlags customize a dock space and its nodes.
type DockNodeFlags uint32

const (
	// DockNodeDockSpace marks the root node of a dock space.
	DockNodeDockSpace DockNodeFlags = 1 << iota
	// DockNodePassthruCentralNode leaves empty leaves unpainted so the
	// scene behind the dock space shows through.
	DockNodePassthruCentralNode
	// DockNodeNoResize disables splitter dragging.
	DockNodeNoResize
)

const (
	minSplitRatio = 0.05
	maxSplitRatio = 0.95
)

// DockNode is one node of a dock space's binary split tree. Leaves hold
// tabbed windows; internal nodes divide their area between two children.
type DockNode struct {
	ID       ID
	Flags    DockNodeFlags
	Parent   *DockNode
	Children [2]*DockNode

	// SplitAxis and SplitRatio describe internal nodes. SplitRatio is the
	// fraction of the node's extent along SplitAxis given to Children[0],
	// which is always the left or top child.
	SplitAxis  Axis
	SplitRatio float32

	Pos  Vec2
	Size Vec2

	// Windows lists docked windows in tab order.
	Windows     []ID
	SelectedTab ID

	tabs           []dockTab
	host           *Window
	lastFrameAlive uint64
}

type dockTab struct {
	id   ID
	rect Rect
}

func newDockNode(id ID, flags DockNodeFlags) *DockNode {
	return &DockNode{ID: id, Flags: flags, SplitAxis: AxisNone}
}

// IsLeaf reports whether the node holds windows rather than children.
func (n *DockNode) IsLeaf() bool {
	return n.Children[0] == nil
}

// Root returns the dock space node at the top of the tree.
func (n *DockNode) Root() *DockNode {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Rect returns the area covered by the node.
func (n *DockNode) Rect() Rect {
	return RectFrom(n.Pos, n.Size)
}

// Leaves appends the leaf nodes under n in left-to-right, top-to-bottom
// order.
func (n *DockNode) Leaves(dst []*DockNode) []*DockNode {
	if n.IsLeaf() {
		return append(dst, n)
	}
	dst = n.Children[0].Leaves(dst)
	return n.Children[1].Leaves(dst)
}

func (n *DockNode) viewport() *Viewport {
	if h := n.Root().host; h != nil {
		return h.Viewport
	}
	return nil
}

// layout assigns positions and sizes down the tree. The splitter between
// two children takes splitter pixels from the parent's extent.
func (n *DockNode) layout(pos, size Vec2, splitter float32) {
	n.Pos, n.Size = pos, size
	if n.IsLeaf() {
		return
	}
	c0, c1 := n.Children[0], n.Children[1]
	if n.SplitAxis == AxisX {
		total := math32.Max(size.X-splitter, 0)
		w0 := math32.Floor(total * n.SplitRatio)
		c0.layout(pos, Vec2{w0, size.Y}, splitter)
		c1.layout(Vec2{pos.X + w0 + splitter, pos.Y}, Vec2{total - w0, size.Y}, splitter)
		return
	}
	total := math32.Max(size.Y-splitter, 0)
	h0 := math32.Floor(total * n.SplitRatio)
	c0.layout(pos, Vec2{size.X, h0}, splitter)
	c1.layout(Vec2{pos.X, pos.Y + h0 + splitter}, Vec2{size.X, total - h0}, splitter)
}

func (n *DockNode) tabRect(id ID) (Rect, bool) {
	for _, t := range n.tabs {
		if t.id == id {
			return t.rect, true
		}
	}
	return Rect{}, false
}

func (n *DockNode) removeWindow(id ID) {
	for i, wid := range n.Windows {
		if wid == id {
			n.Windows = append(n.Windows[:i], n.Windows[i+1:]...)
			break
		}
	}
	if n.SelectedTab == id {
		n.SelectedTab = 0
		if len(n.Windows) > 0 {
			n.SelectedTab = n.Windows[0]
		}
	}
}

// DockSpace lays out the dock space id inside the current window and draws
// its splitters. A size component <= 0 fills the remaining content region
// minus its magnitude. Windows docked into its leaves must be submitted
// after this call to appear docked in the same frame.
func (ctx *Context) DockSpace(id ID, size Vec2, flags DockNodeFlags) ID {
	w := ctx.currentWindow
	if w == nil {
		logger().Warn("DockSpace called outside a window")
		return id
	}
	if !ctx.dockingEnabled() {
		logger().Warn("DockSpace requires ConfigDockingEnable")
		return id
	}
	node := ctx.dockNodes[id]
	if node == nil {
		node = newDockNode(id, DockNodeDockSpace)
		ctx.dockNodes[id] = node
		logger().Debug("dock space created", "id", id)
	}
	if node.Parent != nil {
		logger().Warn("DockSpace id names a child node", "id", id)
		return id
	}
	node.Flags = flags | DockNodeDockSpace
	node.host = w

	avail := w.contentRect.Max().Sub(w.cursor)
	if size.X <= 0 {
		size.X = math32.Max(avail.X+size.X, 4)
	}
	if size.Y <= 0 {
		size.Y = math32.Max(avail.Y+size.Y, 4)
	}
	node.layout(w.cursor, size, ctx.style.DockSplitterSize)
	ctx.updateDockNode(node, node)
	w.cursor.Y += size.Y + ctx.style.ItemSpacing.Y
	return id
}

func (ctx *Context) updateDockNode(root, n *DockNode) {
	n.lastFrameAlive = ctx.frameCount
	if !n.IsLeaf() {
		ctx.updateSplitter(root, n)
		ctx.updateDockNode(root, n.Children[0])
		ctx.updateDockNode(root, n.Children[1])
		return
	}

	ctx.layoutTabs(n)
	dl := root.host.DrawList
	tabH := ctx.FrameHeight()
	switch {
	case len(n.tabs) > 0:
		dl.AddRect(n.Pos.X, n.Pos.Y, n.Size.X, tabH, ctx.style.TitleBgColor)
	case root.Flags&DockNodePassthruCentralNode == 0:
		dl.AddRect(n.Pos.X, n.Pos.Y, n.Size.X, n.Size.Y, ctx.style.DockingEmptyBgColor)
	}
}

func (ctx *Context) updateSplitter(root, n *DockNode) {
	ss := ctx.style.DockSplitterSize
	bar := func() Rect {
		c0 := n.Children[0]
		if n.SplitAxis == AxisX {
			return Rect{c0.Pos.X + c0.Size.X, n.Pos.Y, ss, n.Size.Y}
		}
		return Rect{n.Pos.X, c0.Pos.Y + c0.Size.Y, n.Size.X, ss}
	}
	r := bar()
	hit := Rect{r.X - 2, r.Y - 2, r.W + 4, r.H + 4}

	in := ctx.io.Input
	mouse := in.MousePos()
	id := hashID(n.ID, "#SPLITTER")
	resizable := root.Flags&DockNodeNoResize == 0
	hovered := resizable && ctx.hoveredWindow == root.host && hit.Contains(mouse)
	if hovered && in.MouseClicked(MouseButtonLeft) {
		ctx.activeID = id
	}
	if ctx.activeID == id && in.MouseDown(MouseButtonLeft) {
		if total := n.Size.Axis(n.SplitAxis) - ss; total > 0 {
			t := (mouse.Axis(n.SplitAxis) - n.Pos.Axis(n.SplitAxis) - ss/2) / total
			n.SplitRatio = clampf(t, minSplitRatio, maxSplitRatio)
			n.layout(n.Pos, n.Size, ss)
			r = bar()
		}
	}

	col := ctx.style.SeparatorColor
	if hovered || ctx.activeID == id {
		col = ctx.style.SeparatorHovered
	}
	root.host.DrawList.AddRect(r.X, r.Y, r.W, r.H, col)
}

// layoutTabs places a tab for every docked window that was submitted last
// frame. Windows shown again after being hidden get their tab in
// tabFor once they call Begin.
func (ctx *Context) layoutTabs(n *DockNode) {
	n.tabs = n.tabs[:0]
	tabH := ctx.FrameHeight()
	x := n.Pos.X
	for _, wid := range n.Windows {
		if w := ctx.windows[wid]; w != nil && w.lastFrameActive+1 < ctx.frameCount {
			continue
		}
		width := ctx.tabWidth(ctx.dockNames[wid])
		n.tabs = append(n.tabs, dockTab{id: wid, rect: Rect{x, n.Pos.Y, width, tabH}})
		x += width + 1
	}
	if _, ok := n.tabRect(n.SelectedTab); !ok {
		n.SelectedTab = 0
		if len(n.tabs) > 0 {
			n.SelectedTab = n.tabs[0].id
		}
	}
}

func (ctx *Context) tabWidth(name string) float32 {
	return ctx.font.TextWidth(name) + 2*ctx.style.FramePadding.X + ctx.FrameHeight()
}

func (ctx *Context) tabFor(n *DockNode, w *Window) Rect {
	if r, ok := n.tabRect(w.ID); ok {
		return r
	}
	x := n.Pos.X
	if len(n.tabs) > 0 {
		last := n.tabs[len(n.tabs)-1].rect
		x = last.X + last.W + 1
	}
	r := Rect{x, n.Pos.Y, ctx.tabWidth(w.Name), ctx.FrameHeight()}
	n.tabs = append(n.tabs, dockTab{id: w.ID, rect: r})
	if n.SelectedTab == 0 {
		n.SelectedTab = w.ID
	}
	return r
}

// dockWindow moves the window id into leaf n as its last tab.
func (ctx *Context) dockWindow(id ID, name string, n *DockNode) {
	if prev, ok := ctx.windowDock[id]; ok && prev != n.ID {
		if pn := ctx.dockNodes[prev]; pn != nil {
			pn.removeWindow(id)
		}
	}
	present := false
	for _, wid := range n.Windows {
		if wid == id {
			present = true
			break
		}
	}
	if !present {
		n.Windows = append(n.Windows, id)
	}
	if n.SelectedTab == 0 {
		n.SelectedTab = id
	}
	ctx.windowDock[id] = n.ID
	ctx.dockNames[id] = name
	if w := ctx.windows[id]; w != nil {
		w.DockID = n.ID
	}
}

func (ctx *Context) undock(w *Window, n *DockNode) {
	n.removeWindow(w.ID)
	delete(ctx.windowDock, w.ID)
	w.DockID = 0
	w.docked = false
	w.tabRect = Rect{}
	w.Size = Vec2{
		X: math32.Max(n.Size.X*0.5, ctx.style.WindowMinSize.X),
		Y: math32.Max(n.Size.Y*0.5, ctx.style.WindowMinSize.Y),
	}
	logger().Debug("window undocked", "window", w.Name, "node", n.ID)
}

// dockOnDrop docks a dragged floating window into the leaf whose tab bar
// is under the mouse.
func (ctx *Context) dockOnDrop(w *Window, mouse Vec2) {
	if !ctx.dockingEnabled() || w.Flags&WindowNoDocking != 0 {
		return
	}
	tabH := ctx.FrameHeight()
	for _, n := range ctx.dockNodes {
		if !n.IsLeaf() || n.lastFrameAlive+1 < ctx.frameCount {
			continue
		}
		bar := Rect{n.Pos.X, n.Pos.Y, n.Size.X, tabH}
		if bar.Contains(mouse) {
			ctx.dockWindow(w.ID, w.Name, n)
			n.SelectedTab = w.ID
			logger().Debug("window docked", "window", w.Name, "node", n.ID)
			return
		}
	}
}

// WindowDockID returns the dock node the named window is assigned to, or 0.
func (ctx *Context) WindowDockID(name string) ID {
	return ctx.windowDock[windowID(name)]
}

// FindDockNode returns the node with the given id, or nil.
func (ctx *Context) FindDockNode(id ID) *DockNode {
	return ctx.dockNodes[id]
}
