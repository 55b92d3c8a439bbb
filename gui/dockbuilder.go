package gui

import "fmt"

// DockBuilder edits dock trees programmatically, typically once to install
// a default layout. Changes take effect the next time DockSpace runs.
type DockBuilder struct {
	ctx *Context
}

// DockBuilder returns the builder for this context.
func (ctx *Context) DockBuilder() DockBuilder {
	return DockBuilder{ctx: ctx}
}

// RemoveNode deletes the node id and its subtree. Windows docked in it
// become floating.
func (b DockBuilder) RemoveNode(id ID) {
	n := b.ctx.dockNodes[id]
	if n == nil {
		return
	}
	if p := n.Parent; p != nil {
		logger().Warn("dock builder cannot remove a child node", "id", id)
		return
	}
	b.removeTree(n)
	logger().Debug("dock node removed", "id", id)
}

func (b DockBuilder) removeTree(n *DockNode) {
	for _, c := range n.Children {
		if c != nil {
			b.removeTree(c)
		}
	}
	for _, wid := range n.Windows {
		delete(b.ctx.windowDock, wid)
		if w := b.ctx.windows[wid]; w != nil {
			w.DockID = 0
		}
	}
	delete(b.ctx.dockNodes, n.ID)
}

// AddNode creates an empty dock space root sized to the main viewport,
// replacing any node with the same id. A replaced root keeps its host
// window and position.
func (b DockBuilder) AddNode(id ID, flags DockNodeFlags) ID {
	vp := b.ctx.mainViewport
	n := newDockNode(id, flags|DockNodeDockSpace)
	n.Pos = vp.WorkPos
	n.Size = vp.WorkSize
	if old := b.ctx.dockNodes[id]; old != nil && old.Parent == nil {
		n.host = old.host
		n.Pos = old.Pos
	}
	b.RemoveNode(id)
	b.ctx.dockNodes[id] = n
	return id
}

// SetNodeSize resizes a node and lays out its subtree again.
func (b DockBuilder) SetNodeSize(id ID, size Vec2) {
	n := b.ctx.dockNodes[id]
	if n == nil {
		logger().Warn("dock builder: unknown node", "id", id)
		return
	}
	n.layout(n.Pos, size, b.ctx.style.DockSplitterSize)
}

// SplitNode divides leaf id in two. The child on side dir gets ratio of the
// extent along dir's axis and the opposite child the rest. Windows already
// docked in id move to the opposite child. It returns the ids of the child
// at dir and of the opposite child.
func (b DockBuilder) SplitNode(id ID, dir Dir, ratio float32) (atDir, opposite ID, err error) {
	n := b.ctx.dockNodes[id]
	switch {
	case n == nil:
		return 0, 0, fmt.Errorf("split dock node %#x: no such node", uint64(id))
	case !n.IsLeaf():
		return 0, 0, fmt.Errorf("split dock node %#x: already split", uint64(id))
	case dir.Axis() == AxisNone:
		return 0, 0, fmt.Errorf("split dock node %#x: invalid direction %v", uint64(id), dir)
	case ratio <= 0 || ratio >= 1:
		return 0, 0, fmt.Errorf("split dock node %#x: ratio %v outside (0, 1)", uint64(id), ratio)
	}

	// Child ids derive from the parent so rebuilding a layout reproduces them.
	c0 := newDockNode(hashID(n.ID, "#SPLIT0"), 0)
	c1 := newDockNode(hashID(n.ID, "#SPLIT1"), 0)
	c0.Parent, c1.Parent = n, n
	b.ctx.dockNodes[c0.ID] = c0
	b.ctx.dockNodes[c1.ID] = c1

	n.Children = [2]*DockNode{c0, c1}
	n.SplitAxis = dir.Axis()
	at, other := c0, c1
	n.SplitRatio = ratio
	if dir == DirRight || dir == DirDown {
		at, other = c1, c0
		n.SplitRatio = 1 - ratio
	}

	moved := n.Windows
	n.Windows = nil
	n.SelectedTab = 0
	for _, wid := range moved {
		b.ctx.dockWindow(wid, b.ctx.dockNames[wid], other)
	}
	n.tabs = n.tabs[:0]

	n.layout(n.Pos, n.Size, b.ctx.style.DockSplitterSize)
	logger().Debug("dock node split", "id", id, "dir", dir, "ratio", ratio)
	return at.ID, other.ID, nil
}

// DockWindow assigns the named window to leaf nodeID. The window need not
// exist yet; it docks on its first Begin.
func (b DockBuilder) DockWindow(name string, nodeID ID) error {
	n := b.ctx.dockNodes[nodeID]
	if n == nil {
		return fmt.Errorf("dock window %q: no node %#x", name, uint64(nodeID))
	}
	if !n.IsLeaf() {
		return fmt.Errorf("dock window %q: node %#x is split", name, uint64(nodeID))
	}
	b.ctx.dockWindow(windowID(name), name, n)
	return nil
}

// Node returns the node with the given id, or nil.
func (b DockBuilder) Node(id ID) *DockNode {
	return b.ctx.dockNodes[id]
}

// Finish completes a batch of edits on the tree rooted at id. When the
// dock space was already submitted this frame the new tree goes live
// immediately, so windows begun afterwards appear docked.
func (b DockBuilder) Finish(id ID) {
	ctx := b.ctx
	n := ctx.dockNodes[id]
	if n == nil {
		return
	}
	n.layout(n.Pos, n.Size, ctx.style.DockSplitterSize)
	if ctx.withinFrame && n.host != nil && n.host.lastFrameActive == ctx.frameCount && n.host.DrawList != nil {
		ctx.updateDockNode(n, n)
	}
	leaves := n.Leaves(nil)
	logger().Debug("dock layout finished", "id", id, "leaves", len(leaves))
}
