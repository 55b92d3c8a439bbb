package editor

import (
	"errors"
	"fmt"

	"github.com/spaghet-engine/spaghet/gui"
)

// Layout describes a dock tree. A node either splits in two, or is a leaf
// holding panels as tabs.
type Layout struct {
	Split  *Split
	Panels []Panel
}

// Split divides a node. The child on side Dir receives Ratio of the extent
// and is described by AtDir; the rest is Opposite.
type Split struct {
	Dir      gui.Dir
	Ratio    float32
	AtDir    Layout
	Opposite Layout
}

// DefaultLayout is the editor's initial arrangement: Inspector on the
// right quarter; Project and Console along the bottom 30% of the left;
// Scene and Game over three quarters of the remaining top-left with
// Hierarchy beside them.
func DefaultLayout() Layout {
	return Layout{Split: &Split{
		Dir:   gui.DirLeft,
		Ratio: 0.75,
		AtDir: Layout{Split: &Split{
			Dir:   gui.DirUp,
			Ratio: 0.7,
			AtDir: Layout{Split: &Split{
				Dir:      gui.DirRight,
				Ratio:    0.75,
				AtDir:    Layout{Panels: []Panel{PanelScene, PanelGame}},
				Opposite: Layout{Panels: []Panel{PanelHierarchy}},
			}},
			Opposite: Layout{Panels: []Panel{PanelProject, PanelConsole}},
		}},
		Opposite: Layout{Panels: []Panel{PanelInspector}},
	}}
}

// Validate checks that every split is well formed and no panel is docked
// twice.
func (l Layout) Validate() error {
	return l.validate(make(map[Panel]bool))
}

func (l Layout) validate(seen map[Panel]bool) error {
	if l.Split != nil {
		if len(l.Panels) > 0 {
			return errors.New("layout node both splits and holds panels")
		}
		s := l.Split
		if s.Dir.Axis() == gui.AxisNone {
			return fmt.Errorf("layout split has no direction")
		}
		if s.Ratio <= 0 || s.Ratio >= 1 {
			return fmt.Errorf("layout split ratio %v outside (0, 1)", s.Ratio)
		}
		if err := s.AtDir.validate(seen); err != nil {
			return err
		}
		return s.Opposite.validate(seen)
	}
	for _, p := range l.Panels {
		if p < 0 || p >= panelCount {
			return fmt.Errorf("layout names unknown %v", p)
		}
		if seen[p] {
			return fmt.Errorf("layout docks %v twice", p)
		}
		seen[p] = true
	}
	return nil
}

// applyLayout replaces the dock tree id with l, sized like the current
// dock space.
func applyLayout(ctx *gui.Context, id gui.ID, l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	b := ctx.DockBuilder()
	size := ctx.MainViewport().Size
	if n := b.Node(id); n != nil && n.Size.X > 0 && n.Size.Y > 0 {
		size = n.Size
	}
	// AddNode discards the old tree but keeps the dock space's host, so
	// the new layout is live in this frame.
	b.AddNode(id, gui.DockNodeDockSpace)
	b.SetNodeSize(id, size)
	err := l.build(b, id)
	b.Finish(id)
	return err
}

func (l Layout) build(b gui.DockBuilder, node gui.ID) error {
	if s := l.Split; s != nil {
		at, opposite, err := b.SplitNode(node, s.Dir, s.Ratio)
		if err != nil {
			return err
		}
		if err := s.AtDir.build(b, at); err != nil {
			return err
		}
		return s.Opposite.build(b, opposite)
	}
	for _, p := range l.Panels {
		if err := b.DockWindow(p.String(), node); err != nil {
			return err
		}
	}
	return nil
}
