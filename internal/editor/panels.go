package editor

import (
	"fmt"

	"github.com/spaghet-engine/spaghet/gui"
)

// Panel identifies one of the editor's dockable windows.
type Panel int

const (
	PanelHierarchy Panel = iota
	PanelInspector
	PanelProject
	PanelConsole
	PanelScene
	PanelGame
	panelCount
)

// panelDefs is indexed by Panel. The window name doubles as the menu label.
var panelDefs = [panelCount]struct {
	name string
	body func(e *Editor, ctx *gui.Context)
}{
	PanelHierarchy: {"Hierarchy", placeholder("No scene loaded.")},
	PanelInspector: {"Inspector", placeholder("Nothing selected.")},
	PanelProject:   {"Project", placeholder("No project open.")},
	PanelConsole:   {"Console", (*Editor).drawConsole},
	PanelScene:     {"Scene", placeholder("Scene view")},
	PanelGame:      {"Game", placeholder("Game view")},
}

func (p Panel) String() string {
	if p >= 0 && p < panelCount {
		return panelDefs[p].name
	}
	return fmt.Sprintf("Panel(%d)", int(p))
}

// Panels returns every panel in menu order.
func Panels() []Panel {
	out := make([]Panel, panelCount)
	for i := range out {
		out[i] = Panel(i)
	}
	return out
}

// PanelVisible reports whether p is drawn.
func (e *Editor) PanelVisible(p Panel) bool {
	if p < 0 || p >= panelCount {
		return false
	}
	return e.visible[p]
}

// SetPanelVisible shows or hides p from the next frame on.
func (e *Editor) SetPanelVisible(p Panel, visible bool) {
	if p < 0 || p >= panelCount {
		return
	}
	e.visible[p] = visible
}

// drawPanels submits every visible panel. Each has a close button bound to
// its visibility flag.
func (e *Editor) drawPanels(ctx *gui.Context) {
	for p := range panelCount {
		if !e.visible[p] {
			continue
		}
		def := panelDefs[p]
		if ctx.Begin(def.name, &e.visible[p], gui.WindowFlagsNone) {
			def.body(e, ctx)
		}
		ctx.End()
	}
}

func placeholder(text string) func(*Editor, *gui.Context) {
	return func(_ *Editor, ctx *gui.Context) {
		ctx.TextDisabled(text)
	}
}
