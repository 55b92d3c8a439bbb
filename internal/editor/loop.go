package editor

import (
	"github.com/spaghet-engine/spaghet/gui"
	"github.com/spaghet-engine/spaghet/internal/platform"
)

const (
	hostWindowName = "HostWindow"
	dockSpaceName  = "MainDockSpace"
)

const hostWindowFlags = gui.WindowNoTitleBar | gui.WindowNoResize | gui.WindowNoMove |
	gui.WindowNoCollapse | gui.WindowNoBackground | gui.WindowNoBringToFrontOnFocus |
	gui.WindowNoNavFocus | gui.WindowNoDocking

// Run draws frames until a quit is requested. It returns immediately unless
// the editor is running.
func (e *Editor) Run() {
	if e.state != StateRunning {
		e.log.Warn("run called on editor that is not running", "state", e.state)
		return
	}
	e.firstRun = true
	for !e.shouldQuit {
		e.frame()
	}
	e.state = StateShuttingDown
	e.log.Info("editor frame loop finished", "frames", e.frames)
}

func (e *Editor) frame() {
	e.pollEvents()

	ctx := e.guiContext
	e.deps.GUIRenderer.NewFrame()
	e.deps.GUIPlatform.NewFrame()
	ctx.NewFrame()

	e.drawHost(ctx)
	e.drawPanels(ctx)

	e.deps.Graphics.Clear(e.cfg.GUI.ClearColor)
	ctx.Render()
	if dd := ctx.DrawData(); dd != nil {
		e.deps.GUIRenderer.RenderDrawData(dd)
	}
	if ctx.IO().ConfigFlags&gui.ConfigViewportsEnable != 0 {
		ctx.UpdatePlatformWindows()
		ctx.RenderPlatformWindowsDefault()
		if err := e.deps.Platform.MakeCurrent(e.window, e.glContext); err != nil {
			e.log.Error("restore main render context", "error", err)
		}
	}
	e.deps.Platform.SwapWindow(e.window)
	e.frames++
}

// pollEvents drains the platform queue. The GUI sees each event first.
func (e *Editor) pollEvents() {
	for {
		ev, ok := e.deps.Platform.PollEvent()
		if !ok {
			return
		}
		e.deps.GUIPlatform.ProcessEvent(ev)
		switch ev.Type {
		case platform.EventQuit:
			e.onQuit()
		case platform.EventWindowClose:
			if e.window != nil && ev.WindowID == e.window.ID() {
				e.onQuit()
			}
		case platform.EventWindowResized:
			e.updateViewport()
		}
	}
}

func (e *Editor) onQuit() {
	if !e.shouldQuit {
		e.log.Info("quit requested")
	}
	e.shouldQuit = true
}

// updateViewport sets the render viewport to the window's pixel size.
func (e *Editor) updateViewport() {
	w, h := e.deps.Platform.WindowPixelSize(e.window)
	e.deps.Graphics.Viewport(0, 0, int32(w), int32(h))
}

// drawHost submits the full-viewport window holding the main menu bar and
// the dock space, and installs the default layout when due.
func (e *Editor) drawHost(ctx *gui.Context) {
	vp := ctx.MainViewport()
	ctx.SetNextWindowPos(vp.Pos)
	ctx.SetNextWindowSize(vp.Size)
	ctx.SetNextWindowViewport(vp.ID)
	ctx.PushStyleVarVec2(gui.StyleVarWindowPadding, gui.Vec2{})
	ctx.PushStyleVarFloat(gui.StyleVarWindowBorderSize, 0)
	visible := ctx.Begin(hostWindowName, nil, hostWindowFlags)
	ctx.PopStyleVar(2)
	if visible {
		e.drawMainMenu(ctx)
		e.drawDockSpace(ctx)
	}
	ctx.End()
}

func (e *Editor) drawDockSpace(ctx *gui.Context) {
	docking := ctx.IO().ConfigFlags&gui.ConfigDockingEnable != 0
	id := ctx.GetID(dockSpaceName)
	if docking {
		ctx.DockSpace(id, gui.Vec2{}, gui.DockNodePassthruCentralNode)
	}
	if !e.firstRun && !e.resetLayout {
		return
	}
	if docking {
		if err := applyLayout(ctx, id, DefaultLayout()); err != nil {
			e.log.Error("build default dock layout", "error", err)
		}
		e.layoutBuilds++
	}
	e.firstRun = false
	e.resetLayout = false
}
