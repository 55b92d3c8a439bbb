/*
Package gui provides an immediate-mode GUI modeled on Dear ImGui, with
docking and multiple viewports, written as idiomatic Go with a dedicated
Context type.

# Overview

The UI is rebuilt every frame. Windows, menus and dock spaces are
submitted between NewFrame and Render; the context keeps only the state
that must survive between frames (window positions, dock trees, focus and
open menus). Render produces one DrawData per viewport for a renderer
backend to draw.

# Frame Structure

	ctx, _ := gui.CreateContext(gui.ConfigDockingEnable | gui.ConfigViewportsEnable)
	defer ctx.Destroy()

	for running {
	    platform.NewFrame() // fills ctx.IO()
	    ctx.NewFrame()

	    vp := ctx.MainViewport()
	    ctx.SetNextWindowPos(vp.Pos)
	    ctx.SetNextWindowSize(vp.Size)
	    ctx.SetNextWindowViewport(vp.ID)
	    if ctx.Begin("Host", nil, gui.WindowNoTitleBar|gui.WindowNoDocking) {
	        if ctx.BeginMainMenuBar() {
	            if ctx.BeginMenu("File") {
	                running = !ctx.MenuItem("Exit")
	                ctx.EndMenu()
	            }
	            ctx.EndMainMenuBar()
	        }
	        ctx.DockSpace(ctx.GetID("Dock"), gui.Vec2{}, gui.DockNodePassthruCentralNode)
	    }
	    ctx.End()

	    if ctx.Begin("Console", &showConsole, 0) {
	        ctx.Text("hello")
	    }
	    ctx.End()

	    ctx.Render()
	    renderer.RenderDrawData(ctx.DrawData())
	    ctx.UpdatePlatformWindows()
	    ctx.RenderPlatformWindowsDefault()
	}

Begin must always be paired with End, whatever it returns. BeginMenu and
BeginMainMenuBar are paired with their End call only when they return true.

# Docking

A dock space is a binary tree of DockNode values. Leaves hold windows as
tabs; internal nodes split their area along one axis with a draggable
splitter. Layouts are built with the DockBuilder:

	b := ctx.DockBuilder()
	b.RemoveNode(id)
	b.AddNode(id, gui.DockNodeDockSpace)
	b.SetNodeSize(id, vp.Size)
	left, right, _ := b.SplitNode(id, gui.DirLeft, 0.75)
	_ = b.DockWindow("Scene", left)
	_ = b.DockWindow("Inspector", right)
	b.Finish(id)

Child node IDs are derived from their parent, so rebuilding a layout with
the same calls yields the same tree.

Dragging a tab vertically out of its tab bar undocks the window; dropping
a floating window on a leaf's tab bar docks it there.

# Viewports

With ConfigViewportsEnable and a PlatformIO installed, a floating window
dragged entirely outside the main viewport moves into its own OS window.
Coordinates stay relative to the main window's client origin; the
platform backend translates when it places OS windows and reports mouse
positions.

# Navigation

	Ctrl+Tab         Focus next window
	Ctrl+Shift+Tab   Focus previous window
	Gamepad R1/L1    Focus next/previous window
	Escape           Close the open menu

# Logging

The package is silent by default. SetLogger installs a slog.Logger used by
the package and its backends; API misuse is reported at Warn level and
dock and viewport lifecycle at Debug.
*/
package gui
