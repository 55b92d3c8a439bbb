package editor

import "github.com/spaghet-engine/spaghet/gui"

// drawMainMenu submits File, Edit and Window. Project and settings entries
// have no backing feature yet and are shown disabled.
func (e *Editor) drawMainMenu(ctx *gui.Context) {
	if !ctx.BeginMainMenuBar() {
		return
	}
	if ctx.BeginMenu("File") {
		ctx.MenuItem("New Project", gui.WithDisabled(true))
		ctx.MenuItem("Open Project", gui.WithDisabled(true))
		ctx.MenuItem("Save Project", gui.WithDisabled(true))
		ctx.Separator()
		if ctx.MenuItem("Exit") {
			e.onQuit()
		}
		ctx.EndMenu()
	}
	if ctx.BeginMenu("Edit") {
		ctx.MenuItem("Engine Settings", gui.WithDisabled(true))
		ctx.MenuItem("Editor Settings", gui.WithDisabled(true))
		ctx.MenuItem("Project Settings", gui.WithDisabled(true))
		ctx.Separator()
		canCopy := e.console != nil && ctx.ClipboardAvailable()
		if ctx.MenuItem("Copy Console Log", gui.WithDisabled(!canCopy)) {
			ctx.SetClipboardText(e.consoleText())
		}
		ctx.EndMenu()
	}
	if ctx.BeginMenu("Window") {
		for _, p := range Panels() {
			ctx.MenuItemToggle(p.String(), &e.visible[p])
		}
		ctx.Separator()
		if ctx.MenuItem("Reset Layout") {
			e.ResetLayout()
		}
		ctx.EndMenu()
	}
	ctx.EndMainMenuBar()
}
