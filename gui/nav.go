package gui

// Window navigation cycles keyboard focus between the windows that were
// visible last frame, in creation order:
//   - Ctrl+Tab / Ctrl+Shift+Tab with ConfigNavEnableKeyboard
//   - gamepad R1 / L1 with ConfigNavEnableGamepad
//
// Windows with WindowNoNavFocus are skipped.

// FocusNextWindow focuses the next navigable window, wrapping around.
func (ctx *Context) FocusNextWindow() {
	ctx.cycleFocus(1)
}

// FocusPrevWindow focuses the previous navigable window, wrapping around.
func (ctx *Context) FocusPrevWindow() {
	ctx.cycleFocus(-1)
}

func (ctx *Context) navWindows() []*Window {
	out := make([]*Window, 0, len(ctx.windowsByCreation))
	for _, w := range ctx.windowsByCreation {
		if w.Flags&(WindowNoNavFocus|windowAlwaysOnTop) != 0 {
			continue
		}
		if w.lastFrameActive+1 < ctx.frameCount {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (ctx *Context) cycleFocus(step int) {
	windows := ctx.navWindows()
	if len(windows) == 0 {
		ctx.focusedWindow = nil
		return
	}
	idx := -1
	for i, w := range windows {
		if w == ctx.focusedWindow {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = len(windows) - 1
	default:
		idx = (idx + step + len(windows)) % len(windows)
	}
	ctx.FocusWindow(windows[idx])
}

// updateNav processes focus navigation input. It returns true if input was
// consumed.
func (ctx *Context) updateNav() bool {
	in := ctx.io.Input
	flags := ctx.io.ConfigFlags

	if flags&ConfigNavEnableKeyboard != 0 && in.ModCtrl && in.KeyPressed(KeyTab) {
		if in.ModShift {
			ctx.FocusPrevWindow()
		} else {
			ctx.FocusNextWindow()
		}
		return true
	}
	if flags&ConfigNavEnableGamepad != 0 {
		switch {
		case in.KeyPressed(KeyGamepadR1):
			ctx.FocusNextWindow()
			return true
		case in.KeyPressed(KeyGamepadL1):
			ctx.FocusPrevWindow()
			return true
		}
	}
	return false
}
