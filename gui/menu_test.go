package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type menuProbe struct {
	console   bool
	reset     int
	disabled  int
	barShown  bool
	menuShown bool
}

func (p *menuProbe) draw(ctx *Context) {
	p.barShown = ctx.BeginMainMenuBar()
	if !p.barShown {
		return
	}
	p.menuShown = ctx.BeginMenu("Window")
	if p.menuShown {
		ctx.MenuItemToggle("Console", &p.console)
		if ctx.MenuItem("Locked", WithDisabled(true)) {
			p.disabled++
		}
		ctx.Separator()
		if ctx.MenuItem("Reset Layout") {
			p.reset++
		}
		ctx.EndMenu()
	}
	ctx.EndMainMenuBar()
}

// menuItemPos returns a point inside the nth item of the open menu.
func menuItemPos(ctx *Context, n int) (float32, float32) {
	s := ctx.Style()
	h := ctx.FrameHeight()
	return s.ItemSpacing.X/2 + 5, h + s.WindowPadding.Y/2 + float32(n)*h + h/2
}

func openWindowMenu(t *testing.T, ctx *Context, p *menuProbe) {
	t.Helper()
	runFrame(ctx, func() { p.draw(ctx) })
	h := ctx.FrameHeight()
	clickAt(ctx, ctx.Style().ItemSpacing.X/2+5, h/2)
	runFrame(ctx, func() { p.draw(ctx) })
	assert.True(t, p.menuShown)
	assert.True(t, ctx.MenuOpen())
}

func TestMainMenuBarReservesWorkArea(t *testing.T) {
	ctx := newTestContext(t, 0)
	p := &menuProbe{}
	runFrame(ctx, func() { p.draw(ctx) })
	assert.True(t, p.barShown)
	assert.False(t, p.menuShown)

	runFrame(ctx, func() { p.draw(ctx) })
	vp := ctx.MainViewport()
	h := ctx.FrameHeight()
	assert.Equal(t, Vec2{0, h}, vp.WorkPos)
	assert.Equal(t, Vec2{testDisplay.X, testDisplay.Y - h}, vp.WorkSize)

	runFrame(ctx, nil)
	runFrame(ctx, nil)
	assert.Equal(t, Vec2{}, ctx.MainViewport().WorkPos, "released once the bar is gone")
}

func TestMenuItemToggle(t *testing.T) {
	ctx := newTestContext(t, 0)
	p := &menuProbe{console: true}
	openWindowMenu(t, ctx, p)
	assert.True(t, p.console, "opening does not activate items")

	release(ctx)
	x, y := menuItemPos(ctx, 0)
	ctx.IO().Input.SetMousePos(x, y)
	runFrame(ctx, func() { p.draw(ctx) })
	assert.False(t, p.console)
	assert.False(t, ctx.MenuOpen(), "activation closes the menu")
}

func TestDisabledMenuItemIgnored(t *testing.T) {
	ctx := newTestContext(t, 0)
	p := &menuProbe{}
	openWindowMenu(t, ctx, p)

	release(ctx)
	x, y := menuItemPos(ctx, 1)
	ctx.IO().Input.SetMousePos(x, y)
	runFrame(ctx, func() { p.draw(ctx) })
	assert.Zero(t, p.disabled)
	assert.True(t, ctx.MenuOpen())
}

func TestEscapeClosesMenu(t *testing.T) {
	ctx := newTestContext(t, 0)
	p := &menuProbe{}
	openWindowMenu(t, ctx, p)

	release(ctx)
	ctx.IO().Input.SetKey(KeyEscape, true)
	runFrame(ctx, func() { p.draw(ctx) })
	assert.False(t, ctx.MenuOpen())
	assert.False(t, p.menuShown)
}

func TestMenuClosesWhenNotSubmitted(t *testing.T) {
	ctx := newTestContext(t, 0)
	p := &menuProbe{}
	openWindowMenu(t, ctx, p)
	release(ctx)
	runFrame(ctx, nil)
	assert.False(t, ctx.MenuOpen())
}
