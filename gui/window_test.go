package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatingTools(ctx *Context, open *bool) (visible bool) {
	ctx.SetNextWindowPos(Vec2{100, 100})
	ctx.SetNextWindowSize(Vec2{200, 150})
	visible = ctx.Begin("Tools", open, 0)
	ctx.End()
	return visible
}

func clickAt(ctx *Context, x, y float32) {
	in := ctx.IO().Input
	in.SetMousePos(x, y)
	in.SetMouseButton(MouseButtonLeft, true)
}

func release(ctx *Context) {
	ctx.IO().Input.SetMouseButton(MouseButtonLeft, false)
}

func TestCloseButtonClearsOpen(t *testing.T) {
	ctx := newTestContext(t, 0)
	open := true
	runFrame(ctx, func() { floatingTools(ctx, &open) })
	w := ctx.FindWindow("Tools")
	require.NotNil(t, w)
	assert.Equal(t, Rect{100, 100, 200, 150}, w.Rect())

	h := ctx.FrameHeight()
	clickAt(ctx, 300-h/2, 100+h/2)
	runFrame(ctx, func() { floatingTools(ctx, &open) })
	assert.False(t, open)
	assert.Same(t, w, ctx.FocusedWindow())
}

func TestCollapseArrowToggles(t *testing.T) {
	ctx := newTestContext(t, 0)
	runFrame(ctx, func() { floatingTools(ctx, nil) })

	h := ctx.FrameHeight()
	clickAt(ctx, 100+h/2, 100+h/2)
	var visible bool
	runFrame(ctx, func() { visible = floatingTools(ctx, nil) })
	assert.False(t, visible)
	assert.True(t, ctx.FindWindow("Tools").Collapsed)

	release(ctx)
	runFrame(ctx, func() { floatingTools(ctx, nil) })
	clickAt(ctx, 100+h/2, 100+h/2)
	runFrame(ctx, func() { visible = floatingTools(ctx, nil) })
	assert.True(t, visible)
}

func TestTitleDragMovesWindow(t *testing.T) {
	ctx := newTestContext(t, 0)
	first := true
	draw := func() {
		if first {
			ctx.SetNextWindowPos(Vec2{100, 100})
			first = false
		}
		ctx.Begin("Tools", nil, 0)
		ctx.End()
	}
	h := ctx.FrameHeight()
	in := ctx.IO().Input
	in.SetMousePos(150, 100+h/2)
	runFrame(ctx, draw)

	in.SetMouseButton(MouseButtonLeft, true)
	runFrame(ctx, draw)
	in.SetMousePos(180, 120+h/2)
	runFrame(ctx, draw)
	assert.Equal(t, Vec2{130, 120}, ctx.FindWindow("Tools").Pos)

	release(ctx)
	in.SetMousePos(300, 300)
	runFrame(ctx, draw)
	assert.Equal(t, Vec2{130, 120}, ctx.FindWindow("Tools").Pos, "released")
}

func TestNoCloseButtonWithoutOpen(t *testing.T) {
	ctx := newTestContext(t, 0)
	runFrame(ctx, func() { floatingTools(ctx, nil) })
	h := ctx.FrameHeight()
	clickAt(ctx, 300-h/2, 100+h/2)
	var visible bool
	runFrame(ctx, func() { visible = floatingTools(ctx, nil) })
	assert.True(t, visible)
}

func TestWidgetsAdvanceCursor(t *testing.T) {
	ctx := newTestContext(t, 0)
	var before, after Vec2
	runFrame(ctx, func() {
		floatingToolsBody(ctx, func() {
			before = ctx.ContentRegionAvail()
			ctx.Text("one")
			ctx.TextDisabled("two")
			after = ctx.ContentRegionAvail()
		})
	})
	assert.Equal(t, before.X, after.X)
	assert.InDelta(t, 2*ctx.TextLineHeight(), before.Y-after.Y, 1e-4)
	assert.Equal(t, Vec2{}, ctx.ContentRegionAvail(), "no window")
}

func floatingToolsBody(ctx *Context, body func()) {
	ctx.SetNextWindowPos(Vec2{100, 100})
	ctx.SetNextWindowSize(Vec2{200, 150})
	if ctx.Begin("Tools", nil, 0) {
		body()
	}
	ctx.End()
}
