package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDisplay = Vec2{1000, 800}

func newTestContext(t *testing.T, flags ConfigFlags) *Context {
	t.Helper()
	ctx, err := CreateContext(flags)
	require.NoError(t, err)
	t.Cleanup(ctx.Destroy)
	ctx.IO().DisplaySize = testDisplay
	ctx.IO().DeltaTime = 1.0 / 60.0
	return ctx
}

// runFrame runs one full frame around build.
func runFrame(ctx *Context, build func()) {
	ctx.NewFrame()
	if build != nil {
		build()
	}
	ctx.Render()
}

// hostWindow submits a full-display window without padding that holds
// the dock space id.
func hostWindow(ctx *Context, id ID) {
	vp := ctx.MainViewport()
	ctx.SetNextWindowPos(vp.Pos)
	ctx.SetNextWindowSize(vp.Size)
	ctx.PushStyleVarVec2(StyleVarWindowPadding, Vec2{})
	ctx.PushStyleVarFloat(StyleVarWindowBorderSize, 0)
	ctx.Begin("Host", nil, WindowNoTitleBar|WindowNoDocking|WindowNoBackground|WindowNoNavFocus|WindowNoBringToFrontOnFocus)
	ctx.PopStyleVar(2)
	ctx.DockSpace(id, Vec2{}, DockNodePassthruCentralNode)
	ctx.End()
}

func TestFrameLifecycle(t *testing.T) {
	ctx := newTestContext(t, 0)
	assert.Nil(t, ctx.DrawData(), "no draw data before the first frame")

	runFrame(ctx, func() {
		ctx.Begin("Tools", nil, 0)
		ctx.Text("hello")
		ctx.End()
	})
	assert.Equal(t, uint64(1), ctx.FrameCount())
	assert.Equal(t, testDisplay, ctx.MainViewport().Size)

	dd := ctx.DrawData()
	require.NotNil(t, dd)
	assert.Len(t, dd.CmdLists, 1)
	assert.Positive(t, dd.TotalVtxCount())
	assert.Equal(t, testDisplay, dd.DisplaySize)

	w := ctx.FindWindow("Tools")
	require.NotNil(t, w)
	assert.True(t, w.Active(1))
	assert.False(t, w.Docked())

	runFrame(ctx, nil)
	assert.False(t, w.Active(2), "not submitted in frame 2")
}

func TestUnbalancedFrameRecovers(t *testing.T) {
	ctx := newTestContext(t, 0)
	ctx.NewFrame()
	ctx.Begin("Left Open", nil, 0)
	ctx.Render()
	assert.Nil(t, ctx.CurrentWindow(), "missing End is closed by Render")

	ctx.NewFrame()
	ctx.NewFrame()
	assert.Equal(t, uint64(3), ctx.FrameCount())
	ctx.Render()
	ctx.Render()
}

func TestDestroyIsIdempotent(t *testing.T) {
	ctx, err := CreateContext(ConfigDockingEnable)
	require.NoError(t, err)
	ctx.Destroy()
	ctx.Destroy()
	assert.True(t, ctx.Destroyed())
	ctx.NewFrame()
	assert.Zero(t, ctx.FrameCount())
}

func TestIDStack(t *testing.T) {
	ctx := newTestContext(t, 0)
	a := ctx.GetID("item")
	assert.Equal(t, a, ctx.GetID("item"))
	ctx.PushID("section")
	assert.NotEqual(t, a, ctx.GetID("item"))
	ctx.PopID()
	assert.Equal(t, a, ctx.GetID("item"))
	ctx.PopID()
	assert.Equal(t, ID(0), ctx.CurrentID())
}

func TestStyleVarStack(t *testing.T) {
	ctx := newTestContext(t, 0)
	def := ctx.Style()
	ctx.PushStyleVarVec2(StyleVarWindowPadding, Vec2{1, 2})
	ctx.PushStyleVarFloat(StyleVarWindowBorderSize, 5)
	assert.Equal(t, Vec2{1, 2}, ctx.Style().WindowPadding)
	assert.Equal(t, float32(5), ctx.Style().WindowBorderSize)
	ctx.PopStyleVar(2)
	assert.Equal(t, def, ctx.Style())
	ctx.PopStyleVar(1)
	assert.Equal(t, def, ctx.Style(), "extra pop is ignored")
}
