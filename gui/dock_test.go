package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDockID ID = 0xD0C

func TestSplitNodeArithmetic(t *testing.T) {
	ctx := newTestContext(t, ConfigDockingEnable)
	runFrame(ctx, nil)

	b := ctx.DockBuilder()
	b.AddNode(testDockID, DockNodeDockSpace)
	root := b.Node(testDockID)
	require.NotNil(t, root)
	assert.Equal(t, testDisplay, root.Size)

	left, right, err := b.SplitNode(testDockID, DirLeft, 0.75)
	require.NoError(t, err)
	l, r := b.Node(left), b.Node(right)
	// 2px splitter: (1000-2)*0.75 = 748.5, floored.
	assert.Equal(t, Vec2{748, 800}, l.Size)
	assert.Equal(t, Vec2{750, 0}, r.Pos)
	assert.Equal(t, Vec2{250, 800}, r.Size)
	assert.Same(t, root, l.Parent)
	assert.Equal(t, AxisX, root.SplitAxis)

	bottom, top, err := b.SplitNode(left, DirDown, 0.3)
	require.NoError(t, err)
	bt, tp := b.Node(bottom), b.Node(top)
	assert.Equal(t, Vec2{748, 558}, tp.Size)
	assert.Equal(t, Vec2{0, 560}, bt.Pos)
	assert.Equal(t, Vec2{748, 240}, bt.Size)
	assert.InDelta(t, 0.7, l.SplitRatio, 1e-6, "ratio is stored for the first child")

	leaves := root.Leaves(nil)
	require.Len(t, leaves, 3)
	assert.Equal(t, []*DockNode{tp, bt, r}, leaves)
	for _, n := range leaves {
		assert.Same(t, root, n.Root())
	}
}

func TestSplitNodeErrors(t *testing.T) {
	ctx := newTestContext(t, ConfigDockingEnable)
	b := ctx.DockBuilder()
	_, _, err := b.SplitNode(testDockID, DirLeft, 0.5)
	assert.Error(t, err, "unknown node")

	b.AddNode(testDockID, DockNodeDockSpace)
	_, _, err = b.SplitNode(testDockID, DirNone, 0.5)
	assert.Error(t, err)
	_, _, err = b.SplitNode(testDockID, DirUp, 0)
	assert.Error(t, err)
	_, _, err = b.SplitNode(testDockID, DirUp, 1)
	assert.Error(t, err)

	_, _, err = b.SplitNode(testDockID, DirUp, 0.5)
	require.NoError(t, err)
	_, _, err = b.SplitNode(testDockID, DirUp, 0.5)
	assert.Error(t, err, "already split")
	assert.Error(t, b.DockWindow("Scene", testDockID), "cannot dock into a split node")
	assert.Error(t, b.DockWindow("Scene", 12345))
}

func TestRebuildReproducesNodeIDs(t *testing.T) {
	ctx := newTestContext(t, ConfigDockingEnable)
	runFrame(ctx, nil)
	build := func() (ID, ID) {
		b := ctx.DockBuilder()
		b.RemoveNode(testDockID)
		b.AddNode(testDockID, DockNodeDockSpace)
		a, o, err := b.SplitNode(testDockID, DirRight, 0.25)
		require.NoError(t, err)
		require.NoError(t, b.DockWindow("Inspector", a))
		b.Finish(testDockID)
		return a, o
	}
	a1, o1 := build()
	a2, o2 := build()
	assert.Equal(t, a1, a2)
	assert.Equal(t, o1, o2)
	assert.Equal(t, a1, ctx.WindowDockID("Inspector"))
	assert.Equal(t, float32(250), ctx.FindDockNode(a1).Size.X, "right quarter")
}

func TestSplitMovesDockedWindows(t *testing.T) {
	ctx := newTestContext(t, ConfigDockingEnable)
	b := ctx.DockBuilder()
	b.AddNode(testDockID, DockNodeDockSpace)
	require.NoError(t, b.DockWindow("Console", testDockID))
	_, other, err := b.SplitNode(testDockID, DirUp, 0.5)
	require.NoError(t, err)
	assert.Equal(t, other, ctx.WindowDockID("Console"))
	assert.Empty(t, b.Node(testDockID).Windows)
}

func TestDockSpaceLayoutAndResize(t *testing.T) {
	ctx := newTestContext(t, ConfigDockingEnable)
	var left, right ID
	runFrame(ctx, func() {
		hostWindow(ctx, testDockID)
		b := ctx.DockBuilder()
		b.AddNode(testDockID, DockNodeDockSpace)
		b.SetNodeSize(testDockID, ctx.MainViewport().Size)
		var err error
		left, right, err = b.SplitNode(testDockID, DirLeft, 0.75)
		require.NoError(t, err)
		require.NoError(t, b.DockWindow("Scene", left))
		require.NoError(t, b.DockWindow("Game", left))
		require.NoError(t, b.DockWindow("Inspector", right))
		b.Finish(testDockID)
		for _, name := range []string{"Scene", "Game", "Inspector"} {
			ctx.Begin(name, nil, 0)
			ctx.End()
		}
	})

	scene, game, inspector := ctx.FindWindow("Scene"), ctx.FindWindow("Game"), ctx.FindWindow("Inspector")
	require.NotNil(t, scene)
	assert.True(t, scene.Docked(), "docked in the frame the layout was built")
	assert.True(t, game.Docked())
	assert.Equal(t, ctx.FindDockNode(right).Rect(), inspector.Rect())
	assert.Equal(t, scene.ID, ctx.FindDockNode(left).SelectedTab, "first docked tab is selected")

	ctx.IO().DisplaySize = Vec2{600, 400}
	var sceneVisible, gameVisible bool
	runFrame(ctx, func() {
		hostWindow(ctx, testDockID)
		sceneVisible = ctx.Begin("Scene", nil, 0)
		ctx.End()
		gameVisible = ctx.Begin("Game", nil, 0)
		ctx.End()
		ctx.Begin("Inspector", nil, 0)
		ctx.End()
	})
	assert.True(t, sceneVisible)
	assert.False(t, gameVisible, "hidden behind the selected tab")
	assert.Equal(t, Vec2{600, 400}, ctx.FindDockNode(testDockID).Size)
	assert.Equal(t, float32(448), ctx.FindDockNode(left).Size.X, "ratio kept on resize")
	assert.Equal(t, Vec2{150, 400}, inspector.Size)
}

func TestDockSpaceRequiresDocking(t *testing.T) {
	ctx := newTestContext(t, 0)
	runFrame(ctx, func() { hostWindow(ctx, testDockID) })
	assert.Nil(t, ctx.FindDockNode(testDockID))
}

func TestDockedWindowFloatsWithoutHost(t *testing.T) {
	ctx := newTestContext(t, ConfigDockingEnable)
	b := ctx.DockBuilder()
	b.AddNode(testDockID, DockNodeDockSpace)
	require.NoError(t, b.DockWindow("Scene", testDockID))

	// No host submits the dock space, so the window floats.
	runFrame(ctx, func() {
		ctx.Begin("Scene", nil, 0)
		ctx.End()
	})
	assert.False(t, ctx.FindWindow("Scene").Docked())
	assert.Equal(t, testDockID, ctx.WindowDockID("Scene"))
}
