package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	red  = 0xFF0000FF
	blue = 0xFFFF0000
)

func newDrawList(t *testing.T) *DrawList {
	t.Helper()
	dl := AcquireDrawList()
	t.Cleanup(func() { ReleaseDrawList(dl) })
	return dl
}

func TestDrawListRect(t *testing.T) {
	dl := newDrawList(t)
	assert.True(t, dl.Empty())

	dl.AddRect(10, 20, 30, 40, red)
	dl.Finalize()
	require.Len(t, dl.CmdBuffer, 1)
	assert.Len(t, dl.VtxBuffer, 4)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, dl.IdxBuffer)
	assert.Equal(t, uint32(6), dl.CmdBuffer[0].ElemCount)
	assert.Equal(t, [2]float32{40, 60}, dl.VtxBuffer[2].Pos)
}

func TestDrawListSkipsInvisible(t *testing.T) {
	dl := newDrawList(t)
	dl.AddRect(0, 0, 10, 10, 0x00FFFFFF)
	dl.AddRect(0, 0, 0, 10, red)
	dl.AddLine(0, 0, 10, 10, 0x00FFFFFF, 1)
	dl.AddRectOutline(0, 0, 10, 10, red, 0)
	dl.Finalize()
	assert.True(t, dl.Empty())
	assert.Empty(t, dl.CmdBuffer)
}

func TestDrawListClipSplitsCommands(t *testing.T) {
	dl := newDrawList(t)
	dl.AddRect(0, 0, 10, 10, red)
	dl.PushClipRect(0, 0, 50, 50)
	dl.AddRect(5, 5, 10, 10, red)
	dl.PushClipRect(20, 20, 100, 100)
	assert.Equal(t, [4]float32{20, 20, 50, 50}, dl.ClipRect(), "intersected with the parent")
	dl.PopClipRect()
	dl.PopClipRect()
	dl.AddRect(0, 0, 10, 10, red)
	dl.Finalize()

	require.Len(t, dl.CmdBuffer, 3, "empty commands are dropped")
	assert.Equal(t, [4]float32{0, 0, 50, 50}, dl.CmdBuffer[1].ClipRect)
	for _, cmd := range dl.CmdBuffer {
		assert.Equal(t, uint32(6), cmd.ElemCount)
	}
	assert.Equal(t, uint32(8), dl.CmdBuffer[2].VertexOffset)
	assert.Equal(t, uint32(12), dl.CmdBuffer[2].IndexOffset)
}

func TestDrawListPopOnEmptyStack(t *testing.T) {
	dl := newDrawList(t)
	before := dl.ClipRect()
	dl.PopClipRect()
	assert.Equal(t, before, dl.ClipRect())
}

func TestDrawListInsertRect(t *testing.T) {
	dl := newDrawList(t)
	dl.AddRect(10, 10, 5, 5, red)
	dl.InsertRect(0, 0, 100, 100, blue)
	dl.Finalize()

	require.Len(t, dl.CmdBuffer, 2)
	assert.Equal(t, uint32(blue), dl.VtxBuffer[0].Color)
	assert.Equal(t, uint32(red), dl.VtxBuffer[4].Color)
	assert.Equal(t, uint32(0), dl.CmdBuffer[0].IndexOffset)
	assert.Equal(t, uint32(6), dl.CmdBuffer[1].IndexOffset)
	assert.Equal(t, uint32(4), dl.CmdBuffer[1].VertexOffset)
	assert.Equal(t, uint32(6), dl.CmdBuffer[1].ElemCount)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3, 0, 1, 2, 0, 2, 3}, dl.IdxBuffer, "indices stay command-relative")
}

func TestDrawListText(t *testing.T) {
	f, err := DefaultFontAtlas()
	require.NoError(t, err)
	dl := newDrawList(t)

	dl.AddText(0, 0, "a b", red)
	assert.Empty(t, dl.VtxBuffer, "no font bound")

	dl.SetFont(f)
	dl.AddText(10, 0, "a b", red)
	dl.Finalize()
	assert.Len(t, dl.VtxBuffer, 8, "spaces emit no quad")
	assert.Len(t, dl.IdxBuffer, 12)
	assert.Equal(t, float32(10+2*7), dl.VtxBuffer[4].Pos[0])

	u0, v0, _, _ := f.GlyphUV('a')
	assert.Equal(t, [2]float32{u0, v0}, dl.VtxBuffer[0].TexCoord)
}

func TestDrawListSolidUsesWhiteCell(t *testing.T) {
	f, err := DefaultFontAtlas()
	require.NoError(t, err)
	dl := newDrawList(t)
	dl.SetFont(f)
	dl.AddTriangle(0, 0, 10, 0, 0, 10, red)
	require.Len(t, dl.VtxBuffer, 3)
	for _, v := range dl.VtxBuffer {
		assert.Equal(t, f.WhiteUV(), v.TexCoord)
	}
}

func TestAcquireDrawListIsClear(t *testing.T) {
	dl := AcquireDrawList()
	dl.AddRect(0, 0, 1, 1, red)
	dl.PushClipRect(0, 0, 1, 1)
	ReleaseDrawList(dl)

	dl = AcquireDrawList()
	defer ReleaseDrawList(dl)
	assert.True(t, dl.Empty())
	assert.Empty(t, dl.CmdBuffer)
	assert.Equal(t, [4]float32{-1e9, -1e9, 1e9, 1e9}, dl.ClipRect())
}
