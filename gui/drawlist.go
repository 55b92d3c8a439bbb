package gui

import (
	"sync"

	"github.com/chewxy/math32"
)

// drawListPool reuses DrawList buffers between frames; every window and
// popup rebuilds its list each frame.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 1024),
			IdxBuffer: make([]uint16, 0, 2048),
			CmdBuffer: make([]DrawCmd, 0, 16),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

// AcquireDrawList gets a DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawList accumulates draw commands for one window or popup.
// Shapes sample the font atlas's solid cell, so a list normally needs a
// single texture; commands split only on clip changes.
type DrawList struct {
	CmdBuffer []DrawCmd
	VtxBuffer []Vertex
	IdxBuffer []uint16

	font         *FontAtlas
	whiteUV      [2]float32
	clipStack    [][4]float32
	currentClip  [4]float32
	idxCmdOffset uint32
	cmdOffset    uint32
}

// Clear resets the DrawList for a new frame.
// Retains allocated capacity to avoid reallocations.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = [4]float32{-1e9, -1e9, 1e9, 1e9}
	dl.cmdOffset = 0
	dl.idxCmdOffset = 0
	dl.font = nil
	dl.whiteUV = [2]float32{}
}

// SetFont binds the atlas used for text and the solid fill coordinate.
func (dl *DrawList) SetFont(f *FontAtlas) {
	dl.font = f
	if f != nil {
		dl.whiteUV = f.WhiteUV()
	}
}

func (dl *DrawList) textureID() uint32 {
	if dl.font == nil {
		return 0
	}
	return dl.font.TextureID
}

// PushClipRect pushes a new clip rectangle, intersected with the current one.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	cur := dl.currentClip
	dl.clipStack = append(dl.clipStack, cur)
	dl.currentClip = [4]float32{
		math32.Max(x1, cur[0]), math32.Max(y1, cur[1]),
		math32.Min(x2, cur[2]), math32.Min(y2, cur[3]),
	}
	dl.splitDraw()
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.splitDraw()
	}
}

// ClipRect returns the active clip rectangle as x1, y1, x2, y2.
func (dl *DrawList) ClipRect() [4]float32 {
	return dl.currentClip
}

// splitDraw finalizes the current command and starts a new one.
func (dl *DrawList) splitDraw() {
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}

	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.currentClip,
		TextureID:    dl.textureID(),
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
}

// addVertices adds vertices and returns the starting index relative to the
// current command. Commands are split before the 16-bit index range overflows.
func (dl *DrawList) addVertices(verts ...Vertex) uint16 {
	if len(dl.CmdBuffer) == 0 || len(dl.VtxBuffer)-int(dl.cmdOffset)+len(verts) > 0xFFFF {
		dl.splitDraw()
	}
	startIdx := uint16(len(dl.VtxBuffer) - int(dl.cmdOffset))
	dl.VtxBuffer = append(dl.VtxBuffer, verts...)
	return startIdx
}

func (dl *DrawList) addIndices(indices ...uint16) {
	dl.IdxBuffer = append(dl.IdxBuffer, indices...)
}

func (dl *DrawList) solid(x, y float32, color uint32) Vertex {
	return Vertex{Pos: [2]float32{x, y}, TexCoord: dl.whiteUV, Color: color}
}

// AddRect draws a filled rectangle.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 || w <= 0 || h <= 0 {
		return
	}

	idx := dl.addVertices(
		dl.solid(x, y, color),
		dl.solid(x+w, y, color),
		dl.solid(x+w, y+h, color),
		dl.solid(x, y+h, color),
	)
	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddRectOutline draws a rectangle outline.
func (dl *DrawList) AddRectOutline(x, y, w, h float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 || thickness <= 0 {
		return
	}

	dl.AddRect(x, y, w, thickness, color)
	dl.AddRect(x, y+h-thickness, w, thickness, color)
	dl.AddRect(x, y+thickness, thickness, h-2*thickness, color)
	dl.AddRect(x+w-thickness, y+thickness, thickness, h-2*thickness, color)
}

// AddLine draws a line between two points as a quad of the given thickness.
func (dl *DrawList) AddLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}

	dx := x2 - x1
	dy := y2 - y1
	inv := float32(1)
	if l := math32.Hypot(dx, dy); l > 0 {
		inv = 1 / l
	}
	nx := -dy * inv * thickness * 0.5
	ny := dx * inv * thickness * 0.5

	idx := dl.addVertices(
		dl.solid(x1+nx, y1+ny, color),
		dl.solid(x2+nx, y2+ny, color),
		dl.solid(x2-nx, y2-ny, color),
		dl.solid(x1-nx, y1-ny, color),
	)
	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddTriangle draws a filled triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}

	idx := dl.addVertices(
		dl.solid(x1, y1, color),
		dl.solid(x2, y2, color),
		dl.solid(x3, y3, color),
	)
	dl.addIndices(idx, idx+1, idx+2)
}

// AddText draws text with its top-left corner at x, y.
func (dl *DrawList) AddText(x, y float32, text string, color uint32) {
	if color&0xFF000000 == 0 || len(text) == 0 || dl.font == nil {
		return
	}

	cw, ch := dl.font.GlyphWidth, dl.font.GlyphHeight
	px := x
	for _, r := range text {
		if r == ' ' {
			px += cw
			continue
		}
		u0, v0, u1, v1 := dl.font.GlyphUV(r)
		idx := dl.addVertices(
			Vertex{Pos: [2]float32{px, y}, TexCoord: [2]float32{u0, v0}, Color: color},
			Vertex{Pos: [2]float32{px + cw, y}, TexCoord: [2]float32{u1, v0}, Color: color},
			Vertex{Pos: [2]float32{px + cw, y + ch}, TexCoord: [2]float32{u1, v1}, Color: color},
			Vertex{Pos: [2]float32{px, y + ch}, TexCoord: [2]float32{u0, v1}, Color: color},
		)
		dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
		px += cw
	}
}

// InsertRect inserts a filled rectangle at the beginning of the draw list.
// Used for popup backgrounds whose size is known only after their content.
func (dl *DrawList) InsertRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	if len(dl.CmdBuffer) == 0 {
		dl.AddRect(x, y, w, h, color)
		return
	}

	verts := []Vertex{
		dl.solid(x, y, color),
		dl.solid(x+w, y, color),
		dl.solid(x+w, y+h, color),
		dl.solid(x, y+h, color),
	}
	dl.VtxBuffer = append(verts, dl.VtxBuffer...)
	dl.IdxBuffer = append([]uint16{0, 1, 2, 0, 2, 3}, dl.IdxBuffer...)

	// Indices are relative to VertexOffset, so only the offsets shift.
	for i := range dl.CmdBuffer {
		dl.CmdBuffer[i].VertexOffset += 4
		dl.CmdBuffer[i].IndexOffset += 6
	}
	dl.cmdOffset += 4
	dl.idxCmdOffset += 6

	bgCmd := DrawCmd{
		ElemCount: 6,
		ClipRect:  [4]float32{-1e9, -1e9, 1e9, 1e9},
		TextureID: dl.textureID(),
	}
	dl.CmdBuffer = append([]DrawCmd{bgCmd}, dl.CmdBuffer...)
}

// Finalize closes the last command and drops empty ones.
// Must be called after all primitives are added.
func (dl *DrawList) Finalize() {
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}

	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
}

// Empty reports whether nothing has been drawn.
func (dl *DrawList) Empty() bool {
	return len(dl.IdxBuffer) == 0
}
