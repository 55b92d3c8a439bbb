package gui

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// The atlas holds printable ASCII in a 16-column grid. The cell after '~'
// (DEL, never printed) is filled solid and sampled for untextured shapes.
const (
	atlasFirstRune = 32
	atlasLastRune  = 126
	atlasWhiteCell = 127 - atlasFirstRune
	atlasColumns   = 16
	atlasRows      = 6
)

// FontAtlas is a single-channel glyph texture for a monospaced face.
type FontAtlas struct {
	Pixels []byte // alpha coverage, row-major, Width*Height bytes
	Width  int
	Height int

	// GlyphWidth is the horizontal advance and GlyphHeight the line height.
	GlyphWidth  float32
	GlyphHeight float32

	// TextureID is assigned by the renderer when it uploads Pixels.
	TextureID uint32

	cellW, cellH int
}

// DefaultFontAtlas builds the atlas from the 7x13 fixed face.
func DefaultFontAtlas() (*FontAtlas, error) {
	return NewFontAtlas(basicfont.Face7x13)
}

// NewFontAtlas rasterizes printable ASCII from a monospaced face.
func NewFontAtlas(face font.Face) (*FontAtlas, error) {
	if face == nil {
		return nil, errors.New("nil font face")
	}
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, errors.New("font face has no glyph for 'M'")
	}
	metrics := face.Metrics()
	cellW := adv.Ceil()
	cellH := metrics.Height.Ceil()
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("font face has degenerate cell %dx%d", cellW, cellH)
	}

	img := image.NewAlpha(image.Rect(0, 0, cellW*atlasColumns, cellH*atlasRows))
	for r := rune(atlasFirstRune); r <= atlasLastRune; r++ {
		cx, cy := cellOrigin(int(r-atlasFirstRune), cellW, cellH)
		dot := fixed.P(cx, cy+metrics.Ascent.Ceil())
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok {
			if r == '?' {
				return nil, errors.New("font face has no fallback glyph '?'")
			}
			continue
		}
		draw.Draw(img, dr.Intersect(image.Rect(cx, cy, cx+cellW, cy+cellH)), mask, maskp, draw.Src)
	}

	wx, wy := cellOrigin(atlasWhiteCell, cellW, cellH)
	draw.Draw(img, image.Rect(wx, wy, wx+cellW, wy+cellH), image.NewUniform(color.Alpha{A: 0xFF}), image.Point{}, draw.Src)

	return &FontAtlas{
		Pixels:      img.Pix,
		Width:       img.Rect.Dx(),
		Height:      img.Rect.Dy(),
		GlyphWidth:  float32(cellW),
		GlyphHeight: float32(cellH),
		cellW:       cellW,
		cellH:       cellH,
	}, nil
}

func cellOrigin(index, cellW, cellH int) (int, int) {
	return (index % atlasColumns) * cellW, (index / atlasColumns) * cellH
}

// GlyphUV returns the texture coordinates of a rune's cell.
// Runes outside the atlas map to '?'.
func (f *FontAtlas) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	r = unicodeFallback(r)
	if r < atlasFirstRune || r > atlasLastRune {
		r = '?'
	}
	return f.cellUV(int(r - atlasFirstRune))
}

// WhiteUV returns a texture coordinate inside the solid cell.
func (f *FontAtlas) WhiteUV() [2]float32 {
	u0, v0, u1, v1 := f.cellUV(atlasWhiteCell)
	return [2]float32{(u0 + u1) / 2, (v0 + v1) / 2}
}

func (f *FontAtlas) cellUV(index int) (u0, v0, u1, v1 float32) {
	x, y := cellOrigin(index, f.cellW, f.cellH)
	w, h := float32(f.Width), float32(f.Height)
	return float32(x) / w, float32(y) / h, float32(x+f.cellW) / w, float32(y+f.cellH) / h
}

// TextWidth returns the rendered width of s.
func (f *FontAtlas) TextWidth(s string) float32 {
	n := 0
	for range s {
		n++
	}
	return float32(n) * f.GlyphWidth
}

// unicodeFallback maps common Unicode symbols to ASCII equivalents.
func unicodeFallback(r rune) rune {
	if r >= atlasFirstRune && r <= atlasLastRune {
		return r
	}
	switch r {
	case '►', '▶', '▸', '→':
		return '>'
	case '◄', '◀', '◂', '←':
		return '<'
	case '▼', '▾', '↓':
		return 'v'
	case '▲', '▴', '↑':
		return '^'
	case '●', '•', '◆':
		return '*'
	case '✓', '✔':
		return '+'
	case '✗', '✘', '×':
		return 'x'
	case '—', '–':
		return '-'
	default:
		return r
	}
}
