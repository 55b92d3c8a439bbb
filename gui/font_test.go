package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFontAtlas(t *testing.T) {
	f, err := DefaultFontAtlas()
	require.NoError(t, err)

	assert.Equal(t, float32(7), f.GlyphWidth)
	assert.Equal(t, float32(13), f.GlyphHeight)
	assert.Equal(t, 7*atlasColumns, f.Width)
	assert.Equal(t, 13*atlasRows, f.Height)
	assert.Len(t, f.Pixels, f.Width*f.Height)

	x, y := cellOrigin(atlasWhiteCell, 7, 13)
	assert.Equal(t, byte(0xFF), f.Pixels[(y+6)*f.Width+x+3], "solid cell")

	var ink int
	ax, ay := cellOrigin('A'-atlasFirstRune, 7, 13)
	for row := ay; row < ay+13; row++ {
		for col := ax; col < ax+7; col++ {
			if f.Pixels[row*f.Width+col] != 0 {
				ink++
			}
		}
	}
	assert.Positive(t, ink, "glyph A is rasterized")
}

func TestNewFontAtlasRejectsNil(t *testing.T) {
	_, err := NewFontAtlas(nil)
	assert.Error(t, err)
}

func TestGlyphUV(t *testing.T) {
	f, err := DefaultFontAtlas()
	require.NoError(t, err)

	u0, v0, u1, v1 := f.GlyphUV(' ')
	assert.Equal(t, [4]float32{0, 0, 7.0 / 112, 13.0 / 78}, [4]float32{u0, v0, u1, v1})

	tests := []struct {
		name string
		in   rune
		want rune
	}{
		{"arrow", '►', '>'},
		{"bullet", '•', '*'},
		{"check", '✓', '+'},
		{"outside the atlas", '世', '?'},
		{"control", '\t', '?'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a0, b0, a1, b1 := f.GlyphUV(tt.in)
			w0, x0, w1, x1 := f.GlyphUV(tt.want)
			assert.Equal(t, [4]float32{w0, x0, w1, x1}, [4]float32{a0, b0, a1, b1})
		})
	}
}

func TestWhiteUVInsideSolidCell(t *testing.T) {
	f, err := DefaultFontAtlas()
	require.NoError(t, err)
	uv := f.WhiteUV()
	px := int(uv[0] * float32(f.Width))
	py := int(uv[1] * float32(f.Height))
	assert.Equal(t, byte(0xFF), f.Pixels[py*f.Width+px])
}

func TestTextWidthCountsRunes(t *testing.T) {
	f, err := DefaultFontAtlas()
	require.NoError(t, err)
	assert.Equal(t, float32(0), f.TextWidth(""))
	assert.Equal(t, float32(35), f.TextWidth("héllo"))
}
