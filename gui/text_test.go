package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapText(t *testing.T) {
	f, err := DefaultFontAtlas()
	require.NoError(t, err)

	// 70px holds ten 7px glyphs.
	tests := []struct {
		name  string
		text  string
		width float32
		mode  TextWrapMode
		want  []string
	}{
		{"fits", "ready", 70, WrapModeWord, []string{"ready"}},
		{"words", "the quick brown fox", 70, WrapModeWord, []string{"the quick", "brown fox"}},
		{"chars", "the quick brown fox", 70, WrapModeChar, []string{"the quick ", "brown fox"}},
		{"long word", "hi abcdefghijklm", 70, WrapModeWord, []string{"hi", "abcdefghij", "klm"}},
		{"newlines kept", "a\n\nb", 70, WrapModeWord, []string{"a", "", "b"}},
		{"no width", "the quick brown fox\nend", 0, WrapModeWord, []string{"the quick brown fox", "end"}},
		{"narrower than a glyph", "abc", 3, WrapModeChar, []string{"a", "b", "c"}},
		{"empty", "", 70, WrapModeChar, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapText(f, tt.text, tt.width, tt.mode))
		})
	}
}

func TestWrapTextWithoutFont(t *testing.T) {
	assert.Equal(t, []string{"a b", "c"}, WrapText(nil, "a b\nc", 7, WrapModeWord))
}
