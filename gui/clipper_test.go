package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListClipperRange(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		scroll, height float32
		start, end     int
	}{
		{"top", 100, 0, 50, 0, 5},
		{"partial bottom row", 100, 20, 55, 2, 8},
		{"end of list", 100, 960, 55, 96, 100},
		{"short list", 3, 0, 55, 0, 3},
		{"negative scroll", 100, -30, 50, 0, 5},
		{"empty", 0, 0, 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewListClipper(tt.total, 10, tt.height, tt.scroll)
			assert.Equal(t, tt.start, c.StartIdx)
			assert.Equal(t, tt.end, c.EndIdx)
			assert.Equal(t, tt.end-tt.start, c.VisibleCount())
		})
	}
}

func TestListClipperZeroItemHeight(t *testing.T) {
	c := NewListClipper(10, 0, 50, 0)
	assert.Zero(t, c.VisibleCount())
	assert.Zero(t, c.ClampScroll(40, 50))
}

func TestListClipperClampScroll(t *testing.T) {
	c := NewListClipper(100, 10, 55, 0)
	assert.Equal(t, float32(1000), c.ContentHeight())
	assert.Equal(t, float32(945), c.MaxScroll(55))

	assert.Equal(t, float32(0), c.ClampScroll(-5, 55))
	assert.Equal(t, float32(20), c.ClampScroll(23, 55), "snapped to a row")
	assert.Equal(t, float32(950), c.ClampScroll(2000, 55), "last row fully visible")

	short := NewListClipper(3, 10, 55, 0)
	assert.Equal(t, float32(0), short.ClampScroll(30, 55))
}

func TestListClipperScrollToItem(t *testing.T) {
	c := NewListClipper(100, 10, 55, 20)
	assert.Equal(t, float32(20), c.ScrollToItem(3, 20, 55), "already visible")
	assert.Equal(t, float32(0), c.ScrollToItem(0, 20, 55))
	assert.Equal(t, float32(55), c.ScrollToItem(10, 20, 55))
	assert.Equal(t, float32(20), c.ScrollToItem(100, 20, 55), "out of range")
}
