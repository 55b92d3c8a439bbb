package gui

import "github.com/chewxy/math32"

// ListClipper computes which rows of a fixed-height list fall inside a
// scrolled view, so only those are submitted.
//
//	clip := NewListClipper(len(rows), ctx.TextLineHeight(), avail.Y, scroll)
//	for i := clip.StartIdx; i < clip.EndIdx; i++ {
//		ctx.Text(rows[i])
//	}
type ListClipper struct {
	StartIdx   int // first visible row
	EndIdx     int // one past the last visible row
	ItemHeight float32
	TotalItems int
}

// NewListClipper returns the rows visible in a view of visibleHeight
// scrolled down by scrollY. A row cut by the bottom edge counts as
// visible.
func NewListClipper(totalItems int, itemHeight, visibleHeight, scrollY float32) ListClipper {
	c := ListClipper{ItemHeight: itemHeight, TotalItems: totalItems}
	if totalItems <= 0 || itemHeight <= 0 {
		return c
	}
	start := max(int(scrollY/itemHeight), 0)
	count := int(visibleHeight / itemHeight)
	if float32(count)*itemHeight < visibleHeight {
		count++
	}
	c.StartIdx = min(start, totalItems)
	c.EndIdx = min(start+count, totalItems)
	return c
}

// VisibleCount returns the number of rows to submit.
func (c ListClipper) VisibleCount() int {
	return c.EndIdx - c.StartIdx
}

// ContentHeight returns the height of all rows.
func (c ListClipper) ContentHeight() float32 {
	return float32(c.TotalItems) * c.ItemHeight
}

// MaxScroll returns the largest scroll offset that still fills the view.
func (c ListClipper) MaxScroll(visibleHeight float32) float32 {
	return max(c.ContentHeight()-visibleHeight, 0)
}

// ClampScroll limits scrollY to [0, MaxScroll] and snaps it to a row
// boundary.
func (c ListClipper) ClampScroll(scrollY, visibleHeight float32) float32 {
	if c.ItemHeight <= 0 {
		return 0
	}
	maxRows := int(math32.Ceil(c.MaxScroll(visibleHeight) / c.ItemHeight))
	rows := min(max(int(math32.Round(scrollY/c.ItemHeight)), 0), maxRows)
	return float32(rows) * c.ItemHeight
}

// ScrollToItem returns the offset that brings row idx into view, or
// currentScroll if it is already visible.
func (c ListClipper) ScrollToItem(idx int, currentScroll, visibleHeight float32) float32 {
	if idx < 0 || idx >= c.TotalItems {
		return currentScroll
	}
	top := float32(idx) * c.ItemHeight
	bottom := top + c.ItemHeight
	switch {
	case top < currentScroll:
		return top
	case bottom > currentScroll+visibleHeight:
		return bottom - visibleHeight
	}
	return currentScroll
}
