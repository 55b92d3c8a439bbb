package gui

import (
	"fmt"
	"strings"
)

// itemPos returns where the next item in the current window starts, or
// false when items are skipped.
func (ctx *Context) itemPos() (*Window, Vec2, bool) {
	w := ctx.currentWindow
	if w == nil {
		logger().Warn("widget used outside a window")
		return nil, Vec2{}, false
	}
	if w.skipItems {
		return w, Vec2{}, false
	}
	return w, w.cursor, true
}

func (ctx *Context) advanceLine(w *Window, height float32) {
	w.cursor.X = w.contentRect.X
	w.cursor.Y += height + ctx.style.ItemSpacing.Y
}

// Text draws a line of text at the current cursor position. Embedded
// newlines start new lines.
func (ctx *Context) Text(text string, opts ...Option) {
	w, pos, ok := ctx.itemPos()
	if !ok {
		return
	}
	col := ctx.style.TextColor
	if c := ApplyAndGet(opts, OptColor); c != 0 {
		col = c
	}
	lines := strings.Split(text, "\n")
	lh := ctx.lineHeight()
	for i, line := range lines {
		w.DrawList.AddText(pos.X, pos.Y+float32(i)*lh, line, col)
	}
	ctx.advanceLine(w, float32(len(lines))*lh)
}

// Textf formats and draws text.
func (ctx *Context) Textf(format string, args ...any) {
	ctx.Text(fmt.Sprintf(format, args...))
}

// TextColored draws text with a specific color.
func (ctx *Context) TextColored(text string, color uint32) {
	ctx.Text(text, WithColor(color))
}

// TextDisabled draws text with the disabled color.
func (ctx *Context) TextDisabled(text string) {
	ctx.Text(text, WithColor(ctx.style.TextDisabledColor))
}

// Spacing adds vertical space.
func (ctx *Context) Spacing(pixels float32) {
	if w := ctx.currentWindow; w != nil {
		w.cursor.Y += pixels
	}
}

// Separator draws a horizontal line across the window, or between the
// items of an open menu.
func (ctx *Context) Separator() {
	if ctx.popup != nil {
		ctx.menuSeparator()
		return
	}
	w, pos, ok := ctx.itemPos()
	if !ok {
		return
	}
	y := pos.Y + ctx.style.ItemSpacing.Y/2
	w.DrawList.AddLine(w.contentRect.X, y, w.contentRect.X+w.contentRect.W, y, ctx.style.SeparatorColor, 1)
	w.cursor.Y += ctx.style.ItemSpacing.Y + 1
}

// ContentRegionAvail returns the space between the cursor and the bottom
// right of the current window's content area.
func (ctx *Context) ContentRegionAvail() Vec2 {
	w := ctx.currentWindow
	if w == nil || w.skipItems {
		return Vec2{}
	}
	c := w.contentRect
	return Vec2{c.X + c.W - w.cursor.X, c.Y + c.H - w.cursor.Y}
}

// TextLineHeight returns how far a single line of Text moves the cursor.
func (ctx *Context) TextLineHeight() float32 {
	return ctx.lineHeight() + ctx.style.ItemSpacing.Y
}
