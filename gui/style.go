package gui

// Style defines the metrics and colors of windows, menus and dock nodes.
type Style struct {
	WindowPadding    Vec2
	WindowBorderSize float32
	WindowMinSize    Vec2
	FramePadding     Vec2
	ItemSpacing      Vec2
	DockSplitterSize float32
	ResizeGripSize   float32

	TextColor           uint32
	TextDisabledColor   uint32
	WindowBgColor       uint32
	PopupBgColor        uint32
	BorderColor         uint32
	TitleBgColor        uint32
	TitleBgActiveColor  uint32
	MenuBarBgColor      uint32
	HeaderHoveredColor  uint32
	TabColor            uint32
	TabHoveredColor     uint32
	TabActiveColor      uint32
	TabUnfocusedColor   uint32
	SeparatorColor      uint32
	SeparatorHovered    uint32
	DockingEmptyBgColor uint32
	ResizeGripColor     uint32
	CheckMarkColor      uint32
}

// DarkStyle returns the default editor palette.
func DarkStyle() Style {
	return Style{
		WindowPadding:    Vec2{8, 8},
		WindowBorderSize: 1,
		WindowMinSize:    Vec2{64, 48},
		FramePadding:     Vec2{6, 3},
		ItemSpacing:      Vec2{8, 4},
		DockSplitterSize: 2,
		ResizeGripSize:   12,

		TextColor:           RGBA(230, 230, 230, 255),
		TextDisabledColor:   RGBA(128, 128, 128, 255),
		WindowBgColor:       RGBA(36, 36, 38, 245),
		PopupBgColor:        RGBA(28, 28, 30, 250),
		BorderColor:         RGBA(70, 70, 76, 255),
		TitleBgColor:        RGBA(24, 24, 26, 255),
		TitleBgActiveColor:  RGBA(42, 64, 96, 255),
		MenuBarBgColor:      RGBA(30, 30, 32, 255),
		HeaderHoveredColor:  RGBA(66, 100, 150, 255),
		TabColor:            RGBA(40, 44, 52, 255),
		TabHoveredColor:     RGBA(66, 100, 150, 255),
		TabActiveColor:      RGBA(52, 82, 124, 255),
		TabUnfocusedColor:   RGBA(46, 54, 66, 255),
		SeparatorColor:      RGBA(70, 70, 76, 255),
		SeparatorHovered:    RGBA(90, 140, 210, 255),
		DockingEmptyBgColor: RGBA(20, 20, 20, 255),
		ResizeGripColor:     RGBA(90, 140, 210, 160),
		CheckMarkColor:      RGBA(110, 170, 250, 255),
	}
}

// DefaultStyle returns the default style.
func DefaultStyle() Style {
	return DarkStyle()
}

// StyleVar identifies a style metric that can be pushed temporarily.
type StyleVar int

const (
	StyleVarWindowPadding StyleVar = iota
	StyleVarWindowBorderSize
	StyleVarFramePadding
	StyleVarItemSpacing
)

type styleMod struct {
	v   StyleVar
	vec Vec2
	f   float32
}

// PushStyleVarVec2 overrides a vector style metric until PopStyleVar.
func (ctx *Context) PushStyleVarVec2(v StyleVar, val Vec2) {
	var field *Vec2
	switch v {
	case StyleVarWindowPadding:
		field = &ctx.style.WindowPadding
	case StyleVarFramePadding:
		field = &ctx.style.FramePadding
	case StyleVarItemSpacing:
		field = &ctx.style.ItemSpacing
	default:
		logger().Warn("style var is not a Vec2", "var", v)
		return
	}
	ctx.styleStack = append(ctx.styleStack, styleMod{v: v, vec: *field})
	*field = val
}

// PushStyleVarFloat overrides a scalar style metric until PopStyleVar.
func (ctx *Context) PushStyleVarFloat(v StyleVar, val float32) {
	if v != StyleVarWindowBorderSize {
		logger().Warn("style var is not a float", "var", v)
		return
	}
	ctx.styleStack = append(ctx.styleStack, styleMod{v: v, f: ctx.style.WindowBorderSize})
	ctx.style.WindowBorderSize = val
}

// PopStyleVar restores the last count pushed style metrics.
func (ctx *Context) PopStyleVar(count int) {
	for ; count > 0 && len(ctx.styleStack) > 0; count-- {
		m := ctx.styleStack[len(ctx.styleStack)-1]
		ctx.styleStack = ctx.styleStack[:len(ctx.styleStack)-1]
		switch m.v {
		case StyleVarWindowPadding:
			ctx.style.WindowPadding = m.vec
		case StyleVarFramePadding:
			ctx.style.FramePadding = m.vec
		case StyleVarItemSpacing:
			ctx.style.ItemSpacing = m.vec
		case StyleVarWindowBorderSize:
			ctx.style.WindowBorderSize = m.f
		}
	}
}

// Style returns the current style.
func (ctx *Context) Style() Style {
	return ctx.style
}

// SetStyle replaces the base style. Pushed overrides are discarded.
func (ctx *Context) SetStyle(style Style) {
	ctx.style = style
	ctx.styleStack = ctx.styleStack[:0]
}

func (ctx *Context) lineHeight() float32 {
	return ctx.font.GlyphHeight
}

// FrameHeight is the height of title bars, menu bars and tabs.
func (ctx *Context) FrameHeight() float32 {
	return ctx.font.GlyphHeight + 2*ctx.style.FramePadding.Y
}
