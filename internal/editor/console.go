package editor

import (
	"log/slog"
	"strings"

	"github.com/spaghet-engine/spaghet/gui"
)

// wheelLines is how many lines one wheel notch scrolls the console.
const wheelLines = 3

var levelColors = map[slog.Level]uint32{
	slog.LevelDebug: gui.RGBA(140, 140, 140, 255),
	slog.LevelWarn:  gui.RGBA(230, 190, 80, 255),
	slog.LevelError: gui.RGBA(235, 90, 80, 255),
}

// consoleView is the Console panel's scroll position. While follow is set
// the view sticks to the newest line.
type consoleView struct {
	scroll float32
	follow bool
}

type consoleLine struct {
	text  string
	color uint32
}

func (e *Editor) consoleLines(width float32, font *gui.FontAtlas) []consoleLine {
	var lines []consoleLine
	for _, entry := range e.console.Entries() {
		color := levelColors[entry.Level]
		for _, l := range gui.WrapText(font, entry.String(), width, gui.WrapModeWord) {
			lines = append(lines, consoleLine{l, color})
		}
	}
	return lines
}

func (e *Editor) drawConsole(ctx *gui.Context) {
	if e.console == nil {
		ctx.TextDisabled("Log capture is disabled.")
		return
	}
	avail := ctx.ContentRegionAvail()
	lines := e.consoleLines(avail.X, ctx.Font())
	if len(lines) == 0 {
		ctx.TextDisabled("No messages.")
		return
	}

	lineH := ctx.TextLineHeight()
	clip := gui.NewListClipper(len(lines), lineH, avail.Y, 0)
	v := &e.consoleView
	if w := ctx.CurrentWindow(); w != nil && ctx.HoveredWindow() == w {
		if wheel := ctx.IO().Input.MouseWheelY; wheel != 0 {
			v.scroll -= wheel * wheelLines * lineH
			v.follow = false
		}
	}
	if v.follow {
		v.scroll = clip.MaxScroll(avail.Y)
	}
	v.scroll = clip.ClampScroll(v.scroll, avail.Y)
	if v.scroll >= clip.MaxScroll(avail.Y) {
		v.follow = true
	}

	clip = gui.NewListClipper(len(lines), lineH, avail.Y, v.scroll)
	for _, l := range lines[clip.StartIdx:clip.EndIdx] {
		if l.color != 0 {
			ctx.TextColored(l.text, l.color)
		} else {
			ctx.Text(l.text)
		}
	}
}

// consoleText returns the captured log as plain text, one record per line.
func (e *Editor) consoleText() string {
	if e.console == nil {
		return ""
	}
	var sb strings.Builder
	for _, entry := range e.console.Entries() {
		sb.WriteString(entry.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
