package gui

// ClipboardProvider gives the context access to the system clipboard.
// Platform bindings install one in IO.Clipboard.
type ClipboardProvider interface {
	// GetText returns the clipboard text, or "" if it holds no text.
	GetText() string
	SetText(text string)
}

// ClipboardText returns the system clipboard text. It is empty when no
// provider is installed.
func (ctx *Context) ClipboardText() string {
	if cp := ctx.io.Clipboard; cp != nil {
		return cp.GetText()
	}
	return ""
}

// SetClipboardText copies text to the system clipboard. It does nothing
// when no provider is installed.
func (ctx *Context) SetClipboardText(text string) {
	if cp := ctx.io.Clipboard; cp != nil {
		cp.SetText(text)
	}
}

// ClipboardAvailable reports whether a provider is installed.
func (ctx *Context) ClipboardAvailable() bool {
	return ctx.io.Clipboard != nil
}
