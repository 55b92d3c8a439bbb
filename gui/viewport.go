package gui

import "fmt"

// MainViewportID identifies the viewport of the application's own window.
const MainViewportID ID = 0x11111111

// ViewportFlags describe a viewport.
type ViewportFlags uint32

const (
	// ViewportIsMain marks the viewport backed by the application window.
	ViewportIsMain ViewportFlags = 1 << iota
)

// Viewport is a platform window the GUI draws into. Coordinates are
// relative to the main window's client origin, so the main viewport is
// always at the origin and secondary viewports may lie outside it.
type Viewport struct {
	ID    ID
	Flags ViewportFlags
	Pos   Vec2
	Size  Vec2

	// WorkPos and WorkSize exclude the main menu bar.
	WorkPos  Vec2
	WorkSize Vec2

	FramebufferScale Vec2
	DrawData         DrawData

	// PlatformHandle is owned by the platform backend.
	PlatformHandle any
	// PlatformRequestClose is set by the platform backend when the user
	// closes the OS window. The owning window's close flag is cleared.
	PlatformRequestClose bool

	window               *Window
	created              bool
	createFailed         bool
	platformPos          Vec2
	platformSize         Vec2
	lastFrameActive      uint64
	workOffsetTop        float32
	pendingWorkOffsetTop float32
}

// IsMain reports whether vp is the main viewport.
func (vp *Viewport) IsMain() bool {
	return vp.Flags&ViewportIsMain != 0
}

// Window returns the window that owns a secondary viewport.
func (vp *Viewport) Window() *Window {
	return vp.window
}

// DrawData is everything a renderer needs to draw one viewport.
type DrawData struct {
	Valid            bool
	DisplayPos       Vec2
	DisplaySize      Vec2
	FramebufferScale Vec2
	CmdLists         []*DrawList
}

// TotalVtxCount returns the vertex count across all lists.
func (d *DrawData) TotalVtxCount() int {
	n := 0
	for _, dl := range d.CmdLists {
		n += len(dl.VtxBuffer)
	}
	return n
}

// PlatformIO is implemented by the platform backend to manage OS windows
// for secondary viewports.
type PlatformIO interface {
	CreateWindow(vp *Viewport) error
	DestroyWindow(vp *Viewport)
	SetWindowPos(vp *Viewport, pos Vec2)
	SetWindowSize(vp *Viewport, size Vec2)
	// RenderWindow makes the viewport's render context current.
	RenderWindow(vp *Viewport)
	SwapBuffers(vp *Viewport)
}

// RendererIO is implemented by the renderer backend to draw secondary
// viewports.
type RendererIO interface {
	RenderWindow(vp *Viewport)
}

// SetPlatformIO installs the platform hooks. Without them every window
// stays in the main viewport.
func (ctx *Context) SetPlatformIO(p PlatformIO) {
	ctx.platformIO = p
}

// SetRendererIO installs the renderer hooks.
func (ctx *Context) SetRendererIO(r RendererIO) {
	ctx.rendererIO = r
}

// MainViewport returns the viewport of the application window.
func (ctx *Context) MainViewport() *Viewport {
	return ctx.mainViewport
}

// Viewports returns all viewports, main first.
func (ctx *Context) Viewports() []*Viewport {
	return ctx.viewports
}

func (ctx *Context) findViewport(id ID) *Viewport {
	for _, vp := range ctx.viewports {
		if vp.ID == id {
			return vp
		}
	}
	return nil
}

func (ctx *Context) viewportForWindow(w *Window) *Viewport {
	id := hashID(w.ID, "#VIEWPORT")
	if vp := ctx.findViewport(id); vp != nil {
		if vp.createFailed {
			return ctx.mainViewport
		}
		return vp
	}
	vp := &Viewport{
		ID:               id,
		FramebufferScale: ctx.mainViewport.FramebufferScale,
		window:           w,
	}
	ctx.viewports = append(ctx.viewports, vp)
	return vp
}

// UpdatePlatformWindows creates, moves and destroys OS windows so they
// match the secondary viewports used this frame. Call after Render.
func (ctx *Context) UpdatePlatformWindows() {
	if ctx.platformIO == nil || ctx.withinFrame {
		if ctx.withinFrame {
			logger().Warn("UpdatePlatformWindows called before Render")
		}
		return
	}
	kept := ctx.viewports[:1]
	for _, vp := range ctx.viewports[1:] {
		if vp.lastFrameActive != ctx.frameCount {
			if vp.created {
				ctx.platformIO.DestroyWindow(vp)
				logger().Debug("viewport destroyed", "viewport", vp.ID)
			}
			if !vp.createFailed {
				continue
			}
		}
		if !vp.created && !vp.createFailed {
			if err := ctx.platformIO.CreateWindow(vp); err != nil {
				vp.createFailed = true
				logger().Warn("create viewport window", "viewport", vp.ID, "err", err)
				kept = append(kept, vp)
				continue
			}
			vp.created = true
			vp.platformPos, vp.platformSize = vp.Pos, vp.Size
			logger().Debug("viewport created", "viewport", vp.ID, "pos", vp.Pos, "size", vp.Size)
		}
		if vp.created {
			if vp.Pos != vp.platformPos {
				ctx.platformIO.SetWindowPos(vp, vp.Pos)
				vp.platformPos = vp.Pos
			}
			if vp.Size != vp.platformSize {
				ctx.platformIO.SetWindowSize(vp, vp.Size)
				vp.platformSize = vp.Size
			}
		}
		kept = append(kept, vp)
	}
	clear(ctx.viewports[len(kept):])
	ctx.viewports = kept
}

// RenderPlatformWindowsDefault draws every secondary viewport and swaps
// its buffers. The main viewport's render context is left unbound; the
// caller rebinds it.
func (ctx *Context) RenderPlatformWindowsDefault() {
	if ctx.platformIO == nil {
		return
	}
	for _, vp := range ctx.viewports[1:] {
		if !vp.created || !vp.DrawData.Valid {
			continue
		}
		ctx.platformIO.RenderWindow(vp)
		if ctx.rendererIO != nil {
			ctx.rendererIO.RenderWindow(vp)
		}
		ctx.platformIO.SwapBuffers(vp)
	}
}

// DestroyPlatformWindows destroys every secondary OS window. Backends call
// it before shutting down.
func (ctx *Context) DestroyPlatformWindows() {
	if ctx.viewports == nil {
		return
	}
	for _, vp := range ctx.viewports[1:] {
		if vp.created && ctx.platformIO != nil {
			ctx.platformIO.DestroyWindow(vp)
		}
		vp.created = false
	}
	clear(ctx.viewports[1:])
	ctx.viewports = ctx.viewports[:1]
}

func (vp *Viewport) String() string {
	if vp.IsMain() {
		return "main viewport"
	}
	return fmt.Sprintf("viewport %#x", uint64(vp.ID))
}
