package editor

import (
	"log/slog"
	"unsafe"

	"github.com/spaghet-engine/spaghet/gui"
	"github.com/spaghet-engine/spaghet/internal/logging"
	"github.com/spaghet-engine/spaghet/internal/platform"
)

// recorder collects collaborator calls across fakes in invocation order.
type recorder struct {
	calls []string
	fail  map[string]error
}

func (r *recorder) call(name string) error {
	r.calls = append(r.calls, name)
	return r.fail[name]
}

type fakeWindow struct{ id uint32 }

func (w fakeWindow) ID() uint32 { return w.id }

type fakeGLContext struct{ window uint32 }

func (c fakeGLContext) WindowID() uint32 { return c.window }

const mainWindowID = 1

type fakePlatform struct {
	rec *recorder

	// events are delivered during the frame with the given index, counted
	// from zero by presented frames.
	events  map[int][]platform.Event
	onFrame func(frame int)
	pending []platform.Event
	polled  int

	pixels       [2]int
	swaps        int
	makeCurrents int
}

func newFakePlatform(rec *recorder) *fakePlatform {
	return &fakePlatform{
		rec:    rec,
		events: make(map[int][]platform.Event),
		polled: -1,
		pixels: [2]int{2560, 1440},
	}
}

// quitAt schedules a quit event for the given frame.
func (p *fakePlatform) quitAt(frame int) {
	p.events[frame] = append(p.events[frame], platform.Event{Type: platform.EventQuit})
}

func (p *fakePlatform) Init(platform.InitFlags) error { return p.rec.call("platform.init") }

func (p *fakePlatform) ConfigureGL(platform.GLAttributes) error {
	return p.rec.call("platform.configure")
}

func (p *fakePlatform) CreateWindow(string, int, int, platform.WindowFlags) (platform.Window, error) {
	if err := p.rec.call("window.create"); err != nil {
		return nil, err
	}
	return fakeWindow{mainWindowID}, nil
}

func (p *fakePlatform) CreateGLContext(w platform.Window) (platform.GLContext, error) {
	if err := p.rec.call("glcontext.create"); err != nil {
		return nil, err
	}
	return fakeGLContext{w.ID()}, nil
}

func (p *fakePlatform) GetProcAddress(string) unsafe.Pointer { return nil }

func (p *fakePlatform) PollEvent() (platform.Event, bool) {
	if p.polled != p.swaps {
		p.polled = p.swaps
		if p.onFrame != nil {
			p.onFrame(p.swaps)
		}
		p.pending = append(p.pending, p.events[p.swaps]...)
	}
	if len(p.pending) == 0 {
		return platform.Event{}, false
	}
	ev := p.pending[0]
	p.pending = p.pending[1:]
	return ev, true
}

func (p *fakePlatform) WindowPixelSize(platform.Window) (int, int) {
	return p.pixels[0], p.pixels[1]
}

func (p *fakePlatform) MakeCurrent(platform.Window, platform.GLContext) error {
	p.makeCurrents++
	return nil
}

func (p *fakePlatform) SwapWindow(platform.Window) { p.swaps++ }

func (p *fakePlatform) DestroyGLContext(platform.GLContext) { p.rec.call("glcontext.destroy") }

func (p *fakePlatform) DestroyWindow(platform.Window) { p.rec.call("window.destroy") }

func (p *fakePlatform) Quit() { p.rec.call("platform.quit") }

type fakeGraphics struct {
	rec       *recorder
	viewports [][4]int32
	clears    [][4]float32
}

func (g *fakeGraphics) LoadFunctions(platform.ProcAddressFunc) error {
	return g.rec.call("graphics.load")
}

func (g *fakeGraphics) Viewport(x, y, width, height int32) {
	g.viewports = append(g.viewports, [4]int32{x, y, width, height})
}

func (g *fakeGraphics) Clear(color [4]float32) { g.clears = append(g.clears, color) }

func (g *fakeGraphics) lastViewport() [4]int32 {
	if len(g.viewports) == 0 {
		return [4]int32{}
	}
	return g.viewports[len(g.viewports)-1]
}

type fakeGUIPlatform struct {
	rec       *recorder
	ctx       *gui.Context
	processed []platform.EventType
}

func (b *fakeGUIPlatform) Init(ctx *gui.Context, _ platform.Window, _ platform.GLContext) error {
	if err := b.rec.call("guiplatform.init"); err != nil {
		return err
	}
	b.ctx = ctx
	return nil
}

func (b *fakeGUIPlatform) Shutdown() {
	b.rec.call("guiplatform.shutdown")
	b.ctx = nil
}

func (b *fakeGUIPlatform) NewFrame() {
	io := b.ctx.IO()
	io.DisplaySize = gui.Vec2{X: 1000, Y: 800}
	io.DeltaTime = 1.0 / 60.0
}

func (b *fakeGUIPlatform) ProcessEvent(ev platform.Event) bool {
	b.processed = append(b.processed, ev.Type)
	return false
}

type fakeGUIRenderer struct {
	rec      *recorder
	frames   int
	rendered int
}

func (r *fakeGUIRenderer) Init(*gui.Context) error { return r.rec.call("guirenderer.init") }

func (r *fakeGUIRenderer) Shutdown() { r.rec.call("guirenderer.shutdown") }

func (r *fakeGUIRenderer) NewFrame() { r.frames++ }

func (r *fakeGUIRenderer) RenderDrawData(dd *gui.DrawData) {
	if dd != nil && dd.Valid {
		r.rendered++
	}
}

type fixture struct {
	rec      *recorder
	platform *fakePlatform
	graphics *fakeGraphics
	guiPlat  *fakeGUIPlatform
	guiRend  *fakeGUIRenderer
}

func newFixture() *fixture {
	rec := &recorder{fail: make(map[string]error)}
	return &fixture{
		rec:      rec,
		platform: newFakePlatform(rec),
		graphics: &fakeGraphics{rec: rec},
		guiPlat:  &fakeGUIPlatform{rec: rec},
		guiRend:  &fakeGUIRenderer{rec: rec},
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Platform:    f.platform,
		Graphics:    f.graphics,
		GUIPlatform: f.guiPlat,
		GUIRenderer: f.guiRend,
	}
}

type fakeConsole struct {
	calls int
}

func (c *fakeConsole) Entries() []logging.Entry {
	c.calls++
	return []logging.Entry{
		{Level: slog.LevelInfo, Message: "engine initialized"},
		{Level: slog.LevelWarn, Message: "slow frame"},
	}
}
