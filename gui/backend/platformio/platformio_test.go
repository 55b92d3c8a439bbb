package platformio

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghet-engine/spaghet/gui"
	"github.com/spaghet-engine/spaghet/internal/platform"
)

type fakeWindow struct{ id uint32 }

func (w fakeWindow) ID() uint32 { return w.id }

type fakeGLContext struct{ window uint32 }

func (c fakeGLContext) WindowID() uint32 { return c.window }

type fakeHost struct {
	size      map[uint32][2]int
	pixels    map[uint32][2]int
	pos       map[uint32][2]int
	nextID    uint32
	current   uint32
	swapped   []uint32
	destroyed []uint32
	createErr error
	clipboard string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		size:   map[uint32][2]int{1: {800, 600}},
		pixels: map[uint32][2]int{1: {1600, 1200}},
		pos:    map[uint32][2]int{1: {100, 50}},
		nextID: 1,
	}
}

func (h *fakeHost) WindowSize(w platform.Window) (int, int) {
	s := h.size[w.ID()]
	return s[0], s[1]
}

func (h *fakeHost) WindowPixelSize(w platform.Window) (int, int) {
	s := h.pixels[w.ID()]
	return s[0], s[1]
}

func (h *fakeHost) WindowPosition(w platform.Window) (int, int) {
	p := h.pos[w.ID()]
	return p[0], p[1]
}

func (h *fakeHost) SetWindowPosition(w platform.Window, x, y int) {
	h.pos[w.ID()] = [2]int{x, y}
}

func (h *fakeHost) SetWindowSize(w platform.Window, width, height int) {
	h.size[w.ID()] = [2]int{width, height}
	h.pixels[w.ID()] = [2]int{width, height}
}

func (h *fakeHost) CreateSharedWindow(_ string, x, y, width, height int, _ platform.GLContext) (platform.Window, platform.GLContext, error) {
	if h.createErr != nil {
		return nil, nil, h.createErr
	}
	h.nextID++
	id := h.nextID
	h.pos[id] = [2]int{x, y}
	h.size[id] = [2]int{width, height}
	h.pixels[id] = [2]int{width, height}
	h.current = id
	return fakeWindow{id}, fakeGLContext{id}, nil
}

func (h *fakeHost) MakeCurrent(w platform.Window, _ platform.GLContext) error {
	h.current = w.ID()
	return nil
}

func (h *fakeHost) SwapWindow(w platform.Window) { h.swapped = append(h.swapped, w.ID()) }

func (h *fakeHost) DestroyGLContext(platform.GLContext) {}

func (h *fakeHost) DestroyWindow(w platform.Window) {
	h.destroyed = append(h.destroyed, w.ID())
	delete(h.pos, w.ID())
}

func (h *fakeHost) ClipboardText() string { return h.clipboard }

func (h *fakeHost) SetClipboardText(text string) { h.clipboard = text }

func setup(t *testing.T) (*Binding, *fakeHost, *gui.Context) {
	t.Helper()
	ctx, err := gui.CreateContext(gui.ConfigDockingEnable | gui.ConfigViewportsEnable)
	require.NoError(t, err)
	t.Cleanup(ctx.Destroy)
	host := newFakeHost()
	b := New(host)
	require.NoError(t, b.Init(ctx, fakeWindow{1}, fakeGLContext{1}))
	return b, host, ctx
}

func TestInit(t *testing.T) {
	b, _, ctx := setup(t)
	assert.Equal(t, "spaghet-platform", ctx.IO().BackendPlatformName)
	assert.NotNil(t, ctx.MainViewport().PlatformHandle)
	assert.True(t, ctx.ClipboardAvailable())
	assert.Error(t, b.Init(ctx, fakeWindow{1}, fakeGLContext{1}), "second Init")

	b.Shutdown()
	assert.Empty(t, ctx.IO().BackendPlatformName)
	assert.Nil(t, ctx.MainViewport().PlatformHandle)
	assert.False(t, ctx.ClipboardAvailable())
	b.Shutdown()
}

func TestClipboard(t *testing.T) {
	_, host, ctx := setup(t)
	host.clipboard = "from the system"
	assert.Equal(t, "from the system", ctx.ClipboardText())
	ctx.SetClipboardText("12:00:00 INFO  ready")
	assert.Equal(t, "12:00:00 INFO  ready", host.clipboard)
}

func TestInitRequiresWindow(t *testing.T) {
	ctx, err := gui.CreateContext(0)
	require.NoError(t, err)
	defer ctx.Destroy()
	assert.Error(t, New(newFakeHost()).Init(ctx, nil, nil))
}

func TestNewFrameMetrics(t *testing.T) {
	b, _, ctx := setup(t)
	start := time.Unix(1000, 0)
	now := start
	b.now = func() time.Time { return now }

	b.NewFrame()
	io := ctx.IO()
	assert.Equal(t, gui.Vec2{X: 800, Y: 600}, io.DisplaySize)
	assert.Equal(t, gui.Vec2{X: 2, Y: 2}, io.DisplayFramebufferScale)
	assert.InDelta(t, 1.0/60.0, io.DeltaTime, 1e-6)

	now = start.Add(25 * time.Millisecond)
	b.NewFrame()
	assert.InDelta(t, 0.025, io.DeltaTime, 1e-6)

	b.NewFrame()
	assert.Greater(t, io.DeltaTime, float32(0), "delta time stays positive")
}

func TestProcessKeyboardAndMouse(t *testing.T) {
	b, _, ctx := setup(t)
	in := ctx.IO().Input

	b.ProcessEvent(platform.Event{Type: platform.EventKey, WindowID: 1, Key: platform.KeyTab, Mods: platform.ModCtrl | platform.ModShift, Down: true})
	assert.True(t, in.KeyDown(gui.KeyTab))
	assert.True(t, in.KeyPressed(gui.KeyTab))
	assert.True(t, in.ModCtrl)
	assert.True(t, in.ModShift)
	assert.False(t, in.ModAlt)

	b.ProcessEvent(platform.Event{Type: platform.EventKey, WindowID: 1, Key: platform.KeyUnknown, Down: true})
	b.ProcessEvent(platform.Event{Type: platform.EventMouseMotion, WindowID: 1, X: 12, Y: 34})
	assert.Equal(t, gui.Vec2{X: 12, Y: 34}, in.MousePos())

	b.ProcessEvent(platform.Event{Type: platform.EventMouseButton, WindowID: 1, Button: platform.MouseLeft, Down: true})
	assert.True(t, in.MouseDown(gui.MouseButtonLeft))
	assert.True(t, in.MouseClicked(gui.MouseButtonLeft))

	b.ProcessEvent(platform.Event{Type: platform.EventMouseWheel, WindowID: 1, Y: -1})
	assert.Equal(t, float32(-1), in.MouseWheelY)

	b.ProcessEvent(platform.Event{Type: platform.EventText, WindowID: 1, Char: 'q'})
	assert.Equal(t, []rune{'q'}, in.InputChars)
}

func TestProcessGamepadShoulders(t *testing.T) {
	b, _, ctx := setup(t)
	in := ctx.IO().Input

	assert.False(t, b.ProcessEvent(platform.Event{Type: platform.EventGamepadButton, Gamepad: platform.GamepadRightShoulder, Down: true}))
	assert.True(t, in.KeyPressed(gui.KeyGamepadR1))
	b.ProcessEvent(platform.Event{Type: platform.EventGamepadButton, Gamepad: platform.GamepadLeftShoulder, Down: true})
	assert.True(t, in.KeyPressed(gui.KeyGamepadL1))
}

func TestSecondaryViewportWindow(t *testing.T) {
	b, host, ctx := setup(t)
	vp := &gui.Viewport{ID: 42, Pos: gui.Vec2{X: 900, Y: 20}, Size: gui.Vec2{X: 200, Y: 150}}

	require.NoError(t, b.CreateWindow(vp))
	d, ok := vp.PlatformHandle.(*viewportData)
	require.True(t, ok)
	id := d.window.ID()
	assert.Equal(t, [2]int{1000, 70}, host.pos[id], "placed relative to the main window")
	assert.Equal(t, uint32(1), host.current, "main context restored")

	b.SetWindowPos(vp, gui.Vec2{X: 910, Y: 30})
	assert.Equal(t, [2]int{1010, 80}, host.pos[id])
	b.SetWindowSize(vp, gui.Vec2{X: 300, Y: 200})
	assert.Equal(t, [2]int{300, 200}, host.size[id])

	b.ProcessEvent(platform.Event{Type: platform.EventMouseMotion, WindowID: id, X: 5, Y: 6})
	assert.Equal(t, gui.Vec2{X: 915, Y: 36}, ctx.IO().Input.MousePos())

	b.RenderWindow(vp)
	assert.Equal(t, id, host.current)
	b.SwapBuffers(vp)
	assert.Equal(t, []uint32{id}, host.swapped)

	assert.True(t, b.ProcessEvent(platform.Event{Type: platform.EventWindowClose, WindowID: id}))
	assert.True(t, vp.PlatformRequestClose)
	assert.False(t, b.ProcessEvent(platform.Event{Type: platform.EventWindowClose, WindowID: 1}), "main window close is left to the application")

	b.DestroyWindow(vp)
	assert.Equal(t, []uint32{id}, host.destroyed)
	assert.Nil(t, vp.PlatformHandle)
	assert.Equal(t, uint32(1), host.current)
	b.DestroyWindow(vp)
	assert.Len(t, host.destroyed, 1)
}

func TestCreateWindowError(t *testing.T) {
	b, host, _ := setup(t)
	host.createErr = errors.New("no display")
	vp := &gui.Viewport{ID: 7, Size: gui.Vec2{X: 10, Y: 10}}
	err := b.CreateWindow(vp)
	require.Error(t, err)
	assert.ErrorIs(t, err, host.createErr)
	assert.Nil(t, vp.PlatformHandle)
}
