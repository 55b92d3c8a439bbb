// Package render loads OpenGL entry points and issues the few framebuffer
// commands the editor shell needs outside the GUI renderer.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghet-engine/spaghet/internal/platform"
)

// GL is the OpenGL 4.1 core graphics API.
type GL struct {
	log    *slog.Logger
	loaded bool
}

// New returns an unloaded graphics API.
func New(logger *slog.Logger) *GL {
	if logger == nil {
		logger = slog.Default()
	}
	return &GL{log: logger.With("component", "render")}
}

// LoadFunctions resolves OpenGL function pointers through getProcAddr. A
// context must be current.
func (g *GL) LoadFunctions(getProcAddr platform.ProcAddressFunc) error {
	if getProcAddr == nil {
		return errors.New("render: nil proc address function")
	}
	if err := gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		return getProcAddr(name)
	}); err != nil {
		return fmt.Errorf("load OpenGL functions: %w", err)
	}
	g.loaded = true
	g.log.Info("OpenGL loaded",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))
	return nil
}

// Viewport sets the framebuffer viewport.
func (g *GL) Viewport(x, y, width, height int32) {
	if !g.loaded {
		return
	}
	gl.Viewport(x, y, width, height)
}

// Clear fills the color buffer with an RGBA color.
func (g *GL) Clear(color [4]float32) {
	if !g.loaded {
		return
	}
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
