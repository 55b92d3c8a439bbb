// Package opengl provides OpenGL 4.1 core and windowing backends for the
// gui package.
package opengl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghet-engine/spaghet/gui"
)

// Renderer draws gui DrawData with OpenGL. It implements gui.RendererIO so
// secondary viewports are drawn through the same program and buffers.
type Renderer struct {
	ctx      *gui.Context
	shader   uint32
	vbo, ebo uint32
	fontTex  uint32
	projLoc  int32
	texLoc   int32

	// Vertex array objects are not shared between contexts, so each
	// platform window gets its own.
	vaos map[any]uint32
}

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

// Shapes sample the atlas's solid cell, so every fragment is textured.
// The R channel holds coverage.
const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D fontTexture;

void main() {
    FragColor = vec4(Color.rgb, Color.a * texture(fontTexture, TexCoord).r);
}
` + "\x00"

// NewRenderer returns a renderer; Init creates its GL objects.
func NewRenderer() *Renderer {
	return &Renderer{vaos: make(map[any]uint32)}
}

// Init compiles the shader, uploads the context's font atlas and installs
// the renderer as the context's RendererIO. OpenGL functions must already
// be loaded and the main window's context current.
func (r *Renderer) Init(ctx *gui.Context) error {
	if ctx == nil {
		return errors.New("opengl: nil gui context")
	}
	if r.shader != 0 {
		return errors.New("opengl: renderer already initialized")
	}
	var err error
	r.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return fmt.Errorf("failed to create shader: %w", err)
	}
	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))
	r.texLoc = gl.GetUniformLocation(r.shader, gl.Str("fontTexture\x00"))

	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	atlas := ctx.Font()
	if atlas == nil {
		r.Shutdown()
		return errors.New("opengl: context has no font atlas")
	}
	r.fontTex = uploadAtlas(atlas)
	atlas.TextureID = r.fontTex

	r.ctx = ctx
	ctx.IO().BackendRendererName = "opengl4"
	ctx.SetRendererIO(r)
	gui.Logger().Debug("opengl renderer initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"atlas", fmt.Sprintf("%dx%d", atlas.Width, atlas.Height))
	return nil
}

// NewFrame drops vertex arrays of platform windows that no longer exist.
func (r *Renderer) NewFrame() {
	if r.ctx == nil || len(r.vaos) <= 1 {
		return
	}
	live := make(map[any]bool, len(r.vaos))
	for _, vp := range r.ctx.Viewports() {
		live[vaoKey(vp)] = true
	}
	for key := range r.vaos {
		if !live[key] {
			// The owning GL context is gone and freed the name with it.
			delete(r.vaos, key)
		}
	}
}

func vaoKey(vp *gui.Viewport) any {
	if vp == nil || vp.IsMain() || vp.PlatformHandle == nil {
		return gui.MainViewportID
	}
	return vp.PlatformHandle
}

// vao returns the vertex array for the current GL context, creating it on
// first use.
func (r *Renderer) vao(key any) uint32 {
	if v, ok := r.vaos[key]; ok {
		return v
	}
	var v uint32
	gl.GenVertexArrays(1, &v)
	gl.BindVertexArray(v)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	// Vertex layout: Pos (2 floats) + TexCoord (2 floats) + Color (1 uint32)
	stride := int32(unsafe.Sizeof(gui.Vertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(gui.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(gui.Vertex{}.Color))
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	r.vaos[key] = v
	return v
}

// RenderDrawData draws the main viewport into the current framebuffer.
func (r *Renderer) RenderDrawData(dd *gui.DrawData) {
	r.render(dd, r.vao(gui.MainViewportID))
}

// RenderWindow draws a secondary viewport. The platform backend has made
// its GL context current.
func (r *Renderer) RenderWindow(vp *gui.Viewport) {
	if vp == nil {
		return
	}
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	r.render(&vp.DrawData, r.vao(vaoKey(vp)))
}

// framebufferClip converts a clip rectangle in GUI coordinates to a
// scissor box in framebuffer pixels, origin bottom-left.
func framebufferClip(clip [4]float32, pos, scale gui.Vec2, fbHeight int32) (x, y, w, h int32, ok bool) {
	x1 := (clip[0] - pos.X) * scale.X
	y1 := (clip[1] - pos.Y) * scale.Y
	x2 := (clip[2] - pos.X) * scale.X
	y2 := (clip[3] - pos.Y) * scale.Y
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 <= x1 || y2 <= y1 {
		return 0, 0, 0, 0, false
	}
	x = int32(x1)
	w = int32(x2 - x1)
	h = int32(y2 - y1)
	y = fbHeight - int32(y2)
	if y < 0 {
		h += y
		y = 0
	}
	return x, y, w, h, w > 0 && h > 0
}

func (r *Renderer) render(dd *gui.DrawData, vao uint32) {
	if dd == nil || !dd.Valid || r.shader == 0 {
		return
	}
	fbW := int32(dd.DisplaySize.X * dd.FramebufferScale.X)
	fbH := int32(dd.DisplaySize.Y * dd.FramebufferScale.Y)
	if fbW <= 0 || fbH <= 0 {
		return
	}

	// Save GL state
	var lastProgram int32
	var lastBlendSrc, lastBlendDst int32
	var lastScissorBox [4]int32
	var lastViewport [4]int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &lastBlendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &lastBlendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &lastScissorBox[0])
	gl.GetIntegerv(gl.VIEWPORT, &lastViewport[0])
	blendEnabled := gl.IsEnabled(gl.BLEND)
	depthEnabled := gl.IsEnabled(gl.DEPTH_TEST)
	cullEnabled := gl.IsEnabled(gl.CULL_FACE)
	scissorEnabled := gl.IsEnabled(gl.SCISSOR_TEST)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, fbW, fbH)

	gl.UseProgram(r.shader)
	l, t := dd.DisplayPos.X, dd.DisplayPos.Y
	proj := orthoMatrix(l, l+dd.DisplaySize.X, t+dd.DisplaySize.Y, t, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.texLoc, 0)
	gl.BindVertexArray(vao)

	for _, dl := range dd.CmdLists {
		if len(dl.VtxBuffer) == 0 || len(dl.IdxBuffer) == 0 {
			continue
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(dl.VtxBuffer)*int(unsafe.Sizeof(gui.Vertex{})),
			gl.Ptr(dl.VtxBuffer), gl.STREAM_DRAW)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(dl.IdxBuffer)*2,
			gl.Ptr(dl.IdxBuffer), gl.STREAM_DRAW)

		for _, cmd := range dl.CmdBuffer {
			if cmd.ElemCount == 0 {
				continue
			}
			x, y, w, h, ok := framebufferClip(cmd.ClipRect, dd.DisplayPos, dd.FramebufferScale, fbH)
			if !ok {
				continue
			}
			gl.Scissor(x, y, w, h)
			tex := cmd.TextureID
			if tex == 0 {
				tex = r.fontTex
			}
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.DrawElementsBaseVertexWithOffset(
				gl.TRIANGLES,
				int32(cmd.ElemCount),
				gl.UNSIGNED_SHORT,
				uintptr(cmd.IndexOffset)*2,
				int32(cmd.VertexOffset),
			)
		}
	}

	// Restore GL state
	gl.BindVertexArray(0)
	gl.UseProgram(uint32(lastProgram))
	gl.BlendFunc(uint32(lastBlendSrc), uint32(lastBlendDst))
	setEnabled(gl.BLEND, blendEnabled)
	setEnabled(gl.DEPTH_TEST, depthEnabled)
	setEnabled(gl.CULL_FACE, cullEnabled)
	setEnabled(gl.SCISSOR_TEST, scissorEnabled)
	gl.Scissor(lastScissorBox[0], lastScissorBox[1], lastScissorBox[2], lastScissorBox[3])
	gl.Viewport(lastViewport[0], lastViewport[1], lastViewport[2], lastViewport[3])
}

func setEnabled(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// Shutdown releases OpenGL resources. The main window's context must be
// current. Calling Shutdown more than once is a no-op.
func (r *Renderer) Shutdown() {
	if v, ok := r.vaos[gui.MainViewportID]; ok {
		gl.DeleteVertexArrays(1, &v)
	}
	clear(r.vaos)
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
		r.fontTex = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
		r.shader = 0
	}
	if r.ctx != nil {
		if f := r.ctx.Font(); f != nil {
			f.TextureID = 0
		}
		r.ctx.SetRendererIO(nil)
		r.ctx.IO().BackendRendererName = ""
		r.ctx = nil
	}
}

// uploadAtlas creates a single-channel texture from the atlas pixels.
func uploadAtlas(atlas *gui.FontAtlas) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(atlas.Width), int32(atlas.Height), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader compilation failed: %w", err)
	}
	defer gl.DeleteShader(vertexShader)
	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment shader compilation failed: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}
	return program, nil
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, errors.New(string(log))
	}
	return shader, nil
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
