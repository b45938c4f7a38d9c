// Package renderer uploads the world mesh to the GPU and draws it.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/stone/internal/engine/shader"
	"github.com/Faultbox/stone/internal/logger"
	"github.com/Faultbox/stone/pkg/mesh"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the GL state and the uploaded world mesh.
type Renderer struct {
	config Config

	vao, vbo, ebo uint32
	indexCount    int32
}

// attribute is one interleaved vertex input.
type attribute struct {
	name     string
	location int32
	size     int32
	offset   int
}

// layout lists the vertex inputs the program actually consumes.
func layout(b shader.Bindings) []attribute {
	all := []attribute{
		{"position", b.Position, 3, mesh.PositionOffset},
		{"normal", b.Normal, 3, mesh.NormalOffset},
		{"color", b.Color, 3, mesh.ColorOffset},
		{"light", b.Light, 1, mesh.LightOffset},
	}
	used := all[:0]
	for _, a := range all {
		if a.location >= 0 {
			used = append(used, a)
		}
	}
	return used
}

// New creates a renderer. It must be called after the GL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.8, 0.8, 0.8, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Upload copies m into GPU buffers and binds its attributes for p.
func (r *Renderer) Upload(m *mesh.Mesh, p *shader.Program) {
	r.release()
	if m.VertexCount() == 0 {
		logger.Warn("mesh is empty, nothing to draw")
		return
	}

	vertices := m.Floats()
	indices := mesh.QuadIndices(m.QuadCount())

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	for _, a := range layout(p.Bindings) {
		loc := uint32(a.location)
		gl.VertexAttribPointerWithOffset(loc, a.size, gl.FLOAT, false, mesh.Stride, uintptr(a.offset))
		gl.EnableVertexAttribArray(loc)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.indexCount = int32(len(indices))

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", r.vao),
		zap.Int("vertices", m.VertexCount()),
		zap.Int32("indices", r.indexCount),
	)
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Draw clears the frame and draws the uploaded mesh.
func (r *Renderer) Draw(p *shader.Program, modelView, mvp mgl32.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.indexCount == 0 {
		return
	}

	p.Use()
	if p.Bindings.ModelView >= 0 {
		gl.UniformMatrix4fv(p.Bindings.ModelView, 1, false, &modelView[0])
	}
	if p.Bindings.MVP >= 0 {
		gl.UniformMatrix4fv(p.Bindings.MVP, 1, false, &mvp[0])
	}

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

func (r *Renderer) release() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	r.indexCount = 0
}

// Close frees GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.release()
}
