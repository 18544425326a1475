package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/shader/shaders"
	"github.com/Faultbox/meadow/internal/engine/texture"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

// Attribute locations shared with grass.vert.
const (
	attribPosition = 0
	attribUV       = 1
	attribColor    = 2
	attribNormal   = 3
)

// GrassUniforms are the per-frame shading inputs.
type GrassUniforms struct {
	Time       float32 // Elapsed seconds × wave speed
	WaveSpeed  float32
	Color      [3]float32
	Brightness float32
	Contrast   float32
	SwayAmount float32
	LightDir   [3]float32
	TextureMix float32 // Weight of the field texture sampled at each blade's anchor UV
}

// DefaultGrassUniforms returns the default shading.
func DefaultGrassUniforms() GrassUniforms {
	return GrassUniforms{
		WaveSpeed:  1,
		Color:      [3]float32{0, 1, 0},
		Brightness: -0.1,
		Contrast:   1,
		SwayAmount: 0.08,
		LightDir:   [3]float32{0.3, 1, 0.5},
		TextureMix: 0.5,
	}
}

// textureWeight returns the tint weight passed to the shader. Without a
// bound texture the blades keep their flat color.
func (u GrassUniforms) textureWeight(hasTexture bool) float32 {
	if !hasTexture {
		return 0
	}
	return max(0, min(u.TextureMix, 1))
}

// GrassRenderer holds the uploaded field mesh.
type GrassRenderer struct {
	program *shader.Program
	vao     uint32
	vbos    [4]uint32 // positions, uvs, colors, normals
	ebo     uint32
	tex     uint32
	count   int32
	log     *zap.Logger
}

// NewGrassRenderer compiles the grass program.
func NewGrassRenderer() (*GrassRenderer, error) {
	program, err := shader.Compile(shaders.GrassVertexShader, shaders.GrassFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("grass shader: %w", err)
	}

	gr := &GrassRenderer{program: program, log: logger.Named("grass-renderer")}
	gl.GenVertexArrays(1, &gr.vao)
	gl.GenBuffers(int32(len(gr.vbos)), &gr.vbos[0])
	gl.GenBuffers(1, &gr.ebo)
	return gr, nil
}

// Upload replaces the GPU buffers with mesh. The previous mesh stays drawn
// until Upload returns, so a swap is never partial.
func (gr *GrassRenderer) Upload(m *grass.Mesh) {
	gl.BindVertexArray(gr.vao)

	normals := m.VertexNormals()
	uploadAttrib(gr.vbos[0], attribPosition, 3, m.Positions)
	uploadAttrib(gr.vbos[1], attribUV, 2, m.UVs)
	uploadAttrib(gr.vbos[2], attribColor, 3, m.Colors)
	uploadAttrib(gr.vbos[3], attribNormal, 3, normals)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gr.ebo)
	if len(m.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	gr.count = int32(len(m.Indices))

	gl.BindVertexArray(0)

	gr.log.Debug("mesh uploaded",
		zap.Int("blades", m.BladeCount()),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)
}

func uploadAttrib(vbo, location uint32, size int32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, size*4, 0)
}

// SetTexture replaces the field texture the blades are tinted with. A nil
// img removes it.
func (gr *GrassRenderer) SetTexture(img image.Image) {
	if gr.tex != 0 {
		gl.DeleteTextures(1, &gr.tex)
		gr.tex = 0
	}
	if img != nil {
		gr.tex = uploadTexture(texture.ToRGBA(img))
	}
}

// Draw renders the uploaded mesh.
func (gr *GrassRenderer) Draw(viewProj math.Mat4, u GrassUniforms) {
	if gr.count == 0 {
		return
	}

	p := gr.program
	p.Use()
	gl.UniformMatrix4fv(p.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform1f(p.Uniform("uTime"), u.Time)
	gl.Uniform1f(p.Uniform("uWaveSpeed"), u.WaveSpeed)
	gl.Uniform1f(p.Uniform("uSwayAmount"), u.SwayAmount)
	gl.Uniform3f(p.Uniform("uColor"), u.Color[0], u.Color[1], u.Color[2])
	gl.Uniform1f(p.Uniform("uBrightness"), u.Brightness)
	gl.Uniform1f(p.Uniform("uContrast"), u.Contrast)
	gl.Uniform3f(p.Uniform("uLightDir"), u.LightDir[0], u.LightDir[1], u.LightDir[2])
	gl.Uniform1f(p.Uniform("uTextureMix"), u.textureWeight(gr.tex != 0))
	if gr.tex != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, gr.tex)
		gl.Uniform1i(p.Uniform("uTexture"), 0)
	}

	gl.BindVertexArray(gr.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, gr.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Close releases GPU resources.
func (gr *GrassRenderer) Close() {
	if gr.tex != 0 {
		gl.DeleteTextures(1, &gr.tex)
	}
	gl.DeleteBuffers(int32(len(gr.vbos)), &gr.vbos[0])
	gl.DeleteBuffers(1, &gr.ebo)
	gl.DeleteVertexArrays(1, &gr.vao)
	gr.program.Delete()
}
