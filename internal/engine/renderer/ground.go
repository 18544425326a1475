package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/shader/shaders"
	"github.com/Faultbox/meadow/internal/engine/texture"
	"github.com/Faultbox/meadow/pkg/math"
)

// DefaultGroundColor is the untextured plane color.
var DefaultGroundColor = [3]float32{0.5, 0.5, 0.5}

// GroundRenderer draws the square plane the field grows on.
type GroundRenderer struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	tex     uint32
	color   [3]float32
}

// groundQuad returns interleaved position/uv vertices for a size × size
// quad at y = 0, drawn as a triangle strip.
func groundQuad(size float32) []float32 {
	h := size / 2
	return []float32{
		-h, 0, -h, 0, 0,
		h, 0, -h, 1, 0,
		-h, 0, h, 0, 1,
		h, 0, h, 1, 1,
	}
}

// NewGroundRenderer creates a plane of the given size. A nil img draws the
// plane in a flat color.
func NewGroundRenderer(size float32, img image.Image) (*GroundRenderer, error) {
	program, err := shader.Compile(shaders.GroundVertexShader, shaders.GroundFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("ground shader: %w", err)
	}

	g := &GroundRenderer{program: program, color: DefaultGroundColor}

	verts := groundQuad(size)
	const stride = 5 * 4

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.BindVertexArray(0)

	if img != nil {
		g.tex = uploadTexture(texture.ToRGBA(img))
	}
	return g, nil
}

func uploadTexture(rgba *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Draw renders the plane.
func (g *GroundRenderer) Draw(viewProj math.Mat4) {
	p := g.program
	p.Use()
	gl.UniformMatrix4fv(p.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform3f(p.Uniform("uColor"), g.color[0], g.color[1], g.color[2])

	if g.tex != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, g.tex)
		gl.Uniform1i(p.Uniform("uTexture"), 0)
		gl.Uniform1i(p.Uniform("uUseTexture"), 1)
	} else {
		gl.Uniform1i(p.Uniform("uUseTexture"), 0)
	}

	// Push the plane back so blade roots at y = 0 win the depth test.
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(1, 1)
	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	gl.Disable(gl.POLYGON_OFFSET_FILL)
}

// Close releases GPU resources.
func (g *GroundRenderer) Close() {
	if g.tex != 0 {
		gl.DeleteTextures(1, &g.tex)
	}
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteVertexArrays(1, &g.vao)
	g.program.Delete()
}
