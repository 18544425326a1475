package mask

import (
	"github.com/anthonynsimon/bild/blur"
	"github.com/chewxy/math32"
	"github.com/ojrac/opensimplex-go"

	"github.com/Faultbox/meadow/pkg/math"
)

// DefaultBrushWidth is the stroke width of the painting canvas in pixels.
const DefaultBrushWidth = 15

// Stroke paints a round-capped polyline through points given in pixel
// coordinates. Paint is black; erase paints white.
func (m *Mask) Stroke(points []math.Vec2, width float32, erase bool) {
	if len(points) == 0 || width <= 0 {
		return
	}
	var v float32
	if erase {
		v = 1
	}
	radius := width / 2
	step := max(radius/2, 0.5)

	m.stamp(points[0], radius, v)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		seg := b.Sub(a)
		n := int(math32.Ceil(seg.Length() / step))
		for s := 1; s <= n; s++ {
			m.stamp(a.Add(seg.Scale(float32(s)/float32(n))), radius, v)
		}
	}
}

// StrokeGround paints a polyline given in ground coordinates of a field
// with the given plane size. width is in world units.
func (m *Mask) StrokeGround(points []math.Vec2, planeSize, width float32, erase bool) {
	px := make([]math.Vec2, len(points))
	scale := float32(m.Width) / planeSize
	for i, p := range points {
		px[i] = p.Add(math.Vec2{X: planeSize / 2, Y: planeSize / 2}).Scale(scale)
	}
	m.Stroke(px, width*scale, erase)
}

// stamp fills every cell whose center lies within radius of c.
func (m *Mask) stamp(c math.Vec2, radius, v float32) {
	minCol := max(int(math32.Floor(c.X-radius)), 0)
	maxCol := min(int(math32.Ceil(c.X+radius)), m.Width-1)
	minRow := max(int(math32.Floor(c.Y-radius)), 0)
	maxRow := min(int(math32.Ceil(c.Y+radius)), m.Height-1)
	r2 := radius * radius
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			dx := float32(col) + 0.5 - c.X
			dy := float32(row) + 0.5 - c.Y
			if dx*dx+dy*dy <= r2 {
				m.Data[row*m.Width+col] = v
			}
		}
	}
}

// Noise builds a mask from normalized OpenSimplex noise. scale is the
// feature size in pixels.
func Noise(width, height int, seed int64, scale float64) *Mask {
	if scale <= 0 {
		scale = 1
	}
	n := opensimplex.NewNormalized(seed)
	m := &Mask{Width: width, Height: height, Data: make([]float32, width*height)}
	for row := range height {
		for col := range width {
			m.Data[row*width+col] = clamp01(float32(n.Eval2(float64(col)/scale, float64(row)/scale)))
		}
	}
	return m
}

// Feather softens mask edges with a Gaussian blur of the given radius in
// pixels, for use with the Weighted predicate.
func (m *Mask) Feather(radius float64) *Mask {
	if radius <= 0 {
		out := &Mask{Width: m.Width, Height: m.Height, Data: make([]float32, len(m.Data))}
		copy(out.Data, m.Data)
		return out
	}
	return FromImage(blur.Gaussian(m.Image(), radius))
}
