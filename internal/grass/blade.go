package grass

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// Blade template sizes.
const (
	VerticesPerBlade = 5
	IndicesPerBlade  = 9
)

// Vertex slots within a blade, in emission order.
const (
	SlotBottomLeft = iota
	SlotBottomRight
	SlotMidRight
	SlotMidLeft
	SlotTip
)

const (
	// MidWidthRatio tapers the blade at half height.
	MidWidthRatio = 0.5
	// TipBend is the horizontal displacement of the tip in world units.
	TipBend = 0.1
)

// bladeIndices are the three triangles of a blade relative to its first
// vertex: the lower quad as two triangles and the tip on top. The winding
// is identical for every blade.
var bladeIndices = [IndicesPerBlade]uint32{
	SlotBottomLeft, SlotBottomRight, SlotMidRight,
	SlotMidRight, SlotTip, SlotMidLeft,
	SlotMidLeft, SlotBottomLeft, SlotMidRight,
}

// Vertex is one blade vertex before it is flattened into the mesh buffers.
type Vertex struct {
	Position [3]float32
	UV       [2]float32
	Color    [3]float32
}

// Blade is the geometry of a single grass blade.
type Blade struct {
	Vertices [VerticesPerBlade]Vertex
	Indices  [IndicesPerBlade]uint32
	Height   float32 // Actual height after variation
}

// BladeShape holds the shape parameters shared by every blade of a field.
type BladeShape struct {
	Width           float32
	Height          float32
	HeightVariation float32
}

// BuildBlade draws a random yaw, tip direction and height for one blade
// rooted at anchor. vertexOffset is the index of the blade's first vertex in
// the field mesh. Width and Height must be positive.
func BuildBlade(rng *rand.Rand, anchor math.Vec2, vertexOffset uint32, uv [2]float32, shape BladeShape) Blade {
	height := shape.Height + rng.Float32()*shape.HeightVariation
	yaw := rng.Float32() * 2 * math32.Pi
	tipBend := rng.Float32() * 2 * math32.Pi
	return ShapeBlade(anchor, vertexOffset, uv, shape.Width, height, yaw, tipBend)
}

// ShapeBlade builds a blade from already drawn angles and height.
func ShapeBlade(anchor math.Vec2, vertexOffset uint32, uv [2]float32, width, height, yaw, tipBend float32) Blade {
	center := anchor.Lift(0)
	widthAxis := math.GroundAxis(yaw)
	bendAxis := math.GroundAxis(tipBend)

	baseHalf := width / 2
	midHalf := width * MidWidthRatio / 2

	var positions [VerticesPerBlade]math.Vec3
	positions[SlotBottomLeft] = center.Add(widthAxis.Scale(baseHalf))
	positions[SlotBottomRight] = center.Add(widthAxis.Scale(-baseHalf))
	positions[SlotMidRight] = center.Add(widthAxis.Scale(-midHalf))
	positions[SlotMidLeft] = center.Add(widthAxis.Scale(midHalf))
	positions[SlotTip] = center.Add(bendAxis.Scale(TipBend))

	positions[SlotMidRight].Y += height / 2
	positions[SlotMidLeft].Y += height / 2
	positions[SlotTip].Y += height

	b := Blade{Height: height}
	for slot, p := range positions {
		b.Vertices[slot] = Vertex{
			Position: p.Array(),
			UV:       uv,
			Color:    SlotRamp(slot).Color(),
		}
	}
	for i, idx := range bladeIndices {
		b.Indices[i] = vertexOffset + idx
	}
	return b
}
