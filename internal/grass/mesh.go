package grass

import (
	"fmt"

	"github.com/Faultbox/meadow/pkg/math"
)

// Mesh holds the whole field as flat buffers ready for GPU upload.
// All attribute buffers are indexed by vertex emission order.
type Mesh struct {
	Positions []float32 // x, y, z per vertex
	UVs       []float32 // u, v per vertex
	Colors    []float32 // r, g, b per vertex (height ramp)
	Indices   []uint32  // three per triangle
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

func newMesh(blades int) *Mesh {
	verts := blades * VerticesPerBlade
	return &Mesh{
		Positions: make([]float32, 0, verts*3),
		UVs:       make([]float32, 0, verts*2),
		Colors:    make([]float32, 0, verts*3),
		Indices:   make([]uint32, 0, blades*IndicesPerBlade),
	}
}

func (m *Mesh) appendBlade(b *Blade) {
	for i := range b.Vertices {
		v := &b.Vertices[i]
		m.Positions = append(m.Positions, v.Position[0], v.Position[1], v.Position[2])
		m.UVs = append(m.UVs, v.UV[0], v.UV[1])
		m.Colors = append(m.Colors, v.Color[0], v.Color[1], v.Color[2])
	}
	m.Indices = append(m.Indices, b.Indices[:]...)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// BladeCount returns the number of blades in the mesh.
func (m *Mesh) BladeCount() int {
	return m.VertexCount() / VerticesPerBlade
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) math.Vec3 {
	p := m.Positions[i*3 : i*3+3]
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// Validate checks the structural invariants of a generated field: buffer
// lengths agree on the vertex count, the vertex count is a whole number of
// blades, and every triangle only references vertices of its own blade.
func (m *Mesh) Validate() error {
	n := m.VertexCount()
	if len(m.Positions) != 3*n {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(m.Positions))
	}
	if len(m.UVs) != 2*n {
		return fmt.Errorf("uvs length %d, want %d", len(m.UVs), 2*n)
	}
	if len(m.Colors) != 3*n {
		return fmt.Errorf("colors length %d, want %d", len(m.Colors), 3*n)
	}
	if n%VerticesPerBlade != 0 {
		return fmt.Errorf("vertex count %d is not a multiple of %d", n, VerticesPerBlade)
	}
	blades := n / VerticesPerBlade
	if len(m.Indices) != blades*IndicesPerBlade {
		return fmt.Errorf("indices length %d, want %d", len(m.Indices), blades*IndicesPerBlade)
	}
	for i, idx := range m.Indices {
		blade := i / IndicesPerBlade
		lo := uint32(blade * VerticesPerBlade)
		if idx < lo || idx >= lo+VerticesPerBlade {
			return fmt.Errorf("index %d = %d outside blade %d vertices [%d, %d)", i, idx, blade, lo, lo+VerticesPerBlade)
		}
	}
	return nil
}

// Bounds returns the bounding box of all vertices. An empty mesh has a
// zero box.
func (m *Mesh) Bounds() Bounds {
	if m.VertexCount() == 0 {
		return Bounds{}
	}
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for i := 0; i < len(m.Positions); i += 3 {
		for axis := range 3 {
			v := m.Positions[i+axis]
			if v < b.Min[axis] {
				b.Min[axis] = v
			}
			if v > b.Max[axis] {
				b.Max[axis] = v
			}
		}
	}
	return b
}

// Anchors recovers each blade's ground anchor as the midpoint of its two
// base vertices.
func (m *Mesh) Anchors() []math.Vec2 {
	anchors := make([]math.Vec2, m.BladeCount())
	for b := range anchors {
		first := b * VerticesPerBlade
		bl := m.Position(first + SlotBottomLeft)
		br := m.Position(first + SlotBottomRight)
		anchors[b] = bl.Add(br).Scale(0.5).XZ()
	}
	return anchors
}

// TipHeights returns the height of each blade's tip vertex.
func (m *Mesh) TipHeights() []float32 {
	heights := make([]float32, m.BladeCount())
	for b := range heights {
		heights[b] = m.Position(b*VerticesPerBlade + SlotTip).Y
	}
	return heights
}
