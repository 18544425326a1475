package grass

import "github.com/Faultbox/meadow/pkg/math"

// VertexNormals computes one normal per vertex in a single pass over the
// assembled mesh. Face normals are accumulated unnormalized so larger
// triangles weigh more, then each sum is normalized. Vertices without a
// usable normal point straight up.
func (m *Mesh) VertexNormals() []float32 {
	sums := make([]math.Vec3, m.VertexCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		pa, pb, pc := m.Position(int(a)), m.Position(int(b)), m.Position(int(c))
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		sums[a] = sums[a].Add(face)
		sums[b] = sums[b].Add(face)
		sums[c] = sums[c].Add(face)
	}

	normals := make([]float32, 0, len(sums)*3)
	for _, s := range sums {
		n := s.Normalize()
		if n.Length() < 0.5 {
			n = math.Vec3{Y: 1}
		}
		normals = append(normals, n.X, n.Y, n.Z)
	}
	return normals
}
