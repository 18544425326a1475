// Package stats measures generated fields: blade height distribution and
// how evenly anchors cover the field disk.
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/pkg/math"
)

// DefaultRadialBins is the number of rings used by RadialUniformity.
const DefaultRadialBins = 10

// Summary describes one generated field.
type Summary struct {
	Blades       int
	Vertices     int
	Triangles    int
	HeightMean   float64
	HeightStdDev float64
	HeightMin    float64
	HeightMax    float64
	Radial       RadialTest
}

// RadialTest is a chi-square goodness-of-fit test of anchor radii against
// uniform density per unit area.
type RadialTest struct {
	Bins      int
	ChiSquare float64
	PValue    float64
}

// Summarize computes a Summary for a mesh generated with the given plane
// size.
func Summarize(mesh *grass.Mesh, planeSize float32, bins int) (Summary, error) {
	s := Summary{
		Blades:    mesh.BladeCount(),
		Vertices:  mesh.VertexCount(),
		Triangles: mesh.TriangleCount(),
	}
	if s.Blades == 0 {
		return s, nil
	}

	heights := make([]float64, s.Blades)
	for i, h := range mesh.TipHeights() {
		heights[i] = float64(h)
	}
	s.HeightMean, s.HeightStdDev = stat.MeanStdDev(heights, nil)
	s.HeightMin, s.HeightMax = heights[0], heights[0]
	for _, h := range heights[1:] {
		s.HeightMin = min(s.HeightMin, h)
		s.HeightMax = max(s.HeightMax, h)
	}

	radial, err := RadialUniformity(mesh.Anchors(), planeSize/2, bins)
	if err != nil {
		return s, err
	}
	s.Radial = radial
	return s, nil
}

// RadialUniformity bins points by distance from the origin into equal-width
// rings and compares the counts with the area of each ring. A small p-value
// means the points are not area-uniform, e.g. clustered near the center.
// Points outside the disk are counted in the outermost ring.
func RadialUniformity(points []math.Vec2, radius float32, bins int) (RadialTest, error) {
	if bins < 2 {
		return RadialTest{}, fmt.Errorf("radial test needs at least 2 bins, got %d", bins)
	}
	if len(points) == 0 {
		return RadialTest{}, fmt.Errorf("radial test needs points")
	}
	if radius <= 0 {
		return RadialTest{}, fmt.Errorf("radial test needs a positive radius, got %v", radius)
	}

	obs := make([]float64, bins)
	for _, p := range points {
		b := int(float64(p.Length()/radius) * float64(bins))
		obs[min(b, bins-1)]++
	}

	n := float64(len(points))
	exp := make([]float64, bins)
	for i := range exp {
		inner := float64(i) / float64(bins)
		outer := float64(i+1) / float64(bins)
		exp[i] = n * (outer*outer - inner*inner)
	}

	chi := stat.ChiSquare(obs, exp)
	dist := distuv.ChiSquared{K: float64(bins - 1)}
	return RadialTest{
		Bins:      bins,
		ChiSquare: chi,
		PValue:    dist.Survival(chi),
	}, nil
}
