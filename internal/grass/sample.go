package grass

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// NewRand returns a PCG-backed source for one generation pass.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SampleDisk draws a point with uniform density per unit area inside the
// disk of the given radius centered at the origin. The square root on the
// radial draw compensates for the circumference growing with r.
func SampleDisk(rng *rand.Rand, radius float32) math.Vec2 {
	r := radius * math32.Sqrt(rng.Float32())
	theta := rng.Float32() * 2 * math32.Pi
	return math.Vec2{X: r * math32.Cos(theta), Y: r * math32.Sin(theta)}
}

// GroundToUV maps a ground point of the plane's bounding square
// [-size/2, size/2]² onto [0,1]², each axis independently.
func GroundToUV(p math.Vec2, planeSize float32) [2]float32 {
	half := planeSize / 2
	return [2]float32{
		convertRange(p.X, -half, half, 0, 1),
		convertRange(p.Y, -half, half, 0, 1),
	}
}

func convertRange(val, oldMin, oldMax, newMin, newMax float32) float32 {
	return (val-oldMin)*(newMax-newMin)/(oldMax-oldMin) + newMin
}
