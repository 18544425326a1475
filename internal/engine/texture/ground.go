package texture

import (
	"image"
	"image/color"
	gomath "math"
	"math/rand/v2"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
)

// GroundOptions controls the procedural ground texture.
type GroundOptions struct {
	Width, Height int
	Inner, Outer  color.RGBA // Blend endpoints: Inner at the center, Outer at the edges
	Spots         int        // Number of random blotches
	MinSpot       int        // Blotch diameter range in pixels
	MaxSpot       int
	SpotBlur      float64 // Gaussian radius applied to the blotch layer
	SpotOpacity   float64 // Blend factor of the blotch layer over the base
	FinalBlur     float64
}

// DefaultGroundOptions returns a 768x768 two-tone green ground.
func DefaultGroundOptions() GroundOptions {
	return GroundOptions{
		Width:       768,
		Height:      768,
		Inner:       color.RGBA{34, 139, 34, 255},
		Outer:       color.RGBA{50, 205, 50, 255},
		Spots:       1000,
		MinSpot:     10,
		MaxSpot:     50,
		SpotBlur:    10,
		SpotOpacity: 0.5,
		FinalBlur:   2,
	}
}

// GenerateGround paints a grass-like ground texture: a sin·sin gradient
// between two greens overlaid with blurred random blotches.
func GenerateGround(opts GroundOptions, rng *rand.Rand) *image.RGBA {
	base := groundGradient(opts)
	spots := groundSpots(opts, rng)
	if opts.SpotBlur > 0 {
		spots = blur.Gaussian(spots, opts.SpotBlur)
	}
	out := blend.Opacity(base, spots, opts.SpotOpacity)
	if opts.FinalBlur > 0 {
		out = blur.Gaussian(out, opts.FinalBlur)
	}
	// The blur samples transparent pixels past the edges.
	setOpaque(out)
	return out
}

func setOpaque(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
}

func groundGradient(opts GroundOptions) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for y := range opts.Height {
		sy := gomath.Sin(float64(y) / float64(opts.Height) * gomath.Pi)
		for x := range opts.Width {
			t := sy * gomath.Sin(float64(x)/float64(opts.Width)*gomath.Pi)
			img.SetRGBA(x, y, color.RGBA{
				R: mix(opts.Inner.R, opts.Outer.R, t),
				G: mix(opts.Inner.G, opts.Outer.G, t),
				B: mix(opts.Inner.B, opts.Outer.B, t),
				A: 255,
			})
		}
	}
	return img
}

func groundSpots(opts GroundOptions, rng *rand.Rand) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+3] = 255
	}
	span := max(opts.MaxSpot-opts.MinSpot, 1)
	for range opts.Spots {
		cx := rng.IntN(opts.Width)
		cy := rng.IntN(opts.Height)
		r := (opts.MinSpot + rng.IntN(span)) / 2
		c := color.RGBA{
			R: uint8(rng.IntN(100)),
			G: uint8(50 + rng.IntN(100)),
			B: uint8(rng.IntN(100)),
			A: 255,
		}
		for dy := -r; dy < r; dy++ {
			for dx := -r; dx < r; dx++ {
				if dx*dx+dy*dy <= r*r {
					// SetRGBA ignores points outside the bounds.
					img.SetRGBA(cx+dx, cy+dy, c)
				}
			}
		}
	}
	return img
}

// mix returns a*t + b*(1-t).
func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*t + float64(b)*(1-t))
}
