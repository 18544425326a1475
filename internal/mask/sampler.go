package mask

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Include selects which end of the weight range admits blades.
type Include int

const (
	IncludeDark  Include = iota // painted (black) strokes grow grass
	IncludeLight                // unpainted (white) canvas grows grass
)

// ParseInclude converts "dark" or "light".
func ParseInclude(s string) (Include, error) {
	switch strings.ToLower(s) {
	case "", "dark", "black":
		return IncludeDark, nil
	case "light", "white":
		return IncludeLight, nil
	}
	return IncludeDark, fmt.Errorf("unknown mask include mode %q", s)
}

func (i Include) String() string {
	if i == IncludeLight {
		return "light"
	}
	return "dark"
}

// Predicate decides whether a mask weight admits a blade.
type Predicate interface {
	Accept(weight float32, rng *rand.Rand) bool
}

// Threshold is a hard cut at Level. With IncludeDark weights below Level
// pass; with IncludeLight weights at or above Level pass.
type Threshold struct {
	Level   float32
	Include Include
}

// Accept implements Predicate. rng is unused and may be nil.
func (t Threshold) Accept(weight float32, _ *rand.Rand) bool {
	if t.Include == IncludeLight {
		return weight >= t.Level
	}
	return weight < t.Level
}

// Weighted admits a blade with probability equal to the (possibly
// inverted) weight, biasing density along feathered mask edges.
type Weighted struct {
	Include Include
}

// Accept implements Predicate.
func (w Weighted) Accept(weight float32, rng *rand.Rand) bool {
	p := weight
	if w.Include == IncludeDark {
		p = 1 - weight
	}
	return rng.Float32() < p
}

// DefaultPredicate keeps blades on painted strokes.
var DefaultPredicate Predicate = Threshold{Level: 0.5, Include: IncludeDark}

// Sampler performs bounded rejection sampling of anchors against a mask.
type Sampler struct {
	Mask       *Mask
	PlaneSize  float32
	Predicate  Predicate // nil means DefaultPredicate
	MaxRetries int       // extra draws after the first refusal
}

// Sample calls draw for candidate ground points until one lands on an
// accepted mask cell. At most 1+MaxRetries candidates are drawn; ok is false
// when all of them were refused.
func (s *Sampler) Sample(rng *rand.Rand, draw func() (x, z float32)) (x, z float32, ok bool) {
	pred := s.Predicate
	if pred == nil {
		pred = DefaultPredicate
	}
	for range 1 + max(s.MaxRetries, 0) {
		x, z = draw()
		w, inside := s.Mask.SampleGround(x, z, s.PlaneSize)
		if inside && pred.Accept(w, rng) {
			return x, z, true
		}
	}
	return 0, 0, false
}
