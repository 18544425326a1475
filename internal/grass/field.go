package grass

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/mask"
	"github.com/Faultbox/meadow/pkg/math"
)

// DefaultMaxRetries is the number of extra anchor draws per blade slot when a
// mask rejects the first candidate.
const DefaultMaxRetries = 8

// Option configures a single Generate call.
type Option func(*generator)

type generator struct {
	rng        *rand.Rand
	mask       *mask.Mask
	predicate  mask.Predicate
	maxRetries int
	log        *zap.Logger
	ctx        context.Context
}

// cancelCheckInterval is how many blade slots pass between context checks.
const cancelCheckInterval = 1024

// WithRand sets the random source. The source is used by this call only and
// must not be shared with a concurrent call.
func WithRand(rng *rand.Rand) Option {
	return func(g *generator) {
		g.rng = rng
	}
}

// WithMask restricts anchors to ground regions accepted by pred. A nil pred
// keeps dark regions.
func WithMask(m *mask.Mask, pred mask.Predicate) Option {
	return func(g *generator) {
		g.mask = m
		g.predicate = pred
	}
}

// WithMaxRetries caps the extra draws per anchor slot under a mask.
func WithMaxRetries(n int) Option {
	return func(g *generator) {
		g.maxRetries = n
	}
}

// WithLogger sets the logger used for generation summaries.
func WithLogger(log *zap.Logger) Option {
	return func(g *generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithContext stops generation early once ctx is done. Generate then
// returns ctx.Err() and no mesh.
func WithContext(ctx context.Context) Option {
	return func(g *generator) {
		g.ctx = ctx
	}
}

// Generate builds a complete field mesh.
//
// Every one of params.BladeCount slots draws an area-uniform anchor inside
// the field disk. With a mask, a slot keeps drawing until the mask accepts a
// candidate or 1+MaxRetries candidates were refused, in which case the slot
// stays empty. Each accepted anchor becomes one blade.
//
// Parameters and mask are checked before any buffer is allocated; on error
// no mesh is returned.
func Generate(params Params, opts ...Option) (*Mesh, error) {
	g := generator{
		maxRetries: DefaultMaxRetries,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&g)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	if g.maxRetries < 0 {
		return nil, &ConfigurationError{Field: "MaxRetries", Value: float64(g.maxRetries), Reason: "must not be negative"}
	}
	if g.mask != nil {
		if err := g.mask.CheckCompatible(); err != nil {
			return nil, err
		}
	}
	if g.rng == nil {
		g.rng = NewRand(uint64(time.Now().UnixNano()))
	}

	start := time.Now()
	radius := params.Radius()
	shape := params.Shape()
	mesh := newMesh(params.BladeCount)

	var sampler *mask.Sampler
	if g.mask != nil {
		sampler = &mask.Sampler{
			Mask:       g.mask,
			PlaneSize:  params.PlaneSize,
			Predicate:  g.predicate,
			MaxRetries: g.maxRetries,
		}
	}
	draw := func() (float32, float32) {
		p := SampleDisk(g.rng, radius)
		return p.X, p.Y
	}

	var offset uint32
	skipped := 0
	for i := range params.BladeCount {
		if g.ctx != nil && i%cancelCheckInterval == 0 {
			if err := g.ctx.Err(); err != nil {
				return nil, err
			}
		}

		var anchor math.Vec2
		if sampler != nil {
			x, z, ok := sampler.Sample(g.rng, draw)
			if !ok {
				skipped++
				continue
			}
			anchor = math.Vec2{X: x, Y: z}
		} else {
			anchor = SampleDisk(g.rng, radius)
		}

		blade := BuildBlade(g.rng, anchor, offset, GroundToUV(anchor, params.PlaneSize), shape)
		mesh.appendBlade(&blade)
		offset += VerticesPerBlade
	}

	g.log.Debug("grass field generated",
		zap.Int("requested", params.BladeCount),
		zap.Int("blades", mesh.BladeCount()),
		zap.Int("skipped", skipped),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Duration("took", time.Since(start)),
	)
	return mesh, nil
}
