// Package scene ties configuration to field generation: it owns the loaded
// placement mask and hands out per-request generator options.
package scene

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/mask"
)

// Field is a configured grass field.
type Field struct {
	cfg       *config.Config
	mask      *mask.Mask
	predicate mask.Predicate
	log       *zap.Logger
}

// NewField validates cfg and loads its mask, if any.
func NewField(cfg *config.Config, log *zap.Logger) (*Field, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Field{cfg: cfg, log: log}
	if cfg.Mask.Path == "" {
		return f, nil
	}

	m, err := mask.Load(cfg.Mask.Path)
	if err != nil {
		return nil, fmt.Errorf("loading mask: %w", err)
	}
	if err := m.CheckCompatible(); err != nil {
		return nil, err
	}
	if cfg.Mask.Feather > 0 {
		m = m.Feather(cfg.Mask.Feather)
	}
	pred, err := cfg.Predicate()
	if err != nil {
		return nil, err
	}
	f.mask, f.predicate = m, pred

	log.Info("mask loaded",
		zap.String("path", cfg.Mask.Path),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Stringer("predicate", predicateName{pred}),
	)
	return f, nil
}

// Config returns the configuration the field was built from.
func (f *Field) Config() *config.Config {
	return f.cfg
}

// Mask returns the loaded mask, or nil.
func (f *Field) Mask() *mask.Mask {
	return f.mask
}

// Params returns the generation parameters.
func (f *Field) Params() grass.Params {
	return f.cfg.FieldParams()
}

// Seed returns the configured seed, or a clock-derived one when the
// configuration leaves it at zero.
func (f *Field) Seed() uint64 {
	if f.cfg.Field.Seed != 0 {
		return f.cfg.Field.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Options returns generator options with a fresh random source for seed.
func (f *Field) Options(seed uint64) []grass.Option {
	opts := []grass.Option{
		grass.WithRand(grass.NewRand(seed)),
		grass.WithMaxRetries(f.cfg.Field.MaxRetries),
		grass.WithLogger(f.log),
	}
	if f.mask != nil {
		opts = append(opts, grass.WithMask(f.mask, f.predicate))
	}
	return opts
}

// Generate builds the field synchronously.
func (f *Field) Generate(seed uint64) (*grass.Mesh, error) {
	return grass.Generate(f.Params(), f.Options(seed)...)
}

// Request schedules a background generation on r and returns the seed used.
func (f *Field) Request(ctx context.Context, r *grass.Regenerator) uint64 {
	seed := f.Seed()
	f.RequestSeed(ctx, r, seed)
	return seed
}

// RequestSeed schedules a background generation with an explicit seed.
func (f *Field) RequestSeed(ctx context.Context, r *grass.Regenerator, seed uint64) {
	f.log.Debug("field regeneration requested", zap.Uint64("seed", seed), zap.Int("blades", f.cfg.Field.BladeCount))
	r.Request(ctx, f.Params(), f.Options(seed)...)
}

type predicateName struct{ mask.Predicate }

func (p predicateName) String() string {
	switch v := p.Predicate.(type) {
	case mask.Threshold:
		return fmt.Sprintf("threshold(%.2f, %s)", v.Level, v.Include)
	case mask.Weighted:
		return fmt.Sprintf("weighted(%s)", v.Include)
	}
	return fmt.Sprintf("%T", p.Predicate)
}
