// Package grass builds the procedural grass field: thousands of five-vertex
// blades scattered over a disk and packed into flat GPU-ready buffers.
package grass

import (
	"errors"
	"fmt"
	gomath "math"
)

// Reference scene defaults.
const (
	DefaultPlaneSize            = 25.0
	DefaultBladeCount           = 100000
	DefaultBladeWidth           = 0.1
	DefaultBladeHeight          = 0.4
	DefaultBladeHeightVariation = 0.6
)

// MaxBladeCount keeps every vertex index representable as a uint32.
const MaxBladeCount = gomath.MaxUint32 / VerticesPerBlade

// ErrConfiguration matches any *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid field configuration")

// ConfigurationError reports a field parameter outside its valid range.
type ConfigurationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("grass: %s = %v: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Params describes one field. A Params value is never modified by Generate.
type Params struct {
	PlaneSize            float32 // Side of the square ground area, centered at the origin
	BladeCount           int     // Number of anchor slots to fill
	BladeWidth           float32
	BladeHeight          float32
	BladeHeightVariation float32 // Upper bound of the random extra height per blade
}

// DefaultParams returns a 25-unit field of 100k blades.
func DefaultParams() Params {
	return Params{
		PlaneSize:            DefaultPlaneSize,
		BladeCount:           DefaultBladeCount,
		BladeWidth:           DefaultBladeWidth,
		BladeHeight:          DefaultBladeHeight,
		BladeHeightVariation: DefaultBladeHeightVariation,
	}
}

// Validate returns a *ConfigurationError for the first invalid field.
// A zero BladeCount is valid and yields an empty mesh.
func (p Params) Validate() error {
	if err := positive("PlaneSize", p.PlaneSize); err != nil {
		return err
	}
	if p.BladeCount < 0 {
		return &ConfigurationError{Field: "BladeCount", Value: float64(p.BladeCount), Reason: "must not be negative"}
	}
	if p.BladeCount > MaxBladeCount {
		return &ConfigurationError{Field: "BladeCount", Value: float64(p.BladeCount), Reason: "exceeds 32-bit index range"}
	}
	if err := positive("BladeWidth", p.BladeWidth); err != nil {
		return err
	}
	if err := positive("BladeHeight", p.BladeHeight); err != nil {
		return err
	}
	if !finite(p.BladeHeightVariation) || p.BladeHeightVariation < 0 {
		return &ConfigurationError{Field: "BladeHeightVariation", Value: float64(p.BladeHeightVariation), Reason: "must be finite and >= 0"}
	}
	return nil
}

// Radius returns the radius of the disk blades are planted in.
func (p Params) Radius() float32 {
	return p.PlaneSize / 2
}

// Shape returns the per-blade shape parameters.
func (p Params) Shape() BladeShape {
	return BladeShape{
		Width:           p.BladeWidth,
		Height:          p.BladeHeight,
		HeightVariation: p.BladeHeightVariation,
	}
}

func positive(field string, v float32) error {
	if !finite(v) || v <= 0 {
		return &ConfigurationError{Field: field, Value: float64(v), Reason: "must be finite and > 0"}
	}
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !gomath.IsNaN(f) && !gomath.IsInf(f, 0)
}
