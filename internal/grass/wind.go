package grass

import (
	gomath "math"
	"sync/atomic"
	"time"
)

// DefaultWaveSpeed is the default wind speed multiplier.
const DefaultWaveSpeed = 1.0

// WindClock is the animation uniform fed to the grass vertex shader: the
// elapsed time scaled by the wave speed. It is written once per frame and may
// be read from any goroutine. It never touches mesh buffers, so it needs no
// coordination with a regeneration in flight.
type WindClock struct {
	speed atomic.Uint32
	value atomic.Uint32
}

// NewWindClock creates a clock with the given wave speed.
func NewWindClock(waveSpeed float32) *WindClock {
	c := &WindClock{}
	c.SetWaveSpeed(waveSpeed)
	return c
}

// SetWaveSpeed changes the multiplier applied on the next Tick.
func (c *WindClock) SetWaveSpeed(waveSpeed float32) {
	c.speed.Store(gomath.Float32bits(waveSpeed))
}

// WaveSpeed returns the current multiplier.
func (c *WindClock) WaveSpeed() float32 {
	return gomath.Float32frombits(c.speed.Load())
}

// Tick stores elapsed × wave speed and returns it.
func (c *WindClock) Tick(elapsed time.Duration) float32 {
	v := float32(elapsed.Seconds()) * c.WaveSpeed()
	c.value.Store(gomath.Float32bits(v))
	return v
}

// Value returns the last value written by Tick.
func (c *WindClock) Value() float32 {
	return gomath.Float32frombits(c.value.Load())
}
