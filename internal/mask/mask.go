// Package mask provides the painted occupancy raster that restricts where
// grass blades may be planted.
//
// A mask is a square grid of weights in [0,1], 0 for black and 1 for white,
// stretched over the field's bounding square. Column 0 lies at
// x = -planeSize/2 and row 0 at z = -planeSize/2.
package mask

import (
	"errors"
	"fmt"
)

// DefaultSize is the side of a painted mask canvas.
const DefaultSize = 512

// ErrMismatch matches any *MismatchError via errors.Is.
var ErrMismatch = errors.New("mask does not match the field")

// MismatchError reports a mask that cannot be laid over the field's
// bounding square.
type MismatchError struct {
	Width   int
	Height  int
	DataLen int
	Reason  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("mask: %dx%d (%d samples): %s", e.Width, e.Height, e.DataLen, e.Reason)
}

// Is reports whether target is ErrMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// Mask is a row-major grid of weights.
type Mask struct {
	Width  int
	Height int
	Data   []float32
}

// New returns a white (all 1) mask, the state of a freshly cleared canvas.
func New(width, height int) *Mask {
	m := &Mask{
		Width:  width,
		Height: height,
		Data:   make([]float32, width*height),
	}
	m.Clear()
	return m
}

// Clear fills the mask with white.
func (m *Mask) Clear() {
	m.Fill(1)
}

// Fill sets every sample to v.
func (m *Mask) Fill(v float32) {
	for i := range m.Data {
		m.Data[i] = v
	}
}

// At returns the weight at a grid cell. Cells outside the grid read as 0.
func (m *Mask) At(col, row int) float32 {
	if col < 0 || row < 0 || col >= m.Width || row >= m.Height {
		return 0
	}
	return m.Data[row*m.Width+col]
}

// Set writes a weight, clamped to [0,1]. Writes outside the grid are ignored.
func (m *Mask) Set(col, row int, v float32) {
	if col < 0 || row < 0 || col >= m.Width || row >= m.Height {
		return
	}
	m.Data[row*m.Width+col] = clamp01(v)
}

// CheckCompatible returns a *MismatchError unless the mask is a non-empty
// square grid whose data matches its dimensions.
func (m *Mask) CheckCompatible() error {
	fail := func(reason string) error {
		return &MismatchError{Width: m.Width, Height: m.Height, DataLen: len(m.Data), Reason: reason}
	}
	switch {
	case m.Width <= 0 || m.Height <= 0:
		return fail("dimensions must be positive")
	case len(m.Data) != m.Width*m.Height:
		return fail("sample count does not match dimensions")
	case m.Width != m.Height:
		return fail("field bounding square needs a square mask")
	}
	return nil
}

// GroundToGrid maps a ground point onto the cell of a width×height grid
// covering [-planeSize/2, planeSize/2]². ok is false outside that square.
func GroundToGrid(x, z, planeSize float32, width, height int) (col, row int, ok bool) {
	half := planeSize / 2
	u := (x + half) / planeSize
	v := (z + half) / planeSize
	if u < 0 || v < 0 || u > 1 || v > 1 {
		return 0, 0, false
	}
	col = min(int(u*float32(width)), width-1)
	row = min(int(v*float32(height)), height-1)
	return col, row, true
}

// GridToGround returns the ground position of a cell's center.
func GridToGround(col, row int, planeSize float32, width, height int) (x, z float32) {
	half := planeSize / 2
	x = (float32(col)+0.5)/float32(width)*planeSize - half
	z = (float32(row)+0.5)/float32(height)*planeSize - half
	return x, z
}

// SampleGround returns the weight under a ground point. ok is false when
// the point lies outside the field's bounding square.
func (m *Mask) SampleGround(x, z, planeSize float32) (weight float32, ok bool) {
	col, row, ok := GroundToGrid(x, z, planeSize, m.Width, m.Height)
	if !ok {
		return 0, false
	}
	return m.At(col, row), true
}

// Coverage returns the fraction of samples a Threshold at level accepts.
func (m *Mask) Coverage(level float32, include Include) float64 {
	if len(m.Data) == 0 {
		return 0
	}
	pred := Threshold{Level: level, Include: include}
	n := 0
	for _, w := range m.Data {
		if pred.Accept(w, nil) {
			n++
		}
	}
	return float64(n) / float64(len(m.Data))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
