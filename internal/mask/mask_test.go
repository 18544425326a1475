package mask

import (
	"errors"
	"testing"
)

func TestGroundToGrid(t *testing.T) {
	tests := []struct {
		x, z     float32
		col, row int
		ok       bool
	}{
		{-5, -5, 0, 0, true},
		{5, 5, 9, 9, true}, // far edge clamps into the last cell
		{0, 0, 5, 5, true},
		{-4.5, 4.4, 0, 9, true},
		{-5.01, 0, 0, 0, false},
		{0, 5.01, 0, 0, false},
	}
	for _, tt := range tests {
		col, row, ok := GroundToGrid(tt.x, tt.z, 10, 10, 10)
		if ok != tt.ok || (ok && (col != tt.col || row != tt.row)) {
			t.Errorf("GroundToGrid(%v, %v) = (%d, %d, %v), want (%d, %d, %v)",
				tt.x, tt.z, col, row, ok, tt.col, tt.row, tt.ok)
		}
	}
}

func TestGridToGroundRoundTrip(t *testing.T) {
	const size = 25
	for row := range 16 {
		for col := range 16 {
			x, z := GridToGround(col, row, size, 16, 16)
			c, r, ok := GroundToGrid(x, z, size, 16, 16)
			if !ok || c != col || r != row {
				t.Fatalf("cell (%d, %d) -> (%v, %v) -> (%d, %d, %v)", col, row, x, z, c, r, ok)
			}
		}
	}
}

func TestSampleGround(t *testing.T) {
	m := New(4, 4)
	m.Set(0, 0, 0)
	m.Set(3, 3, 0.25)

	tests := []struct {
		x, z float32
		want float32
		ok   bool
	}{
		{-3.9, -3.9, 0, true},
		{3.9, 3.9, 0.25, true},
		{0.1, 0.1, 1, true},
		{-4.1, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := m.SampleGround(tt.x, tt.z, 8)
		if ok != tt.ok || got != tt.want {
			t.Errorf("SampleGround(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.z, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSetClampsAndIgnoresOutside(t *testing.T) {
	m := New(2, 2)
	m.Set(0, 0, -1)
	m.Set(1, 0, 3)
	m.Set(5, 5, 0)
	m.Set(-1, 0, 0)

	if m.At(0, 0) != 0 {
		t.Errorf("expected clamped 0, got %v", m.At(0, 0))
	}
	if m.At(1, 0) != 1 {
		t.Errorf("expected clamped 1, got %v", m.At(1, 0))
	}
	if m.At(5, 5) != 0 {
		t.Errorf("expected 0 outside the grid, got %v", m.At(5, 5))
	}
	for _, v := range m.Data[2:] {
		if v != 1 {
			t.Errorf("untouched cell changed to %v", v)
		}
	}
}

func TestCheckCompatible(t *testing.T) {
	tests := []struct {
		name string
		m    *Mask
		ok   bool
	}{
		{"default canvas", New(DefaultSize, DefaultSize), true},
		{"tiny", New(1, 1), true},
		{"zero width", &Mask{Width: 0, Height: 4}, false},
		{"negative height", &Mask{Width: 4, Height: -4}, false},
		{"data mismatch", &Mask{Width: 4, Height: 4, Data: make([]float32, 10)}, false},
		{"rectangular", New(512, 256), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.CheckCompatible()
			if tt.ok {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrMismatch) {
				t.Fatalf("expected ErrMismatch, got %v", err)
			}
			var mErr *MismatchError
			if !errors.As(err, &mErr) || mErr.Width != tt.m.Width || mErr.Height != tt.m.Height {
				t.Errorf("expected MismatchError with the mask dimensions, got %#v", err)
			}
		})
	}
}

func TestCoverage(t *testing.T) {
	m := New(4, 4)
	for col := range 4 {
		m.Set(col, 0, 0)
	}
	if got := m.Coverage(0.5, IncludeDark); got != 0.25 {
		t.Errorf("dark coverage = %v, want 0.25", got)
	}
	if got := m.Coverage(0.5, IncludeLight); got != 0.75 {
		t.Errorf("light coverage = %v, want 0.75", got)
	}
	if got := (&Mask{}).Coverage(0.5, IncludeDark); got != 0 {
		t.Errorf("empty coverage = %v, want 0", got)
	}
}
