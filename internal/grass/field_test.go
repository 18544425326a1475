package grass

import (
	"context"
	"errors"
	"slices"
	gomath "math"
	"testing"

	"github.com/Faultbox/meadow/internal/mask"
)

func testParams(count int) Params {
	return Params{
		PlaneSize:            10,
		BladeCount:           count,
		BladeWidth:           0.1,
		BladeHeight:          0.4,
		BladeHeightVariation: 0.6,
	}
}

func TestGenerateBufferLengths(t *testing.T) {
	for _, count := range []int{1, 7, 1000} {
		mesh, err := Generate(testParams(count), WithRand(NewRand(uint64(count))))
		if err != nil {
			t.Fatalf("Generate(%d): %v", count, err)
		}
		if got, want := len(mesh.Positions), 3*5*count; got != want {
			t.Errorf("count %d: positions length %d, want %d", count, got, want)
		}
		if got, want := len(mesh.UVs), 2*5*count; got != want {
			t.Errorf("count %d: uvs length %d, want %d", count, got, want)
		}
		if got, want := len(mesh.Colors), 3*5*count; got != want {
			t.Errorf("count %d: colors length %d, want %d", count, got, want)
		}
		if got, want := len(mesh.Indices), 9*count; got != want {
			t.Errorf("count %d: indices length %d, want %d", count, got, want)
		}
		if err := mesh.Validate(); err != nil {
			t.Errorf("count %d: Validate: %v", count, err)
		}
	}
}

func TestGenerateIndicesStayInBlade(t *testing.T) {
	const count = 500
	mesh, err := Generate(testParams(count), WithRand(NewRand(3)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	n := uint32(5 * count)
	for i, idx := range mesh.Indices {
		if idx >= n {
			t.Fatalf("index %d = %d, want < %d", i, idx, n)
		}
		blade := uint32(i / IndicesPerBlade)
		if idx/VerticesPerBlade != blade {
			t.Fatalf("index %d = %d belongs to blade %d, want blade %d", i, idx, idx/VerticesPerBlade, blade)
		}
	}

	// Each blade's triangles cover all five of its vertices.
	for b := range count {
		var seen [VerticesPerBlade]bool
		for _, idx := range mesh.Indices[b*IndicesPerBlade : (b+1)*IndicesPerBlade] {
			seen[idx-uint32(b*VerticesPerBlade)] = true
		}
		for slot, ok := range seen {
			if !ok {
				t.Fatalf("blade %d never references slot %d", b, slot)
			}
		}
	}
}

func TestGenerateAnchorsInsideDisk(t *testing.T) {
	p := testParams(5000)
	mesh, err := Generate(p, WithRand(NewRand(11)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	radius := p.Radius() + 1e-4
	for i, a := range mesh.Anchors() {
		if a.Length() > radius {
			t.Fatalf("anchor %d at distance %v, want <= %v", i, a.Length(), p.Radius())
		}
	}
}

func TestGenerateBladeHeights(t *testing.T) {
	p := testParams(2000)
	mesh, err := Generate(p, WithRand(NewRand(5)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for b := range mesh.BladeCount() {
		first := b * VerticesPerBlade
		tip := mesh.Position(first + SlotTip).Y
		if tip < p.BladeHeight || tip > p.BladeHeight+p.BladeHeightVariation {
			t.Fatalf("blade %d tip height %v outside [%v, %v]", b, tip, p.BladeHeight, p.BladeHeight+p.BladeHeightVariation)
		}
		for _, slot := range []int{SlotMidLeft, SlotMidRight} {
			mid := mesh.Position(first + slot).Y
			if diff := mid - tip/2; diff > 1e-6 || diff < -1e-6 {
				t.Fatalf("blade %d mid height %v, want %v", b, mid, tip/2)
			}
			if tip < mid {
				t.Fatalf("blade %d tip %v below mid %v", b, tip, mid)
			}
		}
		for _, slot := range []int{SlotBottomLeft, SlotBottomRight} {
			if y := mesh.Position(first + slot).Y; y != 0 {
				t.Fatalf("blade %d base height %v, want 0", b, y)
			}
		}
	}
}

func TestGenerateFourBladesNoVariation(t *testing.T) {
	p := Params{PlaneSize: 10, BladeCount: 4, BladeWidth: 0.1, BladeHeight: 0.4, BladeHeightVariation: 0}
	mesh, err := Generate(p, WithRand(NewRand(1)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if mesh.VertexCount() != 20 {
		t.Errorf("expected 20 vertices, got %d", mesh.VertexCount())
	}
	if len(mesh.Indices) != 36 {
		t.Errorf("expected 36 indices, got %d", len(mesh.Indices))
	}

	want := [VerticesPerBlade]float32{
		SlotBottomLeft:  0,
		SlotBottomRight: 0,
		SlotMidRight:    0.2,
		SlotMidLeft:     0.2,
		SlotTip:         0.4,
	}
	for b := range 4 {
		for slot, y := range want {
			if got := mesh.Position(b*VerticesPerBlade + slot).Y; got != y {
				t.Errorf("blade %d slot %d height %v, want %v", b, slot, got, y)
			}
		}
	}
}

func TestGenerateColorsFollowRamp(t *testing.T) {
	mesh, err := Generate(testParams(50), WithRand(NewRand(2)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for v := range mesh.VertexCount() {
		want := SlotRamp(v % VerticesPerBlade).Color()
		got := [3]float32{mesh.Colors[v*3], mesh.Colors[v*3+1], mesh.Colors[v*3+2]}
		if got != want {
			t.Fatalf("vertex %d color %v, want %v", v, got, want)
		}
	}
}

func TestGenerateUVsShareAnchor(t *testing.T) {
	p := testParams(100)
	mesh, err := Generate(p, WithRand(NewRand(8)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for b, a := range mesh.Anchors() {
		want := GroundToUV(a, p.PlaneSize)
		for slot := range VerticesPerBlade {
			v := b*VerticesPerBlade + slot
			u, w := mesh.UVs[v*2], mesh.UVs[v*2+1]
			if gomath.Abs(float64(u-want[0])) > 1e-5 || gomath.Abs(float64(w-want[1])) > 1e-5 {
				t.Fatalf("blade %d slot %d uv (%v, %v), want %v", b, slot, u, w, want)
			}
			if u < 0 || u > 1 || w < 0 || w > 1 {
				t.Fatalf("blade %d uv (%v, %v) outside [0,1]", b, u, w)
			}
		}
	}
}

func TestGenerateZeroBlades(t *testing.T) {
	mesh, err := Generate(testParams(0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(mesh.Positions) != 0 || len(mesh.UVs) != 0 || len(mesh.Colors) != 0 || len(mesh.Indices) != 0 {
		t.Errorf("expected empty buffers, got %d/%d/%d/%d",
			len(mesh.Positions), len(mesh.UVs), len(mesh.Colors), len(mesh.Indices))
	}
}

func TestGenerateSameSeedSameMesh(t *testing.T) {
	a, err := Generate(testParams(300), WithRand(NewRand(77)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(testParams(300), WithRand(NewRand(77)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("position %d differs: %v vs %v", i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestGenerateConfigurationErrors(t *testing.T) {
	nan := float32(gomath.NaN())
	inf := float32(gomath.Inf(1))

	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"zero plane size", func(p *Params) { p.PlaneSize = 0 }, "PlaneSize"},
		{"negative plane size", func(p *Params) { p.PlaneSize = -5 }, "PlaneSize"},
		{"nan plane size", func(p *Params) { p.PlaneSize = nan }, "PlaneSize"},
		{"negative blade count", func(p *Params) { p.BladeCount = -1 }, "BladeCount"},
		{"blade count overflow", func(p *Params) { p.BladeCount = MaxBladeCount + 1 }, "BladeCount"},
		{"zero blade width", func(p *Params) { p.BladeWidth = 0 }, "BladeWidth"},
		{"infinite blade width", func(p *Params) { p.BladeWidth = inf }, "BladeWidth"},
		{"zero blade height", func(p *Params) { p.BladeHeight = 0 }, "BladeHeight"},
		{"negative variation", func(p *Params) { p.BladeHeightVariation = -0.1 }, "BladeHeightVariation"},
		{"nan variation", func(p *Params) { p.BladeHeightVariation = nan }, "BladeHeightVariation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams(10)
			tt.mutate(&p)

			mesh, err := Generate(p)
			if mesh != nil {
				t.Error("expected no mesh on error")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestGenerateNegativeRetries(t *testing.T) {
	_, err := Generate(testParams(10), WithMaxRetries(-1))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestGenerateMaskMismatch(t *testing.T) {
	tests := []struct {
		name string
		m    *mask.Mask
	}{
		{"empty", &mask.Mask{}},
		{"short data", &mask.Mask{Width: 4, Height: 4, Data: make([]float32, 15)}},
		{"not square", mask.New(8, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := Generate(testParams(10), WithMask(tt.m, nil))
			if mesh != nil {
				t.Error("expected no mesh on error")
			}
			if !errors.Is(err, mask.ErrMismatch) {
				t.Errorf("expected ErrMismatch, got %v", err)
			}
			if errors.Is(err, ErrConfiguration) {
				t.Error("mask mismatch must not match ErrConfiguration")
			}
		})
	}
}

func TestGenerateMaskRejectsAll(t *testing.T) {
	// A blank canvas is white; the default predicate keeps only dark cells.
	m := mask.New(16, 16)
	mesh, err := Generate(testParams(1000), WithMask(m, nil), WithRand(NewRand(4)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if mesh.VertexCount() != 0 || len(mesh.Indices) != 0 {
		t.Errorf("expected empty mesh, got %d vertices", mesh.VertexCount())
	}
}

func TestGenerateMaskAcceptsAll(t *testing.T) {
	m := mask.New(16, 16)
	m.Fill(0)
	mesh, err := Generate(testParams(200), WithMask(m, nil), WithRand(NewRand(4)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if mesh.BladeCount() != 200 {
		t.Errorf("expected 200 blades, got %d", mesh.BladeCount())
	}
}

func TestGenerateMaskRestrictsAnchors(t *testing.T) {
	// Only the z < 0 half is painted.
	m := mask.New(32, 32)
	for row := range 16 {
		for col := range 32 {
			m.Set(col, row, 0)
		}
	}

	mesh, err := Generate(testParams(3000), WithMask(m, mask.Threshold{Level: 0.5}), WithRand(NewRand(6)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := mesh.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if mesh.BladeCount() < 2000 {
		t.Errorf("expected most slots filled with 8 retries, got %d blades", mesh.BladeCount())
	}
	for i, a := range mesh.Anchors() {
		if a.Y > 1e-3 {
			t.Fatalf("anchor %d at z=%v outside the painted half", i, a.Y)
		}
	}
}

func TestGenerateNoRetriesSkipsSlots(t *testing.T) {
	// Half the disk rejects; without retries roughly half the slots stay empty.
	m := mask.New(32, 32)
	for row := range 16 {
		for col := range 32 {
			m.Set(col, row, 0)
		}
	}
	mesh, err := Generate(testParams(4000), WithMask(m, nil), WithMaxRetries(0), WithRand(NewRand(9)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n := mesh.BladeCount(); n < 1700 || n > 2300 {
		t.Errorf("expected about 2000 blades, got %d", n)
	}
}

func TestGenerateStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mesh, err := Generate(testParams(100000), WithRand(NewRand(1)), WithContext(ctx))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if mesh != nil {
		t.Error("expected no mesh from a cancelled generation")
	}
}

func TestGenerateLiveContextSameMesh(t *testing.T) {
	want, err := Generate(testParams(3000), WithRand(NewRand(4)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, err := Generate(testParams(3000), WithRand(NewRand(4)), WithContext(context.Background()))
	if err != nil {
		t.Fatalf("Generate with context: %v", err)
	}
	if !slices.Equal(got.Positions, want.Positions) {
		t.Error("a live context changed the generated field")
	}
}
