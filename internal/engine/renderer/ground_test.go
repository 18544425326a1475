package renderer

import "testing"

func TestGroundQuad(t *testing.T) {
	verts := groundQuad(25)
	if len(verts) != 4*5 {
		t.Fatalf("expected 20 floats, got %d", len(verts))
	}
	for i := 0; i < len(verts); i += 5 {
		x, y, z, u, v := verts[i], verts[i+1], verts[i+2], verts[i+3], verts[i+4]
		if y != 0 {
			t.Errorf("vertex %d: expected y=0, got %v", i/5, y)
		}
		if (x != -12.5 && x != 12.5) || (z != -12.5 && z != 12.5) {
			t.Errorf("vertex %d: expected a corner of the plane, got (%v, %v)", i/5, x, z)
		}
		// UV follows the ground-to-uv mapping used for blades.
		if u != (x+12.5)/25 || v != (z+12.5)/25 {
			t.Errorf("vertex %d: uv (%v, %v) does not match position", i/5, u, v)
		}
	}
}

func TestDefaultGrassUniforms(t *testing.T) {
	u := DefaultGrassUniforms()
	if u.Color != [3]float32{0, 1, 0} {
		t.Errorf("expected green, got %v", u.Color)
	}
	if u.Brightness != -0.1 || u.Contrast != 1 {
		t.Errorf("unexpected brightness/contrast %v/%v", u.Brightness, u.Contrast)
	}
	if u.TextureMix != 0.5 {
		t.Errorf("expected half texture tint, got %v", u.TextureMix)
	}
}

func TestGrassTextureWeight(t *testing.T) {
	tests := []struct {
		name       string
		mix        float32
		hasTexture bool
		want       float32
	}{
		{"no texture", 0.5, false, 0},
		{"default mix", 0.5, true, 0.5},
		{"clamped high", 3, true, 1},
		{"clamped low", -1, true, 0},
		{"disabled", 0, true, 0},
	}
	for _, tt := range tests {
		u := DefaultGrassUniforms()
		u.TextureMix = tt.mix
		if got := u.textureWeight(tt.hasTexture); got != tt.want {
			t.Errorf("%s: textureWeight = %v, want %v", tt.name, got, tt.want)
		}
	}
}
