package texture

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
)

func tgaHeaderBytes(imageType, width, height, bpp, descriptor byte) []byte {
	return []byte{0, 0, imageType, 0, 0, 0, 0, 0, 0, 0, 0, 0, width, 0, height, 0, bpp, descriptor}
}

func TestDecodeTGATrueColor(t *testing.T) {
	// 2x1 BGR, top-to-bottom.
	data := append(tgaHeaderBytes(TGATypeTrueColor, 2, 1, 24, 0x20),
		0, 0, 255, // red
		255, 0, 0, // blue
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	want := []color.NRGBA{{255, 0, 0, 255}, {0, 0, 255, 255}}
	for x, c := range want {
		if got := color.NRGBAModel.Convert(img.At(x, 0)); got != c {
			t.Errorf("pixel %d = %v, want %v", x, got, c)
		}
	}
}

func TestDecodeTGARLEWithAlpha(t *testing.T) {
	// 3x1 BGRA: a run of two green pixels then one raw transparent pixel.
	data := append(tgaHeaderBytes(TGATypeRLETrueColor, 3, 1, 32, 0x20),
		0x81, 0, 255, 0, 255,
		0x00, 10, 20, 30, 0,
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	nrgba := img.(*image.NRGBA)
	want := []color.NRGBA{{0, 255, 0, 255}, {0, 255, 0, 255}, {30, 20, 10, 0}}
	for x, c := range want {
		if got := nrgba.NRGBAAt(x, 0); got != c {
			t.Errorf("pixel %d = %v, want %v", x, got, c)
		}
	}
}

func TestDecodeTGARightToLeft(t *testing.T) {
	data := append(tgaHeaderBytes(TGATypeGray, 2, 1, 8, 0x30), 10, 200)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	nrgba := img.(*image.NRGBA)
	if nrgba.NRGBAAt(0, 0).R != 200 || nrgba.NRGBAAt(1, 0).R != 10 {
		t.Errorf("expected mirrored row, got %v %v", nrgba.NRGBAAt(0, 0), nrgba.NRGBAAt(1, 0))
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", append([]byte{0, 1}, tgaHeaderBytes(1, 1, 1, 8, 0)[2:]...)},
		{"unsupported type", tgaHeaderBytes(9, 1, 1, 8, 0)},
		{"bad depth", tgaHeaderBytes(TGATypeTrueColor, 1, 1, 16, 0)},
		{"empty image", tgaHeaderBytes(TGATypeGray, 0, 1, 8, 0)},
		{"truncated pixels", append(tgaHeaderBytes(TGATypeTrueColor, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated run", append(tgaHeaderBytes(TGATypeRLEGray, 4, 1, 8, 0), 0x81, 5)},
	}
	for _, tt := range tests {
		if _, err := DecodeTGA(tt.data); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestToRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(5, 5, 7, 6))
	src.SetGray(5, 5, color.Gray{Y: 100})

	rgba := ToRGBA(src)
	if rgba.Rect != image.Rect(0, 0, 2, 1) {
		t.Fatalf("expected origin-based rect, got %v", rgba.Rect)
	}
	if c := rgba.RGBAAt(0, 0); c.R != 100 || c.A != 255 {
		t.Errorf("pixel moved or changed: %v", c)
	}

	same := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if ToRGBA(same) != same {
		t.Error("expected an origin-based RGBA image to be returned as is")
	}
}

func TestGenerateGround(t *testing.T) {
	opts := DefaultGroundOptions()
	opts.Width, opts.Height = 64, 48
	opts.Spots = 40

	a := GenerateGround(opts, rand.New(rand.NewPCG(1, 1)))
	b := GenerateGround(opts, rand.New(rand.NewPCG(1, 1)))

	if a.Bounds().Dx() != 64 || a.Bounds().Dy() != 48 {
		t.Fatalf("expected 64x48, got %v", a.Bounds())
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("same seed produced different textures")
		}
	}

	var greenDominant int
	for y := range 48 {
		for x := range 64 {
			c := a.RGBAAt(x, y)
			if c.A != 255 {
				t.Fatalf("pixel (%d, %d) not opaque: %v", x, y, c)
			}
			if c.G > c.R && c.G > c.B {
				greenDominant++
			}
		}
	}
	if greenDominant < 64*48*9/10 {
		t.Errorf("expected a green ground, only %d of %d pixels green-dominant", greenDominant, 64*48)
	}
}

func TestGroundGradient(t *testing.T) {
	opts := DefaultGroundOptions()
	opts.Width, opts.Height = 101, 101
	img := groundGradient(opts)

	if c := img.RGBAAt(50, 50); c.G < opts.Inner.G-2 || c.G > opts.Inner.G+2 {
		t.Errorf("center %v, want close to inner %v", c, opts.Inner)
	}
	if c := img.RGBAAt(0, 0); c != opts.Outer {
		t.Errorf("corner %v, want outer %v", c, opts.Outer)
	}
}

func TestGenerateGroundEdgesOpaque(t *testing.T) {
	opts := DefaultGroundOptions()
	opts.Width, opts.Height = 32, 32
	opts.Spots = 10
	opts.FinalBlur = 6

	img := GenerateGround(opts, rand.New(rand.NewPCG(3, 3)))
	for _, p := range []image.Point{{0, 0}, {31, 0}, {0, 31}, {31, 31}, {16, 0}} {
		if a := img.RGBAAt(p.X, p.Y).A; a != 255 {
			t.Errorf("edge pixel %v alpha %d, want 255", p, a)
		}
	}
}
