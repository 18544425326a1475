package mask

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/Faultbox/meadow/internal/engine/texture"
)

// FromImage converts an image to a mask using Rec. 601 luma. Transparent
// pixels are composited over white, the canvas background.
func FromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := &Mask{
		Width:  b.Dx(),
		Height: b.Dy(),
		Data:   make([]float32, b.Dx()*b.Dy()),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m.Data[(y-b.Min.Y)*m.Width+(x-b.Min.X)] = luma(img.At(x, y))
		}
	}
	return m
}

func luma(c color.Color) float32 {
	r, g, b, a := c.RGBA()
	bg := 0xffff - a
	y := (299*(r+bg) + 587*(g+bg) + 114*(b+bg) + 500) / 1000
	return clamp01(float32(y) / 0xffff)
}

// Image renders the mask as an 8-bit grayscale image.
func (m *Mask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for row := range m.Height {
		for col := range m.Width {
			img.Pix[row*img.Stride+col] = uint8(m.At(col, row)*255 + 0.5)
		}
	}
	return img
}

// Load reads a mask from an image file. PNG, JPEG, GIF, BMP, TIFF and WebP
// are detected from content; TGA is selected by extension.
func Load(path string) (*Mask, error) {
	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		img, err = texture.DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, _, err = image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	return FromImage(img), nil
}

// Save writes the mask as a grayscale PNG.
func (m *Mask) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	return imgio.Save(path, m.Image(), imgio.PNGEncoder())
}
