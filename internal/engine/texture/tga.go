// Package texture provides image decoding and procedural ground textures.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// TGA image types.
const (
	TGATypeTrueColor    = 2
	TGATypeGray         = 3
	TGATypeRLETrueColor = 10
	TGATypeRLEGray      = 11
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

type tgaHeader struct {
	idLength    int
	colorMap    byte
	imageType   byte
	width       int
	height      int
	bpp         int
	descriptor  byte
	rightToLeft bool
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, errTGATruncated
	}
	h := tgaHeader{
		idLength:   int(data[0]),
		colorMap:   data[1],
		imageType:  data[2],
		width:      int(data[12]) | int(data[13])<<8,
		height:     int(data[14]) | int(data[15])<<8,
		bpp:        int(data[16]),
		descriptor: data[17],
	}
	h.rightToLeft = h.descriptor&0x10 != 0
	h.topToBottom = h.descriptor&0x20 != 0

	if h.colorMap != 0 {
		return h, fmt.Errorf("color-mapped TGA not supported")
	}
	switch h.imageType {
	case TGATypeTrueColor, TGATypeRLETrueColor:
		if h.bpp != 24 && h.bpp != 32 {
			return h, fmt.Errorf("unsupported true-color TGA depth %d", h.bpp)
		}
	case TGATypeGray, TGATypeRLEGray:
		if h.bpp != 8 {
			return h, fmt.Errorf("unsupported grayscale TGA depth %d", h.bpp)
		}
	default:
		return h, fmt.Errorf("unsupported TGA type %d", h.imageType)
	}
	if h.width == 0 || h.height == 0 {
		return h, fmt.Errorf("empty TGA image %dx%d", h.width, h.height)
	}
	return h, nil
}

// DecodeTGA decodes uncompressed or RLE TGA images, true-color (24/32 bit)
// or 8-bit grayscale. Painted masks are commonly saved as grayscale.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	bytesPerPixel := h.bpp / 8
	pixels := make([]byte, h.width*h.height*bytesPerPixel)
	src := data[offset:]
	if h.imageType == TGATypeRLETrueColor || h.imageType == TGATypeRLEGray {
		err = unpackTGARLE(pixels, src, bytesPerPixel)
	} else if len(src) < len(pixels) {
		err = errTGATruncated
	} else {
		copy(pixels, src)
	}
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	for i := 0; i < h.width*h.height; i++ {
		x, y := i%h.width, i/h.width
		if h.rightToLeft {
			x = h.width - 1 - x
		}
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		img.SetNRGBA(x, y, tgaPixel(pixels[i*bytesPerPixel:(i+1)*bytesPerPixel]))
	}
	return img, nil
}

// unpackTGARLE expands run-length packets into dst.
func unpackTGARLE(dst, src []byte, bytesPerPixel int) error {
	di, si := 0, 0
	for di < len(dst) {
		if si >= len(src) {
			return errTGATruncated
		}
		packet := src[si]
		si++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if si+bytesPerPixel > len(src) {
				return errTGATruncated
			}
			px := src[si : si+bytesPerPixel]
			si += bytesPerPixel
			for range count {
				if di >= len(dst) {
					break
				}
				di += copy(dst[di:], px)
			}
			continue
		}

		n := min(count*bytesPerPixel, len(dst)-di)
		if si+n > len(src) {
			return errTGATruncated
		}
		di += copy(dst[di:], src[si:si+n])
		si += n
	}
	return nil
}

// tgaPixel converts one stored pixel (BGR[A] or gray) to NRGBA.
func tgaPixel(p []byte) color.NRGBA {
	switch len(p) {
	case 1:
		return color.NRGBA{R: p[0], G: p[0], B: p[0], A: 255}
	case 3:
		return color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	default:
		return color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	}
}

// ToRGBA converts any image to *image.RGBA with its origin at (0,0), the
// layout GL texture uploads expect.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
