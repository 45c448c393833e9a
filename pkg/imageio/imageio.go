// Package imageio converts rendered pixel buffers to images and encodes them
// as PNG, BMP or plain PPM.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Format is an output image encoding
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
	PPM Format = "ppm" // Plain-text P3 PPM
)

var (
	// ErrUnknownFormat is returned for an unsupported output format name.
	ErrUnknownFormat = errors.New("imageio: unknown image format")

	// ErrBufferSize is returned when a pixel buffer does not match its dimensions.
	ErrBufferSize = errors.New("imageio: pixel buffer size does not match dimensions")
)

// Formats lists the supported output formats
func Formats() []Format {
	return []Format{PNG, BMP, PPM}
}

// ParseFormat parses a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(name, ".")))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FromPixels wraps a flat RGBA buffer (top row first) in an image without copying
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrBufferSize, len(pixels), width, height)
	}
	return &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case PPM:
		return EncodePPM(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// EncodePPM writes img as a plain P3 PPM with one "r g b" line per pixel
func EncodePPM(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	bounds := img.Bounds()

	fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			fmt.Fprintf(bw, "%d %d %d\n", r>>8, g>>8, b>>8)
		}
	}

	return bw.Flush()
}

// Scale resizes img by factor using Catmull-Rom resampling. A factor of 1
// returns img unchanged; the result is at least 1x1.
func Scale(img *image.RGBA, factor float64) *image.RGBA {
	if factor == 1 {
		return img
	}

	bounds := img.Bounds()
	width := max(1, int(float64(bounds.Dx())*factor+0.5))
	height := max(1, int(float64(bounds.Dy())*factor+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
