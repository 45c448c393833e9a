package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input       string
		expected    Format
		expectError bool
	}{
		{"png", PNG, false},
		{"PNG", PNG, false},
		{".bmp", BMP, false},
		{"ppm", PPM, false},
		{"jpeg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.expectError {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("Expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFromPixels(t *testing.T) {
	pixels := make([]byte, 3*2*4)
	pixels[4*4] = 200 // pixel (1, 1) red channel

	img, err := FromPixels(pixels, 3, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := img.RGBAAt(1, 1).R; got != 200 {
		t.Errorf("Expected red 200 at (1,1), got %d", got)
	}

	if _, err := FromPixels(pixels, 4, 2); !errors.Is(err, ErrBufferSize) {
		t.Errorf("Expected ErrBufferSize for mismatched buffer, got %v", err)
	}
	if _, err := FromPixels(nil, 0, 0); !errors.Is(err, ErrBufferSize) {
		t.Errorf("Expected ErrBufferSize for empty image, got %v", err)
	}
}

func TestEncodePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePPM(&buf, testImage()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n10 20 30\n"
	if buf.String() != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, buf.String())
	}
}

func TestEncode_DecodesBack(t *testing.T) {
	src := testImage()

	tests := []struct {
		format Format
		decode func(*bytes.Buffer) (image.Image, error)
	}{
		{PNG, func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) }},
		{BMP, func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, tt.format); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			decoded, err := tt.decode(&buf)
			if err != nil {
				t.Fatalf("Failed to decode: %v", err)
			}
			r, g, b, _ := decoded.At(1, 1).RGBA()
			if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
				t.Errorf("Expected (10,20,30) at (1,1), got (%d,%d,%d)", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, testImage(), Format("tga"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "tga") {
		t.Errorf("Expected error to name the format, got %v", err)
	}
}

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))

	if got := Scale(src, 1); got != src {
		t.Error("Expected factor 1 to return the source image")
	}

	half := Scale(src, 0.5)
	if half.Bounds().Dx() != 20 || half.Bounds().Dy() != 10 {
		t.Errorf("Expected 20x10, got %v", half.Bounds())
	}

	tiny := Scale(src, 0.001)
	if tiny.Bounds().Dx() != 1 || tiny.Bounds().Dy() != 1 {
		t.Errorf("Expected 1x1 minimum, got %v", tiny.Bounds())
	}
}
