package processor

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestCompressProducesJPEG(t *testing.T) {
	c := New()

	out, err := c.Compress(testPNG(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable jpeg: %v", err)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 8 {
		t.Errorf("expected 8x8 output, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestCompressJPEGInput(t *testing.T) {
	c := New()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}

	out, err := c.Compress(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("output is not a decodable jpeg: %v", err)
	}
}

func TestCompressRejectsNonImage(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "text", data: []byte("this is not an image")},
		{name: "html", data: []byte("<html><body>404</body></html>")},
		{name: "empty", data: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Compress(tt.data)
			if !errors.Is(err, errs.ErrUnsupportedImage) {
				t.Fatalf("expected unsupported image error, got %v", err)
			}
		})
	}
}
