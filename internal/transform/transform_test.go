package transform

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func solid(x0, y0, x1, y1 int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(x0, y0, x1, y1))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCrop(t *testing.T) {
	img := solid(0, 0, 400, 400, color.White)
	img.Set(5, 5, color.Black)

	cropped := Crop(img, image.Rect(5, 5, 195, 195))
	b := cropped.Bounds()
	if b.Dx() != 190 || b.Dy() != 190 {
		t.Fatalf("expected 190x190 crop, got %dx%d", b.Dx(), b.Dy())
	}
	r, g, bl, _ := cropped.At(b.Min.X, b.Min.Y).RGBA()
	if r != 0 || g != 0 || bl != 0 {
		t.Errorf("expected crop to start at the black pixel, got %v %v %v", r, g, bl)
	}
}

func TestCropOffsetBounds(t *testing.T) {
	// Sub-images keep their parent coordinates; Crop works relative to the origin.
	img := solid(100, 100, 300, 300, color.White)
	img.Set(110, 120, color.Black)

	cropped := Crop(img, image.Rect(10, 20, 50, 60))
	b := cropped.Bounds()
	if b.Dx() != 40 || b.Dy() != 40 {
		t.Fatalf("expected 40x40 crop, got %dx%d", b.Dx(), b.Dy())
	}
	r, _, _, _ := cropped.At(b.Min.X, b.Min.Y).RGBA()
	if r != 0 {
		t.Errorf("expected crop to start at the black pixel")
	}
}

func TestResizeToWidth(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		expectedHeight int
	}{
		{"enlarge square", 190, 190, 300},
		{"shrink landscape", 600, 400, 200},
		{"shrink portrait", 400, 600, 450},
		{"already target width", 300, 120, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solid(0, 0, tt.width, tt.height, color.Gray{Y: 128})
			out, err := ResizeToWidth(img, 300)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			b := out.Bounds()
			if b.Dx() != 300 || b.Dy() != tt.expectedHeight {
				t.Errorf("expected 300x%d, got %dx%d", tt.expectedHeight, b.Dx(), b.Dy())
			}
		})
	}
}

func TestResizeToWidthInvalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		target        int
	}{
		{"height rounds to zero", 1000, 1, 300},
		{"empty image", 0, 0, 300},
		{"zero target", 100, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tt.width, tt.height))
			_, err := ResizeToWidth(img, tt.target)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestFilterFor(t *testing.T) {
	if f := FilterFor(600, 300); f.Support != imaging.Box.Support {
		t.Errorf("expected box filter when shrinking, got support %v", f.Support)
	}
	if f := FilterFor(190, 300); f.Support != imaging.Linear.Support {
		t.Errorf("expected linear filter when enlarging, got support %v", f.Support)
	}
	if f := FilterFor(300, 300); f.Support != imaging.Linear.Support {
		t.Errorf("expected linear filter at equal width, got support %v", f.Support)
	}
}
