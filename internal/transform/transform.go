// Package transform crops and resizes decoded headshots.
package transform

import (
	"errors"
	"fmt"
	"image"

	"github.com/S2G-Investments/headshot-processor/internal/facebox"
	"github.com/disintegration/imaging"
)

// ErrInvalidDimensions is returned when a resize would produce an empty image.
var ErrInvalidDimensions = errors.New("invalid resize dimensions")

// Crop returns the part of img inside r. r is relative to the image origin, so it can be
// produced by facebox.PaddedCrop regardless of where the image bounds start.
func Crop(img image.Image, r image.Rectangle) image.Image {
	return imaging.Crop(img, r.Add(img.Bounds().Min))
}

// ResizeToWidth scales img to width pixels keeping the aspect ratio.
// Shrinking uses a box (area averaging) filter, enlarging uses a linear filter.
func ResizeToWidth(img image.Image, width int) (image.Image, error) {
	b := img.Bounds()
	height := facebox.ScaledHeight(b.Dx(), b.Dy(), width)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d from %dx%d", ErrInvalidDimensions, width, height, b.Dx(), b.Dy())
	}

	return imaging.Resize(img, width, height, FilterFor(b.Dx(), width)), nil
}

// FilterFor picks the resampling filter for scaling from srcWidth to dstWidth.
func FilterFor(srcWidth, dstWidth int) imaging.ResampleFilter {
	if srcWidth > dstWidth {
		return imaging.Box
	}
	return imaging.Linear
}
