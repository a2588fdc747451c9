package facebox

import (
	"image"
	"math"
)

// Largest returns the box with the strictly largest area. Ties keep the first box seen.
// The second return value is false when boxes is empty.
func Largest(boxes []Box) (Box, bool) {
	if len(boxes) == 0 {
		return Box{}, false
	}
	best := boxes[0]
	for _, b := range boxes[1:] {
		if b.Area() > best.Area() {
			best = b
		}
	}
	return best, true
}

// PaddedCrop expands b by p on every side and clips the result to a width x height image.
// It returns false when the clipped rectangle is degenerate, in which case the caller
// should keep the uncropped image.
func PaddedCrop(b Box, width, height int, p Padding) (image.Rectangle, bool) {
	padW := int(math.Floor(p.Factor*float64(b.W))) + p.Margin
	padH := int(math.Floor(p.Factor*float64(b.H))) + p.Margin

	left := max(0, b.X-padW)
	top := max(0, b.Y-padH)
	right := min(width, b.X+b.W+padW)
	bottom := min(height, b.Y+b.H+padH)

	if top >= bottom || left >= right {
		return image.Rectangle{}, false
	}
	return image.Rect(left, top, right, bottom), true
}

// Clip intersects b with a width x height image.
func Clip(b Box, width, height int) Box {
	r := b.Rect().Intersect(image.Rect(0, 0, width, height))
	if r.Empty() {
		return Box{}
	}
	return FromRect(r)
}

// ScaledHeight returns the height that keeps the width:height ratio when the width is
// changed to targetWidth. Zero or negative input dimensions yield 0.
func ScaledHeight(width, height, targetWidth int) int {
	if width <= 0 || height <= 0 || targetWidth <= 0 {
		return 0
	}
	return int(math.Round(float64(height) / float64(width) * float64(targetWidth)))
}
