// Package facebox provides the bounding box arithmetic used to turn face detections into crops.
package facebox

import "image"

// Box is a face bounding box in pixel coordinates relative to the image origin.
type Box struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// FromRect converts an image.Rectangle to a Box.
func FromRect(r image.Rectangle) Box {
	return Box{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Rect returns the box as an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Area returns width times height.
func (b Box) Area() int {
	return b.W * b.H
}

// Empty reports whether the box has no pixels.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Padding describes how much room to leave around a face.
type Padding struct {
	Factor float64 // share of the face width/height added on each side
	Margin int     // fixed pixels added on top of the proportional padding
}
