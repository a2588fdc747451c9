// Package detector defines the face detector used by the pipeline and the parameters shared
// by its backends (see the haar and pigo subpackages).
package detector

import (
	"errors"
	"image"

	"github.com/S2G-Investments/headshot-processor/internal/facebox"
)

var (
	// ErrCascadeMissing is returned when the cascade file does not exist.
	ErrCascadeMissing = errors.New("face cascade file not found")
	// ErrCascadeInvalid is returned when the cascade file exists but cannot be loaded.
	ErrCascadeInvalid = errors.New("face cascade file could not be loaded")
)

// Detector finds frontal faces in an image.
type Detector interface {
	// Detect returns the face boxes found in img, in detector order, relative to the image origin.
	Detect(img image.Image) ([]facebox.Box, error)
	Close() error
}

// Params configures a detector backend.
type Params struct {
	CascadePath  string
	ScaleFactor  float64
	MinNeighbors int // haar only
	MinSize      int

	ShiftFactor  float64 // pigo only
	MinQuality   float64 // pigo only
	IoUThreshold float64 // pigo only
}

// Backend names accepted in configuration.
const (
	BackendHaar = "haar"
	BackendPigo = "pigo"
)
