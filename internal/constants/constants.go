// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Directory defaults
const (
	// DefaultInputDir holds the raw headshots to process
	DefaultInputDir = "headshots"

	// DefaultOutputDir receives renamed, cropped and resized headshots
	DefaultOutputDir = "processed_headshots"

	// DefaultReferenceDir lists headshots that were already finalized in an earlier run.
	// Only file names are read from it, never contents.
	DefaultReferenceDir = "existing_processed_headshots"

	// DefaultLogDir is where the per-run log file is created
	DefaultLogDir = "."

	// LogFilePrefix identifies the run log files written by this tool
	LogFilePrefix = "process_headshots"
)

// Face detection constants
const (
	// DefaultHaarCascadePath is where OpenCV packages install the frontal face cascade
	DefaultHaarCascadePath = "/usr/share/opencv4/haarcascades/haarcascade_frontalface_default.xml"

	// DefaultPigoCascadePath is the pigo facefinder cascade shipped next to the binary
	DefaultPigoCascadePath = "cascade/facefinder"

	// DefaultScaleFactor controls how much the image is scaled down between detector passes
	DefaultScaleFactor = 1.15

	// DefaultMinNeighbors is the number of overlapping detections needed to keep a face
	DefaultMinNeighbors = 5

	// DefaultMinFaceSize is the smallest face (in pixels, both sides) the detector reports
	DefaultMinFaceSize = 40

	// DefaultPigoShiftFactor is the sliding window step used by the pigo backend
	DefaultPigoShiftFactor = 0.1

	// DefaultPigoMinQuality drops pigo detections with a lower score
	DefaultPigoMinQuality = 5.0

	// DefaultPigoIoUThreshold is used when clustering overlapping pigo detections
	DefaultPigoIoUThreshold = 0.2
)

// Crop and resize constants
const (
	// DefaultPaddingFactor is the share of the face width/height added on every side
	DefaultPaddingFactor = 0.4

	// DefaultExtraMargin is added to the proportional padding, in pixels
	DefaultExtraMargin = 5

	// DefaultTargetWidth is the width of every written headshot
	DefaultTargetWidth = 300

	// DefaultJPEGQuality is used when the output file is a JPEG
	DefaultJPEGQuality = 95
)
