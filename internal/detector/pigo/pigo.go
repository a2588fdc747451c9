// Package pigo detects faces with the pure Go pigo cascade, for hosts without OpenCV.
package pigo

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/S2G-Investments/headshot-processor/internal/detector"
	"github.com/S2G-Investments/headshot-processor/internal/facebox"
	pigocore "github.com/esimov/pigo/core"
)

// Detector runs an unpacked pigo facefinder cascade.
type Detector struct {
	classifier *pigocore.Pigo
	params     detector.Params
}

// New reads and unpacks the cascade at params.CascadePath.
func New(params detector.Params) (*Detector, error) {
	data, err := os.ReadFile(params.CascadePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", detector.ErrCascadeMissing, params.CascadePath)
		}
		return nil, fmt.Errorf("%w: %s: %v", detector.ErrCascadeInvalid, params.CascadePath, err)
	}

	classifier, err := pigocore.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", detector.ErrCascadeInvalid, params.CascadePath, err)
	}

	return &Detector{classifier: classifier, params: params}, nil
}

// Detect runs the cascade over the grayscale pixels of img.
func (d *Detector) Detect(img image.Image) ([]facebox.Box, error) {
	src := pigocore.ImgToNRGBA(img)
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()
	if cols == 0 || rows == 0 {
		return nil, nil
	}

	cParams := pigocore.CascadeParams{
		MinSize:     d.params.MinSize,
		MaxSize:     max(cols, rows),
		ShiftFactor: d.params.ShiftFactor,
		ScaleFactor: d.params.ScaleFactor,
		ImageParams: pigocore.ImageParams{
			Pixels: pigocore.RgbToGrayscale(src),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(cParams, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.params.IoUThreshold)
	return toBoxes(dets, d.params.MinQuality, cols, rows), nil
}

// Close is a no-op; the classifier holds no native resources.
func (d *Detector) Close() error {
	return nil
}

// toBoxes converts centre/scale detections to clipped boxes, dropping low quality ones.
func toBoxes(dets []pigocore.Detection, minQuality float64, cols, rows int) []facebox.Box {
	var boxes []facebox.Box
	for _, det := range dets {
		if float64(det.Q) < minQuality {
			continue
		}
		b := facebox.Clip(facebox.Box{
			X: det.Col - det.Scale/2,
			Y: det.Row - det.Scale/2,
			W: det.Scale,
			H: det.Scale,
		}, cols, rows)
		if b.Empty() {
			continue
		}
		boxes = append(boxes, b)
	}
	return boxes
}
