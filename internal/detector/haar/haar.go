// Package haar detects faces with an OpenCV Haar cascade through gocv.
package haar

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/S2G-Investments/headshot-processor/internal/detector"
	"github.com/S2G-Investments/headshot-processor/internal/facebox"
	"gocv.io/x/gocv"
)

// Detector wraps a loaded gocv.CascadeClassifier.
type Detector struct {
	classifier gocv.CascadeClassifier
	params     detector.Params
	closeOnce  sync.Once
}

// New loads the cascade at params.CascadePath.
func New(params detector.Params) (*Detector, error) {
	if _, err := os.Stat(params.CascadePath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", detector.ErrCascadeMissing, params.CascadePath, err)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(params.CascadePath) {
		classifier.Close()
		return nil, fmt.Errorf("%w: %s", detector.ErrCascadeInvalid, params.CascadePath)
	}

	return &Detector{classifier: classifier, params: params}, nil
}

// Detect converts img to grayscale and runs the cascade over it.
func (d *Detector) Detect(img image.Image) ([]facebox.Box, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to Mat: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, nil
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	minSize := image.Pt(d.params.MinSize, d.params.MinSize)
	rects := d.classifier.DetectMultiScaleWithParams(
		gray,
		d.params.ScaleFactor,
		d.params.MinNeighbors,
		0,
		minSize,
		image.Pt(0, 0),
	)

	boxes := make([]facebox.Box, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, facebox.FromRect(r))
	}
	return boxes, nil
}

// Close releases the native classifier.
func (d *Detector) Close() error {
	var err error
	d.closeOnce.Do(func() {
		err = d.classifier.Close()
	})
	return err
}
