package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/S2G-Investments/headshot-processor/internal/facebox"
	"github.com/S2G-Investments/headshot-processor/internal/imageio"
	"github.com/S2G-Investments/headshot-processor/internal/logging"
	"golang.org/x/image/bmp"
)

// fakeDetector returns boxes chosen by a callback and counts invocations.
type fakeDetector struct {
	detect func(img image.Image) []facebox.Box
	err    error
	calls  int
	closed bool
}

func (f *fakeDetector) Detect(img image.Image) ([]facebox.Box, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.detect == nil {
		return nil, nil
	}
	return f.detect(img), nil
}

func (f *fakeDetector) Close() error {
	f.closed = true
	return nil
}

func fixedBoxes(boxes ...facebox.Box) *fakeDetector {
	return &fakeDetector{detect: func(image.Image) []facebox.Box { return boxes }}
}

type testDirs struct {
	input, output, reference string
}

func newTestDirs(t *testing.T) testDirs {
	t.Helper()
	root := t.TempDir()
	d := testDirs{
		input:     filepath.Join(root, "headshots"),
		output:    filepath.Join(root, "processed_headshots"),
		reference: filepath.Join(root, "existing_processed_headshots"),
	}
	for _, dir := range []string{d.input, d.reference} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func (d testDirs) options() Options {
	return Options{
		InputDir:     d.input,
		OutputDir:    d.output,
		ReferenceDir: d.reference,
		Padding:      facebox.Padding{Factor: 0.4, Margin: 5},
		TargetWidth:  300,
		Encode:       imageio.EncodeOptions{JPEGQuality: 90},
		Cleanup:      true,
	}
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: uint8((x + y) % 256), A: 255})
		}
	}
	return img
}

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	img := gradient(w, h)
	var err error
	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(&buf, img)
	case ".bmp":
		err = bmp.Encode(&buf, img)
	default:
		err = jpeg.Encode(&buf, img, nil)
	}
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readSize(t *testing.T, path string) (int, int) {
	t.Helper()
	img, _, err := imageio.Read(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	snap, err := TakeSnapshot(dir)
	if err != nil {
		t.Fatal(err)
	}
	return snap.Names()
}

func newProcessor(t *testing.T, opts Options, det *fakeDetector) *Processor {
	t.Helper()
	p, err := New(opts, det, logging.NewNop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return p
}
