// Package pipeline runs the headshot batch: classify each input file, skip names already in
// the reference directory, crop around the largest detected face, resize, write, and finally
// prune output files that duplicate the reference set.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/S2G-Investments/headshot-processor/internal/detector"
	"github.com/S2G-Investments/headshot-processor/internal/facebox"
	"github.com/S2G-Investments/headshot-processor/internal/imageio"
	"github.com/S2G-Investments/headshot-processor/internal/logging"
	"github.com/S2G-Investments/headshot-processor/internal/naming"
	"github.com/S2G-Investments/headshot-processor/internal/transform"
)

var (
	// ErrInputMissing is returned when the input directory does not exist.
	ErrInputMissing = errors.New("input directory not found")
	// ErrInputUnreadable is returned when the input directory exists but cannot be listed.
	ErrInputUnreadable = errors.New("input directory cannot be listed")
	// ErrOutputUnavailable is returned when the output directory cannot be created.
	ErrOutputUnavailable = errors.New("output directory cannot be created")
	// ErrNoDetector is returned when New is called without a detector.
	ErrNoDetector = errors.New("face detector is required")
)

// Options configures a Processor.
type Options struct {
	InputDir     string
	OutputDir    string
	ReferenceDir string

	Padding        facebox.Padding
	TargetWidth    int
	Encode         imageio.EncodeOptions
	FoldDiacritics bool
	DryRun         bool // classify, detect and crop but never write or delete
	Cleanup        bool

	// OnFile is called after each input file reaches its terminal state.
	OnFile func(Outcome)
}

// Processor holds the state of one run. It is not safe for concurrent use.
type Processor struct {
	opts      Options
	detector  detector.Detector
	logger    *slog.Logger
	input     Snapshot
	reference Snapshot
	written   map[string]string // target name -> input file that produced it
}

// New checks the fatal preconditions of a run and snapshots the input and reference
// directories. The output directory is created unless running dry.
func New(opts Options, det detector.Detector, logger *slog.Logger) (*Processor, error) {
	if det == nil {
		return nil, ErrNoDetector
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	input, err := TakeSnapshot(opts.InputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, opts.InputDir)
		}
		return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}

	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
		}
	}

	reference, err := loadReference(opts.ReferenceDir, logger)
	if err != nil {
		return nil, err
	}

	return &Processor{
		opts:      opts,
		detector:  det,
		logger:    logger,
		input:     input,
		reference: reference,
		written:   make(map[string]string),
	}, nil
}

// loadReference snapshots the reference directory. A missing directory is an empty set.
func loadReference(dir string, logger *slog.Logger) (Snapshot, error) {
	if dir == "" {
		return NewSnapshot("", nil), nil
	}
	ref, err := TakeSnapshot(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Reference directory not found, no files will be skipped as duplicates",
				"dir", dir)
			return NewSnapshot(dir, nil), nil
		}
		return Snapshot{}, fmt.Errorf("failed to read reference directory: %w", err)
	}
	return ref, nil
}

// Input returns the input snapshot taken by New.
func (p *Processor) Input() Snapshot {
	return p.input
}

// Reference returns the reference snapshot taken by New.
func (p *Processor) Reference() Snapshot {
	return p.reference
}

// Run processes every input file in name order and then runs the cleanup pass.
func (p *Processor) Run() Summary {
	summary := Summary{Total: p.input.Len()}

	p.logger.Info("Starting headshot processing",
		"input", p.opts.InputDir,
		"output", p.opts.OutputDir,
		"reference", p.opts.ReferenceDir,
		"input_files", p.input.Len(),
		"reference_files", p.reference.Len(),
		"dry_run", p.opts.DryRun,
	)

	for _, name := range p.input.Names() {
		o := p.ProcessFile(name)
		summary.add(o)
		if !o.Matched && o.Target != "" {
			summary.Unmatched++
		}
		if p.opts.OnFile != nil {
			p.opts.OnFile(o)
		}
	}

	if p.opts.Cleanup {
		removed, err := Cleanup(p.opts.OutputDir, p.reference, p.opts.DryRun, p.logger)
		if err != nil {
			p.logger.Error("Cleanup failed", "dir", p.opts.OutputDir, "error", err,
				"cause", "output directory could not be listed")
		}
		summary.Removed = removed
	}

	return summary
}

// ProcessFile runs the per-file pipeline for name, a file in the input directory.
func (p *Processor) ProcessFile(name string) Outcome {
	log := p.logger.With("file", name)
	o := Outcome{File: name}

	classified := name
	if p.opts.FoldDiacritics {
		classified = naming.FoldDiacritics(name)
	}
	c := naming.Classify(classified)
	o.Matched = c.Matched

	if !c.Supported() {
		o.Result = SkippedNonImage
		o.Cause = "extension is not jpg, jpeg, png, gif, bmp or tiff"
		log.Info("Skipping non-image file", "cause", o.Cause)
		return o
	}
	if c.BaseName == "" {
		o.Result = SkippedNonImage
		o.Cause = "file name has an extension but no name"
		log.Info("Skipping file", "cause", o.Cause)
		return o
	}

	o.Target = c.Target()
	if !c.Matched {
		log.Info("Filename does not match FirstName.LastName pattern, keeping original name",
			"target", o.Target, "cause", "name is not like Jane.Doe.jpg")
	}

	if p.reference.Has(o.Target) {
		o.Result = SkippedDuplicate
		o.Cause = "already present in " + p.reference.Dir
		log.Info("Skipping already processed headshot", "target", o.Target, "cause", o.Cause)
		return o
	}

	img, format, err := imageio.Read(filepath.Join(p.opts.InputDir, name))
	if err != nil {
		o.fail(ErrorRead, "file is corrupt, truncated or not an image despite its extension", err)
		log.Error("Failed to read image", "error", err, "cause", o.Cause)
		return o
	}
	log.Debug("Decoded image", "format", format, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	cropped := p.cropToFace(img, log, &o)
	if b := cropped.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		o.fail(ErrorZeroDimension, "image or crop has no pixels", nil)
		log.Error("Cropped image has a zero dimension", "width", b.Dx(), "height", b.Dy(), "cause", o.Cause)
		return o
	}

	out, err := transform.ResizeToWidth(cropped, p.opts.TargetWidth)
	if err != nil {
		log.Warn("Skipping resize, keeping the cropped image", "error", err,
			"cause", "aspect ratio too extreme for the target width")
		out = cropped
	} else {
		o.Resized = true
	}

	outPath := filepath.Join(p.opts.OutputDir, o.Target)
	if p.opts.DryRun {
		o.Result = Processed
		log.Info("Dry run, not writing", "target", o.Target)
		return o
	}
	if prev, ok := p.written[o.Target]; ok {
		log.Warn("Overwriting output written earlier in this run", "target", o.Target, "previous", prev)
	}
	if err := imageio.Write(outPath, out, p.opts.Encode); err != nil {
		o.fail(ErrorWrite, "output directory is not writable, the disk is full or the name is taken by a directory", err)
		log.Error("Failed to write image", "path", outPath, "error", err, "cause", o.Cause)
		return o
	}
	p.written[o.Target] = name

	o.Result = Processed
	b := out.Bounds()
	log.Info("Processed headshot", "target", o.Target, "faces", o.Faces, "width", b.Dx(), "height", b.Dy())
	return o
}

// cropToFace crops img around the largest detected face, or returns img unchanged when
// there is no usable face.
func (p *Processor) cropToFace(img image.Image, log *slog.Logger, o *Outcome) image.Image {
	boxes, err := p.detector.Detect(img)
	if err != nil {
		log.Warn("Face detection failed, using whole image", "error", err)
		return img
	}
	o.Faces = len(boxes)

	face, ok := facebox.Largest(boxes)
	if !ok {
		log.Warn("No face detected, using whole image",
			"cause", "face may be turned away, too small or poorly lit")
		return img
	}
	if len(boxes) > 1 {
		log.Warn("Multiple faces detected, using the largest one", "faces", len(boxes),
			"x", face.X, "y", face.Y, "w", face.W, "h", face.H)
	}

	b := img.Bounds()
	r, ok := facebox.PaddedCrop(face, b.Dx(), b.Dy(), p.opts.Padding)
	if !ok {
		log.Warn("Crop box is degenerate, using whole image",
			"x", face.X, "y", face.Y, "w", face.W, "h", face.H,
			"cause", "detector reported a face outside the image")
		return img
	}

	o.Cropped = true
	return transform.Crop(img, r)
}
