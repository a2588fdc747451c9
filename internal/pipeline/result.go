package pipeline

import "fmt"

// Result is the terminal state of a single input file.
type Result int

const (
	Processed Result = iota
	SkippedNonImage
	SkippedDuplicate
	SkippedNoMatchPattern // informational, such files are still processed under their stem
	ErrorRead
	ErrorZeroDimension
	ErrorWrite
)

var resultNames = map[Result]string{
	Processed:             "processed",
	SkippedNonImage:       "skipped_non_image",
	SkippedDuplicate:      "skipped_duplicate",
	SkippedNoMatchPattern: "skipped_no_match_pattern",
	ErrorRead:             "error_read",
	ErrorZeroDimension:    "error_zero_dimension",
	ErrorWrite:            "error_write",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("result(%d)", int(r))
}

// Skipped reports whether r counts towards the skip counter.
func (r Result) Skipped() bool {
	return r == SkippedNonImage || r == SkippedDuplicate || r == SkippedNoMatchPattern
}

// Failed reports whether r counts towards the error counter.
func (r Result) Failed() bool {
	return r == ErrorRead || r == ErrorZeroDimension || r == ErrorWrite
}

// Outcome describes what happened to one input file.
type Outcome struct {
	File    string // input file name
	Target  string // output file name, empty for non-images
	Result  Result
	Matched bool // file name followed the FirstName.LastName convention
	Faces   int  // number of faces the detector reported
	Cropped bool // false when the whole image was used
	Resized bool
	Cause   string // probable cause for skips and errors
	Err     error  // *FileError for failed files
}

// FileError is a per-file failure. It never aborts a run.
type FileError struct {
	File   string
	Result Result
	Cause  string
	Err    error
}

func (e *FileError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.File, e.Result)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Cause != "" {
		msg += " (" + e.Cause + ")"
	}
	return msg
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// fail marks o as failed with result r.
func (o *Outcome) fail(r Result, cause string, err error) {
	o.Result = r
	o.Cause = cause
	o.Err = &FileError{File: o.File, Result: r, Cause: cause, Err: err}
}

// Summary holds the counters reported at the end of a run.
type Summary struct {
	Total     int // files in the input directory
	Processed int
	Skipped   int
	Errors    int
	Removed   int // output files pruned because they exist in the reference directory
	Unmatched int // images that did not follow the naming convention and kept their stem
	ByResult  map[Result]int
}

func (s *Summary) add(o Outcome) {
	if s.ByResult == nil {
		s.ByResult = make(map[Result]int)
	}
	s.ByResult[o.Result]++
	switch {
	case o.Result == Processed:
		s.Processed++
	case o.Result.Skipped():
		s.Skipped++
	case o.Result.Failed():
		s.Errors++
	}
}
