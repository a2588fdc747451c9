// Package naming derives output file names for headshots.
//
// Headshots are expected to be named "FirstName.LastName.<anything>". Files that follow the
// convention are renamed to exactly "FirstName.LastName" plus a normalized extension, other
// files keep their stem.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

var namePattern = regexp.MustCompile(`^([A-Z][a-z]+)\.([A-Z][a-zA-Z]+)\..*`)

// supportedExtensions are the lowercase extensions (without the dot) considered images.
var supportedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"bmp":  {},
	"tiff": {},
}

// Classification is the result of classifying an input file name.
type Classification struct {
	Original  string // file name as found in the input directory
	BaseName  string // "First.Last" when Matched, otherwise the original stem
	Ext       string // normalized extension including the leading dot
	Matched   bool
	FirstName string
	LastName  string
}

// Target returns the output file name.
func (c Classification) Target() string {
	return c.BaseName + c.Ext
}

// Supported reports whether the original extension belongs to a supported image format.
func (c Classification) Supported() bool {
	return IsSupported(c.Original)
}

// Classify derives the output name of filename. It has no side effects.
func Classify(filename string) Classification {
	ext := filepath.Ext(filename)
	c := Classification{
		Original: filename,
		BaseName: strings.TrimSuffix(filename, ext),
		Ext:      NormalizeExt(ext),
	}

	if m := namePattern.FindStringSubmatch(filename); m != nil {
		c.Matched = true
		c.FirstName = m[1]
		c.LastName = m[2]
		c.BaseName = m[1] + "." + m[2]
	}
	return c
}

// NormalizeExt rewrites .jpeg and .png (any case) to .jpg and returns every other
// extension unchanged.
func NormalizeExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpeg", ".png":
		return ".jpg"
	}
	return ext
}

// IsSupported reports whether filename has one of the supported image extensions.
func IsSupported(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	_, ok := supportedExtensions[ext]
	return ok
}
