package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Snapshot is the sorted list of regular files in a directory at one point in time.
type Snapshot struct {
	Dir   string
	names []string
	index map[string]struct{}
}

// TakeSnapshot lists the regular files in dir. Subdirectories are ignored.
// The error wraps os.ErrNotExist when dir does not exist.
func TakeSnapshot(dir string) (Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Snapshot{Dir: dir}, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			// Follow symlinks so linked headshots still count.
			if e.Type()&os.ModeSymlink == 0 {
				continue
			}
			info, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, e.Name())
	}
	return NewSnapshot(dir, names), nil
}

// NewSnapshot builds a snapshot from a list of names.
func NewSnapshot(dir string, names []string) Snapshot {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	index := make(map[string]struct{}, len(sorted))
	for _, n := range sorted {
		index[n] = struct{}{}
	}
	return Snapshot{Dir: dir, names: sorted, index: index}
}

// Has reports whether name was present when the snapshot was taken.
func (s Snapshot) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns the file names in sorted order.
func (s Snapshot) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of files.
func (s Snapshot) Len() int {
	return len(s.names)
}
