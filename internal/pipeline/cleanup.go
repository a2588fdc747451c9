package pipeline

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

// Cleanup deletes every file in outputDir whose name is in reference and returns how many
// were removed. It does nothing when reference is empty or outputDir does not exist.
// In dry-run mode matching files are counted and logged but kept.
func Cleanup(outputDir string, reference Snapshot, dryRun bool, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if reference.Len() == 0 {
		logger.Debug("Reference set is empty, skipping cleanup")
		return 0, nil
	}

	output, err := TakeSnapshot(outputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("Output directory does not exist, skipping cleanup", "dir", outputDir)
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, name := range output.Names() {
		if !reference.Has(name) {
			continue
		}
		if dryRun {
			logger.Info("Dry run, would remove duplicate of reference file", "file", name)
			removed++
			continue
		}
		if err := os.Remove(filepath.Join(outputDir, name)); err != nil {
			logger.Error("Failed to remove duplicate of reference file", "file", name, "error", err,
				"cause", "output directory is read-only or the file is locked")
			continue
		}
		logger.Info("Removed duplicate of reference file", "file", name)
		removed++
	}
	return removed, nil
}
