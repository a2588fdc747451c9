package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/S2G-Investments/headshot-processor/internal/constants"
	"github.com/S2G-Investments/headshot-processor/internal/facebox"
	"github.com/S2G-Investments/headshot-processor/internal/imageio"
	"github.com/S2G-Investments/headshot-processor/internal/logging"
	"github.com/S2G-Investments/headshot-processor/internal/pipeline"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Crop, resize and rename every headshot in the input directory",
	Long: `Process every image in the input directory.

For each file the target name is derived first (FirstName.LastName.jpg when the name
follows the convention, the original name otherwise). Files whose target name already
exists in the reference directory are skipped without being read. The remaining
images are cropped around the largest detected face, resized to the target width and
written to the output directory. Afterwards, output files that also exist in the
reference directory are deleted.

Every run writes a timestamped log file; the console mirrors it at info level.

Examples:
  # Process ./headshots into ./processed_headshots
  headshots process

  # Use other directories and the pure Go detector
  headshots process --input raw --output out --detector pigo --cascade ./facefinder

  # See what would happen without touching the output directory
  headshots process --dry-run`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	addDirFlags(processCmd)
	processCmd.Flags().String("detector", "", "Face detector backend: haar or pigo")
	processCmd.Flags().String("cascade", "", "Cascade file for the selected detector backend")
	processCmd.Flags().Int("width", 0, "Output width in pixels")
	processCmd.Flags().String("log-dir", "", "Directory for the run log file")
	processCmd.Flags().String("log-level", "", "Console log level: debug, info, warn, error")
	processCmd.Flags().Bool("progress", false, "Show a progress bar (console logging is reduced to warnings)")
	processCmd.Flags().Bool("no-cleanup", false, "Keep output files that duplicate the reference directory")
	processCmd.Flags().Bool("fold-diacritics", false, "Strip accents before matching names (Jiří.Novák -> Jiri.Novak)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dryRun := mustGetBool(cmd, "dry-run")
	showProgress := mustGetBool(cmd, "progress")

	consoleLevel := cfg.Log.Level
	if showProgress {
		consoleLevel = "warn"
	}

	runLog, err := logging.Open(logging.Options{
		Dir:          cfg.Log.Dir,
		Prefix:       constants.LogFilePrefix,
		ConsoleLevel: consoleLevel,
		Console:      cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer runLog.Close()

	logger := runLog.Logger.With("run_id", uuid.NewString())

	params := cfg.Detector.Params()
	det, err := newDetector(cfg.Detector)
	if err != nil {
		logger.Error("Failed to load face detector",
			"backend", cfg.Detector.Backend,
			"cascade", params.CascadePath,
			"error", err,
			"cause", "cascade file is missing or corrupt, install the OpenCV data files or pass --cascade")
		return fmt.Errorf("failed to load face detector: %w", err)
	}
	defer det.Close()

	var bar *progressbar.ProgressBar
	opts := pipeline.Options{
		InputDir:     cfg.Dirs.Input,
		OutputDir:    cfg.Dirs.Output,
		ReferenceDir: cfg.Dirs.Reference,
		Padding: facebox.Padding{
			Factor: cfg.Crop.PaddingFactor,
			Margin: cfg.Crop.ExtraMargin,
		},
		TargetWidth:    cfg.Crop.TargetWidth,
		Encode:         imageio.EncodeOptions{JPEGQuality: cfg.Output.JPEGQuality},
		FoldDiacritics: cfg.Naming.FoldDiacritics,
		DryRun:         dryRun,
		Cleanup:        cfg.Output.Cleanup,
		OnFile: func(pipeline.Outcome) {
			if bar != nil {
				bar.Add(1)
			}
		},
	}

	proc, err := pipeline.New(opts, det, logger)
	if err != nil {
		logger.Error("Cannot start processing", "error", err,
			"cause", "check that the input directory exists and the output directory is writable")
		return err
	}

	if showProgress {
		bar = newProgressBar(proc.Input().Len())
	}

	summary := proc.Run()
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	logSummary(logger, summary)
	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
	fmt.Fprintf(cmd.OutOrStdout(), "Processing complete. See log file: %s\n", runLog.Path)
	return nil
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Processing headshots"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)
}

func logSummary(logger *slog.Logger, s pipeline.Summary) {
	logger.Info("Processing summary",
		"total_files", s.Total,
		"processed", s.Processed,
		"skipped", s.Skipped,
		"errors", s.Errors,
		"removed_by_cleanup", s.Removed,
		"kept_original_name", s.Unmatched,
	)
}
