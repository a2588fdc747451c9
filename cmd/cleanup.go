package cmd

import (
	"fmt"

	"github.com/S2G-Investments/headshot-processor/internal/logging"
	"github.com/S2G-Investments/headshot-processor/internal/pipeline"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove output files that already exist in the reference directory",
	Long: `Delete every file in the output directory whose name also appears in the
reference directory. This is the same pass "process" runs at the end.

Examples:
  headshots cleanup
  headshots cleanup --output out --reference final --dry-run`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	addDirFlags(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dryRun := mustGetBool(cmd, "dry-run")
	logger := logging.New(cmd.OutOrStdout(), cfg.Log.Level)

	reference, err := pipeline.TakeSnapshot(cfg.Dirs.Reference)
	if err != nil {
		return fmt.Errorf("failed to read reference directory: %w", err)
	}

	removed, err := pipeline.Cleanup(cfg.Dirs.Output, reference, dryRun, logger)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	verb := "Removed"
	if dryRun {
		verb = "Would remove"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d file(s) from %s\n", verb, removed, cfg.Dirs.Output)
	return nil
}
