package cmd

import (
	"fmt"

	"github.com/S2G-Investments/headshot-processor/internal/config"
	"github.com/S2G-Investments/headshot-processor/internal/detector"
	"github.com/spf13/cobra"
)

// mustGetBool gets a bool flag value or panics if the flag doesn't exist.
// This is appropriate for flags defined in init() - errors indicate programming bugs.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetInt gets an int flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetString gets a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// addDirFlags registers the directory flags shared by process and cleanup.
func addDirFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "Directory with headshots to process")
	cmd.Flags().String("output", "", "Directory for processed headshots")
	cmd.Flags().String("reference", "", "Directory with already finalized headshots")
	cmd.Flags().Bool("dry-run", false, "Log what would happen without writing or deleting files")
}

// loadConfig loads the configuration and applies every flag the user set explicitly.
// Flags that a command does not define are ignored.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("input") {
		cfg.Dirs.Input = mustGetString(cmd, "input")
	}
	if changed("output") {
		cfg.Dirs.Output = mustGetString(cmd, "output")
	}
	if changed("reference") {
		cfg.Dirs.Reference = mustGetString(cmd, "reference")
	}
	if changed("detector") {
		cfg.Detector.Backend = mustGetString(cmd, "detector")
	}
	if changed("cascade") {
		if cfg.Detector.Backend == detector.BackendPigo {
			cfg.Detector.PigoCascadePath = mustGetString(cmd, "cascade")
		} else {
			cfg.Detector.CascadePath = mustGetString(cmd, "cascade")
		}
	}
	if changed("width") {
		cfg.Crop.TargetWidth = mustGetInt(cmd, "width")
	}
	if changed("log-dir") {
		cfg.Log.Dir = mustGetString(cmd, "log-dir")
	}
	if changed("log-level") {
		cfg.Log.Level = mustGetString(cmd, "log-level")
	}
	if changed("no-cleanup") && mustGetBool(cmd, "no-cleanup") {
		cfg.Output.Cleanup = false
	}
	if changed("fold-diacritics") {
		cfg.Naming.FoldDiacritics = mustGetBool(cmd, "fold-diacritics")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
