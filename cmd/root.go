package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "headshots",
	Short: "A CLI tool for cropping, resizing and renaming headshots",
	Long: `Headshots batch-processes a directory of portrait photos. For every image it
detects the primary face, crops around it with padding, resizes the result to a
standard width and saves it as FirstName.LastName.jpg in the output directory.

Files already present in the reference directory of finalized headshots are skipped,
and copies of them found in the output directory are removed after the run.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $HEADSHOTS_CONFIG)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
