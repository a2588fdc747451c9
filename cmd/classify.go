package cmd

import (
	"fmt"

	"github.com/S2G-Investments/headshot-processor/internal/naming"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <filename>...",
	Short: "Show the output name each file would get",
	Long: `Show how file names are mapped to output names without touching any files.

Examples:
  headshots classify Jane.Doe.png bob_headshot.jpg notes.txt
  headshots classify --fold-diacritics Jiří.Novák.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().Bool("fold-diacritics", false, "Strip accents before matching names")
}

func runClassify(cmd *cobra.Command, args []string) error {
	fold := mustGetBool(cmd, "fold-diacritics")

	rows := make([][]string, 0, len(args))
	for _, arg := range args {
		name := arg
		if fold {
			name = naming.FoldDiacritics(name)
		}
		c := naming.Classify(name)

		target, pattern, image := c.Target(), "no", "no"
		if c.Matched {
			pattern = "yes"
		}
		if c.Supported() {
			image = "yes"
		} else {
			target = "-"
		}
		rows = append(rows, []string{arg, target, pattern, image})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderClassifications(rows))
	return nil
}
