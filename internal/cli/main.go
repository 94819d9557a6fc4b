package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "prclips <project.xml>",
		Short:        "List the stock clips used in an editor project export",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "out", "Output directory")
	root.Flags().String("format", "csv", "Output format: csv, json or table")
	root.Flags().Int("fps", 0, "Timeline frame rate (default from config, 25)")
	root.Flags().Bool("nested", false, "Expand nested sequences into their parent clips")
	root.Flags().Bool("sort", false, "Sort clips by their earliest timecode")
	root.Flags().Bool("stdout", false, "Write the report to stdout instead of a file")

	// Hidden tuning flag (internal)
	root.Flags().Int("max-depth", 0, "Max nested sequence depth")
	_ = root.Flags().MarkHidden("max-depth")

	root.AddCommand(newServeCmd())
	return root
}
