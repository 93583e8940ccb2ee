package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/typedoc/am"
	"github.com/teranos/typedoc/cmd/typedoc/commands"
	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/logger"
)

var rootCmd = &cobra.Command{
	Use:   "typedoc",
	Short: "typedoc - Typed decoder for TypeDoc JSON documents",
	Long: `typedoc - Decode TypeDoc JSON output into a typed reflection tree.

Every field is validated against its declared type. Decoding stops at the
first error and reports the field path where it was found.

Available commands:
  decode  - Decode a document and summarize it
  check   - Check that documents decode
  watch   - Re-check a document on every write
  am      - Manage typedoc configuration
  version - Show version information

Examples:
  typedoc decode docs.json --tree
  typedoc check docs.json -v
  typedoc am show`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLog, _ := cmd.Flags().GetBool("json-log")

		if !cmd.Flags().Changed("json-log") {
			if cfg, err := am.Load(); err == nil {
				jsonLog = cfg.Log.JSON
			}
		}
		if err := logger.Initialize(jsonLog, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Write logs to stderr as JSON lines")

	rootCmd.AddCommand(commands.DecodeCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, commands.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
			for _, hint := range errors.GetAllHints(err) {
				fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
			}
		}
		os.Exit(1)
	}
}
