package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/logger"
)

// CheckCmd decodes documents and reports which ones fail
var CheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Check that TypeDoc JSON documents decode",
	Long: `Decode each document and report OK or FAIL.

Failures show the error, the field path it was found at and any hints.
Exits non-zero when any document fails.

Examples:
  typedoc check docs.json
  typedoc check packages/*/docs.json --lenient`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	addDecodeFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if failed := checkFiles(cmd, args, optionsFromConfig(cmd, cfg)); failed > 0 {
		return errors.Newf("%d of %d documents failed", failed, len(args))
	}
	return nil
}

// checkFiles decodes every path and prints one status line each. It
// returns the number of failures.
func checkFiles(cmd *cobra.Command, paths []string, opts runOptions) int {
	out := cmd.OutOrStdout()
	v := verbosity(cmd)
	failed := 0
	for i, path := range paths {
		if logger.ShouldOutput(v, logger.OutputProgress) {
			fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(paths), path)
		}
		res, err := decodeFile(commandContext(cmd), path, opts)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s\n%s\n", pterm.Red("FAIL"), path, formatError(err))
			continue
		}
		fmt.Fprintf(out, "%s %s (%d nodes)\n", pterm.Green("OK"), path, res.Summary.Nodes)
	}
	return failed
}
