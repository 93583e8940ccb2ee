package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/typedoc/logger"
	"github.com/teranos/typedoc/watch"
)

// WatchCmd re-checks a document whenever it is written
var WatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-check a TypeDoc JSON document on every write",
	Long: `Check the document, then check it again each time it is written.
Bursts of writes are debounced (watch.debounce_ms, default 300).

Examples:
  typedoc watch docs.json
  typedoc watch docs.json --debounce 1s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	WatchCmd.Flags().Duration("debounce", 0, "Quiet period before re-checking (overrides watch.debounce_ms)")
	addDecodeFlags(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := optionsFromConfig(cmd, cfg)

	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	if d, _ := cmd.Flags().GetDuration("debounce"); d > 0 {
		debounce = d
	}

	w, err := watch.New(args[0], debounce)
	if err != nil {
		return err
	}
	defer w.Stop()
	w.SetMaxFiresPerMinute(cfg.Watch.MaxChecksPerMinute)

	checkFiles(cmd, args, opts)
	w.OnChange(func(path string) error {
		checkFiles(cmd, args, opts)
		return nil
	})
	w.Start()

	logger.Infow("watching document",
		logger.FieldFile, w.Path(),
		logger.FieldDebounceMS, debounce.Milliseconds())
	fmt.Fprintln(cmd.OutOrStdout(), pterm.Gray(fmt.Sprintf("watching %s (Ctrl+C to stop)", args[0])))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case <-sig:
	case <-commandContext(cmd).Done():
	}
	return nil
}
