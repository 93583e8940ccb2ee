// Package commands implements the typedoc CLI subcommands.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/teranos/typedoc/errors"
)

// ErrReported is returned by commands that already printed their failure.
// main exits non-zero without printing it again.
var ErrReported = errors.New("failure already reported")

// verbosity returns the -v count of cmd.
func verbosity(cmd *cobra.Command) int {
	if cmd == nil {
		return 0
	}
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
