package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/typedoc/display"
	"github.com/teranos/typedoc/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show typedoc version information",
	Long:  `Display version, build time, commit hash, platform and the supported TypeDoc schema for the typedoc binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := display.FormatFromCommand(cmd)
		if err != nil {
			return err
		}

		info := version.Get()
		out := cmd.OutOrStdout()
		if format != display.FormatText {
			data, err := display.Marshal(format, info)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}

		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		fmt.Fprintf(out, "Reflection kinds: %d\n", info.Schema.ReflectionKinds)
		fmt.Fprintf(out, "Type tags: %s\n", strings.Join(info.Schema.TypeTags, ", "))
		return nil
	},
}

func init() {
	VersionCmd.Flags().String("format", display.FormatText, "Output format: text, json, yaml, toml")
}
