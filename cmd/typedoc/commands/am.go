package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/typedoc/am"
	"github.com/teranos/typedoc/display"
	"github.com/teranos/typedoc/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage typedoc configuration",
	Long: `Display and manage typedoc configuration settings.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (TYPEDOC_* prefix)
3. Project config (am.toml, searched upward from the working directory)
4. User config (~/.typedoc/am.toml)
5. Default values

Examples:
  typedoc am show                       # Show current configuration
  typedoc am show --format json         # Show configuration as JSON
  typedoc am get decode.strict          # Get a specific value
  typedoc am set watch.debounce_ms 500  # Save a value to the user config
  typedoc am where                      # Show where each value comes from
  typedoc am validate                   # Validate current configuration`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., decode.strict, watch.debounce_ms)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a configuration value to ~/.typedoc/am.toml",
	Args:  cobra.ExactArgs(2),
	RunE:  runAmSet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	RunE:  runAmWhere,
}

func init() {
	amShowCmd.Flags().String("format", display.FormatTOML, "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amSetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	format, err := display.FormatFromCommand(cmd)
	if err != nil {
		return err
	}
	if format == display.FormatText {
		fmt.Fprintln(cmd.OutOrStdout(), cfg.String())
		return nil
	}

	data, err := display.Marshal(format, cfg)
	if err != nil {
		return err
	}
	if format != display.FormatJSON {
		fmt.Fprintln(cmd.OutOrStdout(), "# typedoc configuration")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	v := am.GetViper()
	if !v.IsSet(key) {
		return errors.Newf("configuration key %q not found", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.Get(key))
	return nil
}

func runAmSet(cmd *cobra.Command, args []string) error {
	value, err := am.ParseValue(args[0], args[1])
	if err != nil {
		return err
	}
	path := am.UserConfigPath()
	if path == "" {
		return errors.New("could not determine home directory")
	}
	if err := am.SetValue(path, args[0], value); err != nil {
		return err
	}
	am.Reset()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %v (%s)\n", pterm.Green("✓"), args[0], value, path)
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), pterm.Green("✓ Configuration is valid"))
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.Introspect()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintf(out, "  2. [USER]     %s\n", am.UserConfigPath())
	fmt.Fprintln(out, "  3. [PROJECT]  ./am.toml (searches up directories)")
	fmt.Fprintf(out, "  4. [ENV]      %s_* environment variables\n", am.EnvPrefix)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Active configuration:")
	for _, s := range intro.Settings {
		origin := string(s.Source)
		if s.SourcePath != "" && s.Source != am.SourceDefault {
			origin += " " + s.SourcePath
		}
		fmt.Fprintf(out, "  %-22s %-8v %s\n", s.Key, s.Value, pterm.Gray(strings.TrimSpace(origin)))
	}
	return nil
}
