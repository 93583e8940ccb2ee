// Package display renders command results as text, JSON, YAML or TOML.
package display

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/typedoc/errors"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists the accepted --format values.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat normalizes a --format value.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	switch f {
	case "":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	}
	return "", errors.WithHintf(errors.Newf("unknown output format %q", s),
		"use one of: %s", strings.Join(Formats, ", "))
}

// FormatFromCommand reads the --format flag of cmd or its parents.
// A nil command, or one without the flag, renders text.
func FormatFromCommand(cmd *cobra.Command) (string, error) {
	if cmd == nil {
		return FormatText, nil
	}
	flag := cmd.Flags().Lookup("format")
	if flag == nil {
		return FormatText, nil
	}
	return ParseFormat(flag.Value.String())
}

// MarshalJSON marshals JSON with two-space indentation.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Marshal encodes v in a structured format. Text is not structured; callers
// render it themselves.
func Marshal(format string, v any) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := MarshalJSON(v)
		return data, errors.Wrap(err, "failed to marshal JSON")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, errors.Wrap(err, "failed to marshal YAML")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to marshal YAML")
		}
		return buf.Bytes(), nil
	case FormatTOML:
		data, err := toml.Marshal(v)
		return data, errors.Wrap(err, "failed to marshal TOML")
	default:
		return nil, errors.Newf("format %q is not a structured format", format)
	}
}
