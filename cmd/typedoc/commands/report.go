package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/schema"
)

// errorType names the decode failure class of err.
func errorType(err error) string {
	switch {
	case errors.IsUnsupportedKindError(err):
		return "unsupported_kind"
	case errors.IsConstructionError(err):
		return "construction"
	case errors.IsValidationError(err):
		return "validation"
	default:
		return "input"
	}
}

func fieldPath(err error) string {
	return strings.Join(schema.FieldPath(err), " > ")
}

// formatError renders a decode failure for the terminal: the message, the
// field path it passed through, then any hints.
func formatError(err error) string {
	var b strings.Builder
	b.WriteString(pterm.Red(err.Error()))

	if path := schema.FieldPath(err); len(path) > 0 {
		fmt.Fprintf(&b, "\n\n%s", pterm.LightCyan("Field path:"))
		for i, loc := range path {
			fmt.Fprintf(&b, "\n  %s%s", strings.Repeat("  ", i), pterm.Yellow(loc))
		}
	}

	if hints := errors.GetAllHints(err); len(hints) > 0 {
		fmt.Fprintf(&b, "\n\n%s", pterm.Green("Hints:"))
		for _, hint := range hints {
			fmt.Fprintf(&b, "\n  • %s", hint)
		}
	}
	return b.String()
}
