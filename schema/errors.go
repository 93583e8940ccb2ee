package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teranos/typedoc/errors"
)

// DefaultSummaryKeys is how many mapping keys an input summary lists.
const DefaultSummaryKeys = 8

const maxScalarSummary = 80

// ValidationError reports a raw value that does not satisfy its descriptor.
//
// Leaf failures carry Expected/Got/Input. Field failures additionally name
// the declaring record (Owner) and the field, and wrap the nested failure.
// List elements use "[i]" as Field.
type ValidationError struct {
	Owner        string
	Field        string
	Expected     string
	Got          string
	Input        string
	Alternatives []error

	cause error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if loc := e.Location(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	if e.cause != nil {
		fmt.Fprintf(&b, "%s: input %s: %v", e.Expected, e.Input, e.cause)
		return b.String()
	}
	fmt.Fprintf(&b, "expected %s, got %s", e.Expected, e.Got)
	if e.Input != "" {
		fmt.Fprintf(&b, " (input %s)", e.Input)
	}
	if len(e.Alternatives) > 0 {
		msgs := make([]string, len(e.Alternatives))
		for i, alt := range e.Alternatives {
			msgs[i] = alt.Error()
		}
		fmt.Fprintf(&b, "; tried [%s]", strings.Join(msgs, "; "))
	}
	return b.String()
}

// Unwrap returns the nested failure of a field error.
func (e *ValidationError) Unwrap() error { return e.cause }

// Location renders Owner.Field, or just Field for list elements.
func (e *ValidationError) Location() string {
	switch {
	case e.Owner != "" && e.Field != "":
		return e.Owner + "." + e.Field
	default:
		return e.Field
	}
}

// UnsupportedKindError reports a discriminator with no supported node type.
type UnsupportedKindError struct {
	Family        string
	Discriminator string
	Tag           string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported %s kind %q (%s)", e.Family, e.Tag, e.Discriminator)
}

// ConstructionError reports a record that rejected its validated field set.
type ConstructionError struct {
	Record string
	Reason string
	Fields []string

	cause error
}

func (e *ConstructionError) Error() string {
	msg := e.Record + ": " + e.Reason
	if len(e.Fields) > 0 {
		msg += ": " + strings.Join(e.Fields, ", ")
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap returns the error raised by the record's builder, if any.
func (e *ConstructionError) Unwrap() error { return e.cause }

func mismatch(d Descriptor, raw any, maxKeys int) error {
	return errors.Mark(&ValidationError{
		Expected: d.String(),
		Got:      kindOf(raw),
		Input:    Summarize(raw, maxKeys),
	}, errors.ErrValidation)
}

func wrapField(owner, field string, d Descriptor, raw any, maxKeys int, cause error) error {
	return errors.Mark(&ValidationError{
		Owner:    owner,
		Field:    field,
		Expected: d.String(),
		Got:      kindOf(raw),
		Input:    Summarize(raw, maxKeys),
		cause:    cause,
	}, errors.ErrValidation)
}

func unsupported(family, discriminator, tag string, supported []string) error {
	err := errors.Mark(&UnsupportedKindError{
		Family:        family,
		Discriminator: discriminator,
		Tag:           tag,
	}, errors.ErrUnsupportedKind)
	if len(supported) == 0 {
		return err
	}
	return errors.WithHintf(err, "supported %s kinds: %s", family, strings.Join(supported, ", "))
}

func construction(record, reason string, fields []string, cause error) error {
	return errors.Mark(&ConstructionError{
		Record: record,
		Reason: reason,
		Fields: fields,
		cause:  cause,
	}, errors.ErrConstruction)
}

// FieldPath returns the field locations a failure passed through,
// outermost first, e.g. [ContainerReflection.children [0] DeclarationReflection.type].
func FieldPath(err error) []string {
	var path []string
	for c := err; c != nil; c = errors.UnwrapOnce(c) {
		if ve, ok := c.(*ValidationError); ok {
			if loc := ve.Location(); loc != "" {
				path = append(path, loc)
			}
		}
	}
	return path
}

// Summarize renders a raw value for an error message without dumping it.
// Mappings list at most maxKeys sorted keys, lists report their length and
// long strings are cut.
func Summarize(raw any, maxKeys int) string {
	switch v := raw.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if maxKeys > 0 && len(keys) > maxKeys {
			keys = append(keys[:maxKeys], "...")
		}
		return "{[" + strings.Join(keys, ", ") + "]}"
	case []any:
		return fmt.Sprintf("list of len=%d", len(v))
	case string:
		if len(v) > maxScalarSummary {
			v = v[:maxScalarSummary] + "..."
		}
		return fmt.Sprintf("%q", v)
	case nil:
		return "null"
	default:
		s := fmt.Sprintf("%v", v)
		if len(s) > maxScalarSummary {
			s = s[:maxScalarSummary] + "..."
		}
		return s
	}
}
