// Package input reads TypeDoc JSON documents into the raw value model the
// decoder validates: nil, bool, string, int64, float64, []any and
// map[string]any.
package input

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	jsonc "github.com/muhammadmuzzammil1998/jsonc"

	"github.com/teranos/typedoc/errors"
)

// Decode parses JSON text into raw values. Comments are allowed.
// Numbers written without a fraction or exponent become int64, all other
// numbers float64.
func Decode(data []byte) (any, error) {
	clean := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(clean)) == 0 {
		return nil, errors.New("empty document")
	}

	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the top-level value")
	}
	return Normalize(v), nil
}

// Normalize converts json.Number leaves to int64 or float64, recursively.
// Other values are returned unchanged; slices and maps are rebuilt.
func Normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		return number(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = Normalize(item)
		}
		return out
	default:
		return v
	}
}

func number(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return i
		}
	}
	// Out of range values come back as ±Inf.
	f, _ := n.Float64()
	return f
}

// ReadFile reads and decodes a document, optionally checking that its root
// looks like a TypeDoc project before the full decode runs.
func ReadFile(path string, checkEnvelope bool) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	if checkEnvelope {
		if err := CheckEnvelope(doc); err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
	}
	return doc, nil
}
