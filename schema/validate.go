package schema

import (
	"strconv"

	"github.com/teranos/typedoc/errors"
)

// Validate checks raw against d and returns the coerced value.
//
// Failures are *ValidationError values marked with errors.ErrValidation.
// Node descriptors may also surface the errors of the records they decode.
// Input summaries list at most DefaultSummaryKeys mapping keys.
func Validate(d Descriptor, raw any) (any, error) {
	return validate(d, raw, DefaultSummaryKeys)
}

func validate(d Descriptor, raw any, maxKeys int) (any, error) {
	switch d := d.(type) {
	case Primitive:
		return validatePrimitive(d, raw, maxKeys)
	case Enum:
		return validateEnum(d, raw, maxKeys)
	case List:
		return validateList(d, raw, maxKeys)
	case Map:
		return validateMap(d, raw, maxKeys)
	case Union:
		return validateUnion(d, raw, maxKeys)
	case Node:
		return validateNode(d, raw, maxKeys)
	case anyDescriptor:
		return raw, nil
	case nil:
		return nil, errors.AssertionFailedf("nil descriptor")
	default:
		return nil, errors.AssertionFailedf("unsupported descriptor %T (%s)", d, d.String())
	}
}

// validatePrimitive never coerces across kinds: a string is never an int
// and an int is never a float.
func validatePrimitive(p Primitive, raw any, maxKeys int) (any, error) {
	switch p.Kind {
	case KindInt:
		switch v := raw.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		}
	case KindFloat:
		if v, ok := raw.(float64); ok {
			return v, nil
		}
	case KindString:
		if v, ok := raw.(string); ok {
			return v, nil
		}
	case KindBool:
		if v, ok := raw.(bool); ok {
			return v, nil
		}
	case KindNull:
		if raw == nil {
			return nil, nil
		}
	}
	return nil, mismatch(p, raw, maxKeys)
}

func validateEnum(e Enum, raw any, maxKeys int) (any, error) {
	if e.Parse != nil {
		if v, ok := e.Parse(raw); ok {
			return v, nil
		}
	}
	return nil, mismatch(e, raw, maxKeys)
}

func validateList(l List, raw any, maxKeys int) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, mismatch(l, raw, maxKeys)
	}
	out := make([]any, len(items))
	for i, item := range items {
		v, err := validate(l.Elem, item, maxKeys)
		if err != nil {
			return nil, wrapField("", "["+strconv.Itoa(i)+"]", l.Elem, item, maxKeys, err)
		}
		out[i] = v
	}
	return out, nil
}

func validateMap(m Map, raw any, maxKeys int) (any, error) {
	entries, ok := raw.(map[string]any)
	if !ok {
		return nil, mismatch(m, raw, maxKeys)
	}
	out := make(map[string]any, len(entries))
	for k, entry := range entries {
		v, err := validate(m.Value, entry, maxKeys)
		if err != nil {
			return nil, wrapField("", "["+strconv.Quote(k)+"]", m.Value, entry, maxKeys, err)
		}
		out[k] = v
	}
	return out, nil
}

// validateUnion returns the first alternative that succeeds. When none does,
// every attempt is kept on the aggregated error. A null alternative is not
// attempted for a non-null value; when that leaves a single attempt its
// failure is returned as is, so the field path stays reachable and the
// enclosing field error does not repeat the input.
func validateUnion(u Union, raw any, maxKeys int) (any, error) {
	attempts := make([]error, 0, len(u.Alternatives))
	for _, alt := range u.Alternatives {
		if raw != nil && alt == Descriptor(Null) {
			continue
		}
		v, err := validate(alt, raw, maxKeys)
		if err == nil {
			return v, nil
		}
		attempts = append(attempts, err)
	}
	if len(attempts) == 1 {
		return nil, attempts[0]
	}
	return nil, errors.Mark(&ValidationError{
		Expected:     u.String(),
		Got:          kindOf(raw),
		Input:        Summarize(raw, maxKeys),
		Alternatives: attempts,
	}, errors.ErrValidation)
}

func validateNode(n Node, raw any, maxKeys int) (any, error) {
	if n.Accept != nil && n.Accept(raw) {
		return raw, nil
	}
	if n.Decode == nil {
		return nil, mismatch(n, raw, maxKeys)
	}
	v, err := n.Decode(raw)
	if err != nil {
		return nil, err
	}
	if n.Accept != nil && !n.Accept(v) {
		return nil, mismatch(n, v, maxKeys)
	}
	return v, nil
}
