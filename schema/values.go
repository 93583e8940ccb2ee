package schema

import "github.com/teranos/typedoc/errors"

// Values holds the validated fields of a record being built, keyed by
// field name. Absent optional fields hold their default.
type Values map[string]any

// Get returns the value of a field.
func (v Values) Get(name string) any { return v[name] }

// Int returns an int field, or 0.
func (v Values) Int(name string) int {
	i, _ := v[name].(int64)
	return int(i)
}

// OptionalInt returns an int field, or nil when absent or null.
func (v Values) OptionalInt(name string) *int {
	i, ok := v[name].(int64)
	if !ok {
		return nil
	}
	n := int(i)
	return &n
}

// String returns a string field, or "".
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// OptionalString returns a string field, or nil when absent or null.
func (v Values) OptionalString(name string) *string {
	s, ok := v[name].(string)
	if !ok {
		return nil
	}
	return &s
}

// Bool returns a bool field, or false.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// As returns a field converted to T, or the zero T.
func As[T any](v Values, name string) T {
	t, _ := v[name].(T)
	return t
}

// ListAs returns a list field with every element converted to T, or nil
// for an absent list. It panics when an element is not a T: the field's
// descriptor must only produce T values.
func ListAs[T any](v Values, name string) []T {
	items, ok := v[name].([]any)
	if !ok {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		t, ok := item.(T)
		if !ok {
			panic(errors.AssertionFailedf("%s[%d]: unexpected element type %T", name, i, item))
		}
		out[i] = t
	}
	return out
}
