// Package schema validates decoded JSON values against declared field types
// and constructs typed records from them.
//
// A Descriptor states what a raw value must look like. Validate checks a raw
// value against a Descriptor and returns the coerced value. Records declare
// their fields as Descriptors and are materialized lazily by a Registry the
// first time they are constructed. A Family picks the concrete Record for a
// raw object from its discriminator field.
//
// Raw values follow the normalized JSON model: nil, bool, string, int64,
// float64, []any and map[string]any.
package schema

import (
	"fmt"
	"strings"
)

// Shape identifies which validation rule applies to a Descriptor.
type Shape int

const (
	ShapeAny Shape = iota
	ShapePrimitive
	ShapeEnum
	ShapeList
	ShapeMap
	ShapeUnion
	ShapeNode
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeAny:
		return "any"
	case ShapePrimitive:
		return "primitive"
	case ShapeEnum:
		return "enum"
	case ShapeList:
		return "list"
	case ShapeMap:
		return "map"
	case ShapeUnion:
		return "union"
	case ShapeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Descriptor is a declared field type.
type Descriptor interface {
	Shape() Shape
	String() string
}

// PrimitiveKind enumerates the scalar JSON types.
type PrimitiveKind int

const (
	KindInt PrimitiveKind = iota
	KindFloat
	KindString
	KindBool
	KindNull
)

// Primitive requires a raw value of exactly one scalar kind.
type Primitive struct {
	Kind PrimitiveKind
}

// Scalar descriptors.
var (
	Int    = Primitive{Kind: KindInt}
	Float  = Primitive{Kind: KindFloat}
	String = Primitive{Kind: KindString}
	Bool   = Primitive{Kind: KindBool}
	Null   = Primitive{Kind: KindNull}
)

func (p Primitive) Shape() Shape { return ShapePrimitive }

func (p Primitive) String() string {
	switch p.Kind {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "primitive"
	}
}

// Enum constructs a member from a raw value.
// Parse reports false when no member matches.
type Enum struct {
	Name  string
	Parse func(raw any) (any, bool)
}

func (e Enum) Shape() Shape   { return ShapeEnum }
func (e Enum) String() string { return e.Name }

// NewEnum builds an Enum from serialized values to members.
// A raw value that already is one of the members passes through.
func NewEnum[T comparable](name string, members map[any]T) Enum {
	byValue := make(map[any]T, len(members))
	known := make(map[T]bool, len(members))
	for value, member := range members {
		byValue[canonical(value)] = member
		known[member] = true
	}
	return Enum{
		Name: name,
		Parse: func(raw any) (any, bool) {
			if m, ok := raw.(T); ok && known[m] {
				return m, true
			}
			if !hashable(raw) {
				return nil, false
			}
			m, ok := byValue[canonical(raw)]
			return m, ok
		},
	}
}

// List requires a sequence whose elements all satisfy Elem.
type List struct {
	Elem Descriptor
}

// ListOf returns a List descriptor.
func ListOf(elem Descriptor) List { return List{Elem: elem} }

func (l List) Shape() Shape   { return ShapeList }
func (l List) String() string { return "list[" + l.Elem.String() + "]" }

// Map requires a mapping whose values all satisfy Value. Keys pass through.
type Map struct {
	Value Descriptor
}

// MapOf returns a Map descriptor.
func MapOf(value Descriptor) Map { return Map{Value: value} }

func (m Map) Shape() Shape   { return ShapeMap }
func (m Map) String() string { return "map[string]" + m.Value.String() }

// Union accepts the first alternative that validates, in declaration order.
type Union struct {
	Alternatives []Descriptor
}

// OneOf returns a Union descriptor.
func OneOf(alternatives ...Descriptor) Union { return Union{Alternatives: alternatives} }

// Optional is a union of d with null.
func Optional(d Descriptor) Union { return OneOf(d, Null) }

func (u Union) Shape() Shape { return ShapeUnion }

func (u Union) String() string {
	parts := make([]string, len(u.Alternatives))
	for i, alt := range u.Alternatives {
		parts[i] = alt.String()
	}
	return strings.Join(parts, " | ")
}

// Node is a schema type that knows how to decode itself from a raw value.
//
// Accept reports whether a value already is an instance of the type.
// Decode builds an instance from a raw value; it is how validation re-enters
// record construction for nested nodes.
type Node struct {
	Name   string
	Accept func(v any) bool
	Decode func(raw any) (any, error)
}

func (n Node) Shape() Shape   { return ShapeNode }
func (n Node) String() string { return n.Name }

type anyDescriptor struct{}

func (anyDescriptor) Shape() Shape   { return ShapeAny }
func (anyDescriptor) String() string { return "any" }

// Any accepts every value unchanged.
var Any Descriptor = anyDescriptor{}

// canonical folds int into int64 so enum lookups agree with decoded JSON.
func canonical(v any) any {
	if i, ok := v.(int); ok {
		return int64(i)
	}
	return v
}

func hashable(v any) bool {
	switch v.(type) {
	case nil, bool, string, int, int64, float64:
		return true
	default:
		return false
	}
}

// kindOf names the JSON kind of a raw value for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
