package typedoc

import (
	"fmt"
	"strings"
)

// Type is a TypeDoc type expression. The concrete type follows the "type"
// tag: array, intrinsic, literal, reference, reflection or union. Other
// tags are rejected when decoding.
type Type interface {
	TypeTag() string
	String() string
}

// ArrayType is T[].
type ArrayType struct {
	ElementType Type
}

// IntrinsicType is a built-in type such as string or void.
type IntrinsicType struct {
	Name string
}

// LiteralType is a literal value type. Value is nil, bool, string, int64
// or float64.
type LiteralType struct {
	Value any
}

// ReferenceType names another type. ID is set when the target is declared
// in the same project; external targets carry Package and QualifiedName.
type ReferenceType struct {
	ID            *int
	Name          string
	QualifiedName string
	Package       string
	TypeArguments []Type
}

// ReflectionType is an inline object or function type.
type ReflectionType struct {
	Declaration *DeclarationReflection
}

// UnionType is A | B.
type UnionType struct {
	Types []Type
}

func (*ArrayType) TypeTag() string      { return "array" }
func (*IntrinsicType) TypeTag() string  { return "intrinsic" }
func (*LiteralType) TypeTag() string    { return "literal" }
func (*ReferenceType) TypeTag() string  { return "reference" }
func (*ReflectionType) TypeTag() string { return "reflection" }
func (*UnionType) TypeTag() string      { return "union" }

func (t *ArrayType) String() string {
	elem := typeString(t.ElementType)
	if _, ok := t.ElementType.(*UnionType); ok {
		elem = "(" + elem + ")"
	}
	return elem + "[]"
}

func (t *IntrinsicType) String() string { return t.Name }

func (t *LiteralType) String() string {
	switch v := t.Value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}

func (t *ReferenceType) String() string {
	if len(t.TypeArguments) == 0 {
		return t.Name
	}
	args := make([]string, len(t.TypeArguments))
	for i, a := range t.TypeArguments {
		args[i] = typeString(a)
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

// Internal reports whether the reference points into the same project.
func (t *ReferenceType) Internal() bool { return t.ID != nil }

func (t *ReflectionType) String() string {
	if t.Declaration != nil && len(t.Declaration.Signatures) > 0 {
		return "(" + t.Declaration.Signatures[0].paramList() + ") => " + typeString(t.Declaration.Signatures[0].Type)
	}
	return "{...}"
}

func (t *UnionType) String() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = typeString(m)
	}
	return strings.Join(parts, " | ")
}

func (s *SignatureReflection) paramList() string {
	params := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = p.Name + ": " + typeString(p.Type)
	}
	return strings.Join(params, ", ")
}

func typeString(t Type) string {
	if t == nil {
		return "any"
	}
	return t.String()
}
