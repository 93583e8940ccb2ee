// Package typedoc decodes the JSON reflection tree written by TypeDoc into
// typed Go values.
//
// FromJSON is the entry point. It picks the concrete reflection type from
// each object's kindString and validates every declared field, recursing
// into children, signatures and types. Decoding fails on the first error;
// there is no partial tree.
//
// The tree is read-only once built. Cross references (ReferenceReflection
// targets, overwrites, inheritedFrom and internal reference types) are kept
// as raw ids; see package xref for resolving them.
package typedoc

// Reflection is a node of the decoded tree. The concrete type follows the
// node's kind:
//
//	Reference                                   *ReferenceReflection
//	Project, Namespace, Enum                    *ContainerReflection
//	Class, Function, Method, TypeLiteral,
//	Constructor, Property                       *DeclarationReflection
//	CallSignature, ConstructorSignature         *SignatureReflection
//	Parameter, Variable, EnumMember             *ParameterReflection
//	TypeParameter                               *TypeParameterReflection
//	anything else                               *ReflectionNode
type Reflection interface {
	Node() *ReflectionNode
	isReflection()
}

// ReflectionNode holds the fields every reflection has.
type ReflectionNode struct {
	ID      int
	Name    string
	Kind    ReflectionKind
	Sources []SourceReference
	Flags   ReflectionFlags
	Comment *Comment
}

// Node returns n.
func (n *ReflectionNode) Node() *ReflectionNode { return n }

func (*ReflectionNode) isReflection() {}

// ReflectionFlags are the boolean modifiers of a reflection.
type ReflectionFlags struct {
	IsPublic            bool
	IsPrivate           bool
	IsProtected         bool
	IsStatic            bool
	IsReadonly          bool
	IsOptional          bool
	IsAbstract          bool
	IsConst             bool
	IsExternal          bool
	IsRest              bool
	HasExportAssignment bool
}

// SourceReference locates a reflection in the documented sources.
type SourceReference struct {
	Character int
	FileName  string
	Line      int
	File      string
	URL       string
}

// ContainerReflection is a reflection with ordered children.
type ContainerReflection struct {
	ReflectionNode
	Children []Reflection
}

// DeclarationReflection documents a declared symbol.
type DeclarationReflection struct {
	ContainerReflection
	Signatures       []*SignatureReflection
	TypeParameters   []*TypeParameterReflection
	ExtendedTypes    []Type
	ImplementedTypes []Type
	ExtendedBy       []*ReferenceType
	ImplementedBy    []*ReferenceType
	Overwrites       *ReferenceType
	InheritedFrom    *ReferenceType
	Type             Type
	// IndexSignature is a reflection of kind IndexSignature, which decodes
	// as a plain *ReflectionNode.
	IndexSignature Reflection
	DefaultValue   *string
}

// ReferenceReflection re-exports the declaration with id Target.
type ReferenceReflection struct {
	DeclarationReflection
	Target int
}

// SignatureReflection is a call or constructor signature.
type SignatureReflection struct {
	ReflectionNode
	Parameters     []*ParameterReflection
	Type           Type
	Overwrites     *ReferenceType
	InheritedFrom  *ReferenceType
	TypeParameters []*TypeParameterReflection
}

// ParameterReflection is a parameter, variable or enum member.
// DefaultValue is the source text of the default, not a typed literal.
type ParameterReflection struct {
	ReflectionNode
	Type         Type
	DefaultValue *string
}

// TypeParameterReflection is a generic parameter. Type is its constraint.
type TypeParameterReflection struct {
	ReflectionNode
	Type    Type
	Default Type
}

// Children returns the reflections directly owned by r, in document order:
// children, signatures, type parameters, the index signature, parameters,
// then declarations of inline reflection types.
func Children(r Reflection) []Reflection {
	var out []Reflection
	addTypes := func(types ...Type) {
		for _, t := range types {
			out = append(out, typeDeclarations(t)...)
		}
	}

	switch n := r.(type) {
	case *ContainerReflection:
		out = append(out, n.Children...)
	case *DeclarationReflection:
		out = appendDeclaration(out, n)
		addTypes(n.Type)
	case *ReferenceReflection:
		out = appendDeclaration(out, &n.DeclarationReflection)
		addTypes(n.Type)
	case *SignatureReflection:
		for _, tp := range n.TypeParameters {
			out = append(out, tp)
		}
		for _, p := range n.Parameters {
			out = append(out, p)
		}
		addTypes(n.Type)
	case *ParameterReflection:
		addTypes(n.Type)
	case *TypeParameterReflection:
		addTypes(n.Type, n.Default)
	}
	return out
}

func appendDeclaration(out []Reflection, d *DeclarationReflection) []Reflection {
	out = append(out, d.Children...)
	for _, s := range d.Signatures {
		out = append(out, s)
	}
	for _, tp := range d.TypeParameters {
		out = append(out, tp)
	}
	if d.IndexSignature != nil {
		out = append(out, d.IndexSignature)
	}
	return out
}

// typeDeclarations returns the declarations of reflection types nested in t.
func typeDeclarations(t Type) []Reflection {
	var out []Reflection
	switch t := t.(type) {
	case *ReflectionType:
		if t.Declaration != nil {
			out = append(out, t.Declaration)
		}
	case *ArrayType:
		out = append(out, typeDeclarations(t.ElementType)...)
	case *UnionType:
		for _, m := range t.Types {
			out = append(out, typeDeclarations(m)...)
		}
	case *ReferenceType:
		for _, a := range t.TypeArguments {
			out = append(out, typeDeclarations(a)...)
		}
	}
	return out
}

// Walk visits root and its descendants depth-first in document order.
// Returning false from fn skips the node's descendants.
func Walk(root Reflection, fn func(r Reflection, depth int) bool) {
	walk(root, 0, fn)
}

func walk(r Reflection, depth int, fn func(Reflection, int) bool) {
	if r == nil || !fn(r, depth) {
		return
	}
	for _, c := range Children(r) {
		walk(c, depth+1, fn)
	}
}
