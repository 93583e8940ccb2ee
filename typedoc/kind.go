package typedoc

import (
	"strconv"

	"github.com/teranos/typedoc/errors"
)

// ReflectionKind identifies what a reflection documents.
type ReflectionKind int

const (
	KindAccessor ReflectionKind = iota + 1
	KindCallSignature
	KindClass
	KindConstructor
	KindConstructorSignature
	KindEnum
	KindEnumMember
	KindEvent
	KindFunction
	KindGetSignature
	KindIndexSignature
	KindInterface
	KindMethod
	KindModule
	KindNamespace
	KindObjectLiteral
	KindParameter
	KindProject
	KindProperty
	KindReference
	KindSetSignature
	KindTypeAlias
	KindTypeLiteral
	KindTypeParameter
	KindVariable
)

// kindNames holds the symbolic name and, when it differs, the kindString
// TypeDoc writes.
var kindNames = map[ReflectionKind][2]string{
	KindAccessor:             {"Accessor"},
	KindCallSignature:        {"CallSignature", "Call signature"},
	KindClass:                {"Class"},
	KindConstructor:          {"Constructor"},
	KindConstructorSignature: {"ConstructorSignature", "Constructor signature"},
	KindEnum:                 {"Enum", "Enumeration"},
	KindEnumMember:           {"EnumMember", "Enumeration member"},
	KindEvent:                {"Event"},
	KindFunction:             {"Function"},
	KindGetSignature:         {"GetSignature", "Get signature"},
	KindIndexSignature:       {"IndexSignature", "Index signature"},
	KindInterface:            {"Interface"},
	KindMethod:               {"Method"},
	KindModule:               {"Module"},
	KindNamespace:            {"Namespace"},
	KindObjectLiteral:        {"ObjectLiteral", "Object literal"},
	KindParameter:            {"Parameter"},
	KindProject:              {"Project"},
	KindProperty:             {"Property"},
	KindReference:            {"Reference"},
	KindSetSignature:         {"SetSignature", "Set signature"},
	KindTypeAlias:            {"TypeAlias", "Type alias"},
	KindTypeLiteral:          {"TypeLiteral", "Type literal"},
	KindTypeParameter:        {"TypeParameter", "Type parameter"},
	KindVariable:             {"Variable"},
}

var (
	bySerialized = map[string]ReflectionKind{}
	bySymbol     = map[string]ReflectionKind{}
)

func init() {
	for k, names := range kindNames {
		bySymbol[names[0]] = k
		bySerialized[k.Serialized()] = k
	}
}

// String returns the symbolic name, e.g. "CallSignature".
func (k ReflectionKind) String() string {
	if names, ok := kindNames[k]; ok {
		return names[0]
	}
	return "ReflectionKind(" + strconv.Itoa(int(k)) + ")"
}

// Serialized returns the kindString TypeDoc writes, e.g. "Call signature".
func (k ReflectionKind) Serialized() string {
	names, ok := kindNames[k]
	if !ok {
		return k.String()
	}
	if names[1] != "" {
		return names[1]
	}
	return names[0]
}

// Valid reports whether k is a known kind.
func (k ReflectionKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseReflectionKind accepts a serialized kindString, falling back to the
// symbolic name.
func ParseReflectionKind(s string) (ReflectionKind, bool) {
	if k, ok := bySerialized[s]; ok {
		return k, true
	}
	k, ok := bySymbol[s]
	return k, ok
}

// Kinds returns every known kind in declaration order.
func Kinds() []ReflectionKind {
	kinds := make([]ReflectionKind, 0, len(kindNames))
	for k := KindAccessor; k <= KindVariable; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// MarshalText writes the serialized kindString.
func (k ReflectionKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Newf("invalid reflection kind %d", int(k))
	}
	return []byte(k.Serialized()), nil
}

// UnmarshalText accepts either spelling.
func (k *ReflectionKind) UnmarshalText(b []byte) error {
	parsed, ok := ParseReflectionKind(string(b))
	if !ok {
		return errors.Newf("unknown reflection kind %q", b)
	}
	*k = parsed
	return nil
}
