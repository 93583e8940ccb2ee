package typedoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeStrings(t *testing.T) {
	id := 3
	tests := []struct {
		typ  Type
		want string
	}{
		{typ: &IntrinsicType{Name: "string"}, want: "string"},
		{typ: &LiteralType{Value: "on"}, want: `"on"`},
		{typ: &LiteralType{Value: int64(4)}, want: "4"},
		{typ: &LiteralType{Value: nil}, want: "null"},
		{typ: &ArrayType{ElementType: &UnionType{Types: []Type{&IntrinsicType{Name: "a"}, &IntrinsicType{Name: "b"}}}}, want: "(a | b)[]"},
		{typ: &ReferenceType{ID: &id, Name: "Map", TypeArguments: []Type{&IntrinsicType{Name: "string"}, nil}}, want: "Map<string, any>"},
		{typ: &ReflectionType{Declaration: &DeclarationReflection{}}, want: "{...}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestTypeTags(t *testing.T) {
	for tag, typ := range map[string]Type{
		"array":      &ArrayType{},
		"intrinsic":  &IntrinsicType{},
		"literal":    &LiteralType{},
		"reference":  &ReferenceType{},
		"reflection": &ReflectionType{},
		"union":      &UnionType{},
	} {
		assert.Equal(t, tag, typ.TypeTag())
	}
}
