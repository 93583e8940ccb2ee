package typedoc

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/schema"
)

func observedDecoder(t *testing.T, opts Options) (*Decoder, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	opts.Logger = zap.New(core).Sugar()
	return NewDecoder(opts), logs
}

func obj(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}
	return m
}

func intrinsic(name string) map[string]any { return obj("type", "intrinsic", "name", name) }

func TestFromJSONMinimalClass(t *testing.T) {
	r, err := FromJSON(obj("id", int64(1), "name", "Foo", "kindString", "Class", "flags", obj()))
	require.NoError(t, err)

	decl, ok := r.(*DeclarationReflection)
	require.True(t, ok, "got %T", r)
	assert.Equal(t, 1, decl.ID)
	assert.Equal(t, "Foo", decl.Name)
	assert.Equal(t, KindClass, decl.Kind)
	assert.Equal(t, ReflectionFlags{}, decl.Flags)
	assert.Nil(t, decl.Children)
	assert.Nil(t, decl.Signatures)
	assert.Nil(t, decl.Type)
	assert.Nil(t, decl.Comment)
	assert.Same(t, &decl.ReflectionNode, r.Node())
}

func TestFromJSONMissingFlagsDefaults(t *testing.T) {
	r, err := FromJSON(obj("id", int64(1), "name", "x", "kindString", "Variable"))
	require.NoError(t, err)
	assert.Equal(t, ReflectionFlags{}, r.Node().Flags)
}

func TestKindTable(t *testing.T) {
	base := func(kind string, extra ...any) map[string]any {
		m := obj("id", int64(1), "name", "n", "kindString", kind, "flags", obj())
		for k, v := range obj(extra...) {
			m[k] = v
		}
		return m
	}

	tests := []struct {
		kindString string
		extra      []any
		want       string
	}{
		{kindString: "Reference", extra: []any{"target", int64(2)}, want: "*typedoc.ReferenceReflection"},
		{kindString: "Project", want: "*typedoc.ContainerReflection"},
		{kindString: "Namespace", want: "*typedoc.ContainerReflection"},
		{kindString: "Enumeration", want: "*typedoc.ContainerReflection"},
		{kindString: "Class", want: "*typedoc.DeclarationReflection"},
		{kindString: "Function", want: "*typedoc.DeclarationReflection"},
		{kindString: "Method", want: "*typedoc.DeclarationReflection"},
		{kindString: "Type literal", want: "*typedoc.DeclarationReflection"},
		{kindString: "Constructor", want: "*typedoc.DeclarationReflection"},
		{kindString: "Property", want: "*typedoc.DeclarationReflection"},
		{kindString: "Call signature", extra: []any{"type", intrinsic("void")}, want: "*typedoc.SignatureReflection"},
		{kindString: "Constructor signature", extra: []any{"type", intrinsic("void")}, want: "*typedoc.SignatureReflection"},
		{kindString: "Parameter", want: "*typedoc.ParameterReflection"},
		{kindString: "Variable", want: "*typedoc.ParameterReflection"},
		{kindString: "Enumeration member", want: "*typedoc.ParameterReflection"},
		{kindString: "Type parameter", want: "*typedoc.TypeParameterReflection"},
		{kindString: "Interface", want: "*typedoc.ReflectionNode"},
		{kindString: "Module", want: "*typedoc.ReflectionNode"},
		{kindString: "Accessor", want: "*typedoc.ReflectionNode"},
		{kindString: "Type alias", want: "*typedoc.ReflectionNode"},
	}

	for _, tt := range tests {
		t.Run(tt.kindString, func(t *testing.T) {
			r, err := FromJSON(base(tt.kindString, tt.extra...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, fmt.Sprintf("%T", r))

			want, ok := ParseReflectionKind(tt.kindString)
			require.True(t, ok)
			assert.Equal(t, want, r.Node().Kind, "kind and concrete type agree")
		})
	}
}

func TestSymbolicKindStringAccepted(t *testing.T) {
	r, err := FromJSON(obj("id", int64(1), "name", "T", "kindString", "TypeParameter"))
	require.NoError(t, err)
	assert.IsType(t, &TypeParameterReflection{}, r)
}

func TestUnknownKindString(t *testing.T) {
	_, err := FromJSON(obj("id", int64(1), "name", "x", "kindString", "Widget"))
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedKindError(err))
}

func TestDecodeTypeArrayOfIntrinsic(t *testing.T) {
	typ, err := DecodeType(obj("type", "array", "elementType", intrinsic("string")))
	require.NoError(t, err)

	arr, ok := typ.(*ArrayType)
	require.True(t, ok, "got %T", typ)
	assert.Equal(t, &IntrinsicType{Name: "string"}, arr.ElementType)
	assert.Equal(t, "string[]", arr.String())
}

func TestDecodeTypeUnsupportedTags(t *testing.T) {
	for _, tag := range append(append([]string{}, unsupportedTypes...), "brand-new") {
		t.Run(tag, func(t *testing.T) {
			_, err := DecodeType(obj("type", tag, "elements", []any{intrinsic("string")}))
			require.Error(t, err)
			assert.True(t, errors.IsUnsupportedKindError(err))

			var uk *schema.UnsupportedKindError
			require.True(t, errors.As(err, &uk))
			assert.Equal(t, tag, uk.Tag)
			assert.Contains(t, errors.FlattenHints(err), "array, intrinsic, literal, reference, reflection, union")
		})
	}
}

func TestUnsupportedTypeNestedInTree(t *testing.T) {
	_, err := FromJSON(obj(
		"id", int64(1), "name", "pair", "kindString", "Property", "flags", obj(),
		"type", obj("type", "tuple", "elements", []any{intrinsic("string"), intrinsic("number")}),
	))
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedKindError(err), "never falls back to a generic type")
	assert.Contains(t, err.Error(), `DeclarationReflection (Property): "pair": DeclarationReflection.type`)
}

func TestDecodeLiteralTypes(t *testing.T) {
	for _, v := range []any{"on", int64(3), 2.5, true, nil} {
		typ, err := DecodeType(obj("type", "literal", "value", v))
		require.NoError(t, err)
		assert.Equal(t, v, typ.(*LiteralType).Value)
	}

	_, err := DecodeType(obj("type", "literal", "value", []any{}))
	assert.True(t, errors.IsValidationError(err))

	_, err = DecodeType(obj("type", "literal"))
	assert.True(t, errors.IsConstructionError(err), "value is required even though it may be null")
}

func TestDecodeReferenceTypes(t *testing.T) {
	typ, err := DecodeType(obj("type", "reference", "id", int64(2), "name", "Circle"))
	require.NoError(t, err)
	ref := typ.(*ReferenceType)
	require.True(t, ref.Internal())
	assert.Equal(t, 2, *ref.ID)

	typ, err = DecodeType(obj(
		"type", "reference", "name", "Promise", "qualifiedName", "Promise", "package", "typescript",
		"typeArguments", []any{intrinsic("void")},
	))
	require.NoError(t, err)
	ref = typ.(*ReferenceType)
	assert.False(t, ref.Internal())
	assert.Equal(t, "typescript", ref.Package)
	assert.Equal(t, "Promise<void>", ref.String())
}

func TestOverwritesMustBeReferenceType(t *testing.T) {
	_, err := FromJSON(obj(
		"id", int64(1), "name", "m", "kindString", "Method", "flags", obj(),
		"overwrites", intrinsic("string"),
	))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, schema.FieldPath(err), "DeclarationReflection.overwrites")
}

func TestNestedReflectionType(t *testing.T) {
	param := obj(
		"id", int64(5), "name", "callback", "kindString", "Parameter", "flags", obj(),
		"type", obj("type", "reflection", "declaration", obj(
			"id", int64(2), "name", "", "kindString", "Type literal", "flags", obj(),
			"signatures", []any{obj(
				"id", int64(3), "name", "__type", "kindString", "Call signature", "flags", obj(),
				"parameters", []any{obj(
					"id", int64(4), "name", "message", "kindString", "Parameter", "flags", obj(),
					"type", intrinsic("string"),
				)},
				"type", intrinsic("void"),
			)},
		)),
	)

	r, err := FromJSON(param)
	require.NoError(t, err)

	p := r.(*ParameterReflection)
	rt, ok := p.Type.(*ReflectionType)
	require.True(t, ok, "got %T", p.Type)
	require.NotNil(t, rt.Declaration)
	assert.Equal(t, KindTypeLiteral, rt.Declaration.Kind)
	require.Len(t, rt.Declaration.Signatures, 1)
	sig := rt.Declaration.Signatures[0]
	assert.Equal(t, KindCallSignature, sig.Kind)
	require.Len(t, sig.Parameters, 1)
	assert.Equal(t, "message", sig.Parameters[0].Name)
	assert.Equal(t, "(message: string) => void", rt.String())
}

func TestSignatureRequiresType(t *testing.T) {
	_, err := FromJSON(obj("id", int64(1), "name", "f", "kindString", "Call signature", "flags", obj()))
	require.Error(t, err)

	var ce *schema.ConstructionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "SignatureReflection", ce.Record)
	assert.Equal(t, []string{"type"}, ce.Fields)
	assert.Contains(t, err.Error(), `SignatureReflection (Call signature): "f"`)
}

func TestSignaturesMustBeSignatures(t *testing.T) {
	_, err := FromJSON(obj(
		"id", int64(1), "name", "f", "kindString", "Function", "flags", obj(),
		"signatures", []any{obj("id", int64(2), "name", "x", "kindString", "Variable", "flags", obj())},
	))
	require.Error(t, err)
	assert.Equal(t, []string{"DeclarationReflection.signatures", "[0]"}, schema.FieldPath(err))
}

func TestReferenceRequiresTarget(t *testing.T) {
	_, err := FromJSON(obj("id", int64(1), "name", "Foo", "kindString", "Reference", "flags", obj()))
	require.Error(t, err)
	assert.True(t, errors.IsConstructionError(err))
}

func TestLegacyGroupingFieldsDiscarded(t *testing.T) {
	r, err := FromJSON(obj(
		"id", int64(0), "name", "p", "kind", int64(1), "kindString", "Project", "flags", obj(),
		"groups", []any{obj("title", "Classes")},
		"categories", []any{},
	))
	require.NoError(t, err)
	assert.Equal(t, KindProject, r.Node().Kind)
}

func TestStrictRejectsUndeclaredFields(t *testing.T) {
	raw := obj("id", int64(1), "name", "Foo", "kindString", "Class", "flags", obj("isExported", true), "decorators", []any{})

	_, err := NewDecoder(Options{}).FromJSON(raw)
	require.Error(t, err)
	var ce *schema.ConstructionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "DeclarationReflection", ce.Record)
	assert.Equal(t, []string{"decorators"}, ce.Fields)

	dec, logs := observedDecoder(t, Options{Lenient: true})
	r, err := dec.FromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "Foo", r.Node().Name)
	assert.Equal(t, 2, logs.FilterMessage("dropped undeclared fields").Len())
}

func TestCommentForms(t *testing.T) {
	r, err := FromJSON(obj("id", int64(1), "name", "a", "kindString", "Variable", "comment", "Plain text."))
	require.NoError(t, err)
	require.NotNil(t, r.Node().Comment)
	assert.Equal(t, "Plain text.", r.Node().Comment.Text)
	assert.Equal(t, "Plain text.", r.Node().Comment.String())

	r, err = FromJSON(obj("id", int64(1), "name", "a", "kindString", "Variable", "comment", obj(
		"shortText", "Short.",
		"text", "Long.\n",
		"returns", "nothing",
		"tags", []any{obj("tag", "deprecated", "text", "use b"), obj("tag", "param", "paramName", "x")},
	)))
	require.NoError(t, err)
	c := r.Node().Comment
	assert.Equal(t, "Short.\n\nLong.", c.String())
	assert.Equal(t, "nothing", c.Returns)
	tag, ok := c.Tag("@deprecated")
	require.True(t, ok)
	assert.Equal(t, "use b", tag.Text)
	tag, ok = c.Tag("param")
	require.True(t, ok)
	assert.Equal(t, "x", tag.ParamName)

	_, err = FromJSON(obj("id", int64(1), "name", "a", "kindString", "Variable", "comment", int64(3)))
	require.Error(t, err)
	var ve *schema.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "ReflectionNode", ve.Owner)
	assert.Equal(t, "comment", ve.Field)
}

func TestFieldErrorsCarryPath(t *testing.T) {
	raw := obj(
		"id", int64(0), "name", "p", "kindString", "Project", "flags", obj(),
		"children", []any{obj(
			"id", int64(1), "name", "Foo", "kindString", "Class", "flags", obj(),
			"children", []any{obj(
				"id", int64(2), "name", "bar", "kindString", "Property", "flags", obj(),
				"sources", []any{obj("fileName", "foo.ts", "line", "12", "character", int64(0))},
			)},
		)},
	)

	_, err := FromJSON(raw)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, []string{
		"ContainerReflection.children", "[0]",
		"ContainerReflection.children", "[0]",
		"ReflectionNode.sources", "[0]",
		"SourceReference.line",
	}, schema.FieldPath(err))
	assert.Contains(t, err.Error(), `ContainerReflection (Project): "p"`)
	assert.Contains(t, err.Error(), `DeclarationReflection (Class): "Foo"`)
	assert.Contains(t, err.Error(), `DeclarationReflection (Property): "bar"`)
}

func TestNestedSummariesHonorKeyLimit(t *testing.T) {
	d, _ := observedDecoder(t, Options{MaxSummaryKeys: 2})

	_, err := d.FromJSON(obj(
		"id", int64(1), "name", "Foo", "kindString", "Class", "flags", obj(),
		"type", obj("type", "reference", "name", "X",
			"a", int64(1), "b", int64(1), "c", int64(1), "d", int64(1)),
	))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "DeclarationReflection.type: Type | null: input {[a, b, ...]}")
	assert.NotContains(t, msg, "{[a, b, c, d")
	assert.Equal(t, 1, strings.Count(msg, "input {"), msg)
	assert.Contains(t, msg, "ReferenceType: undeclared fields: a, b, c, d")

	_, err = d.FromJSON(obj(
		"id", int64(1), "name", "Foo", "kindString", "Class", "flags", obj(),
		"sources", []any{obj("fileName", "foo.ts", "line", "12", "character", int64(0))},
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{[character, fileName, ...]}")
	assert.NotContains(t, err.Error(), "{[character, fileName, line]}")
}

func TestSourcesAndFlags(t *testing.T) {
	r, err := FromJSON(obj(
		"id", int64(1), "name", "x", "kindString", "Property",
		"flags", obj("isStatic", true, "isReadonly", true),
		"sources", []any{obj("fileName", "a.ts", "line", int64(3), "character", int64(4), "url", "https://example.com/a.ts#L3")},
	))
	require.NoError(t, err)
	n := r.Node()
	assert.Equal(t, ReflectionFlags{IsStatic: true, IsReadonly: true}, n.Flags)
	assert.Equal(t, []SourceReference{{FileName: "a.ts", Line: 3, Character: 4, URL: "https://example.com/a.ts#L3"}}, n.Sources)
}

func TestDecodeProjectRequiresProject(t *testing.T) {
	_, err := DecodeProject(obj("id", int64(1), "name", "Foo", "kindString", "Class", "flags", obj()))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "Project.kindString: expected Project, got Class")
}

func TestLazyRegistrationIsIdempotent(t *testing.T) {
	dec, logs := observedDecoder(t, Options{})
	reg := dec.Registry()
	assert.False(t, reg.Materialized("DeclarationReflection"))

	raw := obj("id", int64(1), "name", "Foo", "kindString", "Class", "flags", obj())
	for i := 0; i < 2; i++ {
		_, err := dec.FromJSON(raw)
		require.NoError(t, err)
	}

	assert.True(t, reg.Materialized("ReflectionNode"))
	assert.True(t, reg.Materialized("ContainerReflection"))
	assert.True(t, reg.Materialized("DeclarationReflection"))
	assert.False(t, reg.Materialized("SignatureReflection"))

	perRecord := map[string]int{}
	for _, e := range logs.FilterMessage("materialized record").All() {
		perRecord[e.ContextMap()["record"].(string)]++
	}
	for rec, n := range perRecord {
		assert.Equal(t, 1, n, rec)
	}

	layout := reg.Layout("DeclarationReflection")
	assert.Equal(t, []string{"id", "name", "kind", "sources", "flags", "comment", "children"}, layout[:7])
}

func TestRecursiveContainers(t *testing.T) {
	inner := obj("id", int64(3), "name", "leaf", "kindString", "Namespace", "flags", obj())
	mid := obj("id", int64(2), "name", "mid", "kindString", "Namespace", "flags", obj(), "children", []any{inner})
	root := obj("id", int64(1), "name", "root", "kindString", "Project", "flags", obj(), "children", []any{mid})

	project, err := DecodeProject(root)
	require.NoError(t, err)
	require.Len(t, project.Children, 1)
	m := project.Children[0].(*ContainerReflection)
	require.Len(t, m.Children, 1)
	assert.Equal(t, "leaf", m.Children[0].Node().Name)
}

func TestConcurrentDecodes(t *testing.T) {
	dec := NewDecoder(Options{})
	data, err := os.ReadFile("testdata/project.json")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = dec.Parse(data)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}
