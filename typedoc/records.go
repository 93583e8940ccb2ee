package typedoc

import (
	"github.com/teranos/typedoc/schema"
)

// unsupportedTypes are type tags TypeDoc emits that the tree does not model.
var unsupportedTypes = []string{
	"conditional",
	"indexedAccess",
	"inferred",
	"intersection",
	"mapped",
	"named-tuple-member",
	"optional",
	"predicate",
	"query",
	"rest",
	"template-literal",
	"tuple",
	"typeOperator",
	"unknown",
}

// schemas holds the records and families of one decoder. Field lists refer
// to the node descriptors below; they are only evaluated on first
// construction, after every descriptor is set.
type schemas struct {
	registry    *schema.Registry
	reflections *schema.Family[ReflectionKind]
	types       *schema.Family[string]

	reflection, signature, parameter, typeParameter, declaration schema.Node
	typ, referenceType, flags, source, comment                  schema.Node
}

func is[T any](v any) bool {
	_, ok := v.(T)
	return ok
}

func newSchemas(reg *schema.Registry) *schemas {
	s := &schemas{registry: reg}

	kinds := make(map[any]ReflectionKind, 2*len(kindNames))
	for _, k := range Kinds() {
		kinds[k.Serialized()] = k
		kinds[k.String()] = k
	}
	kindEnum := schema.NewEnum("ReflectionKind", kinds)

	flagsRec := &schema.Record{
		Name: "ReflectionFlags",
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.WithDefault("isPublic", schema.Bool, false),
				schema.WithDefault("isPrivate", schema.Bool, false),
				schema.WithDefault("isProtected", schema.Bool, false),
				schema.WithDefault("isStatic", schema.Bool, false),
				schema.WithDefault("isReadonly", schema.Bool, false),
				schema.WithDefault("isOptional", schema.Bool, false),
				schema.WithDefault("isAbstract", schema.Bool, false),
				schema.WithDefault("isConst", schema.Bool, false),
				schema.WithDefault("isExternal", schema.Bool, false),
				schema.WithDefault("isRest", schema.Bool, false),
				schema.WithDefault("hasExportAssignment", schema.Bool, false),
			}
		},
		Build: func(v schema.Values) (any, error) {
			return ReflectionFlags{
				IsPublic:            v.Bool("isPublic"),
				IsPrivate:           v.Bool("isPrivate"),
				IsProtected:         v.Bool("isProtected"),
				IsStatic:            v.Bool("isStatic"),
				IsReadonly:          v.Bool("isReadonly"),
				IsOptional:          v.Bool("isOptional"),
				IsAbstract:          v.Bool("isAbstract"),
				IsConst:             v.Bool("isConst"),
				IsExternal:          v.Bool("isExternal"),
				IsRest:              v.Bool("isRest"),
				HasExportAssignment: v.Bool("hasExportAssignment"),
			}, nil
		},
	}

	sourceRec := &schema.Record{
		Name: "SourceReference",
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.Required("character", schema.Int),
				schema.Required("fileName", schema.String),
				schema.Required("line", schema.Int),
				schema.OptionalField("file", schema.String),
				schema.OptionalField("url", schema.String),
			}
		},
		Build: func(v schema.Values) (any, error) {
			return SourceReference{
				Character: v.Int("character"),
				FileName:  v.String("fileName"),
				Line:      v.Int("line"),
				File:      v.String("file"),
				URL:       v.String("url"),
			}, nil
		},
	}

	tagRec := &schema.Record{
		Name: "CommentTag",
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.Required("tag", schema.String),
				schema.WithDefault("text", schema.String, ""),
				schema.OptionalField("paramName", schema.String),
			}
		},
		Build: func(v schema.Values) (any, error) {
			return CommentTag{Tag: v.String("tag"), Text: v.String("text"), ParamName: v.String("paramName")}, nil
		},
	}

	commentRec := &schema.Record{
		Name: "Comment",
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.OptionalField("shortText", schema.String),
				schema.OptionalField("text", schema.String),
				schema.OptionalField("returns", schema.String),
				schema.OptionalField("tags", schema.ListOf(reg.Node(tagRec, is[CommentTag]))),
			}
		},
		Build: func(v schema.Values) (any, error) {
			return &Comment{
				ShortText: v.String("shortText"),
				Text:      v.String("text"),
				Returns:   v.String("returns"),
				Tags:      schema.ListAs[CommentTag](v, "tags"),
			}, nil
		},
	}

	// Reflection records, most-base first.
	reflectionRec := &schema.Record{
		Name: "ReflectionNode",
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.Required("id", schema.Int),
				schema.Required("name", schema.String),
				schema.Required("kind", kindEnum),
				schema.OptionalField("sources", schema.ListOf(s.source)),
				schema.OptionalField("flags", s.flags),
				schema.OptionalField("comment", schema.OneOf(schema.String, s.comment)),
			}
		},
		Build: func(v schema.Values) (any, error) {
			n := buildNode(v)
			return &n, nil
		},
	}

	containerRec := &schema.Record{
		Name:    "ContainerReflection",
		Base:    reflectionRec,
		Discard: []string{"categories", "groups"},
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.OptionalField("children", schema.ListOf(s.reflection)),
			}
		},
		Build: func(v schema.Values) (any, error) {
			c := buildContainer(v)
			return &c, nil
		},
	}

	declarationRec := &schema.Record{
		Name: "DeclarationReflection",
		Base: containerRec,
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.OptionalField("signatures", schema.ListOf(s.signature)),
				schema.OptionalField("typeParameter", schema.ListOf(s.typeParameter)),
				schema.OptionalField("extendedTypes", schema.ListOf(s.typ)),
				schema.OptionalField("implementedTypes", schema.ListOf(s.typ)),
				schema.OptionalField("extendedBy", schema.ListOf(s.referenceType)),
				schema.OptionalField("implementedBy", schema.ListOf(s.referenceType)),
				schema.OptionalField("overwrites", s.referenceType),
				schema.OptionalField("inheritedFrom", s.referenceType),
				schema.OptionalField("type", s.typ),
				schema.OptionalField("indexSignature", s.reflection),
				schema.OptionalField("defaultValue", schema.String),
			}
		},
		Build: func(v schema.Values) (any, error) {
			d := buildDeclaration(v)
			return &d, nil
		},
	}

	referenceRec := &schema.Record{
		Name: "ReferenceReflection",
		Base: declarationRec,
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.Required("target", schema.Int),
			}
		},
		Build: func(v schema.Values) (any, error) {
			return &ReferenceReflection{
				DeclarationReflection: buildDeclaration(v),
				Target:                v.Int("target"),
			}, nil
		},
	}

	signatureRec := &schema.Record{
		Name: "SignatureReflection",
		Base: reflectionRec,
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.OptionalField("parameters", schema.ListOf(s.parameter)),
				schema.Required("type", s.typ),
				schema.OptionalField("overwrites", s.referenceType),
				schema.OptionalField("inheritedFrom", s.referenceType),
				schema.OptionalField("typeParameter", schema.ListOf(s.typeParameter)),
			}
		},
		Build: func(v schema.Values) (any, error) {
			return &SignatureReflection{
				ReflectionNode: buildNode(v),
				Parameters:     schema.ListAs[*ParameterReflection](v, "parameters"),
				Type:           schema.As[Type](v, "type"),
				Overwrites:     schema.As[*ReferenceType](v, "overwrites"),
				InheritedFrom:  schema.As[*ReferenceType](v, "inheritedFrom"),
				TypeParameters: schema.ListAs[*TypeParameterReflection](v, "typeParameter"),
			}, nil
		},
	}

	parameterRec := &schema.Record{
		Name: "ParameterReflection",
		Base: reflectionRec,
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.OptionalField("type", s.typ),
				schema.OptionalField("defaultValue", schema.String),
			}
		},
		Build: func(v schema.Values) (any, error) {
			return &ParameterReflection{
				ReflectionNode: buildNode(v),
				Type:           schema.As[Type](v, "type"),
				DefaultValue:   v.OptionalString("defaultValue"),
			}, nil
		},
	}

	typeParameterRec := &schema.Record{
		Name: "TypeParameterReflection",
		Base: reflectionRec,
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.OptionalField("type", s.typ),
				schema.OptionalField("default", s.typ),
			}
		},
		Build: func(v schema.Values) (any, error) {
			return &TypeParameterReflection{
				ReflectionNode: buildNode(v),
				Type:           schema.As[Type](v, "type"),
				Default:        schema.As[Type](v, "default"),
			}, nil
		},
	}

	s.reflections = &schema.Family[ReflectionKind]{
		Name:          "Reflection",
		Discriminator: "kindString",
		Parse:         ParseReflectionKind,
		Variants: map[ReflectionKind]*schema.Record{
			KindReference:            referenceRec,
			KindProject:              containerRec,
			KindNamespace:            containerRec,
			KindEnum:                 containerRec,
			KindClass:                declarationRec,
			KindFunction:             declarationRec,
			KindMethod:               declarationRec,
			KindTypeLiteral:          declarationRec,
			KindConstructor:          declarationRec,
			KindProperty:             declarationRec,
			KindCallSignature:        signatureRec,
			KindConstructorSignature: signatureRec,
			KindParameter:            parameterRec,
			KindVariable:             parameterRec,
			KindEnumMember:           parameterRec,
			KindTypeParameter:        typeParameterRec,
		},
		Default: reflectionRec,
		Prepare: func(kind ReflectionKind, raw map[string]any) map[string]any {
			// The numeric kind is TypeDoc's bit flag; kindString is canonical.
			raw["kind"] = kind
			return raw
		},
		Registry: reg,
	}

	// Type records. The "type" tag is consumed by the family.
	arrayRec := &schema.Record{
		Name:   "ArrayType",
		Fields: func() []schema.Field { return []schema.Field{schema.Required("elementType", s.typ)} },
		Build: func(v schema.Values) (any, error) {
			return &ArrayType{ElementType: schema.As[Type](v, "elementType")}, nil
		},
	}
	intrinsicRec := &schema.Record{
		Name:   "IntrinsicType",
		Fields: func() []schema.Field { return []schema.Field{schema.Required("name", schema.String)} },
		Build: func(v schema.Values) (any, error) {
			return &IntrinsicType{Name: v.String("name")}, nil
		},
	}
	literalRec := &schema.Record{
		Name: "LiteralType",
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.Required("value", schema.OneOf(schema.String, schema.Int, schema.Float, schema.Bool, schema.Null)),
			}
		},
		Build: func(v schema.Values) (any, error) {
			return &LiteralType{Value: v.Get("value")}, nil
		},
	}
	referenceTypeRec := &schema.Record{
		Name: "ReferenceType",
		Fields: func() []schema.Field {
			return []schema.Field{
				schema.OptionalField("id", schema.Int),
				schema.Required("name", schema.String),
				schema.OptionalField("qualifiedName", schema.String),
				schema.OptionalField("package", schema.String),
				schema.OptionalField("typeArguments", schema.ListOf(s.typ)),
			}
		},
		Build: func(v schema.Values) (any, error) {
			return &ReferenceType{
				ID:            v.OptionalInt("id"),
				Name:          v.String("name"),
				QualifiedName: v.String("qualifiedName"),
				Package:       v.String("package"),
				TypeArguments: schema.ListAs[Type](v, "typeArguments"),
			}, nil
		},
	}
	reflectionTypeRec := &schema.Record{
		Name:   "ReflectionType",
		Fields: func() []schema.Field { return []schema.Field{schema.Required("declaration", s.declaration)} },
		Build: func(v schema.Values) (any, error) {
			return &ReflectionType{Declaration: schema.As[*DeclarationReflection](v, "declaration")}, nil
		},
	}
	unionRec := &schema.Record{
		Name:   "UnionType",
		Fields: func() []schema.Field { return []schema.Field{schema.Required("types", schema.ListOf(s.typ))} },
		Build: func(v schema.Values) (any, error) {
			return &UnionType{Types: schema.ListAs[Type](v, "types")}, nil
		},
	}

	typeVariants := map[string]*schema.Record{
		"array":      arrayRec,
		"intrinsic":  intrinsicRec,
		"literal":    literalRec,
		"reference":  referenceTypeRec,
		"reflection": reflectionTypeRec,
		"union":      unionRec,
	}
	for _, tag := range unsupportedTypes {
		typeVariants[tag] = nil
	}
	s.types = &schema.Family[string]{
		Name:          "Type",
		Discriminator: "type",
		Parse:         func(tag string) (string, bool) { return tag, true },
		Variants:      typeVariants,
		Registry:      reg,
	}

	s.reflection = s.reflections.Node(is[Reflection])
	s.signature = schema.Node{Name: "SignatureReflection", Accept: is[*SignatureReflection], Decode: s.reflections.Decode}
	s.parameter = schema.Node{Name: "ParameterReflection", Accept: is[*ParameterReflection], Decode: s.reflections.Decode}
	s.typeParameter = schema.Node{Name: "TypeParameterReflection", Accept: is[*TypeParameterReflection], Decode: s.reflections.Decode}
	s.declaration = schema.Node{Name: "DeclarationReflection", Accept: is[*DeclarationReflection], Decode: s.reflections.Decode}
	s.typ = s.types.Node(is[Type])
	s.referenceType = schema.Node{Name: "ReferenceType", Accept: is[*ReferenceType], Decode: s.types.Decode}
	s.flags = reg.Node(flagsRec, is[ReflectionFlags])
	s.source = reg.Node(sourceRec, is[SourceReference])
	s.comment = reg.Node(commentRec, is[*Comment])
	return s
}

func buildNode(v schema.Values) ReflectionNode {
	n := ReflectionNode{
		ID:      v.Int("id"),
		Name:    v.String("name"),
		Kind:    schema.As[ReflectionKind](v, "kind"),
		Sources: schema.ListAs[SourceReference](v, "sources"),
		Flags:   schema.As[ReflectionFlags](v, "flags"),
	}
	switch c := v.Get("comment").(type) {
	case string:
		n.Comment = &Comment{Text: c}
	case *Comment:
		n.Comment = c
	}
	return n
}

func buildContainer(v schema.Values) ContainerReflection {
	return ContainerReflection{
		ReflectionNode: buildNode(v),
		Children:       schema.ListAs[Reflection](v, "children"),
	}
}

func buildDeclaration(v schema.Values) DeclarationReflection {
	return DeclarationReflection{
		ContainerReflection: buildContainer(v),
		Signatures:          schema.ListAs[*SignatureReflection](v, "signatures"),
		TypeParameters:      schema.ListAs[*TypeParameterReflection](v, "typeParameter"),
		ExtendedTypes:       schema.ListAs[Type](v, "extendedTypes"),
		ImplementedTypes:    schema.ListAs[Type](v, "implementedTypes"),
		ExtendedBy:          schema.ListAs[*ReferenceType](v, "extendedBy"),
		ImplementedBy:       schema.ListAs[*ReferenceType](v, "implementedBy"),
		Overwrites:          schema.As[*ReferenceType](v, "overwrites"),
		InheritedFrom:       schema.As[*ReferenceType](v, "inheritedFrom"),
		Type:                schema.As[Type](v, "type"),
		IndexSignature:      schema.As[Reflection](v, "indexSignature"),
		DefaultValue:        v.OptionalString("defaultValue"),
	}
}
