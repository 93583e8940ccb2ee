package typedoc

import (
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/input"
	"github.com/teranos/typedoc/schema"
)

// Options configure a Decoder. The zero value decodes strictly.
type Options struct {
	// Lenient drops undeclared fields instead of failing.
	Lenient bool
	// MaxSummaryKeys bounds the keys listed when an error summarizes an
	// object. Zero uses schema.DefaultSummaryKeys.
	MaxSummaryKeys int
	// Logger receives materialization and dropped-field debug logs.
	Logger *zap.SugaredLogger
}

// Decoder turns raw JSON values into reflection trees. It is safe for
// concurrent use; record layouts are materialized once per decoder.
type Decoder struct {
	s *schemas
}

// NewDecoder returns a decoder configured by opts.
func NewDecoder(opts Options) *Decoder {
	reg := schema.NewRegistry()
	reg.Strict = !opts.Lenient
	if opts.MaxSummaryKeys > 0 {
		reg.MaxSummaryKeys = opts.MaxSummaryKeys
	}
	reg.Logger = opts.Logger
	return &Decoder{s: newSchemas(reg)}
}

// Registry exposes the decoder's record registry.
func (d *Decoder) Registry() *schema.Registry { return d.s.registry }

// SupportedTypes lists the type tags the decoder constructs, sorted.
func (d *Decoder) SupportedTypes() []string { return d.s.types.Supported() }

// UnsupportedTypes lists the type tags TypeDoc emits that fail with an
// unsupported kind error.
func UnsupportedTypes() []string { return append([]string(nil), unsupportedTypes...) }

// FromJSON decodes a reflection of any kind from a raw JSON value.
func (d *Decoder) FromJSON(raw any) (Reflection, error) {
	v, err := d.s.reflections.Decode(raw)
	if err != nil {
		return nil, err
	}
	return v.(Reflection), nil
}

// DecodeType decodes a type expression from a raw JSON value.
func (d *Decoder) DecodeType(raw any) (Type, error) {
	v, err := d.s.types.Decode(raw)
	if err != nil {
		return nil, err
	}
	return v.(Type), nil
}

// DecodeProject decodes a document root, which must be a Project.
func (d *Decoder) DecodeProject(raw any) (*ContainerReflection, error) {
	r, err := d.FromJSON(raw)
	if err != nil {
		return nil, err
	}
	project, ok := r.(*ContainerReflection)
	if !ok || project.Kind != KindProject {
		return nil, errors.Mark(&schema.ValidationError{
			Owner:    "Project",
			Field:    "kindString",
			Expected: KindProject.Serialized(),
			Got:      r.Node().Kind.Serialized(),
			Input:    schema.Summarize(raw, d.s.registry.MaxSummaryKeys),
		}, errors.ErrValidation)
	}
	return project, nil
}

// Parse decodes a project from JSON (or JSONC) text.
func (d *Decoder) Parse(data []byte) (*ContainerReflection, error) {
	raw, err := input.Decode(data)
	if err != nil {
		return nil, err
	}
	return d.DecodeProject(raw)
}

var defaultDecoder = sync.OnceValue(func() *Decoder {
	return NewDecoder(Options{})
})

// FromJSON decodes a reflection with the default strict decoder.
func FromJSON(raw any) (Reflection, error) { return defaultDecoder().FromJSON(raw) }

// SupportedTypes lists the type tags of the default decoder.
func SupportedTypes() []string { return defaultDecoder().SupportedTypes() }

// DecodeType decodes a type with the default strict decoder.
func DecodeType(raw any) (Type, error) { return defaultDecoder().DecodeType(raw) }

// DecodeProject decodes a project root with the default strict decoder.
func DecodeProject(raw any) (*ContainerReflection, error) {
	return defaultDecoder().DecodeProject(raw)
}

// Parse decodes project JSON text with the default strict decoder.
func Parse(data []byte) (*ContainerReflection, error) { return defaultDecoder().Parse(data) }
