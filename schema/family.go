package schema

import (
	"fmt"
	"sort"

	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/logger"
)

// Family decodes raw objects of a closed set of record types, picking the
// record from the object's discriminator field.
//
// Variants maps each tag to its record. A tag mapped to nil is explicitly
// unsupported. A tag with no entry uses Default, or is unsupported when
// Default is nil.
type Family[K comparable] struct {
	// Name of the family, used as the node descriptor name ("Type").
	Name string
	// Discriminator is the raw key holding the tag ("type").
	Discriminator string
	// Parse translates the discriminator string to a tag.
	Parse    func(s string) (K, bool)
	Variants map[K]*Record
	Default  *Record
	// Prepare rewrites the raw fields, with the discriminator already
	// removed, before construction. It receives a copy.
	Prepare  func(tag K, raw map[string]any) map[string]any
	Registry *Registry
}

// Lookup returns the record for tag.
func (f *Family[K]) Lookup(tag K) (*Record, bool) {
	rec, ok := f.Variants[tag]
	if !ok {
		return f.Default, f.Default != nil
	}
	return rec, rec != nil
}

// Supported lists the tags with a record, sorted.
func (f *Family[K]) Supported() []string {
	tags := make([]string, 0, len(f.Variants))
	for tag, rec := range f.Variants {
		if rec != nil {
			tags = append(tags, fmt.Sprint(tag))
		}
	}
	sort.Strings(tags)
	return tags
}

// Decode constructs the record selected by raw's discriminator.
func (f *Family[K]) Decode(raw any) (any, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, mismatch(Node{Name: f.Name}, raw, f.Registry.summaryKeys())
	}

	disc, ok := obj[f.Discriminator]
	if !ok {
		return nil, errors.Mark(&ValidationError{
			Owner:    f.Name,
			Field:    f.Discriminator,
			Expected: "string",
			Got:      "missing",
			Input:    Summarize(raw, f.Registry.summaryKeys()),
		}, errors.ErrValidation)
	}
	s, ok := disc.(string)
	if !ok {
		return nil, wrapField(f.Name, f.Discriminator, String, raw, f.Registry.summaryKeys(), mismatch(String, disc, f.Registry.summaryKeys()))
	}

	tag, ok := f.Parse(s)
	if !ok {
		return nil, unsupported(f.Name, f.Discriminator, s, f.Supported())
	}
	rec, ok := f.Lookup(tag)
	if !ok {
		return nil, unsupported(f.Name, f.Discriminator, s, f.Supported())
	}

	fields := make(map[string]any, len(obj))
	for k, v := range obj {
		if k != f.Discriminator {
			fields[k] = v
		}
	}
	if f.Prepare != nil {
		fields = f.Prepare(tag, fields)
	}

	out, err := f.Registry.Construct(rec, fields)
	if err != nil {
		name, _ := obj["name"].(string)
		return nil, errors.Wrapf(err, "%s (%s): %q", rec.Name, s, name)
	}
	if logger.ShouldLogTrace(logger.Verbosity) {
		f.Registry.log().Debugw("constructed record",
			logger.FieldRecord, rec.Name,
			logger.FieldKind, s)
	}
	return out, nil
}

// Node returns a descriptor that decodes members of the family.
func (f *Family[K]) Node(accept func(v any) bool) Node {
	return Node{Name: f.Name, Accept: accept, Decode: f.Decode}
}
