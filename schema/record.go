package schema

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/logger"
)

// Field is one declared field of a Record.
// A field that is absent from the raw object takes Default, unless it is
// Required, in which case construction fails.
type Field struct {
	Name     string
	Type     Descriptor
	Default  any
	Required bool
}

// Required declares a field that must be present.
func Required(name string, d Descriptor) Field {
	return Field{Name: name, Type: d, Required: true}
}

// OptionalField declares a field that may be absent and defaults to nil.
// The descriptor is widened to accept null.
func OptionalField(name string, d Descriptor) Field {
	return Field{Name: name, Type: Optional(d)}
}

// WithDefault declares a field that takes def when absent.
func WithDefault(name string, d Descriptor, def any) Field {
	return Field{Name: name, Type: d, Default: def}
}

// Record declares a constructible schema type.
//
// Fields is evaluated once, on first construction, so declarations may refer
// to records defined later or to the record itself. Base fields come first;
// a field redeclared by a derived record keeps its base position.
type Record struct {
	Name    string
	Base    *Record
	Fields  func() []Field
	Discard []string
	Build   func(v Values) (any, error)
}

type boundField struct {
	Field
	owner string
}

type layout struct {
	fields  []boundField
	index   map[string]int
	discard map[string]bool
}

// Registry materializes records on first use and constructs them from raw
// objects. The zero value is not usable; call NewRegistry.
type Registry struct {
	// Strict rejects undeclared keys. When false they are dropped.
	Strict bool
	// MaxSummaryKeys bounds the mapping keys listed in error input summaries.
	MaxSummaryKeys int
	// Logger defaults to the global logger when nil.
	Logger *zap.SugaredLogger

	mu      sync.Mutex
	layouts map[string]*layout
	records map[string]*Record
}

// NewRegistry returns a strict registry.
func NewRegistry() *Registry {
	return &Registry{
		Strict:         true,
		MaxSummaryKeys: DefaultSummaryKeys,
		layouts:        make(map[string]*layout),
		records:        make(map[string]*Record),
	}
}

func (r *Registry) log() *zap.SugaredLogger {
	if r.Logger != nil {
		return r.Logger
	}
	return logger.Logger
}

func (r *Registry) summaryKeys() int {
	if r.MaxSummaryKeys > 0 {
		return r.MaxSummaryKeys
	}
	return DefaultSummaryKeys
}

// Materialize builds the layout of rec and every base it derives from.
// It is a no-op for records already materialized.
func (r *Registry) Materialize(rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.materializeLocked(rec)
	return err
}

func (r *Registry) materializeLocked(rec *Record) (*layout, error) {
	if l, ok := r.layouts[rec.Name]; ok {
		if r.records[rec.Name] != rec {
			return nil, errors.AssertionFailedf("record name %q registered twice", rec.Name)
		}
		return l, nil
	}

	l := &layout{index: make(map[string]int), discard: make(map[string]bool)}
	if rec.Base != nil {
		base, err := r.materializeLocked(rec.Base)
		if err != nil {
			return nil, err
		}
		l.fields = append(l.fields, base.fields...)
		for k, v := range base.index {
			l.index[k] = v
		}
		for k := range base.discard {
			l.discard[k] = true
		}
	}
	for _, k := range rec.Discard {
		l.discard[k] = true
	}

	var own []Field
	if rec.Fields != nil {
		own = rec.Fields()
	}
	for _, f := range own {
		if f.Type == nil {
			return nil, errors.AssertionFailedf("%s.%s: nil descriptor", rec.Name, f.Name)
		}
		bf := boundField{Field: f, owner: rec.Name}
		if i, ok := l.index[f.Name]; ok {
			l.fields[i] = bf
			continue
		}
		l.index[f.Name] = len(l.fields)
		l.fields = append(l.fields, bf)
	}

	r.layouts[rec.Name] = l
	r.records[rec.Name] = rec
	r.log().Debugw("materialized record",
		logger.FieldRecord, rec.Name,
		logger.FieldCount, len(l.fields))
	return l, nil
}

func (r *Registry) layoutFor(rec *Record) (*layout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.materializeLocked(rec)
}

// Materialized reports whether the named record has been materialized.
func (r *Registry) Materialized(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.layouts[name]
	return ok
}

// Layout returns the field names of a materialized record in construction
// order, or nil if the record has not been materialized.
func (r *Registry) Layout(name string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.layouts[name]
	if !ok {
		return nil
	}
	names := make([]string, len(l.fields))
	for i, f := range l.fields {
		names[i] = f.Name
	}
	return names
}

// Construct validates raw field by field against rec and builds it.
func (r *Registry) Construct(rec *Record, raw map[string]any) (any, error) {
	l, err := r.layoutFor(rec)
	if err != nil {
		return nil, err
	}

	var undeclared []string
	for k := range raw {
		if _, ok := l.index[k]; ok || l.discard[k] {
			continue
		}
		undeclared = append(undeclared, k)
	}
	if len(undeclared) > 0 {
		sort.Strings(undeclared)
		if r.Strict {
			return nil, errors.WithHint(
				construction(rec.Name, "undeclared fields", undeclared, nil),
				"decode in lenient mode to drop undeclared fields")
		}
		r.log().Debugw("dropped undeclared fields",
			logger.FieldRecord, rec.Name,
			logger.FieldFields, undeclared)
	}

	var missing []string
	for _, f := range l.fields {
		if _, ok := raw[f.Name]; !ok && f.Required {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return nil, construction(rec.Name, "missing required fields", missing, nil)
	}

	values := make(Values, len(l.fields))
	for _, f := range l.fields {
		v, ok := raw[f.Name]
		if !ok {
			values[f.Name] = f.Default
			continue
		}
		cv, err := validate(f.Type, v, r.summaryKeys())
		if err != nil {
			return nil, wrapField(f.owner, f.Name, f.Type, v, r.summaryKeys(), err)
		}
		values[f.Name] = cv
	}

	if rec.Build == nil {
		return values, nil
	}
	out, err := rec.Build(values)
	if err != nil {
		return nil, construction(rec.Name, "rejected fields", nil, err)
	}
	return out, nil
}

// Node returns a descriptor that constructs rec from a raw mapping.
// accept reports whether a value already is an instance of the record.
func (r *Registry) Node(rec *Record, accept func(v any) bool) Node {
	return Node{
		Name:   rec.Name,
		Accept: accept,
		Decode: func(raw any) (any, error) {
			m, ok := raw.(map[string]any)
			if !ok {
				return nil, mismatch(Node{Name: rec.Name}, raw, r.summaryKeys())
			}
			return r.Construct(rec, m)
		},
	}
}
