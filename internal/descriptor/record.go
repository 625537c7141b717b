package descriptor

import (
	"reflect"

	"github.com/structargs/structargs/internal/errors"
	"github.com/structargs/structargs/internal/interfaces"
	"github.com/structargs/structargs/internal/values"
)

// Record wraps one struct type and owns the ordered field descriptors
// derived from its declarations: insertion order is declaration order. The
// cross-cutting properties (prefix, required, multiple) cascade to every
// field by rebuilding the descriptors from their immutable base metadata.
type Record struct {
	typ      reflect.Type
	metas    []meta
	fields   []*Field
	children map[string]*Record // nested records, keyed by declared field name
	prefix   string
	required *bool
	multiple bool
	opts     *Opts
}

// New builds a Record for the struct pointed to by data. The pointed-to
// value acts as the prototype: its non-zero fields become declared defaults,
// alongside `default` tags and types implementing interfaces.Defaulter.
func New(data any, optFuncs ...OptFunc) (*Record, error) {
	opts := DefOpts().Apply(optFuncs...)

	return newRecord(data, opts)
}

func newRecord(data any, opts *Opts) (*Record, error) {
	if data == nil {
		return nil, errors.ErrNilObject
	}
	ptr := reflect.ValueOf(data)
	if ptr.Kind() != reflect.Ptr {
		return nil, errors.ErrNotPointerToStruct
	}
	if ptr.IsNil() {
		return nil, errors.ErrNilObject
	}
	val := ptr.Elem()
	if val.Kind() != reflect.Struct {
		return nil, errors.ErrNotPointerToStruct
	}

	rec := &Record{
		typ:      val.Type(),
		children: make(map[string]*Record),
		prefix:   opts.Prefix,
		opts:     opts,
	}
	if err := rec.scan(val); err != nil {
		return nil, err
	}
	rec.rebuild()

	return rec, nil
}

// scan captures the immutable base metadata of every declared field, and
// builds child records for nested struct fields.
func (r *Record) scan(val reflect.Value) error {
	for i := 0; i < r.typ.NumField(); i++ {
		field := r.typ.Field(i)
		if !field.IsExported() {
			continue
		}

		m, err := r.fieldMeta(field, val.Field(i))
		if err != nil {
			return err
		}
		r.metas = append(r.metas, m)

		if m.kind == KindRecord && m.participates {
			child, err := r.newChild(field, val.Field(i))
			if err != nil {
				return err
			}
			r.children[field.Name] = child
		}
	}

	return nil
}

func (r *Record) newChild(field reflect.StructField, value reflect.Value) (*Record, error) {
	if field.Type.Kind() == reflect.Ptr && value.IsNil() {
		value = reflect.New(field.Type.Elem()).Elem()
	}
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}

	proto := reflect.New(value.Type())
	proto.Elem().Set(value)

	return newRecord(proto.Interface(), r.opts.copy())
}

// fieldMeta derives the immutable metadata for one declared field.
func (r *Record) fieldMeta(field reflect.StructField, value reflect.Value) (meta, error) {
	m := meta{
		field:        field,
		flagName:     flagName(field, r.opts),
		kind:         kindOf(field.Type),
		participates: participates(field),
		help:         r.opts.Docs.FieldDoc(r.typ, field.Name).Text(),
	}

	if !m.participates || m.kind == KindRecord || m.kind == KindRecordList {
		return m, nil
	}

	// Declared default, in priority order: `default` tag, non-zero
	// prototype value, then a factory on the type itself.
	if def, ok, err := defaultFromTag(field, m.kind); err != nil {
		return m, err
	} else if ok {
		m.policy, m.defValue = defaultValue, def

		return m, nil
	}

	if !value.IsZero() {
		m.policy, m.defValue = defaultValue, value.Interface()

		return m, nil
	}

	if factory, ok := defaulterFactory(field.Type); ok {
		m.policy, m.factory = defaultFactory, factory
	}

	return m, nil
}

// rebuild reconstructs all field descriptors from the immutable base
// metadata and the current cross-cutting properties, cascading the same
// properties into child records.
func (r *Record) rebuild() {
	r.fields = r.fields[:0]

	for _, m := range r.metas {
		r.fields = append(r.fields, newField(m, r.prefix, r.multiple, r.required))

		child, ok := r.children[m.field.Name]
		if !ok {
			continue
		}
		child.prefix = r.prefix + m.flagName + r.opts.FlagDivider
		if r.required != nil {
			child.required = r.required
		}
		child.multiple = r.multiple
		child.rebuild()
	}
}

// Type returns the wrapped struct type.
func (r *Record) Type() reflect.Type { return r.typ }

// Fields returns the field descriptors in declaration order.
func (r *Record) Fields() []*Field { return r.fields }

// Field returns the descriptor for the declared field name.
func (r *Record) Field(name string) *Field {
	for _, fld := range r.fields {
		if fld.FieldName() == name {
			return fld
		}
	}

	return nil
}

// Child returns the record composed for a nested struct field.
func (r *Record) Child(name string) *Record { return r.children[name] }

// Prefix returns the prefix prepended to every derived argument name.
func (r *Record) Prefix() string { return r.prefix }

// SetPrefix changes the name prefix and cascades it to every field and
// child record.
func (r *Record) SetPrefix(prefix string) {
	r.prefix = prefix
	r.rebuild()
}

// Multiple reports whether the record parses several instances at once.
func (r *Record) Multiple() bool { return r.multiple }

// SetMultiple switches multiple-instances mode on every field and child.
func (r *Record) SetMultiple(value bool) {
	r.multiple = value
	r.rebuild()
}

// SetRequired overrides the required status of every field and child.
func (r *Record) SetRequired(value bool) {
	r.required = &value
	r.rebuild()
}

// flagName picks the argument name for a field: an explicit `long` or `flag`
// tag when present, the flag-cased field name otherwise.
func flagName(field reflect.StructField, opts *Opts) string {
	if name, ok := field.Tag.Lookup("long"); ok && name != "" {
		return name
	}
	if name, ok := field.Tag.Lookup("flag"); ok && name != "" && name != "-" {
		return name
	}

	return camelToFlag(field.Name, opts.FlagDivider)
}

// participates reports whether the field takes part in construction at all.
// Fields opted out with `flag:"-"` are neither exposed nor materialized.
func participates(field reflect.StructField) bool {
	return field.Tag.Get("flag") != "-"
}

// defaultFromTag decodes an explicit `default:"..."` tag with the grammar of
// the field's kind.
func defaultFromTag(field reflect.StructField, kind Kind) (any, bool, error) {
	tag, ok := field.Tag.Lookup("default")
	if !ok {
		return nil, false, nil
	}

	switch kind {
	case KindEnum:
		// Kept as the member name; derivation normalizes enum defaults
		// to name strings anyway.
		return tag, true, nil
	case KindList:
		def, err := values.GroupConverter(field.Type.Elem())(tag)

		return def, true, err
	case KindBool:
		def, err := values.ParseBool(tag)

		return def, true, err
	default:
		def, err := values.Converter(field.Type)(tag)

		return def, true, err
	}
}

// defaulterFactory returns a factory when the field type implements
// interfaces.Defaulter on its value or pointer.
func defaulterFactory(typ reflect.Type) (func() any, bool) {
	zero := reflect.New(typ)
	if def, ok := zero.Elem().Interface().(interfaces.Defaulter); ok {
		return def.DefaultValue, true
	}
	if def, ok := zero.Interface().(interfaces.Defaulter); ok {
		return def.DefaultValue, true
	}

	return nil, false
}
