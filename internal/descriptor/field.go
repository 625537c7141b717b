package descriptor

import (
	"reflect"

	"github.com/structargs/structargs/internal/values"
)

// NArgs mirrors the token cardinalities understood by the parsing engine.
type NArgs string

const (
	// NArgsOne expects exactly one token.
	NArgsOne NArgs = ""
	// NArgsOptional expects zero or one token.
	NArgsOptional NArgs = "?"
	// NArgsAny expects any number of tokens.
	NArgsAny NArgs = "*"
	// NArgsAtLeastOne expects one or more tokens.
	NArgsAtLeastOne NArgs = "+"
)

// Spec is the argument specification derived for one field: the subset of
// recognized options the parsing engine needs to register a flag. Only the
// applicable options are populated.
type Spec struct {
	Name       string             // prefixed argument name
	Help       string             // help text, when a doc candidate exists
	Convert    values.ConvertFunc // token conversion for the declared type
	Default    any                // declared default, when one exists
	HasDefault bool
	Required   bool
	Choices    []string // ordered member names, enums only
	NArgs      NArgs
}

// defaultPolicy mirrors a field's declared default: none (required), a plain
// value, or a factory evaluated at derivation time.
type defaultPolicy uint8

const (
	defaultNone defaultPolicy = iota
	defaultValue
	defaultFactory
)

// meta is the immutable base metadata captured from reflection when the
// owning record is built. Field descriptors are reconstructed from it
// whenever a cross-cutting property changes, so the descriptors themselves
// never mutate in place.
type meta struct {
	field        reflect.StructField
	flagName     string // flag-cased declared name, without prefix
	kind         Kind
	participates bool
	policy       defaultPolicy
	defValue     any        // set when policy == defaultValue
	factory      func() any // set when policy == defaultFactory
	help         string
}

// Field wraps one declared struct field and derives its argument
// specification. Descriptors are created by their owning Record, once per
// declared field, and live as long as their owner.
type Field struct {
	meta     meta
	prefix   string
	multiple bool
	required *bool // explicit override; nil means derived
	spec     *Spec // derived eagerly, rebuilt when multiple changes
}

func newField(m meta, prefix string, multiple bool, required *bool) *Field {
	fld := &Field{meta: m, prefix: prefix, multiple: multiple, required: required}
	fld.spec = fld.derive()

	return fld
}

// Name returns the prefixed argument name of the field.
func (f *Field) Name() string { return f.prefix + f.meta.flagName }

// FieldName returns the bare declared field name, the key used in
// constructor-argument maps.
func (f *Field) FieldName() string { return f.meta.field.Name }

// Kind returns the field's type category.
func (f *Field) Kind() Kind { return f.meta.kind }

// Required reports the effective required status: the explicit override when
// one was set, otherwise whether the field declares no default.
func (f *Field) Required() bool {
	if f.required != nil {
		return *f.required
	}

	return f.meta.policy == defaultNone
}

// SetRequired overrides the derived required status. Once set, the override
// takes precedence permanently.
func (f *Field) SetRequired(value bool) { f.required = &value }

// Multiple reports whether the field operates in multiple-instances mode.
func (f *Field) Multiple() bool { return f.multiple }

// SetMultiple switches multiple mode and re-derives the argument
// specification.
func (f *Field) SetMultiple(value bool) {
	if value == f.multiple {
		return
	}
	f.multiple = value
	f.spec = f.derive()
}

// Spec returns the derived argument specification. The same value is handed
// back until SetMultiple forces a re-derivation. Nested records, record
// containers and non-participating fields have no specification at all.
func (f *Field) Spec() *Spec { return f.spec }

// derive computes the argument specification from the immutable base
// metadata and the current mode. It is a pure function and raises no errors:
// malformed declared types are a caller defect, not a runtime condition.
func (f *Field) derive() *Spec {
	m := f.meta

	if !m.participates || m.kind == KindRecord || m.kind == KindRecordList {
		return nil
	}

	spec := &Spec{
		Name:    f.Name(),
		Help:    m.help,
		Convert: values.Converter(m.field.Type),
	}

	switch m.policy {
	case defaultValue:
		spec.Default, spec.HasDefault = m.defValue, true
	case defaultFactory:
		spec.Default, spec.HasDefault = m.factory(), true
	default:
		spec.Required = true
	}

	switch m.kind {
	case KindEnum:
		spec.Choices = enumNames(m.field.Type)
		// The engine can only hand back text: members are looked up by
		// name again during materialization.
		spec.Convert = values.Identity
		if spec.HasDefault {
			if name, ok := enumName(m.field.Type, spec.Default); ok {
				spec.Default = name
			}
		}

	case KindList:
		spec.NArgs = NArgsAny
		elem := m.field.Type.Elem()
		if f.multiple {
			// One token group per instance, each carrying a whole list.
			spec.Convert = values.GroupConverter(elem)
		} else {
			spec.Convert = values.Converter(elem)
		}

	case KindBool:
		if m.policy != defaultValue {
			// A bool without a declared default is required, yet still
			// parses zero tokens: token absence must stay
			// distinguishable from any parsed value for the toggle.
			spec.Default, spec.HasDefault = false, true
			spec.Required = true
		}
		spec.Convert = values.BoolConverter
		if f.multiple {
			spec.NArgs = NArgsAny
		} else {
			spec.NArgs = NArgsOptional
		}
	}

	// Multiple-mode finalization, independent of the type category.
	if f.multiple {
		if spec.Required {
			spec.NArgs = NArgsAtLeastOne
		} else {
			spec.NArgs = NArgsAny
			// "No tokens supplied" must still yield a list that can be
			// broadcast to every instance.
			spec.Default = []any{spec.Default}
		}
	}

	return spec
}
