package descriptor

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/structargs/structargs/internal/errors"
	"github.com/structargs/structargs/internal/values"
)

// InconsistentArgumentsError reports a multi-valued field whose supplied
// length can neither be broadcast (length 1) nor distributed positionally
// (length == instance count). This is a user-input error, not a defect.
type InconsistentArgumentsError struct {
	Field     string // prefixed argument name
	Count     int    // values actually supplied
	Instances int    // instances requested
}

func (e *InconsistentArgumentsError) Error() string {
	return fmt.Sprintf("field %q contains %d values, but either 1 or %d values were expected",
		e.Field, e.Count, e.Instances)
}

// ConstructorArguments extracts one constructor-argument map per instance
// from the raw values produced by the parsing engine. In multiple mode every
// raw value must be a list, which is either broadcast (single element) or
// distributed positionally (one element per instance).
func (r *Record) ConstructorArguments(raw map[string]any, instances int) ([]map[string]any, error) {
	if r.multiple && instances <= 1 {
		return nil, fmt.Errorf("%w: multiple mode expects more than one instance, got %d",
			errors.ErrContract, instances)
	}
	if !r.multiple && instances != 1 {
		return nil, fmt.Errorf("%w: single mode expects exactly one instance, got %d",
			errors.ErrContract, instances)
	}

	out := make([]map[string]any, 0, instances)

	for i := 0; i < instances; i++ {
		args := make(map[string]any)

		for _, fld := range r.fields {
			m := fld.meta
			if !m.participates || m.kind == KindRecord {
				// Nested records are populated by the composition layer.
				continue
			}
			if m.kind == KindRecordList {
				return nil, fmt.Errorf("%w: field %s is a record container and cannot be parsed directly",
					errors.ErrContract, fld.Name())
			}

			value, ok := raw[fld.Name()]
			if !ok {
				return nil, fmt.Errorf("%w: argument %q missing from raw values (have: %s)",
					errors.ErrContract, fld.Name(), knownKeys(raw))
			}

			if !r.multiple {
				args[m.field.Name] = value

				continue
			}

			items := reflect.ValueOf(value)
			if !items.IsValid() || (items.Kind() != reflect.Slice && items.Kind() != reflect.Array) {
				return nil, fmt.Errorf("%w: field %s should hold a list value in multiple mode, got %T",
					errors.ErrContract, fld.Name(), value)
			}

			switch items.Len() {
			case 1:
				args[m.field.Name] = items.Index(0).Interface()
			case instances:
				args[m.field.Name] = items.Index(i).Interface()
			default:
				return nil, &InconsistentArgumentsError{
					Field:     fld.Name(),
					Count:     items.Len(),
					Instances: instances,
				}
			}
		}

		out = append(out, args)
	}

	return out, nil
}

// Instantiate constructs one instance of the wrapped struct type from a
// fully resolved constructor-argument map, applying the per-kind
// materialization rules. The returned value is a pointer to the new struct.
func (r *Record) Instantiate(args map[string]any) (any, error) {
	ptr := reflect.New(r.typ)

	for _, fld := range r.fields {
		m := fld.meta
		if !m.participates {
			continue
		}
		if m.kind == KindRecordList {
			return nil, fmt.Errorf("%w: field %s is a record container and must be composed recursively",
				errors.ErrContract, fld.Name())
		}

		target := ptr.Elem().FieldByIndex(m.field.Index)
		value, ok := args[m.field.Name]

		if m.kind == KindRecord {
			// The composition layer may have injected a child instance;
			// without one the field is left for a later composition step.
			if ok {
				if err := setRecord(target, value); err != nil {
					return nil, err
				}
			}

			continue
		}

		if !ok {
			return nil, fmt.Errorf("%w: argument %q missing from constructor arguments",
				errors.ErrContract, m.field.Name)
		}
		if err := materialize(target, m, value); err != nil {
			return nil, err
		}
	}

	return ptr.Interface(), nil
}

// materialize applies the per-kind conversion rule and sets the field.
func materialize(target reflect.Value, m meta, value any) error {
	switch m.kind {
	case KindEnum:
		if name, ok := value.(string); ok {
			member, found := enumMember(m.field.Type, name)
			if !found {
				return fmt.Errorf("%w: %q is not a member of %s",
					errors.ErrInvalidChoice, name, m.field.Type)
			}

			return assign(target, member)
		}
		// Already a member, e.g. a default that never went through text.
		return assign(target, value)

	case KindList:
		out, err := values.CoerceList(value, m.field.Type)
		if err != nil {
			return err
		}
		target.Set(out)

		return nil

	case KindBool:
		switch parsed := value.(type) {
		case nil:
			// Flag present without a token: toggle the declared default.
			def := false
			if m.policy == defaultValue {
				def, _ = m.defValue.(bool)
			}
			target.SetBool(!def)
		case bool:
			target.SetBool(parsed)
		default:
			return fmt.Errorf("%w: bool field %s got %v (%T), expected absent or bool",
				errors.ErrContract, m.field.Name, value, value)
		}

		return nil
	}

	out, err := values.Coerce(value, m.field.Type)
	if err != nil {
		return err
	}
	target.Set(out)

	return nil
}

// setRecord assigns a composed child instance, bridging the pointer
// mismatch between Instantiate's output and the declared field type.
func setRecord(target reflect.Value, value any) error {
	child := reflect.ValueOf(value)
	if child.Kind() == reflect.Ptr && target.Kind() != reflect.Ptr {
		child = child.Elem()
	}

	if !child.IsValid() || !child.Type().AssignableTo(target.Type()) {
		return fmt.Errorf("%w: %T is not assignable to nested record field %s",
			errors.ErrContract, value, target.Type())
	}
	target.Set(child)

	return nil
}

func assign(target reflect.Value, value any) error {
	val := reflect.ValueOf(value)
	if !val.IsValid() || !val.Type().AssignableTo(target.Type()) {
		return fmt.Errorf("%w: %v (%T) is not assignable to %s",
			errors.ErrConvert, value, value, target.Type())
	}
	target.Set(val)

	return nil
}

func knownKeys(raw map[string]any) string {
	keys := maps.Keys(raw)
	sort.Strings(keys)

	return strings.Join(keys, ", ")
}
