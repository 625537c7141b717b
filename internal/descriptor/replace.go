package descriptor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/structargs/structargs/internal/errors"
)

// Replace rebuilds the struct pointed to by data with selected fields
// overridden, routing every override through the record's materialization
// rules. Nested record fields accept either a whole replacement instance or
// a map of their own overrides, and dotted keys ("child.field") are
// equivalent to nested maps. The original instance is left untouched.
func (r *Record) Replace(data any, changes map[string]any) (any, error) {
	ptr := reflect.ValueOf(data)
	if !ptr.IsValid() || ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return nil, errors.ErrNotPointerToStruct
	}
	if ptr.Elem().Type() != r.typ {
		return nil, fmt.Errorf("%w: %T is not an instance of %s", errors.ErrContract, data, r.typ)
	}

	return r.replace(ptr.Elem(), unflatten(changes))
}

func (r *Record) replace(current reflect.Value, changes map[string]any) (any, error) {
	args := make(map[string]any)

	for _, fld := range r.fields {
		m := fld.meta
		if !m.participates {
			continue
		}

		change, changed := changes[m.field.Name]
		cur := current.FieldByIndex(m.field.Index)

		if m.kind != KindRecord {
			if changed {
				args[m.field.Name] = change
			} else {
				args[m.field.Name] = cur.Interface()
			}

			continue
		}

		child, ok := r.children[m.field.Name]
		if !ok {
			continue
		}

		switch overrides := change.(type) {
		case nil:
			if !changed {
				// Unchanged nested record: carry the current instance over.
				if cur.Kind() == reflect.Ptr && cur.IsNil() {
					continue
				}
				args[m.field.Name] = cur.Interface()
			}
			// An explicit nil override clears a pointer field.

		case map[string]any:
			base := cur
			if base.Kind() == reflect.Ptr {
				if base.IsNil() {
					base = reflect.New(base.Type().Elem()).Elem()
				} else {
					base = base.Elem()
				}
			}
			replaced, err := child.replace(base, unflatten(overrides))
			if err != nil {
				return nil, err
			}
			args[m.field.Name] = replaced

		default:
			// A whole replacement instance.
			args[m.field.Name] = change
		}
	}

	return r.Instantiate(args)
}

// unflatten expands dotted keys one level, so "a.b.c" becomes
// {"a": {"b.c": ...}}; deeper levels are expanded by the next recursion.
// Override maps are copied, never mutated in place.
func unflatten(changes map[string]any) map[string]any {
	out := make(map[string]any, len(changes))

	for key, value := range changes {
		head, rest, found := strings.Cut(key, ".")
		switch overrides, isMap := value.(map[string]any); {
		case found:
			ensureNested(out, head)[rest] = value
		case isMap:
			nested := ensureNested(out, head)
			for k, v := range overrides {
				nested[k] = v
			}
		default:
			out[head] = value
		}
	}

	return out
}

func ensureNested(out map[string]any, key string) map[string]any {
	if nested, ok := out[key].(map[string]any); ok {
		return nested
	}
	nested := make(map[string]any)
	out[key] = nested

	return nested
}
