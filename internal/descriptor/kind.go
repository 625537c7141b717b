package descriptor

import (
	"encoding"
	"reflect"

	"github.com/structargs/structargs/internal/interfaces"
)

// Kind is the closed set of field type categories. It is computed once per
// field at record construction and dispatched over exhaustively afterwards,
// so the set of field kinds stays reviewable in one place.
type Kind uint8

const (
	// KindScalar covers every single-valued type without special handling.
	KindScalar Kind = iota

	// KindBool is a boolean field, with optional-token toggle semantics.
	KindBool

	// KindEnum is a field whose type implements interfaces.Enum.
	KindEnum

	// KindList is a slice or array with non-record elements.
	KindList

	// KindRecord is a nested record, populated by the composition layer
	// and never directly exposed as a flag.
	KindRecord

	// KindRecordList is a slice or array of records. Such fields are never
	// exposed as flags and must never reach materialization.
	KindRecordList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	case KindRecordList:
		return "record list"
	}

	return "unknown"
}

var enumType = reflect.TypeOf((*interfaces.Enum)(nil)).Elem()

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// kindOf classifies a declared field type. The dispatch order matters: enums
// win over their underlying kind, containers are split on their element type,
// and bool is separated from the scalar fallback.
func kindOf(typ reflect.Type) Kind {
	if isEnum(typ) {
		return KindEnum
	}

	switch typ.Kind() {
	case reflect.Slice, reflect.Array:
		if isRecord(typ.Elem()) {
			return KindRecordList
		}

		return KindList
	case reflect.Struct, reflect.Ptr:
		if isRecord(typ) {
			return KindRecord
		}
	case reflect.Bool:
		return KindBool
	}

	return KindScalar
}

func isEnum(typ reflect.Type) bool {
	return typ.Implements(enumType) || reflect.PointerTo(typ).Implements(enumType)
}

// isRecord reports whether typ is a struct type to be composed recursively
// rather than converted as a single value. Structs that unmarshal themselves
// from text (time.Time, net.IP, ...) are treated as scalars.
func isRecord(typ reflect.Type) bool {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return false
	}

	return !reflect.PointerTo(typ).Implements(textUnmarshalerType)
}

// enumInstance returns the interfaces.Enum view of the type's zero value.
func enumInstance(typ reflect.Type) (interfaces.Enum, bool) {
	zero := reflect.New(typ)
	if enum, ok := zero.Elem().Interface().(interfaces.Enum); ok {
		return enum, true
	}
	if enum, ok := zero.Interface().(interfaces.Enum); ok {
		return enum, true
	}

	return nil, false
}

func enumNames(typ reflect.Type) []string {
	if enum, ok := enumInstance(typ); ok {
		return enum.EnumNames()
	}

	return nil
}

// enumMember resolves a member name to the member itself.
func enumMember(typ reflect.Type, name string) (any, bool) {
	if enum, ok := enumInstance(typ); ok {
		return enum.EnumByName(name)
	}

	return nil, false
}

// enumName maps a member value back to its declared name.
func enumName(typ reflect.Type, member any) (string, bool) {
	enum, ok := enumInstance(typ)
	if !ok {
		return "", false
	}

	for _, name := range enum.EnumNames() {
		if value, ok := enum.EnumByName(name); ok && reflect.DeepEqual(value, member) {
			return name, true
		}
	}

	return "", false
}
