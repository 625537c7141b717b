// Package values converts raw command-line tokens into typed Go values, and
// coerces parsed values back onto struct fields.
package values

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/structargs/structargs/internal/errors"
)

// ConvertFunc turns one raw command-line token into a typed value.
type ConvertFunc func(token string) (any, error)

// Identity returns the token unchanged. Enumerated arguments use it, since
// the parsing engine can only emit text and members are mapped back by name
// during materialization.
func Identity(token string) (any, error) { return token, nil }

// BoolConverter parses a token with the permissive boolean grammar.
func BoolConverter(token string) (any, error) { return ParseBool(token) }

// ParseBool converts a permissive set of textual tokens to a boolean.
func ParseBool(token string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}

	return false, fmt.Errorf("%w: %q is not a boolean", errors.ErrConvert, token)
}

// Converter returns a ConvertFunc decoding single tokens into typ.
func Converter(typ reflect.Type) ConvertFunc {
	return func(token string) (any, error) {
		val := reflect.New(typ).Elem()
		if err := SetString(val, token); err != nil {
			return nil, err
		}

		return val.Interface(), nil
	}
}

// GroupConverter returns a ConvertFunc parsing one whole token group into a
// list of elem-typed values. It is used in multiple mode, where every
// supplied group ("1 2 3", "1,2,3" or "[1,2,3]") is one instance's list.
func GroupConverter(elem reflect.Type) ConvertFunc {
	convert := Converter(elem)

	return func(token string) (any, error) {
		items := SplitGroup(token)
		group := make([]any, 0, len(items))

		for _, item := range items {
			value, err := convert(item)
			if err != nil {
				return nil, err
			}
			group = append(group, value)
		}

		return group, nil
	}
}

// SplitGroup breaks a token group into its items. Brackets are optional,
// items are separated by commas or whitespace.
func SplitGroup(token string) []string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]") {
		token = token[1 : len(token)-1]
	}

	if strings.ContainsRune(token, ',') {
		parts := strings.Split(token, ",")
		items := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}

		return items
	}

	return strings.Fields(token)
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// SetString decodes a token into val based on its Kind, initializing nil
// pointers on the way.
func SetString(val reflect.Value, token string) error {
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}

		return SetString(val.Elem(), token)
	}

	// Types that unmarshal themselves from text take precedence over the
	// kind-based conversion (time.Time, net.IP, ...).
	if val.CanAddr() && val.Addr().Type().Implements(textUnmarshalerType) {
		return val.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(token))
	}

	switch val.Kind() {
	case reflect.String:
		val.SetString(token)
	case reflect.Bool:
		parsed, err := ParseBool(token)
		if err != nil {
			return err
		}
		val.SetBool(parsed)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// time.Duration is an int64 under the hood but has its own grammar.
		if val.Type() == reflect.TypeOf(time.Duration(0)) {
			parsed, err := time.ParseDuration(token)
			if err != nil {
				return fmt.Errorf("%w: %w", errors.ErrConvert, err)
			}
			val.SetInt(int64(parsed))

			return nil
		}
		parsed, err := strconv.ParseInt(token, 10, val.Type().Bits())
		if err != nil {
			return fmt.Errorf("%w: %w", errors.ErrConvert, err)
		}
		val.SetInt(parsed)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(token, 10, val.Type().Bits())
		if err != nil {
			return fmt.Errorf("%w: %w", errors.ErrConvert, err)
		}
		val.SetUint(parsed)
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(token, val.Type().Bits())
		if err != nil {
			return fmt.Errorf("%w: %w", errors.ErrConvert, err)
		}
		val.SetFloat(parsed)
	default:
		return fmt.Errorf("%w: unsupported type %s", errors.ErrConvert, val.Type())
	}

	return nil
}

// Coerce adapts a raw parsed value to the target type. Strings go through
// the token conversion, numeric values through Go conversion rules.
func Coerce(raw any, typ reflect.Type) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(typ), nil
	}

	val := reflect.ValueOf(raw)
	if val.Type().AssignableTo(typ) {
		return val, nil
	}

	if val.Kind() == reflect.String && typ.Kind() != reflect.String {
		out := reflect.New(typ).Elem()
		if err := SetString(out, val.String()); err != nil {
			return reflect.Value{}, err
		}

		return out, nil
	}

	if convertible(val.Type(), typ) {
		return val.Convert(typ), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %v (%T) into %s", errors.ErrConvert, raw, raw, typ)
}

// CoerceList adapts a raw slice value onto the declared slice or array type,
// coercing every element.
func CoerceList(raw any, typ reflect.Type) (reflect.Value, error) {
	val := reflect.ValueOf(raw)
	if !val.IsValid() || (val.Kind() != reflect.Slice && val.Kind() != reflect.Array) {
		return reflect.Value{}, fmt.Errorf("%w: %v (%T) is not a list", errors.ErrConvert, raw, raw)
	}

	elem := typ.Elem()

	switch typ.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(typ, val.Len(), val.Len())
		for i := 0; i < val.Len(); i++ {
			item, err := Coerce(val.Index(i).Interface(), elem)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(item)
		}

		return out, nil

	case reflect.Array:
		if val.Len() != typ.Len() {
			return reflect.Value{}, fmt.Errorf("%w: %d values into %s", errors.ErrConvert, val.Len(), typ)
		}
		out := reflect.New(typ).Elem()
		for i := 0; i < val.Len(); i++ {
			item, err := Coerce(val.Index(i).Interface(), elem)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(item)
		}

		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s is not a list type", errors.ErrConvert, typ)
}

// convertible restricts reflect's conversion rules to the ones that do not
// change meaning: numeric widening and identical kinds. Without the guard,
// an int would happily convert to a one-rune string.
func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	if from.Kind() == to.Kind() {
		return true
	}

	return isNumeric(from.Kind()) && isNumeric(to.Kind())
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}

	return false
}
