// Package flags registers derived argument specifications on a pflag flag
// set, and collects the raw parsed values back once the set has been parsed.
package flags

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/structargs/structargs/internal/descriptor"
	"github.com/structargs/structargs/internal/errors"
)

// flagSet describes the interface that's implemented by the pflag library
// and required to register derived specifications.
type flagSet interface {
	VarPF(value pflag.Value, name, shorthand, usage string) *pflag.Flag
}

var _ flagSet = (*pflag.FlagSet)(nil)

// noTokenDefVal marks a flag given without a value token, so that the
// collector can report token absence (the toggle case) instead of a value.
const noTokenDefVal = "\x00"

// RequiredAnnotation is set on flags whose derived specification is
// required, for consumers that render usage or enforce presence.
const RequiredAnnotation = "structargs_required"

// RawArgs accumulates parsed tokens per argument and yields the raw-values
// map consumed by Record.ConstructorArguments.
type RawArgs struct {
	entries []*rawValue
}

// rawValue adapts one derived specification to the pflag.Value interface:
// every Set call converts one token with the spec's converter and appends it.
type rawValue struct {
	spec    *descriptor.Spec
	flag    *pflag.Flag
	parsed  []any
	noToken bool
}

func (v *rawValue) Set(token string) error {
	if token == noTokenDefVal {
		v.noToken = true

		return nil
	}

	parsed, err := v.spec.Convert(token)
	if err != nil {
		return err
	}
	v.parsed = append(v.parsed, parsed)

	return nil
}

func (v *rawValue) String() string {
	if !v.spec.HasDefault {
		return ""
	}

	return fmt.Sprintf("%v", v.spec.Default)
}

func (v *rawValue) Type() string {
	if v.spec.NArgs == descriptor.NArgsAny || v.spec.NArgs == descriptor.NArgsAtLeastOne {
		return "list"
	}

	return "value"
}

// Generate registers every specification of rec, including its nested
// records, on a fresh flag set.
func Generate(rec *descriptor.Record, name string) (*pflag.FlagSet, *RawArgs) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	raw := GenerateTo(rec, fs)

	return fs, raw
}

// GenerateTo registers every specification of rec on dst and returns the
// collector that reads the raw values back after parsing.
func GenerateTo(rec *descriptor.Record, dst flagSet) *RawArgs {
	raw := &RawArgs{}

	for _, spec := range rec.AllSpecs() {
		value := &rawValue{spec: spec}
		flag := dst.VarPF(value, spec.Name, "", spec.Help)

		if spec.NArgs == descriptor.NArgsOptional {
			flag.NoOptDefVal = noTokenDefVal
		}
		if spec.Required {
			flag.Annotations = map[string][]string{RequiredAnnotation: {"true"}}
		}

		value.flag = flag
		raw.entries = append(raw.entries, value)
	}

	return raw
}

// Values returns the raw-values map after the flag set has been parsed.
// Flags that never appeared fall back to their derived default; required
// flags that never appeared are an error.
func (r *RawArgs) Values() (map[string]any, error) {
	out := make(map[string]any, len(r.entries))

	for _, entry := range r.entries {
		spec := entry.spec

		if !entry.flag.Changed {
			if spec.Required {
				return nil, fmt.Errorf("%w: --%s", errors.ErrRequired, spec.Name)
			}
			out[spec.Name] = spec.Default

			continue
		}

		switch spec.NArgs {
		case descriptor.NArgsAny, descriptor.NArgsAtLeastOne:
			out[spec.Name] = append([]any(nil), entry.parsed...)
		case descriptor.NArgsOptional:
			if entry.noToken && len(entry.parsed) == 0 {
				// Flag present, token absent.
				out[spec.Name] = nil
			} else if len(entry.parsed) == 0 {
				return nil, fmt.Errorf("%w: flag --%s changed without a parsed value",
					errors.ErrContract, spec.Name)
			} else {
				out[spec.Name] = entry.parsed[len(entry.parsed)-1]
			}
		default:
			if len(entry.parsed) == 0 {
				return nil, fmt.Errorf("%w: flag --%s changed without a parsed value",
					errors.ErrContract, spec.Name)
			}
			out[spec.Name] = entry.parsed[len(entry.parsed)-1]
		}
	}

	return out, nil
}
