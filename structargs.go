// Package structargs derives command-line argument specifications from the
// statically declared fields of a struct type, and later reconstructs one or
// more instances of that type from the values produced by parsing those
// arguments. The struct's field declarations (name, type, default) are the
// single source of truth for its CLI surface: there is no duplicated
// argument-definition code to keep in sync.
//
// The usual workflow is to describe a struct with Describe, register the
// derived specifications with a flag parser (pflag and cobra adapters are
// provided), parse the command line, and hand the raw values back to the
// record to rebuild instances:
//
//	rec, fs, raw, err := structargs.Generate(&Config{}, "mytool")
//	...
//	err = fs.Parse(os.Args[1:])
//	values, err := raw.Values()
//	instances, err := rec.BuildAll(values, 1)
//
// In multiple-instances mode (Record.SetMultiple), one set of flags is
// parsed once and reused to build N instances at a time: a single supplied
// value is broadcast to every instance, a list of N values is distributed
// positionally.
package structargs

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/structargs/structargs/internal/descriptor"
	"github.com/structargs/structargs/internal/docs"
	"github.com/structargs/structargs/internal/errors"
	genflags "github.com/structargs/structargs/internal/gen/flags"
	"github.com/structargs/structargs/internal/interfaces"
	"github.com/structargs/structargs/internal/values"
)

// === Primary entry points ===

// Describe builds a Record for the struct pointed to by data. The pointed-to
// value is the prototype: its non-zero fields, `default` tags and Defaulter
// implementations become the declared defaults of the derived arguments.
func Describe(data any, opts ...Option) (*Record, error) {
	return descriptor.New(data, toInternalOpts(opts)...)
}

// Generate describes data and registers the derived specifications on a new
// pflag.FlagSet. After the set has been parsed, the returned RawArgs yields
// the raw-values map that Record.ConstructorArguments and Record.BuildAll
// consume.
func Generate(data any, name string, opts ...Option) (*Record, *pflag.FlagSet, *RawArgs, error) {
	rec, err := Describe(data, opts...)
	if err != nil {
		return nil, nil, nil, err
	}

	fs, raw := genflags.Generate(rec, name)

	return rec, fs, raw, nil
}

// Bind describes data and registers the derived specifications on an
// existing cobra command's flag set. This is useful for integrating with a
// command tree that is managed manually.
func Bind(cmd *cobra.Command, data any, opts ...Option) (*Record, *RawArgs, error) {
	rec, err := Describe(data, opts...)
	if err != nil {
		return nil, nil, err
	}

	raw := genflags.GenerateTo(rec, cmd.Flags())

	return rec, raw, nil
}

// === Configuration (functional options) ===

// Option is a functional option for record construction.
type Option func(o *descriptor.Opts)

func toInternalOpts(opts []Option) []descriptor.OptFunc {
	internalOpts := make([]descriptor.OptFunc, len(opts))
	for i, opt := range opts {
		internalOpts[i] = descriptor.OptFunc(opt)
	}

	return internalOpts
}

// WithPrefix sets a prefix prepended to all derived argument names.
func WithPrefix(prefix string) Option {
	return Option(descriptor.Prefix(prefix))
}

// WithFlagDivider sets the character separating words in derived argument
// names and nested record prefixes. It is "-" by default.
func WithFlagDivider(divider string) Option {
	return Option(descriptor.FlagDivider(divider))
}

// WithDocSource sets a custom help text source. The default reads the
// `description`, `desc` and `help` struct tags, in that priority.
func WithDocSource(src DocSource) Option {
	return Option(descriptor.Docs(src))
}

// === Core types ===

type (
	// Record wraps a struct type and owns its ordered field descriptors,
	// the constructor-argument reconciliation and instantiation.
	Record = descriptor.Record

	// Field wraps one declared struct field and derives its argument
	// specification.
	Field = descriptor.Field

	// Spec is the argument specification derived for one field.
	Spec = descriptor.Spec

	// Kind is the closed set of field type categories.
	Kind = descriptor.Kind

	// NArgs mirrors the token cardinalities understood by the parsing
	// engine.
	NArgs = descriptor.NArgs

	// RawArgs collects raw parsed values from a pflag flag set.
	RawArgs = genflags.RawArgs

	// InconsistentArgumentsError reports a multi-valued field whose
	// supplied length fits neither broadcast nor distribution.
	InconsistentArgumentsError = descriptor.InconsistentArgumentsError

	// Enum is implemented by field types whose legal values form a
	// closed, ordered set of named members.
	Enum = interfaces.Enum

	// Defaulter is implemented by field types that construct their
	// default value instead of declaring one.
	Defaulter = interfaces.Defaulter

	// DocSource resolves help text candidates per field.
	DocSource = docs.Source

	// ConvertFunc turns one raw command-line token into a typed value.
	ConvertFunc = values.ConvertFunc
)

// Field type categories.
const (
	KindScalar     = descriptor.KindScalar
	KindBool       = descriptor.KindBool
	KindEnum       = descriptor.KindEnum
	KindList       = descriptor.KindList
	KindRecord     = descriptor.KindRecord
	KindRecordList = descriptor.KindRecordList
)

// Token cardinalities.
const (
	NArgsOne        = descriptor.NArgsOne
	NArgsOptional   = descriptor.NArgsOptional
	NArgsAny        = descriptor.NArgsAny
	NArgsAtLeastOne = descriptor.NArgsAtLeastOne
)

// ParseBool converts a permissive set of textual tokens to a boolean.
func ParseBool(token string) (bool, error) { return values.ParseBool(token) }

// === Public errors ===

var (
	// ErrNotPointerToStruct indicates that a provided data container is
	// not a pointer to a struct.
	ErrNotPointerToStruct = errors.ErrNotPointerToStruct

	// ErrNilObject indicates that an object is nil although it should not.
	ErrNilObject = errors.ErrNilObject

	// ErrContract indicates a broken invariant in the composing or
	// calling code, distinct from user-input errors.
	ErrContract = errors.ErrContract

	// ErrInvalidChoice indicates a value outside an enumerated argument's
	// valid choices.
	ErrInvalidChoice = errors.ErrInvalidChoice

	// ErrConvert indicates that a raw value could not be converted to the
	// declared field type.
	ErrConvert = errors.ErrConvert

	// ErrRequired indicates that a required argument was never supplied.
	ErrRequired = errors.ErrRequired
)
