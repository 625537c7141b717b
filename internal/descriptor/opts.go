package descriptor

import "github.com/structargs/structargs/internal/docs"

// OptFunc sets values in the Opts structure.
type OptFunc func(opt *Opts)

// Opts specifies the cross-cutting knobs of record construction.
type Opts struct {
	// Prefix is prepended to every derived argument name.
	Prefix string

	// FlagDivider separates words in derived argument names, and nested
	// record prefixes from their fields.
	FlagDivider string

	// Docs resolves help text candidates per field.
	Docs docs.Source
}

// DefOpts returns the default construction options.
func DefOpts() *Opts {
	return &Opts{
		FlagDivider: "-",
		Docs:        docs.TagSource{},
	}
}

// Apply applies the given option funcs to the current options.
func (o *Opts) Apply(optFuncs ...OptFunc) *Opts {
	for _, f := range optFuncs {
		f(o)
	}

	return o
}

// Prefix sets the prefix applied to all derived argument names.
func Prefix(val string) OptFunc { return func(opt *Opts) { opt.Prefix = val } }

// FlagDivider sets a custom divider for argument names. It is dash by default.
func FlagDivider(val string) OptFunc { return func(opt *Opts) { opt.FlagDivider = val } }

// Docs sets a custom help text source.
func Docs(src docs.Source) OptFunc { return func(opt *Opts) { opt.Docs = src } }

func (o *Opts) copy() *Opts {
	cpy := *o

	return &cpy
}
