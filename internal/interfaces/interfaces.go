// Package interfaces declares the collaborator interfaces that field types
// may implement to take part in argument derivation.
package interfaces

// Enum is implemented by field types whose legal values form a closed,
// ordered set of named members. Both methods must be callable on the type's
// zero value: the usual implementation is an integer constant set paired
// with a name table.
type Enum interface {
	// EnumNames returns the member names in declaration order.
	EnumNames() []string

	// EnumByName returns the member for the given name, and whether the
	// name is a member at all.
	EnumByName(name string) (any, bool)
}

// Defaulter is implemented by field types that construct their default value
// instead of declaring one. It is the factory-default marker: the factory is
// evaluated once, when the field's argument specification is derived.
type Defaulter interface {
	DefaultValue() any
}
