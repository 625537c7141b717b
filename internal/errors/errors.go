// Package errors defines the sentinel errors shared across structargs packages.
package errors

import "errors"

var (
	// ErrNotPointerToStruct indicates that a provided data container is not
	// a pointer to a struct.
	ErrNotPointerToStruct = errors.New("object must be a pointer to struct")

	// ErrNilObject indicates that an object is nil although it should not.
	ErrNilObject = errors.New("object cannot be nil")

	// ErrContract indicates a broken invariant in the composing or calling
	// code. It is an engineering defect, never expected at runtime in
	// correct usage, and is reported immediately instead of being coerced.
	ErrContract = errors.New("contract violation")

	// ErrInvalidChoice indicates a value which is not among the valid
	// choices of an enumerated argument.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrConvert indicates that a raw value could not be converted to the
	// declared field type.
	ErrConvert = errors.New("cannot convert value")

	// ErrRequired indicates that a required argument was never supplied.
	ErrRequired = errors.New("required argument")
)
