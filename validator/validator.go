// Package validator checks materialized record instances against their
// `validate` struct tags. It makes use of go-playground/validator
// internally, refer to their docs for an exhaustive list of valid tag
// validations.
package validator

import (
	"errors"
	"fmt"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
)

// Validator validates record instances produced by Record.Instantiate or
// Record.BuildAll.
type Validator struct {
	validate *govalidator.Validate
}

// New returns a Validator with the default go-playground configuration.
func New() *Validator {
	return NewWith(govalidator.New())
}

// NewWith returns a Validator bound to a custom *validator.Validate, for
// callers that registered their own validations.
func NewWith(validate *govalidator.Validate) *Validator {
	return &Validator{validate: validate}
}

// Instance validates one materialized instance.
func (v *Validator) Instance(instance any) error {
	err := v.validate.Struct(instance)
	if err == nil {
		return nil
	}

	var fieldErrs govalidator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	// Replace the struct-oriented messages with ones adapted to CLI use.
	msgs := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("`%v` is not a valid %s for %s",
			fieldErr.Value(), fieldErr.Tag(), fieldErr.Field()))
	}

	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// All validates every instance in the slice, as produced by
// Record.BuildAll, reporting the first failure with its instance index.
func (v *Validator) All(instances []any) error {
	for i, instance := range instances {
		if err := v.Instance(instance); err != nil {
			return fmt.Errorf("instance %d: %w", i, err)
		}
	}

	return nil
}
