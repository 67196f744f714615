// Package validator adapts go-playground/validator to echo's Validator
// interface so request DTOs are checked against their `validate` tags at
// bind time.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator wraps a shared validator.Validate instance.
type RequestValidator struct {
	v *validator.Validate
}

// New returns a validator ready to assign to echo.Validator.
func New() *RequestValidator {
	return &RequestValidator{v: validator.New()}
}

// Validate checks the struct's validate tags.
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}
