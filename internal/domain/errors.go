package domain

import (
	"errors"
	"fmt"
)

// Validation failures returned by the calculators. Bad input is never
// coerced to zero.
var (
	ErrNegativeIncome       = errors.New("income cannot be negative")
	ErrUnknownPlan          = errors.New("unknown student loan plan")
	ErrUnsupportedTaxYear   = errors.New("unsupported tax year")
	ErrInvalidTaxCode       = errors.New("invalid tax code")
	ErrUnknownPensionScheme = errors.New("unknown pension scheme")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnknownIndexYear     = errors.New("no index value for year")
)

// ValidationError ties a validation failure to the input field that caused it.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError wraps err for field.
func NewValidationError(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidationError reports whether err is caused by bad input rather than a failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, sentinel := range []error{
		ErrNegativeIncome, ErrUnknownPlan, ErrUnsupportedTaxYear, ErrInvalidTaxCode,
		ErrUnknownPensionScheme, ErrInvalidInput, ErrUnknownIndexYear,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
