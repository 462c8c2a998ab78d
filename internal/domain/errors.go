package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned when a checkout is attempted with nothing to buy.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports an input that violates a domain invariant. The
// operation that returns it performs no state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
