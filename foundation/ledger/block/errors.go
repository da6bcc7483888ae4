package block

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input to a constructor or ledger
// operation. These failures are not retryable without correcting the input.
type ValidationError struct {
	Reason string
}

// NewValidationError constructs a ValidationError with a formatted reason.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	return ve.Reason
}

// IsValidationError reports whether a ValidationError exists in the chain
// of wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
