package core

import (
	"errors"
	"fmt"
)

// ValidationError is the single error kind raised for bad input: unknown
// user, malformed date or time, non-positive minutes, exit not after entry.
// All validation failures happen before any mutation or persist.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Invalidf builds a ValidationError with a formatted, human-readable message.
func Invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
