package report

import (
	"errors"
	"fmt"
)

// ValidationError marks a fatal precondition failure: a missing or empty
// input collection, malformed reference data, a missing strategy, or an
// aggregation pass that produced nothing. Skipped records and line items
// are deliberately not errors; they are counted and logged instead.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err (or anything it wraps) is a
// ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
