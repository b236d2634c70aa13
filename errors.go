package zoom

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Wrap wraps an error by prepending additional text.
// The text can contain formatting parameters.
func Wrap(err error, msg string, v ...interface{}) error {
	msg = fmt.Sprintf(msg, v...)
	return xerrors.Errorf("%v: %w", msg, err)
}

type validationError struct {
	message string
}

func (v validationError) Error() string {
	return v.message
}

// NewValidationError creates an error of from the given format string.
func NewValidationError(msg string, v ...interface{}) error {
	return validationError{fmt.Sprintf(msg, v...)}
}

// IsValidationError checks if the given error, or an error it wraps,
// is a validation error.
func IsValidationError(err error) bool {
	var v validationError
	return xerrors.As(err, &v)
}
