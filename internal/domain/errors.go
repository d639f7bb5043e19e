package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both "record does not exist" and "record belongs to
// someone else". The two cases are deliberately indistinguishable so that an
// authenticated caller cannot probe for the existence of other users' records.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized means the request carries no valid session.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError rejects an operation before any persistence side effect.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
