package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering with a username that already exists.
	ErrUsernameTaken = errors.New("username must be unique")
	// ErrNotOwner indicates the caller is not the owner of the record it tried to mutate.
	ErrNotOwner = errors.New("blog belongs to another user")
	// ErrTokenInvalid indicates a missing, malformed, expired or forged session token.
	ErrTokenInvalid = errors.New("token missing or invalid")
)

// ValidationError reports malformed or missing input the caller can correct.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
