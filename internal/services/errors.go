package services

import "errors"

// ErrInvalidPassword is the only detail the login flow reveals about
// a failed credential check.
var ErrInvalidPassword = errors.New("invalid password")

// ValidationError carries a user-facing reason for rejecting an admin
// mutation. The request is a no-op when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// AsValidation extracts a ValidationError when err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
