// Package apperr defines the error type shared across tracklog packages
package apperr

import "fmt"

// Error is a categorised application error. Values declared with a fixed
// Message act as sentinels; Fmt and Wrap derive new errors that still match
// the sentinel under errors.Is.
type Error struct {
	Cause   error
	parent  *Error
	Message string
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is e or any sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	for k := e; k != nil; k = k.parent {
		if k == t {
			return true
		}
	}

	return false
}

// Fmt returns a copy of the error with the message formatted using args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Cause:   e.Cause,
		parent:  e,
	}
}

// Wrap returns a copy of the error with err attached as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Cause:   err,
		parent:  e,
	}
}

// Derive returns a new sentinel with its own message that also matches e
// under errors.Is.
func (e *Error) Derive(message string) *Error {
	return &Error{
		Message: message,
		parent:  e,
	}
}
