package multas

import "fmt"

// Error is a machine-readable failure class with an optional human-readable message.
// Two errors match under errors.Is when their codes are equal.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg}
}

func (e *Error) WithMessagef(format string, args ...any) *Error {
	return &Error{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrValidation        = &Error{Code: "E_VALIDATION"}
	ErrDuplicateAuto     = &Error{Code: "E_DUPLICATE_AUTO"}
	ErrNotFound          = &Error{Code: "E_NOT_FOUND"}
	ErrInvalidTransition = &Error{Code: "E_INVALID_TRANSITION"}
	ErrForbidden         = &Error{Code: "E_FORBIDDEN"}
	ErrStore             = &Error{Code: "E_STORE"}
)
