package common

import "fmt"

type Code string

const (
	CodeValidation   Code = "validation"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeRateLimited  Code = "rate_limited"
	CodeInternal     Code = "internal"
)

// Deny reasons carried alongside the error code. They name WHY a guarded
// action was refused so clients can distinguish ownership failures from
// state-machine failures under the same HTTP status.
const (
	ReasonNotOwner      = "not_owner"
	ReasonInvalidState  = "invalid_state"
	ReasonDuplicate     = "duplicate"
	ReasonForbiddenRole = "forbidden_role"
	ReasonStaleWrite    = "stale_write"
)

type Error struct {
	Code    Code
	Message string
	Reason  string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

// NewDenied maps a deny reason onto the error code the HTTP layer
// understands: duplicates and stale writes are conflicts, illegal state
// moves are validation failures, everything else is forbidden.
func NewDenied(reason, message string) *Error {
	code := CodeForbidden
	switch reason {
	case ReasonDuplicate, ReasonStaleWrite:
		code = CodeConflict
	case ReasonInvalidState:
		code = CodeValidation
	}
	return &Error{Code: code, Message: message, Reason: reason}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	for err != nil {
		if typed, ok := err.(*Error); ok {
			return typed.Code == code
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
