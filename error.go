package brandctx

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
	ETIMEOUT     = "timeout"
	EUPSTREAM    = "upstream"
)

// Error represents an application-specific error. Status carries the HTTP
// status reported by a remote server for EUPSTREAM errors and is zero
// otherwise.
type Error struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("brandctx error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// UpstreamErrorf returns an EUPSTREAM error carrying the remote HTTP status.
func UpstreamErrorf(status int, format string, args ...any) *Error {
	return &Error{
		Code:    EUPSTREAM,
		Message: fmt.Sprintf(format, args...),
		Status:  status,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorStatus returns the upstream HTTP status of an EUPSTREAM error, or zero.
func ErrorStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
