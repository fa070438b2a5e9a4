package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed, classified failure with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on Code so callers can use errors.Is against the predefined values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Failure classes produced by the API client.
var (
	ErrNetworkUnreachable = New("NETWORK_UNREACHABLE", http.StatusBadGateway, "network error, the server could not be reached")
	ErrTimeout            = New("TIMEOUT", http.StatusGatewayTimeout, "the request timed out")
	ErrBadRequest         = New("BAD_REQUEST", http.StatusBadRequest, "bad request")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrServer             = New("SERVER_ERROR", http.StatusInternalServerError, "server error")
	ErrUnhandledStatus    = New("UNHANDLED_STATUS", http.StatusBadGateway, "unexpected response status")
	ErrAuthExpired        = New("AUTH_EXPIRED", http.StatusUnauthorized, "session expired, please log in again")
	ErrRefreshFailed      = New("REFRESH_FAILED", http.StatusUnauthorized, "session refresh failed, please log in again")
)

// Failures raised locally before any request leaves the process.
var (
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrQuestionLocked     = New("QUESTION_LOCKED", http.StatusConflict, "questions can only change before the exam starts")
	ErrUnexpectedResponse = New("UNEXPECTED_RESPONSE", http.StatusBadGateway, "unexpected response, please try again")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithStatus returns a copy of err carrying status.
func WithStatus(err *Error, status int) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Status = status
	return &clone
}

// HasCode reports whether err classifies as one of codes.
func HasCode(err error, codes ...string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	for _, code := range codes {
		if e.Code == code {
			return true
		}
	}
	return false
}
