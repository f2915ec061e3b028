package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error categories for remote operations. Callers match with errors.Is; the
// concrete *Error carries the HTTP status and the server-provided message.
var (
	// ErrNetwork is a transport failure: the request never produced a response.
	ErrNetwork = errors.New("network failure")
	// ErrAuth is a 401/403 from the server, or a locally detected missing
	// session on an operation that requires one.
	ErrAuth = errors.New("authentication required")
	// ErrValidation is a client-side precondition failure; no request was sent.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is a 404 from the server.
	ErrNotFound = errors.New("not found")
	// ErrConflict is a 409-class business-rule rejection, e.g. a stock race
	// discovered at commit time.
	ErrConflict = errors.New("conflict")
	// ErrServer is any other non-2xx response.
	ErrServer = errors.New("server error")
)

// Error is a categorized remote-call failure. Status is zero for failures that
// never reached the server (network and local validation errors).
type Error struct {
	kind    error
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.kind.Error(), e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.kind.Error(), e.cause)
	}
	return e.kind.Error()
}

// Unwrap exposes the category sentinel (and transitively the cause) so that
// errors.Is(err, api.ErrNotFound) works on wrapped errors.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// newStatusError maps a non-2xx response to its category.
// The message comes from the structured `{message}` error body when present.
func newStatusError(status int, message string) *Error {
	var kind error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = ErrAuth
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusConflict:
		kind = ErrConflict
	default:
		kind = ErrServer
	}
	return &Error{kind: kind, Status: status, Message: message}
}

func newNetworkError(cause error) *Error {
	return &Error{kind: ErrNetwork, cause: cause}
}

func newAuthError(message string) *Error {
	return &Error{kind: ErrAuth, Message: message}
}

func newValidationError(message string) *Error {
	return &Error{kind: ErrValidation, Message: message}
}

// UserMessage returns the first-class message carried by err, for verbatim
// presentation to the user. Falls back to the given generic message when the
// error carries none.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
