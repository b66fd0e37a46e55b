package rpc

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the machine-checkable error kind carried on every failed call.
type Code string

const (
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeInternal     Code = "INTERNAL"
)

// HTTPStatus maps an error kind onto a transport status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the failure type surfaced by the procedure layer.
type Error struct {
	Code    Code
	Message string
	// Fields holds per-field validation detail for BAD_REQUEST errors.
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

// AsError extracts an *Error, wrapping unknown errors as INTERNAL.
func AsError(err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return &Error{Code: CodeInternal, Message: "internal error", cause: err}
}

// BadRequest signals a payload that fails its input shape.
func BadRequest(message string, fields map[string]string) *Error {
	return &Error{Code: CodeBadRequest, Message: message, Fields: fields}
}

// Unauthenticated signals a protected call without a resolvable identity.
func Unauthenticated() *Error {
	return &Error{Code: CodeUnauthorized, Message: "authentication required"}
}

// Forbidden signals a resolved identity lacking the required role.
func Forbidden() *Error {
	return &Error{Code: CodeForbidden, Message: "admin role required"}
}

// NotFound signals an unroutable procedure path or an absent resource a
// mutation insists on.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Conflict signals a uniqueness or foreign-key constraint violation, keeping
// the driver error for diagnostics.
func Conflict(message string, cause error) *Error {
	return &Error{Code: CodeConflict, Message: message, cause: cause}
}

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", cause: cause}
}
