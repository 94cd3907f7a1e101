// Package apperr defines the error taxonomy the API surfaces to clients.
// Every error carries the HTTP status that the transport layer mirrors
// into the response envelope.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, format string, args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Status:  status,
	}
}

// BadRequest covers malformed input, uniqueness violations and empty
// update payloads.
func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, format, args...)
}

// Forbidden is part of the taxonomy but no guard currently uses it.
func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

// From unwraps err into an *Error, if it is one.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 500 for anything
// outside the taxonomy.
func StatusOf(err error) int {
	if appErr, ok := From(err); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
