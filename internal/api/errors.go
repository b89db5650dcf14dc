package api

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError reports that the server could not be reached at all
// (no connectivity, DNS failure, timeout). It never implies anything about
// the session; stored credentials are left alone.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach server: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthError reports an authorization rejection (HTTP 401) that survived the
// request pipeline's refresh attempt, or occurred on a route where no refresh
// is possible.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authorization rejected (%d %s)", e.Status, http.StatusText(e.Status))
}

// ServerError reports any other failure response: a non-2xx status or a 2xx
// envelope with success=false. Message carries the server-provided message
// when one was available.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (%d %s)", e.Status, http.StatusText(e.Status))
}

// StatusOf returns the HTTP status carried by err, or 0 for transport
// failures and non-API errors.
func StatusOf(err error) int {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Status
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Status
	}
	return 0
}

// IsTransport reports whether err is a connectivity failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
