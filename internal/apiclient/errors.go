package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ServerError is returned when the API answered with a failure status.
type ServerError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
	// Detail is the server-supplied error message, empty when the body had none.
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %s: %s", e.Method, e.URL, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

// NetworkError is returned when a request was sent but no response came back.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: no response: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RequestSetupError is returned when a request failed before dispatch.
type RequestSetupError struct {
	Op  string
	Err error
}

func (e *RequestSetupError) Error() string {
	return fmt.Sprintf("%s: preparing request: %v", e.Op, e.Err)
}

func (e *RequestSetupError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err carries a 401 response, the signal
// that the session token is missing, expired or otherwise rejected.
func IsUnauthorized(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err carries a 404 response.
func IsNotFound(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusNotFound
}

// Detail returns the server-supplied message carried by err, or fallback.
func Detail(err error, fallback string) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Detail != "" {
		return serverErr.Detail
	}
	return fallback
}
