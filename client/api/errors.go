package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable means no answer came back: connection refused, DNS,
	// timeout.
	ErrUnavailable = errors.New("server unreachable")
	// ErrUnauthorized matches any 401 answer.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput is returned before sending when a form is obviously
	// wrong.
	ErrInvalidInput = errors.New("invalid input")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("rejected by server (%d): %s", e.StatusCode, msg)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}
