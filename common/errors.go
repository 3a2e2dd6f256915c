// Package common defines the error taxonomy shared by the server packages.
// Callers should match with errors.Is against the kind sentinels and use
// errors.As with *Error to read the client-safe message.
package common

import "errors"

// Error kinds.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

// Auth subvariants. They all match ErrAuth.
var (
	ErrInvalidCredentials = &Error{Kind: ErrAuth, Message: "Invalid email or password"}
	ErrTokenMalformed     = &Error{Kind: ErrAuth, Message: "Invalid token"}
	ErrTokenExpired       = &Error{Kind: ErrAuth, Message: "Token expired"}
	ErrUnknownSubject     = &Error{Kind: ErrAuth, Message: "Invalid token subject"}
)

// Error couples a kind with a message that may be shown to clients.
// Err holds the underlying cause and stays server-side.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Validation reports user-correctable input.
func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

// Conflict reports a duplicate unique key.
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// NotFound reports an unknown resource.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// Storage wraps a persistence failure. The message is generic on purpose
// and err is kept for server-side logs.
func Storage(err error) error {
	return &Error{Kind: ErrStorage, Message: "storage failure", Err: err}
}

// PublicMessage returns the client-safe message of err, or fallback when
// err carries none.
func PublicMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
