package api

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// The server enforces its own, stricter password rule.
const minLocalPasswordLength = 6

// ValidateRegistration runs the quick checks done before a register call.
func ValidateRegistration(name, email, password string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidInput)
	}
	return ValidateLogin(email, password)
}

// ValidateLogin runs the quick checks done before a login call.
func ValidateLogin(email, password string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: enter a valid email address", ErrInvalidInput)
	}
	if utf8.RuneCountInString(password) < minLocalPasswordLength {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	return nil
}
