package sessions

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"shop-service/common"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// NormalizeEmail trims and lower-cases an address so that lookups and the
// unique constraint agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return common.Validation("Name is required")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	return validatePassword(password)
}

func validateEmail(email string) error {
	if email == "" {
		return common.Validation("Email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return common.Validation("Invalid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return common.Validation("Password must be at least 8 characters")
	}
	if len(password) > maxPasswordBytes {
		return common.Validation("Password must be at most 72 bytes")
	}
	return nil
}
