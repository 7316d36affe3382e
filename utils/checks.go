package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"GameHub/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CheckEmail validates the address shape. Uniqueness is the store's job.
func CheckEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

// CheckPassword enforces the registration password policy: at least 8
// characters with at least one letter and one digit.
func CheckPassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain at least one letter and one digit")
	}
	return nil
}

// CheckUsername validates the display name shape. Length is counted in
// runes, not bytes, so Cyrillic names get the same budget as ASCII ones.
func CheckUsername(username string) error {
	username = strings.TrimSpace(username)
	if n := len([]rune(username)); n < 3 || n > 20 {
		return errors.New("username must be between 3 and 20 characters")
	}
	return nil
}

// CheckDescription caps the profile description length.
func CheckDescription(description string) error {
	if len([]rune(description)) > models.MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", models.MaxDescriptionLength)
	}
	return nil
}

// CheckTicketMessage enforces the minimum support message length.
func CheckTicketMessage(message string) error {
	if len([]rune(strings.TrimSpace(message))) < models.MinTicketMessageLength {
		return fmt.Errorf("message must be at least %d characters", models.MinTicketMessageLength)
	}
	return nil
}
