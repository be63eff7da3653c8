package service

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidationError reports a field-level input problem. It is always
// raised before any store access, so the caller can safely retry with
// corrected input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validPassword enforces the strength policy: at least 8 characters with
// one lowercase letter, one uppercase letter, one digit, and one symbol
// from the allowed punctuation set.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
