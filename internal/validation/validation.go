// Package validation holds input format checks shared by auth and profile
// handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var displayNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{1,28}[a-zA-Z0-9]$`)

// ValidateDisplayName validates display name length and characters.
func ValidateDisplayName(name string) error {
	if len(name) < 3 || len(name) > 30 {
		return fmt.Errorf("display name must be 3-30 characters")
	}
	if !displayNameRegex.MatchString(name) {
		return fmt.Errorf("display name may contain letters, numbers, hyphens and underscores, and must start and end with a letter or number")
	}
	return nil
}

// ValidateEmail performs a pragmatic email format check.
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email too long")
	}
	at := strings.Count(email, "@")
	if at != 1 {
		return fmt.Errorf("invalid email format")
	}
	parts := strings.SplitN(email, "@", 2)
	local, domain := parts[0], parts[1]
	if local == "" || len(local) > 64 || strings.ContainsAny(local, " \t") {
		return fmt.Errorf("invalid email format")
	}
	if domain == "" || !strings.Contains(domain, ".") ||
		strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces length and character-class requirements.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return fmt.Errorf("password must be at least 12 characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must be at most 128 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain upper and lower case letters, a digit and a special character")
	}
	return nil
}
