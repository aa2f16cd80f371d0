package validators

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinNameLength     = 20
	MaxNameLength     = 60
	MaxAddressLength  = 400
	MinPasswordLength = 8
	MaxPasswordLength = 16

	// PasswordSpecialChars is the set a password must draw at least one
	// character from.
	PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidatePassword(password string) bool {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return false
	}

	hasUpper := strings.IndexFunc(password, func(r rune) bool {
		return r >= 'A' && r <= 'Z'
	}) >= 0
	hasSpecial := strings.ContainsAny(password, PasswordSpecialChars)

	return hasUpper && hasSpecial
}

func ValidateName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= MinNameLength && n <= MaxNameLength
}

func ValidateAddress(address string) bool {
	return utf8.RuneCountInString(address) <= MaxAddressLength
}

// NormalizeEmail trims and lower-cases an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
