// Package email derives display names for accounts that have only an email.
package email

import (
	"strings"
	"unicode"
)

// DeriveNameFromEmail splits the local part on . _ - + and capitalises the
// first and last segments ("asha.k.rao@x.in" -> "Asha", "Rao").
func DeriveNameFromEmail(email string) (string, string) {
	localPart := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		localPart = email[:at]
	}
	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "", ""
	}
	first := capitalize(parts[0])
	last := ""
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}
	return first, last
}

// DisplayName prefers the given names and falls back to the email, then to
// "User".
func DisplayName(email, firstName, lastName string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name != "" {
		return name
	}
	first, last := DeriveNameFromEmail(strings.TrimSpace(email))
	if name = strings.TrimSpace(first + " " + last); name != "" {
		return name
	}
	return "User"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
