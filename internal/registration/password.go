package registration

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const passwordSpecials = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// MaxStrengthScore is the score a password needs before a form can be submitted.
const MaxStrengthScore = 6

// Strength is the outcome of the six password checks.
type Strength struct {
	Score    int      `json:"score"`
	Label    string   `json:"label"`
	Feedback []string `json:"feedback"`
}

// PasswordStrength counts satisfied checks among min length 8, max length 20,
// uppercase, lowercase, digit and special character.
func PasswordStrength(password string) Strength {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case unicode.IsDigit(r) && r < utf8.RuneSelf:
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	n := utf8.RuneCountInString(password)

	checks := []struct {
		ok       bool
		feedback string
	}{
		{n >= 8, "At least 8 characters"},
		{n <= 20, "Maximum 20 characters"},
		{upper, "One uppercase letter (A-Z)"},
		{lower, "One lowercase letter (a-z)"},
		{digit, "One number (0-9)"},
		{special, "One special character (!@#$%^&*...)"},
	}

	s := Strength{Feedback: []string{}}
	for _, c := range checks {
		if c.ok {
			s.Score++
		} else {
			s.Feedback = append(s.Feedback, c.feedback)
		}
	}
	s.Label = StrengthLabel(s.Score)
	return s
}

func StrengthLabel(score int) string {
	switch {
	case score <= 2:
		return "Weak"
	case score <= 4:
		return "Fair"
	case score == 5:
		return "Good"
	default:
		return "Strong"
	}
}
