package registration

import (
	"regexp"
	"strings"
)

var indianMobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

// NormalizePhone strips everything but digits and drops a leading "91"
// country prefix from 12-digit numbers.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	return digits
}

func IsIndianMobile(raw string) bool {
	return indianMobileRegex.MatchString(NormalizePhone(raw))
}
