package validation

import (
	"regexp"
	"strings"
)

// MinPhoneDigits is the number of digits a phone number needs once every
// non-digit character has been stripped.
const MinPhoneDigits = 10

// emailPart excludes every rune unicode.IsSpace accepts (RE2's \s is ASCII
// only) plus the zero-width no-break space.
const emailPart = `[^\s\v\p{Z}\x{85}\x{FEFF}@]+`

var emailRegex = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

// IsEmail reports whether s looks like local@domain.tld: no whitespace of
// any script, a single @, and at least one dot after it.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// Digits returns s with every character other than 0-9 removed.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// IsPhone reports whether s holds at least MinPhoneDigits digits, ignoring
// spaces, dashes, brackets and any other separators.
func IsPhone(s string) bool {
	return len(Digits(s)) >= MinPhoneDigits
}
