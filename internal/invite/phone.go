package invite

import (
	"strings"
	"unicode"
)

// PhoneDigits keeps only decimal digits from phone, dropping separators,
// spaces, parentheses and a leading '+'. An empty result means the number
// cannot be addressed; the caller decides what to do with it.
func PhoneDigits(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
