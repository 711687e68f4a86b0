// Package strcase converts Go identifier casing to wire-friendly forms.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a CamelCase identifier to snake_case. Acronyms stay
// together: PasswordConfirmation becomes password_confirmation and
// HTTPServer becomes http_server. The validator uses it to key field errors
// by the JSON names clients sent.
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s) + 4)

	runes := []rune(s)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}

			// Break on lower/digit->upper transitions and at the end of an
			// acronym run (HTTPServer -> http_server).
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && next != 0 && unicode.IsLower(next)) {
				b.WriteRune('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
