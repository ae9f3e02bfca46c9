package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// nameParts splits the local part of an email on dots and underscores and
// title-cases each piece.
func nameParts(email string) []string {
	local, _, _ := strings.Cut(email, "@")
	fields := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || unicode.IsSpace(r)
	})
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		r, size := utf8.DecodeRuneInString(f)
		parts = append(parts, string(unicode.ToUpper(r))+strings.ToLower(f[size:]))
	}
	return parts
}

// NamesFromEmail guesses first and last name from an address such as
// "jane.van_dyke@example.com" ("Jane", "Van Dyke"). Missing parts are empty.
func NamesFromEmail(email string) (first, last string) {
	parts := nameParts(email)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// DisplayName is the recruiter name shown for a mock login.
func DisplayName(email string) string {
	return strings.Join(nameParts(email), " ")
}
