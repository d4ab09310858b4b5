package utils

import (
	"strings"
	"unicode"
)

// CapitalizeFirst upper-cases the first letter only, leaving the rest as is.
// Used for point type and sort labels.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// FirstNonEmpty returns the first argument with non-blank content.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
