package utils

import (
	"unicode"
)

// IsSeparator checks if a rune may appear inside a dictionary word without a key of its own
func IsSeparator(r rune) bool {
	return r == '\'' || r == '-'
}

// ContainsNumbers checks if a string contains any numeric digits
func ContainsNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsValidWord checks if a dictionary entry should be kept.
// It must start with a letter and contain only letters and separators.
func IsValidWord(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) {
			continue
		}
		if i == 0 || !IsSeparator(r) {
			return false
		}
	}
	return true
}
