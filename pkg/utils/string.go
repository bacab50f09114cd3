package utils

import (
	"strings"
	"unicode/utf8"
)

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n])
}

// Ellipsize truncates s to n runes and appends "..." when something was cut.
func Ellipsize(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return Truncate(s, n) + "..."
}

// ContainsAny reports whether s contains any of the needles.
func ContainsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}

	return false
}

// Head returns at most the first n items of xs.
func Head[T any](xs []T, n int) []T {
	if n < 0 {
		n = 0
	}

	if len(xs) <= n {
		return xs
	}

	return xs[:n]
}
