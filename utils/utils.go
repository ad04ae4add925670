// Package utils provides utility functions for the application.
package utils

import (
	"strings"
	"unicode/utf8"
)

func ToPtr[T any](v T) *T {
	return &v
}

// Deref returns the pointed-to value or the zero value for nil
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// TruncateRunes cuts s to at most max characters. A max of zero or less
// leaves s untouched.
func TruncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// NilIfEmpty returns nil for the empty string and a pointer to s otherwise
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CleanOptional trims s, caps it at max characters and maps blank to nil
func CleanOptional(s string, max int) *string {
	return NilIfEmpty(TruncateRunes(strings.TrimSpace(s), max))
}
