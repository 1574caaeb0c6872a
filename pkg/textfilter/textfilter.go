// Package textfilter provides the display-text helpers shared by column
// renderers: truncation with a suffix and browser-style value coercion.
package textfilter

import "math"

const (
	// DefaultLength is the truncation length used by Text.
	DefaultLength = 10
	// DefaultSuffix is appended to truncated text.
	DefaultSuffix = "..."
)

// Text truncates v to DefaultLength runes with DefaultSuffix.
func Text(v any) string {
	return Truncate(v, DefaultLength, DefaultSuffix)
}

// Truncate shortens v to at most maxLen runes followed by suffix.
//
// Falsy input other than numeric zero yields "". Non-string input is
// stringified first and then truncated with the same maxLen and the
// default suffix. A negative maxLen behaves like zero.
func Truncate(v any, maxLen int, suffix string) string {
	if !Truthy(v) && !isZero(v) {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return Truncate(Stringify(v), maxLen, DefaultSuffix)
	}
	if maxLen < 0 {
		maxLen = 0
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + suffix
}

func isZero(v any) bool {
	f, ok := AsFloat(v)
	return ok && f == 0 && !math.IsNaN(f)
}
