package shared

import (
	"strings"
	"unicode/utf8"
)

var sanitizeReplacer = strings.NewReplacer("<", "", ">", "")

// SanitizeInput strips characters and pseudo-protocols that could smuggle
// markup or script payloads into prompts or logs, then caps the length.
// It runs on top of schema validation, so already-validated values pass
// through it again before any downstream use. Idempotent.
func SanitizeInput(input string) string {
	out := sanitizeReplacer.Replace(input)
	out = stripFold(out, "javascript:")
	out = stripFold(out, "data:")

	out = TruncateOnRuneBoundary(out, MaxSanitizedLen)
	// Trim after the length cap so a cut that exposes trailing
	// whitespace cannot change the result on a second pass.
	return strings.TrimSpace(out)
}

// TruncateOnRuneBoundary caps s at max bytes, backing up so the cut never
// splits a multi-byte rune.
func TruncateOnRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// stripFold removes every case-insensitive occurrence of sub, including
// occurrences formed by a prior removal (e.g. "javajavascript:script:").
func stripFold(s, sub string) string {
	for {
		idx := indexFold(s, sub)
		if idx < 0 {
			return s
		}
		s = s[:idx] + s[idx+len(sub):]
	}
}

func indexFold(s, sub string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(sub))
}
