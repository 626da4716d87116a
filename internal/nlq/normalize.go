// Package nlq holds the question-side primitives of the translator:
// input normalization and entity extraction. Everything in this package
// is a pure function of its input and safe for concurrent use.
package nlq

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Question is normalized question text: NFC-normalized, trimmed, and
// lower-cased. It is never mutated after creation; all rule matching and
// dispatch operates on this form.
type Question string

// Normalize converts raw input into the canonical matching form.
//
// NFC normalization runs first so that visually identical inputs produce
// identical Questions regardless of how they were composed. Lower-casing
// uses Unicode simple case mapping; no locale-specific folding.
func Normalize(raw string) Question {
	s := norm.NFC.String(raw)
	s = strings.TrimSpace(s)
	return Question(strings.ToLower(s))
}

// String returns the normalized text.
func (q Question) String() string {
	return string(q)
}

// Contains reports whether the normalized text contains substr.
func (q Question) Contains(substr string) bool {
	return strings.Contains(string(q), substr)
}
