// Package safety classifies statement text as an acceptable read-only
// query or rejects it. It is the gate between the translator and the
// storage engine: the execution adapter refuses anything this package
// does not approve.
//
// The check is allow-list based. A statement passes only if it begins
// with SELECT (after optional whitespace and parentheses), contains no
// SQL comments, and contains none of the write/DDL keywords as a whole
// word in any case.
package safety

import (
	"regexp"
	"strings"
)

// Decision is the validator's verdict plus the normalized statement text
// the verdict was made on. Callers must execute the normalized text, not
// the original, when Allowed is true.
type Decision struct {
	Allowed    bool
	Normalized string
}

// forbidden matches write, DDL, and session-control keywords as whole
// words, case-insensitively. Matching whole words (not substrings) keeps
// column names like "created_at" from tripping the CREATE check.
var forbidden = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE|DROP|ALTER|CREATE|ATTACH|DETACH|PRAGMA|EXEC|REPLACE|TRUNCATE|MERGE|BEGIN|COMMIT|ROLLBACK)\b`)

// selectPrefix accepts optional leading whitespace and opening parentheses
// before the SELECT keyword.
var selectPrefix = regexp.MustCompile(`(?i)^[\s(]*SELECT\b`)

// Check validates statement text.
//
// Normalization: trim surrounding whitespace and drop one trailing
// semicolon. Rejection rules, first match wins:
//
//  1. empty input
//  2. a line-comment marker (--) or block-comment opener (/*) anywhere
//  3. a forbidden keyword as a case-insensitive whole word anywhere
//  4. anything that does not start with SELECT
//
// Multi-statement injection ("SELECT ...; DROP ...") falls to rule 3: the
// trailing statement's keyword is still a whole-word match. Check is
// idempotent over its own normalized output.
func Check(sql string) Decision {
	s := strings.TrimSpace(sql)
	if s == "" {
		return Decision{}
	}
	if strings.HasSuffix(s, ";") {
		s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	}

	if strings.Contains(s, "--") || strings.Contains(s, "/*") {
		return Decision{Normalized: s}
	}
	if forbidden.MatchString(s) {
		return Decision{Normalized: s}
	}
	if !selectPrefix.MatchString(s) {
		return Decision{Normalized: s}
	}
	return Decision{Allowed: true, Normalized: s}
}
