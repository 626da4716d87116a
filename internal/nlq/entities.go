package nlq

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Entities holds the structured values recognized in a question. Produced
// fresh per question; absent fields stay zero-valued. Extraction never
// fails: a question with no recognizable entities yields an empty record.
type Entities struct {
	// Numbers are numeric tokens in order of appearance.
	Numbers []int

	// Dates are date-shaped tokens. A 4-digit token beginning with "2" is
	// treated as a year; other date-shaped tokens are kept verbatim.
	Dates []string

	// Names are capitalized tokens that are not sentence-initial and not a
	// doctor honorific. Extracted from the raw text, since normalization
	// folds the case information away.
	Names []string

	// BloodTypes are codes from {A, B, AB, O} followed by + or -.
	BloodTypes []string

	// Age is the first "<n> year(s) [old]" or "<n> yo" occurrence.
	// Zero when absent; HasAge distinguishes "age 0" from "no age".
	Age    int
	HasAge bool

	// Gender is "F" or "M" when a gender cue is present, "" otherwise.
	// Female cues win when both appear.
	Gender string
}

var (
	bloodTypeRe = regexp.MustCompile(`(?:AB|A|B|O)[+-]`)
	ageRe       = regexp.MustCompile(`(\d+)\s*(?:year(?:s)?(?:\s+old)?|yo)\b`)
	dateShapeRe = regexp.MustCompile(`^\d{4}-\d{2}(?:-\d{2})?$`)

	// Whole words only: "men" hides inside "appointments", and "male"
	// inside "female". The female check runs first to settle the latter.
	femaleRe = regexp.MustCompile(`\b(?:female|females|woman|women)\b`)
	maleRe   = regexp.MustCompile(`\b(?:male|males|man|men)\b`)
)

// Honorifics that precede doctor names and must not be mistaken for names.
var honorifics = map[string]bool{
	"dr":     true,
	"dr.":    true,
	"doctor": true,
}

// Extract scans question text for structured entities.
//
// It takes the raw (pre-normalization) text because name-span detection
// relies on capitalization. Lower-case cues (age, gender) are matched
// against an internally normalized copy.
func Extract(raw string) Entities {
	var ents Entities
	lower := string(Normalize(raw))

	for i, tok := range strings.Fields(raw) {
		trimmed := strings.Trim(tok, ",.?!;:")
		if trimmed == "" {
			continue
		}

		if n, err := strconv.Atoi(trimmed); err == nil {
			ents.Numbers = append(ents.Numbers, n)
			if len(trimmed) == 4 && trimmed[0] == '2' {
				ents.Dates = append(ents.Dates, trimmed)
			}
			continue
		}
		if dateShapeRe.MatchString(trimmed) {
			ents.Dates = append(ents.Dates, trimmed)
			continue
		}

		// Name fragments: capitalized, not sentence-initial, not an honorific.
		first, _ := firstRune(trimmed)
		if i > 0 && unicode.IsUpper(first) && !honorifics[strings.ToLower(trimmed)] {
			ents.Names = append(ents.Names, trimmed)
		}
	}

	// Blood types match anywhere, including inside larger tokens, so scan
	// the raw text rather than per-token. Codes are upper-case by definition.
	ents.BloodTypes = bloodTypeRe.FindAllString(raw, -1)

	if m := ageRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			ents.Age = n
			ents.HasAge = true
		}
	}

	switch {
	case femaleRe.MatchString(lower):
		ents.Gender = "F"
	case maleRe.MatchString(lower):
		ents.Gender = "M"
	}

	return ents
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
