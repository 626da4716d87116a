// Package rules defines the translator's query rules: declarative,
// immutable records pairing match patterns with a parameter-extraction
// strategy and a SQL-rendering step. Rules live in an ordered registry
// built once at startup; registration order is dispatch priority.
//
// Every extracted value is rendered as a bound parameter, never
// interpolated into the statement text. The safety validator still
// checks the rendered text afterwards as a second layer.
package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Extractor tags the parameter-extraction strategy a rule runs after one
// of its patterns matches.
type Extractor int

const (
	// ExtractNone takes no parameters from the match.
	ExtractNone Extractor = iota

	// ExtractInt parses the designated capture group as an integer.
	ExtractInt

	// ExtractBloodType upper-cases the designated capture group as a
	// blood-type code.
	ExtractBloodType

	// ExtractName trims surrounding whitespace from the designated
	// capture group.
	ExtractName

	// ExtractThreshold re-extracts an integer from a "more than N"
	// sub-phrase of the full question, independent of the capture groups.
	ExtractThreshold

	// ExtractWindow reads an optional count and a day/week/month/year
	// unit from the captures and resolves them to a window start date.
	ExtractWindow
)

// Params carries a rule's typed parameters from extraction to rendering.
// Only the fields relevant to the rule's Extractor are set.
type Params struct {
	Int   int       // ExtractInt, ExtractThreshold
	Code  string    // ExtractBloodType
	Name  string    // ExtractName
	Since time.Time // ExtractWindow: start of the date window
	Count int       // ExtractWindow: number of units
	Unit  string    // ExtractWindow: normalized singular unit
}

// Query is a rendered statement: SQL text with ? placeholders and the
// values bound to them, in order.
type Query struct {
	SQL  string
	Args []any
}

// RenderFunc produces a Query from typed parameters.
type RenderFunc func(Params) (Query, error)

// Rule is one immutable query rule. Patterns are tried in order; the
// first match wins. Group designates the capture group the extractor
// reads (0 means group 1; ExtractWindow always reads groups 1 and 2).
type Rule struct {
	ID       string
	Patterns []*regexp.Regexp
	Extract  Extractor
	Group    int
	Render   RenderFunc
}

// thresholdRe mirrors the reference threshold phrase. Only "more than"
// carries an extractable bound here; rules whose pattern matched without
// one report an extraction failure and are skipped.
var thresholdRe = regexp.MustCompile(`more than (\d+)`)

// Match tries the rule's patterns in order against normalized text.
// Returns the submatches of the first pattern that matches, or nil.
func (r Rule) Match(text string) []string {
	for _, p := range r.Patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m
		}
	}
	return nil
}

// ExtractParams runs the rule's extraction strategy.
//
// text is the full normalized question (ExtractThreshold re-scans it),
// m the submatches returned by Match, and now anchors window math.
// A returned error means "treat this rule as a non-match"; it never
// aborts the pipeline.
func (r Rule) ExtractParams(now time.Time, text string, m []string) (Params, error) {
	switch r.Extract {
	case ExtractNone:
		return Params{}, nil

	case ExtractInt:
		g, err := r.group(m)
		if err != nil {
			return Params{}, err
		}
		n, err := strconv.Atoi(g)
		if err != nil {
			return Params{}, fmt.Errorf("rule %s: capture %q is not an integer", r.ID, g)
		}
		return Params{Int: n}, nil

	case ExtractBloodType:
		g, err := r.group(m)
		if err != nil {
			return Params{}, err
		}
		return Params{Code: strings.ToUpper(g)}, nil

	case ExtractName:
		g, err := r.group(m)
		if err != nil {
			return Params{}, err
		}
		name := strings.TrimSpace(g)
		if name == "" {
			return Params{}, fmt.Errorf("rule %s: empty name capture", r.ID)
		}
		return Params{Name: name}, nil

	case ExtractThreshold:
		tm := thresholdRe.FindStringSubmatch(text)
		if tm == nil {
			return Params{}, fmt.Errorf("rule %s: no threshold phrase in question", r.ID)
		}
		n, err := strconv.Atoi(tm[1])
		if err != nil {
			return Params{}, fmt.Errorf("rule %s: threshold %q is not an integer", r.ID, tm[1])
		}
		return Params{Int: n}, nil

	case ExtractWindow:
		if len(m) < 3 {
			return Params{}, fmt.Errorf("rule %s: window pattern needs two capture groups", r.ID)
		}
		return WindowParams(now, m[1], m[2])
	}
	return Params{}, fmt.Errorf("rule %s: unknown extractor %d", r.ID, r.Extract)
}

// group returns the designated capture group's text.
func (r Rule) group(m []string) (string, error) {
	idx := r.Group
	if idx == 0 {
		idx = 1
	}
	if idx >= len(m) {
		return "", fmt.Errorf("rule %s: missing capture group %d", r.ID, idx)
	}
	return m[idx], nil
}

// WindowParams resolves a (count, unit) phrase to a window start date.
// Articles ("a", "the", "this") and an absent count mean one unit.
// Units are normalized by stripping a trailing "s"; month approximates
// to 30 days and year to 365.
func WindowParams(now time.Time, count, unit string) (Params, error) {
	count = strings.TrimSpace(count)
	switch count {
	case "", "a", "the", "this":
		count = "1"
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		return Params{}, fmt.Errorf("window count %q is not an integer", count)
	}
	if n < 1 {
		return Params{}, fmt.Errorf("window count %d out of range", n)
	}

	u := strings.TrimSuffix(strings.ToLower(unit), "s")
	var days int
	switch u {
	case "day":
		days = n
	case "week":
		days = n * 7
	case "month":
		days = n * 30
	case "year":
		days = n * 365
	default:
		return Params{}, fmt.Errorf("unknown window unit %q", unit)
	}

	return Params{
		Since: now.AddDate(0, 0, -days),
		Count: n,
		Unit:  u,
	}, nil
}
