// Package translate drives the rule registry: it evaluates candidate
// strategies for a question in a fixed priority order and returns the
// first rendered query, falling back to a generic entity-driven builder
// and finally to a "no match" result.
package translate

// GenericBuilderID identifies results produced by the entity-driven
// generic builder rather than a registered rule.
const GenericBuilderID = "generic_builder"

// Result is a rendered query plus the identifier of the rule that
// produced it. The "no match" sentinel is the zero Result: Matched is
// false and SQL is empty. No other convention (nil, comment-prefixed
// strings) is used anywhere.
type Result struct {
	RuleID  string
	SQL     string
	Args    []any
	Matched bool
}

// NoMatch is the sentinel returned when no strategy produced a query.
var NoMatch = Result{}
