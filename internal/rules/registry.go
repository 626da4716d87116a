package rules

import "fmt"

// Registry is the fixed, ordered collection of all rules. Insertion
// order is dispatch priority. Built once during process initialization;
// read-only and safe for concurrent use thereafter.
type Registry struct {
	rules []Rule
	byID  map[string]int
}

// New builds a registry from rules in priority order.
//
// Construction is the only phase that may fail: duplicate identifiers
// and duplicate pattern strings (which would make dispatch ambiguous)
// are configuration errors.
func New(rs ...Rule) (*Registry, error) {
	byID := make(map[string]int, len(rs))
	patterns := make(map[string]string)

	for i, r := range rs {
		if r.ID == "" {
			return nil, fmt.Errorf("rule %d has an empty identifier", i)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate rule identifier %q", r.ID)
		}
		if len(r.Patterns) == 0 {
			return nil, fmt.Errorf("rule %q has no patterns", r.ID)
		}
		if r.Render == nil {
			return nil, fmt.Errorf("rule %q has no render step", r.ID)
		}
		for _, p := range r.Patterns {
			if prev, dup := patterns[p.String()]; dup {
				return nil, fmt.Errorf("rules %q and %q share pattern %q", prev, r.ID, p.String())
			}
			patterns[p.String()] = r.ID
		}
		byID[r.ID] = i
	}

	out := make([]Rule, len(rs))
	copy(out, rs)
	return &Registry{rules: out, byID: byID}, nil
}

// ByID looks a rule up by identifier.
func (reg *Registry) ByID(id string) (Rule, bool) {
	i, ok := reg.byID[id]
	if !ok {
		return Rule{}, false
	}
	return reg.rules[i], true
}

// Rules returns the rules in registration order.
func (reg *Registry) Rules() []Rule {
	out := make([]Rule, len(reg.rules))
	copy(out, reg.rules)
	return out
}

// Len returns the number of registered rules.
func (reg *Registry) Len() int {
	return len(reg.rules)
}
