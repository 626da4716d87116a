package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/medq/internal/rules"
	"github.com/roach88/medq/internal/safety"
	"github.com/roach88/medq/internal/schema"
	"github.com/roach88/medq/internal/testutil"
	"github.com/roach88/medq/internal/translate"
)

// CaseOutcome is the recorded result of one translation case.
type CaseOutcome struct {
	Question string `json:"question"`
	Matched  bool   `json:"matched"`
	RuleID   string `json:"rule_id,omitempty"`
	SQL      string `json:"sql,omitempty"`
	Args     []any  `json:"args,omitempty"`
}

// Result holds a scenario run's outcomes and accumulated failures.
type Result struct {
	Pass     bool
	Errors   []string
	Outcomes []CaseOutcome
}

// Run executes a scenario against the builtin rule set, the default
// schema, and a frozen clock. Expectation failures accumulate in
// Result.Errors rather than aborting, so one run reports every broken
// case.
func Run(scenario *Scenario) (*Result, error) {
	reg, err := rules.Builtin()
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	clock := testutil.NewFrozenClock()
	pipeline := translate.New(reg, schema.Default(), translate.WithClock(clock.Now))

	result := &Result{Pass: true}
	fail := func(format string, args ...any) {
		result.Pass = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	for i, c := range scenario.Cases {
		res := pipeline.Translate(c.Question)
		result.Outcomes = append(result.Outcomes, CaseOutcome{
			Question: c.Question,
			Matched:  res.Matched,
			RuleID:   res.RuleID,
			SQL:      res.SQL,
			Args:     res.Args,
		})

		if c.ExpectNoMatch {
			if res.Matched {
				fail("cases[%d] %q: expected no match, got rule %s", i, c.Question, res.RuleID)
			}
			continue
		}
		if !res.Matched {
			fail("cases[%d] %q: expected a match, got none", i, c.Question)
			continue
		}
		if c.ExpectRule != "" && res.RuleID != c.ExpectRule {
			fail("cases[%d] %q: expected rule %s, got %s", i, c.Question, c.ExpectRule, res.RuleID)
		}
		for _, frag := range c.SQLContains {
			if !strings.Contains(res.SQL, frag) {
				fail("cases[%d] %q: rendered SQL missing %q", i, c.Question, frag)
			}
		}
		if c.Args != nil && !argsEqual(c.Args, res.Args) {
			fail("cases[%d] %q: expected args %v, got %v", i, c.Question, c.Args, res.Args)
		}

		// Every rendering must clear the validator, whatever the
		// case's explicit expectations say.
		if d := safety.Check(res.SQL); !d.Allowed {
			fail("cases[%d] %q: rendered SQL rejected by validator", i, c.Question)
		}
	}

	for i, st := range scenario.Statements {
		d := safety.Check(st.SQL)
		if d.Allowed != st.Allow {
			fail("statements[%d] %q: expected allow=%v, got %v", i, st.SQL, st.Allow, d.Allowed)
		}
	}

	return result, nil
}

// argsEqual compares expected and actual bound parameters by rendered
// value. YAML decodes numbers as int while renderings may bind any
// integer kind, so a textual comparison is the stable one.
func argsEqual(want, got []any) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if fmt.Sprintf("%v", want[i]) != fmt.Sprintf("%v", got[i]) {
			return false
		}
	}
	return true
}
