package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: translation cases and
// raw validator statements.
type Scenario struct {
	// Name uniquely identifies this scenario. Doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Cases are questions with expected translation outcomes.
	Cases []Case `yaml:"cases,omitempty"`

	// Statements are raw SQL texts with expected validator verdicts.
	Statements []Statement `yaml:"statements,omitempty"`
}

// Case pairs a question with its expected translation.
type Case struct {
	// Question is the raw input, before normalization.
	Question string `yaml:"question"`

	// ExpectRule is the identifier of the rule expected to produce the
	// query. Empty means any rule is acceptable.
	ExpectRule string `yaml:"expect_rule,omitempty"`

	// ExpectNoMatch asserts the question translates to nothing.
	// Mutually exclusive with ExpectRule.
	ExpectNoMatch bool `yaml:"expect_no_match,omitempty"`

	// SQLContains lists fragments the rendered SQL must contain.
	SQLContains []string `yaml:"sql_contains,omitempty"`

	// Args are the expected bound parameters, in placeholder order.
	// Nil means the args are not checked; an empty list asserts there
	// are none.
	Args []any `yaml:"args,omitempty"`
}

// Statement pairs a raw SQL text with the expected validator verdict.
type Statement struct {
	SQL   string `yaml:"sql"`
	Allow bool   `yaml:"allow"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "case:" vs "cases:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Cases) == 0 && len(s.Statements) == 0 {
		return fmt.Errorf("at least one case or statement is required")
	}

	for i, c := range s.Cases {
		if c.Question == "" {
			return fmt.Errorf("cases[%d]: question is required", i)
		}
		if c.ExpectNoMatch && c.ExpectRule != "" {
			return fmt.Errorf("cases[%d]: expect_rule and expect_no_match are mutually exclusive", i)
		}
		if c.ExpectNoMatch && (len(c.SQLContains) > 0 || c.Args != nil) {
			return fmt.Errorf("cases[%d]: sql expectations are meaningless with expect_no_match", i)
		}
	}

	for i, st := range s.Statements {
		if st.SQL == "" {
			return fmt.Errorf("statements[%d]: sql is required", i)
		}
	}

	return nil
}
