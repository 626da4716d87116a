// Package harness provides conformance testing for the translator and
// the safety validator.
//
// Scenarios are YAML files pairing questions with the rule expected to
// answer them, plus raw statements with the validator verdict expected
// for each. The harness runs every case against a frozen clock so
// rendered date windows are byte-stable, which makes golden snapshot
// comparison possible.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	cases:
//	  - question: "Show all patients older than 60"
//	    expect_rule: patients_older_than
//	    sql_contains: ["WHERE age > ?"]
//	    args: [60]
//	  - question: "asdf qwerty"
//	    expect_no_match: true
//	statements:
//	  - sql: "DROP TABLE patients"
//	    allow: false
//
// Every translated statement is additionally pushed through the safety
// validator; a rendering the validator rejects fails the scenario even
// when every explicit expectation holds.
//
// # Golden Snapshots
//
// RunWithGolden serializes each case's outcome (rule, SQL, bound args)
// and compares it against testdata/golden/{name}.golden. Regenerate
// with:
//
//	go test ./internal/harness -update
package harness
