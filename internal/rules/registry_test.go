package rules

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopRender(Params) (Query, error) {
	return Query{SQL: "SELECT 1"}, nil
}

func testRule(id, pattern string) Rule {
	return Rule{
		ID:       id,
		Patterns: []*regexp.Regexp{regexp.MustCompile(pattern)},
		Render:   noopRender,
	}
}

func TestNewPreservesOrder(t *testing.T) {
	reg, err := New(testRule("one", "aaa"), testRule("two", "bbb"), testRule("three", "ccc"))
	require.NoError(t, err)

	got := reg.Rules()
	require.Len(t, got, 3)
	assert.Equal(t, "one", got[0].ID)
	assert.Equal(t, "two", got[1].ID)
	assert.Equal(t, "three", got[2].ID)
	assert.Equal(t, 3, reg.Len())
}

func TestByID(t *testing.T) {
	reg, err := New(testRule("one", "aaa"))
	require.NoError(t, err)

	r, ok := reg.ByID("one")
	assert.True(t, ok)
	assert.Equal(t, "one", r.ID)

	_, ok = reg.ByID("missing")
	assert.False(t, ok)
}

func TestNewRejectsInvalidRules(t *testing.T) {
	_, err := New(testRule("", "aaa"))
	assert.Error(t, err, "empty ID")

	_, err = New(testRule("dup", "aaa"), testRule("dup", "bbb"))
	assert.Error(t, err, "duplicate ID")

	_, err = New(Rule{ID: "nopatterns", Render: noopRender})
	assert.Error(t, err, "no patterns")

	_, err = New(Rule{ID: "norender", Patterns: []*regexp.Regexp{regexp.MustCompile("x")}})
	assert.Error(t, err, "nil render")

	_, err = New(testRule("one", "same"), testRule("two", "same"))
	assert.Error(t, err, "duplicate pattern across rules")
}

func TestRulesReturnsCopy(t *testing.T) {
	reg, err := New(testRule("one", "aaa"), testRule("two", "bbb"))
	require.NoError(t, err)

	got := reg.Rules()
	got[0] = testRule("mutated", "zzz")
	assert.Equal(t, "one", reg.Rules()[0].ID)
}
