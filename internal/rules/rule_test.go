package rules

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

func TestMatchTriesPatternsInOrder(t *testing.T) {
	r := Rule{
		ID: "test",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`first (\w+)`),
			regexp.MustCompile(`second (\w+)`),
		},
	}

	m := r.Match("second chance")
	require.NotNil(t, m)
	assert.Equal(t, "chance", m[1])

	assert.Nil(t, r.Match("no pattern here"))
}

func TestExtractInt(t *testing.T) {
	r := Rule{ID: "test", Extract: ExtractInt}

	p, err := r.ExtractParams(testNow, "older than 65", []string{"older than 65", "65"})
	require.NoError(t, err)
	assert.Equal(t, 65, p.Int)

	_, err = r.ExtractParams(testNow, "", []string{"x", "not-a-number"})
	assert.Error(t, err)
}

func TestExtractBloodType(t *testing.T) {
	r := Rule{ID: "test", Extract: ExtractBloodType}

	p, err := r.ExtractParams(testNow, "", []string{"x", "ab+"})
	require.NoError(t, err)
	assert.Equal(t, "AB+", p.Code)
}

func TestExtractName(t *testing.T) {
	r := Rule{ID: "test", Extract: ExtractName}

	p, err := r.ExtractParams(testNow, "", []string{"x", "  smith  "})
	require.NoError(t, err)
	assert.Equal(t, "smith", p.Name)

	_, err = r.ExtractParams(testNow, "", []string{"x", "   "})
	assert.Error(t, err)
}

func TestExtractNameGroupSelection(t *testing.T) {
	r := Rule{ID: "test", Extract: ExtractName, Group: 2}

	p, err := r.ExtractParams(testNow, "", []string{"x", "for", "garcia"})
	require.NoError(t, err)
	assert.Equal(t, "garcia", p.Name)

	_, err = r.ExtractParams(testNow, "", []string{"x", "only-one"})
	assert.Error(t, err)
}

func TestExtractThreshold(t *testing.T) {
	r := Rule{ID: "test", Extract: ExtractThreshold}

	p, err := r.ExtractParams(testNow, "doctors with more than 10 appointments", []string{"whatever"})
	require.NoError(t, err)
	assert.Equal(t, 10, p.Int)

	// Pattern matched but the question has no extractable bound: the
	// rule reports a non-match instead of failing the pipeline.
	_, err = r.ExtractParams(testNow, "doctors with at least some appointments", []string{"whatever"})
	assert.Error(t, err)
}

func TestExtractWindow(t *testing.T) {
	r := Rule{ID: "test", Extract: ExtractWindow}

	p, err := r.ExtractParams(testNow, "", []string{"x", "2", "weeks"})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Count)
	assert.Equal(t, "week", p.Unit)
	assert.Equal(t, testNow.AddDate(0, 0, -14), p.Since)

	_, err = r.ExtractParams(testNow, "", []string{"x", "2"})
	assert.Error(t, err)
}

func TestWindowParams(t *testing.T) {
	tests := []struct {
		count    string
		unit     string
		wantDays int
	}{
		{"7", "days", 7},
		{"1", "day", 1},
		{"2", "weeks", 14},
		{"3", "months", 90},
		{"1", "year", 365},
		{"", "week", 7},
		{"a", "month", 30},
		{"the", "day", 1},
		{"this", "week", 7},
	}
	for _, tt := range tests {
		p, err := WindowParams(testNow, tt.count, tt.unit)
		require.NoError(t, err, "%s %s", tt.count, tt.unit)
		assert.Equal(t, testNow.AddDate(0, 0, -tt.wantDays), p.Since, "%s %s", tt.count, tt.unit)
	}
}

func TestWindowParamsRejectsBadInput(t *testing.T) {
	_, err := WindowParams(testNow, "0", "days")
	assert.Error(t, err)

	_, err = WindowParams(testNow, "x", "days")
	assert.Error(t, err)

	_, err = WindowParams(testNow, "2", "fortnights")
	assert.Error(t, err)
}
