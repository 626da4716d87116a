package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/medq/internal/nlq"
	"github.com/roach88/medq/internal/safety"
)

// generic runs a raw question through the builder directly, bypassing
// the earlier pipeline stages.
func generic(t *testing.T, raw string) (Result, bool) {
	t.Helper()
	p := testPipeline(t)
	text := nlq.Normalize(raw).String()
	return p.buildGeneric(text, nlq.Extract(raw))
}

func TestBuildGenericDeclinesOnNoSignal(t *testing.T) {
	for _, q := range []string{"zxqv plugh", "hello there", ""} {
		res, ok := generic(t, q)
		assert.False(t, ok, q)
		assert.Equal(t, NoMatch, res, q)
	}
}

func TestBuildGenericCountWithGender(t *testing.T) {
	res, ok := generic(t, "how many female patients")
	require.True(t, ok)
	assert.Equal(t, GenericBuilderID, res.RuleID)
	assert.Contains(t, res.SQL, "COUNT(*)")
	assert.Contains(t, res.SQL, "gender = ?")
	assert.Equal(t, []any{"F"}, res.Args)
}

func TestBuildGenericCountWithAge(t *testing.T) {
	res, ok := generic(t, "how many patients over 70 years old")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "age > ?")
	assert.Equal(t, []any{70}, res.Args)
}

func TestBuildGenericAverageAge(t *testing.T) {
	res, ok := generic(t, "average age of male patients")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "AVG(age)")
	assert.Contains(t, res.SQL, "gender = ?")
	assert.Equal(t, []any{"M"}, res.Args)
}

func TestBuildGenericListWithName(t *testing.T) {
	res, ok := generic(t, "show patients named Garcia")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "name LIKE ?")
	assert.Equal(t, []any{"%Garcia%"}, res.Args)
}

func TestBuildGenericSpecialtyBreakdown(t *testing.T) {
	res, ok := generic(t, "how many doctors by specialty")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "GROUP BY specialty")
	assert.Empty(t, res.Args)
}

func TestBuildGenericAppointmentJoin(t *testing.T) {
	res, ok := generic(t, "show appointments for Chen in 2025")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "JOIN patients p")
	assert.Contains(t, res.SQL, "p.name LIKE ?")
	assert.Contains(t, res.SQL, "a.date LIKE ?")
	assert.Equal(t, []any{"%Chen%", "2025%"}, res.Args)
}

func TestBuildGenericAppointmentDoctorName(t *testing.T) {
	res, ok := generic(t, "appointments with doctor Chen")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "d.name LIKE ?")
	assert.Equal(t, []any{"%Chen%"}, res.Args)
}

func TestBuildGenericAppointmentCount(t *testing.T) {
	res, ok := generic(t, "number of appointments in 2025")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "COUNT(*)")
	assert.Contains(t, res.SQL, "a.date LIKE ?")
	assert.Equal(t, []any{"2025%"}, res.Args)
}

func TestBuildGenericPrescriptions(t *testing.T) {
	res, ok := generic(t, "list prescriptions")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "FROM prescriptions pr")
	assert.Contains(t, res.SQL, "JOIN medications m")

	res, ok = generic(t, "how many prescriptions")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "COUNT(*)")
}

// The age cue outranks the relation cues, so an age aggregate that
// mentions prescriptions still targets the patients table.
func TestBuildGenericAgeCueOutranksPrescription(t *testing.T) {
	res, ok := generic(t, "average age per prescription")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "AVG(age)")
	assert.Contains(t, res.SQL, "FROM patients")
	assert.NotContains(t, res.SQL, "FROM prescriptions")
}

func TestBuildGenericMedicationListing(t *testing.T) {
	res, ok := generic(t, "list medications")
	require.True(t, ok)
	assert.Contains(t, res.SQL, "FROM prescriptions pr")
}

// Everything the builder emits must clear the validator, with all
// values as bound parameters.
func TestBuildGenericOutputsPassValidator(t *testing.T) {
	questions := []string{
		"how many female patients",
		"how many patients over 70 years old",
		"average age of male patients",
		"average appointments per doctor",
		"show patients named Garcia",
		"how many doctors by specialty",
		"show appointments for Chen in 2025",
		"number of appointments in 2025",
		"list prescriptions",
		"how many prescriptions",
		"list the patients",
	}
	for _, q := range questions {
		res, ok := generic(t, q)
		if !ok {
			continue
		}
		d := safety.Check(res.SQL)
		assert.True(t, d.Allowed, "%s rendered rejected SQL:\n%s", q, res.SQL)
		assert.Equal(t, strings.Count(res.SQL, "?"), len(res.Args), q)
	}
}
