package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAllowsReads(t *testing.T) {
	allowed := []string{
		"SELECT name FROM patients",
		"select name from patients",
		"  SELECT name FROM patients  ",
		"SELECT name FROM patients;",
		"(SELECT COUNT(*) FROM doctors)",
		"  ((SELECT 1))",
		"SELECT d.name FROM doctors d LEFT JOIN appointments a ON d.doctor_id = a.doctor_id",
		"SELECT name FROM patients WHERE name LIKE '%smith%'",
		// Column names containing forbidden keywords as substrings.
		"SELECT created_at, updated_count FROM patients",
	}
	for _, sql := range allowed {
		d := Check(sql)
		assert.True(t, d.Allowed, "should allow: %s", sql)
	}
}

func TestCheckRejectsWritesAndDDL(t *testing.T) {
	rejected := []string{
		"INSERT INTO patients VALUES (1)",
		"UPDATE patients SET age = 1",
		"DELETE FROM patients",
		"DROP TABLE patients",
		"ALTER TABLE patients ADD COLUMN x",
		"CREATE TABLE x (id INTEGER)",
		"ATTACH DATABASE 'x' AS y",
		"DETACH DATABASE y",
		"PRAGMA journal_mode = DELETE",
		"REPLACE INTO patients VALUES (1)",
		"TRUNCATE TABLE patients",
		"BEGIN",
		"COMMIT",
		"ROLLBACK",
	}
	for _, sql := range rejected {
		d := Check(sql)
		assert.False(t, d.Allowed, "should reject: %s", sql)
	}
}

func TestCheckRejectsObfuscation(t *testing.T) {
	rejected := []string{
		// Case games.
		"dRoP TaBlE patients",
		"  DeLeTe FROM patients",
		// Multi-statement injection: the second statement's keyword is
		// still a whole-word hit.
		"SELECT * FROM patients; DROP TABLE patients",
		"SELECT 1; INSERT INTO patients VALUES (1)",
		// Comments anywhere.
		"SELECT name FROM patients -- tail",
		"-- leading comment\nSELECT name FROM patients",
		"SELECT /* inline */ name FROM patients",
		// Keyword buried mid-statement.
		"SELECT name FROM patients WHERE x = 1 UNION SELECT 1; DELETE FROM patients",
	}
	for _, sql := range rejected {
		d := Check(sql)
		assert.False(t, d.Allowed, "should reject: %s", sql)
	}
}

func TestCheckRejectsNonSelect(t *testing.T) {
	rejected := []string{
		"",
		"   ",
		";",
		"WITH x AS (SELECT 1) SELECT * FROM x",
		"EXPLAIN SELECT 1",
		"VACUUM",
		"SELECTX FROM patients",
	}
	for _, sql := range rejected {
		d := Check(sql)
		assert.False(t, d.Allowed, "should reject: %q", sql)
	}
}

func TestCheckNormalization(t *testing.T) {
	d := Check("  SELECT name FROM patients;  ")
	assert.True(t, d.Allowed)
	assert.Equal(t, "SELECT name FROM patients", d.Normalized)

	// Only one trailing semicolon is dropped; the remainder still ends
	// with one and is not SELECT-terminated cleanly.
	d = Check("SELECT name FROM patients;;")
	assert.Equal(t, "SELECT name FROM patients;", d.Normalized)
}

func TestCheckIdempotent(t *testing.T) {
	inputs := []string{
		"SELECT name FROM patients;",
		"  (SELECT 1)  ",
		"DROP TABLE patients",
	}
	for _, sql := range inputs {
		first := Check(sql)
		second := Check(first.Normalized)
		assert.Equal(t, first.Allowed, second.Allowed, "verdict changed: %q", sql)
		assert.Equal(t, second.Normalized, Check(second.Normalized).Normalized, "normalization not stable: %q", sql)
	}
}
