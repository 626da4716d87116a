package translate

import (
	"strings"

	"github.com/roach88/medq/internal/nlq"
)

// Query intent classes recognized by the generic builder.
const (
	intentCount     = "COUNT"
	intentSelect    = "SELECT"
	intentAggregate = "AGGREGATE"
)

// termTables maps keyword cues to base tables, checked in order.
// The first cue present in the question picks the table, so "age"
// outranks the relation cues: "average age per prescription" averages
// patient age.
var termTables = []struct {
	term  string
	table string
}{
	{"age", "patients"},
	{"specialty", "doctors"},
	{"appointment", "appointments"},
	{"prescription", "prescriptions"},
	{"medication", "medications"},
}

// defaultColumns is the projection used for plain listings per table.
var defaultColumns = map[string]string{
	"patients":    "name, age, gender, blood_type",
	"doctors":     "name, specialty",
	"medications": "name, manufacturer",
}

// buildGeneric is the last-resort strategy: classify intent from keyword
// cues, pick a base table from entities and term heuristics, and
// assemble SELECT/COUNT/AVG/GROUP BY/JOIN clauses from the extracted
// entities. All values are bound parameters.
//
// It declines (returns false) when the question carries no signal at
// all: no table cue, no entities, a plain SELECT intent, and no
// list/show verb. That case is the pipeline's NoMatch.
func (p *Pipeline) buildGeneric(text string, ents nlq.Entities) (Result, bool) {
	intent := classifyIntent(text)
	table, cued := p.baseTable(text)

	hasEntities := len(ents.Names) > 0 || len(ents.Dates) > 0 || ents.HasAge || ents.Gender != ""
	hasListVerb := strings.Contains(text, "list") || strings.Contains(text, "show")
	if !cued && !hasEntities && intent == intentSelect && !hasListVerb {
		return NoMatch, false
	}

	switch table {
	case "appointments":
		return p.buildAppointmentQuery(text, ents), true
	case "prescriptions", "medications":
		return p.buildPrescriptionQuery(text, ents), true
	}

	switch intent {
	case intentCount:
		return p.buildCountQuery(table, text, ents), true
	case intentAggregate:
		return p.buildAverageQuery(table, text, ents), true
	}
	return p.buildListQuery(table, text, ents), true
}

// classifyIntent picks COUNT, AGGREGATE, or SELECT from keyword cues.
func classifyIntent(text string) string {
	switch {
	case strings.Contains(text, "how many") || strings.Contains(text, "count") || strings.Contains(text, "number of"):
		return intentCount
	case strings.Contains(text, "average") || strings.Contains(text, "mean"):
		return intentAggregate
	}
	return intentSelect
}

// baseTable picks the base table from keyword cues, defaulting to
// patients. Tables absent from the schema descriptor are skipped, so a
// reduced descriptor degrades gracefully. The second return reports
// whether an explicit cue was found.
func (p *Pipeline) baseTable(text string) (string, bool) {
	for _, tt := range termTables {
		if strings.Contains(text, tt.term) && p.schema.Has(tt.table) {
			return tt.table, true
		}
	}
	if strings.Contains(text, "doctor") && p.schema.Has("doctors") {
		return "doctors", true
	}
	if strings.Contains(text, "patient") && p.schema.Has("patients") {
		return "patients", true
	}
	return "patients", false
}

// patientConditions assembles WHERE fragments for the patients table
// from extracted entities. Age conditions need a direction cue; gender
// is a direct equality.
func patientConditions(text string, ents nlq.Entities) (conds []string, args []any) {
	if ents.HasAge {
		switch {
		case strings.Contains(text, "over") || strings.Contains(text, "older"):
			conds = append(conds, "age > ?")
			args = append(args, ents.Age)
		case strings.Contains(text, "under") || strings.Contains(text, "younger"):
			conds = append(conds, "age < ?")
			args = append(args, ents.Age)
		}
	}
	if ents.Gender != "" {
		conds = append(conds, "gender = ?")
		args = append(args, ents.Gender)
	}
	return conds, args
}

func (p *Pipeline) buildCountQuery(table, text string, ents nlq.Entities) Result {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT COUNT(*) AS count\nFROM " + table)
	if table == "patients" {
		conds, condArgs := patientConditions(text, ents)
		if len(conds) > 0 {
			b.WriteString("\nWHERE " + strings.Join(conds, " AND "))
			args = condArgs
		}
	}
	if table == "doctors" && strings.Contains(text, "specialty") {
		b.Reset()
		b.WriteString("SELECT specialty, COUNT(*) AS count\nFROM doctors\nGROUP BY specialty\nORDER BY count DESC")
		args = nil
	}
	return Result{RuleID: GenericBuilderID, SQL: b.String(), Args: args, Matched: true}
}

func (p *Pipeline) buildAverageQuery(table, text string, ents nlq.Entities) Result {
	if table == "patients" || strings.Contains(text, "age") {
		var b strings.Builder
		var args []any
		b.WriteString("SELECT ROUND(AVG(age), 1) AS average_age\nFROM patients")
		if ents.Gender != "" {
			b.WriteString("\nWHERE gender = ?")
			args = append(args, ents.Gender)
		}
		return Result{RuleID: GenericBuilderID, SQL: b.String(), Args: args, Matched: true}
	}
	// Average appointment load per doctor is the only other average the
	// dataset supports.
	sql := "SELECT ROUND(AVG(appointment_count), 2) AS average_appointments\n" +
		"FROM (\n" +
		"    SELECT COUNT(a.appointment_id) AS appointment_count\n" +
		"    FROM doctors d\n" +
		"    LEFT JOIN appointments a ON d.doctor_id = a.doctor_id\n" +
		"    GROUP BY d.doctor_id\n" +
		")"
	return Result{RuleID: GenericBuilderID, SQL: sql, Matched: true}
}

func (p *Pipeline) buildListQuery(table, text string, ents nlq.Entities) Result {
	cols, ok := defaultColumns[table]
	if !ok {
		cols = "*"
	}

	var conds []string
	var args []any
	if table == "patients" {
		conds, args = patientConditions(text, ents)
		if len(ents.Names) > 0 {
			conds = append(conds, "name LIKE ?")
			args = append(args, "%"+strings.Join(ents.Names, " ")+"%")
		}
	}

	sql := "SELECT " + cols + "\nFROM " + table
	if len(conds) > 0 {
		sql += "\nWHERE " + strings.Join(conds, " AND ")
	}
	sql += "\nORDER BY name"
	return Result{RuleID: GenericBuilderID, SQL: sql, Args: args, Matched: true}
}

// buildAppointmentQuery joins patients and doctors and filters by any
// extracted name or date entities.
func (p *Pipeline) buildAppointmentQuery(text string, ents nlq.Entities) Result {
	var conds []string
	var args []any

	if len(ents.Names) > 0 {
		name := "%" + strings.Join(ents.Names, " ") + "%"
		if strings.Contains(text, "doctor") || strings.Contains(text, "dr") {
			conds = append(conds, "d.name LIKE ?")
		} else {
			conds = append(conds, "p.name LIKE ?")
		}
		args = append(args, name)
	}
	if len(ents.Dates) > 0 {
		conds = append(conds, "a.date LIKE ?")
		args = append(args, ents.Dates[0]+"%")
	}

	where := ""
	if len(conds) > 0 {
		where = "\nWHERE " + strings.Join(conds, " AND ")
	}

	if classifyIntent(text) == intentCount {
		sql := "SELECT COUNT(*) AS count\n" +
			"FROM appointments a\n" +
			"JOIN patients p ON a.patient_id = p.patient_id\n" +
			"JOIN doctors d ON a.doctor_id = d.doctor_id" + where
		return Result{RuleID: GenericBuilderID, SQL: sql, Args: args, Matched: true}
	}

	sql := "SELECT a.date, p.name AS patient, d.name AS doctor, a.reason\n" +
		"FROM appointments a\n" +
		"JOIN patients p ON a.patient_id = p.patient_id\n" +
		"JOIN doctors d ON a.doctor_id = d.doctor_id" + where +
		"\nORDER BY a.date DESC"
	return Result{RuleID: GenericBuilderID, SQL: sql, Args: args, Matched: true}
}

// buildPrescriptionQuery joins medications and patients and filters by
// any extracted name or date entities.
func (p *Pipeline) buildPrescriptionQuery(text string, ents nlq.Entities) Result {
	var conds []string
	var args []any

	if len(ents.Names) > 0 {
		conds = append(conds, "pt.name LIKE ?")
		args = append(args, "%"+strings.Join(ents.Names, " ")+"%")
	}
	if len(ents.Dates) > 0 {
		conds = append(conds, "pr.date LIKE ?")
		args = append(args, ents.Dates[0]+"%")
	}

	where := ""
	if len(conds) > 0 {
		where = "\nWHERE " + strings.Join(conds, " AND ")
	}

	if classifyIntent(text) == intentCount {
		sql := "SELECT COUNT(*) AS count\n" +
			"FROM prescriptions pr\n" +
			"JOIN medications m ON pr.med_id = m.med_id\n" +
			"JOIN patients pt ON pr.patient_id = pt.patient_id" + where
		return Result{RuleID: GenericBuilderID, SQL: sql, Args: args, Matched: true}
	}

	sql := "SELECT m.name AS medication, pr.dosage, pr.date, pt.name AS patient\n" +
		"FROM prescriptions pr\n" +
		"JOIN medications m ON pr.med_id = m.med_id\n" +
		"JOIN patients pt ON pr.patient_id = pt.patient_id" + where +
		"\nORDER BY pr.date DESC"
	return Result{RuleID: GenericBuilderID, SQL: sql, Args: args, Matched: true}
}
