package rules

import "regexp"

// Rule identifiers. The pipeline references several rules directly (for
// exact-phrase dispatch and fallbacks), so the IDs are exported.
const (
	RuleDoctorsMostAppointments = "doctors_most_appointments"
	RuleDoctorsMinAppointments  = "doctors_min_appointments"
	RuleAllPatients             = "all_patients"
	RulePatientsOlderThan       = "patients_older_than"
	RulePatientsByBlood         = "patients_by_blood"
	RulePatientsOverAge         = "patients_over_age"
	RulePatientsWithBlood       = "patients_with_blood"
	RuleCountPatients           = "count_patients"
	RuleAllDoctors              = "all_doctors"
	RuleDoctorsByAppointments   = "doctors_by_appointments"
	RuleCountDoctorsBySpecialty = "count_doctors_by_specialty"
	RuleCountDoctors            = "count_doctors"
	RuleRecentAppointments      = "recent_appointments"
	RuleCountRecentAppointments = "count_recent_appointments"
	RuleDoctorAppointments      = "doctor_appointments"
	RulePatientAppointments     = "patient_appointments"
	RulePatientMedications      = "patient_medications"
	RuleBloodTypeListing        = "blood_type_listing"
	RuleCountBySpecialty        = "count_by_specialty"
	RulePatientCensus           = "patient_census"
	RuleDoctorCensus            = "doctor_census"
	RuleAppointmentCensus       = "appointment_census"
	RuleSpecialtyCensus         = "specialty_census"
)

// Builtin returns the full rule set in dispatch priority order.
//
// Ordering notes: the specialty-grouped doctor count is registered ahead
// of the plain doctor count because RE2 has no negative lookahead to keep
// "per specialty" questions out of the plain rule; earlier registration
// wins instead. The anchored census rules sit last because the pipeline
// normally reaches them through exact-phrase dispatch.
func Builtin() (*Registry, error) {
	return New(
		Rule{
			ID: RuleDoctorsMostAppointments,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:show|list|get|find|who are).*(?:the\s+)?doctors?.*(?:most|busiest|highest number of|with the most).*appointments?`),
			},
			Extract: ExtractNone,
			Render:  renderDoctorsMostAppointments,
		},
		Rule{
			ID: RuleDoctorsMinAppointments,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:show|list|get|find)?.*doctors?.*(?:with|having|(?:more than|greater than|at least|over)\s+\d+).*appointments?`),
			},
			Extract: ExtractThreshold,
			Render:  renderDoctorsMinAppointments,
		},
		Rule{
			ID:       RuleAllPatients,
			Patterns: []*regexp.Regexp{regexp.MustCompile(`^show all patients?$`)},
			Extract:  ExtractNone,
			Render:   renderAllPatients,
		},
		Rule{
			ID:       RulePatientsOlderThan,
			Patterns: []*regexp.Regexp{regexp.MustCompile(`^show all patients? older than (\d+)$`)},
			Extract:  ExtractInt,
			Render:   renderPatientsByAge,
		},
		Rule{
			ID:       RulePatientsByBlood,
			Patterns: []*regexp.Regexp{regexp.MustCompile(`^(?:list|show) patients? with blood type ((?:ab|a|b|o)[+-])$`)},
			Extract:  ExtractBloodType,
			Render:   renderPatientsByBlood,
		},
		Rule{
			ID: RulePatientsOverAge,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:show|list|get)?\s*(?:all\s+)?(?:patients?|people).*(?:over|older than)\s+(\d+)(?:\s+years)?(?:\s+old)?`),
			},
			Extract: ExtractInt,
			Render:  renderPatientsByAge,
		},
		Rule{
			ID: RulePatientsWithBlood,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:list|show|get|find)?\s*(?:all\s+)?(?:patients?|people).*(?:with|having|of|type|blood type)\s+((?:ab|a|b|o)[+-])`),
			},
			Extract: ExtractBloodType,
			Render:  renderPatientsWithBlood,
		},
		Rule{
			ID: RuleCountPatients,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:how many|count|number of|total).*(?:patients?|people)(?:\s+do\s+we\s+have)?`),
			},
			Extract: ExtractNone,
			Render:  renderCountPatients,
		},
		Rule{
			ID:       RuleAllDoctors,
			Patterns: []*regexp.Regexp{regexp.MustCompile(`^list all doctors? and their specialties$`)},
			Extract:  ExtractNone,
			Render:   renderAllDoctors,
		},
		Rule{
			ID: RuleDoctorsByAppointments,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`^show doctors?(?: who have)? (?:with |having )?(?:the )?(?:most|more than \d+) appointments?$`),
			},
			Extract: ExtractNone,
			Render:  renderDoctorsByAppointments,
		},
		Rule{
			ID: RuleCountDoctorsBySpecialty,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:how many|count|number of)\s+doctors?\s+(?:are\s+there\s+)?(?:in\s+each|by|per|across|for\s+each)\s+specialty`),
			},
			Extract: ExtractNone,
			Render:  renderSpecialtyBreakdown,
		},
		Rule{
			ID: RuleCountDoctors,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:how many|count|number of)\s+doctors?\s*(?:are\s+there|do\s+we\s+have|in\s+total)?`),
			},
			Extract: ExtractNone,
			Render:  renderCountDoctors,
		},
		Rule{
			ID: RuleRecentAppointments,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:show|list|display|get|what are|find)?\s*appointments?\s*(?:in|from|for|during|within|over)?\s*(?:the\s+)?(?:last|past|recent|previous)?\s*(\d+|a|the|this)?\s*(day|days|week|weeks|month|months|year|years)(?:\s+ago)?`),
			},
			Extract: ExtractWindow,
			Render:  renderRecentAppointments,
		},
		Rule{
			ID: RuleCountRecentAppointments,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:how many|count|number of)\s+appointments?\s*(?:in|from|for|during|within|over)\s*(?:the\s+)?(?:last|past|previous)\s*(\d+|a|the|this)?\s*(day|days|week|weeks|month|months|year|years)(?:\s+ago)?`),
			},
			Extract: ExtractWindow,
			Render:  renderCountRecentAppointments,
		},
		Rule{
			ID: RuleDoctorAppointments,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:show|list|get|what are)?.*appointments?.*(?:for |with |by |of )?(?:doctor|dr\.?)\s+([a-z\s]+)`),
			},
			Extract: ExtractName,
			Render:  renderDoctorAppointments,
		},
		Rule{
			ID: RulePatientAppointments,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:show|list|get|what are)?.*appointments?.*(patient|of|for)\s+([a-z\s]+)`),
			},
			Extract: ExtractName,
			Group:   2,
			Render:  renderPatientAppointments,
		},
		Rule{
			ID: RulePatientMedications,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:list|show|get|what)?.*(?:medications?|prescriptions?|prescribed).*(?:to|for)\s+(?:patient\s+)?([a-z\s]+)`),
			},
			Extract: ExtractName,
			Render:  renderPatientMedications,
		},
		Rule{
			ID: RuleBloodTypeListing,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`blood.*(?:type|group)\s+((?:ab|a|b|o)[+-])`),
			},
			Extract: ExtractBloodType,
			Render:  renderBloodTypeListing,
		},
		Rule{
			ID: RuleCountBySpecialty,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:how many|count).*doctors?.*(?:in each|by|per) specialty`),
			},
			Extract: ExtractNone,
			Render:  renderCountBySpecialty,
		},
		Rule{
			ID:       RulePatientCensus,
			Patterns: []*regexp.Regexp{regexp.MustCompile(`^how many patients do we have\?$`)},
			Extract:  ExtractNone,
			Render:   renderPatientCensus,
		},
		Rule{
			ID:       RuleDoctorCensus,
			Patterns: []*regexp.Regexp{regexp.MustCompile(`^how many doctors are there\?$`)},
			Extract:  ExtractNone,
			Render:   renderDoctorCensus,
		},
		Rule{
			ID: RuleAppointmentCensus,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`^(?:how many appointments are there\?|count total number of appointments)$`),
			},
			Extract: ExtractNone,
			Render:  renderAppointmentCensus,
		},
		Rule{
			ID:       RuleSpecialtyCensus,
			Patterns: []*regexp.Regexp{regexp.MustCompile(`^how many doctors are there in each specialty\?$`)},
			Extract:  ExtractNone,
			Render:   renderSpecialtyBreakdown,
		},
	)
}
