package rules

// SQL templates for the builtin rules. Keyword casing and indentation are
// kept consistent so rendered statements stay human-readable. Derived
// tables stand in for CTEs: the safety validator only admits statements
// that begin with SELECT, so WITH-led forms are out.
//
// Every template renders extracted values as ? placeholders; the Args
// slice carries the bound values in placeholder order.

const dateLayout = "2006-01-02"

func renderDoctorsMostAppointments(Params) (Query, error) {
	return Query{SQL: `SELECT
    name,
    specialty,
    appointment_count,
    unique_patients,
    ROUND(appointment_count * 1.0 / NULLIF(active_days, 0), 2) AS avg_appointments_per_day,
    last_appointment
FROM (
    SELECT
        d.name AS name,
        d.specialty AS specialty,
        COUNT(DISTINCT a.appointment_id) AS appointment_count,
        COUNT(DISTINCT a.patient_id) AS unique_patients,
        COUNT(DISTINCT DATE(a.date)) AS active_days,
        MAX(a.date) AS last_appointment
    FROM doctors d
    LEFT JOIN appointments a ON d.doctor_id = a.doctor_id
    GROUP BY d.doctor_id, d.name, d.specialty
    HAVING COUNT(a.appointment_id) > 0
)
ORDER BY appointment_count DESC
LIMIT 5`}, nil
}

func renderDoctorsMinAppointments(p Params) (Query, error) {
	return Query{SQL: `SELECT
    d.name,
    d.specialty,
    COUNT(a.appointment_id) AS appointment_count
FROM doctors d
LEFT JOIN appointments a ON d.doctor_id = a.doctor_id
GROUP BY d.doctor_id, d.name, d.specialty
HAVING COUNT(a.appointment_id) > ?
ORDER BY appointment_count DESC`,
		Args: []any{p.Int},
	}, nil
}

func renderAllPatients(Params) (Query, error) {
	return Query{SQL: `SELECT
    name,
    age,
    gender,
    blood_type,
    (SELECT COUNT(*) FROM appointments a WHERE a.patient_id = p.patient_id) AS appointment_count,
    (SELECT MAX(date) FROM appointments a WHERE a.patient_id = p.patient_id) AS last_visit
FROM patients p
ORDER BY name`}, nil
}

func renderPatientsByAge(p Params) (Query, error) {
	return Query{SQL: `SELECT
    name,
    age,
    gender,
    blood_type,
    (SELECT COUNT(*) FROM appointments a WHERE a.patient_id = p.patient_id) AS appointment_count
FROM patients p
WHERE age > ?
ORDER BY age DESC, name`,
		Args: []any{p.Int},
	}, nil
}

func renderPatientsByBlood(p Params) (Query, error) {
	return Query{SQL: `SELECT
    name,
    age,
    gender,
    blood_type,
    (SELECT COUNT(*) FROM appointments a WHERE a.patient_id = p.patient_id) AS appointment_count,
    (SELECT MAX(date) FROM appointments a WHERE a.patient_id = p.patient_id) AS last_visit
FROM patients p
WHERE blood_type = ?
ORDER BY name`,
		Args: []any{p.Code},
	}, nil
}

func renderPatientsWithBlood(p Params) (Query, error) {
	return Query{SQL: `SELECT
    name,
    age,
    gender,
    blood_type,
    (SELECT COUNT(*) FROM appointments a WHERE a.patient_id = p.patient_id) AS appointment_count
FROM patients p
WHERE blood_type = ?
ORDER BY appointment_count DESC, name`,
		Args: []any{p.Code},
	}, nil
}

func renderCountPatients(Params) (Query, error) {
	return Query{SQL: `SELECT
    COUNT(*) AS total_patients,
    SUM(CASE WHEN gender = 'M' THEN 1 ELSE 0 END) AS male_patients,
    SUM(CASE WHEN gender = 'F' THEN 1 ELSE 0 END) AS female_patients
FROM patients`}, nil
}

func renderAllDoctors(Params) (Query, error) {
	return Query{SQL: `SELECT
    d.name,
    d.specialty,
    COUNT(DISTINCT a.appointment_id) AS appointment_count,
    COUNT(DISTINCT a.patient_id) AS unique_patients
FROM doctors d
LEFT JOIN appointments a ON d.doctor_id = a.doctor_id
GROUP BY d.doctor_id, d.name, d.specialty
ORDER BY d.specialty, d.name`}, nil
}

func renderDoctorsByAppointments(Params) (Query, error) {
	return Query{SQL: `SELECT
    name,
    specialty,
    appointment_count,
    unique_patients,
    ROUND(appointment_count * 1.0 / NULLIF(active_days, 0), 2) AS avg_daily_appointments
FROM (
    SELECT
        d.name AS name,
        d.specialty AS specialty,
        COUNT(DISTINCT a.appointment_id) AS appointment_count,
        COUNT(DISTINCT a.patient_id) AS unique_patients,
        COUNT(DISTINCT DATE(a.date)) AS active_days
    FROM doctors d
    LEFT JOIN appointments a ON d.doctor_id = a.doctor_id
    GROUP BY d.doctor_id, d.name, d.specialty
)
ORDER BY appointment_count DESC
LIMIT 5`}, nil
}

func renderCountDoctors(Params) (Query, error) {
	return Query{SQL: `SELECT
    COUNT(*) AS total_doctors,
    COUNT(DISTINCT specialty) AS unique_specialties,
    SUM((SELECT COUNT(*) FROM appointments a WHERE a.doctor_id = d.doctor_id)) AS total_appointments,
    ROUND(AVG((SELECT COUNT(*) FROM appointments a WHERE a.doctor_id = d.doctor_id)), 2) AS avg_appointments_per_doctor
FROM doctors d`}, nil
}

// renderSpecialtyBreakdown serves both the anchored census question and
// the flexible "per specialty" count rule.
func renderSpecialtyBreakdown(Params) (Query, error) {
	return Query{SQL: `SELECT
    specialty,
    doctor_count,
    total_appointments,
    total_patients,
    ROUND(total_appointments * 1.0 / NULLIF(doctor_count, 0), 2) AS avg_appointments_per_doctor
FROM (
    SELECT
        d.specialty AS specialty,
        COUNT(DISTINCT d.doctor_id) AS doctor_count,
        COUNT(DISTINCT a.appointment_id) AS total_appointments,
        COUNT(DISTINCT a.patient_id) AS total_patients
    FROM doctors d
    LEFT JOIN appointments a ON d.doctor_id = a.doctor_id
    GROUP BY d.specialty
)
ORDER BY doctor_count DESC`}, nil
}

func renderRecentAppointments(p Params) (Query, error) {
	since := p.Since.Format(dateLayout)
	return Query{SQL: `SELECT
    a.date,
    p.name AS patient,
    p.age,
    p.blood_type,
    d.name AS doctor,
    d.specialty,
    a.reason,
    (SELECT COUNT(*) FROM appointments w WHERE DATE(w.date) >= ?) AS total_appointments,
    (SELECT COUNT(DISTINCT w.doctor_id) FROM appointments w WHERE DATE(w.date) >= ?) AS doctors_involved,
    (SELECT COUNT(DISTINCT w.patient_id) FROM appointments w WHERE DATE(w.date) >= ?) AS patients_involved
FROM appointments a
JOIN patients p ON a.patient_id = p.patient_id
JOIN doctors d ON a.doctor_id = d.doctor_id
WHERE DATE(a.date) >= ?
ORDER BY a.date DESC`,
		Args: []any{since, since, since, since},
	}, nil
}

func renderCountRecentAppointments(p Params) (Query, error) {
	return Query{SQL: `SELECT
    COUNT(*) AS total_appointments,
    COUNT(DISTINCT patient_id) AS unique_patients,
    COUNT(DISTINCT doctor_id) AS doctors_involved,
    COUNT(DISTINCT DATE(date)) AS unique_days,
    MIN(date) AS period_start,
    MAX(date) AS period_end
FROM appointments
WHERE DATE(date) >= ?`,
		Args: []any{p.Since.Format(dateLayout)},
	}, nil
}

func renderDoctorAppointments(p Params) (Query, error) {
	return Query{SQL: `SELECT
    a.date,
    p.name AS patient,
    p.age,
    p.blood_type,
    a.reason,
    (SELECT COUNT(*)
     FROM appointments a2
     WHERE a2.patient_id = p.patient_id
       AND a2.doctor_id = d.doctor_id
       AND a2.date < a.date) AS previous_visits
FROM appointments a
JOIN doctors d ON a.doctor_id = d.doctor_id
JOIN patients p ON a.patient_id = p.patient_id
WHERE d.name LIKE ?
ORDER BY a.date DESC`,
		Args: []any{"%" + p.Name + "%"},
	}, nil
}

func renderPatientAppointments(p Params) (Query, error) {
	return Query{SQL: `SELECT
    a.date,
    d.name AS doctor,
    d.specialty,
    a.reason,
    (SELECT COUNT(*)
     FROM appointments a2
     WHERE a2.patient_id = p.patient_id
       AND a2.doctor_id = d.doctor_id
       AND a2.date < a.date) AS previous_visits_with_doctor,
    (SELECT COUNT(DISTINCT a3.doctor_id)
     FROM appointments a3
     WHERE a3.patient_id = p.patient_id) AS total_doctors_seen
FROM appointments a
JOIN doctors d ON a.doctor_id = d.doctor_id
JOIN patients p ON a.patient_id = p.patient_id
WHERE p.name LIKE ?
ORDER BY a.date DESC`,
		Args: []any{"%" + p.Name + "%"},
	}, nil
}

func renderPatientMedications(p Params) (Query, error) {
	return Query{SQL: `SELECT
    m.name AS medication,
    pr.dosage,
    pr.date,
    pt.name AS patient
FROM prescriptions pr
JOIN medications m ON pr.med_id = m.med_id
JOIN patients pt ON pr.patient_id = pt.patient_id
WHERE pt.name LIKE ?
ORDER BY pr.date DESC`,
		Args: []any{"%" + p.Name + "%"},
	}, nil
}

func renderBloodTypeListing(p Params) (Query, error) {
	return Query{SQL: `SELECT
    name,
    age,
    blood_type
FROM patients
WHERE blood_type = ?
ORDER BY name`,
		Args: []any{p.Code},
	}, nil
}

func renderCountBySpecialty(Params) (Query, error) {
	return Query{SQL: `SELECT
    specialty,
    COUNT(*) AS doctor_count
FROM doctors
GROUP BY specialty
ORDER BY doctor_count DESC`}, nil
}

func renderPatientCensus(Params) (Query, error) {
	return Query{SQL: `SELECT
    COUNT(*) AS total_patients,
    SUM(CASE WHEN gender = 'M' THEN 1 ELSE 0 END) AS male_patients,
    SUM(CASE WHEN gender = 'F' THEN 1 ELSE 0 END) AS female_patients,
    COUNT(DISTINCT blood_type) AS blood_type_count,
    ROUND(AVG(age), 1) AS avg_age
FROM patients`}, nil
}

func renderDoctorCensus(Params) (Query, error) {
	return Query{SQL: `SELECT
    COUNT(*) AS total_doctors,
    COUNT(DISTINCT specialty) AS unique_specialties,
    ROUND(AVG((SELECT COUNT(*) FROM appointments a WHERE a.doctor_id = d.doctor_id)), 2) AS avg_appointments_per_doctor
FROM doctors d`}, nil
}

func renderAppointmentCensus(Params) (Query, error) {
	return Query{SQL: `SELECT
    COUNT(*) AS total_appointments,
    COUNT(DISTINCT patient_id) AS unique_patients,
    COUNT(DISTINCT doctor_id) AS unique_doctors,
    COUNT(DISTINCT DATE(date)) AS unique_days
FROM appointments`}, nil
}
