// Package fixture generates and loads a deterministic sample dataset.
// The same seed always produces the same rows, so seeded databases are
// reproducible across machines and test runs.
package fixture

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/roach88/medq/internal/schema"
	"github.com/roach88/medq/internal/store"
)

// DefaultSeed is the seed used when the caller doesn't pick one.
const DefaultSeed = 42

const dateLayout = "2006-01-02"

// Patient mirrors a row of the patients table.
type Patient struct {
	PatientID int    `db:"patient_id"`
	Name      string `db:"name"`
	Age       int    `db:"age"`
	Gender    string `db:"gender"`
	BloodType string `db:"blood_type"`
}

// Doctor mirrors a row of the doctors table.
type Doctor struct {
	DoctorID  int    `db:"doctor_id"`
	Name      string `db:"name"`
	Specialty string `db:"specialty"`
}

// Appointment mirrors a row of the appointments table.
type Appointment struct {
	AppointmentID int    `db:"appointment_id"`
	PatientID     int    `db:"patient_id"`
	DoctorID      int    `db:"doctor_id"`
	Date          string `db:"date"`
	Reason        string `db:"reason"`
}

// Medication mirrors a row of the medications table.
type Medication struct {
	MedID        int    `db:"med_id"`
	Name         string `db:"name"`
	Manufacturer string `db:"manufacturer"`
}

// Prescription mirrors a row of the prescriptions table.
type Prescription struct {
	PrescID   int    `db:"presc_id"`
	PatientID int    `db:"patient_id"`
	MedID     int    `db:"med_id"`
	Dosage    string `db:"dosage"`
	Date      string `db:"date"`
}

// Dataset is a complete, referentially consistent sample dataset.
type Dataset struct {
	Patients      []Patient
	Doctors       []Doctor
	Appointments  []Appointment
	Medications   []Medication
	Prescriptions []Prescription
}

var (
	firstNames = []string{
		"Olivia", "Liam", "Emma", "Noah", "Amelia", "Oliver", "Sophia",
		"Elijah", "Ava", "Lucas", "Mia", "Mateo", "Isabella", "Ethan",
		"Aisha", "Omar", "Grace", "Hiro", "Elena", "Marcus", "Priya",
		"Daniel", "Fatima", "Jonas", "Clara", "Ravi", "Nadia", "Felix",
		"Ingrid", "Tomas", "Yuki", "Andre", "Leila", "Viktor", "Rosa",
		"Kwame", "Hannah", "Diego", "Sana", "Pavel",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
		"Miller", "Davis", "Martinez", "Lopez", "Wilson", "Anderson",
		"Taylor", "Thomas", "Moore", "Jackson", "Lee", "Perez", "White",
		"Harris", "Clark", "Lewis", "Walker", "Hall", "Young", "King",
		"Wright", "Scott", "Nguyen", "Kim", "Haddad", "Okafor", "Sato",
		"Novak", "Silva", "Khan", "Berg", "Rossi", "Costa", "Weber",
	}
	specialties = []string{
		"Cardiology", "Dermatology", "Neurology", "Oncology",
		"Pediatrics", "Orthopedics", "Psychiatry", "Radiology",
		"General Practice", "Endocrinology",
	}
	bloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	reasons    = []string{
		"Annual checkup", "Follow-up visit", "Chest pain", "Headache",
		"Back pain", "Skin rash", "Blood pressure review", "Flu symptoms",
		"Joint pain", "Lab results review", "Vaccination", "Dizziness",
	}
	medicationNames = []string{
		"Lisinopril", "Metformin", "Atorvastatin", "Amlodipine",
		"Omeprazole", "Levothyroxine", "Albuterol", "Gabapentin",
		"Sertraline", "Losartan", "Ibuprofen", "Amoxicillin",
		"Prednisone", "Insulin Glargine", "Warfarin", "Tramadol",
		"Citalopram", "Furosemide", "Pantoprazole", "Montelukast",
	}
	manufacturers = []string{
		"Pfizer", "Novartis", "Roche", "Sanofi", "Merck",
		"AstraZeneca", "Bayer", "Teva",
	}
	dosages = []string{
		"5mg daily", "10mg daily", "20mg daily", "25mg twice daily",
		"50mg daily", "100mg twice daily", "250mg three times daily",
		"500mg twice daily",
	}
)

// Generate builds a dataset with the given row counts. Appointment and
// prescription dates fall within the three years before anchor. The
// output depends only on counts, seed, and anchor.
func Generate(counts schema.Counts, seed int64, anchor time.Time) Dataset {
	rng := rand.New(rand.NewSource(seed))

	ds := Dataset{
		Patients:      make([]Patient, 0, counts.Patients),
		Doctors:       make([]Doctor, 0, counts.Doctors),
		Appointments:  make([]Appointment, 0, counts.Appointments),
		Medications:   make([]Medication, 0, counts.Medications),
		Prescriptions: make([]Prescription, 0, counts.Prescriptions),
	}

	for i := 0; i < counts.Patients; i++ {
		gender := "F"
		if rng.Intn(2) == 1 {
			gender = "M"
		}
		ds.Patients = append(ds.Patients, Patient{
			PatientID: i + 1,
			Name:      fullName(rng),
			Age:       rng.Intn(90) + 1,
			Gender:    gender,
			BloodType: bloodTypes[rng.Intn(len(bloodTypes))],
		})
	}

	for i := 0; i < counts.Doctors; i++ {
		ds.Doctors = append(ds.Doctors, Doctor{
			DoctorID:  i + 1,
			Name:      "Dr. " + fullName(rng),
			Specialty: specialties[i%len(specialties)],
		})
	}

	for i := 0; i < counts.Appointments; i++ {
		ds.Appointments = append(ds.Appointments, Appointment{
			AppointmentID: i + 1,
			PatientID:     rng.Intn(max(counts.Patients, 1)) + 1,
			DoctorID:      rng.Intn(max(counts.Doctors, 1)) + 1,
			Date:          randomDate(rng, anchor),
			Reason:        reasons[rng.Intn(len(reasons))],
		})
	}

	for i := 0; i < counts.Medications; i++ {
		ds.Medications = append(ds.Medications, Medication{
			MedID:        i + 1,
			Name:         medicationNames[i%len(medicationNames)],
			Manufacturer: manufacturers[rng.Intn(len(manufacturers))],
		})
	}

	for i := 0; i < counts.Prescriptions; i++ {
		ds.Prescriptions = append(ds.Prescriptions, Prescription{
			PrescID:   i + 1,
			PatientID: rng.Intn(max(counts.Patients, 1)) + 1,
			MedID:     rng.Intn(max(counts.Medications, 1)) + 1,
			Dosage:    dosages[rng.Intn(len(dosages))],
			Date:      randomDate(rng, anchor),
		})
	}

	return ds
}

func fullName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

// randomDate picks a day in the three years before anchor.
func randomDate(rng *rand.Rand, anchor time.Time) string {
	daysBack := rng.Intn(3 * 365)
	return anchor.AddDate(0, 0, -daysBack).Format(dateLayout)
}

// Seed writes a dataset into the store inside one transaction. Existing
// rows are cleared first, so seeding is repeatable.
func Seed(ctx context.Context, s *store.Store, ds Dataset) error {
	return s.Tx(ctx, func(tx *sqlx.Tx) error {
		// Children before parents for the deletes.
		for _, table := range []string{"prescriptions", "appointments", "medications", "doctors", "patients"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for _, p := range ds.Patients {
			if _, err := tx.NamedExecContext(ctx,
				`INSERT INTO patients (patient_id, name, age, gender, blood_type)
				 VALUES (:patient_id, :name, :age, :gender, :blood_type)`, p); err != nil {
				return fmt.Errorf("insert patient %d: %w", p.PatientID, err)
			}
		}
		for _, d := range ds.Doctors {
			if _, err := tx.NamedExecContext(ctx,
				`INSERT INTO doctors (doctor_id, name, specialty)
				 VALUES (:doctor_id, :name, :specialty)`, d); err != nil {
				return fmt.Errorf("insert doctor %d: %w", d.DoctorID, err)
			}
		}
		for _, a := range ds.Appointments {
			if _, err := tx.NamedExecContext(ctx,
				`INSERT INTO appointments (appointment_id, patient_id, doctor_id, date, reason)
				 VALUES (:appointment_id, :patient_id, :doctor_id, :date, :reason)`, a); err != nil {
				return fmt.Errorf("insert appointment %d: %w", a.AppointmentID, err)
			}
		}
		for _, m := range ds.Medications {
			if _, err := tx.NamedExecContext(ctx,
				`INSERT INTO medications (med_id, name, manufacturer)
				 VALUES (:med_id, :name, :manufacturer)`, m); err != nil {
				return fmt.Errorf("insert medication %d: %w", m.MedID, err)
			}
		}
		for _, pr := range ds.Prescriptions {
			if _, err := tx.NamedExecContext(ctx,
				`INSERT INTO prescriptions (presc_id, patient_id, med_id, dosage, date)
				 VALUES (:presc_id, :patient_id, :med_id, :dosage, :date)`, pr); err != nil {
				return fmt.Errorf("insert prescription %d: %w", pr.PrescID, err)
			}
		}
		return nil
	})
}
