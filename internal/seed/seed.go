package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-notes-api/internal/model"
	"github.com/jwalitptl/patient-notes-api/internal/repository"
)

type samplePatient struct {
	name string
	dob  string
	// note content with an offset in days from the base time
	notes []sampleNote
}

type sampleNote struct {
	content    string
	daysOffset int
}

var samples = []samplePatient{
	{
		name: "John Doe", dob: "1985-03-15",
		notes: []sampleNote{
			{"Initial Consultation: Patient presents with elevated blood pressure (145/95). Reports occasional headaches and family history of hypertension. No chest pain or shortness of breath. Started on Lisinopril 10mg daily.", 0},
			{"Follow-up (Week 2): Blood pressure improved to 135/88. Patient tolerating medication well. Continue current dose.", 14},
			{"Follow-up (Month 1): Blood pressure now 128/82. Excellent response to treatment. Patient reports no adverse effects. Recommend continue medication and follow up in 3 months.", 30},
		},
	},
	{
		name: "Jane Smith", dob: "1990-07-22",
		notes: []sampleNote{
			{"New Patient Visit: 32-year-old female with newly diagnosed Type 2 Diabetes. HbA1c 8.2%. BMI 31. Started on Metformin 500mg BID. Discussed lifestyle modifications and dietary changes.", 1},
			{"Follow-up (Week 3): Blood glucose levels improving. Fasting glucose down from 165 to 140. Patient reports better energy levels. Increased Metformin to 1000mg BID.", 21},
			{"Lab Review: HbA1c down to 7.1%. Continue current regimen. Patient motivated and compliant with diet and exercise program.", 28},
		},
	},
	{
		name: "Robert Johnson", dob: "1978-11-30",
		notes: []sampleNote{
			{"Annual Physical: 47-year-old male in good health. Vital signs normal. No significant complaints. Labs ordered: CBC, CMP, lipid panel. Recommended colonoscopy screening.", 2},
			{"Lab Results Review: All labs within normal limits. Cholesterol slightly elevated (220). Discussed dietary modifications. No medication needed at this time.", 9},
		},
	},
	{
		name: "Maria Garcia", dob: "1995-05-18",
		notes: []sampleNote{
			{"Initial Prenatal Visit: 28-year-old G1P0 at 8 weeks gestation. Prenatal labs ordered. Started on prenatal vitamins. Next visit scheduled for 12 weeks with ultrasound.", 5},
			{"12-Week Checkup: Ultrasound shows single viable intrauterine pregnancy. EDD confirmed. Nuchal translucency normal. Patient feeling well, minimal nausea.", 33},
		},
	},
	{
		name: "Michael Brown", dob: "1982-09-08",
		notes: []sampleNote{
			{"Post-Op Day 7: S/P appendectomy. Wound healing well, no signs of infection. Pain controlled with ibuprofen. Cleared to return to light activities.", 7},
			{"2-Week Follow-up: Excellent recovery. No complications. Wound completely healed. Cleared for normal activities.", 14},
		},
	},
}

// Seed populates the database with sample patients and notes. Existing data
// is left alone unless force is set, in which case it is cleared first.
func Seed(ctx context.Context, db *sqlx.DB, patients repository.PatientRepository, notes repository.NoteRepository, force bool) error {
	var existing int
	if err := db.GetContext(ctx, &existing, `SELECT COUNT(*) FROM patients`); err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}

	if existing > 0 && !force {
		log.Info().Msg("database already contains data, skipping seed")
		return nil
	}
	if existing > 0 {
		log.Warn().Msg("force flag set, deleting existing data")
		if err := Clear(ctx, db); err != nil {
			return err
		}
	}

	log.Info().Msg("seeding database with sample data")
	baseTime := time.Now().AddDate(0, 0, -30)

	totalNotes := 0
	for _, sample := range samples {
		p := &model.Patient{Name: sample.name, DateOfBirth: sample.dob}
		if err := patients.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed patient %q: %w", sample.name, err)
		}

		for _, n := range sample.notes {
			note := &model.Note{
				PatientID: p.ID,
				Content:   n.content,
				Timestamp: baseTime.AddDate(0, 0, n.daysOffset),
			}
			if err := notes.Create(ctx, note); err != nil {
				return fmt.Errorf("failed to seed note for %q: %w", sample.name, err)
			}
			totalNotes++
		}
	}

	log.Info().Int("patients", len(samples)).Int("notes", totalNotes).Msg("database seeding completed")
	return nil
}

// Clear removes all patients and, via cascade, their notes.
func Clear(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM patients`); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}
	log.Info().Msg("database cleared")
	return nil
}
