package summary

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/jwalitptl/patient-notes-api/pkg/errors"

	"github.com/jwalitptl/patient-notes-api/internal/model"
	"github.com/jwalitptl/patient-notes-api/internal/service/note"
	"github.com/jwalitptl/patient-notes-api/internal/service/patient"
)

// latestNotesLimit bounds how many recent notes feed a summary.
const latestNotesLimit = 5

// Generator produces the narrative text for a patient's notes.
type Generator interface {
	GeneratePatientSummary(ctx context.Context, name, dateOfBirth string, notes []*model.Note) (string, error)
}

type SummaryService interface {
	GenerateSummary(ctx context.Context, patientID int64) (*model.PatientSummary, error)
}

type Service struct {
	patients  patient.PatientService
	notes     note.NoteService
	generator Generator
}

func NewService(patients patient.PatientService, notes note.NoteService, generator Generator) *Service {
	return &Service{patients: patients, notes: notes, generator: generator}
}

// GenerateSummary composes a patient record and its recent notes into a
// summary envelope. The patient read and the notes read are two independent
// queries; a delete landing between them is an accepted inconsistency window.
func (s *Service) GenerateSummary(ctx context.Context, patientID int64) (*model.PatientSummary, error) {
	p, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if p == nil {
		return nil, apperrors.NotFound(fmt.Sprintf("patient with id %d", patientID))
	}

	latest, err := s.notes.LatestNotes(ctx, patientID, latestNotesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}

	// The store hands back newest first; the prompt reads chronologically.
	chronological := make([]*model.Note, len(latest))
	for i, n := range latest {
		chronological[len(latest)-1-i] = n
	}

	text, err := s.generator.GeneratePatientSummary(ctx, p.Name, p.DateOfBirth, chronological)
	if err != nil {
		return nil, err
	}

	return &model.PatientSummary{
		Heading: model.SummaryHeading{
			PatientID:   p.ID,
			Name:        p.Name,
			DateOfBirth: p.DateOfBirth,
			TotalNotes:  len(latest),
		},
		Summary:     text,
		GeneratedAt: time.Now(),
	}, nil
}
