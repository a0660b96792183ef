package repository

import (
	"context"

	"github.com/jwalitptl/patient-notes-api/internal/model"
)

// PatientRepository owns patient identity records. Reads return (nil, nil)
// when the record is absent; absence is never surfaced as an error.
type PatientRepository interface {
	List(ctx context.Context, filters *model.PatientFilters, page model.Pagination) ([]*model.Patient, int, error)
	Get(ctx context.Context, id int64) (*model.Patient, error)
	Create(ctx context.Context, patient *model.Patient) error
	Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// NoteRepository owns patient notes.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	List(ctx context.Context, patientID int64, filters *model.NoteFilters, page model.Pagination) ([]*model.Note, int, error)
	Get(ctx context.Context, id int64) (*model.Note, error)
	Latest(ctx context.Context, patientID int64, limit int) ([]*model.Note, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteAllForPatient(ctx context.Context, patientID int64) (int64, error)
}
