package note

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/patient-notes-api/pkg/errors"

	"github.com/jwalitptl/patient-notes-api/internal/model"
	"github.com/jwalitptl/patient-notes-api/internal/repository"
)

type NoteService interface {
	CreateNote(ctx context.Context, patientID int64, content string, timestamp time.Time) (*model.Note, error)
	ListNotes(ctx context.Context, patientID int64, filters *model.NoteFilters, page model.Pagination) ([]*model.Note, int, error)
	GetNote(ctx context.Context, id int64) (*model.Note, error)
	LatestNotes(ctx context.Context, patientID int64, limit int) ([]*model.Note, error)
	DeleteNote(ctx context.Context, id int64) (bool, error)
	DeleteAllNotes(ctx context.Context, patientID int64) (int64, error)
}

type Service struct {
	repo        repository.NoteRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.NoteRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{repo: repo, patientRepo: patientRepo}
}

// CreateNote inserts a note after verifying the owning patient exists. The
// existence check is a precondition, not a constraint violation translated
// after the fact.
func (s *Service) CreateNote(ctx context.Context, patientID int64, content string, timestamp time.Time) (*model.Note, error) {
	patient, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify patient: %w", err)
	}
	if patient == nil {
		return nil, apperrors.Referential(fmt.Sprintf("patient with id %d not found", patientID))
	}

	note := &model.Note{
		PatientID: patientID,
		Content:   content,
		Timestamp: timestamp,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	log.Info().Int64("patient_id", patientID).Int64("note_id", note.ID).Msg("note created")
	return note, nil
}

func (s *Service) ListNotes(ctx context.Context, patientID int64, filters *model.NoteFilters, page model.Pagination) ([]*model.Note, int, error) {
	notes, total, err := s.repo.List(ctx, patientID, filters, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, total, nil
}

func (s *Service) GetNote(ctx context.Context, id int64) (*model.Note, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

// LatestNotes returns up to limit notes, newest clinical timestamp first.
func (s *Service) LatestNotes(ctx context.Context, patientID int64, limit int) ([]*model.Note, error) {
	notes, err := s.repo.Latest(ctx, patientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest notes: %w", err)
	}
	return notes, nil
}

func (s *Service) DeleteNote(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}
	return deleted, nil
}

func (s *Service) DeleteAllNotes(ctx context.Context, patientID int64) (int64, error) {
	count, err := s.repo.DeleteAllForPatient(ctx, patientID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete patient notes: %w", err)
	}
	log.Info().Int64("patient_id", patientID).Int64("deleted", count).Msg("patient notes deleted")
	return count, nil
}
