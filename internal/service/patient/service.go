package patient

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-notes-api/internal/model"
	"github.com/jwalitptl/patient-notes-api/internal/repository"
)

type PatientService interface {
	ListPatients(ctx context.Context, filters *model.PatientFilters, page model.Pagination) ([]*model.Patient, int, error)
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	CreatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters, page model.Pagination) ([]*model.Patient, int, error) {
	patients, total, err := s.repo.List(ctx, filters, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

// CreatePatient persists an already-validated patient. Name normalization
// and date checks happen at the boundary, not here.
func (s *Service) CreatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	log.Info().Int64("patient_id", patient.ID).Msg("patient created")
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete patient: %w", err)
	}
	if deleted {
		log.Info().Int64("patient_id", id).Msg("patient deleted")
	}
	return deleted, nil
}
