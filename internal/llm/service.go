package llm

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/patient-notes-api/pkg/errors"

	"github.com/jwalitptl/patient-notes-api/internal/model"
)

// NoNotesPlaceholder is returned when a patient has no notes to summarize;
// the provider is not invoked in that case.
const NoNotesPlaceholder = "No medical notes available for this patient."

// Service builds prompts and delegates generation to the configured provider.
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// GeneratePatientSummary produces a narrative for the given notes, which
// must be in ascending clinical-timestamp order. Any provider failure is
// re-raised as a single opaque generation-failed condition wrapping the
// original cause.
func (s *Service) GeneratePatientSummary(ctx context.Context, name, dateOfBirth string, notes []*model.Note) (string, error) {
	if len(notes) == 0 {
		return NoNotesPlaceholder, nil
	}

	prompt := BuildPatientSummaryPrompt(name, dateOfBirth, notes)
	log.Debug().Str("patient", name).Msg("generating patient summary")

	summary, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return "", apperrors.Generation(err)
	}
	log.Debug().Msg("summary generated successfully")
	return summary, nil
}
