package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-notes-api/internal/model"
)

const patientSummaryPromptTemplate = `Generate a concise medical summary for the following patient:

Patient Information:
- Name: %s
- Age: %d years old
- Date of Birth: %s

Medical Notes:
%s

Please provide a structured summary that includes:
1. Key diagnoses and conditions mentioned
2. Current medications or treatments
3. Recent observations and vital signs
4. Any concerning symptoms or changes
5. Recommended follow-up actions

Keep the summary professional, concise, and focused on clinically relevant information.
Format the response in clear paragraphs without using markdown headers.`

// CalculateAge returns whole years between a YYYY-MM-DD date of birth and
// now. A malformed value degrades to 0 rather than failing the summary.
func CalculateAge(dateOfBirth string) int {
	birth, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		log.Warn().Str("date_of_birth", dateOfBirth).Msg("invalid date of birth value")
		return 0
	}
	return time.Now().Year() - birth.Year()
}

// BuildPatientSummaryPrompt renders the fixed summary template. Notes must
// already be in ascending clinical-timestamp order.
func BuildPatientSummaryPrompt(name, dateOfBirth string, notes []*model.Note) string {
	rendered := make([]string, 0, len(notes))
	for i, note := range notes {
		rendered = append(rendered, fmt.Sprintf("Note %d (%s):\n%s",
			i+1, note.Timestamp.Format(time.RFC3339), note.Content))
	}

	return fmt.Sprintf(patientSummaryPromptTemplate,
		name,
		CalculateAge(dateOfBirth),
		dateOfBirth,
		strings.Join(rendered, "\n\n"),
	)
}
