package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/patient-notes-api/pkg/errors"

	"github.com/jwalitptl/patient-notes-api/internal/model"
)

type fakeProvider struct {
	calls   int
	prompts []string
	result  string
	err     error
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.result, f.err
}

func TestGeneratePatientSummaryNoNotesSkipsProvider(t *testing.T) {
	provider := &fakeProvider{result: "should not be used"}
	svc := NewService(provider)

	summary, err := svc.GeneratePatientSummary(context.Background(), "Jane Doe", "1995-06-15", nil)

	require.NoError(t, err)
	assert.Equal(t, NoNotesPlaceholder, summary)
	assert.Equal(t, 0, provider.calls)
}

func TestGeneratePatientSummaryInvokesProviderOnce(t *testing.T) {
	provider := &fakeProvider{result: "generated narrative"}
	svc := NewService(provider)

	notes := []*model.Note{
		{Content: "note one", Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Content: "note two", Timestamp: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	summary, err := svc.GeneratePatientSummary(context.Background(), "Jane Doe", "1995-06-15", notes)

	require.NoError(t, err)
	assert.Equal(t, "generated narrative", summary)
	require.Equal(t, 1, provider.calls)
	assert.Contains(t, provider.prompts[0], "note one")
	assert.Contains(t, provider.prompts[0], "note two")
}

func TestGeneratePatientSummaryWrapsProviderFailure(t *testing.T) {
	cause := errors.New("upstream unavailable")
	provider := &fakeProvider{err: cause}
	svc := NewService(provider)

	notes := []*model.Note{{Content: "note", Timestamp: time.Now()}}

	_, err := svc.GeneratePatientSummary(context.Background(), "Jane Doe", "1995-06-15", notes)

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrGeneration, appErr.Code)
	assert.ErrorIs(t, err, cause)
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(configFor("nope", "key"))
	assert.Error(t, err)
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	_, err := NewProvider(configFor("openai", ""))
	assert.EqualError(t, err, "OPENAI_API_KEY not configured")

	provider, err := NewProvider(configFor("openai", "sk-test"))
	require.NoError(t, err)
	assert.NotNil(t, provider)
}
