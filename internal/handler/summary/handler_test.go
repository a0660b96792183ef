package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/patient-notes-api/pkg/errors"

	"github.com/jwalitptl/patient-notes-api/internal/model"
)

type fakeService struct {
	result *model.PatientSummary
	err    error
}

func (f *fakeService) GenerateSummary(ctx context.Context, patientID int64) (*model.PatientSummary, error) {
	return f.result, f.err
}

func setupRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group(""))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetPatientSummary(t *testing.T) {
	svc := &fakeService{result: &model.PatientSummary{
		Heading: model.SummaryHeading{
			PatientID:   7,
			Name:        "Jane Doe",
			DateOfBirth: "1995-06-15",
			TotalNotes:  3,
		},
		Summary:     "Patient has remained stable.",
		GeneratedAt: time.Now(),
	}}
	r := setupRouter(svc)

	w := get(r, "/patients/7/summary")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status string               `json:"status"`
		Data   model.PatientSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, int64(7), resp.Data.Heading.PatientID)
	assert.Equal(t, 3, resp.Data.Heading.TotalNotes)
	assert.Equal(t, "Patient has remained stable.", resp.Data.Summary)
}

func TestGetPatientSummaryNotFound(t *testing.T) {
	r := setupRouter(&fakeService{err: apperrors.NotFound("patient with id 7")})

	w := get(r, "/patients/7/summary")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPatientSummaryGenerationFailure(t *testing.T) {
	r := setupRouter(&fakeService{err: apperrors.Generation(errors.New("provider down"))})

	w := get(r, "/patients/7/summary")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed to generate patient summary", resp.Message)
	// The upstream cause stays out of the response body.
	assert.NotContains(t, w.Body.String(), "provider down")
}

func TestGetPatientSummaryInvalidID(t *testing.T) {
	r := setupRouter(&fakeService{})

	w := get(r, "/patients/abc/summary")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
