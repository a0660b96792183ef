package summary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/patient-notes-api/pkg/errors"

	"github.com/jwalitptl/patient-notes-api/internal/handler"
	"github.com/jwalitptl/patient-notes-api/internal/service/summary"
)

type Handler struct {
	service summary.SummaryService
}

func NewHandler(service summary.SummaryService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/patients/:id/summary", h.GetPatientSummary)
}

func (h *Handler) GetPatientSummary(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid id"))
		return
	}

	result, err := h.service.GenerateSummary(c.Request.Context(), id)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			handler.RespondAppError(c, appErr)
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to generate summary: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}
