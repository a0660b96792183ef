package patient

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/patient-notes-api/pkg/errors"

	"github.com/jwalitptl/patient-notes-api/internal/handler"
	"github.com/jwalitptl/patient-notes-api/internal/model"
	"github.com/jwalitptl/patient-notes-api/internal/service/patient"
	"github.com/jwalitptl/patient-notes-api/pkg/httputil"
)

type Handler struct {
	service patient.PatientService
}

func NewHandler(service patient.PatientService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) ListPatients(c *gin.Context) {
	var filters model.PatientFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	var page model.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	page.Normalize()

	patients, total, err := h.service.ListPatients(c.Request.Context(), &filters, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	httputil.RespondWithPagination(c, patients, page.Page, page.PageSize, total)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("patient not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondAppError(c, apperrors.Validation(err.Error()))
		return
	}

	name := model.NormalizeName(req.Name)
	if name == "" {
		handler.RespondAppError(c, apperrors.Validation("name cannot be empty or whitespace"))
		return
	}
	if err := model.ValidateDateOfBirth(req.DateOfBirth); err != nil {
		handler.RespondAppError(c, apperrors.Validation(err.Error()))
		return
	}

	p := &model.Patient{
		Name:        name,
		DateOfBirth: req.DateOfBirth,
	}
	p, err := h.service.CreatePatient(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondAppError(c, apperrors.Validation(err.Error()))
		return
	}

	if req.Name != nil {
		name := model.NormalizeName(*req.Name)
		if name == "" {
			handler.RespondAppError(c, apperrors.Validation("name cannot be empty or whitespace"))
			return
		}
		req.Name = &name
	}
	if req.DateOfBirth != nil {
		if err := model.ValidateDateOfBirth(*req.DateOfBirth); err != nil {
			handler.RespondAppError(c, apperrors.Validation(err.Error()))
			return
		}
	}

	p, err := h.service.UpdatePatient(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("patient not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.service.DeletePatient(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("patient not found"))
		return
	}

	c.Status(http.StatusNoContent)
}
