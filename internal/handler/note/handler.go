package note

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/patient-notes-api/pkg/errors"

	"github.com/jwalitptl/patient-notes-api/internal/config"
	"github.com/jwalitptl/patient-notes-api/internal/handler"
	"github.com/jwalitptl/patient-notes-api/internal/model"
	"github.com/jwalitptl/patient-notes-api/internal/service/note"
	"github.com/jwalitptl/patient-notes-api/pkg/httputil"
)

type Handler struct {
	service note.NoteService
	upload  config.UploadConfig
}

func NewHandler(service note.NoteService, upload config.UploadConfig) *Handler {
	return &Handler{service: service, upload: upload}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notes := r.Group("/patients/:id/notes")
	{
		notes.GET("", h.ListNotes)
		notes.POST("", h.CreateNote)
		notes.POST("/upload", h.CreateNoteFromFile)
		notes.GET("/:noteId", h.GetNote)
		notes.DELETE("/:noteId", h.DeleteNote)
		notes.DELETE("", h.DeleteAllNotes)
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

func (h *Handler) ListNotes(c *gin.Context) {
	patientID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var filters model.NoteFilters
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

	notes, total, err := h.service.ListNotes(c.Request.Context(), patientID, &filters, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	httputil.RespondWithPagination(c, notes, page.Page, page.PageSize, total)
}

func (h *Handler) CreateNote(c *gin.Context) {
	patientID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondAppError(c, apperrors.Validation(err.Error()))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		handler.RespondAppError(c, apperrors.Validation("content cannot be empty or whitespace"))
		return
	}

	h.createNote(c, patientID, req.Content, req.Timestamp)
}

// CreateNoteFromFile accepts a plain-text file plus a form timestamp. The
// content checks (type, size, encoding, emptiness) all happen here at the
// boundary; the store never sees a rejected upload.
func (h *Handler) CreateNoteFromFile(c *gin.Context) {
	patientID, ok := parseID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file is required"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	allowed := false
	for _, t := range h.upload.AllowedTypes {
		if contentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(
			"invalid file type, allowed types: "+strings.Join(h.upload.AllowedTypes, ", ")))
		return
	}

	if fileHeader.Size > h.upload.MaxSize {
		c.JSON(http.StatusRequestEntityTooLarge, handler.NewErrorResponse("file too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	if !utf8.Valid(raw) {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file must be valid UTF-8 text"))
		return
	}

	content := strings.TrimSpace(string(raw))
	if content == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file content cannot be empty"))
		return
	}

	timestamp, err := time.Parse(time.RFC3339, c.PostForm("timestamp"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("timestamp must be a valid RFC3339 value"))
		return
	}

	h.createNote(c, patientID, content, timestamp)
}

func (h *Handler) createNote(c *gin.Context, patientID int64, content string, timestamp time.Time) {
	n, err := h.service.CreateNote(c.Request.Context(), patientID, content, timestamp)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			handler.RespondAppError(c, appErr)
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(n))
}

func (h *Handler) GetNote(c *gin.Context) {
	patientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	noteID, ok := parseID(c, "noteId")
	if !ok {
		return
	}

	n, err := h.service.GetNote(c.Request.Context(), noteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	if n == nil || n.PatientID != patientID {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("note not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(n))
}

func (h *Handler) DeleteNote(c *gin.Context) {
	patientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	noteID, ok := parseID(c, "noteId")
	if !ok {
		return
	}

	n, err := h.service.GetNote(c.Request.Context(), noteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	if n == nil || n.PatientID != patientID {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("note not found"))
		return
	}

	if _, err := h.service.DeleteNote(c.Request.Context(), noteID); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteAllNotes(c *gin.Context) {
	patientID, ok := parseID(c, "id")
	if !ok {
		return
	}

	count, err := h.service.DeleteAllNotes(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": count}))
}
