package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/patient-notes-api/pkg/errors"
)

// Response is the uniform envelope for non-paginated endpoints.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondAppError writes an application error using its mapped HTTP status.
// Only the message crosses the wire; a wrapped cause stays server-side.
func RespondAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}
