package httperr

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Conflicts any            `json:"conflicts,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor maps a business code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeValidation, CodeBookingConflict, CodeConcurrentModification, CodeStateTransitionInvalid:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err as a structured response. Anything that is not a
// BusinessError is logged and hidden behind a generic INTERNAL answer.
func FromError(c *gin.Context, err error) {
	be, ok := AsBusiness(err)
	if !ok || be.Code == CodeInternal {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		Internal(c, CodeInternal, "Unexpected error, please try again later.")
		return
	}

	c.JSON(StatusFor(be.Code), HTTPError{
		Code:      be.Code,
		Message:   be.Message,
		Conflicts: be.Conflicts,
		Details:   be.Details,
	})
}
