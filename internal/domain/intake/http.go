package intake

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zenvor/internal/i18n"
	"zenvor/internal/pkg/response"
	"zenvor/internal/pkg/validator"
)

// Error codes shared by the public and admin endpoints.
const (
	CodeInvalidJSON         = "INVALID_JSON"
	CodeInvalidQuery        = "INVALID_QUERY"
	CodeValidation          = "VALIDATION_ERROR"
	CodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
	CodeNotFound            = "NOT_FOUND"
	CodeInternal            = "INTERNAL_ERROR"
)

// RespondError maps a service error onto the response envelope. Unknown
// errors are attached to the gin context for the error logger and never
// leaked to the caller.
func RespondError(c *gin.Context, err error) {
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, CodeValidation, "Validation failed", verr.Fields)
	case errors.Is(err, ErrDuplicateSubmission):
		msgs := i18n.For(i18n.Negotiate(c.GetHeader("Accept-Language")))
		response.Error(c, http.StatusTooManyRequests, CodeDuplicateSubmission, msgs.AlreadySubmitted)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, CodeNotFound, "Record not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, CodeInternal, "Something went wrong")
	}
}
