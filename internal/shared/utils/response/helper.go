package response

import (
	"net/http"

	"gatherly/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError translates a service error into the standard envelope. Typed
// errors carry their own status and client-safe message; anything untyped is
// a 500 with a generic body.
func RespondError(c *gin.Context, err error) {
	code := apperrors.HTTPStatus(err)
	message := apperrors.ClientMessage(err)
	var details interface{}
	if code == http.StatusInternalServerError {
		message = "internal server error"
	} else {
		details = map[string]string{"kind": apperrors.KindOf(err).String()}
	}
	RespondJSON(c, "error", code, message, nil, details)
}
