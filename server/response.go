package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/juniorwebdev83/auto-qa/errors"
)

// RespondWithError inspects err: if it is an *apperrors.AppError the status
// and structured body are derived from it; otherwise a generic 500 is sent.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// RespondOK sends a 200 response with the given body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
