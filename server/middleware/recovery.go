package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/juniorwebdev83/auto-qa/errors"
	"github.com/juniorwebdev83/auto-qa/logger"
)

// Recovery converts a handler panic into the standard JSON 500 response.
// The panic value and stack are logged with the request's correlation id;
// neither reaches the caller.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			appErr := apperrors.Internal(fmt.Errorf("panic: %v", r))
			logger.Error("panic recovered", map[string]interface{}{
				"panic":               fmt.Sprintf("%v", r),
				"stack":               string(debug.Stack()),
				"method":              c.Request.Method,
				"path":                c.Request.URL.Path,
				logger.FieldRequestID: RequestIDFrom(c),
			})
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		}()
		c.Next()
	}
}
