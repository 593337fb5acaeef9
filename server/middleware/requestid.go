package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the header the correlation id is read from and echoed on.
const HeaderRequestID = "X-Request-Id"

const requestIDKey = "request_id"

// RequestID tags each request with a correlation id. An id supplied by the
// caller is kept so upstream proxies can trace through; otherwise a fresh
// UUID is issued. The id is echoed on the response and available to later
// handlers via RequestIDFrom.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDFrom returns the correlation id stored by RequestID, or "" when
// the middleware did not run for this request.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
