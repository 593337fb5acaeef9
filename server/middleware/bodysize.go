package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultMaxBodySize = 25 << 20 // sized for audio uploads

// BodySizeLimit caps the request body at a human-readable size ("25MB",
// "512kb", a bare byte count). Unparseable values fall back to the 25MB
// default. Handlers see reads past the cap fail, which gin surfaces as 413.
func BodySizeLimit(maxSize string) Middleware {
	limit := parseByteSize(maxSize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// GinBodySizeLimit adapts BodySizeLimit for a Gin middleware chain.
func GinBodySizeLimit(maxSize string) gin.HandlerFunc {
	return GinWrap(BodySizeLimit(maxSize))
}

// parseByteSize converts a "25MB" style string to bytes. KB, MB and GB
// suffixes are recognized case-insensitively; a bare integer is bytes.
// Empty, malformed or non-positive values yield the default limit.
func parseByteSize(s string) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier, s = 1<<30, strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier, s = 1<<20, strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier, s = 1<<10, strings.TrimSuffix(s, "KB")
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxBodySize
	}
	return n * multiplier
}
