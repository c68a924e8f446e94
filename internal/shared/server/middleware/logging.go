package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the access log.
const (
	SemesterKey    = "semester"
	ResultCountKey = "resultCount"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if semester, ok := c.Get(SemesterKey); ok {
			fields["semester"] = semester
		}
		if count, ok := c.Get(ResultCountKey); ok {
			fields["result_count"] = count
		}
		telemetry.Info("request.complete", fields)
	}
}
