package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"buildyourcv/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	LogFileFormat = "fileFormat"
	LogPhase      = "sessionPhase"
	LogRepairs    = "repairs"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
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
		if v, ok := c.Get(LogFileFormat); ok {
			fields["file_format"] = v
		}
		if v, ok := c.Get(LogPhase); ok {
			fields["session_phase"] = v
		}
		if v, ok := c.Get(LogRepairs); ok {
			fields["repairs"] = v
		}
		telemetry.Info("request.complete", fields)
	}
}
