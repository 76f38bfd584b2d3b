package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"buildyourcv/internal/shared/server/respond"
	"buildyourcv/internal/shared/telemetry"
)

// Recovery turns a panic in an import handler into an internal_error envelope.
// A handler that already started its response is only aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"route":      c.FullPath(),
				"panic":      rec,
				"stack":      string(debug.Stack()),
			}
			if v, ok := c.Get(LogFileFormat); ok {
				fields["file_format"] = v
			}
			if v, ok := c.Get(LogPhase); ok {
				fields["session_phase"] = v
			}
			telemetry.Error("handler.panic", fields)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
