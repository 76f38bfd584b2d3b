package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildyourcv/internal/shared/telemetry"
)

// ErrorBody is the error object every failed request returns.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error logs the failure and aborts the chain with the error envelope. Handlers
// must return after calling it.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"route":      c.FullPath(),
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
		"retryable":  retryable(status),
	}
	if status >= http.StatusInternalServerError {
		fields["message"] = message
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// retryable marks failures the client may resolve by trying again or by
// pasting its text instead.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusUnprocessableEntity:
		return true
	}
	return false
}
