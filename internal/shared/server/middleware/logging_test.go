package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"buildyourcv/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	defer telemetry.SetOutput(os.Stdout)

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.GET("/test", func(c *gin.Context) {
		c.Set(LogFileFormat, "pdf")
		c.Set(LogPhase, "ready")
		c.Set(LogRepairs, 2)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", "req-42")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "duration_ms", "status", "file_format", "session_phase", "repairs"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["request_id"] != "req-42" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["msg"] != "request.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["file_format"] != "pdf" {
		t.Fatalf("unexpected file_format: %v", payload["file_format"])
	}
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/test", nil))

	id := resp.Header().Get("X-Request-Id")
	if len(id) != 36 {
		t.Fatalf("expected uuid request id, got %q", id)
	}
	if resp.Body.String() != id {
		t.Fatalf("context id %q does not match header %q", resp.Body.String(), id)
	}
}
