package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"buildyourcv/internal/shared/config"
	"buildyourcv/internal/shared/telemetry"
)

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse-cv", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	rg.POST("/normalize", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
}

func TestHealthAndMetrics(t *testing.T) {
	telemetry.SetOutput(io.Discard)
	defer telemetry.SetOutput(os.Stdout)
	r := NewRouter(config.Config{LLMAPIKey: "k"})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] != true || body["llmConfigured"] != true {
		t.Fatalf("unexpected health body: %v", body)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", resp.Code)
	}
}

func TestStructuringRoutesAreRateLimited(t *testing.T) {
	telemetry.SetOutput(io.Discard)
	defer telemetry.SetOutput(os.Stdout)
	r := NewRouter(config.Config{RateLimitRPS: 0.001, RateLimitBurst: 1}, pingRoutes{})

	send := func(path string) int {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, path, nil))
		return resp.Code
	}

	if code := send("/api/v1/parse-cv"); code != http.StatusOK {
		t.Fatalf("first parse-cv expected 200, got %d", code)
	}
	if code := send("/api/v1/parse-cv"); code != http.StatusTooManyRequests {
		t.Fatalf("second parse-cv expected 429, got %d", code)
	}
	for i := 0; i < 3; i++ {
		if code := send("/api/v1/normalize"); code != http.StatusOK {
			t.Fatalf("normalize is not limited, got %d", code)
		}
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
