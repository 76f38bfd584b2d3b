package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitGroupsAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	groupFor := func(c *gin.Context) string {
		if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/template" {
			return "READ"
		}
		return "DEFAULT"
	}

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor:     groupFor,
		Limiter:      limiter,
		Rules: map[string]RateLimitRule{
			"DEFAULT": {Rate: 1, Burst: 2},
			"READ":    {Rate: 5, Burst: 10},
		},
	}))

	r.GET("/api/v1/template", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/api/v1/parse-cv", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/template", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("read request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-cv", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("default request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-cv", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("default request 3 expected 429, got %d", resp.Code)
	}
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			return "DEFAULT"
		},
		Limiter: limiter,
		Rules: map[string]RateLimitRule{
			"DEFAULT": {Rate: 1, Burst: 1},
		},
	}))
	r.GET("/api/v1/limited", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/limited", nil)
	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, req1)
	if resp1.Code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/limited", nil)
	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp2.Code)
	}
	if resp2.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	var payload map[string]any
	if err := json.NewDecoder(resp2.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	body, _ := payload["error"].(map[string]any)
	if body["code"] != "rate_limited" {
		t.Fatalf("expected code=rate_limited, got %v", payload)
	}
	details, _ := body["details"].(map[string]any)
	if _, ok := details["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in details")
	}
}

func TestRateLimitKeyedByClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		Limiter: limiter,
		Rules:   map[string]RateLimitRule{"DEFAULT": {Rate: 1, Burst: 1}},
	}))
	r.POST("/api/v1/parse-cv", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-cv", nil)
		req.RemoteAddr = addr
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send("10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("first client expected 200, got %d", code)
	}
	if code := send("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("first client second request expected 429, got %d", code)
	}
	if code := send("10.0.0.2:1234"); code != http.StatusOK {
		t.Fatalf("second client expected 200, got %d", code)
	}

	now = now.Add(time.Second)
	if code := send("10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("refilled bucket expected 200, got %d", code)
	}
}

func TestRateLimitDisabledRule(t *testing.T) {
	limiter := NewRateLimiter(nil)
	for i := 0; i < 5; i++ {
		if ok, _ := limiter.Allow("k", RateLimitRule{Rate: 0, Burst: 0}); !ok {
			t.Fatalf("disabled rule should always allow")
		}
	}
}

func TestRateLimiterForgetsRefilledBuckets(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 10}

	for i := 0; i < 50; i++ {
		limiter.Allow("10.0.0."+strconv.Itoa(i)+"|STRUCTURING", rule)
	}
	if got := limiter.Len(); got != 50 {
		t.Fatalf("expected 50 buckets, got %d", got)
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := limiter.Allow("10.0.1.1|STRUCTURING", rule); !ok {
		t.Fatalf("new client should be allowed")
	}
	if got := limiter.Len(); got != 1 {
		t.Fatalf("expected idle buckets to be swept, %d left", got)
	}
}

func TestRateLimiterCapsBuckets(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	limiter.MaxBuckets = 3
	rule := RateLimitRule{Rate: 1, Burst: 1}

	for _, key := range []string{"a", "b", "c"} {
		limiter.Allow(key, rule)
		now = now.Add(10 * time.Millisecond)
	}
	limiter.Allow("d", rule)
	if got := limiter.Len(); got != 3 {
		t.Fatalf("expected cap of 3 buckets, got %d", got)
	}

	// "a" was evicted, so it starts with a full bucket again.
	if ok, _ := limiter.Allow("a", rule); !ok {
		t.Fatalf("evicted client should start fresh")
	}
	// "d" is still tracked and empty.
	if ok, _ := limiter.Allow("d", rule); ok {
		t.Fatalf("tracked client should still be limited")
	}
}
