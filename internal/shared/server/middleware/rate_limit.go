package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"buildyourcv/internal/shared/server/respond"
)

const (
	defaultRateLimitGroup = "DEFAULT"

	// DefaultMaxBuckets caps the number of client buckets held at once.
	DefaultMaxBuckets = 10000
	bucketSweepEvery  = time.Minute
)

// RateLimitRule is a token bucket refilled at Rate tokens per second.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter holds one token bucket per client and group. Buckets idle long
// enough to refill completely are forgotten, and at most MaxBuckets are kept.
type RateLimiter struct {
	MaxBuckets int

	mu        sync.Mutex
	buckets   map[string]*rateBucket
	now       func() time.Time
	lastSweep time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
	// full is how long the bucket takes to refill from empty.
	full time.Duration
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		MaxBuckets: DefaultMaxBuckets,
		buckets:    make(map[string]*rateBucket),
		now:        now,
		lastSweep:  now(),
	}
}

// Len returns the number of buckets currently tracked.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops buckets that have refilled completely.
// Callers hold l.mu.
func (l *RateLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.last) >= b.full {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// evictOldest removes the least recently used bucket. Callers hold l.mu.
func (l *RateLimiter) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, b := range l.buckets {
		if oldestKey == "" || b.last.Before(oldest) {
			oldestKey, oldest = key, b.last
		}
	}
	delete(l.buckets, oldestKey)
}

// RateLimit throttles requests per client IP and route group. Groups
// without a rule are not limited.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}
		key := strings.TrimSpace(c.ClientIP()) + "|" + group
		allowed, retryAfter := cfg.Limiter.Allow(key, rule)
		if allowed {
			c.Next()
			return
		}
		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		retryAfterSeconds := int(math.Ceil(float64(retryAfterMs) / 1000.0))
		if retryAfterSeconds <= 0 {
			retryAfterSeconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited",
			"Too many requests. Please wait a moment and try again.",
			gin.H{"retryAfterMs": retryAfterMs})
	}
}

func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}
	if rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= bucketSweepEvery {
		l.sweep(now)
	}
	bucket, ok := l.buckets[key]
	if !ok {
		if l.MaxBuckets > 0 && len(l.buckets) >= l.MaxBuckets {
			l.sweep(now)
			for len(l.buckets) >= l.MaxBuckets {
				l.evictOldest()
			}
		}
		bucket = &rateBucket{
			tokens: float64(rule.Burst),
			last:   now,
			full:   time.Duration(float64(rule.Burst) / rule.Rate * float64(time.Second)),
		}
		l.buckets[key] = bucket
	}
	elapsed := now.Sub(bucket.last).Seconds()
	if elapsed > 0 {
		bucket.tokens = math.Min(float64(rule.Burst), bucket.tokens+elapsed*rule.Rate)
		bucket.last = now
	}
	if bucket.tokens >= 1 {
		bucket.tokens -= 1
		return true, 0
	}
	needed := 1 - bucket.tokens
	waitSec := needed / rule.Rate
	if waitSec < 0 {
		waitSec = 0
	}
	retryAfter := time.Duration(math.Ceil(waitSec*1000.0)) * time.Millisecond
	return false, retryAfter
}
