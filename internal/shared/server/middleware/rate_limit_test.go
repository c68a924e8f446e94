package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(rule RateLimitRule, limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(rule, limiter))
	r.POST("/recommend", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"results": []string{}})
	})
	return r
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	r := newLimitedRouter(RateLimitRule{Rate: 1, Burst: 1}, limiter)

	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, httptest.NewRequest(http.MethodPost, "/recommend", nil))
	if resp1.Code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp1.Code)
	}

	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, httptest.NewRequest(http.MethodPost, "/recommend", nil))
	if resp2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp2.Code)
	}
	if resp2.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", resp2.Header().Get("Retry-After"))
	}

	var payload map[string]any
	if err := json.NewDecoder(resp2.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "too many requests" || payload["code"] != "rate_limited" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, ok := payload["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in response")
	}
}

func TestRateLimitRefillsOverTime(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 2, Burst: 2}

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow("1.2.3.4", rule); !ok {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	ok, wait := limiter.Allow("1.2.3.4", rule)
	if ok || wait != 500*time.Millisecond {
		t.Fatalf("expected denial with 500ms wait, got ok=%v wait=%s", ok, wait)
	}
	if ok, _ := limiter.Allow("5.6.7.8", rule); !ok {
		t.Fatalf("other clients have their own bucket")
	}

	now = now.Add(500 * time.Millisecond)
	if ok, _ := limiter.Allow("1.2.3.4", rule); !ok {
		t.Fatalf("bucket should refill after 500ms")
	}
}

func TestRateLimitDisabledRule(t *testing.T) {
	r := newLimitedRouter(RateLimitRule{}, nil)
	for i := 0; i < 50; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/recommend", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.Code)
		}
	}
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeers(t *testing.T) {
	limiter := NewRateLimiter(nil)
	r := newLimitedRouter(RateLimitRule{Rate: 1, Burst: 1}, limiter)
	if err := r.SetTrustedProxies(nil); err != nil {
		t.Fatalf("SetTrustedProxies: %v", err)
	}

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/recommend", nil)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i+1))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code == http.StatusOK {
			allowed++
		}
	}
	if allowed != 1 {
		t.Fatalf("expected 1 allowed request, got %d", allowed)
	}
	if n := limiter.Len(); n != 1 {
		t.Fatalf("expected a single bucket for the peer, got %d", n)
	}
}

func TestRateLimitSweepsIdleBuckets(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	// 5 tokens at 0.1/s refill in 50s.
	rule := RateLimitRule{Rate: 0.1, Burst: 5}

	limiter.Allow("10.0.0.1", rule)
	now = now.Add(30 * time.Second)
	limiter.Allow("10.0.0.2", rule)
	if n := limiter.Len(); n != 2 {
		t.Fatalf("expected 2 buckets, got %d", n)
	}

	now = now.Add(31 * time.Second)
	limiter.Allow("10.0.0.3", rule)
	if n := limiter.Len(); n != 2 {
		t.Fatalf("expected the refilled bucket to be dropped, got %d buckets", n)
	}
	limiter.mu.Lock()
	_, stale := limiter.buckets["10.0.0.1"]
	_, recent := limiter.buckets["10.0.0.2"]
	limiter.mu.Unlock()
	if stale || !recent {
		t.Fatalf("wrong bucket evicted: stale=%v recent=%v", stale, recent)
	}
}
