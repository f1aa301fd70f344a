package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("burst then refusal", func(t *testing.T) {
		l := newLimiter(RateLimitConfig{Burst: 3, RefillPerMin: 60})

		for i := 0; i < 3; i++ {
			ok, _, _ := l.allow("1.2.3.4", now)
			if !ok {
				t.Fatalf("request %d refused within burst", i+1)
			}
		}
		ok, _, retry := l.allow("1.2.3.4", now)
		if ok {
			t.Error("request allowed past burst")
		}
		if retry < 1 {
			t.Errorf("retry-after = %d, want >= 1", retry)
		}
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		l := newLimiter(RateLimitConfig{Burst: 1, RefillPerMin: 60})

		if ok, _, _ := l.allow("k", now); !ok {
			t.Fatal("first request refused")
		}
		if ok, _, _ := l.allow("k", now); ok {
			t.Fatal("second immediate request allowed")
		}
		// One token per second at 60/min.
		if ok, _, _ := l.allow("k", now.Add(1100*time.Millisecond)); !ok {
			t.Error("request refused after refill window")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := newLimiter(RateLimitConfig{Burst: 1, RefillPerMin: 1})

		if ok, _, _ := l.allow("a", now); !ok {
			t.Fatal("key a refused")
		}
		if ok, _, _ := l.allow("b", now); !ok {
			t.Error("key b throttled by key a's bucket")
		}
	})

	t.Run("idle buckets are swept", func(t *testing.T) {
		l := newLimiter(RateLimitConfig{Burst: 1, RefillPerMin: 1, IdleTTL: time.Minute})

		l.allow("stale", now)
		l.allow("fresh", now.Add(2*time.Minute))
		if _, ok := l.buckets["stale"]; ok {
			t.Error("stale bucket survived the sweep")
		}
		if _, ok := l.buckets["fresh"]; !ok {
			t.Error("fresh bucket was swept")
		}
	})
}

func TestRateLimit_Middleware(t *testing.T) {
	handler := RateLimit(RateLimitConfig{Burst: 2, RefillPerMin: 1})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/public/wishlists/tok", nil)
		req.RemoteAddr = "10.0.0.1:4242"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)

		if rec.Header().Get("X-RateLimit-Limit") != "2" {
			t.Errorf("X-RateLimit-Limit = %q, want 2", rec.Header().Get("X-RateLimit-Limit"))
		}
		if rec.Code == http.StatusTooManyRequests && rec.Header().Get("Retry-After") == "" {
			t.Error("429 without Retry-After header")
		}
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i, s := range statuses {
		if s != want[i] {
			t.Errorf("request %d status = %d, want %d", i+1, s, want[i])
		}
	}
}
