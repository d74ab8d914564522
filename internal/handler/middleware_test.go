package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders_SetsAllHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, req)

	headers := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Permissions-Policy":      "camera=(), microphone=(), geolocation=()",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
		"Cache-Control":           "no-store",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s: want %q, got %q", name, want, got)
		}
	}
}

func TestSecurityHeaders_PassesThrough(t *testing.T) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	SecurityHeaders(inner).ServeHTTP(rec, req)

	if !called {
		t.Error("inner handler was not called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", rec.Code)
	}
}

func newTestRateLimiter(t *testing.T, limit int) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(limit)
	t.Cleanup(rl.Close)
	return rl
}

func hit(h http.Handler, remoteAddr, xff string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/analytics", nil)
	req.RemoteAddr = remoteAddr
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	handler := newTestRateLimiter(t, 10).Middleware(okHandler())
	for i := 0; i < 10; i++ {
		if rec := hit(handler, "192.168.1.1:12345", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	handler := newTestRateLimiter(t, 5).Middleware(okHandler())

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = hit(handler, "192.168.1.1:12345", "")
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on 6th request, got %d", last.Code)
	}
	if ra := last.Header().Get("Retry-After"); ra == "" {
		t.Error("expected Retry-After header on 429 response")
	}
	var body map[string]string
	if err := json.NewDecoder(last.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "rate_limited" {
		t.Errorf("expected error=rate_limited, got %q", body["error"])
	}
}

func TestRateLimiter_DifferentIPsAreIndependent(t *testing.T) {
	handler := newTestRateLimiter(t, 2).Middleware(okHandler())
	hit(handler, "10.0.0.1:1234", "")
	hit(handler, "10.0.0.1:1234", "")

	if rec := hit(handler, "10.0.0.2:1234", ""); rec.Code != http.StatusOK {
		t.Errorf("different IP should not be rate limited, got %d", rec.Code)
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := newTestRateLimiter(t, 1)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	handler := rl.Middleware(okHandler())

	if rec := hit(handler, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	if rec := hit(handler, "10.0.0.1:1234", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}

	now = now.Add(61 * time.Second)
	if rec := hit(handler, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
		t.Errorf("after the window: expected 200, got %d", rec.Code)
	}
}

func TestRateLimiter_PruneForgetsIdleClients(t *testing.T) {
	rl := newTestRateLimiter(t, 5)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	hit(rl.Middleware(okHandler()), "10.0.0.1:1234", "")

	now = now.Add(2 * time.Minute)
	rl.prune()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.clients) != 0 {
		t.Errorf("expected idle client to be forgotten, have %d", len(rl.clients))
	}
}

func TestRateLimiter_DisabledWhenZero(t *testing.T) {
	handler := newTestRateLimiter(t, 0).Middleware(okHandler())
	for i := 0; i < 20; i++ {
		if rec := hit(handler, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimiter_XForwardedFor_SpoofedLeftmostIgnored(t *testing.T) {
	handler := newTestRateLimiter(t, 1).Middleware(okHandler())

	if rec := hit(handler, "10.0.0.99:1234", "203.0.113.50"); rec.Code != http.StatusOK {
		t.Fatalf("first request should succeed, got %d", rec.Code)
	}
	// The rightmost entry is the one written by the trusted proxy.
	if rec := hit(handler, "10.0.0.99:1234", "9.9.9.9, 203.0.113.50"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("spoofed leftmost IP should not bypass rate limit, got %d", rec.Code)
	}
}
