package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestIPRateLimiterAllow verifies per-IP buckets enforce the burst and
// isolate clients from each other
func TestIPRateLimiterAllow(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             3,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d rejected within burst", i)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request beyond burst allowed")
	}

	// A different IP has its own bucket
	if !rl.Allow("10.0.0.2") {
		t.Error("fresh IP rejected")
	}

	stats := rl.GetStats()
	if stats["allowed"] != 4 || stats["rejected"] != 1 {
		t.Errorf("stats = %v, want 4 allowed / 1 rejected", stats)
	}
}

// TestRateLimitMiddleware verifies rejected requests get 429 with a
// Retry-After hint
func TestRateLimitMiddleware(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	mkReq := func() *http.Request {
		req := httptest.NewRequest("GET", "/api/state", nil)
		req.RemoteAddr = "192.168.1.5:54321"
		return req
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, mkReq())
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, mkReq())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Error("missing Retry-After header on rejection")
	}
}

// TestGetClientIP verifies proxy header precedence
func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		realIP     string
		want       string
	}{
		{"remote addr only", "203.0.113.7:1234", "", "", "203.0.113.7"},
		{"x-forwarded-for wins", "10.0.0.1:80", "198.51.100.9, 10.0.0.1", "", "198.51.100.9"},
		{"x-real-ip fallback", "10.0.0.1:80", "", "198.51.100.10", "198.51.100.10"},
		{"remote addr without port", "203.0.113.8", "", "", "203.0.113.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestWebSocketRateLimiter verifies the per-IP connection cap with release
func TestWebSocketRateLimiter(t *testing.T) {
	wrl := NewWebSocketRateLimiter(2)

	if !wrl.Allow("10.1.1.1") || !wrl.Allow("10.1.1.1") {
		t.Fatal("connections within cap rejected")
	}
	if wrl.Allow("10.1.1.1") {
		t.Error("connection beyond cap allowed")
	}

	wrl.Release("10.1.1.1")
	if !wrl.Allow("10.1.1.1") {
		t.Error("connection rejected after a release freed a slot")
	}

	if !wrl.Allow("10.1.1.2") {
		t.Error("other IP affected by the first IP's cap")
	}
}

// TestIsAllowedOrigin verifies the origin allowlist with localhost
// wildcarding
func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:3000", true},
		{"http://localhost:9999", true},
		{"http://127.0.0.1:5173", true},
		{"https://evil.example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsAllowedOrigin(tt.origin); got != tt.want {
			t.Errorf("IsAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}
