package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/product-api/internal/auth"
	"github.com/rogerio-castellano/product-api/internal/config"
	"github.com/rogerio-castellano/product-api/internal/http/ban"
	"github.com/rogerio-castellano/product-api/internal/models"
	"go.uber.org/zap"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Minute)
	valid, _ := tokens.GenerateToken(models.User{ID: 42, Username: "admin"})

	var seenUserID int
	h := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		expectCode int
	}{
		{name: "missing header", header: "", expectCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, expectCode: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", expectCode: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, expectCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUserID = 0
			req := httptest.NewRequest(http.MethodGet, "/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, w.Code)
			}
			if tt.expectCode == http.StatusOK && seenUserID != 42 {
				t.Errorf("expected user id 42 in context, got %d", seenUserID)
			}
			if tt.expectCode == http.StatusUnauthorized {
				var resp map[string]string
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("error decoding response: %v", err)
				}
				if resp["message"] != "Unauthenticated." {
					t.Errorf("unexpected message %q", resp["message"])
				}
			}
		})
	}
}

func TestLoggingSetsRequestID(t *testing.T) {
	var fromCtx string
	h := Logging(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if id != fromCtx {
		t.Errorf("expected context request id %q, got %q", id, fromCtx)
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("expected wrapped status to pass through, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected incoming request id to be kept, got %q", got)
	}
}

func newTestLimiter(burst, strikes int) *RateLimiter {
	banner := ban.NewBanner(ban.NewMemoryStore(), config.BanConfig{
		Strikes:  strikes,
		Window:   time.Minute,
		Duration: time.Hour,
	}, zap.NewNop())
	return NewRateLimiter(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: burst}, banner, zap.NewNop())
}

func doFrom(h http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterThrottlesAndBans(t *testing.T) {
	rl := newTestLimiter(2, 2)
	h := rl.Middleware(okHandler)

	for i := 0; i < 2; i++ {
		if code := doFrom(h, "192.0.2.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200 within burst, got %d", i+1, code)
		}
	}

	if code := doFrom(h, "192.0.2.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 past the burst, got %d", code)
	}
	if code := doFrom(h, "192.0.2.1:1234"); code != http.StatusForbidden {
		t.Fatalf("expected 403 once strikes reach the limit, got %d", code)
	}

	rl.Reset()
	if code := doFrom(h, "192.0.2.1:5678"); code != http.StatusForbidden {
		t.Errorf("expected ban to outlive limiter reset, got %d", code)
	}

	if code := doFrom(h, "198.51.100.7:1234"); code != http.StatusOK {
		t.Errorf("expected other clients to be unaffected, got %d", code)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newTestLimiter(1, 0)
	h := rl.Middleware(okHandler)

	doFrom(h, "192.0.2.1:1")
	if code := doFrom(h, "192.0.2.1:1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}

	rl.mu.Lock()
	rl.visitors["192.0.2.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()
	rl.Cleanup(visitorIdleTTL)

	if code := doFrom(h, "192.0.2.1:1"); code != http.StatusOK {
		t.Errorf("expected a fresh bucket after cleanup, got %d", code)
	}
}
