package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rogerio-castellano/product-api/internal/config"
	"github.com/rogerio-castellano/product-api/internal/http/ban"
	"github.com/rogerio-castellano/product-api/internal/http/respond"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const visitorIdleTTL = 5 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP. Clients that keep
// hitting the limit collect strikes and end up banned.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	banner   *ban.Banner
	log      *zap.Logger
}

func NewRateLimiter(cfg config.RateLimitConfig, banner *ban.Banner, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
		banner:   banner,
		log:      log,
	}
}

func (rl *RateLimiter) visitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup evicts visitors idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > maxIdle {
			delete(rl.visitors, ip)
		}
	}
}

// StartCleanupLoop runs Cleanup every interval until ctx is done.
func (rl *RateLimiter) StartCleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup(visitorIdleTTL)
		}
	}
}

// Reset forgets every visitor.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.visitors = make(map[string]*visitor)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ctx := r.Context()

		banned, err := rl.banner.IsBanned(ctx, ip)
		if err != nil {
			rl.log.Error("failed to check ban", zap.String("ip", ip), zap.Error(err))
		}
		if banned {
			respond.Message(w, http.StatusForbidden, "Forbidden.")
			return
		}

		if rl.visitor(ip).Allow() {
			next.ServeHTTP(w, r)
			return
		}

		banned, err = rl.banner.Strike(ctx, ip, r.URL.Path)
		if err != nil {
			rl.log.Error("failed to record strike", zap.String("ip", ip), zap.Error(err))
		}
		if banned {
			respond.Message(w, http.StatusForbidden, "Forbidden.")
			return
		}

		w.Header().Set("Retry-After", "1")
		respond.Message(w, http.StatusTooManyRequests, "Too Many Attempts.")
	})
}
