package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Limiter is considered inactive if not used for this duration
	limiterTTL = 15 * time.Minute
	// Time between cleanup sweeps
	cleanupInterval = 5 * time.Minute
)

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginRateLimiter throttles credential attempts per client IP so the stub
// backend behaves like a production login endpoint under brute force.
type LoginRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	stopCh   chan struct{}
}

// NewLoginRateLimiter creates a per-IP limiter with background cleanup.
func NewLoginRateLimiter(attemptsPerSecond float64, burst int) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(attemptsPerSecond),
		burst:    burst,
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Middleware rejects over-limit requests with 429.
func (rl *LoginRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.allow(ip) {
			http.Error(w, `{"error":"Too many attempts, slow down"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Stop terminates the cleanup goroutine.
func (rl *LoginRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *LoginRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	return entry.limiter.Allow()
}

func (rl *LoginRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *LoginRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, entry := range rl.limiters {
		if now.Sub(entry.lastAccess) > limiterTTL {
			delete(rl.limiters, key)
		}
	}
}
