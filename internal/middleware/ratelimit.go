package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/wellnessflow/api/internal/model"
)

// RateLimiter keeps one token bucket per client key
type RateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*keyedLimiter
	limit    rate.Limit
	rate     int           // Requests per window
	window   time.Duration // Time window
	burst    int           // Bucket capacity
	cleanup  time.Duration // Cleanup interval for idle keys
	now      func() time.Time
	stopOnce sync.Once
	stopChan chan struct{}
}

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate    int           // Requests per window (default 100)
	Window  time.Duration // Time window (default 1 minute)
	Burst   int           // Extra burst on top of Rate (default 20)
	Cleanup time.Duration // Cleanup interval (default 5 minutes)
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate <= 0 {
		cfg.Rate = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst < 0 {
		cfg.Burst = 0
	} else if cfg.Burst == 0 {
		cfg.Burst = 20
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		limiters: make(map[string]*keyedLimiter),
		limit:    rate.Limit(float64(cfg.Rate) / cfg.Window.Seconds()),
		rate:     cfg.Rate,
		window:   cfg.Window,
		burst:    cfg.Rate + cfg.Burst,
		cleanup:  cfg.Cleanup,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the rate limiter cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopChan:
			return
		}
	}
}

// cleanupExpired drops keys idle for two windows. A bucket idle that long
// has refilled completely, so recreating it later is equivalent.
func (rl *RateLimiter) cleanupExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window * 2)
	for key, kl := range rl.limiters {
		if kl.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

func (rl *RateLimiter) getOrCreate(key string, now time.Time) *rate.Limiter {
	rl.mu.RLock()
	kl, ok := rl.limiters[key]
	rl.mu.RUnlock()
	if ok {
		rl.mu.Lock()
		kl.lastSeen = now
		rl.mu.Unlock()
		return kl.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	if kl, ok := rl.limiters[key]; ok {
		kl.lastSeen = now
		return kl.limiter
	}

	kl = &keyedLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst), lastSeen: now}
	rl.limiters[key] = kl
	return kl.limiter
}

// Allow takes one token for key. When the bucket is empty it reports how
// long the caller should wait before retrying.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, retryAfter time.Duration) {
	now := rl.now()
	limiter := rl.getOrCreate(key, now)

	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0, rl.window
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, 0, delay
	}

	remaining = int(limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, 0
}

// RateLimit returns a middleware that applies rate limiting
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, retryAfter := limiter.Allow(rateLimitKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				seconds := int((retryAfter + time.Second - 1) / time.Second)
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(limiter.now().Add(retryAfter).Unix(), 10))
				w.Header().Set("Retry-After", strconv.Itoa(seconds))

				problem := model.NewRateLimitError(seconds)
				problem.Instance = r.URL.Path
				problem.WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitKey uses the authenticated user when known, otherwise the
// client IP without its port.
func rateLimitKey(r *http.Request) string {
	if id, ok := GetUserID(r.Context()); ok {
		return "user:" + strconv.FormatInt(id, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
