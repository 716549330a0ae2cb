package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finmanager/internal/errors"
	"finmanager/internal/logger"
)

const (
	// DefaultRateLimit is the number of requests admitted per window.
	DefaultRateLimit = 100
	// DefaultRateWindow is the length of a fixed window.
	DefaultRateWindow = 15 * time.Minute
)

// RateLimiter counts requests per client key in fixed windows.
type RateLimiter struct {
	windows map[string]*window
	mu      sync.Mutex
	limit   int
	period  time.Duration
	now     func() time.Time
	stopCh  chan struct{}
	stopped sync.Once
}

type window struct {
	start time.Time
	count int
}

// NewRateLimiter creates a RateLimiter admitting limit requests per period
// for each key. Call Stop to release the cleanup goroutine.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if period <= 0 {
		period = DefaultRateWindow
	}
	rl := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Allow records a request for key. It returns whether the request is admitted,
// how many remain in the current window, and when the window resets.
func (r *RateLimiter) Allow(key string) (allowed bool, remaining int, reset time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.windows[key]
	if !ok || !now.Before(w.start.Add(r.period)) {
		w = &window{start: now}
		r.windows[key] = w
	}
	reset = w.start.Add(r.period)

	if w.count >= r.limit {
		return false, 0, reset
	}
	w.count++
	return true, r.limit - w.count, reset
}

// cleanup periodically removes expired windows to prevent memory leaks
func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			now := r.now()
			for key, w := range r.windows {
				if !now.Before(w.start.Add(r.period)) {
					delete(r.windows, key)
				}
			}
			r.mu.Unlock()
		case <-r.stopCh:
			return
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopped.Do(func() { close(r.stopCh) })
}

// RateLimit returns a Gin middleware that limits requests per client IP.
func RateLimit(rl *RateLimiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, remaining, reset := rl.Allow(ip)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			retryAfter := int(reset.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			log.Warn("Rate limit exceeded",
				"client_ip", ip,
				"path", c.Request.URL.Path,
				"retry_after", retryAfter,
			)
			writeError(c, apperrors.ErrRateLimited, nil)
			return
		}

		c.Next()
	}
}
