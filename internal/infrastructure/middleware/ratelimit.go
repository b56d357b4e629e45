package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/leondli/centriq/internal/infrastructure/config"
	"github.com/leondli/centriq/pkg/response"
)

// window is the request count of one client in the current window
type window struct {
	start time.Time
	count int
}

// RateLimiter is a fixed-window limiter keyed by client IP.
// Idle clients expire with their window, and the least recently seen
// client is evicted once MaxClients is reached. Settings are read on
// every request; a changed window or client cap starts every client over.
type RateLimiter struct {
	mu       sync.Mutex
	settings func() config.RateLimitConfig
	clients  *expirable.LRU[string, *window]
	period   time.Duration
	size     int
	now      func() time.Time
}

// NewRateLimiter creates a limiter reading its limits from settings
func NewRateLimiter(settings func() config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		settings: settings,
		now:      time.Now,
	}
}

// Allow counts one request for key against limit per period and reports
// whether it fits in the window, along with the requests left and the time
// until the window resets.
func (l *RateLimiter) Allow(key string, limit int, period time.Duration, maxClients int) (bool, int, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if maxClients <= 0 {
		maxClients = 10000
	}
	if l.clients == nil || period != l.period || maxClients != l.size {
		l.clients = expirable.NewLRU[string, *window](maxClients, nil, period)
		l.period = period
		l.size = maxClients
	}

	now := l.now()
	w, ok := l.clients.Get(key)
	if !ok || now.Sub(w.start) >= period {
		w = &window{start: now}
		l.clients.Add(key, w)
	}

	resetIn := period - now.Sub(w.start)
	if w.count >= limit {
		return false, 0, resetIn
	}

	w.count++
	return true, limit - w.count, resetIn
}

// Handler returns the gin middleware enforcing the limiter
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := l.settings()
		if !cfg.Enabled {
			c.Next()
			return
		}

		allowed, remaining, resetIn := l.Allow(c.ClientIP(), cfg.Requests, cfg.GetWindow(), cfg.MaxClients)

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			response.TooManyRequests(c, int(math.Ceil(resetIn.Seconds())))
			return
		}
		c.Next()
	}
}
