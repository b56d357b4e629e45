package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leondli/centriq/internal/infrastructure/config"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(settings *config.RateLimitConfig) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewRateLimiter(func() config.RateLimitConfig { return *settings })
	l.now = clock.Now
	return l, clock
}

func TestRateLimiterAllow(t *testing.T) {
	l, clock := newTestLimiter(&config.RateLimitConfig{})
	allow := func(key string) (bool, int, time.Duration) {
		return l.Allow(key, 2, time.Minute, 16)
	}

	ok, remaining, _ := allow("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, remaining, _ = allow("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)

	clock.Advance(20 * time.Second)
	ok, remaining, resetIn := allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, 40*time.Second, resetIn)

	// other clients have their own window
	ok, _, _ = allow("10.0.0.2")
	assert.True(t, ok)

	clock.Advance(40 * time.Second)
	ok, remaining, _ = allow("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)
}

func newLimitedRouter(l *RateLimiter) func() *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(l.Handler())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	return func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		router.ServeHTTP(w, req)
		return w
	}
}

func TestRateLimiterHandler(t *testing.T) {
	l, clock := newTestLimiter(&config.RateLimitConfig{Enabled: true, Requests: 1, WindowSeconds: 10, MaxClients: 16})
	do := newLimitedRouter(l)

	first := do()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	clock.Advance(2500 * time.Millisecond)
	second := do()
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "8", second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "RESOURCE_EXHAUSTED")
}

func TestRateLimiterFollowsSettingChanges(t *testing.T) {
	settings := &config.RateLimitConfig{Enabled: true, Requests: 1, WindowSeconds: 60, MaxClients: 16}
	l, _ := newTestLimiter(settings)
	do := newLimitedRouter(l)

	require.Equal(t, http.StatusOK, do().Code)
	require.Equal(t, http.StatusTooManyRequests, do().Code)

	// a higher limit applies to the current window
	settings.Requests = 3
	third := do()
	require.Equal(t, http.StatusOK, third.Code)
	assert.Equal(t, "3", third.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", third.Header().Get("X-RateLimit-Remaining"))

	// disabling skips the limiter entirely
	settings.Enabled = false
	for i := 0; i < 5; i++ {
		w := do()
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}

	// a new window length starts every client over
	settings.Enabled = true
	settings.WindowSeconds = 30
	w := do()
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))
}
