package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leondli/centriq/internal/infrastructure/config"
	"github.com/leondli/centriq/pkg/response"
)

func TestRequestLoggerPropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, response.GetRequestID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(response.RequestIDKey, "req-abc")
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-abc", w.Body.String())
	assert.Equal(t, "req-abc", w.Header().Get(response.RequestIDKey))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(response.RequestIDKey))
}

func TestRecoveryReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(), Recovery())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), response.CodeInternalError)
	assert.Contains(t, w.Body.String(), `"requestId"`)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(&config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxAge:         600,
	}))
	router.GET("/api/v1/tags", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tags", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	router.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/tags", nil)
	req.Header.Set("Origin", "http://evil.example")
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsRecordsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	router := gin.New()
	router.Use(m.Handler())
	router.GET("/api/v1/tags/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/metrics", m.Endpoint())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/tags/7", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `centriq_http_requests_total{method="GET",route="/api/v1/tags/:id",status="404"} 1`)
	assert.Contains(t, body, "centriq_http_request_duration_seconds")
}
