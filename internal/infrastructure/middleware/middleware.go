package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leondli/centriq/internal/infrastructure/config"
	"github.com/leondli/centriq/pkg/response"
)

// RequestLogger creates a logging middleware
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Reuse the caller's request ID when it sends one
		requestID := c.GetHeader(response.RequestIDKey)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(response.RequestIDKey, requestID)
		c.Header(response.RequestIDKey, requestID)

		// Process request
		c.Next()

		// Log request details
		latency := time.Since(start)
		status := c.Writer.Status()

		logger := log.Info()
		if status >= 400 && status < 500 {
			logger = log.Warn()
		} else if status >= 500 {
			logger = log.Error()
		}

		logger.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("Request completed")
	}
}

// Recovery creates a recovery middleware
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", response.GetRequestID(c)).
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Msg("Panic recovered")

				response.InternalError(c, "internal server error")
			}
		}()
		c.Next()
	}
}

// CORS creates a CORS middleware restricted to the configured origins
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet,
			http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch,
		},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", response.RequestIDKey},
		ExposeHeaders:    []string{response.RequestIDKey, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.GetMaxAge(),
	})
}
