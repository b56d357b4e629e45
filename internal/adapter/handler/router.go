package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Call         *CallHandler
	Tag          *TagHandler
	Task         *TaskHandler
	TemplateTask *TemplateTaskHandler
}

// HealthChecker reports whether a backing service is reachable
type HealthChecker func(ctx context.Context) error

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, handlers *Handlers, health HealthChecker, metrics gin.HandlerFunc) {
	RegisterValidators()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if health != nil {
			if err := health(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if metrics != nil {
		router.GET("/metrics", metrics)
	}

	// API v1
	v1 := router.Group("/api/v1")

	// Call routes
	calls := v1.Group("/calls")
	{
		calls.GET("", handlers.Call.List)
		calls.POST("", handlers.Call.Create)
		calls.GET("/:id", handlers.Call.GetByID)
		calls.PATCH("/:id", handlers.Call.Update)
		calls.GET("/:id/tasks", handlers.Call.ListTasks)
	}

	// Tag routes
	tags := v1.Group("/tags")
	{
		tags.GET("", handlers.Tag.List)
		tags.POST("", handlers.Tag.Create)
		tags.GET("/:id", handlers.Tag.GetByID)
		tags.PATCH("/:id", handlers.Tag.Update)
		tags.DELETE("/:id", handlers.Tag.Delete)
		tags.GET("/:id/suggested-tasks", handlers.Tag.GetSuggestedTasks)
	}

	// Task routes
	tasks := v1.Group("/tasks")
	{
		tasks.GET("", handlers.Task.List)
		tasks.POST("", handlers.Task.Create)
		tasks.PATCH("/:id", handlers.Task.Update)
		tasks.DELETE("/:id", handlers.Task.Delete)
	}

	// Template task routes
	templates := v1.Group("/tasks/template")
	{
		templates.GET("/list", handlers.TemplateTask.List)
		templates.POST("", handlers.TemplateTask.Create)
		templates.GET("/:id", handlers.TemplateTask.GetByID)
		templates.PATCH("/:id", handlers.TemplateTask.Update)
		templates.DELETE("/:id", handlers.TemplateTask.Delete)
		templates.POST("/:id/link", handlers.TemplateTask.Link)
		templates.POST("/:id/unlink", handlers.TemplateTask.Unlink)
	}
}
