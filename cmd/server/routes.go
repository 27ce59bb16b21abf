package main

import (
	"github.com/gin-gonic/gin"
	"github.com/tasklane/tasklane/internal/middleware"
	"github.com/tasklane/tasklane/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, app *application) {
	r.Use(middleware.RequestID(), logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "tasklane"})
	})

	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", middleware.RateLimit(5, 10))
		{
			auth.POST("/register", app.authHandler.Register)
			auth.POST("/login", app.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		protected.Use(middleware.AuditLog(app.activityService))
		{
			protected.GET("/auth/me", app.authHandler.Me)

			protected.POST("/boards", app.boardHandler.Create)
			protected.GET("/boards", app.boardHandler.List)
			protected.GET("/boards/:id", app.boardHandler.GetByID)
			protected.DELETE("/boards/:id", app.boardHandler.Delete)
			protected.POST("/boards/:id/lists", app.boardHandler.CreateList)

			protected.GET("/activity-logs", app.activityHandler.List)
		}
	}
}
