// Package handlers provides HTTP request handlers for the short URL service.
package handlers

import (
	"github.com/gin-gonic/gin"

	"cdn-short-url/config"
	"cdn-short-url/metrics"
)

// RegisterRoutes sets up all the routes for the short URL service.
// Redirect serving is not registered here: the CDN serves the published
// objects directly, so this API only creates them.
func RegisterRoutes(r *gin.Engine, handler URLHandlerInterface, config *config.Config) {
	// Apply CORS middleware to all routes
	r.Use(CORSMiddleware())

	// API routes
	v1 := r.Group("/api/v1")
	{
		short := v1.Group("/short")
		{
			short.POST("", handler.CreateShortURL)
		}
	}

	// Health check route
	r.GET("/health", handler.HealthCheck)

	// Prometheus exposition
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
