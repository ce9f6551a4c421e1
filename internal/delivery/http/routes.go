package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/catalogsearch/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// One limiter set shared by every search route
	rateLimit := RateLimitMiddleware(cfg.RateLimit.PerIP)

	// Original search path kept for existing clients
	router.GET("/search", rateLimit, handler.Search)

	// API v1 routes
	v1 := router.Group("/api/v1", rateLimit)
	{
		v1.GET("/search", handler.Search)
		v1.GET("/colors/infer", handler.InferColor)
	}

	return router
}
