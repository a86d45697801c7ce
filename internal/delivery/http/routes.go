package http

import (
	"github.com/gin-gonic/gin"

	"github.com/cuidaelmango/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("/search", handler.SearchProducts)
		}

		v1.POST("/compare", handler.CompareCart)

		cart := v1.Group("/cart")
		{
			cart.POST("/total", handler.PriceCart)
		}

		equivalences := v1.Group("/equivalences")
		{
			equivalences.POST("", handler.CreateEquivalence)
			equivalences.GET("/:productId", handler.GetEquivalences)
		}
	}

	return router
}
