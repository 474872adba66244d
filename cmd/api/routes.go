package main

import (
	"omnicasa-gateway/internal/middleware"
	"omnicasa-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.Router.GET("/health", a.HealthHandler.Check)
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	a.setupAPIRoutes()
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	if secret := a.Config.JWT.Secret; secret != "" {
		api.Use(middleware.AuthMiddleware(secret))
	} else {
		logger.GlobalLogger.Printf("JWT secret not configured, /api is unauthenticated")
	}

	endpoints := api.Group("/omnicasa")
	{
		endpoints.GET("/:endpoint", a.OmnicasaHandler.Get)
		endpoints.POST("/:endpoint", a.OmnicasaHandler.Post)
		endpoints.DELETE("/:endpoint", a.OmnicasaHandler.Invalidate)
	}

	api.DELETE("/cache/:key", a.OmnicasaHandler.DeleteCacheKey)
}
