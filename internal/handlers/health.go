package handlers

import (
	"context"
	"net/http"
	"time"

	"omnicasa-gateway/internal/models"
	"omnicasa-gateway/internal/services"
	"omnicasa-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	gatewayService *services.GatewayService
	timeout        time.Duration
}

func NewHealthHandler(gatewayService *services.GatewayService) *HealthHandler {
	return &HealthHandler{gatewayService: gatewayService, timeout: 5 * time.Second}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.gatewayService.Health(ctx); err != nil {
		logger.GlobalLogger.Errorf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "error", Cache: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Cache: "ok"})
}
