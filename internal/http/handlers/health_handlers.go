package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/visa-photo/internal/models"
	"go.uber.org/zap"
)

type RedisHealth interface {
	HealthCheck(ctx context.Context) string
	GetCacheStats(ctx context.Context) (map[string]interface{}, error)
}

type QueueHealth interface {
	HealthCheck() string
	GetQueueStats() (map[string]interface{}, error)
}

type StripeHealth interface {
	HealthCheck() string
}

type HealthHandler struct {
	redis  RedisHealth
	queue  QueueHealth
	stripe StripeHealth
	logger *zap.Logger
}

// NewHealthHandler reports a nil dependency as "not configured".
func NewHealthHandler(redis RedisHealth, queue QueueHealth, stripe StripeHealth, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{redis: redis, queue: queue, stripe: stripe, logger: logger}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	services := map[string]string{
		"redis":    "not configured",
		"rabbitmq": "not configured",
		"stripe":   "not configured",
	}
	details := map[string]interface{}{}

	if h.redis != nil {
		services["redis"] = h.redis.HealthCheck(ctx)
		if services["redis"] == "healthy" {
			stats, err := h.redis.GetCacheStats(ctx)
			if err != nil {
				h.logger.Warn("Failed to get cache stats", zap.Error(err))
			} else {
				details["redis"] = stats
			}
		}
	}
	if h.queue != nil {
		services["rabbitmq"] = h.queue.HealthCheck()
		stats, err := h.queue.GetQueueStats()
		if err != nil {
			h.logger.Warn("Failed to get queue stats", zap.Error(err))
		}
		details["queue"] = stats
	}
	if h.stripe != nil {
		services["stripe"] = h.stripe.HealthCheck()
	}

	overall := calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
			Details:   details,
		},
	})
}
