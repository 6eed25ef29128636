package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	driver string
	ping   func(ctx context.Context) error
}

func NewHealthHandler(driver string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{driver: driver, ping: ping}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	code, status, store := http.StatusOK, "ok", "up"
	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			logrus.WithError(err).WithField("store", h.driver).Warn("Health check failed")
			code, status, store = http.StatusServiceUnavailable, "degraded", "down"
		}
	}

	c.JSON(code, gin.H{
		"status": status,
		"store":  gin.H{"driver": h.driver, "status": store},
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
