package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the health and metrics endpoints.
type Handler struct {
	db       Pinger
	registry *prometheus.Registry
	now      func() time.Time
}

// NewHandler creates a new handler instance. registry may be nil, in which
// case the default gatherer is exposed.
func NewHandler(db Pinger, registry *prometheus.Registry, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{db: db, registry: registry, now: now}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"time":   h.now(),
	})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
				"time":   h.now(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   h.now(),
	})
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	if h.registry == nil {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
		return
	}
	promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}).ServeHTTP(c.Writer, c.Request)
}
