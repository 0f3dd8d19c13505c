package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks a backing dependency.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves liveness endpoints.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root reports that the API is up.
// @Summary     API root
// @Tags        health
// @Produce     json
// @Success     200 {object} map[string]string
// @Router      / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Financial Health Assessment API running"})
}

// Health reports service and database health.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} map[string]string
// @Failure     503 {object} map[string]string
// @Router      /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
